package handlers

import (
	"crypto/subtle"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"go-payway/internal/config"
	"go-payway/internal/models"
	"go-payway/internal/payment"

	"github.com/golang-jwt/jwt/v4"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
)

// Handler holds dependencies for HTTP handlers
type Handler struct {
	Payment payment.Gateway
	Config  *config.Config
}

// NewHandler creates a new Handler
func NewHandler(pg payment.Gateway, cfg *config.Config) *Handler {
	return &Handler{
		Payment: pg,
		Config:  cfg,
	}
}

// ============== Auth Handlers ==============

// Login authenticates the admin user and issues a JWT
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var creds struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if creds.Username != h.Config.AdminUser || !checkPassword(h.Config.AdminPass, creds.Password) {
		respondError(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	claims := jwt.MapClaims{
		"username": creds.Username,
		"role":     "admin",
		"exp":      time.Now().Add(24 * time.Hour).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(h.Config.JWTSecret))
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to issue token")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"token":   signed,
	})
}

// checkPassword compares the configured admin password with the given
// one. A bcrypt hash in ADMIN_PASS is supported alongside plain text.
func checkPassword(stored, given string) bool {
	if stored == "" {
		return false
	}
	if strings.HasPrefix(stored, "$2a$") || strings.HasPrefix(stored, "$2b$") || strings.HasPrefix(stored, "$2y$") {
		return bcrypt.CompareHashAndPassword([]byte(stored), []byte(given)) == nil
	}
	return subtle.ConstantTimeCompare([]byte(stored), []byte(given)) == 1
}

// Health is the liveness endpoint
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// ============== Payment Handlers ==============

var minAmount = decimal.NewFromFloat(0.01)

// CreatePayment validates the request, dispatches one signed call to the
// payment gateway and returns the normalized response envelope.
func (h *Handler) CreatePayment(w http.ResponseWriter, r *http.Request) {
	var req models.PaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusUnprocessableEntity, models.ValidationErrorResponse{
			Message: "Validation failed",
			Errors:  map[string]string{"body": "must be a valid JSON object"},
		})
		return
	}

	// Validation happens before any network call
	if errs := validatePaymentRequest(&req); len(errs) > 0 {
		respondJSON(w, http.StatusUnprocessableEntity, models.ValidationErrorResponse{
			Message: "Validation failed",
			Errors:  errs,
		})
		return
	}

	result, err := h.Payment.CreateCheckout(r.Context(), payment.CheckoutRequest{
		Amount:        req.Amount,
		PaymentOption: req.PaymentOption,
		Description:   req.Description,
	})
	if err != nil {
		h.respondPaymentError(w, err)
		return
	}

	switch result.Kind {
	case payment.ResultRedirect:
		respondJSON(w, http.StatusOK, models.RedirectResponse{
			Success:       true,
			Message:       "Card checkout page generated",
			TransactionID: result.TransactionID,
			PaymentType:   "redirect",
			CheckoutHTML:  result.HTML,
			ContentType:   result.ContentType,
			ResponseSize:  len(result.HTML),
			Instructions:  "Render checkout_html in the user's browser to display the card checkout page",
		})
	case payment.ResultDirect:
		respondJSON(w, http.StatusOK, models.DirectResponse{
			Success:       true,
			Message:       "Payment created",
			TransactionID: result.TransactionID,
			PaymentType:   "direct",
			Data:          result.Data,
		})
	case payment.ResultGatewayError:
		// The outer status mirrors the gateway's status
		respondJSON(w, result.HTTPStatus, models.ErrorResponse{
			Message: "Payment gateway rejected the request",
			Error:   fmt.Sprintf("gateway returned HTTP %d", result.HTTPStatus),
			DebugInfo: &models.DebugInfo{
				HTTPStatus:      result.HTTPStatus,
				ResponseHeaders: result.Headers,
				RawResponse:     result.RawBody,
				ContentType:     result.ContentType,
			},
		})
	}
}

// GetPaymentOptions returns the payment options the gateway accepts
func (h *Handler) GetPaymentOptions(w http.ResponseWriter, r *http.Request) {
	if h.Payment == nil {
		respondError(w, http.StatusServiceUnavailable, "Payment gateway not configured")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"options": h.Payment.Options(),
	})
}

func validatePaymentRequest(req *models.PaymentRequest) map[string]string {
	errs := make(map[string]string)
	if req.Amount.LessThan(minAmount) {
		errs["amount"] = "must be a decimal amount of at least 0.01"
	}
	if strings.TrimSpace(req.PaymentOption) == "" {
		errs["payment_option"] = "is required"
	}
	if len(req.Description) > 255 {
		errs["description"] = "must be at most 255 characters"
	}
	return errs
}

// respondPaymentError maps gateway errors onto failure envelopes
func (h *Handler) respondPaymentError(w http.ResponseWriter, err error) {
	var netErr *payment.NetworkError
	var contractErr *payment.ContractError

	switch {
	case errors.Is(err, payment.ErrNotConfigured):
		log.Printf("[PAYMENT] gateway not configured: %v", err)
		respondJSON(w, http.StatusInternalServerError, models.ErrorResponse{
			Message: "Payment gateway is not configured",
			Error:   "configuration error",
		})
	case errors.As(err, &netErr):
		log.Printf("[PAYMENT] gateway unreachable: %v", err)
		respondJSON(w, http.StatusInternalServerError, models.ErrorResponse{
			Message: "Could not reach the payment gateway",
			Error:   netErr.Error(),
		})
	case errors.As(err, &contractErr):
		log.Printf("[PAYMENT] gateway contract violation: %v", err)
		respondJSON(w, http.StatusInternalServerError, models.ErrorResponse{
			Message: "Payment gateway returned an unreadable response",
			Error:   contractErr.Error(),
			DebugInfo: &models.DebugInfo{
				HTTPStatus:  contractErr.HTTPStatus,
				RawResponse: contractErr.Body,
				ContentType: contractErr.ContentType,
			},
		})
	default:
		log.Printf("[PAYMENT] unexpected error: %v", err)
		respondJSON(w, http.StatusInternalServerError, models.ErrorResponse{
			Message: "Payment processing failed",
			Error:   err.Error(),
		})
	}
}

// ============== Helper Functions ==============

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}
