package models

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// PaymentRequest is the inbound payment creation request. Amount and
// payment option are required; description is collected for reporting
// but never forwarded to the gateway.
type PaymentRequest struct {
	Amount        decimal.Decimal `json:"amount"`
	PaymentOption string          `json:"payment_option"`
	Description   string          `json:"description,omitempty"`
}

// RedirectResponse is returned when the gateway produced an HTML
// checkout page (card payments). The caller must render CheckoutHTML
// for the payer.
type RedirectResponse struct {
	Success       bool   `json:"success"`
	Message       string `json:"message"`
	TransactionID string `json:"transaction_id"`
	PaymentType   string `json:"payment_type"` // always "redirect"
	CheckoutHTML  string `json:"checkout_html"`
	ContentType   string `json:"content_type"`
	ResponseSize  int    `json:"response_size"`
	Instructions  string `json:"instructions"`
}

// DirectResponse is returned when the gateway produced a JSON payment
// payload (QR flows). Data carries the gateway body verbatim.
type DirectResponse struct {
	Success       bool            `json:"success"`
	Message       string          `json:"message"`
	TransactionID string          `json:"transaction_id"`
	PaymentType   string          `json:"payment_type"` // always "direct"
	Data          json.RawMessage `json:"data"`
}

// DebugInfo carries the raw gateway response for failure diagnostics
type DebugInfo struct {
	HTTPStatus      int                 `json:"http_status"`
	ResponseHeaders map[string][]string `json:"response_headers,omitempty"`
	RawResponse     string              `json:"raw_response"`
	ContentType     string              `json:"content_type"`
}

// ErrorResponse is the failure envelope
type ErrorResponse struct {
	Success   bool       `json:"success"`
	Message   string     `json:"message"`
	Error     string     `json:"error"`
	DebugInfo *DebugInfo `json:"debug_info,omitempty"`
}

// ValidationErrorResponse reports field-level input errors
type ValidationErrorResponse struct {
	Success bool              `json:"success"`
	Message string            `json:"message"`
	Errors  map[string]string `json:"errors"`
}
