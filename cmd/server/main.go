package main

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"go-payway/internal/config"
	"go-payway/internal/handlers"
	"go-payway/internal/middleware"
	"go-payway/internal/payment/payway"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
)

func main() {
	// Print banner
	printBanner()

	// Load configuration
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	// Initialize Payment Gateway (PayWay)
	gateway := payway.New(cfg)
	log.Println("✓ PayWay gateway initialized")
	if cfg.PaywaySkipTLSVerify {
		log.Println("⚠️  TLS certificate verification DISABLED (sandbox only)")
	}

	// Initialize HTTP handlers
	h := handlers.NewHandler(gateway, cfg)

	// Setup router
	router := setupRouter(h)

	// Setup CORS with restrictive defaults
	allowedOrigins := []string{
		"http://localhost:8080",
		"http://localhost:3000",
	}

	// Add additional origins from environment if needed
	if origin := os.Getenv("ALLOWED_ORIGINS"); origin != "" {
		allowedOrigins = append(allowedOrigins, strings.Split(origin, ",")...)
	}

	c := cors.New(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
		MaxAge:           300, // 5 minutes
	})

	var handler http.Handler = router
	if cfg.AuthEnabled {
		handler = middleware.AuthMiddleware(cfg.JWTSecret)(handler)
		log.Println("✓ API authentication enabled")
	}
	handler = c.Handler(middleware.RequestLogger(handler))

	// Start HTTP server
	addr := fmt.Sprintf(":%d", cfg.ServerPort)
	log.Printf("✓ HTTP server starting on port %d", cfg.ServerPort)
	log.Printf("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
	log.Printf("🌐 API: http://localhost:%d/api", cfg.ServerPort)
	log.Printf("💳 QR endpoint:    %s", cfg.PaywayQRAPIURL)
	log.Printf("💳 Cards endpoint: %s", cfg.PaywayCardsAPIURL)
	log.Printf("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan
		log.Println("\n🛑 Shutting down server...")
		os.Exit(0)
	}()

	log.Fatal(http.ListenAndServe(addr, handler))
}

func setupRouter(h *handlers.Handler) *mux.Router {
	router := mux.NewRouter()

	router.HandleFunc("/health", h.Health).Methods("GET")

	// API routes
	api := router.PathPrefix("/api").Subrouter()

	// Authentication
	api.HandleFunc("/auth/login", h.Login).Methods("POST")

	// Payments
	api.HandleFunc("/payments", h.CreatePayment).Methods("POST")
	api.HandleFunc("/payments/options", h.GetPaymentOptions).Methods("GET")

	return router
}

func printBanner() {
	banner := `
  ██████╗  ██████╗       ██████╗  █████╗ ██╗   ██╗
 ██╔════╝ ██╔═══██╗      ██╔══██╗██╔══██╗╚██╗ ██╔╝
 ██║  ███╗██║   ██║█████╗██████╔╝███████║ ╚████╔╝
 ██║   ██║██║   ██║╚════╝██╔═══╝ ██╔══██║  ╚██╔╝
 ╚██████╔╝╚██████╔╝      ██║     ██║  ██║   ██║
  ╚═════╝  ╚═════╝       ╚═╝     ╚═╝  ╚═╝   ╚═╝

  PayWay QR/Card Checkout Proxy
  Version: 1.0.0
━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━
`
	fmt.Println(banner)
}
