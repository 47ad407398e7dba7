package config

import (
	"crypto/rand"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Sandbox endpoints of the PayWay checkout API. Production deployments
// override these via environment variables.
const (
	defaultQRAPIURL    = "https://checkout-sandbox.payway.com.kh/api/payment-gateway/v1/payments/generate-qr"
	defaultCardsAPIURL = "https://checkout-sandbox.payway.com.kh/api/payment-gateway/v1/payments/card-link"
)

// Config holds the application configuration
type Config struct {
	ServerPort          int
	AuthEnabled         bool
	JWTSecret           string
	AdminUser           string
	AdminPass           string
	PaywayMerchantID    string
	PaywayAPIKey        string
	PaywayQRAPIURL      string
	PaywayCardsAPIURL   string
	PaywaySkipTLSVerify bool // sandbox only, certificate verification stays on by default
}

// Load loads configuration from environment variables with defaults.
// A .env file in the working directory is honored when present.
func Load() *Config {
	_ = godotenv.Load()

	jwtSecret := getEnv("JWT_SECRET", "")
	if jwtSecret == "" {
		// Generate a random JWT secret if not provided
		jwtSecret = generateRandomSecret(32)
		fmt.Printf("⚠️  WARNING: JWT_SECRET not set, generated random secret: %s\n", jwtSecret)
		fmt.Printf("   Please set JWT_SECRET environment variable for production use!\n")
	}

	return &Config{
		ServerPort:          getEnvAsInt("SERVER_PORT", 8080),
		AuthEnabled:         getEnvAsBool("AUTH_ENABLED", false),
		JWTSecret:           jwtSecret,
		AdminUser:           getEnv("ADMIN_USER", "admin"),
		AdminPass:           getEnv("ADMIN_PASS", ""),
		PaywayMerchantID:    getEnv("PAYWAY_MERCHANT_ID", ""),
		PaywayAPIKey:        getEnv("PAYWAY_API_KEY", ""),
		PaywayQRAPIURL:      getEnv("PAYWAY_QR_API_URL", defaultQRAPIURL),
		PaywayCardsAPIURL:   getEnv("PAYWAY_CARDS_API_URL", defaultCardsAPIURL),
		PaywaySkipTLSVerify: getEnvAsBool("PAYWAY_SKIP_TLS_VERIFY", false),
	}
}

// Validate checks that the gateway credentials are present. Both values
// are required and have no defaults; a missing one is a fatal startup
// condition, never a silent empty-string signing key.
func (c *Config) Validate() error {
	if c.PaywayMerchantID == "" {
		return fmt.Errorf("PAYWAY_MERCHANT_ID is required")
	}
	if c.PaywayAPIKey == "" {
		return fmt.Errorf("PAYWAY_API_KEY is required")
	}
	return nil
}

// Helper functions for environment variables
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// generateRandomSecret generates a cryptographically secure random string
func generateRandomSecret(length int) string {
	const charset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	b := make([]byte, length)
	if _, err := rand.Read(b); err != nil {
		// Fallback to time-based seed if crypto/rand fails
		return fmt.Sprintf("fallback-secret-%d", time.Now().UnixNano())
	}
	for i := range b {
		b[i] = charset[b[i]%byte(len(charset))]
	}
	return string(b)
}

func getEnvAsInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		switch value {
		case "1", "t", "T", "true", "TRUE", "True", "yes", "YES":
			return true
		case "0", "f", "F", "false", "FALSE", "False", "no", "NO":
			return false
		}
	}
	return defaultValue
}
