// Package payphone provides a client for the external payment gateway.
package payphone

import (
	"os"
	"time"
)

// Config holds configuration for the payment gateway client.
type Config struct {
	BaseURL    string        // Gateway endpoint URL
	Identifier string        // Merchant identifier sent in the body
	ClientID   string        // Basic auth user
	SecretKey  string        // Basic auth password
	Timeout    time.Duration // HTTP request timeout
}

// LoadConfig loads payment gateway configuration from environment variables.
func LoadConfig() Config {
	return Config{
		BaseURL:    os.Getenv("PAYMENT_API_URL"),
		Identifier: os.Getenv("PAYMENT_IDENTIFIER"),
		ClientID:   os.Getenv("PAYMENT_CLIENT_ID"),
		SecretKey:  os.Getenv("PAYMENT_SECRET_KEY"),
		Timeout:    10 * time.Second,
	}
}
