package config

import (
	"fmt"
	"os"
)

// PayPal holds the credentials and host used by the PayPal client.
type PayPal struct {
	ClientID string
	Secret   string
	BaseURL  string
}

// Business is the invoicer-side identity stamped onto every invoice.
// It is loaded once from the environment and passed explicitly into the
// normalizer; nothing in the pipeline reads ambient state.
type Business struct {
	Name         string
	Email        string
	Phone        string
	Website      string
	AddressLine1 string
	City         string
	State        string
	PostalCode   string
	CountryCode  string
}

// Config is the full process configuration.
type Config struct {
	Stage    string
	PayPal   PayPal
	Business Business
}

// Defaulting table. Every fallback used during config loading lives here so
// the complete set of defaults is auditable in one place.
const (
	DefaultStage           = "development"
	DefaultPayPalBaseURL   = "https://api-m.sandbox.paypal.com"
	DefaultBusinessName    = "LinkReach Media"
	DefaultBusinessEmail   = "billing@linkreach.example.com"
	DefaultBusinessCountry = "US"
)

// Load reads the process configuration from the environment, applying the
// defaulting table for unset values. It returns an error when the PayPal
// credentials are missing since no operation can run without them.
func Load() (*Config, error) {
	clientID := os.Getenv("PAYPAL_CLIENT_ID")
	secret := os.Getenv("PAYPAL_CLIENT_SECRET")
	if clientID == "" || secret == "" {
		return nil, fmt.Errorf("PAYPAL_CLIENT_ID and PAYPAL_CLIENT_SECRET environment variables are required")
	}

	return &Config{
		Stage: envOr("STAGE", DefaultStage),
		PayPal: PayPal{
			ClientID: clientID,
			Secret:   secret,
			BaseURL:  envOr("PAYPAL_API_BASE", DefaultPayPalBaseURL),
		},
		Business: LoadBusiness(),
	}, nil
}

// LoadBusiness reads only the business identity block. Split out so tests
// and the preview path can build a Business without PayPal credentials.
func LoadBusiness() Business {
	return Business{
		Name:         envOr("BUSINESS_NAME", DefaultBusinessName),
		Email:        envOr("BUSINESS_EMAIL", DefaultBusinessEmail),
		Phone:        envOr("BUSINESS_PHONE", ""),
		Website:      envOr("BUSINESS_WEBSITE", ""),
		AddressLine1: envOr("BUSINESS_ADDRESS_LINE1", ""),
		City:         envOr("BUSINESS_CITY", ""),
		State:        envOr("BUSINESS_STATE", ""),
		PostalCode:   envOr("BUSINESS_POSTAL_CODE", ""),
		CountryCode:  envOr("BUSINESS_COUNTRY", DefaultBusinessCountry),
	}
}

func envOr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
