package config

import (
	"fmt"
	"os"
	"strconv"
)

// Gateway holds the credentials for one hosted-checkout payment provider.
type Gateway struct {
	MerchantID  string
	APIKey      string
	Environment string // test|live or sandbox|live depending on the provider
}

// Config is the immutable process configuration, read once at startup.
// Business logic never reads the environment directly.
type Config struct {
	Port          string
	FrontendURL   string
	MarkupPercent float64

	Supplier struct {
		AppKey     string
		AppSecret  string
		TrackingID string
		BaseURL    string
	}

	Stripe struct {
		APIKey        string
		PublicKey     string
		WebhookSecret string
	}

	ApplePay struct {
		MerchantID      string
		CertificatePath string
		Environment     string
	}

	Mada   Gateway
	STCPay Gateway
	Tamara Gateway
	Tabby  Gateway
}

// Load builds the configuration from the environment. Supplier credentials
// are required; everything else has a default or may stay empty until the
// corresponding gateway is enabled.
func Load() (*Config, error) {
	cfg := &Config{}

	cfg.Port = getEnv("APP_PORT", "8080")
	cfg.FrontendURL = getEnv("FRONTEND_URL", "http://localhost:3000")
	cfg.MarkupPercent = getEnvFloat("MARKUP_PERCENTAGE", 30)

	cfg.Supplier.AppKey = os.Getenv("ALIEXPRESS_API_KEY")
	cfg.Supplier.AppSecret = os.Getenv("ALIEXPRESS_API_SECRET")
	cfg.Supplier.TrackingID = os.Getenv("ALIEXPRESS_TRACKING_ID")
	cfg.Supplier.BaseURL = getEnv("ALIEXPRESS_API_URL", "https://api.aliexpress.com/v2")
	if cfg.Supplier.AppKey == "" || cfg.Supplier.AppSecret == "" {
		return nil, fmt.Errorf("ALIEXPRESS_API_KEY and ALIEXPRESS_API_SECRET are required")
	}

	cfg.Stripe.APIKey = os.Getenv("STRIPE_API_KEY")
	cfg.Stripe.PublicKey = os.Getenv("STRIPE_PUBLIC_KEY")
	cfg.Stripe.WebhookSecret = os.Getenv("STRIPE_WEBHOOK_SECRET")

	cfg.ApplePay.MerchantID = os.Getenv("APPLE_PAY_MERCHANT_ID")
	cfg.ApplePay.CertificatePath = os.Getenv("APPLE_PAY_CERTIFICATE_PATH")
	cfg.ApplePay.Environment = getEnv("APPLE_PAY_ENVIRONMENT", "sandbox")

	cfg.Mada = gatewayFromEnv("MADA", "test")
	cfg.STCPay = gatewayFromEnv("STC_PAY", "test")
	cfg.Tamara = gatewayFromEnv("TAMARA", "sandbox")
	cfg.Tabby = gatewayFromEnv("TABBY", "sandbox")

	return cfg, nil
}

func gatewayFromEnv(prefix, defaultEnv string) Gateway {
	return Gateway{
		MerchantID:  os.Getenv(prefix + "_MERCHANT_ID"),
		APIKey:      os.Getenv(prefix + "_API_KEY"),
		Environment: getEnv(prefix+"_ENVIRONMENT", defaultEnv),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return fallback
	}
	return v
}
