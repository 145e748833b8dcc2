package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL   string
	Port          string
	IsProduction  bool
	EnableDBCheck bool

	JWTSecret         string
	JWTExpiryDuration time.Duration
	JWTIssuer         string

	// Billing
	DefaultTaxRate decimal.Decimal // fraction, e.g. 0.18 for 18% GST
	CurrencySymbol string
	HotelName      string

	// Rate limiting, e.g. "100-M" for 100 requests per minute
	RateLimit string

	// Comma separated list of allowed CORS origins, or "*"
	AllowedOrigins string

	// Razorpay credentials for online payments
	RazorpayKeyID     string
	RazorpayKeySecret string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("ENABLE_DB_CHECK", false)
	viper.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	viper.SetDefault("JWT_EXPIRY_DURATION", "1h")
	viper.SetDefault("JWT_ISSUER", "folio-backend")
	viper.SetDefault("DEFAULT_TAX_RATE", "0.18")
	viper.SetDefault("CURRENCY_SYMBOL", "₹")
	viper.SetDefault("HOTEL_NAME", "Front Desk")
	viper.SetDefault("RATE_LIMIT", "100-M")
	viper.SetDefault("ALLOWED_ORIGINS", "*")
	viper.SetDefault("RAZORPAY_KEY_ID", "")
	viper.SetDefault("RAZORPAY_KEY_SECRET", "")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.EnableDBCheck = viper.GetBool("ENABLE_DB_CHECK")

	cfg.JWTSecret = viper.GetString("JWT_SECRET")
	if cfg.JWTSecret == "a-very-secret-key-should-be-longer-and-random" {
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}
	cfg.JWTIssuer = viper.GetString("JWT_ISSUER")

	jwtExpiryStr := viper.GetString("JWT_EXPIRY_DURATION")
	jwtExpiryDuration, err := time.ParseDuration(jwtExpiryStr)
	if err != nil {
		jwtExpiryDuration = time.Hour
		log.Printf("Warning: Invalid value for JWT_EXPIRY_DURATION ('%s'). Defaulting to %s.\n", jwtExpiryStr, jwtExpiryDuration.String())
	}
	cfg.JWTExpiryDuration = jwtExpiryDuration

	taxRateStr := viper.GetString("DEFAULT_TAX_RATE")
	taxRate, err := decimal.NewFromString(taxRateStr)
	if err != nil || taxRate.IsNegative() {
		taxRate = decimal.RequireFromString("0.18")
		log.Printf("Warning: Invalid value for DEFAULT_TAX_RATE ('%s'). Defaulting to %s.\n", taxRateStr, taxRate.String())
	}
	cfg.DefaultTaxRate = taxRate

	cfg.CurrencySymbol = viper.GetString("CURRENCY_SYMBOL")
	cfg.HotelName = viper.GetString("HOTEL_NAME")
	cfg.RateLimit = viper.GetString("RATE_LIMIT")
	cfg.AllowedOrigins = viper.GetString("ALLOWED_ORIGINS")

	cfg.RazorpayKeyID = viper.GetString("RAZORPAY_KEY_ID")
	cfg.RazorpayKeySecret = viper.GetString("RAZORPAY_KEY_SECRET")
	if cfg.RazorpayKeyID == "" || cfg.RazorpayKeySecret == "" {
		log.Println("Warning: Razorpay credentials not set. Online payments will not function.")
	}

	return cfg, nil
}
