package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL   string
	Port          string
	IsProduction  bool
	EnableDBCheck bool

	JWTSecret string
	JWTIssuer string

	// Ledger query engine tuning.
	GroupWindow  time.Duration
	MaxLimit     int
	DefaultLimit int

	// Storage backend: "pgsql" or "memory" (dev/test only).
	LedgerStore string

	// Rate limit in ulule/limiter format, e.g. "300-M".
	RateLimit string

	CORSAllowOrigins []string
}

// LoadConfig loads configuration from environment variables and a .env file
// if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("ENABLE_DB_CHECK", false)
	viper.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	viper.SetDefault("JWT_ISSUER", "commonsfund-platform")
	viper.SetDefault("TXN_GROUP_WINDOW", "10s")
	viper.SetDefault("TXN_MAX_LIMIT", 10000)
	viper.SetDefault("TXN_DEFAULT_LIMIT", 100)
	viper.SetDefault("LEDGER_STORE", "pgsql")
	viper.SetDefault("RATE_LIMIT", "300-M")
	viper.SetDefault("CORS_ALLOW_ORIGINS", []string{"*"})

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

	groupWindowStr := viper.GetString("TXN_GROUP_WINDOW")
	groupWindow, err := time.ParseDuration(groupWindowStr)
	if err != nil || groupWindow <= 0 {
		groupWindow = 10 * time.Second
		if groupWindowStr != "" && err != nil {
			log.Printf("Warning: Invalid value for TXN_GROUP_WINDOW ('%s'). Defaulting to %s.\n", groupWindowStr, groupWindow)
		}
	}
	cfg.GroupWindow = groupWindow

	cfg.MaxLimit = viper.GetInt("TXN_MAX_LIMIT")
	cfg.DefaultLimit = viper.GetInt("TXN_DEFAULT_LIMIT")
	cfg.LedgerStore = viper.GetString("LEDGER_STORE")
	cfg.RateLimit = viper.GetString("RATE_LIMIT")
	cfg.CORSAllowOrigins = viper.GetStringSlice("CORS_ALLOW_ORIGINS")

	return cfg, nil
}
