package config

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL   string
	Port          string
	IsProduction  bool
	EnableDBCheck bool

	// Operator identity stamped on audit fields when the desktop shell does
	// not supply one per request.
	DefaultOperator string `mapstructure:"DEFAULT_OPERATOR"`

	// Chart codes of the well-known accounts the engine's processors target.
	CashAccountCode     string `mapstructure:"CASH_ACCOUNT_CODE"`
	CapitalAccountCode  string `mapstructure:"CAPITAL_ACCOUNT_CODE"`
	DrawingsAccountCode string `mapstructure:"DRAWINGS_ACCOUNT_CODE"`
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("ENABLE_DB_CHECK", false)
	viper.SetDefault("DEFAULT_OPERATOR", "system")
	viper.SetDefault("CASH_ACCOUNT_CODE", "101")
	viper.SetDefault("CAPITAL_ACCOUNT_CODE", "301")
	viper.SetDefault("DRAWINGS_ACCOUNT_CODE", "302")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	if cfg.Port == "" {
		cfg.Port = "8080"
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}

	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.EnableDBCheck = viper.GetBool("ENABLE_DB_CHECK")
	cfg.DefaultOperator = viper.GetString("DEFAULT_OPERATOR")
	cfg.CashAccountCode = viper.GetString("CASH_ACCOUNT_CODE")
	cfg.CapitalAccountCode = viper.GetString("CAPITAL_ACCOUNT_CODE")
	cfg.DrawingsAccountCode = viper.GetString("DRAWINGS_ACCOUNT_CODE")

	return cfg, nil
}
