package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	// EnvProduction selects the hosted API.
	EnvProduction = "production"
	// EnvDevelopment selects the local API.
	EnvDevelopment = "development"

	defaultLocalAPIURL      = "http://localhost:5000/api"
	defaultProductionAPIURL = "https://libreria-app-backend.onrender.com/api"
)

// Config represents the full application configuration surface.
type Config struct {
	Server    ServerConfig
	API       APIConfig
	UI        UIConfig
	Log       LogConfig
	Reporting ReportingConfig
	MongoDB   MongoDBConfig
	Sheets    SheetsConfig
	WhatsApp  WhatsAppConfig
}

// ServerConfig holds HTTP server related options.
type ServerConfig struct {
	Port string
}

// APIConfig describes how to reach the remote bookstore API.
type APIConfig struct {
	Environment string
	BaseURL     string
	// Timeout is applied per request when positive. Zero leaves timeouts to
	// the transport.
	Timeout time.Duration
}

// UIConfig holds view-model behaviour settings.
type UIConfig struct {
	NoticeTTL time.Duration
}

// LogConfig holds logger settings.
type LogConfig struct {
	Level string
}

// ReportingConfig holds scheduler-related settings.
type ReportingConfig struct {
	StockCronSchedule string
}

// MongoDBConfig holds settings for the optional report archive.
type MongoDBConfig struct {
	URI    string
	DBName string
}

// Enabled reports whether a MongoDB URI was configured.
func (c MongoDBConfig) Enabled() bool { return c.URI != "" }

// SheetsConfig contains configuration for the optional Google Sheets export.
type SheetsConfig struct {
	CredentialsPath string
	SpreadsheetID   string
	Range           string
}

// Enabled reports whether the sheets export was configured.
func (c SheetsConfig) Enabled() bool { return c.CredentialsPath != "" && c.SpreadsheetID != "" }

// WhatsAppConfig contains credentials for the optional low-stock alerts sent
// through the Meta WhatsApp Cloud API.
type WhatsAppConfig struct {
	AccessToken    string
	PhoneNumberID  string
	BaseURL        string
	APIVersion     string
	AlertRecipient string
}

// Enabled reports whether stock alerts should be sent.
func (c WhatsAppConfig) Enabled() bool { return c.AccessToken != "" && c.AlertRecipient != "" }

// Load reads environment variables (optionally from the provided file) and
// materializes a Config instance.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("failed loading env file %s: %w", envFile, err)
			}
		}
	} else {
		// Missing .env files are fine when configuration comes from the environment.
		_ = godotenv.Load()
	}

	env := strings.ToLower(getenvWithDefault("APP_ENV", EnvDevelopment))

	timeout, err := getDuration("API_TIMEOUT", 0)
	if err != nil {
		return nil, err
	}
	noticeTTL, err := getDuration("NOTICE_TTL", 3*time.Second)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Server: ServerConfig{
			Port: getenvWithDefault("APP_PORT", "8080"),
		},
		API: APIConfig{
			Environment: env,
			BaseURL:     resolveBaseURL(env),
			Timeout:     timeout,
		},
		UI: UIConfig{
			NoticeTTL: noticeTTL,
		},
		Log: LogConfig{
			Level: getenvWithDefault("LOG_LEVEL", "info"),
		},
		Reporting: ReportingConfig{
			StockCronSchedule: getenvWithDefault("STOCK_REPORT_CRON", "0 8 * * *"),
		},
		MongoDB: MongoDBConfig{
			URI:    os.Getenv("MONGODB_URI"),
			DBName: getenvWithDefault("MONGODB_DB_NAME", "libreria"),
		},
		Sheets: SheetsConfig{
			CredentialsPath: os.Getenv("GOOGLE_SHEETS_CREDENTIALS_PATH"),
			SpreadsheetID:   os.Getenv("GOOGLE_SHEET_ID"),
			Range:           getenvWithDefault("GOOGLE_SHEET_RANGE", "Stock!A:F"),
		},
		WhatsApp: WhatsAppConfig{
			AccessToken:    os.Getenv("WHATSAPP_TOKEN"),
			PhoneNumberID:  os.Getenv("WHATSAPP_PHONE_NUMBER_ID"),
			BaseURL:        getenvWithDefault("WHATSAPP_BASE_URL", "https://graph.facebook.com"),
			APIVersion:     getenvWithDefault("WHATSAPP_API_VERSION", "v20.0"),
			AlertRecipient: os.Getenv("WHATSAPP_ALERT_RECIPIENT"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate ensures that required configuration fields are populated.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}

	if c.Server.Port == "" {
		return errors.New("APP_PORT must be provided")
	}

	switch c.API.Environment {
	case EnvProduction, EnvDevelopment:
	default:
		return fmt.Errorf("APP_ENV must be %q or %q, got %q", EnvDevelopment, EnvProduction, c.API.Environment)
	}

	if c.API.BaseURL == "" {
		return errors.New("API base URL must not be empty")
	}

	if c.API.Timeout < 0 {
		return errors.New("API_TIMEOUT must not be negative")
	}

	if c.UI.NoticeTTL <= 0 {
		return errors.New("NOTICE_TTL must be positive")
	}

	if c.Reporting.StockCronSchedule == "" {
		return errors.New("STOCK_REPORT_CRON must be provided")
	}

	if (c.Sheets.CredentialsPath == "") != (c.Sheets.SpreadsheetID == "") {
		return errors.New("GOOGLE_SHEETS_CREDENTIALS_PATH and GOOGLE_SHEET_ID must be provided together")
	}

	if c.MongoDB.Enabled() && c.MongoDB.DBName == "" {
		return errors.New("MONGODB_DB_NAME must not be empty")
	}

	if c.WhatsApp.Enabled() {
		switch {
		case c.WhatsApp.PhoneNumberID == "":
			return errors.New("WHATSAPP_PHONE_NUMBER_ID must be provided")
		case c.WhatsApp.BaseURL == "":
			return errors.New("WHATSAPP_BASE_URL must not be empty")
		case c.WhatsApp.APIVersion == "":
			return errors.New("WHATSAPP_API_VERSION must not be empty")
		}
	}

	return nil
}

func resolveBaseURL(env string) string {
	if env == EnvProduction {
		return getenvWithDefault("API_URL", defaultProductionAPIURL)
	}
	return defaultLocalAPIURL
}

func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, value, err)
	}
	return d, nil
}

func getenvWithDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
