package config

import (
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	Upstream  UpstreamConfig
	Billing   BillingConfig
	Store     StoreConfig
	Printer   PrinterConfig
	CORS      CORSConfig
	RateLimit RateLimitConfig
	Drafts    DraftsConfig
}

type AppConfig struct {
	Name     string
	Env      string
	Port     string
	Debug    bool
	LogLevel string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	SSLMode  string
	Timezone string
}

// UpstreamConfig points at the store REST API that owns persisted bills.
type UpstreamConfig struct {
	BaseURL   string
	Timeout   time.Duration
	Endpoints map[string]string
}

type BillingConfig struct {
	DefaultLanguage string
	Currency        string
}

// StoreConfig is the letterhead printed on bills.
type StoreConfig struct {
	Name    string
	Address string
	Phone   string
	TaxID   string
}

type PrinterConfig struct {
	Type         string
	USBPath      string
	Address      string
	CharWidth    int
	CodePage     int
	DialTimeout  time.Duration
	WriteTimeout time.Duration
}

type CORSConfig struct {
	AllowedOrigins []string
	AllowedMethods []string
	AllowedHeaders []string
}

type RateLimitConfig struct {
	Requests int
	Duration int
}

type DraftsConfig struct {
	NodeID int64
}

func Load() *Config {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		slog.Warn(".env file not found, using environment variables", "error", err)
	}

	// Set defaults
	viper.SetDefault("APP_NAME", "backoffice-api")
	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("APP_DEBUG", true)
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("DB_HOST", "localhost")
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_NAME", "backoffice")
	viper.SetDefault("DB_USER", "postgres")
	viper.SetDefault("DB_PASSWORD", "postgres")
	viper.SetDefault("DB_SSL_MODE", "disable")
	viper.SetDefault("DB_TIMEZONE", "Asia/Jerusalem")
	viper.SetDefault("UPSTREAM_BASE_URL", "http://localhost:3000/api")
	viper.SetDefault("UPSTREAM_TIMEOUT_SECONDS", 15)
	viper.SetDefault("UPSTREAM_PATH_CUSTOMER_BILLS", "/customer-bills")
	viper.SetDefault("UPSTREAM_PATH_TRADER_BILLS", "/trader-bills")
	viper.SetDefault("UPSTREAM_PATH_WHOLESALER_ORDERS", "/wholesaler-orders")
	viper.SetDefault("UPSTREAM_PATH_INVOICES", "/invoices")
	viper.SetDefault("UPSTREAM_PATH_CUSTOMER_DEBTS", "/customer-debts")
	viper.SetDefault("BILLING_DEFAULT_LANGUAGE", "en")
	viper.SetDefault("BILLING_CURRENCY", "ILS")
	viper.SetDefault("STORE_NAME", "")
	viper.SetDefault("STORE_ADDRESS", "")
	viper.SetDefault("STORE_PHONE", "")
	viper.SetDefault("STORE_TAX_ID", "")
	viper.SetDefault("PRINTER_TYPE", "none")
	viper.SetDefault("PRINTER_USB_PATH", "/dev/usb/lp0")
	viper.SetDefault("PRINTER_ADDRESS", "")
	viper.SetDefault("PRINTER_CHAR_WIDTH", 48)
	viper.SetDefault("PRINTER_CODE_PAGE", 22)
	viper.SetDefault("PRINTER_DIAL_TIMEOUT_SECONDS", 5)
	viper.SetDefault("PRINTER_WRITE_TIMEOUT_SECONDS", 10)
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:5173")
	viper.SetDefault("CORS_ALLOWED_HEADERS", []string{})
	viper.SetDefault("RATE_LIMIT_REQUESTS", 100)
	viper.SetDefault("RATE_LIMIT_DURATION", 60)
	viper.SetDefault("DRAFTS_NODE_ID", 1)

	return &Config{
		App: AppConfig{
			Name:     viper.GetString("APP_NAME"),
			Env:      viper.GetString("APP_ENV"),
			Port:     viper.GetString("APP_PORT"),
			Debug:    viper.GetBool("APP_DEBUG"),
			LogLevel: viper.GetString("LOG_LEVEL"),
		},
		Database: DatabaseConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			Name:     viper.GetString("DB_NAME"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASSWORD"),
			SSLMode:  viper.GetString("DB_SSL_MODE"),
			Timezone: viper.GetString("DB_TIMEZONE"),
		},
		Upstream: UpstreamConfig{
			BaseURL: strings.TrimRight(viper.GetString("UPSTREAM_BASE_URL"), "/"),
			Timeout: time.Duration(viper.GetInt("UPSTREAM_TIMEOUT_SECONDS")) * time.Second,
			Endpoints: map[string]string{
				"customer_bills":    viper.GetString("UPSTREAM_PATH_CUSTOMER_BILLS"),
				"trader_bills":      viper.GetString("UPSTREAM_PATH_TRADER_BILLS"),
				"wholesaler_orders": viper.GetString("UPSTREAM_PATH_WHOLESALER_ORDERS"),
				"invoices":          viper.GetString("UPSTREAM_PATH_INVOICES"),
				"customer_debts":    viper.GetString("UPSTREAM_PATH_CUSTOMER_DEBTS"),
			},
		},
		Billing: BillingConfig{
			DefaultLanguage: viper.GetString("BILLING_DEFAULT_LANGUAGE"),
			Currency:        viper.GetString("BILLING_CURRENCY"),
		},
		Store: StoreConfig{
			Name:    viper.GetString("STORE_NAME"),
			Address: viper.GetString("STORE_ADDRESS"),
			Phone:   viper.GetString("STORE_PHONE"),
			TaxID:   viper.GetString("STORE_TAX_ID"),
		},
		Printer: PrinterConfig{
			Type:         viper.GetString("PRINTER_TYPE"),
			USBPath:      viper.GetString("PRINTER_USB_PATH"),
			Address:      viper.GetString("PRINTER_ADDRESS"),
			CharWidth:    viper.GetInt("PRINTER_CHAR_WIDTH"),
			CodePage:     viper.GetInt("PRINTER_CODE_PAGE"),
			DialTimeout:  time.Duration(viper.GetInt("PRINTER_DIAL_TIMEOUT_SECONDS")) * time.Second,
			WriteTimeout: time.Duration(viper.GetInt("PRINTER_WRITE_TIMEOUT_SECONDS")) * time.Second,
		},
		CORS: CORSConfig{
			AllowedOrigins: viper.GetStringSlice("CORS_ALLOWED_ORIGINS"),
			AllowedMethods: viper.GetStringSlice("CORS_ALLOWED_METHODS"),
			AllowedHeaders: viper.GetStringSlice("CORS_ALLOWED_HEADERS"),
		},
		RateLimit: RateLimitConfig{
			Requests: viper.GetInt("RATE_LIMIT_REQUESTS"),
			Duration: viper.GetInt("RATE_LIMIT_DURATION"),
		},
		Drafts: DraftsConfig{
			NodeID: viper.GetInt64("DRAFTS_NODE_ID"),
		},
	}
}

func (c *DatabaseConfig) DSN() string {
	return "host=" + c.Host +
		" user=" + c.User +
		" password=" + c.Password +
		" dbname=" + c.Name +
		" port=" + c.Port +
		" sslmode=" + c.SSLMode +
		" TimeZone=" + c.Timezone
}

// SlogLevel maps LOG_LEVEL onto a slog level, defaulting to info.
func (c *AppConfig) SlogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return level
}
