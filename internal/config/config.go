package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/viper"

	"billmint/internal/domain"
)

// Config holds all application configuration.
type Config struct {
	Server ServerConfig
	DB     DBConfig
	S3     S3Config
	Log    LogConfig
	CORS   CORSConfig
	Seller SellerConfig
	Tax    TaxConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"`
}

// DBConfig holds PostgreSQL connection settings.
type DBConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode"`
	MaxOpen  int    `mapstructure:"max_open"`
	MaxIdle  int    `mapstructure:"max_idle"`
}

// DSN returns the PostgreSQL connection string.
func (d *DBConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode,
	)
}

// S3Config holds AWS S3 settings for the document artifact store.
type S3Config struct {
	Region        string `mapstructure:"region"`
	Bucket        string `mapstructure:"bucket"`
	Endpoint      string `mapstructure:"endpoint"`
	AccessKey     string `mapstructure:"access_key"`
	SecretKey     string `mapstructure:"secret_key"`
	PresignExpiry int64  `mapstructure:"presign_expiry"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// SellerConfig holds the invoicing business identity printed on every
// document. Lifted into configuration so no literals live in layout code.
type SellerConfig struct {
	Name       string `mapstructure:"name"`
	Street     string `mapstructure:"street"`
	City       string `mapstructure:"city"`
	State      string `mapstructure:"state"`
	PostalCode string `mapstructure:"postal_code"`
	Country    string `mapstructure:"country"`
	PANNumber  string `mapstructure:"pan_number"`
	GSTNumber  string `mapstructure:"gst_number"`
	Email      string `mapstructure:"email"`
	Phone      string `mapstructure:"phone"`
}

// Profile converts the config section into the domain seller profile.
func (s *SellerConfig) Profile() domain.SellerProfile {
	return domain.SellerProfile{
		Name: s.Name,
		Address: domain.Address{
			Street:     s.Street,
			City:       s.City,
			State:      s.State,
			PostalCode: s.PostalCode,
			Country:    s.Country,
		},
		PANNumber: s.PANNumber,
		GSTNumber: s.GSTNumber,
		Email:     s.Email,
		Phone:     s.Phone,
	}
}

// TaxConfig holds GST slab settings. The slab is configuration, never a
// constant in resolver code.
type TaxConfig struct {
	StandardRatePercent string `mapstructure:"standard_rate_percent"`
}

// StandardRate parses the configured slab percentage.
func (t *TaxConfig) StandardRate() (decimal.Decimal, error) {
	rate, err := decimal.NewFromString(t.StandardRatePercent)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid tax.standard_rate_percent %q: %w", t.StandardRatePercent, err)
	}
	if rate.IsNegative() {
		return decimal.Zero, fmt.Errorf("tax.standard_rate_percent must not be negative")
	}
	return rate, nil
}

// Load reads configuration from environment variables with the BILLMINT_ prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("BILLMINT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "15s")
	v.SetDefault("server.environment", "development")

	// DB defaults
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.user", "billmint")
	v.SetDefault("db.password", "billmint_secret")
	v.SetDefault("db.name", "billmint_db")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.max_open", 25)
	v.SetDefault("db.max_idle", 10)

	// S3 defaults
	v.SetDefault("s3.region", "ap-south-1")
	v.SetDefault("s3.bucket", "billmint-documents")
	v.SetDefault("s3.endpoint", "")
	v.SetDefault("s3.presign_expiry", 3600)

	// Log defaults
	v.SetDefault("log.level", "debug")
	v.SetDefault("log.format", "console")

	// CORS defaults (localhost origins for development)
	v.SetDefault("cors.allowed_origins", "http://localhost:3000,http://127.0.0.1:3000")

	// Seller defaults
	v.SetDefault("seller.name", "Rhombick Technologies")
	v.SetDefault("seller.street", "Sy No 1, Kanchanayakanahalli, Bommasandra Industrial Area")
	v.SetDefault("seller.city", "Bangalore")
	v.SetDefault("seller.state", "KA")
	v.SetDefault("seller.postal_code", "560105")
	v.SetDefault("seller.country", "India")
	v.SetDefault("seller.pan_number", "")
	v.SetDefault("seller.gst_number", "")
	v.SetDefault("seller.email", "")
	v.SetDefault("seller.phone", "")

	// Tax defaults (18% slab, split 9/9 intra-state)
	v.SetDefault("tax.standard_rate_percent", "18")

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":           "BILLMINT_SERVER_PORT",
		"server.read_timeout":   "BILLMINT_SERVER_READ_TIMEOUT",
		"server.write_timeout":  "BILLMINT_SERVER_WRITE_TIMEOUT",
		"server.environment":    "BILLMINT_SERVER_ENVIRONMENT",
		"db.host":               "BILLMINT_DB_HOST",
		"db.port":               "BILLMINT_DB_PORT",
		"db.user":               "BILLMINT_DB_USER",
		"db.password":           "BILLMINT_DB_PASSWORD",
		"db.name":               "BILLMINT_DB_NAME",
		"db.sslmode":            "BILLMINT_DB_SSLMODE",
		"db.max_open":           "BILLMINT_DB_MAX_OPEN",
		"db.max_idle":           "BILLMINT_DB_MAX_IDLE",
		"s3.region":             "BILLMINT_S3_REGION",
		"s3.bucket":             "BILLMINT_S3_BUCKET",
		"s3.endpoint":           "BILLMINT_S3_ENDPOINT",
		"s3.access_key":         "BILLMINT_S3_ACCESS_KEY",
		"s3.secret_key":         "BILLMINT_S3_SECRET_KEY",
		"s3.presign_expiry":     "BILLMINT_S3_PRESIGN_EXPIRY",
		"log.level":             "BILLMINT_LOG_LEVEL",
		"log.format":            "BILLMINT_LOG_FORMAT",
		"cors.allowed_origins":  "BILLMINT_CORS_ALLOWED_ORIGINS",
		"seller.name":           "BILLMINT_SELLER_NAME",
		"seller.street":         "BILLMINT_SELLER_STREET",
		"seller.city":           "BILLMINT_SELLER_CITY",
		"seller.state":          "BILLMINT_SELLER_STATE",
		"seller.postal_code":    "BILLMINT_SELLER_POSTAL_CODE",
		"seller.country":        "BILLMINT_SELLER_COUNTRY",
		"seller.pan_number":     "BILLMINT_SELLER_PAN_NUMBER",
		"seller.gst_number":     "BILLMINT_SELLER_GST_NUMBER",
		"seller.email":          "BILLMINT_SELLER_EMAIL",
		"seller.phone":          "BILLMINT_SELLER_PHONE",
		"tax.standard_rate_percent": "BILLMINT_TAX_STANDARD_RATE_PERCENT",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	// Railway/Heroku/Render set a PORT env var. Use it if BILLMINT_SERVER_PORT is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("BILLMINT_SERVER_PORT") == "" {
		serverPort = ":" + port
	}

	cfg.Server = ServerConfig{
		Port:         serverPort,
		ReadTimeout:  v.GetDuration("server.read_timeout"),
		WriteTimeout: v.GetDuration("server.write_timeout"),
		Environment:  v.GetString("server.environment"),
	}
	cfg.DB = DBConfig{
		Host:     v.GetString("db.host"),
		Port:     v.GetInt("db.port"),
		User:     v.GetString("db.user"),
		Password: v.GetString("db.password"),
		Name:     v.GetString("db.name"),
		SSLMode:  v.GetString("db.sslmode"),
		MaxOpen:  v.GetInt("db.max_open"),
		MaxIdle:  v.GetInt("db.max_idle"),
	}
	cfg.S3 = S3Config{
		Region:        v.GetString("s3.region"),
		Bucket:        v.GetString("s3.bucket"),
		Endpoint:      v.GetString("s3.endpoint"),
		AccessKey:     v.GetString("s3.access_key"),
		SecretKey:     v.GetString("s3.secret_key"),
		PresignExpiry: v.GetInt64("s3.presign_expiry"),
	}
	cfg.Log = LogConfig{
		Level:  v.GetString("log.level"),
		Format: v.GetString("log.format"),
	}

	// Parse CORS allowed origins from comma-separated string
	var corsOrigins []string
	for _, o := range strings.Split(v.GetString("cors.allowed_origins"), ",") {
		o = strings.TrimSpace(o)
		if o != "" {
			corsOrigins = append(corsOrigins, o)
		}
	}
	cfg.CORS = CORSConfig{
		AllowedOrigins: corsOrigins,
	}

	cfg.Seller = SellerConfig{
		Name:       v.GetString("seller.name"),
		Street:     v.GetString("seller.street"),
		City:       v.GetString("seller.city"),
		State:      v.GetString("seller.state"),
		PostalCode: v.GetString("seller.postal_code"),
		Country:    v.GetString("seller.country"),
		PANNumber:  v.GetString("seller.pan_number"),
		GSTNumber:  v.GetString("seller.gst_number"),
		Email:      v.GetString("seller.email"),
		Phone:      v.GetString("seller.phone"),
	}
	cfg.Tax = TaxConfig{
		StandardRatePercent: v.GetString("tax.standard_rate_percent"),
	}

	return cfg, nil
}
