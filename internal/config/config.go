package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server ServerConfig
	DB     DBConfig
	JWT    JWTConfig
	S3     S3Config
	Log    LogConfig
	CORS   CORSConfig
	Import ImportConfig
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
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	Name            string        `mapstructure:"name"`
	SSLMode         string        `mapstructure:"sslmode"`
	MaxOpen         int           `mapstructure:"max_open"`
	MaxIdle         int           `mapstructure:"max_idle"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
}

// DSN returns the PostgreSQL connection string.
func (d *DBConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode,
	)
}

// JWTConfig holds JWT signing and expiry settings.
type JWTConfig struct {
	Secret             string        `mapstructure:"secret"`
	AccessTokenExpiry  time.Duration `mapstructure:"access_expiry"`
	RefreshTokenExpiry time.Duration `mapstructure:"refresh_expiry"`
	Issuer             string        `mapstructure:"issuer"`
}

// S3Config holds AWS S3 settings for source document archival.
type S3Config struct {
	Region        string `mapstructure:"region"`
	Bucket        string `mapstructure:"bucket"`
	Endpoint      string `mapstructure:"endpoint"`
	AccessKey     string `mapstructure:"access_key"`
	SecretKey     string `mapstructure:"secret_key"`
	MaxFileSizeMB int64  `mapstructure:"max_file_size_mb"`
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

// ImportConfig holds document import limits and parse parallelism.
type ImportConfig struct {
	MaxSpreadsheets int `mapstructure:"max_spreadsheets"`
	MaxPDFs         int `mapstructure:"max_pdfs"`
	Concurrency     int `mapstructure:"concurrency"`
}

// Load reads configuration from environment variables with the
// LAYERBUILDER_ prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("LAYERBUILDER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "30s")
	v.SetDefault("server.write_timeout", "30s")
	v.SetDefault("server.environment", "development")

	// DB defaults
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.user", "layerbuilder")
	v.SetDefault("db.password", "layerbuilder_secret")
	v.SetDefault("db.name", "layerbuilder_db")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.max_open", 25)
	v.SetDefault("db.max_idle", 10)
	v.SetDefault("db.conn_max_lifetime", "30m")

	// JWT defaults
	v.SetDefault("jwt.secret", "change-me-in-production")
	v.SetDefault("jwt.access_expiry", "15m")
	v.SetDefault("jwt.refresh_expiry", "168h")
	v.SetDefault("jwt.issuer", "layer-builder")

	// S3 defaults
	v.SetDefault("s3.region", "us-east-1")
	v.SetDefault("s3.bucket", "layer-builder-uploads")
	v.SetDefault("s3.endpoint", "")
	v.SetDefault("s3.max_file_size_mb", 50)

	// Log defaults
	v.SetDefault("log.level", "debug")
	v.SetDefault("log.format", "console")

	// CORS defaults (localhost origins for development)
	v.SetDefault("cors.allowed_origins", "http://localhost:3000,http://127.0.0.1:3000")

	// Import defaults
	v.SetDefault("import.max_spreadsheets", 10)
	v.SetDefault("import.max_pdfs", 25)
	v.SetDefault("import.concurrency", 4)

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":             "LAYERBUILDER_SERVER_PORT",
		"server.read_timeout":     "LAYERBUILDER_SERVER_READ_TIMEOUT",
		"server.write_timeout":    "LAYERBUILDER_SERVER_WRITE_TIMEOUT",
		"server.environment":      "LAYERBUILDER_SERVER_ENVIRONMENT",
		"db.host":                 "LAYERBUILDER_DB_HOST",
		"db.port":                 "LAYERBUILDER_DB_PORT",
		"db.user":                 "LAYERBUILDER_DB_USER",
		"db.password":             "LAYERBUILDER_DB_PASSWORD",
		"db.name":                 "LAYERBUILDER_DB_NAME",
		"db.sslmode":              "LAYERBUILDER_DB_SSLMODE",
		"db.max_open":             "LAYERBUILDER_DB_MAX_OPEN",
		"db.max_idle":             "LAYERBUILDER_DB_MAX_IDLE",
		"db.conn_max_lifetime":    "LAYERBUILDER_DB_CONN_MAX_LIFETIME",
		"jwt.secret":              "LAYERBUILDER_JWT_SECRET",
		"jwt.access_expiry":       "LAYERBUILDER_JWT_ACCESS_EXPIRY",
		"jwt.refresh_expiry":      "LAYERBUILDER_JWT_REFRESH_EXPIRY",
		"jwt.issuer":              "LAYERBUILDER_JWT_ISSUER",
		"s3.region":               "LAYERBUILDER_S3_REGION",
		"s3.bucket":               "LAYERBUILDER_S3_BUCKET",
		"s3.endpoint":             "LAYERBUILDER_S3_ENDPOINT",
		"s3.access_key":           "LAYERBUILDER_S3_ACCESS_KEY",
		"s3.secret_key":           "LAYERBUILDER_S3_SECRET_KEY",
		"s3.max_file_size_mb":     "LAYERBUILDER_S3_MAX_FILE_SIZE_MB",
		"log.level":               "LAYERBUILDER_LOG_LEVEL",
		"log.format":              "LAYERBUILDER_LOG_FORMAT",
		"cors.allowed_origins":    "LAYERBUILDER_CORS_ALLOWED_ORIGINS",
		"import.max_spreadsheets": "LAYERBUILDER_IMPORT_MAX_SPREADSHEETS",
		"import.max_pdfs":         "LAYERBUILDER_IMPORT_MAX_PDFS",
		"import.concurrency":      "LAYERBUILDER_IMPORT_CONCURRENCY",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	// Railway/Heroku/Render set a PORT env var. Use it if
	// LAYERBUILDER_SERVER_PORT is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("LAYERBUILDER_SERVER_PORT") == "" {
		serverPort = ":" + port
	}

	cfg.Server = ServerConfig{
		Port:         serverPort,
		ReadTimeout:  v.GetDuration("server.read_timeout"),
		WriteTimeout: v.GetDuration("server.write_timeout"),
		Environment:  v.GetString("server.environment"),
	}
	cfg.DB = DBConfig{
		Host:            v.GetString("db.host"),
		Port:            v.GetInt("db.port"),
		User:            v.GetString("db.user"),
		Password:        v.GetString("db.password"),
		Name:            v.GetString("db.name"),
		SSLMode:         v.GetString("db.sslmode"),
		MaxOpen:         v.GetInt("db.max_open"),
		MaxIdle:         v.GetInt("db.max_idle"),
		ConnMaxLifetime: v.GetDuration("db.conn_max_lifetime"),
	}
	cfg.JWT = JWTConfig{
		Secret:             v.GetString("jwt.secret"),
		AccessTokenExpiry:  v.GetDuration("jwt.access_expiry"),
		RefreshTokenExpiry: v.GetDuration("jwt.refresh_expiry"),
		Issuer:             v.GetString("jwt.issuer"),
	}
	cfg.S3 = S3Config{
		Region:        v.GetString("s3.region"),
		Bucket:        v.GetString("s3.bucket"),
		Endpoint:      v.GetString("s3.endpoint"),
		AccessKey:     v.GetString("s3.access_key"),
		SecretKey:     v.GetString("s3.secret_key"),
		MaxFileSizeMB: v.GetInt64("s3.max_file_size_mb"),
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

	cfg.Import = ImportConfig{
		MaxSpreadsheets: v.GetInt("import.max_spreadsheets"),
		MaxPDFs:         v.GetInt("import.max_pdfs"),
		Concurrency:     v.GetInt("import.concurrency"),
	}

	return cfg, nil
}
