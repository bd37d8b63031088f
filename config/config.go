package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const DefaultEnvFile = ".env"

type Config struct {
	AppEnv   string `mapstructure:"APP_ENV"`
	Port     string `mapstructure:"PORT"`
	LogLevel string `mapstructure:"LOG_LEVEL"`

	// Hospital REST API yang dikelola console ini.
	APIBaseURL string        `mapstructure:"API_BASE_URL"`
	APITimeout time.Duration `mapstructure:"API_TIMEOUT"`

	JWTSecret         string        `mapstructure:"JWT_SECRET"`
	TokenTTL          time.Duration `mapstructure:"TOKEN_TTL"`
	AdminUsername     string        `mapstructure:"ADMIN_USERNAME"`
	AdminPasswordHash string        `mapstructure:"ADMIN_PASSWORD_HASH"`
	AdminFullname     string        `mapstructure:"ADMIN_FULLNAME"`
	AdminEmail        string        `mapstructure:"ADMIN_EMAIL"`

	// Log aktivitas di MariaDB, aktif hanya jika DB_HOST diisi.
	DBUser     string `mapstructure:"DB_USER"`
	DBPassword string `mapstructure:"DB_PASSWORD"`
	DBHost     string `mapstructure:"DB_HOST"`
	DBPort     string `mapstructure:"DB_PORT"`
	DBName     string `mapstructure:"DB_NAME"`

	// EnvFileLoaded is false when the .env file was missing and only the
	// process environment was used.
	EnvFileLoaded bool `mapstructure:"-"`
}

var keys = []string{
	"APP_ENV", "PORT", "LOG_LEVEL",
	"API_BASE_URL", "API_TIMEOUT",
	"JWT_SECRET", "TOKEN_TTL",
	"ADMIN_USERNAME", "ADMIN_PASSWORD_HASH", "ADMIN_FULLNAME", "ADMIN_EMAIL",
	"DB_USER", "DB_PASSWORD", "DB_HOST", "DB_PORT", "DB_NAME",
}

// Load membaca file .env (jika ada) lalu environment variable. Nilai dari
// environment proses tidak ditimpa oleh file .env. Load tidak memvalidasi;
// panggil Validate setelah override dari flag diterapkan.
func Load(envFile string) (*Config, error) {
	if envFile == "" {
		envFile = DefaultEnvFile
	}
	loaded := godotenv.Load(envFile) == nil

	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("APP_ENV", "development")
	v.SetDefault("PORT", "8080")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("API_BASE_URL", "http://localhost:5000/api")
	v.SetDefault("API_TIMEOUT", "10s")
	v.SetDefault("TOKEN_TTL", "8h")
	v.SetDefault("ADMIN_USERNAME", "admin")
	v.SetDefault("ADMIN_FULLNAME", "Administrator")
	v.SetDefault("DB_PORT", "3306")

	for _, key := range keys {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("bind %s: %w", key, err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	cfg.EnvFileLoaded = loaded
	cfg.APIBaseURL = strings.TrimRight(cfg.APIBaseURL, "/")
	return cfg, nil
}

func (c *Config) IsDev() bool {
	return c.AppEnv == "development"
}

// ActivityLogEnabled reports whether notices should be persisted to MariaDB.
func (c *Config) ActivityLogEnabled() bool {
	return c.DBHost != ""
}

// Validate checks the settings every command needs.
func (c *Config) Validate() error {
	u, err := url.Parse(c.APIBaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("API_BASE_URL must be an absolute http(s) URL, got %q", c.APIBaseURL)
	}
	if c.APITimeout <= 0 {
		return fmt.Errorf("API_TIMEOUT must be positive, got %s", c.APITimeout)
	}
	if c.ActivityLogEnabled() && (c.DBUser == "" || c.DBName == "") {
		return errors.New("DB_USER and DB_NAME are required when DB_HOST is set")
	}
	return nil
}

// ValidateServer checks the settings the admin console server needs. Outside
// development the login credentials must be configured explicitly.
func (c *Config) ValidateServer() error {
	if c.TokenTTL <= 0 {
		return fmt.Errorf("TOKEN_TTL must be positive, got %s", c.TokenTTL)
	}
	if c.IsDev() {
		return nil
	}
	var errs []error
	if c.JWTSecret == "" {
		errs = append(errs, errors.New("JWT_SECRET is required outside development"))
	}
	if c.AdminPasswordHash == "" {
		errs = append(errs, errors.New("ADMIN_PASSWORD_HASH is required outside development"))
	}
	return errors.Join(errs...)
}
