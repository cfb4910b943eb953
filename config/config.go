package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App     AppConfig
	DB      DBConfig
	Redis   RedisConfig
	Session SessionConfig
}

type AppConfig struct {
	Port           string
	Env            string
	LogLevel       string
	AllowedOrigins []string
}

// IsProduction reports whether driver error text must be masked in responses.
func (c AppConfig) IsProduction() bool {
	return strings.EqualFold(c.Env, "production")
}

// DBCredential is the login for one role-scoped database user.
type DBCredential struct {
	User     string
	Password string
}

type DBConfig struct {
	Host             string
	Port             string
	Name             string
	SSLMode          string
	StatementTimeout time.Duration
	ConnectTimeout   time.Duration
	FallbackRole     string
	VerifyOnStart    bool
	AutoMigrate      bool

	Patient   DBCredential
	Physician DBCredential
	Admin     DBCredential
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

type SessionConfig struct {
	Secret         string
	CookieName     string
	Expiry         time.Duration
	RememberExpiry time.Duration
	SecureCookie   bool

	// Failed logins allowed per email within LoginWindow; zero disables throttling.
	MaxLoginAttempts int
	LoginWindow      time.Duration
}

func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	viper.SetDefault("APP_PORT", "5000")
	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_NAME", "healthsystem")
	viper.SetDefault("DB_SSLMODE", "disable")
	viper.SetDefault("DB_FALLBACK_ROLE", "admin")
	viper.SetDefault("DB_VERIFY_ON_START", true)
	viper.SetDefault("DB_AUTO_MIGRATE", false)
	viper.SetDefault("REDIS_HOST", "localhost")
	viper.SetDefault("REDIS_PORT", "6379")
	viper.SetDefault("SESSION_COOKIE_NAME", "hs_session")
	viper.SetDefault("LOGIN_MAX_ATTEMPTS", 5)

	// A missing .env is fine when everything comes from the environment.
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}

	config := &Config{
		App: AppConfig{
			Port:           viper.GetString("APP_PORT"),
			Env:            viper.GetString("APP_ENV"),
			LogLevel:       viper.GetString("LOG_LEVEL"),
			AllowedOrigins: splitCSV(viper.GetString("CORS_ALLOWED_ORIGINS")),
		},
		DB: DBConfig{
			Host:             viper.GetString("DB_HOST"),
			Port:             viper.GetString("DB_PORT"),
			Name:             viper.GetString("DB_NAME"),
			SSLMode:          viper.GetString("DB_SSLMODE"),
			StatementTimeout: durationOr(viper.GetString("DB_STATEMENT_TIMEOUT"), 5*time.Second),
			ConnectTimeout:   durationOr(viper.GetString("DB_CONNECT_TIMEOUT"), 5*time.Second),
			FallbackRole:     viper.GetString("DB_FALLBACK_ROLE"),
			VerifyOnStart:    viper.GetBool("DB_VERIFY_ON_START"),
			AutoMigrate:      viper.GetBool("DB_AUTO_MIGRATE"),
			Patient: DBCredential{
				User:     viper.GetString("DB_PATIENT_USER"),
				Password: viper.GetString("DB_PATIENT_PASSWORD"),
			},
			Physician: DBCredential{
				User:     viper.GetString("DB_PHYSICIAN_USER"),
				Password: viper.GetString("DB_PHYSICIAN_PASSWORD"),
			},
			Admin: DBCredential{
				User:     viper.GetString("DB_ADMIN_USER"),
				Password: viper.GetString("DB_ADMIN_PASSWORD"),
			},
		},
		Redis: RedisConfig{
			Host:     viper.GetString("REDIS_HOST"),
			Port:     viper.GetString("REDIS_PORT"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		Session: SessionConfig{
			Secret:         viper.GetString("SESSION_SECRET"),
			CookieName:     viper.GetString("SESSION_COOKIE_NAME"),
			Expiry:         durationOr(viper.GetString("SESSION_EXPIRY"), 12*time.Hour),
			RememberExpiry: durationOr(viper.GetString("SESSION_REMEMBER_EXPIRY"), 30*24*time.Hour),
			SecureCookie:   viper.GetBool("SESSION_SECURE_COOKIE"),

			MaxLoginAttempts: viper.GetInt("LOGIN_MAX_ATTEMPTS"),
			LoginWindow:      durationOr(viper.GetString("LOGIN_WINDOW"), 15*time.Minute),
		},
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate reports every required setting that is missing.
func (c *Config) Validate() error {
	var missing []string
	require := func(name, value string) {
		if strings.TrimSpace(value) == "" {
			missing = append(missing, name)
		}
	}

	require("DB_HOST", c.DB.Host)
	require("DB_NAME", c.DB.Name)
	require("DB_PATIENT_USER", c.DB.Patient.User)
	require("DB_PATIENT_PASSWORD", c.DB.Patient.Password)
	require("DB_PHYSICIAN_USER", c.DB.Physician.User)
	require("DB_PHYSICIAN_PASSWORD", c.DB.Physician.Password)
	require("DB_ADMIN_USER", c.DB.Admin.User)
	require("DB_ADMIN_PASSWORD", c.DB.Admin.Password)
	require("SESSION_SECRET", c.Session.Secret)

	if len(missing) > 0 {
		return fmt.Errorf("missing required configuration: %s", strings.Join(missing, ", "))
	}
	return nil
}

func durationOr(raw string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}

func splitCSV(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
