package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"net/url"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Port    int    `envconfig:"PORT" default:"5000"`
	GinMode string `envconfig:"GIN_MODE" default:"debug"`

	// session cookie
	SecretKey           string        `envconfig:"SECRET_KEY" default:"dev-secret-key-change-in-production"`
	SessionCookie       string        `envconfig:"SESSION_COOKIE" default:"chatrelay_session"`
	SessionTTL          time.Duration `envconfig:"SESSION_TTL" default:"168h"`
	CookieSecure        bool          `envconfig:"COOKIE_SECURE" default:"false"`
	LoginAccessCodeHash string        `envconfig:"LOGIN_ACCESS_CODE_HASH"`

	// record store
	DataDir       string `envconfig:"DATA_DIR" default:"data"`
	RecordBackend string `envconfig:"RECORD_BACKEND" default:"file"`
	RedisAddr     string `envconfig:"REDIS_ADDR" default:"127.0.0.1:6379"`
	RedisPassword string `envconfig:"REDIS_PASSWORD"`
	RedisDB       int    `envconfig:"REDIS_DB" default:"0"`
	RedisPrefix   string `envconfig:"REDIS_PREFIX" default:"chatrelay:"`

	// external history database (written by the automation engine)
	HistoryDBDriver string `envconfig:"HISTORY_DB_DRIVER" default:"postgres"`
	HistoryDBDSN    string `envconfig:"HISTORY_DB_DSN"`
	HistoryTable    string `envconfig:"HISTORY_TABLE" default:"n8n_chat_histories"`
	DBHost          string `envconfig:"DB_HOST" default:"localhost"`
	DBPort          string `envconfig:"DB_PORT" default:"5432"`
	DBName          string `envconfig:"DB_NAME" default:"n8n"`
	DBUser          string `envconfig:"DB_USER" default:"postgres"`
	DBPassword      string `envconfig:"DB_PASSWORD"`
	DBSSLMode       string `envconfig:"DB_SSLMODE" default:"disable"`

	// outbound relay
	WebhookTimeout time.Duration `envconfig:"WEBHOOK_TIMEOUT" default:"120s"`
}

// Load reads an optional .env file and then the process environment.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Printf("[config] ignoring .env: %v", err)
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}

	cfg.RecordBackend = strings.ToLower(strings.TrimSpace(cfg.RecordBackend))
	switch cfg.RecordBackend {
	case "file", "redis":
	default:
		return Config{}, fmt.Errorf("config: unsupported RECORD_BACKEND=%q", cfg.RecordBackend)
	}
	cfg.HistoryDBDriver = strings.ToLower(strings.TrimSpace(cfg.HistoryDBDriver))
	if cfg.WebhookTimeout <= 0 {
		cfg.WebhookTimeout = 120 * time.Second
	}
	return cfg, nil
}

// HistoryDSN returns HISTORY_DB_DSN when set, otherwise a DSN assembled from
// the DB_* variables for the configured driver.
func (c Config) HistoryDSN() string {
	if c.HistoryDBDSN != "" {
		return c.HistoryDBDSN
	}
	switch c.HistoryDBDriver {
	case "mysql":
		// app:apppass@tcp(127.0.0.1:3306)/n8n?charset=utf8mb4&parseTime=true&loc=Local
		return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=true&loc=Local",
			c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName,
		)
	case "sqlite":
		return c.DBName + ".db"
	default:
		return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
			c.DBHost, c.DBPort, c.DBUser, quoteDSNValue(c.DBPassword), c.DBName, c.DBSSLMode,
		)
	}
}

func quoteDSNValue(v string) string {
	if v == "" {
		return "''"
	}
	if strings.ContainsAny(v, " '\\") {
		return "'" + strings.NewReplacer(`\`, `\\`, `'`, `\'`).Replace(v) + "'"
	}
	return v
}

// RedisURL is only used for log lines; credentials are stripped.
func (c Config) RedisURL() string {
	u := url.URL{Scheme: "redis", Host: c.RedisAddr, Path: fmt.Sprintf("/%d", c.RedisDB)}
	return u.String()
}
