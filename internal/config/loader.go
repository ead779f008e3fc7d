package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is the path checked for YAML configuration.
const DefaultConfigFile = "folio.yaml"

// Load returns a Config using the hierarchy: defaults < YAML < ENV.
// YAML file is optional; missing file is not an error.
func Load() (*Config, error) {
	return LoadFrom(DefaultConfigFile)
}

// LoadFrom returns a Config loaded from the given YAML path using the
// hierarchy: defaults < YAML < ENV. The YAML file is optional.
func LoadFrom(yamlPath string) (*Config, error) {
	cfg := Defaults()

	if err := loadYAML(&cfg, yamlPath); err != nil {
		return nil, fmt.Errorf("config yaml: %w", err)
	}

	loadEnv(&cfg)

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("config validate: %w", err)
	}

	return &cfg, nil
}

// loadYAML reads the YAML file and unmarshals it over cfg.
// Returns nil if the file does not exist.
func loadYAML(cfg *Config, path string) error {
	data, err := os.ReadFile(path) //nolint:gosec // G304: path is validated by caller
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}

	return nil
}

// loadEnv overlays environment variables onto cfg.
// Only non-empty env values override the current config.
func loadEnv(cfg *Config) {
	setString(&cfg.Server.Port, "FOLIO_PORT")
	setString(&cfg.Server.CORSOrigin, "FOLIO_CORS_ORIGIN")

	setString(&cfg.Postgres.DSN, "DATABASE_URL")
	setInt32(&cfg.Postgres.MaxConns, "FOLIO_PG_MAX_CONNS")
	setInt32(&cfg.Postgres.MinConns, "FOLIO_PG_MIN_CONNS")
	setDuration(&cfg.Postgres.MaxConnLifetime, "FOLIO_PG_MAX_CONN_LIFETIME")
	setDuration(&cfg.Postgres.MaxConnIdleTime, "FOLIO_PG_MAX_CONN_IDLE_TIME")
	setDuration(&cfg.Postgres.HealthCheck, "FOLIO_PG_HEALTH_CHECK")

	setString(&cfg.Cache.Backend, "FOLIO_CACHE_BACKEND")
	setInt(&cfg.Cache.MaxEntries, "FOLIO_CACHE_MAX_ENTRIES")
	setInt64(&cfg.Cache.MaxSizeMB, "FOLIO_CACHE_MAX_SIZE_MB")
	setBool(&cfg.Cache.SingleFlight, "FOLIO_CACHE_SINGLE_FLIGHT")
	setBool(&cfg.Cache.L2Enabled, "FOLIO_CACHE_L2_ENABLED")
	setString(&cfg.Cache.L2Bucket, "FOLIO_CACHE_L2_BUCKET")
	setDuration(&cfg.Cache.L2TTL, "FOLIO_CACHE_L2_TTL")
	setDuration(&cfg.Cache.L1Expire, "FOLIO_CACHE_L1_EXPIRE")
	setString(&cfg.NATS.URL, "NATS_URL")

	setBool(&cfg.Auth.Enabled, "FOLIO_AUTH_ENABLED")
	setString(&cfg.Auth.TokenSecret, "FOLIO_TOKEN_SECRET")
	setDuration(&cfg.Auth.TokenExpiry, "FOLIO_TOKEN_EXPIRY")
	setInt(&cfg.Auth.BcryptCost, "FOLIO_BCRYPT_COST")

	setString(&cfg.SMTP.Host, "FOLIO_SMTP_HOST")
	setInt(&cfg.SMTP.Port, "FOLIO_SMTP_PORT")
	setString(&cfg.SMTP.From, "FOLIO_SMTP_FROM")
	setString(&cfg.SMTP.Password, "FOLIO_SMTP_PASSWORD")
	setString(&cfg.SMTP.NotifyTo, "FOLIO_NOTIFY_TO")

	setString(&cfg.Upload.Dir, "FOLIO_UPLOAD_DIR")
	setInt64(&cfg.Upload.MaxSizeMB, "FOLIO_UPLOAD_MAX_SIZE_MB")

	setFloat64(&cfg.Rate.RequestsPerSecond, "FOLIO_RATE_RPS")
	setInt(&cfg.Rate.Burst, "FOLIO_RATE_BURST")

	setInt(&cfg.Breaker.MaxFailures, "FOLIO_BREAKER_MAX_FAILURES")
	setDuration(&cfg.Breaker.Timeout, "FOLIO_BREAKER_TIMEOUT")

	setString(&cfg.Logging.Level, "FOLIO_LOG_LEVEL")
	setString(&cfg.Logging.Service, "FOLIO_LOG_SERVICE")
	setBool(&cfg.Logging.Async, "FOLIO_LOG_ASYNC")

	setBool(&cfg.Otel.Enabled, "FOLIO_OTEL_ENABLED")
	setString(&cfg.Otel.Endpoint, "FOLIO_OTEL_ENDPOINT")

	setString(&cfg.Webhook.IdentitySecret, "FOLIO_WEBHOOK_IDENTITY_SECRET")
}

// validate checks that required fields are set.
func validate(cfg *Config) error {
	if cfg.Server.Port == "" {
		return errors.New("server.port is required")
	}
	if cfg.Postgres.DSN == "" {
		return errors.New("postgres.dsn is required")
	}
	if cfg.Postgres.MaxConns < 1 {
		return errors.New("postgres.max_conns must be >= 1")
	}
	switch cfg.Cache.Backend {
	case "memory", "ristretto":
	default:
		return fmt.Errorf("cache.backend must be \"memory\" or \"ristretto\", got %q", cfg.Cache.Backend)
	}
	if cfg.Cache.L2Enabled && cfg.NATS.URL == "" {
		return errors.New("nats.url is required when cache.l2_enabled is set")
	}
	if cfg.Auth.Enabled && cfg.Auth.TokenSecret == "" {
		return errors.New("auth.token_secret is required when auth is enabled")
	}
	if cfg.Rate.Burst < 1 {
		return errors.New("rate.burst must be >= 1")
	}
	if cfg.Breaker.MaxFailures < 1 {
		return errors.New("breaker.max_failures must be >= 1")
	}
	if cfg.Upload.MaxSizeMB < 1 {
		return errors.New("upload.max_size_mb must be >= 1")
	}
	return nil
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}

func setInt32(dst *int32, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 32); err == nil {
			*dst = int32(n)
		}
	}
}

func setInt64(dst *int64, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			*dst = n
		}
	}
}

func setFloat64(dst *float64, key string) {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			*dst = f
		}
	}
}

func setBool(dst *bool, key string) {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			*dst = b
		}
	}
}

func setDuration(dst *time.Duration, key string) {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			*dst = d
		}
	}
}
