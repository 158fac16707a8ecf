package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Store drivers
const (
	StorePostgres = "postgres"
	StoreMongo    = "mongo"
	StoreMemory   = "memory"
)

// Config holds the application configuration
type Config struct {
	Environment        string
	ServerPort         int
	LogLevel           string
	CORSAllowedOrigins []string
	StoreDriver        string
	DatabaseURL        string
	DBMaxOpenConns     int
	MongoURI           string
	MongoDatabase      string
	RedisURL           string
	SummaryCacheTTL    time.Duration
	RateLimitPerMinute int
	RequestTimeout     time.Duration
	OTLPEndpoint       string
}

// IsDevelopment reports whether the service runs in a development environment
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

var defaults = map[string]any{
	"SERVER_PORT":                 "4000",
	"ENVIRONMENT":                 "development",
	"LOG_LEVEL":                   "info",
	"FRONTEND_URL":                "http://localhost:5173",
	"CORS_ALLOWED_ORIGINS":        "",
	"STORE_DRIVER":                "",
	"DATABASE_URL":                "",
	"DB_MAX_OPEN_CONNS":           "25",
	"MONGO_URI":                   "",
	"MONGO_DATABASE":              "ProEmployeeManager",
	"REDIS_URL":                   "",
	"SUMMARY_CACHE_TTL":           "5m",
	"RATE_LIMIT_PER_MINUTE":       "100",
	"REQUEST_TIMEOUT":             "10s",
	"OTEL_EXPORTER_OTLP_ENDPOINT": "",
}

// Load reads configuration from environment variables, optionally layered
// over a config file named by CONFIG_FILE
func Load() (*Config, error) {
	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.AutomaticEnv()

	if path := v.GetString("CONFIG_FILE"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	return fromViper(v)
}

func fromViper(v *viper.Viper) (*Config, error) {
	port, err := getInt(v, "SERVER_PORT")
	if err != nil {
		return nil, err
	}
	if port <= 0 || port > 65535 {
		return nil, fmt.Errorf("invalid SERVER_PORT: %d out of range", port)
	}

	maxOpen, err := getInt(v, "DB_MAX_OPEN_CONNS")
	if err != nil {
		return nil, err
	}

	rateLimit, err := getInt(v, "RATE_LIMIT_PER_MINUTE")
	if err != nil {
		return nil, err
	}

	cacheTTL, err := getDuration(v, "SUMMARY_CACHE_TTL")
	if err != nil {
		return nil, err
	}

	timeout, err := getDuration(v, "REQUEST_TIMEOUT")
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Environment:        v.GetString("ENVIRONMENT"),
		ServerPort:         port,
		LogLevel:           v.GetString("LOG_LEVEL"),
		CORSAllowedOrigins: allowedOrigins(v),
		DatabaseURL:        v.GetString("DATABASE_URL"),
		DBMaxOpenConns:     maxOpen,
		MongoURI:           v.GetString("MONGO_URI"),
		MongoDatabase:      v.GetString("MONGO_DATABASE"),
		RedisURL:           v.GetString("REDIS_URL"),
		SummaryCacheTTL:    cacheTTL,
		RateLimitPerMinute: rateLimit,
		RequestTimeout:     timeout,
		OTLPEndpoint:       v.GetString("OTEL_EXPORTER_OTLP_ENDPOINT"),
	}

	driver, err := storeDriver(strings.ToLower(v.GetString("STORE_DRIVER")), cfg)
	if err != nil {
		return nil, err
	}
	cfg.StoreDriver = driver

	return cfg, nil
}

// storeDriver picks the durable store. Without an explicit driver the first
// configured store wins: postgres, then mongo, then the in-memory store.
func storeDriver(driver string, cfg *Config) (string, error) {
	switch driver {
	case "":
		switch {
		case cfg.DatabaseURL != "":
			return StorePostgres, nil
		case cfg.MongoURI != "":
			return StoreMongo, nil
		default:
			return StoreMemory, nil
		}
	case StorePostgres:
		if cfg.DatabaseURL == "" {
			return "", fmt.Errorf("STORE_DRIVER=postgres requires DATABASE_URL")
		}
	case StoreMongo:
		if cfg.MongoURI == "" {
			return "", fmt.Errorf("STORE_DRIVER=mongo requires MONGO_URI")
		}
	case StoreMemory:
	default:
		return "", fmt.Errorf("invalid STORE_DRIVER %q: want postgres, mongo or memory", driver)
	}
	return driver, nil
}

// allowedOrigins prefers CORS_ALLOWED_ORIGINS and falls back to FRONTEND_URL
func allowedOrigins(v *viper.Viper) []string {
	raw := v.GetString("CORS_ALLOWED_ORIGINS")
	if strings.TrimSpace(raw) == "" {
		raw = v.GetString("FRONTEND_URL")
	}
	var origins []string
	for _, o := range strings.Split(raw, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}

func getInt(v *viper.Viper, key string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(v.GetString(key)))
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}

func getDuration(v *viper.Viper, key string) (time.Duration, error) {
	d, err := time.ParseDuration(strings.TrimSpace(v.GetString(key)))
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("invalid %s: must not be negative", key)
	}
	return d, nil
}
