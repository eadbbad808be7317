package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	DriverMySQL  = "mysql"
	DriverSQLite = "sqlite"

	LedgerSQL   = "sql"
	LedgerRedis = "redis"
)

type Config struct {
	App struct {
		ENV string
	}

	Log struct {
		Level     string
		Format    string
		Component string
		Source    bool
	}

	DB struct {
		Driver   string
		DSN      string
		Host     string
		Port     string
		User     string
		Password string
		Name     string
	}

	Redis struct {
		Addr     string
		Password string
		DB       int
	}

	// Store selects adapters for the engine's collaborators.
	Store struct {
		Ledger string
	}

	Match struct {
		CandidateLimit      int
		ProfileFetchTimeout time.Duration
		HydrateWait         time.Duration
	}

	GRPC struct {
		Host string
		Port string
	}
}

func New() *Config {
	cfg := &Config{}

	cfg.App.ENV = getEnvDefault("APP_ENV", "development")

	// Logger
	cfg.Log.Level = getEnvDefault("LOG_LEVEL", "info")
	cfg.Log.Format = getEnvDefault("LOG_FORMAT", "text")
	cfg.Log.Component = getEnvDefault("LOG_COMPONENT", "match_engine")
	cfg.Log.Source = isTruthy(os.Getenv("LOG_SOURCE"))

	// Database
	cfg.DB.Driver = strings.ToLower(getEnvDefault("DB_DRIVER", DriverMySQL))
	switch cfg.DB.Driver {
	case DriverSQLite:
		cfg.DB.DSN = getEnvDefault("SQLITE_DSN", "file:osmatch.db?cache=shared")
	default:
		cfg.DB.Driver = DriverMySQL
		cfg.DB.DSN = os.Getenv("MYSQL_DSN")
		if cfg.DB.DSN == "" {
			cfg.DB.Host = getEnvDefault("DB_HOST", "localhost")
			cfg.DB.Port = getEnvDefault("DB_PORT", "3306")
			cfg.DB.User = getEnvDefault("DB_USER", "root")
			cfg.DB.Password = getEnvDefault("DB_PASSWORD", "root")
			cfg.DB.Name = getEnvDefault("DB_NAME", "osmatch")

			cfg.DB.DSN = fmt.Sprintf(
				"%s:%s@tcp(%s:%s)/%s?parseTime=true&charset=utf8mb4&loc=UTC",
				cfg.DB.User, cfg.DB.Password, cfg.DB.Host, cfg.DB.Port, cfg.DB.Name,
			)
		}
	}

	// Redis
	cfg.Redis.Addr = getEnvDefault("REDIS_ADDR", "localhost:6379")
	cfg.Redis.Password = getEnvDefault("REDIS_PASSWORD", "")
	cfg.Redis.DB = getEnvInt("REDIS_DB", 0)

	// Collaborators
	cfg.Store.Ledger = strings.ToLower(getEnvDefault("LEDGER_BACKEND", LedgerSQL))
	if cfg.Store.Ledger != LedgerRedis {
		cfg.Store.Ledger = LedgerSQL
	}

	// Matching engine
	cfg.Match.CandidateLimit = getEnvInt("MATCH_CANDIDATE_LIMIT", 20)
	if cfg.Match.CandidateLimit <= 0 {
		cfg.Match.CandidateLimit = 20
	}
	cfg.Match.ProfileFetchTimeout = getEnvDuration("MATCH_PROFILE_FETCH_TIMEOUT", 5*time.Second)
	cfg.Match.HydrateWait = getEnvDuration("MATCH_HYDRATE_WAIT", 2*time.Millisecond)

	// gRPC
	cfg.GRPC.Host = getEnvDefault("GRPC_HOST", "127.0.0.1")
	cfg.GRPC.Port = getEnvDefault("GRPC_PORT", "50051")

	return cfg
}

func getEnvDefault(k, def string) string {
	if v := strings.TrimSpace(os.Getenv(k)); v != "" {
		return v
	}
	return def
}

func getEnvInt(k string, def int) int {
	if n, err := strconv.Atoi(getEnvDefault(k, "")); err == nil {
		return n
	}
	return def
}

// getEnvDuration accepts Go durations ("5s", "250ms"); bare integers are seconds.
func getEnvDuration(k string, def time.Duration) time.Duration {
	v := getEnvDefault(k, "")
	if v == "" {
		return def
	}
	if d, err := time.ParseDuration(v); err == nil && d > 0 {
		return d
	}
	if n, err := strconv.Atoi(v); err == nil && n > 0 {
		return time.Duration(n) * time.Second
	}
	return def
}

func isTruthy(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "true", "yes", "y", "on":
		return true
	}
	return false
}
