package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewDefaults(t *testing.T) {
	for _, k := range []string{
		"APP_ENV", "DB_DRIVER", "MYSQL_DSN", "LEDGER_BACKEND",
		"MATCH_CANDIDATE_LIMIT", "MATCH_PROFILE_FETCH_TIMEOUT", "MATCH_HYDRATE_WAIT",
	} {
		t.Setenv(k, "")
	}

	cfg := New()
	assert.Equal(t, "development", cfg.App.ENV)
	assert.Equal(t, DriverMySQL, cfg.DB.Driver)
	assert.Contains(t, cfg.DB.DSN, "@tcp(localhost:3306)/osmatch")
	assert.Equal(t, LedgerSQL, cfg.Store.Ledger)
	assert.Equal(t, 20, cfg.Match.CandidateLimit)
	assert.Equal(t, 5*time.Second, cfg.Match.ProfileFetchTimeout)
	assert.Equal(t, 2*time.Millisecond, cfg.Match.HydrateWait)
	assert.Equal(t, "match_engine", cfg.Log.Component)
}

func TestNewOverrides(t *testing.T) {
	t.Setenv("DB_DRIVER", "SQLite")
	t.Setenv("SQLITE_DSN", "file::memory:")
	t.Setenv("LEDGER_BACKEND", "redis")
	t.Setenv("MATCH_CANDIDATE_LIMIT", "7")
	t.Setenv("MATCH_PROFILE_FETCH_TIMEOUT", "3")
	t.Setenv("MATCH_HYDRATE_WAIT", "10ms")
	t.Setenv("REDIS_DB", "4")
	t.Setenv("LOG_SOURCE", "yes")

	cfg := New()
	assert.Equal(t, DriverSQLite, cfg.DB.Driver)
	assert.Equal(t, "file::memory:", cfg.DB.DSN)
	assert.Equal(t, LedgerRedis, cfg.Store.Ledger)
	assert.Equal(t, 7, cfg.Match.CandidateLimit)
	assert.Equal(t, 3*time.Second, cfg.Match.ProfileFetchTimeout)
	assert.Equal(t, 10*time.Millisecond, cfg.Match.HydrateWait)
	assert.Equal(t, 4, cfg.Redis.DB)
	assert.True(t, cfg.Log.Source)
}

func TestNewRejectsNonsense(t *testing.T) {
	t.Setenv("LEDGER_BACKEND", "cassandra")
	t.Setenv("MATCH_CANDIDATE_LIMIT", "-3")
	t.Setenv("MATCH_PROFILE_FETCH_TIMEOUT", "soon")

	cfg := New()
	assert.Equal(t, LedgerSQL, cfg.Store.Ledger)
	assert.Equal(t, 20, cfg.Match.CandidateLimit)
	assert.Equal(t, 5*time.Second, cfg.Match.ProfileFetchTimeout)
}
