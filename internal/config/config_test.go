package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_DefaultValues(t *testing.T) {
	// 環境変数をクリア
	envVars := []string{
		"APP_ENV", "PORT", "SERVER_READ_TIMEOUT", "SERVER_WRITE_TIMEOUT",
		"DB_HOST", "DB_PORT", "DB_USER", "DB_PASSWORD", "DB_NAME", "DB_SSLMODE",
		"REDIS_HOST", "REDIS_PORT", "REDIS_PASSWORD", "REDIS_DB",
		"RESERVATION_MIN_START_LEAD", "RESERVATION_MAX_SPAN",
		"RESERVATION_STALE_CHECK_INTERVAL", "RESERVATION_CACHE_TTL",
	}
	for _, env := range envVars {
		os.Unsetenv(env)
	}

	cfg := Load()

	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, 30*time.Second, cfg.Server.ReadTimeout)

	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, "5432", cfg.Database.Port)
	assert.Equal(t, "reservation_management", cfg.Database.DBName)
	assert.Equal(t, "disable", cfg.Database.SSLMode)

	assert.Equal(t, "localhost", cfg.Redis.Host)
	assert.Equal(t, 0, cfg.Redis.DB)

	assert.Equal(t, time.Hour, cfg.Reservation.MinStartLead)
	assert.Equal(t, 365*24*time.Hour, cfg.Reservation.MaxSpan)
}

func TestLoad_CustomValues(t *testing.T) {
	os.Setenv("PORT", "9090")
	os.Setenv("DB_NAME", "reservations_test")
	os.Setenv("RESERVATION_MIN_START_LEAD", "12h")
	defer func() {
		os.Unsetenv("PORT")
		os.Unsetenv("DB_NAME")
		os.Unsetenv("RESERVATION_MIN_START_LEAD")
	}()

	cfg := Load()

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, "reservations_test", cfg.Database.DBName)
	assert.Equal(t, 12*time.Hour, cfg.Reservation.MinStartLead)
}

// 最小リードタイムは1時間〜24時間に収められる
func TestLoad_MinStartLeadClamped(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  time.Duration
	}{
		{"下限未満は1時間", "10m", time.Hour},
		{"上限超過は24時間", "72h", 24 * time.Hour},
		{"範囲内はそのまま", "6h", 6 * time.Hour},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os.Setenv("RESERVATION_MIN_START_LEAD", tt.value)
			defer os.Unsetenv("RESERVATION_MIN_START_LEAD")

			cfg := Load()
			assert.Equal(t, tt.want, cfg.Reservation.MinStartLead)
		})
	}
}

func TestDatabaseConfig_DSN(t *testing.T) {
	c := DatabaseConfig{
		Host: "db", Port: "5432", User: "app", Password: "secret",
		DBName: "reservations", SSLMode: "disable",
	}
	dsn := c.DSN()
	assert.Contains(t, dsn, "host=db")
	assert.Contains(t, dsn, "dbname=reservations")
	assert.Contains(t, dsn, "sslmode=disable")
}
