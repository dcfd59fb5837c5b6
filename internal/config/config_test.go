package config

import (
	"os"
	"testing"
)

func TestLoad_DefaultValues(t *testing.T) {
	os.Clearenv()

	cfg := Load()

	if cfg.HTTP.Addr != ":8080" {
		t.Errorf("Expected HTTP_ADDR default ':8080', got '%s'", cfg.HTTP.Addr)
	}

	if cfg.Database.Host != "localhost" {
		t.Errorf("Expected DB_HOST default 'localhost', got '%s'", cfg.Database.Host)
	}

	if cfg.Database.Port != 5432 {
		t.Errorf("Expected DB_PORT default 5432, got %d", cfg.Database.Port)
	}

	if cfg.Database.Database != "focozero" {
		t.Errorf("Expected DB_NAME default 'focozero', got '%s'", cfg.Database.Database)
	}

	if cfg.Redis.Addr != "localhost:6379" {
		t.Errorf("Expected REDIS_ADDR default 'localhost:6379', got '%s'", cfg.Redis.Addr)
	}

	if cfg.Rollup.LockTTL != 30 {
		t.Errorf("Expected ROLLUP_LOCK_TTL default 30, got %d", cfg.Rollup.LockTTL)
	}

	if cfg.Log.Level != "info" {
		t.Errorf("Expected LOG_LEVEL default 'info', got '%s'", cfg.Log.Level)
	}
}

func TestLoad_EnvironmentVariables(t *testing.T) {
	os.Setenv("DB_HOST", "test-host")
	os.Setenv("DB_PORT", "5433")
	os.Setenv("DB_NAME", "test-db")
	os.Setenv("REDIS_ADDR", "redis:6379")
	os.Setenv("ROLLUP_LOCK_TTL", "120")
	os.Setenv("LOG_LEVEL", "debug")
	defer os.Clearenv()

	cfg := Load()

	if cfg.Database.Host != "test-host" {
		t.Errorf("Expected DB_HOST 'test-host', got '%s'", cfg.Database.Host)
	}

	if cfg.Database.Port != 5433 {
		t.Errorf("Expected DB_PORT 5433, got %d", cfg.Database.Port)
	}

	if cfg.Database.Database != "test-db" {
		t.Errorf("Expected DB_NAME 'test-db', got '%s'", cfg.Database.Database)
	}

	if cfg.Redis.Addr != "redis:6379" {
		t.Errorf("Expected REDIS_ADDR 'redis:6379', got '%s'", cfg.Redis.Addr)
	}

	if cfg.Rollup.LockTTL != 120 {
		t.Errorf("Expected ROLLUP_LOCK_TTL 120, got %d", cfg.Rollup.LockTTL)
	}

	if cfg.Log.Level != "debug" {
		t.Errorf("Expected LOG_LEVEL 'debug', got '%s'", cfg.Log.Level)
	}
}

func TestLoad_InvalidNumbersFallBack(t *testing.T) {
	os.Setenv("DB_PORT", "not-a-number")
	os.Setenv("ROLLUP_LOCK_TTL", "")
	defer os.Clearenv()

	cfg := Load()

	if cfg.Database.Port != 5432 {
		t.Errorf("Expected DB_PORT fallback 5432, got %d", cfg.Database.Port)
	}

	if cfg.Rollup.LockTTL != 30 {
		t.Errorf("Expected ROLLUP_LOCK_TTL fallback 30, got %d", cfg.Rollup.LockTTL)
	}
}
