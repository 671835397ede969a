package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

var envKeys = []string{
	"PORT", "DB_PATH", "JWT_SECRET", "TOKEN_TTL", "TIMEZONE", "AMQP_URL",
	"AMQP_EXCHANGE", "AMQP_ROUTING_KEY", "LOG_LEVEL", "METRICS_ENABLED", "LEDGER_CONFIG",
}

// unsetEnv clears the ledger variables and restores them after the test.
// Variables set to "" still count as present for godotenv, so they are unset.
func unsetEnv(t *testing.T) {
	t.Helper()
	for _, key := range envKeys {
		if old, ok := os.LookupEnv(key); ok {
			t.Cleanup(func() { os.Setenv(key, old) })
		} else {
			t.Cleanup(func() { os.Unsetenv(key) })
		}
		os.Unsetenv(key)
	}
}

func missingEnvFile(t *testing.T) string {
	return filepath.Join(t.TempDir(), "absent.env")
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	unsetEnv(t)

	cfg, err := Load(Options{EnvFile: missingEnvFile(t)})
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Server.Port != 8080 || cfg.Auth.TokenTTL.Duration != 24*time.Hour || cfg.Ledger.Timezone != "UTC" {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
	if err := cfg.Validate(false); err != nil {
		t.Errorf("defaults should validate without a secret: %v", err)
	}
	if err := cfg.Validate(true); err == nil {
		t.Error("server validation must require a JWT secret")
	}
}

func TestLoadPrecedence(t *testing.T) {
	unsetEnv(t)

	configFile := writeFile(t, "ledger.toml", `
[server]
port = 9000

[database]
path = "/var/lib/ledger.db"

[auth]
jwt_secret = "from-the-toml-file"
token_ttl = "2h"

[ledger]
timezone = "Europe/Rome"
`)
	envFile := writeFile(t, "test.env", "DB_PATH=/tmp/from-dotenv.db\nLOG_LEVEL=debug\n")
	t.Setenv("PORT", "9100")

	cfg, err := Load(Options{ConfigFile: configFile, EnvFile: envFile})
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Server.Port != 9100 {
		t.Errorf("port: environment should win, got %d", cfg.Server.Port)
	}
	if cfg.Database.Path != "/tmp/from-dotenv.db" {
		t.Errorf("db path: .env should beat the TOML file, got %s", cfg.Database.Path)
	}
	if cfg.Auth.TokenTTL.Duration != 2*time.Hour || cfg.Auth.JWTSecret != "from-the-toml-file" {
		t.Errorf("auth section not read: %+v", cfg.Auth)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("log level: expected debug, got %s", cfg.Log.Level)
	}

	loc, err := cfg.Location()
	if err != nil || loc.String() != "Europe/Rome" {
		t.Errorf("location: got %v, %v", loc, err)
	}
	if err := cfg.Validate(true); err != nil {
		t.Errorf("Validate failed: %v", err)
	}
}

func TestLoadErrors(t *testing.T) {
	unsetEnv(t)

	if _, err := Load(Options{ConfigFile: filepath.Join(t.TempDir(), "nope.toml"), EnvFile: missingEnvFile(t)}); err == nil {
		t.Error("expected error for an explicit config file that does not exist")
	}

	t.Setenv("PORT", "eighty")
	t.Setenv("METRICS_ENABLED", "sometimes")
	_, err := Load(Options{EnvFile: missingEnvFile(t)})
	if err == nil || !strings.Contains(err.Error(), "PORT") || !strings.Contains(err.Error(), "METRICS_ENABLED") {
		t.Errorf("expected both env problems reported, got %v", err)
	}
}

func TestValidateCollectsProblems(t *testing.T) {
	cfg := Default()
	cfg.Server.Port = 0
	cfg.Ledger.Timezone = "Mars/Olympus"
	cfg.Log.Level = "loud"
	cfg.AMQP.URL = "http://broker"

	err := cfg.Validate(false)
	if err == nil {
		t.Fatal("expected validation error")
	}
	for _, want := range []string{"port", "timezone", "log level", "AMQP URL scheme"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q does not mention %s", err, want)
		}
	}
}
