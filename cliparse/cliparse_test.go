// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package cliparse

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

var envKeys = []string{
	"PORT", "DATABASE_URL", "DATABASE_TYPE", "SECRET_KEY",
	"ACCESS_TOKEN_EXPIRE_MINUTES", "ALGORITHM", "ALLOWED_ORIGINS",
	"API_PREFIX", "CONFIG_FILE",
}

// clearEnv blanks every recognised variable for the duration of the test
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range envKeys {
		t.Setenv(k, "")
	}
}

func TestParseFlags_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := ParseFlags([]string{"--env-file", ""})
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Port != 8000 {
		t.Errorf("expected port 8000, got %d", cfg.Port)
	}
	if cfg.DatabaseType != "sqlite" {
		t.Errorf("expected sqlite, got %s", cfg.DatabaseType)
	}
	if cfg.TokenTTL() != 60*time.Minute {
		t.Errorf("expected 60m TTL, got %v", cfg.TokenTTL())
	}
	if !cfg.UsesDefaultSecret() {
		t.Error("default secret should be reported")
	}
	if cfg.APIPrefix != "/api" {
		t.Errorf("expected /api prefix, got %q", cfg.APIPrefix)
	}
	if len(cfg.AllowedOrigins) != 1 || cfg.AllowedOrigins[0] != "*" {
		t.Errorf("expected [*] origins, got %v", cfg.AllowedOrigins)
	}
}

func TestParseFlags_EnvVars(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9000")
	t.Setenv("DATABASE_URL", "postgres://test")
	t.Setenv("DATABASE_TYPE", "postgres")
	t.Setenv("SECRET_KEY", "s3cret")
	t.Setenv("ACCESS_TOKEN_EXPIRE_MINUTES", "120")
	t.Setenv("ALGORITHM", "hs512")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example, https://b.example")

	cfg, err := ParseFlags([]string{"--env-file", ""})
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Port != 9000 {
		t.Errorf("expected port 9000, got %d", cfg.Port)
	}
	if cfg.DatabaseType != "postgres" {
		t.Errorf("expected postgres, got %s", cfg.DatabaseType)
	}
	if cfg.Algorithm != "HS512" {
		t.Errorf("expected HS512, got %s", cfg.Algorithm)
	}
	if cfg.TokenTTL() != 2*time.Hour {
		t.Errorf("expected 2h TTL, got %v", cfg.TokenTTL())
	}
	if cfg.UsesDefaultSecret() {
		t.Error("custom secret reported as default")
	}
	if len(cfg.AllowedOrigins) != 2 || cfg.AllowedOrigins[1] != "https://b.example" {
		t.Errorf("unexpected origins %v", cfg.AllowedOrigins)
	}
}

func TestParseFlags_CLIOverridesEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9000")

	cfg, err := ParseFlags([]string{"--env-file", "", "-p", "8080", "-d", "file:test.db", "--api-prefix", "/v1/"})
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Port != 8080 {
		t.Errorf("CLI should override env: expected 8080, got %d", cfg.Port)
	}
	if cfg.DatabaseURL != "file:test.db" {
		t.Errorf("expected file:test.db, got %s", cfg.DatabaseURL)
	}
	if cfg.APIPrefix != "/v1" {
		t.Errorf("expected trailing slash trimmed, got %q", cfg.APIPrefix)
	}
}

func TestParseFlags_YAMLFile(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	yaml := "port: 7000\nsecret_key: from-file\nallowed_origins:\n  - https://app.example\n"
	if err := os.WriteFile(path, []byte(yaml), 0o600); err != nil {
		t.Fatal(err)
	}

	// Env beats file
	t.Setenv("SECRET_KEY", "from-env")

	cfg, err := ParseFlags([]string{"--env-file", "", "--config", path})
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Port != 7000 {
		t.Errorf("expected port from file, got %d", cfg.Port)
	}
	if cfg.SecretKey != "from-env" {
		t.Errorf("expected env to override file, got %s", cfg.SecretKey)
	}
	if cfg.AllowedOrigins[0] != "https://app.example" {
		t.Errorf("unexpected origins %v", cfg.AllowedOrigins)
	}
}

func TestParseFlags_DotEnv(t *testing.T) {
	clearEnv(t)
	os.Unsetenv("SECRET_KEY")
	path := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(path, []byte("SECRET_KEY=dotenv-secret\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.Unsetenv("SECRET_KEY") })

	cfg, err := ParseFlags([]string{"--env-file", path})
	if err != nil {
		t.Fatal(err)
	}
	if cfg.SecretKey != "dotenv-secret" {
		t.Errorf("expected secret from .env, got %s", cfg.SecretKey)
	}
}

func TestParseFlags_DotEnvOverridesYAML(t *testing.T) {
	clearEnv(t)
	os.Unsetenv("SECRET_KEY")
	t.Cleanup(func() { os.Unsetenv("SECRET_KEY") })

	dir := t.TempDir()
	yamlPath := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(yamlPath, []byte("secret_key: from-file\nport: 7000\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	envPath := filepath.Join(dir, ".env")
	if err := os.WriteFile(envPath, []byte("SECRET_KEY=from-dotenv\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := ParseFlags([]string{"--env-file", envPath, "--config", yamlPath})
	if err != nil {
		t.Fatal(err)
	}
	if cfg.SecretKey != "from-dotenv" {
		t.Errorf("expected .env to override YAML, got %s", cfg.SecretKey)
	}
	if cfg.Port != 7000 {
		t.Errorf("expected port from YAML, got %d", cfg.Port)
	}
}

func TestParseFlags_DatabaseTypeAliases(t *testing.T) {
	tests := []struct {
		name string
		env  string
		args []string
		want string
	}{
		{"postgresql env", "postgresql", nil, "postgres"},
		{"upper case env", "POSTGRES", nil, "postgres"},
		{"sqlite3 flag", "", []string{"-t", "sqlite3"}, "sqlite"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv("DATABASE_TYPE", tt.env)
			args := append([]string{"--env-file", ""}, tt.args...)
			cfg, err := ParseFlags(args)
			if err != nil {
				t.Fatalf("ParseFlags() error = %v", err)
			}
			if cfg.DatabaseType != tt.want {
				t.Errorf("expected %s, got %s", tt.want, cfg.DatabaseType)
			}
		})
	}
}

func TestParseFlags_MissingEnvFileIgnored(t *testing.T) {
	clearEnv(t)
	if _, err := ParseFlags([]string{"--env-file", filepath.Join(t.TempDir(), "missing.env")}); err != nil {
		t.Fatalf("missing .env should be ignored: %v", err)
	}
}

func TestParseFlags_Invalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		args []string
	}{
		{"expiry too short", map[string]string{"ACCESS_TOKEN_EXPIRE_MINUTES": "5"}, nil},
		{"expiry too long", map[string]string{"ACCESS_TOKEN_EXPIRE_MINUTES": "1441"}, nil},
		{"expiry not a number", map[string]string{"ACCESS_TOKEN_EXPIRE_MINUTES": "soon"}, nil},
		{"bad algorithm", map[string]string{"ALGORITHM": "RS256"}, nil},
		{"bad database type", map[string]string{"DATABASE_TYPE": "mysql"}, nil},
		{"bad port", map[string]string{"PORT": "http"}, nil},
		{"port out of range", nil, []string{"-p", "70000"}},
		{"unknown flag", nil, []string{"--nope"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			args := append([]string{"--env-file", ""}, tt.args...)
			if _, err := ParseFlags(args); err == nil {
				t.Error("expected error")
			}
		})
	}
}
