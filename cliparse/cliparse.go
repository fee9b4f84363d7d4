// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package cliparse

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/danielhkuo/socialnet/db"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"
)

// DefaultSecretKey is the placeholder signing secret. Servers running
// with it log a warning at startup.
const DefaultSecretKey = "change-me"

type Config struct {
	Port                     int      `yaml:"port" validate:"min=1,max=65535"`
	DatabaseURL              string   `yaml:"database_url" validate:"required"`
	DatabaseType             string   `yaml:"database_type" validate:"oneof=sqlite postgres"`
	SecretKey                string   `yaml:"secret_key" validate:"required"`
	AccessTokenExpireMinutes int      `yaml:"access_token_expire_minutes" validate:"min=15,max=1440"`
	Algorithm                string   `yaml:"algorithm" validate:"oneof=HS256 HS384 HS512"`
	AllowedOrigins           []string `yaml:"allowed_origins" validate:"min=1,dive,required"`
	APIPrefix                string   `yaml:"api_prefix" validate:"startswith=/"`
}

// Defaults returns the configuration used when nothing else is set
func Defaults() Config {
	return Config{
		Port:                     8000,
		DatabaseURL:              "file:app.db",
		DatabaseType:             "sqlite",
		SecretKey:                DefaultSecretKey,
		AccessTokenExpireMinutes: 60,
		Algorithm:                "HS256",
		AllowedOrigins:           []string{"*"},
		APIPrefix:                "/api",
	}
}

// TokenTTL is the access token lifetime
func (c Config) TokenTTL() time.Duration {
	return time.Duration(c.AccessTokenExpireMinutes) * time.Minute
}

// UsesDefaultSecret reports whether the placeholder secret is still in use
func (c Config) UsesDefaultSecret() bool {
	return c.SecretKey == DefaultSecretKey
}

var validate = validator.New()

// ParseFlags builds the configuration. Later sources override earlier
// ones: defaults, YAML config file, environment, flags. The .env file is
// loaded into the environment first, so its values also beat the YAML
// file, while variables already set in the process win over it.
// Database type aliases (postgresql, sqlite3) are normalized.
func ParseFlags(args []string) (Config, error) {
	fs := pflag.NewFlagSet("socialnet", pflag.ContinueOnError)

	port := fs.IntP("port", "p", 0, "Server port")
	dbURL := fs.StringP("database-url", "d", "", "Database URL")
	dbType := fs.StringP("database-type", "t", "", "Database type (sqlite or postgres)")
	secret := fs.String("secret-key", "", "Token signing secret (prefer env)")
	expire := fs.Int("token-expire-minutes", 0, "Access token lifetime in minutes (15-1440)")
	alg := fs.String("algorithm", "", "Token signing algorithm (HS256, HS384, HS512)")
	origins := fs.StringSlice("allowed-origins", nil, "Allowed CORS origins")
	prefix := fs.String("api-prefix", "", "Path prefix for API routes")
	configFile := fs.StringP("config", "c", "", "YAML config file")
	envFile := fs.String("env-file", ".env", "Dotenv file loaded into the environment if present")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	if err := loadEnvFile(*envFile); err != nil {
		return Config{}, err
	}

	cfg := Defaults()

	path := *configFile
	if path == "" {
		path = os.Getenv("CONFIG_FILE")
	}
	if path != "" {
		if err := loadYAML(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}

	if fs.Changed("port") {
		cfg.Port = *port
	}
	if fs.Changed("database-url") {
		cfg.DatabaseURL = *dbURL
	}
	if fs.Changed("database-type") {
		cfg.DatabaseType = *dbType
	}
	if fs.Changed("secret-key") {
		cfg.SecretKey = *secret
	}
	if fs.Changed("token-expire-minutes") {
		cfg.AccessTokenExpireMinutes = *expire
	}
	if fs.Changed("algorithm") {
		cfg.Algorithm = *alg
	}
	if fs.Changed("allowed-origins") {
		cfg.AllowedOrigins = *origins
	}
	if fs.Changed("api-prefix") {
		cfg.APIPrefix = *prefix
	}

	if d, err := db.ParseDialect(cfg.DatabaseType); err == nil {
		cfg.DatabaseType = string(d)
	}
	cfg.Algorithm = strings.ToUpper(cfg.Algorithm)
	cfg.APIPrefix = strings.TrimRight(cfg.APIPrefix, "/")
	if cfg.APIPrefix == "" {
		cfg.APIPrefix = "/"
	}

	if err := validate.Struct(cfg); err != nil {
		return Config{}, fmt.Errorf("invalid configuration: %w", err)
	}
	if cfg.APIPrefix == "/" {
		cfg.APIPrefix = ""
	}

	return cfg, nil
}

func loadEnvFile(path string) error {
	if path == "" {
		return nil
	}
	err := godotenv.Load(path)
	if err == nil || errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return fmt.Errorf("failed to load %s: %w", path, err)
}

func loadYAML(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return nil
}

func applyEnv(cfg *Config) error {
	if v := os.Getenv("PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return errors.New("invalid PORT env variable")
		}
		cfg.Port = port
	}
	if v := os.Getenv("DATABASE_URL"); v != "" {
		cfg.DatabaseURL = v
	}
	if v := os.Getenv("DATABASE_TYPE"); v != "" {
		cfg.DatabaseType = v
	}
	if v := os.Getenv("SECRET_KEY"); v != "" {
		cfg.SecretKey = v
	}
	if v := os.Getenv("ACCESS_TOKEN_EXPIRE_MINUTES"); v != "" {
		minutes, err := strconv.Atoi(v)
		if err != nil {
			return errors.New("invalid ACCESS_TOKEN_EXPIRE_MINUTES env variable")
		}
		cfg.AccessTokenExpireMinutes = minutes
	}
	if v := os.Getenv("ALGORITHM"); v != "" {
		cfg.Algorithm = v
	}
	if v := os.Getenv("ALLOWED_ORIGINS"); v != "" {
		cfg.AllowedOrigins = splitList(v)
	}
	if v := os.Getenv("API_PREFIX"); v != "" {
		cfg.APIPrefix = v
	}
	return nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
