// Package config loads storefront configuration from YAML with
// environment overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// DevJWTSecret is the fallback signing secret for local development.
// Deployments must override it via STOREFRONT_JWT_SECRET.
const DevJWTSecret = "your_jwt_secret"

// Duration accepts "30m" style values in YAML.
type Duration time.Duration

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var raw string
	if err := value.Decode(&raw); err == nil {
		parsed, err := time.ParseDuration(raw)
		if err != nil {
			return fmt.Errorf("invalid duration %q: %w", raw, err)
		}
		*d = Duration(parsed)
		return nil
	}
	var n int64
	if err := value.Decode(&n); err != nil {
		return err
	}
	*d = Duration(n)
	return nil
}

// Std returns the wrapped time.Duration.
func (d Duration) Std() time.Duration { return time.Duration(d) }

// Config holds every tunable of the storefront process.
type Config struct {
	Addr           string   `yaml:"addr"`
	JWTSecret      string   `yaml:"jwt_secret"`
	TokenTTL       Duration `yaml:"token_ttl"`
	AllowedOrigins []string `yaml:"allowed_origins"`
	AuditPath      string   `yaml:"audit_path"`
	AuditMax       int      `yaml:"audit_max"`
	CatalogFile    string   `yaml:"catalog_file"`
	AuthRatePerSec float64  `yaml:"auth_rate_per_sec"`
	AuthRateBurst  int      `yaml:"auth_rate_burst"`
}

// Default returns a configuration that lets the process start with no
// config file at all.
func Default() Config {
	return Config{
		Addr:           ":8080",
		JWTSecret:      DevJWTSecret,
		TokenTTL:       Duration(time.Hour),
		AuthRatePerSec: 5,
		AuthRateBurst:  10,
		AuditMax:       200,
	}
}

// Load reads config/storefront.yaml when present, then applies
// environment overrides. A missing file is not an error.
func Load() (Config, error) {
	return LoadFromPath(filepath.Join("config", "storefront.yaml"))
}

// LoadFromPath loads the configuration from a specific path.
func LoadFromPath(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	case os.IsNotExist(err):
		// Defaults plus env are enough.
	default:
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}

	cfg.applyEnv()

	if cfg.Addr == "" {
		return Config{}, fmt.Errorf("addr is required")
	}
	if cfg.JWTSecret == "" {
		return Config{}, fmt.Errorf("jwt_secret is required")
	}
	if cfg.TokenTTL <= 0 {
		cfg.TokenTTL = Duration(time.Hour)
	}
	return cfg, nil
}

// IsDevSecret reports whether the signing secret is still the
// development default.
func (c Config) IsDevSecret() bool {
	return c.JWTSecret == DevJWTSecret
}

func (c *Config) applyEnv() {
	if v := os.Getenv("STOREFRONT_ADDR"); v != "" {
		c.Addr = v
	}
	if v := os.Getenv("STOREFRONT_JWT_SECRET"); v != "" {
		c.JWTSecret = v
	}
	if v := os.Getenv("STOREFRONT_TOKEN_TTL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			c.TokenTTL = Duration(d)
		}
	}
	if v := os.Getenv("STOREFRONT_ALLOWED_ORIGINS"); v != "" {
		var origins []string
		for _, o := range strings.Split(v, ",") {
			if o = strings.TrimSpace(o); o != "" {
				origins = append(origins, o)
			}
		}
		c.AllowedOrigins = origins
	}
	if v := os.Getenv("STOREFRONT_AUDIT_PATH"); v != "" {
		c.AuditPath = v
	}
	if v := os.Getenv("STOREFRONT_CATALOG_FILE"); v != "" {
		c.CatalogFile = v
	}
	if v := os.Getenv("STOREFRONT_AUTH_RATE"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f > 0 {
			c.AuthRatePerSec = f
		}
	}
	if v := os.Getenv("STOREFRONT_AUTH_BURST"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.AuthRateBurst = n
		}
	}
}
