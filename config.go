package main

import (
	"fmt"
	"strings"

	"github.com/printcolor/api/api"
	"github.com/printcolor/api/colormath"
	"github.com/printcolor/api/pantone"
)

// Config is read from PRINTCOLOR_* environment variables.
type Config struct {
	HTTPPort           string   `envconfig:"HTTP_PORT" default:":8080"`
	DatabaseType       string   `envconfig:"DB_TYPE" default:"memory"`
	DatabaseUser       string   `envconfig:"DB_USER" default:"postgres"`
	DatabasePassword   string   `envconfig:"DB_PASSWORD"`
	DatabaseHost       string   `envconfig:"DB_HOST" default:"localhost"`
	DatabaseName       string   `envconfig:"DB_NAME" default:"printcolor"`
	SSLMode            string   `envconfig:"SSL_MODE" default:"disable"`
	JwtSecret          string   `envconfig:"JWT_SECRET" default:"change-this-secret"`
	JwtAccessDuration  int      `envconfig:"JWT_ACCESS_DURATION" default:"3600"`
	APIKeyHash         string   `envconfig:"API_KEY_HASH"`
	AllowedOrigins     []string `envconfig:"ALLOWED_ORIGINS" default:"http://localhost:3000,http://localhost:5173"`
	DevMode            bool     `envconfig:"DEV_MODE" default:"false"`
	SpotThreshold      float64  `envconfig:"SPOT_THRESHOLD" default:"5.0"`
	DefaultSearchLimit int      `envconfig:"DEFAULT_SEARCH_LIMIT" default:"5"`
	ClassifierWorkers  int      `envconfig:"CLASSIFIER_WORKERS" default:"4"`
	RetentionDays      int      `envconfig:"RETENTION_DAYS" default:"30"`
	DeltaEMetric       string   `envconfig:"DELTA_E_METRIC" default:"cie76"`
	FinishPreference   []string `envconfig:"FINISH_PREFERENCE" default:"C,U,M"`
	MinOverlap         float64  `envconfig:"MIN_OVERLAP" default:"0.5"`
	ICCProfileDir      string   `envconfig:"ICC_PROFILE_DIR" default:"profiles"`
}

func (c Config) MakeAPIConfig() api.Config {
	return api.Config{
		HTTPPort:           c.HTTPPort,
		DatabaseType:       c.DatabaseType,
		DatabaseUser:       c.DatabaseUser,
		DatabasePassword:   c.DatabasePassword,
		DatabaseHost:       c.DatabaseHost,
		DatabaseName:       c.DatabaseName,
		SSLMode:            c.SSLMode,
		JwtSecret:          c.JwtSecret,
		JwtAccessDuration:  c.JwtAccessDuration,
		APIKeyHash:         c.APIKeyHash,
		AllowedOrigins:     c.AllowedOrigins,
		DevMode:            c.DevMode,
		DefaultSearchLimit: c.DefaultSearchLimit,
	}
}

// Validate rejects settings the engine cannot run with.
func (c Config) Validate() error {
	if c.SpotThreshold <= 0 {
		return fmt.Errorf("SPOT_THRESHOLD must be positive, got %v", c.SpotThreshold)
	}
	if c.DefaultSearchLimit <= 0 {
		return fmt.Errorf("DEFAULT_SEARCH_LIMIT must be positive, got %d", c.DefaultSearchLimit)
	}
	if c.RetentionDays <= 0 {
		return fmt.Errorf("RETENTION_DAYS must be positive, got %d", c.RetentionDays)
	}
	if c.MinOverlap <= 0 || c.MinOverlap > 1 {
		return fmt.Errorf("MIN_OVERLAP must be in (0, 1], got %v", c.MinOverlap)
	}
	switch c.DatabaseType {
	case "memory", "postgres":
	default:
		return fmt.Errorf("DB_TYPE must be memory or postgres, got %q", c.DatabaseType)
	}
	if _, err := c.Metric(); err != nil {
		return err
	}
	if _, err := c.ResolverPolicy(); err != nil {
		return err
	}
	return nil
}

func (c Config) Metric() (colormath.Metric, error) {
	return colormath.ParseMetric(strings.ToLower(c.DeltaEMetric))
}

func (c Config) ResolverPolicy() (pantone.ResolverPolicy, error) {
	policy := pantone.ResolverPolicy{MinOverlap: c.MinOverlap}
	for _, s := range c.FinishPreference {
		f, ok := pantone.ParseFinish(strings.TrimSpace(s))
		if !ok {
			return pantone.ResolverPolicy{}, fmt.Errorf("FINISH_PREFERENCE: unknown finish %q", s)
		}
		policy.FinishPreference = append(policy.FinishPreference, f)
	}
	return policy, nil
}

func (c Config) ClassifierPolicy() pantone.Policy {
	return pantone.Policy{SpotThreshold: c.SpotThreshold, Workers: c.ClassifierWorkers}
}
