package api

import (
	"github.com/printcolor/api/colormath"
	"github.com/printcolor/api/datastore"
	"github.com/printcolor/api/iccinfo"
	"github.com/printcolor/api/pantone"
)

type Config struct {
	HTTPPort           string
	DatabaseType       string
	DatabaseUser       string
	DatabasePassword   string
	DatabaseHost       string
	DatabaseName       string
	SSLMode            string
	JwtSecret          string
	JwtAccessDuration  int // seconds
	APIKeyHash         string
	AllowedOrigins     []string
	DevMode            bool
	DefaultSearchLimit int
}

// AuthEnabled reports whether tool calls require a bearer token.
func (c Config) AuthEnabled() bool {
	return c.APIKeyHash != ""
}

type Application struct {
	Config         Config
	Metric         colormath.Metric
	Catalog        *pantone.Catalog
	Resolver       *pantone.Resolver
	Searcher       *pantone.Searcher
	Classifier     *pantone.Classifier
	InvocationRepo datastore.InvocationRepository
	Profiles       iccinfo.Library
}
