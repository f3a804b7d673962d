package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/printcolor/api/models"
)

func handleCors(h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")

		w.Header().Set("Access-Control-Allow-Origin", origin)
		w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Credentials", "true")
		w.Header().Set("Access-Control-Allow-Headers", "Access-Control-Allow-Credentials, Access-Control-Allow-Origin, Accept, Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization")
		if r.Method == http.MethodOptions {
			return
		}
		h.ServeHTTP(w, r)
	}
}

// bearerClaims validates the bearer token of r
func (app *Application) bearerClaims(r *http.Request) (*models.JWTClaims, error) {
	header := r.Header.Get("Authorization")
	token, ok := strings.CutPrefix(header, "Bearer ")
	if !ok || token == "" {
		return nil, errors.New("no bearer token found")
	}
	return models.ValidateJWTToken(token, app.Config.JwtSecret)
}

// authenticate requires a valid bearer token when an API key is configured
func (app *Application) authenticate(h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !app.Config.AuthEnabled() {
			h.ServeHTTP(w, r)
			return
		}

		if _, err := app.bearerClaims(r); err != nil {
			app.invalidAuthorization(w, r, err)
			return
		}

		h.ServeHTTP(w, r)
	}
}
