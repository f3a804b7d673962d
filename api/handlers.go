package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/printcolor/api/datastore"
	"github.com/printcolor/api/models"
)

const (
	maxBodyBytes           = 1 << 20
	defaultInvocationLimit = 20
	maxInvocationLimit     = 500
	defaultUsageDays       = 7
	maxUsageDays           = 365
	tokenSubject           = "api-client"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// GET /
func (app *Application) home(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	w.WriteHeader(http.StatusOK)
	fmt.Fprintf(w, "Print Color API")
}

// GET /v1/tools
func (app *Application) listTools(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		app.requireGetMethod(w, r, ErrGET)
		return
	}

	catalogue := make([]models.Tool, len(tools))
	for i, t := range tools {
		catalogue[i] = t.Tool
	}
	writeJSON(w, http.StatusOK, catalogue)
}

// POST /v1/auth/token
func (app *Application) issueToken(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		app.requirePostMethod(w, r, ErrPOST)
		return
	}
	if !app.Config.AuthEnabled() {
		app.badRequest(w, r, ErrAuthDisabled)
		return
	}

	creds := &models.TokenRequest{}
	if err := json.NewDecoder(r.Body).Decode(creds); err != nil {
		app.badJSONRequest(w, r, err)
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(app.Config.APIKeyHash), []byte(creds.APIKey)); err != nil {
		app.invalidCredentials(w, r, errors.New("invalid api key"))
		return
	}

	ttl := time.Duration(app.Config.JwtAccessDuration) * time.Second
	token, expiry, err := models.NewToken(tokenSubject, app.Config.JwtSecret, ttl)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, models.TokenResponse{Token: token, Expiry: expiry})
}

// POST /v1/tools/{name}
func (app *Application) callTool(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		app.requirePostMethod(w, r, ErrPOST)
		return
	}

	name := r.PathValue("name")
	t, ok := findTool(name)
	if !ok {
		app.toolNotFound(w, r, name)
		return
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		app.badJSONRequest(w, r, err)
		return
	}

	start := time.Now()
	result, err := t.run(app, body)
	status := models.InvocationOK
	switch {
	case err == nil:
	case isInputError(err):
		status = models.InvocationInvalid
	default:
		status = models.InvocationError
	}
	app.journal(name, status, time.Since(start), err)

	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, result)
	case errors.Is(err, errBadJSON):
		app.badJSONRequest(w, r, err)
	case status == models.InvocationInvalid:
		app.invalidToolInput(w, r, err)
	default:
		app.internalServerError(w, r, err)
	}
}

// GET /v1/invocations?limit=N
func (app *Application) listInvocations(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		app.requireGetMethod(w, r, ErrGET)
		return
	}

	limit := defaultInvocationLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > maxInvocationLimit {
			app.badRequest(w, r, fmt.Errorf("limit must be an integer between 1 and %d", maxInvocationLimit))
			return
		}
		limit = n
	}

	invocations := []models.Invocation{}
	if app.InvocationRepo != nil {
		recent, err := app.InvocationRepo.Recent(limit)
		if err != nil {
			app.internalServerError(w, r, err)
			return
		}
		if recent != nil {
			invocations = recent
		}
	}

	writeJSON(w, http.StatusOK, invocations)
}

// GET /v1/invocations/{id}
func (app *Application) getInvocation(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		app.requireGetMethod(w, r, ErrGET)
		return
	}

	id := r.PathValue("id")
	if _, err := uuid.Parse(id); err != nil || app.InvocationRepo == nil {
		app.invocationNotFound(w, r, id)
		return
	}

	inv, err := app.InvocationRepo.Get(id)
	if err != nil {
		if datastore.IsNoRows(err) {
			app.invocationNotFound(w, r, id)
			return
		}
		app.internalServerError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, inv)
}

// GET /v1/invocations/usage?days=N
func (app *Application) invocationUsage(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		app.requireGetMethod(w, r, ErrGET)
		return
	}

	days := defaultUsageDays
	if raw := r.URL.Query().Get("days"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > maxUsageDays {
			app.badRequest(w, r, fmt.Errorf("days must be an integer between 1 and %d", maxUsageDays))
			return
		}
		days = n
	}

	usage := []models.ToolUsage{}
	if app.InvocationRepo != nil {
		since := time.Now().UTC().AddDate(0, 0, -days)
		ranked, err := app.InvocationRepo.UsageSince(since, len(tools))
		if err != nil {
			app.internalServerError(w, r, err)
			return
		}
		if ranked != nil {
			usage = ranked
		}
	}

	writeJSON(w, http.StatusOK, usage)
}

// journal records a tool call; failures are logged and never reach the caller
func (app *Application) journal(tool, status string, elapsed time.Duration, callErr error) {
	id := uuid.NewString()
	log.Printf("tool=%s id=%s status=%s duration=%v", tool, id, status, elapsed)

	if app.InvocationRepo == nil {
		return
	}

	inv := models.Invocation{
		ID:         id,
		Tool:       tool,
		Status:     status,
		DurationMS: elapsed.Milliseconds(),
		CreatedAt:  time.Now().UTC(),
	}
	if callErr != nil {
		inv.Error = callErr.Error()
	}
	if _, err := app.InvocationRepo.Create(inv); err != nil {
		log.Printf("failed to journal invocation %s: %v", id, err)
	}
}
