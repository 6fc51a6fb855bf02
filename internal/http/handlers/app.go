package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"crowdfund/internal/domain"
	"crowdfund/internal/i18n"
	"crowdfund/internal/ledger"
	"crowdfund/internal/middleware"
)

const maxBodyBytes = 1 << 16

// App carries the dependencies shared by every handler.
type App struct {
	Engine  *ledger.Engine
	Log     *ledger.Log
	Payouts domain.PayoutRepository
	Catalog *i18n.Catalog
	Logger  zerolog.Logger
}

func NewApp(engine *ledger.Engine, log *ledger.Log, payouts domain.PayoutRepository, logger zerolog.Logger) *App {
	return &App{
		Engine:  engine,
		Log:     log,
		Payouts: payouts,
		Catalog: i18n.NewCatalog(),
		Logger:  logger,
	}
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type errorEnvelope struct {
	Error     errorBody `json:"error"`
	RequestID string    `json:"request_id,omitempty"`
}

func (a *App) json(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// error writes the localized error envelope for code.
func (a *App) error(w http.ResponseWriter, r *http.Request, status int, code string) {
	locale := middleware.LocaleFromContext(r.Context())
	a.json(w, status, errorEnvelope{
		Error: errorBody{
			Code:    code,
			Message: a.Catalog.Message(locale, code),
		},
		RequestID: middleware.RequestIDFromContext(r.Context()),
	})
}

// fail maps a ledger error onto its status and code.
func (a *App) fail(w http.ResponseWriter, r *http.Request, err error) {
	status, code := classify(err)
	if status >= http.StatusInternalServerError {
		a.Logger.Error().Err(err).
			Str("request_id", middleware.RequestIDFromContext(r.Context())).
			Str("path", r.URL.Path).
			Msg("request failed")
	}
	a.error(w, r, status, code)
}

// Unauthorized is the rejection writer for middleware.AuthJWT.
func (a *App) Unauthorized(w http.ResponseWriter, r *http.Request, err error) {
	a.Logger.Debug().Err(err).Str("path", r.URL.Path).Msg("auth rejected")
	a.error(w, r, http.StatusUnauthorized, i18n.CodeUnauthorized)
}

// RateLimited is the rejection writer for middleware.RateLimit.
func (a *App) RateLimited(w http.ResponseWriter, r *http.Request) {
	a.error(w, r, http.StatusTooManyRequests, i18n.CodeRateLimited)
}

func (a *App) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, domain.ErrInvalidAmountFormat) {
			a.error(w, r, http.StatusBadRequest, i18n.CodeInvalidAmount)
			return false
		}
		a.error(w, r, http.StatusBadRequest, i18n.CodeBadRequest)
		return false
	}
	return true
}

func (a *App) projectID(w http.ResponseWriter, r *http.Request) (uint64, bool) {
	id, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		a.error(w, r, http.StatusBadRequest, i18n.CodeBadRequest)
		return 0, false
	}
	return id, true
}

// caller returns the authenticated principal. Routes behind AuthJWT always have one.
func (a *App) caller(w http.ResponseWriter, r *http.Request) (domain.Principal, bool) {
	p := middleware.PrincipalFromContext(r.Context())
	if p == "" {
		a.error(w, r, http.StatusUnauthorized, i18n.CodeUnauthorized)
		return "", false
	}
	return p, true
}
