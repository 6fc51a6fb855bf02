package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"crowdfund/internal/adapter/repo"
	"crowdfund/internal/domain"
	"crowdfund/internal/i18n"
	"crowdfund/internal/ledger"
	"crowdfund/internal/middleware"
)

func newTestApp() *App {
	store := repo.NewMemoryStore()
	log := ledger.NewLog()
	engine := ledger.New(nil, ledger.WithJournal(store), ledger.WithSink(log))
	return NewApp(engine, log, store, zerolog.Nop())
}

func decodeError(t *testing.T, rr *httptest.ResponseRecorder) errorEnvelope {
	t.Helper()
	var env errorEnvelope
	if err := json.NewDecoder(rr.Body).Decode(&env); err != nil {
		t.Fatalf("decode error envelope: %v", err)
	}
	return env
}

func TestClassify(t *testing.T) {
	tests := []struct {
		err    error
		status int
		code   string
	}{
		{domain.ErrNotFound, http.StatusNotFound, i18n.CodeNotFound},
		{fmt.Errorf("%w: boom", domain.ErrTransferFailed), http.StatusBadGateway, i18n.CodeTransferFailed},
		{fmt.Errorf("%w: %w: timeout", domain.ErrTransferFailed, domain.ErrJournalFailed), http.StatusServiceUnavailable, i18n.CodeJournalUnavailable},
		{domain.ErrNotOwner, http.StatusForbidden, i18n.CodeNotOwner},
		{domain.ErrGoalMet, http.StatusConflict, i18n.CodeGoalMet},
		{domain.ErrInvalidAmountFormat, http.StatusBadRequest, i18n.CodeInvalidAmount},
		{errors.New("disk on fire"), http.StatusInternalServerError, i18n.CodeInternal},
	}
	for _, tc := range tests {
		t.Run(tc.code, func(t *testing.T) {
			status, code := classify(tc.err)
			if status != tc.status || code != tc.code {
				t.Fatalf("classify(%v) = %d %q, want %d %q", tc.err, status, code, tc.status, tc.code)
			}
		})
	}
}

func TestErrorEnvelopeIsLocalized(t *testing.T) {
	app := newTestApp()
	req := httptest.NewRequest(http.MethodGet, "/v1/projects/7", nil)
	ctx := context.WithValue(req.Context(), middleware.LocaleKey, "id")
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("id", "7")
	ctx = context.WithValue(ctx, chi.RouteCtxKey, rctx)
	rr := httptest.NewRecorder()

	app.ProjectGet(rr, req.WithContext(ctx))

	if rr.Code != http.StatusNotFound {
		t.Fatalf("unexpected status code: got %d, want 404", rr.Code)
	}
	env := decodeError(t, rr)
	if env.Error.Code != i18n.CodeNotFound || env.Error.Message != "Proyek tidak ditemukan." {
		t.Fatalf("unexpected envelope: %+v", env)
	}
}

func TestProjectsCreateRequiresPrincipal(t *testing.T) {
	app := newTestApp()
	req := httptest.NewRequest(http.MethodPost, "/v1/projects", nil)
	rr := httptest.NewRecorder()

	app.ProjectsCreate(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("unexpected status code: got %d, want 401", rr.Code)
	}
}

func TestEventsListRejectsBadQuery(t *testing.T) {
	app := newTestApp()
	for _, q := range []string{"since=-1", "limit=0", "limit=abc"} {
		t.Run(q, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/v1/events?"+q, nil)
			rr := httptest.NewRecorder()
			app.EventsList(rr, req)
			if rr.Code != http.StatusBadRequest {
				t.Fatalf("unexpected status code: got %d, want 400", rr.Code)
			}
		})
	}
}

func TestStatsSummaryCountsProjects(t *testing.T) {
	app := newTestApp()
	ctx := context.Background()
	if _, err := app.Engine.CreateProject(ctx, "owner", "a", "", domain.Coins(1), 1); err != nil {
		t.Fatalf("CreateProject: %v", err)
	}
	id, _ := app.Engine.CreateProject(ctx, "owner", "b", "", domain.Coins(1), 1)
	if _, err := app.Engine.Donate(ctx, id, "donor", domain.Coins(1)); err != nil {
		t.Fatalf("Donate: %v", err)
	}

	rr := httptest.NewRecorder()
	app.StatsSummary(rr, httptest.NewRequest(http.MethodGet, "/v1/stats", nil))

	var payload map[string]any
	if err := json.NewDecoder(rr.Body).Decode(&payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if payload["projects_active"] != float64(1) || payload["projects_successful"] != float64(1) || payload["total_pledged"] != "1" {
		t.Fatalf("unexpected stats: %v", payload)
	}
}

func TestStatsSummaryTotalsExceedSingleAmount(t *testing.T) {
	app := newTestApp()
	ctx := context.Background()
	for i := 0; i < 2; i++ {
		if _, err := app.Engine.CreateProject(ctx, "owner", "big", "", domain.Coins(15_000_000_000), 1); err != nil {
			t.Fatalf("CreateProject: %v", err)
		}
	}
	if _, err := app.Engine.Donate(ctx, 0, "donor", domain.Coins(1)/2); err != nil {
		t.Fatalf("Donate: %v", err)
	}

	rr := httptest.NewRecorder()
	app.StatsSummary(rr, httptest.NewRequest(http.MethodGet, "/v1/stats", nil))

	var payload map[string]any
	if err := json.NewDecoder(rr.Body).Decode(&payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if payload["total_goals"] != "30000000000" || payload["total_pledged"] != "0.5" {
		t.Fatalf("unexpected totals: %v", payload)
	}
}

func TestAmountTotalFormatsFraction(t *testing.T) {
	var total amountTotal
	total.add(domain.Amount(5))
	total.add(domain.Coins(2))
	if got := total.String(); got != "2.000000005" {
		t.Fatalf("total = %q, want 2.000000005", got)
	}
}

func TestRewardsMeListsPayoutsWithRFC3339Times(t *testing.T) {
	app := newTestApp()
	ctx := context.Background()
	id, _ := app.Engine.CreateProject(ctx, "owner", "a", "", domain.Coins(1), 1)
	if _, err := app.Engine.Donate(ctx, id, "donor", domain.Coins(2)); err != nil {
		t.Fatalf("Donate: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/v1/rewards/me", nil)
	req = req.WithContext(middleware.ContextWithPrincipal(req.Context(), "donor"))
	rr := httptest.NewRecorder()
	app.RewardsMe(rr, req)

	var payload struct {
		Payouts []struct {
			Amount    string `json:"amount"`
			Reason    string `json:"reason"`
			CreatedAt string `json:"created_at"`
		} `json:"payouts"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(payload.Payouts) != 1 || payload.Payouts[0].Amount != "1" || payload.Payouts[0].Reason != "excess_refund" {
		t.Fatalf("unexpected payouts: %+v", payload.Payouts)
	}
	if _, err := time.Parse(time.RFC3339, payload.Payouts[0].CreatedAt); err != nil {
		t.Fatalf("created_at %q: %v", payload.Payouts[0].CreatedAt, err)
	}
}

func TestOpenAPIDocsListsOperations(t *testing.T) {
	app := newTestApp()
	rr := httptest.NewRecorder()
	app.OpenAPIDocs(rr, httptest.NewRequest(http.MethodGet, "/v1/docs", nil))

	if rr.Code != http.StatusOK {
		t.Fatalf("unexpected status code: got %d, want 200", rr.Code)
	}
	body := rr.Body.String()
	for _, want := range []string{"Crowdfund Ledger API", "/v1/projects/{id}/refund", "Mint all unclaimed reward tokens", "/v1/openapi.json"} {
		if !strings.Contains(body, want) {
			t.Fatalf("docs page missing %q", want)
		}
	}
	if strings.Contains(body, "<script") {
		t.Fatal("docs page should not load scripts")
	}
}

func TestOpenAPIJSONIsValid(t *testing.T) {
	app := newTestApp()
	rr := httptest.NewRecorder()
	app.OpenAPIJSON(rr, httptest.NewRequest(http.MethodGet, "/v1/openapi.json", nil))

	var doc struct {
		OpenAPI string         `json:"openapi"`
		Paths   map[string]any `json:"paths"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&doc); err != nil {
		t.Fatalf("decode openapi: %v", err)
	}
	if doc.OpenAPI == "" || doc.Paths["/v1/projects/{id}/donations"] == nil {
		t.Fatalf("unexpected openapi document: %+v", doc)
	}
}
