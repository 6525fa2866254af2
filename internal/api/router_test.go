package api

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/RX5950XT/portfolio-visualizer/internal/auth"
	"github.com/RX5950XT/portfolio-visualizer/internal/config"
	"github.com/RX5950XT/portfolio-visualizer/internal/logger"
	"github.com/RX5950XT/portfolio-visualizer/internal/repository"
	"github.com/RX5950XT/portfolio-visualizer/internal/service"
	"github.com/RX5950XT/portfolio-visualizer/internal/testutil"
)

func newTestRouter(t *testing.T) (http.Handler, *auth.Service) {
	t.Helper()

	db := testutil.SetupTestDB(t)
	cfg := &config.Config{
		Auth: config.AuthConfig{
			AdminPassword: "admin-pw",
			GuestPassword: "guest-pw",
			SessionKey:    "cw_0x689RpI-jtRR7oE8h_eQsKImvJapLeSbXpwF4e4=",
			SessionTTL:    time.Hour,
		},
		Market: config.MarketConfig{
			DomesticSuffix:      ".TW",
			DefaultExchangeRate: 32,
			QuoteCacheTTL:       time.Minute,
		},
		CORS: config.CORSConfig{AllowedOrigins: []string{"http://localhost:3000"}},
	}

	authService, err := auth.NewService(cfg.Auth)
	if err != nil {
		t.Fatalf("auth.NewService failed: %v", err)
	}

	market := testutil.NewStubProvider(32)
	zlog := logger.Discard()

	holdingRepo := repository.NewHoldingRepository(db)
	portfolioRepo := repository.NewPortfolioRepository(db)
	cashRepo := repository.NewCashRepository(db)
	transactionRepo := repository.NewTransactionRepository(db)
	snapshotRepo := repository.NewSnapshotRepository(db)

	valuationService := service.NewValuationService(holdingRepo, cashRepo, market, cfg.Market, zlog)
	router := NewRouter(Services{
		Auth:      authService,
		System:    service.NewSystemService(db),
		Holding:   service.NewHoldingService(holdingRepo, market, cfg.Market, zlog),
		Valuation: valuationService,
		Portfolio: service.NewPortfolioService(portfolioRepo, zlog),
		Cash:      service.NewCashService(cashRepo, zlog),
		Transaction: service.NewTransactionService(
			db, transactionRepo, holdingRepo, cashRepo, market, market, cfg.Market, zlog,
		),
		Trend:    service.NewTrendService(holdingRepo, market, cfg.Market, zlog),
		Snapshot: service.NewSnapshotService(snapshotRepo, valuationService, zlog),
		Market:   market,
	}, cfg, zlog)

	return router, authService
}

func doRequest(t *testing.T, router http.Handler, method, path, role string, authService *auth.Service) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, path, nil)
	if role != "" {
		token, err := authService.IssueToken(role)
		if err != nil {
			t.Fatalf("IssueToken failed: %v", err)
		}
		req.AddCookie(&http.Cookie{Name: auth.CookieName, Value: token})
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

// Authorization must run before the UUID format check: a request that fails
// both reports the authorization failure.
func TestRouter_AuthorizationBeforeValidation(t *testing.T) {
	router, authService := newTestRouter(t)

	tests := []struct {
		name   string
		method string
		path   string
		role   string
		want   int
	}{
		{"anonymous malformed holding delete", http.MethodDelete, "/api/holdings/not-a-uuid", "", http.StatusUnauthorized},
		{"guest malformed holding delete", http.MethodDelete, "/api/holdings/not-a-uuid", auth.RoleGuest, http.StatusForbidden},
		{"admin malformed holding delete", http.MethodDelete, "/api/holdings/not-a-uuid", auth.RoleAdmin, http.StatusBadRequest},
		{"guest malformed portfolio update", http.MethodPut, "/api/portfolios/not-a-uuid", auth.RoleGuest, http.StatusForbidden},
		{"anonymous malformed transaction delete", http.MethodDelete, "/api/transactions/not-a-uuid", "", http.StatusUnauthorized},
		{"admin malformed transaction delete", http.MethodDelete, "/api/transactions/not-a-uuid", auth.RoleAdmin, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRequest(t, router, tt.method, tt.path, tt.role, authService)
			if rec.Code != tt.want {
				t.Errorf("expected %d, got %d: %s", tt.want, rec.Code, rec.Body.String())
			}
		})
	}
}

func TestRouter_RoleGuards(t *testing.T) {
	router, authService := newTestRouter(t)

	t.Run("health is public", func(t *testing.T) {
		rec := doRequest(t, router, http.MethodGet, "/api/system/health", "", authService)
		if rec.Code != http.StatusOK {
			t.Errorf("expected 200, got %d", rec.Code)
		}
	})

	t.Run("reads need a session", func(t *testing.T) {
		rec := doRequest(t, router, http.MethodGet, "/api/holdings", "", authService)
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("expected 401, got %d", rec.Code)
		}
	})

	t.Run("guest can read", func(t *testing.T) {
		rec := doRequest(t, router, http.MethodGet, "/api/holdings", auth.RoleGuest, authService)
		if rec.Code != http.StatusOK {
			t.Errorf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
	})

	t.Run("guest cannot create", func(t *testing.T) {
		rec := doRequest(t, router, http.MethodPost, "/api/snapshots", auth.RoleGuest, authService)
		if rec.Code != http.StatusForbidden {
			t.Errorf("expected 403, got %d", rec.Code)
		}
	})
}
