package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/RX5950XT/portfolio-visualizer/internal/logger"
	"github.com/RX5950XT/portfolio-visualizer/internal/model"
	"github.com/RX5950XT/portfolio-visualizer/internal/repository"
	"github.com/RX5950XT/portfolio-visualizer/internal/service"
	"github.com/RX5950XT/portfolio-visualizer/internal/testutil"
)

func newTestChartHandler(t *testing.T, market *testutil.StubProvider) (*ChartHandler, func() model.Holding) {
	t.Helper()

	db := testutil.SetupTestDB(t)
	trendService := service.NewTrendService(
		repository.NewHoldingRepository(db), market, testMarketConfig(), logger.Discard(),
	)
	build := func() model.Holding {
		return testutil.NewHolding().
			WithSymbol("2330.TW").
			WithShares(10).
			WithCostPrice(500).
			WithPurchaseDate(time.Now().UTC().AddDate(-1, 0, 0)).
			Build(t, db)
	}
	return NewChartHandler(trendService), build
}

func TestChartHandler_DailyPnLWindow(t *testing.T) {
	// Twelve consecutive daily closes, each one higher than the last, so
	// every adjacent pair produces a nonzero profit/loss point.
	closes := make(map[string]float64, 12)
	now := time.Now().UTC()
	for i := 0; i < 12; i++ {
		date := now.AddDate(0, 0, -i).Format("2006-01-02")
		closes[date] = 600 - float64(i)
	}
	market := testutil.NewStubProvider(32).WithHistory("2330.TW", closes)

	handler, buildHolding := newTestChartHandler(t, market)
	buildHolding()

	getPnL := func(t *testing.T, query string) []model.DailyPnLPoint {
		t.Helper()
		req := httptest.NewRequest(http.MethodGet, "/api/charts/daily-pnl"+query, nil)
		rec := httptest.NewRecorder()
		handler.DailyPnL(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		var points []model.DailyPnLPoint
		testutil.DecodeData(t, rec, &points)
		return points
	}

	t.Run("defaults to a seven day window", func(t *testing.T) {
		points := getPnL(t, "")
		if len(points) != 7 {
			t.Errorf("expected 7 points, got %d", len(points))
		}
	})

	t.Run("days parameter widens the window", func(t *testing.T) {
		points := getPnL(t, "?days=9")
		if len(points) != 9 {
			t.Errorf("expected 9 points, got %d", len(points))
		}
	})

	t.Run("rejects non-positive days", func(t *testing.T) {
		for _, query := range []string{"?days=0", "?days=-3", "?days=soon"} {
			req := httptest.NewRequest(http.MethodGet, "/api/charts/daily-pnl"+query, nil)
			rec := httptest.NewRecorder()
			handler.DailyPnL(rec, req)
			if rec.Code != http.StatusBadRequest {
				t.Errorf("%s: expected 400, got %d", query, rec.Code)
			}
		}
	})
}
