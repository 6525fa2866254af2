package service

import (
	"testing"
	"time"

	"github.com/RX5950XT/portfolio-visualizer/internal/logger"
	"github.com/RX5950XT/portfolio-visualizer/internal/model"
	"github.com/RX5950XT/portfolio-visualizer/internal/repository"
	"github.com/RX5950XT/portfolio-visualizer/internal/testutil"
)

func date(s string) time.Time {
	t, _ := time.Parse("2006-01-02", s)
	return t
}

func TestAssetTrendSeries(t *testing.T) {
	t.Run("forward-fills missing closes", func(t *testing.T) {
		holdings := []model.Holding{
			testutil.NewHolding().WithSymbol("2330.TW").WithShares(10).WithCostPrice(90).
				WithPurchaseDate(date("2024-01-01")).Model(),
		}
		history := map[string]map[string]float64{
			"2330.TW": {"2024-01-01": 100, "2024-01-03": 110},
		}

		points := AssetTrendSeries(holdings, history, 32, date("2024-01-04"))

		if len(points) != 4 {
			t.Fatalf("expected 4 points, got %d", len(points))
		}
		wantValues := []float64{1000, 1000, 1100, 1100}
		for i, want := range wantValues {
			if points[i].Value != want {
				t.Errorf("day %s: expected value %v, got %v", points[i].Date, want, points[i].Value)
			}
			if points[i].Cost != 900 {
				t.Errorf("day %s: expected cost 900, got %v", points[i].Date, points[i].Cost)
			}
		}
	})

	t.Run("suppresses days before any price is known", func(t *testing.T) {
		holdings := []model.Holding{
			testutil.NewHolding().WithSymbol("2330.TW").WithShares(10).WithCostPrice(90).
				WithPurchaseDate(date("2024-01-01")).Model(),
		}
		history := map[string]map[string]float64{
			"2330.TW": {"2024-01-03": 110},
		}

		points := AssetTrendSeries(holdings, history, 32, date("2024-01-04"))

		if len(points) != 2 {
			t.Fatalf("expected 2 points, got %d", len(points))
		}
		if points[0].Date != "2024-01-03" {
			t.Errorf("expected first emitted day 2024-01-03, got %s", points[0].Date)
		}
	})

	t.Run("a lot joins the series on its purchase date", func(t *testing.T) {
		holdings := []model.Holding{
			testutil.NewHolding().WithSymbol("2330.TW").WithShares(10).WithCostPrice(90).
				WithPurchaseDate(date("2024-01-01")).Model(),
			testutil.NewHolding().WithSymbol("0050.TW").WithShares(5).WithCostPrice(100).
				WithPurchaseDate(date("2024-01-03")).Model(),
		}
		history := map[string]map[string]float64{
			"2330.TW": {"2024-01-01": 100},
			"0050.TW": {"2024-01-03": 120},
		}

		points := AssetTrendSeries(holdings, history, 32, date("2024-01-03"))

		if len(points) != 3 {
			t.Fatalf("expected 3 points, got %d", len(points))
		}
		// first two days only the first lot contributes
		if points[0].Value != 1000 || points[0].Cost != 900 {
			t.Errorf("day 1: got value %v cost %v", points[0].Value, points[0].Cost)
		}
		// third day adds 5*120 value and 5*100 cost
		if points[2].Value != 1600 || points[2].Cost != 1400 {
			t.Errorf("day 3: got value %v cost %v", points[2].Value, points[2].Cost)
		}
	})

	t.Run("foreign lots convert through the exchange rate", func(t *testing.T) {
		holdings := []model.Holding{
			testutil.NewHolding().WithSymbol("VOO").WithShares(2).WithCostPrice(100).
				WithPurchaseDate(date("2024-01-01")).Model(),
		}
		history := map[string]map[string]float64{
			"VOO": {"2024-01-01": 150},
		}

		points := AssetTrendSeries(holdings, history, 32, date("2024-01-01"))

		if len(points) != 1 {
			t.Fatalf("expected 1 point, got %d", len(points))
		}
		if points[0].Value != 9600 {
			t.Errorf("expected value 9600 TWD, got %v", points[0].Value)
		}
		if points[0].Cost != 6400 {
			t.Errorf("expected cost 6400 TWD, got %v", points[0].Cost)
		}
	})

	t.Run("no holdings yields an empty series", func(t *testing.T) {
		points := AssetTrendSeries(nil, nil, 32, date("2024-01-01"))
		if len(points) != 0 {
			t.Errorf("expected empty series, got %d points", len(points))
		}
	})
}

func TestDailyPnLSeries(t *testing.T) {
	holdings := []model.Holding{
		testutil.NewHolding().WithSymbol("2330.TW").WithShares(10).WithCostPrice(90).
			WithPurchaseDate(date("2024-01-01")).Model(),
	}

	t.Run("requires closes on both days with no forward-fill", func(t *testing.T) {
		history := map[string]map[string]float64{
			"2330.TW": {
				"2024-01-01": 100,
				"2024-01-02": 105,
				// 2024-01-03 missing (holiday)
				"2024-01-04": 110,
			},
		}

		points := DailyPnLSeries(holdings, history, 32, 30, date("2024-01-04"))

		// 01-02 has a pair; 01-03 has no close at all; 01-04's previous day
		// is missing, so the delta is not computable
		if len(points) != 1 {
			t.Fatalf("expected 1 point, got %d: %+v", len(points), points)
		}
		if points[0].Date != "2024-01-02" || points[0].PnL != 50 {
			t.Errorf("expected 2024-01-02 pnl 50, got %s pnl %v", points[0].Date, points[0].PnL)
		}
	})

	t.Run("drops days with zero net movement", func(t *testing.T) {
		history := map[string]map[string]float64{
			"2330.TW": {
				"2024-01-01": 100,
				"2024-01-02": 100,
				"2024-01-03": 104,
			},
		}

		points := DailyPnLSeries(holdings, history, 32, 30, date("2024-01-03"))

		if len(points) != 1 {
			t.Fatalf("expected 1 point, got %d: %+v", len(points), points)
		}
		if points[0].Date != "2024-01-03" || points[0].PnL != 40 {
			t.Errorf("expected 2024-01-03 pnl 40, got %s pnl %v", points[0].Date, points[0].PnL)
		}
	})

	t.Run("truncates to the requested window", func(t *testing.T) {
		history := map[string]map[string]float64{
			"2330.TW": {
				"2024-01-01": 100,
				"2024-01-02": 101,
				"2024-01-03": 103,
				"2024-01-04": 106,
			},
		}

		points := DailyPnLSeries(holdings, history, 32, 2, date("2024-01-04"))

		if len(points) != 2 {
			t.Fatalf("expected 2 points, got %d", len(points))
		}
		if points[0].Date != "2024-01-03" || points[1].Date != "2024-01-04" {
			t.Errorf("expected the most recent window, got %s and %s", points[0].Date, points[1].Date)
		}
	})

	t.Run("foreign movement converts through the exchange rate", func(t *testing.T) {
		foreign := []model.Holding{
			testutil.NewHolding().WithSymbol("VOO").WithShares(10).WithCostPrice(100).
				WithPurchaseDate(date("2024-01-01")).Model(),
		}
		history := map[string]map[string]float64{
			"VOO": {"2024-01-01": 100, "2024-01-02": 101},
		}

		points := DailyPnLSeries(foreign, history, 32, 30, date("2024-01-02"))

		if len(points) != 1 {
			t.Fatalf("expected 1 point, got %d", len(points))
		}
		if points[0].PnL != 320 {
			t.Errorf("expected pnl 320 TWD, got %v", points[0].PnL)
		}
	})

	t.Run("ignores lots purchased after the day", func(t *testing.T) {
		late := []model.Holding{
			testutil.NewHolding().WithSymbol("2330.TW").WithShares(10).WithCostPrice(90).
				WithPurchaseDate(date("2024-01-03")).Model(),
		}
		history := map[string]map[string]float64{
			"2330.TW": {"2024-01-01": 100, "2024-01-02": 105, "2024-01-03": 110, "2024-01-04": 112},
		}

		points := DailyPnLSeries(late, history, 32, 30, date("2024-01-04"))

		for _, p := range points {
			if p.Date < "2024-01-03" {
				t.Errorf("day %s emitted before the lot was purchased", p.Date)
			}
		}
	})
}

func TestCalendarLookback(t *testing.T) {
	if got := calendarLookback(30); got != 75 {
		t.Errorf("expected 75 calendar days for a 30-day window, got %d", got)
	}
	if got := calendarLookback(1); got != 3 {
		t.Errorf("expected 3 calendar days for a 1-day window, got %d", got)
	}
}

func TestTrendService_EmptyPortfolio(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := NewTrendService(
		repository.NewHoldingRepository(db),
		testutil.NewStubProvider(32),
		testMarketConfig(),
		logger.Discard(),
	)

	trend, err := svc.AssetTrend("")
	if err != nil {
		t.Fatalf("AssetTrend failed: %v", err)
	}
	if len(trend) != 0 {
		t.Errorf("expected empty trend, got %d points", len(trend))
	}

	pnl, err := svc.DailyPnL("", 30)
	if err != nil {
		t.Fatalf("DailyPnL failed: %v", err)
	}
	if len(pnl) != 0 {
		t.Errorf("expected empty pnl series, got %d points", len(pnl))
	}
}
