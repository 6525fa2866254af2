package service

import (
	"math"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/RX5950XT/portfolio-visualizer/internal/apperrors"
	"github.com/RX5950XT/portfolio-visualizer/internal/config"
	"github.com/RX5950XT/portfolio-visualizer/internal/marketdata"
	"github.com/RX5950XT/portfolio-visualizer/internal/model"
	"github.com/RX5950XT/portfolio-visualizer/internal/repository"
	"github.com/RX5950XT/portfolio-visualizer/internal/yahoo"
)

// lookbackMultiplier converts a trading-day window into calendar days of
// lookback. 2.5x survives weekends and ordinary holidays; long holiday
// clusters can still starve the window.
const lookbackMultiplier = 2.5

// TrendService reconstructs daily time series from holdings and historical
// closes: the asset value/cost trend and the day-over-day realized P&L view.
type TrendService struct {
	holdingRepo *repository.HoldingRepository
	market      marketdata.Provider
	cfg         config.MarketConfig
	log         zerolog.Logger
}

// NewTrendService creates a new TrendService with the provided dependencies.
func NewTrendService(
	holdingRepo *repository.HoldingRepository,
	market marketdata.Provider,
	cfg config.MarketConfig,
	log zerolog.Logger,
) *TrendService {
	return &TrendService{
		holdingRepo: holdingRepo,
		market:      market,
		cfg:         cfg,
		log:         log.With().Str("component", "trend_service").Logger(),
	}
}

// AssetTrend reconstructs the daily portfolio value and cost-basis series
// from the earliest purchase date to today for a portfolio scope.
func (s *TrendService) AssetTrend(portfolioID string) ([]model.TrendPoint, error) {
	holdings, err := s.holdingRepo.GetHoldings(portfolioID)
	if err != nil {
		return nil, apperrors.ErrFailedToRetrieveHoldings
	}
	if len(holdings) == 0 {
		return []model.TrendPoint{}, nil
	}

	earliest := earliestPurchaseDate(holdings)
	rate := s.exchangeRate()
	history := s.fetchHistories(holdings, yahoo.HistoryQuery{Start: earliest})

	return AssetTrendSeries(holdings, history, rate, time.Now().UTC()), nil
}

// DailyPnL reconstructs the day-over-day profit/loss series for the most
// recent windowDays trading days of a portfolio scope.
func (s *TrendService) DailyPnL(portfolioID string, windowDays int) ([]model.DailyPnLPoint, error) {
	holdings, err := s.holdingRepo.GetHoldings(portfolioID)
	if err != nil {
		return nil, apperrors.ErrFailedToRetrieveHoldings
	}
	if len(holdings) == 0 {
		return []model.DailyPnLPoint{}, nil
	}

	now := time.Now().UTC()
	lookback := calendarLookback(windowDays)
	start := now.AddDate(0, 0, -lookback)

	rate := s.exchangeRate()
	history := s.fetchHistories(holdings, yahoo.HistoryQuery{Start: start, End: now})

	return DailyPnLSeries(holdings, history, rate, windowDays, now), nil
}

// exchangeRate returns the live USD/TWD rate or the configured default
func (s *TrendService) exchangeRate() float64 {
	rate, err := s.market.GetExchangeRate()
	if err != nil || rate <= 0 {
		s.log.Warn().Err(err).Float64("default", s.cfg.DefaultExchangeRate).Msg("Exchange rate unavailable, using default")
		return s.cfg.DefaultExchangeRate
	}
	return rate
}

// fetchHistories fans out the per-symbol historical-close fetch. A symbol
// whose fetch fails contributes an empty series; the trend simply omits its
// value, per the degrade-to-default policy.
func (s *TrendService) fetchHistories(holdings []model.Holding, query yahoo.HistoryQuery) map[string]map[string]float64 {
	symbols := uniqueSymbols(holdings)

	history := make(map[string]map[string]float64, len(symbols))
	var mu sync.Mutex

	var g errgroup.Group
	g.SetLimit(quoteFetchLimit)

	for _, symbol := range symbols {
		g.Go(func() error {
			points, err := s.market.GetHistory(symbol, query)
			if err != nil {
				s.log.Warn().Err(err).Str("symbol", symbol).Msg("History unavailable")
				points = nil
			}
			closes := make(map[string]float64, len(points))
			for _, p := range points {
				closes[p.Date.Format("2006-01-02")] = p.Close
			}
			mu.Lock()
			history[symbol] = closes
			mu.Unlock()
			return nil
		})
	}

	_ = g.Wait() // goroutines never return errors; failures degrade to empty series

	return history
}

// AssetTrendSeries walks every calendar day from the earliest purchase date
// to now and computes the portfolio's cost basis and market value per day.
// Missing closes (weekends, holidays) are forward-filled from the last known
// close per symbol; a symbol with no close yet contributes zero value. Days
// before any lot was active, or before any price is resolvable, are
// suppressed. Values are rounded to the nearest TWD unit.
func AssetTrendSeries(
	holdings []model.Holding,
	historyBySymbol map[string]map[string]float64,
	fxRate float64,
	now time.Time,
) []model.TrendPoint {
	if len(holdings) == 0 {
		return []model.TrendPoint{}
	}

	start := midnightUTC(earliestPurchaseDate(holdings))
	end := midnightUTC(now)

	points := []model.TrendPoint{}
	lastKnownPrices := make(map[string]float64)

	for date := start; !date.After(end); date = date.AddDate(0, 0, 1) {
		dateKey := date.Format("2006-01-02")

		var dailyValue, dailyCost float64
		hasAnyHolding := false

		for _, h := range holdings {
			if h.PurchaseDate.After(date) {
				continue
			}
			hasAnyHolding = true

			lotCost := h.Shares * h.CostPrice
			if h.IsForeign() {
				lotCost *= fxRate
			}
			dailyCost += lotCost

			price, ok := historyBySymbol[h.Symbol][dateKey]
			if ok {
				lastKnownPrices[h.Symbol] = price
			} else {
				price = lastKnownPrices[h.Symbol]
			}
			if price > 0 {
				value := h.Shares * price
				if h.IsForeign() {
					value *= fxRate
				}
				dailyValue += value
			}
		}

		if hasAnyHolding && dailyValue > 0 {
			points = append(points, model.TrendPoint{
				Date:  dateKey,
				Value: roundUnit(dailyValue),
				Cost:  roundUnit(dailyCost),
			})
		}
	}

	return points
}

// DailyPnLSeries computes the day-over-day P&L across the lookback window and
// returns the most recent windowDays emitted points. Unlike the asset trend,
// no forward-fill is applied: a day contributes only when both it and the
// previous day have an actual recorded close, so the delta is a genuine
// trading-day comparison. Days where no symbol has data are omitted, and so
// are days whose net P&L is exactly zero.
func DailyPnLSeries(
	holdings []model.Holding,
	historyBySymbol map[string]map[string]float64,
	fxRate float64,
	windowDays int,
	now time.Time,
) []model.DailyPnLPoint {
	if len(holdings) == 0 || windowDays <= 0 {
		return []model.DailyPnLPoint{}
	}

	lookback := calendarLookback(windowDays)
	end := midnightUTC(now)

	dates := make([]string, 0, lookback+1)
	for i := lookback; i >= 0; i-- {
		dates = append(dates, end.AddDate(0, 0, -i).Format("2006-01-02"))
	}

	points := []model.DailyPnLPoint{}

	for i := 1; i < len(dates); i++ {
		today, yesterday := dates[i], dates[i-1]

		var dailyPnL float64
		hasData := false

		for _, h := range holdings {
			if h.PurchaseDate.Format("2006-01-02") > today {
				continue
			}

			closes := historyBySymbol[h.Symbol]
			todayClose, todayOK := closes[today]
			if todayOK {
				hasData = true
			}
			yesterdayClose, yesterdayOK := closes[yesterday]
			if !todayOK || !yesterdayOK {
				continue
			}

			pnl := (todayClose - yesterdayClose) * h.Shares
			if h.IsForeign() {
				pnl *= fxRate
			}
			dailyPnL += pnl
		}

		// A zero net P&L is indistinguishable from "no movement data" and is
		// dropped as no-signal.
		if hasData && dailyPnL != 0 {
			points = append(points, model.DailyPnLPoint{
				Date: today,
				PnL:  roundUnit(dailyPnL),
			})
		}
	}

	if len(points) > windowDays {
		points = points[len(points)-windowDays:]
	}

	return points
}

// calendarLookback converts a trading-day window to calendar days
func calendarLookback(windowDays int) int {
	return int(math.Ceil(float64(windowDays) * lookbackMultiplier))
}

// earliestPurchaseDate returns the minimum purchase date across lots
func earliestPurchaseDate(holdings []model.Holding) time.Time {
	earliest := holdings[0].PurchaseDate
	for _, h := range holdings[1:] {
		if h.PurchaseDate.Before(earliest) {
			earliest = h.PurchaseDate
		}
	}
	return earliest
}

// midnightUTC truncates a time to its UTC calendar day
func midnightUTC(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
