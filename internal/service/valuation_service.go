package service

import (
	"sync"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/RX5950XT/portfolio-visualizer/internal/apperrors"
	"github.com/RX5950XT/portfolio-visualizer/internal/config"
	"github.com/RX5950XT/portfolio-visualizer/internal/marketdata"
	"github.com/RX5950XT/portfolio-visualizer/internal/model"
	"github.com/RX5950XT/portfolio-visualizer/internal/repository"
)

// quoteFetchLimit caps concurrent upstream requests during per-symbol fan-out
const quoteFetchLimit = 5

// ValuationService computes the current worth of holdings. It loads lots and
// cash from the store, fetches quotes and fee data through the market-data
// cache, and runs the pure enrichment and aggregation computations.
type ValuationService struct {
	holdingRepo *repository.HoldingRepository
	cashRepo    *repository.CashRepository
	market      marketdata.Provider
	cfg         config.MarketConfig
	log         zerolog.Logger
}

// NewValuationService creates a new ValuationService with the provided dependencies.
func NewValuationService(
	holdingRepo *repository.HoldingRepository,
	cashRepo *repository.CashRepository,
	market marketdata.Provider,
	cfg config.MarketConfig,
	log zerolog.Logger,
) *ValuationService {
	return &ValuationService{
		holdingRepo: holdingRepo,
		cashRepo:    cashRepo,
		market:      market,
		cfg:         cfg,
		log:         log.With().Str("component", "valuation_service").Logger(),
	}
}

// ValuationResult carries the full valuation payload: every enriched lot, the
// per-symbol aggregated positions, and the portfolio totals.
type ValuationResult struct {
	Holdings  []model.EnrichedHolding    `json:"holdings"`
	Positions []model.AggregatedPosition `json:"positions"`
	Totals    model.ValuationTotals      `json:"totals"`
}

// ExchangeRate returns the current USD/TWD rate, substituting the configured
// default when the provider is unavailable.
func (s *ValuationService) ExchangeRate() float64 {
	rate, err := s.market.GetExchangeRate()
	if err != nil || rate <= 0 {
		s.log.Warn().Err(err).Float64("default", s.cfg.DefaultExchangeRate).Msg("Exchange rate unavailable, using default")
		return s.cfg.DefaultExchangeRate
	}
	return rate
}

// Valuate computes the current valuation for a portfolio scope (empty
// portfolioID = all holdings). Quote, fee, and rate failures degrade to
// zero price / nil ratio / default rate so the view stays renderable when
// the provider is down.
func (s *ValuationService) Valuate(portfolioID string) (ValuationResult, error) {
	holdings, err := s.holdingRepo.GetHoldings(portfolioID)
	if err != nil {
		return ValuationResult{}, apperrors.ErrFailedToRetrieveHoldings
	}

	cash := 0.0
	if balance, err := s.cashRepo.GetCashBalance(portfolioID); err == nil {
		cash = balance.AmountTWD
	} else if err != apperrors.ErrCashBalanceNotFound {
		return ValuationResult{}, err
	}

	rate := s.ExchangeRate()
	quotes, expenses := s.fetchMarketData(holdings)

	enriched, totals := Enrich(holdings, quotes, expenses, rate, cash)
	positions := Aggregate(enriched)

	return ValuationResult{
		Holdings:  enriched,
		Positions: positions,
		Totals:    totals,
	}, nil
}

// fetchMarketData fans out quote and expense-ratio lookups across the unique
// symbols held. The reads are independent and side-effect free, so they are
// issued concurrently and joined by symbol key.
func (s *ValuationService) fetchMarketData(holdings []model.Holding) (map[string]*model.Quote, map[string]*float64) {
	symbols := uniqueSymbols(holdings)

	quotes := make(map[string]*model.Quote, len(symbols))
	expenses := make(map[string]*float64, len(symbols))
	var mu sync.Mutex

	var g errgroup.Group
	g.SetLimit(quoteFetchLimit)

	for _, symbol := range symbols {
		g.Go(func() error {
			quote, err := s.market.GetQuote(symbol)
			if err != nil {
				s.log.Warn().Err(err).Str("symbol", symbol).Msg("Quote unavailable")
				return nil
			}
			mu.Lock()
			quotes[symbol] = quote
			mu.Unlock()
			return nil
		})
		g.Go(func() error {
			ratio, err := s.market.GetExpenseRatio(symbol)
			if err != nil {
				s.log.Debug().Err(err).Str("symbol", symbol).Msg("Expense ratio unavailable")
				return nil
			}
			mu.Lock()
			expenses[symbol] = ratio
			mu.Unlock()
			return nil
		})
	}

	_ = g.Wait() // goroutines never return errors; failures degrade to defaults

	return quotes, expenses
}

// Enrich computes per-lot cost, value, and gain figures from the injected
// quotes and exchange rate, plus the aggregate totals including cash.
// A lot without a quote values at zero, treated as "price not yet loaded".
func Enrich(
	holdings []model.Holding,
	quotes map[string]*model.Quote,
	expenses map[string]*float64,
	fxRate float64,
	cashTWD float64,
) ([]model.EnrichedHolding, model.ValuationTotals) {
	enriched := make([]model.EnrichedHolding, 0, len(holdings))

	var totalCost, totalValue float64
	var etfWeightedSum, etfTotalValue float64

	for _, h := range holdings {
		var currentPrice float64
		if quote := quotes[h.Symbol]; quote != nil {
			currentPrice = quote.Price
		}

		costNative := h.Shares * h.CostPrice
		valueNative := h.Shares * currentPrice

		costTWD := costNative
		valueTWD := valueNative
		if h.IsForeign() {
			costTWD = costNative * fxRate
			valueTWD = valueNative * fxRate
		}

		gainTWD := valueTWD - costTWD
		gainPercent := 0.0
		if costTWD > 0 {
			gainPercent = gainTWD / costTWD * 100
		}

		totalCost += costTWD
		totalValue += valueTWD

		ratio := expenses[h.Symbol]
		if ratio != nil && valueTWD > 0 {
			etfWeightedSum += valueTWD * *ratio
			etfTotalValue += valueTWD
		}

		enriched = append(enriched, model.EnrichedHolding{
			Holding:         h,
			CurrentPrice:    currentPrice,
			TotalCost:       costNative,
			TotalCostTWD:    costTWD,
			CurrentValueTWD: valueTWD,
			GainTWD:         gainTWD,
			GainPercent:     gainPercent,
			ExpenseRatio:    ratio,
		})
	}

	totalGainPercent := 0.0
	if totalCost > 0 {
		totalGainPercent = (totalValue - totalCost) / totalCost * 100
	}

	var weightedRatio *float64
	if etfTotalValue > 0 {
		w := etfWeightedSum / etfTotalValue
		weightedRatio = &w
	}

	totals := model.ValuationTotals{
		TotalValueTWD:        totalValue + cashTWD,
		TotalCostTWD:         totalCost,
		TotalGainTWD:         totalValue - totalCost,
		TotalGainPercent:     totalGainPercent,
		CashTWD:              cashTWD,
		ExchangeRate:         fxRate,
		WeightedExpenseRatio: weightedRatio,
	}

	return enriched, totals
}

// Aggregate groups enriched lots by symbol into single logical positions.
// The cost basis is the weighted average across lots, not the simple average;
// the earliest purchase date wins for display; constituent lots are retained
// in input order for drill-down. Output order follows the first occurrence of
// each symbol.
func Aggregate(enriched []model.EnrichedHolding) []model.AggregatedPosition {
	byIndex := make(map[string]int, len(enriched))
	positions := make([]model.AggregatedPosition, 0, len(enriched))

	for _, lot := range enriched {
		idx, ok := byIndex[lot.Symbol]
		if !ok {
			byIndex[lot.Symbol] = len(positions)
			positions = append(positions, model.AggregatedPosition{
				Symbol:          lot.Symbol,
				Market:          lot.Market,
				Shares:          lot.Shares,
				AvgCostPrice:    lot.CostPrice,
				PurchaseDate:    lot.PurchaseDate,
				TotalCost:       lot.TotalCost,
				TotalCostTWD:    lot.TotalCostTWD,
				CurrentPrice:    lot.CurrentPrice,
				CurrentValueTWD: lot.CurrentValueTWD,
				GainTWD:         lot.GainTWD,
				GainPercent:     lot.GainPercent,
				ExpenseRatio:    lot.ExpenseRatio,
				Lots:            []model.EnrichedHolding{lot},
			})
			continue
		}

		p := &positions[idx]
		p.Shares += lot.Shares
		p.TotalCost += lot.TotalCost
		p.TotalCostTWD += lot.TotalCostTWD
		p.CurrentValueTWD += lot.CurrentValueTWD
		p.GainTWD = p.CurrentValueTWD - p.TotalCostTWD
		if p.TotalCostTWD > 0 {
			p.GainPercent = p.GainTWD / p.TotalCostTWD * 100
		} else {
			p.GainPercent = 0
		}
		if p.Shares > 0 {
			p.AvgCostPrice = p.TotalCost / p.Shares
		}
		if lot.PurchaseDate.Before(p.PurchaseDate) {
			p.PurchaseDate = lot.PurchaseDate
		}
		p.Lots = append(p.Lots, lot)
	}

	return positions
}

// uniqueSymbols returns the distinct symbols across lots, preserving first
// occurrence order
func uniqueSymbols(holdings []model.Holding) []string {
	seen := make(map[string]bool, len(holdings))
	symbols := make([]string, 0, len(holdings))
	for _, h := range holdings {
		if !seen[h.Symbol] {
			seen[h.Symbol] = true
			symbols = append(symbols, h.Symbol)
		}
	}
	return symbols
}
