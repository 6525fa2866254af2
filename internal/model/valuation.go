package model

import "time"

// EnrichedHolding is a lot combined with its current quote and the derived
// cost/value/gain figures. All *TWD fields are in the home currency.
type EnrichedHolding struct {
	Holding
	CurrentPrice    float64  `json:"currentPrice"` // native currency; 0 when no quote was available
	TotalCost       float64  `json:"totalCost"`    // native currency
	TotalCostTWD    float64  `json:"totalCostTWD"`
	CurrentValueTWD float64  `json:"currentValue"`
	GainTWD         float64  `json:"gain"`
	GainPercent     float64  `json:"gainPercent"`
	ExpenseRatio    *float64 `json:"expenseRatio,omitempty"`
}

// AggregatedPosition merges all lots of one symbol into a single logical
// position with a weighted-average cost basis. The constituent lots are
// retained for drill-down.
type AggregatedPosition struct {
	Symbol          string            `json:"symbol"`
	Market          string            `json:"market"`
	Shares          float64           `json:"shares"`
	AvgCostPrice    float64           `json:"cost_price"` // weighted average, native currency
	PurchaseDate    time.Time         `json:"-"`          // earliest lot wins
	TotalCost       float64           `json:"totalCost"`  // native currency
	TotalCostTWD    float64           `json:"totalCostTWD"`
	CurrentPrice    float64           `json:"currentPrice"`
	CurrentValueTWD float64           `json:"currentValue"`
	GainTWD         float64           `json:"gain"`
	GainPercent     float64           `json:"gainPercent"`
	ExpenseRatio    *float64          `json:"expenseRatio,omitempty"`
	Lots            []EnrichedHolding `json:"lots"`
}

// ValuationTotals aggregates cost/value/gain across all lots plus cash
type ValuationTotals struct {
	TotalValueTWD        float64  `json:"totalValueTWD"` // includes cash
	TotalCostTWD         float64  `json:"totalCostTWD"`
	TotalGainTWD         float64  `json:"totalGainTWD"`
	TotalGainPercent     float64  `json:"totalGainPercent"`
	CashTWD              float64  `json:"cashTWD"`
	ExchangeRate         float64  `json:"exchangeRate"`
	WeightedExpenseRatio *float64 `json:"weightedExpenseRatio"`
}

// TrendPoint is one day of the reconstructed asset-value/cost series.
// Values are rounded to the nearest TWD unit.
type TrendPoint struct {
	Date  string  `json:"date"` // YYYY-MM-DD
	Value float64 `json:"value"`
	Cost  float64 `json:"cost"`
}

// DailyPnLPoint is one trading day's profit/loss from day-over-day price
// deltas, rounded to the nearest TWD unit.
type DailyPnLPoint struct {
	Date string  `json:"date"` // YYYY-MM-DD
	PnL  float64 `json:"pnl"`
}
