package model

import "time"

// Quote is a point-in-time price for a symbol. Quotes are ephemeral; they are
// never persisted.
type Quote struct {
	Symbol        string    `json:"symbol"`
	Price         float64   `json:"price"`
	Change        float64   `json:"change"`
	ChangePercent float64   `json:"changePercent"`
	Currency      string    `json:"currency"`
	AsOf          time.Time `json:"asOf"`
}

// PricePoint is one daily close in a historical series
type PricePoint struct {
	Date  time.Time `json:"-"`
	Close float64   `json:"close"`
}

// ExchangeRate is the home-currency price of one foreign-currency unit
type ExchangeRate struct {
	Rate      float64   `json:"rate"`
	From      string    `json:"from"`
	To        string    `json:"to"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ExpenseRatio is an ETF's annual fee as a fraction of assets. Source is
// "auto" when resolved from the provider and "manual" when taken from the
// static fallback table.
type ExpenseRatio struct {
	Symbol       string   `json:"symbol"`
	ExpenseRatio *float64 `json:"expense_ratio"`
	Source       string   `json:"source,omitempty"`
}
