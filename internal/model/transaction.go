package model

import "time"

// Transaction types. Only sells are currently produced by the system.
const (
	TransactionTypeSell = "sell"
)

// Transaction is an immutable record of a realized sale. The holding it was
// sold from may since have been deleted, so HoldingID is a plain reference,
// not an enforced relation.
type Transaction struct {
	ID              string    `json:"id"`
	Symbol          string    `json:"symbol"`
	Type            string    `json:"type"`
	Shares          float64   `json:"shares"`
	Price           float64   `json:"price"` // per share, native currency
	TransactionDate time.Time `json:"-"`
	Market          string    `json:"market"`
	RealizedPnlTWD  float64   `json:"realized_pnl_twd"`
	HoldingID       string    `json:"holding_id,omitempty"`
	PortfolioID     string    `json:"portfolio_id,omitempty"`
	Notes           string    `json:"notes,omitempty"`
	CreatedAt       time.Time `json:"created_at,omitempty"`
}

// SellResult reports the outcome of a sell operation
type SellResult struct {
	RealizedPnlTWD  float64 `json:"realized_pnl_twd"`
	RemainingShares float64 `json:"remaining_shares"`
	CashAddedTWD    float64 `json:"cash_added_twd"`
}
