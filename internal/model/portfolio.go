package model

import "time"

// Portfolio represents a named grouping of holding lots and one cash balance
type Portfolio struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	VisibleToGuest bool      `json:"visible_to_guest"`
	IsDefault      bool      `json:"is_default,omitempty"`
	CreatedAt      time.Time `json:"created_at,omitempty"`
}

// DefaultPortfolio is the synthesized portfolio returned when none exist.
// It is never persisted.
func DefaultPortfolio() Portfolio {
	return Portfolio{
		ID:             "default",
		Name:           "New Portfolio",
		VisibleToGuest: true,
		IsDefault:      true,
	}
}

// CashBalance represents the cash amount of one portfolio scope. At most one
// row exists per portfolio, plus at most one global row with an empty
// PortfolioID.
type CashBalance struct {
	ID          string    `json:"id"`
	PortfolioID string    `json:"portfolio_id,omitempty"`
	AmountTWD   float64   `json:"amount_twd"`
	UpdatedAt   time.Time `json:"updated_at,omitempty"`
}
