package request

// CreatePortfolioRequest carries the fields for creating a portfolio
type CreatePortfolioRequest struct {
	Name           string `json:"name"`
	VisibleToGuest bool   `json:"visible_to_guest"`
}

// UpdatePortfolioRequest carries the replacement fields for a portfolio
type UpdatePortfolioRequest struct {
	Name           string `json:"name"`
	VisibleToGuest bool   `json:"visible_to_guest"`
}

// SetCashBalanceRequest carries the new cash balance for a portfolio
type SetCashBalanceRequest struct {
	PortfolioID string  `json:"portfolio_id"`
	AmountTWD   float64 `json:"amount_twd"`
}
