package request

// SellRequest carries the parameters of a sell operation
type SellRequest struct {
	HoldingID       string  `json:"holding_id"`
	Shares          float64 `json:"shares"`
	Price           float64 `json:"price"`
	TransactionDate string  `json:"transaction_date"`
	PortfolioID     string  `json:"portfolio_id"`
	Notes           string  `json:"notes"`
}

// LoginRequest carries the shared-secret password
type LoginRequest struct {
	Password string `json:"password"`
}
