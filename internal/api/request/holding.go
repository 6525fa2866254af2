package request

// CreateHoldingRequest carries the fields for creating a holding lot
type CreateHoldingRequest struct {
	Symbol       string  `json:"symbol"`
	Shares       float64 `json:"shares"`
	CostPrice    float64 `json:"cost_price"`
	PurchaseDate string  `json:"purchase_date"`
	PortfolioID  string  `json:"portfolio_id"`
}

// UpdateHoldingRequest carries the replacement fields for an existing lot
type UpdateHoldingRequest struct {
	Symbol       string  `json:"symbol"`
	Shares       float64 `json:"shares"`
	CostPrice    float64 `json:"cost_price"`
	PurchaseDate string  `json:"purchase_date"`
	PortfolioID  string  `json:"portfolio_id"`
}
