package validation

import (
	"strings"
	"time"

	"github.com/RX5950XT/portfolio-visualizer/internal/api/request"
)

// ValidateCreateHolding checks the fields of a holding create request
func ValidateCreateHolding(req request.CreateHoldingRequest) error {
	return validateHoldingFields(req.Symbol, req.Shares, req.CostPrice, req.PurchaseDate, req.PortfolioID)
}

// ValidateUpdateHolding checks the fields of a holding update request
func ValidateUpdateHolding(req request.UpdateHoldingRequest) error {
	return validateHoldingFields(req.Symbol, req.Shares, req.CostPrice, req.PurchaseDate, req.PortfolioID)
}

func validateHoldingFields(symbol string, shares, costPrice float64, purchaseDate, portfolioID string) error {
	errors := make(map[string]string)

	if strings.TrimSpace(symbol) == "" {
		errors["symbol"] = "symbol is required"
	}

	if shares <= 0 {
		errors["shares"] = "shares must be a positive number"
	}

	if costPrice < 0 {
		errors["cost_price"] = "cost price must not be negative"
	}

	if strings.TrimSpace(purchaseDate) == "" {
		errors["purchase_date"] = "purchase date is required"
	} else if _, err := time.Parse("2006-01-02", purchaseDate); err != nil {
		errors["purchase_date"] = "purchase date must be YYYY-MM-DD"
	}

	if portfolioID != "" {
		if err := ValidateUUID(portfolioID); err != nil {
			errors["portfolio_id"] = "portfolio id must be a valid UUID"
		}
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}
	return nil
}
