package validation

import (
	"math"
	"strings"

	"github.com/RX5950XT/portfolio-visualizer/internal/api/request"
)

// ValidateCreatePortfolio checks the fields of a portfolio create request
func ValidateCreatePortfolio(req request.CreatePortfolioRequest) error {
	return validatePortfolioName(req.Name)
}

// ValidateUpdatePortfolio checks the fields of a portfolio update request
func ValidateUpdatePortfolio(req request.UpdatePortfolioRequest) error {
	return validatePortfolioName(req.Name)
}

// ValidateSetCashBalance checks the fields of a cash balance request.
// Any real amount is accepted, negative included.
func ValidateSetCashBalance(req request.SetCashBalanceRequest) error {
	errors := make(map[string]string)

	if math.IsNaN(req.AmountTWD) || math.IsInf(req.AmountTWD, 0) {
		errors["amount_twd"] = "amount must be a finite number"
	}

	if req.PortfolioID != "" {
		if err := ValidateUUID(req.PortfolioID); err != nil {
			errors["portfolio_id"] = "portfolio id must be a valid UUID"
		}
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}
	return nil
}

func validatePortfolioName(name string) error {
	errors := make(map[string]string)

	if strings.TrimSpace(name) == "" {
		errors["name"] = "name is required"
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}
	return nil
}
