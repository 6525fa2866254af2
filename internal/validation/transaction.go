package validation

import (
	"strings"
	"time"

	"github.com/RX5950XT/portfolio-visualizer/internal/api/request"
)

// ValidateSell checks the fields of a sell request
func ValidateSell(req request.SellRequest) error {
	errors := make(map[string]string)

	if strings.TrimSpace(req.HoldingID) == "" {
		errors["holding_id"] = "holding id is required"
	} else if err := ValidateUUID(req.HoldingID); err != nil {
		errors["holding_id"] = "holding id must be a valid UUID"
	}

	if req.Shares <= 0 {
		errors["shares"] = "shares must be a positive number"
	}

	if req.Price < 0 {
		errors["price"] = "price must not be negative"
	}

	if req.TransactionDate != "" {
		if _, err := time.Parse("2006-01-02", req.TransactionDate); err != nil {
			errors["transaction_date"] = "transaction date must be YYYY-MM-DD"
		}
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}
	return nil
}
