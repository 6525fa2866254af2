package validation

import (
	"errors"
	"math"
	"testing"

	"github.com/RX5950XT/portfolio-visualizer/internal/api/request"
)

func fieldErrors(t *testing.T, err error) map[string]string {
	t.Helper()
	var verr *Error
	if !errors.As(err, &verr) {
		t.Fatalf("expected *validation.Error, got %v", err)
	}
	return verr.Fields
}

func TestValidateUUID(t *testing.T) {
	if err := ValidateUUID("3f2504e0-4f89-41d3-9a0c-0305e82c3301"); err != nil {
		t.Errorf("expected valid UUID to pass, got %v", err)
	}
	if err := ValidateUUID("not-a-uuid"); !errors.Is(err, ErrInvalidUUID) {
		t.Errorf("expected ErrInvalidUUID, got %v", err)
	}
}

func TestValidateCreateHolding(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		err := ValidateCreateHolding(request.CreateHoldingRequest{
			Symbol:       "VOO",
			Shares:       10,
			CostPrice:    100,
			PurchaseDate: "2024-01-02",
		})
		if err != nil {
			t.Errorf("expected no error, got %v", err)
		}
	})

	t.Run("collects every field error", func(t *testing.T) {
		err := ValidateCreateHolding(request.CreateHoldingRequest{
			Symbol:       "  ",
			Shares:       0,
			CostPrice:    -5,
			PurchaseDate: "02/01/2024",
			PortfolioID:  "nope",
		})
		fields := fieldErrors(t, err)
		for _, key := range []string{"symbol", "shares", "cost_price", "purchase_date", "portfolio_id"} {
			if _, ok := fields[key]; !ok {
				t.Errorf("expected error for %s, got %v", key, fields)
			}
		}
	})

	t.Run("missing purchase date", func(t *testing.T) {
		err := ValidateCreateHolding(request.CreateHoldingRequest{
			Symbol: "VOO",
			Shares: 1,
		})
		fields := fieldErrors(t, err)
		if fields["purchase_date"] != "purchase date is required" {
			t.Errorf("unexpected message: %v", fields)
		}
	})
}

func TestValidateSell(t *testing.T) {
	t.Run("valid with optional date", func(t *testing.T) {
		err := ValidateSell(request.SellRequest{
			HoldingID: "3f2504e0-4f89-41d3-9a0c-0305e82c3301",
			Shares:    2,
			Price:     150,
		})
		if err != nil {
			t.Errorf("expected no error, got %v", err)
		}
	})

	t.Run("rejects bad fields", func(t *testing.T) {
		err := ValidateSell(request.SellRequest{
			HoldingID:       "nope",
			Shares:          -1,
			Price:           -1,
			TransactionDate: "yesterday",
		})
		fields := fieldErrors(t, err)
		for _, key := range []string{"holding_id", "shares", "price", "transaction_date"} {
			if _, ok := fields[key]; !ok {
				t.Errorf("expected error for %s, got %v", key, fields)
			}
		}
	})
}

func TestValidateSetCashBalance(t *testing.T) {
	if err := ValidateSetCashBalance(request.SetCashBalanceRequest{AmountTWD: 0}); err != nil {
		t.Errorf("expected zero amount to pass, got %v", err)
	}
	if err := ValidateSetCashBalance(request.SetCashBalanceRequest{AmountTWD: -5000}); err != nil {
		t.Errorf("expected negative amount to pass, got %v", err)
	}
	err := ValidateSetCashBalance(request.SetCashBalanceRequest{AmountTWD: math.NaN(), PortfolioID: "nope"})
	fields := fieldErrors(t, err)
	if _, ok := fields["amount_twd"]; !ok {
		t.Errorf("expected amount_twd error, got %v", fields)
	}
	if _, ok := fields["portfolio_id"]; !ok {
		t.Errorf("expected portfolio_id error, got %v", fields)
	}
}

func TestValidateCreatePortfolio(t *testing.T) {
	if err := ValidateCreatePortfolio(request.CreatePortfolioRequest{Name: "Retirement"}); err != nil {
		t.Errorf("expected no error, got %v", err)
	}
	err := ValidateCreatePortfolio(request.CreatePortfolioRequest{Name: "   "})
	fields := fieldErrors(t, err)
	if _, ok := fields["name"]; !ok {
		t.Errorf("expected name error, got %v", fields)
	}
}
