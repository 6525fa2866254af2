package service

import (
	"errors"
	"testing"

	"github.com/RX5950XT/portfolio-visualizer/internal/apperrors"
	"github.com/RX5950XT/portfolio-visualizer/internal/logger"
	"github.com/RX5950XT/portfolio-visualizer/internal/repository"
	"github.com/RX5950XT/portfolio-visualizer/internal/testutil"
)

func TestPortfolioService_GetPortfolios(t *testing.T) {
	t.Run("synthesizes a default when none exist", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := NewPortfolioService(repository.NewPortfolioRepository(db), logger.Discard())

		portfolios, err := svc.GetPortfolios(true)
		if err != nil {
			t.Fatalf("GetPortfolios failed: %v", err)
		}
		if len(portfolios) != 1 {
			t.Fatalf("expected the synthetic default, got %d portfolios", len(portfolios))
		}
		if !portfolios[0].IsDefault || portfolios[0].ID != "default" {
			t.Errorf("unexpected default portfolio: %+v", portfolios[0])
		}
	})

	t.Run("guests only see guest-visible portfolios", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := NewPortfolioService(repository.NewPortfolioRepository(db), logger.Discard())

		visible := testutil.NewPortfolio().WithName("Public").Build(t, db)
		testutil.NewPortfolio().WithName("Private").HiddenFromGuest().Build(t, db)

		admin, err := svc.GetPortfolios(true)
		if err != nil {
			t.Fatalf("GetPortfolios failed: %v", err)
		}
		if len(admin) != 2 {
			t.Errorf("expected admin to see 2 portfolios, got %d", len(admin))
		}

		guest, err := svc.GetPortfolios(false)
		if err != nil {
			t.Fatalf("GetPortfolios failed: %v", err)
		}
		if len(guest) != 1 || guest[0].ID != visible.ID {
			t.Errorf("expected guest to see only the public portfolio, got %+v", guest)
		}
	})
}

func TestPortfolioService_CreateUpdate(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := NewPortfolioService(repository.NewPortfolioRepository(db), logger.Discard())

	created, err := svc.CreatePortfolio("Retirement", true)
	if err != nil {
		t.Fatalf("CreatePortfolio failed: %v", err)
	}
	if created.Name != "Retirement" || !created.VisibleToGuest {
		t.Errorf("unexpected portfolio: %+v", created)
	}

	if _, err := svc.CreatePortfolio("  ", true); !errors.Is(err, apperrors.ErrMissingRequiredField) {
		t.Errorf("expected a validation error for a blank name, got %v", err)
	}

	updated, err := svc.UpdatePortfolio(created.ID, "Retirement 2045", false)
	if err != nil {
		t.Fatalf("UpdatePortfolio failed: %v", err)
	}
	if updated.Name != "Retirement 2045" || updated.VisibleToGuest {
		t.Errorf("unexpected updated portfolio: %+v", updated)
	}

	if _, err := svc.UpdatePortfolio(testutil.MakeID(), "x", true); !errors.Is(err, apperrors.ErrPortfolioNotFound) {
		t.Errorf("expected ErrPortfolioNotFound, got %v", err)
	}
}

func TestPortfolioService_DeleteCascades(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := NewPortfolioService(repository.NewPortfolioRepository(db), logger.Discard())

	portfolio := testutil.NewPortfolio().Build(t, db)
	testutil.NewHolding().WithPortfolioID(portfolio.ID).Build(t, db)
	testutil.SetCash(t, db, portfolio.ID, 1000)

	if err := svc.DeletePortfolio(portfolio.ID); err != nil {
		t.Fatalf("DeletePortfolio failed: %v", err)
	}

	holdings, err := repository.NewHoldingRepository(db).GetHoldings(portfolio.ID)
	if err != nil {
		t.Fatalf("GetHoldings failed: %v", err)
	}
	if len(holdings) != 0 {
		t.Errorf("expected the portfolio's holdings to be deleted, got %d", len(holdings))
	}

	if _, err := repository.NewCashRepository(db).GetCashBalance(portfolio.ID); !errors.Is(err, apperrors.ErrCashBalanceNotFound) {
		t.Errorf("expected the portfolio's cash balance to be deleted, got %v", err)
	}

	if _, err := svc.GetPortfolio(portfolio.ID); !errors.Is(err, apperrors.ErrPortfolioNotFound) {
		t.Errorf("expected the portfolio to be gone, got %v", err)
	}
}
