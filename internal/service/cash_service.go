package service

import (
	"errors"

	"github.com/rs/zerolog"

	"github.com/RX5950XT/portfolio-visualizer/internal/apperrors"
	"github.com/RX5950XT/portfolio-visualizer/internal/model"
	"github.com/RX5950XT/portfolio-visualizer/internal/repository"
)

// CashService manages the per-portfolio cash balance held in TWD
type CashService struct {
	cashRepo *repository.CashRepository
	log      zerolog.Logger
}

// NewCashService creates a new CashService with the provided dependencies.
func NewCashService(cashRepo *repository.CashRepository, log zerolog.Logger) *CashService {
	return &CashService{
		cashRepo: cashRepo,
		log:      log.With().Str("component", "cash_service").Logger(),
	}
}

// GetCashBalance returns the balance for a portfolio. A portfolio without a
// stored balance reads as zero.
func (s *CashService) GetCashBalance(portfolioID string) (model.CashBalance, error) {
	balance, err := s.cashRepo.GetCashBalance(portfolioID)
	if err != nil {
		if errors.Is(err, apperrors.ErrCashBalanceNotFound) {
			return model.CashBalance{PortfolioID: portfolioID, AmountTWD: 0}, nil
		}
		return model.CashBalance{}, err
	}
	return balance, nil
}

// SetCashBalance overwrites the balance for a portfolio. Negative amounts
// are allowed; the balance can represent borrowed or owed cash.
func (s *CashService) SetCashBalance(portfolioID string, amountTWD float64) (model.CashBalance, error) {
	balance, err := s.cashRepo.SetCashBalance(portfolioID, amountTWD)
	if err != nil {
		return model.CashBalance{}, err
	}
	s.log.Info().Str("portfolio_id", portfolioID).Float64("amount_twd", amountTWD).Msg("Cash balance set")
	return balance, nil
}
