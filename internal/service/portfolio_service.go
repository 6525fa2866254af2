package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/RX5950XT/portfolio-visualizer/internal/apperrors"
	"github.com/RX5950XT/portfolio-visualizer/internal/model"
	"github.com/RX5950XT/portfolio-visualizer/internal/repository"
)

// PortfolioService manages portfolio containers. An installation with no
// stored portfolios still presents one synthetic default so clients always
// have a target to file holdings under.
type PortfolioService struct {
	portfolioRepo *repository.PortfolioRepository
	log           zerolog.Logger
}

// NewPortfolioService creates a new PortfolioService with the provided dependencies.
func NewPortfolioService(portfolioRepo *repository.PortfolioRepository, log zerolog.Logger) *PortfolioService {
	return &PortfolioService{
		portfolioRepo: portfolioRepo,
		log:           log.With().Str("component", "portfolio_service").Logger(),
	}
}

// GetPortfolios lists portfolios. When none exist a synthetic default is
// returned instead of an empty list. Guests only see portfolios flagged as
// guest-visible.
func (s *PortfolioService) GetPortfolios(includeHidden bool) ([]model.Portfolio, error) {
	portfolios, err := s.portfolioRepo.GetPortfolios()
	if err != nil {
		return nil, err
	}

	if !includeHidden {
		visible := make([]model.Portfolio, 0, len(portfolios))
		for _, p := range portfolios {
			if p.VisibleToGuest {
				visible = append(visible, p)
			}
		}
		portfolios = visible
	}

	if len(portfolios) == 0 {
		return []model.Portfolio{model.DefaultPortfolio()}, nil
	}
	return portfolios, nil
}

// GetPortfolio retrieves a single portfolio on its ID
func (s *PortfolioService) GetPortfolio(portfolioID string) (model.Portfolio, error) {
	return s.portfolioRepo.GetPortfolioOnID(portfolioID)
}

// CreatePortfolio records a new portfolio container
func (s *PortfolioService) CreatePortfolio(name string, visibleToGuest bool) (*model.Portfolio, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: name", apperrors.ErrMissingRequiredField)
	}

	portfolio := &model.Portfolio{
		ID:             uuid.New().String(),
		Name:           name,
		VisibleToGuest: visibleToGuest,
		CreatedAt:      time.Now().UTC(),
	}
	if err := s.portfolioRepo.InsertPortfolio(portfolio); err != nil {
		return nil, err
	}

	s.log.Info().Str("portfolio_id", portfolio.ID).Str("name", portfolio.Name).Msg("Portfolio created")
	return portfolio, nil
}

// UpdatePortfolio renames a portfolio and sets its guest visibility
func (s *PortfolioService) UpdatePortfolio(portfolioID, name string, visibleToGuest bool) (*model.Portfolio, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: name", apperrors.ErrMissingRequiredField)
	}

	portfolio, err := s.portfolioRepo.GetPortfolioOnID(portfolioID)
	if err != nil {
		return nil, err
	}

	portfolio.Name = name
	portfolio.VisibleToGuest = visibleToGuest
	if err := s.portfolioRepo.UpdatePortfolio(&portfolio); err != nil {
		return nil, err
	}
	return &portfolio, nil
}

// DeletePortfolio removes a portfolio together with its holdings and cash
// balance. Ledger entries that reference the portfolio are kept as history.
func (s *PortfolioService) DeletePortfolio(portfolioID string) error {
	if err := s.portfolioRepo.DeletePortfolioCascade(portfolioID); err != nil {
		return err
	}
	s.log.Info().Str("portfolio_id", portfolioID).Msg("Portfolio deleted")
	return nil
}
