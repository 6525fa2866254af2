package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/RX5950XT/portfolio-visualizer/internal/apperrors"
	"github.com/RX5950XT/portfolio-visualizer/internal/config"
	"github.com/RX5950XT/portfolio-visualizer/internal/model"
	"github.com/RX5950XT/portfolio-visualizer/internal/repository"
)

// HoldingInput carries the user-supplied fields of a holding lot. Market
// classification is derived from the symbol, never accepted from the caller.
type HoldingInput struct {
	Symbol       string
	Shares       float64
	CostPrice    float64
	PurchaseDate time.Time
	PortfolioID  string
}

// HoldingService manages holding lots. Each create or update derives the lot's
// market from its symbol suffix and invalidates cached quotes so the next
// valuation sees fresh prices for the changed position.
type HoldingService struct {
	holdingRepo *repository.HoldingRepository
	quotes      QuoteInvalidator
	cfg         config.MarketConfig
	log         zerolog.Logger
}

// NewHoldingService creates a new HoldingService with the provided dependencies.
func NewHoldingService(holdingRepo *repository.HoldingRepository, quotes QuoteInvalidator, cfg config.MarketConfig, log zerolog.Logger) *HoldingService {
	return &HoldingService{
		holdingRepo: holdingRepo,
		quotes:      quotes,
		cfg:         cfg,
		log:         log.With().Str("component", "holding_service").Logger(),
	}
}

// GetHoldings retrieves holdings, optionally scoped to one portfolio
func (s *HoldingService) GetHoldings(portfolioID string) ([]model.Holding, error) {
	return s.holdingRepo.GetHoldings(portfolioID)
}

// GetHolding retrieves a single lot on its ID
func (s *HoldingService) GetHolding(holdingID string) (model.Holding, error) {
	return s.holdingRepo.GetHoldingOnID(holdingID)
}

// CreateHolding records a new lot
func (s *HoldingService) CreateHolding(input HoldingInput) (*model.Holding, error) {
	if err := validateHoldingInput(input); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	symbol := strings.ToUpper(strings.TrimSpace(input.Symbol))
	holding := &model.Holding{
		ID:           uuid.New().String(),
		Symbol:       symbol,
		Shares:       input.Shares,
		CostPrice:    input.CostPrice,
		PurchaseDate: input.PurchaseDate,
		Market:       model.ClassifyMarket(symbol, s.cfg.DomesticSuffix),
		PortfolioID:  input.PortfolioID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.holdingRepo.InsertHolding(holding); err != nil {
		return nil, err
	}

	s.quotes.InvalidateAll()
	s.log.Info().Str("symbol", holding.Symbol).Float64("shares", holding.Shares).Msg("Holding created")
	return holding, nil
}

// UpdateHolding replaces the user-supplied fields of an existing lot,
// reclassifying the market when the symbol changed
func (s *HoldingService) UpdateHolding(holdingID string, input HoldingInput) (*model.Holding, error) {
	if err := validateHoldingInput(input); err != nil {
		return nil, err
	}

	holding, err := s.holdingRepo.GetHoldingOnID(holdingID)
	if err != nil {
		return nil, err
	}

	symbol := strings.ToUpper(strings.TrimSpace(input.Symbol))
	holding.Symbol = symbol
	holding.Shares = input.Shares
	holding.CostPrice = input.CostPrice
	holding.PurchaseDate = input.PurchaseDate
	holding.Market = model.ClassifyMarket(symbol, s.cfg.DomesticSuffix)
	holding.PortfolioID = input.PortfolioID
	holding.UpdatedAt = time.Now().UTC()

	if err := s.holdingRepo.UpdateHolding(&holding); err != nil {
		return nil, err
	}

	s.quotes.InvalidateAll()
	return &holding, nil
}

// DeleteHolding removes a lot
func (s *HoldingService) DeleteHolding(holdingID string) error {
	if err := s.holdingRepo.DeleteHolding(holdingID); err != nil {
		return err
	}
	s.quotes.InvalidateAll()
	return nil
}

func validateHoldingInput(input HoldingInput) error {
	if strings.TrimSpace(input.Symbol) == "" {
		return fmt.Errorf("%w: symbol", apperrors.ErrMissingRequiredField)
	}
	if input.Shares <= 0 {
		return fmt.Errorf("%w: shares must be positive", apperrors.ErrMissingRequiredField)
	}
	if input.CostPrice < 0 {
		return fmt.Errorf("%w: cost price must not be negative", apperrors.ErrMissingRequiredField)
	}
	return nil
}
