package service

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/RX5950XT/portfolio-visualizer/internal/apperrors"
	"github.com/RX5950XT/portfolio-visualizer/internal/config"
	"github.com/RX5950XT/portfolio-visualizer/internal/marketdata"
	"github.com/RX5950XT/portfolio-visualizer/internal/model"
	"github.com/RX5950XT/portfolio-visualizer/internal/repository"
)

// sellEpsilon is the share count below which a lot is considered fully sold
// and deleted rather than kept as a zero-share row
const sellEpsilon = 1e-8

// QuoteInvalidator clears cached prices after a holdings mutation
type QuoteInvalidator interface {
	InvalidateAll()
}

// SellRequest carries the parameters of a sell operation
type SellRequest struct {
	HoldingID       string
	Shares          float64
	Price           float64 // per share, native currency
	TransactionDate time.Time
	PortfolioID     string // optional; defaults to the lot's portfolio
	Notes           string
}

// TransactionService executes sells and manages the realized-sale ledger.
// A sell mutates three records as one unit: it appends the ledger entry,
// shrinks or removes the source lot, and credits the cash balance. The three
// writes share one database transaction so a mid-sequence failure cannot
// leave shares decremented without the matching cash credit.
type TransactionService struct {
	db              *sql.DB
	transactionRepo *repository.TransactionRepository
	holdingRepo     *repository.HoldingRepository
	cashRepo        *repository.CashRepository
	market          marketdata.Provider
	quotes          QuoteInvalidator
	cfg             config.MarketConfig
	log             zerolog.Logger
}

// NewTransactionService creates a new TransactionService with the provided dependencies.
func NewTransactionService(
	db *sql.DB,
	transactionRepo *repository.TransactionRepository,
	holdingRepo *repository.HoldingRepository,
	cashRepo *repository.CashRepository,
	market marketdata.Provider,
	quotes QuoteInvalidator,
	cfg config.MarketConfig,
	log zerolog.Logger,
) *TransactionService {
	return &TransactionService{
		db:              db,
		transactionRepo: transactionRepo,
		holdingRepo:     holdingRepo,
		cashRepo:        cashRepo,
		market:          market,
		quotes:          quotes,
		cfg:             cfg,
		log:             log.With().Str("component", "transaction_service").Logger(),
	}
}

// GetTransactions retrieves the sale ledger, optionally scoped to one portfolio
func (s *TransactionService) GetTransactions(portfolioID string) ([]model.Transaction, error) {
	return s.transactionRepo.GetTransactions(portfolioID)
}

// DeleteTransaction removes a ledger entry. The holding and cash mutations
// the sale originally caused are not reversed; no compensating transaction is
// modeled.
func (s *TransactionService) DeleteTransaction(transactionID string) error {
	return s.transactionRepo.DeleteTransaction(transactionID)
}

// Sell records a disposal: it validates against over-sell, computes the
// realized P&L in TWD, and atomically appends the ledger entry, shrinks or
// deletes the source lot, and credits the proceeds to the cash balance.
func (s *TransactionService) Sell(req SellRequest) (model.SellResult, error) {
	if req.Shares <= 0 {
		return model.SellResult{}, fmt.Errorf("%w: shares must be positive", apperrors.ErrMissingRequiredField)
	}

	holding, err := s.holdingRepo.GetHoldingOnID(req.HoldingID)
	if err != nil {
		return model.SellResult{}, err
	}

	if req.Shares > holding.Shares {
		return model.SellResult{}, fmt.Errorf(
			"%w: selling %g of %g held", apperrors.ErrInsufficientShares, req.Shares, holding.Shares,
		)
	}

	fxRate := 1.0
	if holding.IsForeign() {
		fxRate = s.exchangeRate()
	}

	realizedPnl := roundCents((req.Price - holding.CostPrice) * req.Shares * fxRate)
	proceeds := roundUnit(req.Price * req.Shares * fxRate)
	remaining := holding.Shares - req.Shares

	portfolioID := req.PortfolioID
	if portfolioID == "" {
		portfolioID = holding.PortfolioID
	}

	transaction := &model.Transaction{
		ID:              uuid.New().String(),
		Symbol:          holding.Symbol,
		Type:            model.TransactionTypeSell,
		Shares:          req.Shares,
		Price:           req.Price,
		TransactionDate: req.TransactionDate,
		Market:          holding.Market,
		RealizedPnlTWD:  realizedPnl,
		HoldingID:       holding.ID,
		PortfolioID:     portfolioID,
		Notes:           req.Notes,
		CreatedAt:       time.Now().UTC(),
	}

	tx, err := s.db.Begin()
	if err != nil {
		return model.SellResult{}, fmt.Errorf("failed to begin sell transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	if err := s.transactionRepo.InsertTx(tx, transaction); err != nil {
		return model.SellResult{}, err
	}

	if remaining <= sellEpsilon {
		if err := s.holdingRepo.DeleteTx(tx, holding.ID); err != nil {
			return model.SellResult{}, err
		}
		remaining = 0
	} else {
		if err := s.holdingRepo.UpdateSharesTx(tx, holding.ID, remaining); err != nil {
			return model.SellResult{}, err
		}
	}

	if err := s.cashRepo.AddTx(tx, portfolioID, proceeds); err != nil {
		return model.SellResult{}, err
	}

	if err := tx.Commit(); err != nil {
		return model.SellResult{}, fmt.Errorf("failed to commit sell transaction: %w", err)
	}

	s.quotes.InvalidateAll()

	s.log.Info().
		Str("symbol", holding.Symbol).
		Float64("shares", req.Shares).
		Float64("realized_pnl_twd", realizedPnl).
		Float64("remaining_shares", remaining).
		Msg("Sell recorded")

	return model.SellResult{
		RealizedPnlTWD:  realizedPnl,
		RemainingShares: remaining,
		CashAddedTWD:    proceeds,
	}, nil
}

// exchangeRate returns the live USD/TWD rate or the configured default
func (s *TransactionService) exchangeRate() float64 {
	rate, err := s.market.GetExchangeRate()
	if err != nil || rate <= 0 {
		s.log.Warn().Err(err).Float64("default", s.cfg.DefaultExchangeRate).Msg("Exchange rate unavailable, using default")
		return s.cfg.DefaultExchangeRate
	}
	return rate
}
