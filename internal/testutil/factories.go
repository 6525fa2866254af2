package testutil

import (
	"database/sql"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/RX5950XT/portfolio-visualizer/internal/model"
	"github.com/RX5950XT/portfolio-visualizer/internal/repository"
)

// MakeID returns a fresh UUID string
func MakeID() string {
	return uuid.New().String()
}

// HoldingBuilder provides a fluent interface for creating test holdings.
//
// Example usage:
//
//	holding := testutil.NewHolding().
//	    WithSymbol("2330.TW").
//	    WithShares(100).
//	    Build(t, db)
type HoldingBuilder struct {
	ID           string
	Symbol       string
	Shares       float64
	CostPrice    float64
	PurchaseDate time.Time
	Market       string
	PortfolioID  string
}

// NewHolding creates a HoldingBuilder with sensible defaults.
func NewHolding() *HoldingBuilder {
	return &HoldingBuilder{
		ID:           MakeID(),
		Symbol:       "VOO",
		Shares:       10,
		CostPrice:    100,
		PurchaseDate: time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC),
		Market:       model.MarketForeign,
	}
}

// WithID sets a custom ID.
func (b *HoldingBuilder) WithID(id string) *HoldingBuilder {
	b.ID = id
	return b
}

// WithSymbol sets the ticker and reclassifies the market on the ".TW" suffix.
func (b *HoldingBuilder) WithSymbol(symbol string) *HoldingBuilder {
	b.Symbol = symbol
	b.Market = model.ClassifyMarket(symbol, ".TW")
	return b
}

// WithShares sets the share count.
func (b *HoldingBuilder) WithShares(shares float64) *HoldingBuilder {
	b.Shares = shares
	return b
}

// WithCostPrice sets the per-share cost in native currency.
func (b *HoldingBuilder) WithCostPrice(price float64) *HoldingBuilder {
	b.CostPrice = price
	return b
}

// WithPurchaseDate sets the purchase date.
func (b *HoldingBuilder) WithPurchaseDate(date time.Time) *HoldingBuilder {
	b.PurchaseDate = date
	return b
}

// WithPortfolioID files the lot under a portfolio.
func (b *HoldingBuilder) WithPortfolioID(portfolioID string) *HoldingBuilder {
	b.PortfolioID = portfolioID
	return b
}

// Build creates the holding in the database and returns it.
func (b *HoldingBuilder) Build(t *testing.T, db *sql.DB) model.Holding {
	t.Helper()

	holding := b.Model()
	if err := repository.NewHoldingRepository(db).InsertHolding(&holding); err != nil {
		t.Fatalf("Failed to create test holding: %v", err)
	}
	return holding
}

// Model returns the holding without persisting it, for pure-function tests.
func (b *HoldingBuilder) Model() model.Holding {
	now := time.Now().UTC()
	return model.Holding{
		ID:           b.ID,
		Symbol:       b.Symbol,
		Shares:       b.Shares,
		CostPrice:    b.CostPrice,
		PurchaseDate: b.PurchaseDate,
		Market:       b.Market,
		PortfolioID:  b.PortfolioID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// PortfolioBuilder provides a fluent interface for creating test portfolios.
type PortfolioBuilder struct {
	ID             string
	Name           string
	VisibleToGuest bool
}

// NewPortfolio creates a PortfolioBuilder with sensible defaults.
func NewPortfolio() *PortfolioBuilder {
	return &PortfolioBuilder{
		ID:             MakeID(),
		Name:           "Test Portfolio",
		VisibleToGuest: true,
	}
}

// WithID sets a custom ID.
func (b *PortfolioBuilder) WithID(id string) *PortfolioBuilder {
	b.ID = id
	return b
}

// WithName sets a custom name.
func (b *PortfolioBuilder) WithName(name string) *PortfolioBuilder {
	b.Name = name
	return b
}

// HiddenFromGuest marks the portfolio as admin-only.
func (b *PortfolioBuilder) HiddenFromGuest() *PortfolioBuilder {
	b.VisibleToGuest = false
	return b
}

// Build creates the portfolio in the database and returns it.
func (b *PortfolioBuilder) Build(t *testing.T, db *sql.DB) model.Portfolio {
	t.Helper()

	portfolio := model.Portfolio{
		ID:             b.ID,
		Name:           b.Name,
		VisibleToGuest: b.VisibleToGuest,
		CreatedAt:      time.Now().UTC(),
	}
	if err := repository.NewPortfolioRepository(db).InsertPortfolio(&portfolio); err != nil {
		t.Fatalf("Failed to create test portfolio: %v", err)
	}
	return portfolio
}

// SetCash stores a cash balance for a portfolio scope ("" for the default)
func SetCash(t *testing.T, db *sql.DB, portfolioID string, amountTWD float64) {
	t.Helper()

	if _, err := repository.NewCashRepository(db).SetCashBalance(portfolioID, amountTWD); err != nil {
		t.Fatalf("Failed to set test cash balance: %v", err)
	}
}
