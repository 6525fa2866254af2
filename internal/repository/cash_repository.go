package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/RX5950XT/portfolio-visualizer/internal/apperrors"
	"github.com/RX5950XT/portfolio-visualizer/internal/model"
)

// CashRepository provides data access methods for the cash_balance table.
// At most one row exists per portfolio scope; an empty portfolio ID addresses
// the single global row.
type CashRepository struct {
	db *sql.DB
}

// NewCashRepository creates a new CashRepository with the provided database connection.
func NewCashRepository(db *sql.DB) *CashRepository {
	return &CashRepository{db: db}
}

// GetCashBalance retrieves the cash row for a portfolio scope.
// Returns ErrCashBalanceNotFound when no row exists yet.
func (s *CashRepository) GetCashBalance(portfolioID string) (model.CashBalance, error) {
	query := `SELECT id, portfolio_id, amount_twd, updated_at FROM cash_balance WHERE `
	var args []any
	if portfolioID == "" {
		query += `portfolio_id IS NULL`
	} else {
		query += `portfolio_id = ?`
		args = append(args, portfolioID)
	}

	var c model.CashBalance
	var scopeID sql.NullString
	var updatedAtStr string

	err := s.db.QueryRow(query, args...).Scan(&c.ID, &scopeID, &c.AmountTWD, &updatedAtStr)
	if err == sql.ErrNoRows {
		return model.CashBalance{}, apperrors.ErrCashBalanceNotFound
	}
	if err != nil {
		return model.CashBalance{}, fmt.Errorf("failed to query cash_balance table: %w", err)
	}

	if scopeID.Valid {
		c.PortfolioID = scopeID.String
	}
	if c.UpdatedAt, err = ParseTime(updatedAtStr); err != nil {
		return model.CashBalance{}, err
	}

	return c, nil
}

// SetCashBalance writes the cash amount for a scope with upsert semantics:
// the row is created when absent, else the unique existing row is updated.
func (s *CashRepository) SetCashBalance(portfolioID string, amountTWD float64) (model.CashBalance, error) {
	existing, err := s.GetCashBalance(portfolioID)
	if err != nil && err != apperrors.ErrCashBalanceNotFound {
		return model.CashBalance{}, err
	}

	now := time.Now().UTC()

	if err == apperrors.ErrCashBalanceNotFound {
		c := model.CashBalance{
			ID:          uuid.New().String(),
			PortfolioID: portfolioID,
			AmountTWD:   amountTWD,
			UpdatedAt:   now,
		}
		_, err := s.db.Exec(`
			INSERT INTO cash_balance (id, portfolio_id, amount_twd, updated_at)
			VALUES (?, ?, ?, ?)
		`, c.ID, nullableID(portfolioID), amountTWD, now.Format(time.RFC3339))
		if err != nil {
			return model.CashBalance{}, fmt.Errorf("failed to insert cash balance: %w", err)
		}
		return c, nil
	}

	_, err = s.db.Exec(`
		UPDATE cash_balance SET amount_twd = ?, updated_at = ? WHERE id = ?
	`, amountTWD, now.Format(time.RFC3339), existing.ID)
	if err != nil {
		return model.CashBalance{}, fmt.Errorf("failed to update cash balance: %w", err)
	}

	existing.AmountTWD = amountTWD
	existing.UpdatedAt = now
	return existing, nil
}

// AddTx credits an amount to a scope's cash balance inside a sell
// transaction, creating the row when absent.
func (s *CashRepository) AddTx(tx *sql.Tx, portfolioID string, amountTWD float64) error {
	query := `SELECT id, amount_twd FROM cash_balance WHERE `
	var args []any
	if portfolioID == "" {
		query += `portfolio_id IS NULL`
	} else {
		query += `portfolio_id = ?`
		args = append(args, portfolioID)
	}

	now := time.Now().UTC().Format(time.RFC3339)

	var id string
	var current float64
	err := tx.QueryRow(query, args...).Scan(&id, &current)
	if err == sql.ErrNoRows {
		_, err := tx.Exec(`
			INSERT INTO cash_balance (id, portfolio_id, amount_twd, updated_at)
			VALUES (?, ?, ?, ?)
		`, uuid.New().String(), nullableID(portfolioID), amountTWD, now)
		if err != nil {
			return fmt.Errorf("failed to insert cash balance: %w", err)
		}
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to query cash_balance table: %w", err)
	}

	_, err = tx.Exec(`
		UPDATE cash_balance SET amount_twd = ?, updated_at = ? WHERE id = ?
	`, current+amountTWD, now, id)
	if err != nil {
		return fmt.Errorf("failed to update cash balance: %w", err)
	}
	return nil
}
