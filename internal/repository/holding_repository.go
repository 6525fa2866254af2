package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/RX5950XT/portfolio-visualizer/internal/apperrors"
	"github.com/RX5950XT/portfolio-visualizer/internal/model"
)

// HoldingRepository provides data access methods for the holdings table.
// Each row is one purchase lot; the same symbol may appear in many rows.
type HoldingRepository struct {
	db *sql.DB
}

// NewHoldingRepository creates a new HoldingRepository with the provided database connection.
func NewHoldingRepository(db *sql.DB) *HoldingRepository {
	return &HoldingRepository{db: db}
}

const holdingColumns = `id, symbol, shares, cost_price, purchase_date, market, portfolio_id, created_at, updated_at`

// GetHoldings retrieves holding lots, optionally scoped to one portfolio.
// An empty portfolioID returns every lot. Results are ordered newest first.
func (s *HoldingRepository) GetHoldings(portfolioID string) ([]model.Holding, error) {
	query := `SELECT ` + holdingColumns + ` FROM holdings`
	var args []any

	if portfolioID != "" {
		query += ` WHERE portfolio_id = ?`
		args = append(args, portfolioID)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query holdings table: %w", err)
	}
	defer rows.Close()

	holdings := []model.Holding{}
	for rows.Next() {
		h, err := scanHolding(rows)
		if err != nil {
			return nil, err
		}
		holdings = append(holdings, h)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating holdings table: %w", err)
	}

	return holdings, nil
}

// GetHoldingOnID retrieves a single lot by ID
func (s *HoldingRepository) GetHoldingOnID(holdingID string) (model.Holding, error) {
	row := s.db.QueryRow(`SELECT `+holdingColumns+` FROM holdings WHERE id = ?`, holdingID)

	h, err := scanHolding(row)
	if err == sql.ErrNoRows {
		return model.Holding{}, apperrors.ErrHoldingNotFound
	}
	if err != nil {
		return model.Holding{}, err
	}
	return h, nil
}

// InsertHolding creates a new lot row
func (s *HoldingRepository) InsertHolding(h *model.Holding) error {
	query := `
		INSERT INTO holdings (id, symbol, shares, cost_price, purchase_date, market, portfolio_id, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err := s.db.Exec(query,
		h.ID,
		h.Symbol,
		h.Shares,
		h.CostPrice,
		FormatDate(h.PurchaseDate),
		h.Market,
		nullableID(h.PortfolioID),
		h.CreatedAt.Format(time.RFC3339),
		h.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to insert holding: %w", err)
	}
	return nil
}

// UpdateHolding rewrites all editable fields of a lot. Returns
// ErrHoldingNotFound when no row matched.
func (s *HoldingRepository) UpdateHolding(h *model.Holding) error {
	query := `
		UPDATE holdings
		SET symbol = ?, shares = ?, cost_price = ?, purchase_date = ?, market = ?, portfolio_id = ?, updated_at = ?
		WHERE id = ?
	`
	result, err := s.db.Exec(query,
		h.Symbol,
		h.Shares,
		h.CostPrice,
		FormatDate(h.PurchaseDate),
		h.Market,
		nullableID(h.PortfolioID),
		time.Now().UTC().Format(time.RFC3339),
		h.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update holding: %w", err)
	}
	return requireRowAffected(result, apperrors.ErrHoldingNotFound)
}

// DeleteHolding removes a lot row. Returns ErrHoldingNotFound when no row
// matched.
func (s *HoldingRepository) DeleteHolding(holdingID string) error {
	result, err := s.db.Exec(`DELETE FROM holdings WHERE id = ?`, holdingID)
	if err != nil {
		return fmt.Errorf("failed to delete holding: %w", err)
	}
	return requireRowAffected(result, apperrors.ErrHoldingNotFound)
}

// UpdateSharesTx decrements a lot's share count inside a sell transaction
func (s *HoldingRepository) UpdateSharesTx(tx *sql.Tx, holdingID string, shares float64) error {
	result, err := tx.Exec(
		`UPDATE holdings SET shares = ?, updated_at = ? WHERE id = ?`,
		shares, time.Now().UTC().Format(time.RFC3339), holdingID,
	)
	if err != nil {
		return fmt.Errorf("failed to update holding shares: %w", err)
	}
	return requireRowAffected(result, apperrors.ErrHoldingNotFound)
}

// DeleteTx removes a fully-sold lot inside a sell transaction
func (s *HoldingRepository) DeleteTx(tx *sql.Tx, holdingID string) error {
	result, err := tx.Exec(`DELETE FROM holdings WHERE id = ?`, holdingID)
	if err != nil {
		return fmt.Errorf("failed to delete holding: %w", err)
	}
	return requireRowAffected(result, apperrors.ErrHoldingNotFound)
}

// scanHolding reads one holdings row from either *sql.Row or *sql.Rows
func scanHolding(row interface{ Scan(...any) error }) (model.Holding, error) {
	var h model.Holding
	var purchaseDateStr, createdAtStr, updatedAtStr string
	var portfolioID sql.NullString

	err := row.Scan(
		&h.ID,
		&h.Symbol,
		&h.Shares,
		&h.CostPrice,
		&purchaseDateStr,
		&h.Market,
		&portfolioID,
		&createdAtStr,
		&updatedAtStr,
	)
	if err == sql.ErrNoRows {
		return model.Holding{}, err
	}
	if err != nil {
		return model.Holding{}, fmt.Errorf("failed to scan holdings table results: %w", err)
	}

	if portfolioID.Valid {
		h.PortfolioID = portfolioID.String
	}
	if h.PurchaseDate, err = ParseTime(purchaseDateStr); err != nil {
		return model.Holding{}, err
	}
	if h.CreatedAt, err = ParseTime(createdAtStr); err != nil {
		return model.Holding{}, err
	}
	if h.UpdatedAt, err = ParseTime(updatedAtStr); err != nil {
		return model.Holding{}, err
	}

	return h, nil
}

// nullableID maps an empty string to SQL NULL for optional foreign keys
func nullableID(id string) any {
	if id == "" {
		return nil
	}
	return id
}

// requireRowAffected converts a zero-row write into the given sentinel error
func requireRowAffected(result sql.Result, notFound error) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read rows affected: %w", err)
	}
	if affected == 0 {
		return notFound
	}
	return nil
}
