package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/RX5950XT/portfolio-visualizer/internal/apperrors"
	"github.com/RX5950XT/portfolio-visualizer/internal/model"
)

// PortfolioRepository provides data access methods for the portfolios table
type PortfolioRepository struct {
	db *sql.DB
}

// NewPortfolioRepository creates a new PortfolioRepository with the provided database connection.
func NewPortfolioRepository(db *sql.DB) *PortfolioRepository {
	return &PortfolioRepository{db: db}
}

// GetPortfolios retrieves all portfolios ordered by creation time.
// Returns an empty slice when none exist; callers synthesize the default.
func (s *PortfolioRepository) GetPortfolios() ([]model.Portfolio, error) {
	rows, err := s.db.Query(`
		SELECT id, name, visible_to_guest, created_at
		FROM portfolios
		ORDER BY created_at ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query portfolios table: %w", err)
	}
	defer rows.Close()

	portfolios := []model.Portfolio{}
	for rows.Next() {
		var p model.Portfolio
		var createdAtStr string

		err := rows.Scan(&p.ID, &p.Name, &p.VisibleToGuest, &createdAtStr)
		if err != nil {
			return nil, fmt.Errorf("failed to scan portfolios table results: %w", err)
		}
		if p.CreatedAt, err = ParseTime(createdAtStr); err != nil {
			return nil, err
		}

		portfolios = append(portfolios, p)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating portfolios table: %w", err)
	}

	return portfolios, nil
}

// GetPortfolioOnID retrieves a single portfolio by ID
func (s *PortfolioRepository) GetPortfolioOnID(portfolioID string) (model.Portfolio, error) {
	var p model.Portfolio
	var createdAtStr string

	err := s.db.QueryRow(`
		SELECT id, name, visible_to_guest, created_at
		FROM portfolios
		WHERE id = ?
	`, portfolioID).Scan(&p.ID, &p.Name, &p.VisibleToGuest, &createdAtStr)
	if err == sql.ErrNoRows {
		return model.Portfolio{}, apperrors.ErrPortfolioNotFound
	}
	if err != nil {
		return model.Portfolio{}, fmt.Errorf("failed to query portfolio: %w", err)
	}

	if p.CreatedAt, err = ParseTime(createdAtStr); err != nil {
		return model.Portfolio{}, err
	}

	return p, nil
}

// InsertPortfolio creates a new portfolio row
func (s *PortfolioRepository) InsertPortfolio(p *model.Portfolio) error {
	_, err := s.db.Exec(`
		INSERT INTO portfolios (id, name, visible_to_guest, created_at)
		VALUES (?, ?, ?, ?)
	`, p.ID, p.Name, p.VisibleToGuest, p.CreatedAt.Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("failed to insert portfolio: %w", err)
	}
	return nil
}

// UpdatePortfolio rewrites a portfolio's name and guest visibility
func (s *PortfolioRepository) UpdatePortfolio(p *model.Portfolio) error {
	result, err := s.db.Exec(`
		UPDATE portfolios SET name = ?, visible_to_guest = ? WHERE id = ?
	`, p.Name, p.VisibleToGuest, p.ID)
	if err != nil {
		return fmt.Errorf("failed to update portfolio: %w", err)
	}
	return requireRowAffected(result, apperrors.ErrPortfolioNotFound)
}

// DeletePortfolioCascade removes a portfolio together with its holdings and
// cash balance in a single transaction. Realized-sale transactions keep their
// portfolio reference for the ledger view and are not removed.
func (s *PortfolioRepository) DeletePortfolioCascade(portfolioID string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin cascade delete: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	if _, err := tx.Exec(`DELETE FROM holdings WHERE portfolio_id = ?`, portfolioID); err != nil {
		return fmt.Errorf("failed to delete portfolio holdings: %w", err)
	}
	if _, err := tx.Exec(`DELETE FROM cash_balance WHERE portfolio_id = ?`, portfolioID); err != nil {
		return fmt.Errorf("failed to delete portfolio cash balance: %w", err)
	}

	result, err := tx.Exec(`DELETE FROM portfolios WHERE id = ?`, portfolioID)
	if err != nil {
		return fmt.Errorf("failed to delete portfolio: %w", err)
	}
	if err := requireRowAffected(result, apperrors.ErrPortfolioNotFound); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit cascade delete: %w", err)
	}
	return nil
}
