package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/RX5950XT/portfolio-visualizer/internal/apperrors"
	"github.com/RX5950XT/portfolio-visualizer/internal/model"
)

// TransactionRepository provides data access methods for the transactions
// table: the append-only ledger of realized sales.
type TransactionRepository struct {
	db *sql.DB
}

// NewTransactionRepository creates a new TransactionRepository with the provided database connection.
func NewTransactionRepository(db *sql.DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

const transactionColumns = `id, symbol, type, shares, price, transaction_date, market, realized_pnl_twd, holding_id, portfolio_id, notes, created_at`

// GetTransactions retrieves the sale ledger, optionally scoped to one
// portfolio, newest first.
func (s *TransactionRepository) GetTransactions(portfolioID string) ([]model.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions`
	var args []any

	if portfolioID != "" {
		query += ` WHERE portfolio_id = ?`
		args = append(args, portfolioID)
	}
	query += ` ORDER BY transaction_date DESC, created_at DESC`

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions table: %w", err)
	}
	defer rows.Close()

	transactions := []model.Transaction{}
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		transactions = append(transactions, t)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transactions table: %w", err)
	}

	return transactions, nil
}

// GetTransactionOnID retrieves a single ledger entry by ID
func (s *TransactionRepository) GetTransactionOnID(transactionID string) (model.Transaction, error) {
	row := s.db.QueryRow(`SELECT `+transactionColumns+` FROM transactions WHERE id = ?`, transactionID)

	t, err := scanTransaction(row)
	if err == sql.ErrNoRows {
		return model.Transaction{}, apperrors.ErrTransactionNotFound
	}
	if err != nil {
		return model.Transaction{}, err
	}
	return t, nil
}

// InsertTx appends a ledger entry inside a sell transaction
func (s *TransactionRepository) InsertTx(tx *sql.Tx, t *model.Transaction) error {
	query := `
		INSERT INTO transactions (` + transactionColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err := tx.Exec(query,
		t.ID,
		t.Symbol,
		t.Type,
		t.Shares,
		t.Price,
		FormatDate(t.TransactionDate),
		t.Market,
		t.RealizedPnlTWD,
		nullableID(t.HoldingID),
		nullableID(t.PortfolioID),
		nullableID(t.Notes),
		t.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to insert transaction: %w", err)
	}
	return nil
}

// DeleteTransaction removes a ledger entry. Deleting does not reverse the
// holding or cash mutation the sale originally caused.
func (s *TransactionRepository) DeleteTransaction(transactionID string) error {
	result, err := s.db.Exec(`DELETE FROM transactions WHERE id = ?`, transactionID)
	if err != nil {
		return fmt.Errorf("failed to delete transaction: %w", err)
	}
	return requireRowAffected(result, apperrors.ErrTransactionNotFound)
}

// scanTransaction reads one transactions row from either *sql.Row or *sql.Rows
func scanTransaction(row interface{ Scan(...any) error }) (model.Transaction, error) {
	var t model.Transaction
	var dateStr, createdAtStr string
	var holdingID, portfolioID, notes sql.NullString

	err := row.Scan(
		&t.ID,
		&t.Symbol,
		&t.Type,
		&t.Shares,
		&t.Price,
		&dateStr,
		&t.Market,
		&t.RealizedPnlTWD,
		&holdingID,
		&portfolioID,
		&notes,
		&createdAtStr,
	)
	if err == sql.ErrNoRows {
		return model.Transaction{}, err
	}
	if err != nil {
		return model.Transaction{}, fmt.Errorf("failed to scan transactions table results: %w", err)
	}

	t.HoldingID = holdingID.String
	t.PortfolioID = portfolioID.String
	t.Notes = notes.String
	if t.TransactionDate, err = ParseTime(dateStr); err != nil {
		return model.Transaction{}, err
	}
	if t.CreatedAt, err = ParseTime(createdAtStr); err != nil {
		return model.Transaction{}, err
	}

	return t, nil
}
