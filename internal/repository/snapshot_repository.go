package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/RX5950XT/portfolio-visualizer/internal/model"
)

// SnapshotRepository provides data access methods for the snapshots table:
// one end-of-day total-value record per calendar date.
type SnapshotRepository struct {
	db *sql.DB
}

// NewSnapshotRepository creates a new SnapshotRepository with the provided database connection.
func NewSnapshotRepository(db *sql.DB) *SnapshotRepository {
	return &SnapshotRepository{db: db}
}

// GetSnapshots retrieves all snapshots ordered by date ascending
func (s *SnapshotRepository) GetSnapshots() ([]model.Snapshot, error) {
	rows, err := s.db.Query(`
		SELECT id, snapshot_date, total_value_twd, exchange_rate, created_at
		FROM snapshots
		ORDER BY snapshot_date ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query snapshots table: %w", err)
	}
	defer rows.Close()

	snapshots := []model.Snapshot{}
	for rows.Next() {
		var sn model.Snapshot
		var dateStr, createdAtStr string

		err := rows.Scan(&sn.ID, &dateStr, &sn.TotalValueTWD, &sn.ExchangeRate, &createdAtStr)
		if err != nil {
			return nil, fmt.Errorf("failed to scan snapshots table results: %w", err)
		}
		if sn.SnapshotDate, err = ParseTime(dateStr); err != nil {
			return nil, err
		}
		if sn.CreatedAt, err = ParseTime(createdAtStr); err != nil {
			return nil, err
		}

		snapshots = append(snapshots, sn)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating snapshots table: %w", err)
	}

	return snapshots, nil
}

// UpsertSnapshot writes the snapshot for its date, replacing any existing row
// so re-running the job on the same day records the latest value.
func (s *SnapshotRepository) UpsertSnapshot(sn *model.Snapshot) error {
	_, err := s.db.Exec(`
		INSERT INTO snapshots (id, snapshot_date, total_value_twd, exchange_rate, created_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(snapshot_date) DO UPDATE SET
			total_value_twd = excluded.total_value_twd,
			exchange_rate = excluded.exchange_rate
	`, sn.ID, FormatDate(sn.SnapshotDate), sn.TotalValueTWD, sn.ExchangeRate, sn.CreatedAt.Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("failed to upsert snapshot: %w", err)
	}
	return nil
}
