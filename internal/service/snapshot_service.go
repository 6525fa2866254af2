package service

import (
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/RX5950XT/portfolio-visualizer/internal/model"
	"github.com/RX5950XT/portfolio-visualizer/internal/repository"
)

// SnapshotService persists end-of-day records of the total valuation so the
// account's history survives gaps in upstream price history. One row per
// calendar day; retaking a snapshot overwrites that day's row.
type SnapshotService struct {
	snapshotRepo *repository.SnapshotRepository
	valuation    *ValuationService
	log          zerolog.Logger
}

// NewSnapshotService creates a new SnapshotService with the provided dependencies.
func NewSnapshotService(snapshotRepo *repository.SnapshotRepository, valuation *ValuationService, log zerolog.Logger) *SnapshotService {
	return &SnapshotService{
		snapshotRepo: snapshotRepo,
		valuation:    valuation,
		log:          log.With().Str("component", "snapshot_service").Logger(),
	}
}

// GetSnapshots lists stored snapshots in date order
func (s *SnapshotService) GetSnapshots() ([]model.Snapshot, error) {
	return s.snapshotRepo.GetSnapshots()
}

// TakeSnapshot values all holdings plus cash across every portfolio and
// stores the result under today's date
func (s *SnapshotService) TakeSnapshot() (*model.Snapshot, error) {
	result, err := s.valuation.Valuate("")
	if err != nil {
		return nil, err
	}

	snapshot := &model.Snapshot{
		ID:            uuid.New().String(),
		SnapshotDate:  time.Now().UTC().Truncate(24 * time.Hour),
		TotalValueTWD: roundUnit(result.Totals.TotalValueTWD),
		ExchangeRate:  result.Totals.ExchangeRate,
		CreatedAt:     time.Now().UTC(),
	}
	if err := s.snapshotRepo.UpsertSnapshot(snapshot); err != nil {
		return nil, err
	}

	s.log.Info().Float64("total_value_twd", snapshot.TotalValueTWD).Msg("Snapshot taken")
	return snapshot, nil
}

// Run executes a snapshot for the scheduler, logging failures instead of
// propagating them
func (s *SnapshotService) Run() {
	if _, err := s.TakeSnapshot(); err != nil {
		s.log.Error().Err(err).Msg("Scheduled snapshot failed")
	}
}
