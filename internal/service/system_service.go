package service

import (
	"database/sql"

	"github.com/RX5950XT/portfolio-visualizer/internal/database"
)

// SystemService handles system-related operations
type SystemService struct {
	db *sql.DB
}

// NewSystemService creates a new SystemService
func NewSystemService(db *sql.DB) *SystemService {
	return &SystemService{db: db}
}

// CheckHealth verifies database connectivity
func (s *SystemService) CheckHealth() error {
	return database.HealthCheck(s.db)
}
