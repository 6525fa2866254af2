package handlers

import (
	"net/http"

	"github.com/RX5950XT/portfolio-visualizer/internal/api/response"
	"github.com/RX5950XT/portfolio-visualizer/internal/model"
	"github.com/RX5950XT/portfolio-visualizer/internal/repository"
	"github.com/RX5950XT/portfolio-visualizer/internal/service"
)

// SnapshotHandler handles the stored end-of-day valuation records
type SnapshotHandler struct {
	snapshotService *service.SnapshotService
}

// NewSnapshotHandler creates a new SnapshotHandler
func NewSnapshotHandler(snapshotService *service.SnapshotService) *SnapshotHandler {
	return &SnapshotHandler{snapshotService: snapshotService}
}

// SnapshotResponse represents one end-of-day valuation record
type SnapshotResponse struct {
	Date          string  `json:"date"`
	TotalValueTWD float64 `json:"total_value_twd"`
	ExchangeRate  float64 `json:"exchange_rate"`
}

func toSnapshotResponse(s model.Snapshot) SnapshotResponse {
	return SnapshotResponse{
		Date:          repository.FormatDate(s.SnapshotDate),
		TotalValueTWD: s.TotalValueTWD,
		ExchangeRate:  s.ExchangeRate,
	}
}

// Snapshots lists the stored records in date order
func (h *SnapshotHandler) Snapshots(w http.ResponseWriter, r *http.Request) {
	snapshots, err := h.snapshotService.GetSnapshots()
	if err != nil {
		respondServiceError(w, err)
		return
	}

	resp := make([]SnapshotResponse, len(snapshots))
	for i, s := range snapshots {
		resp[i] = toSnapshotResponse(s)
	}
	response.RespondData(w, http.StatusOK, resp)
}

// TakeSnapshot values all holdings plus cash now and stores the result under
// today's date
func (h *SnapshotHandler) TakeSnapshot(w http.ResponseWriter, r *http.Request) {
	snapshot, err := h.snapshotService.TakeSnapshot()
	if err != nil {
		respondServiceError(w, err)
		return
	}
	response.RespondData(w, http.StatusCreated, toSnapshotResponse(*snapshot))
}
