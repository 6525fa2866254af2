package handlers

import (
	"net/http"
	"strconv"

	"github.com/RX5950XT/portfolio-visualizer/internal/api/response"
	"github.com/RX5950XT/portfolio-visualizer/internal/service"
)

const defaultPnLWindowDays = 7

// ChartHandler exposes the reconstructed time series
type ChartHandler struct {
	trendService *service.TrendService
}

// NewChartHandler creates a new ChartHandler
func NewChartHandler(trendService *service.TrendService) *ChartHandler {
	return &ChartHandler{trendService: trendService}
}

// AssetTrend returns the reconstructed daily value and cost series from the
// earliest purchase date to today, optionally scoped on portfolio_id
func (h *ChartHandler) AssetTrend(w http.ResponseWriter, r *http.Request) {
	points, err := h.trendService.AssetTrend(r.URL.Query().Get("portfolio_id"))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	response.RespondData(w, http.StatusOK, points)
}

// DailyPnL returns day-over-day profit/loss for the requested window,
// optionally scoped on portfolio_id. The days parameter defaults to 7.
func (h *ChartHandler) DailyPnL(w http.ResponseWriter, r *http.Request) {
	days := defaultPnLWindowDays
	if raw := r.URL.Query().Get("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			response.RespondError(w, http.StatusBadRequest, "days must be a positive integer", nil)
			return
		}
		days = parsed
	}

	points, err := h.trendService.DailyPnL(r.URL.Query().Get("portfolio_id"), days)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	response.RespondData(w, http.StatusOK, points)
}
