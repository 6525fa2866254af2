package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/RX5950XT/portfolio-visualizer/internal/api/request"
	"github.com/RX5950XT/portfolio-visualizer/internal/api/response"
	"github.com/RX5950XT/portfolio-visualizer/internal/model"
	"github.com/RX5950XT/portfolio-visualizer/internal/repository"
	"github.com/RX5950XT/portfolio-visualizer/internal/service"
	"github.com/RX5950XT/portfolio-visualizer/internal/validation"
)

// HoldingHandler handles holding lot CRUD and the valuation view
type HoldingHandler struct {
	holdingService   *service.HoldingService
	valuationService *service.ValuationService
}

// NewHoldingHandler creates a new HoldingHandler
func NewHoldingHandler(holdingService *service.HoldingService, valuationService *service.ValuationService) *HoldingHandler {
	return &HoldingHandler{
		holdingService:   holdingService,
		valuationService: valuationService,
	}
}

// HoldingResponse represents one holding lot
type HoldingResponse struct {
	ID           string  `json:"id"`
	Symbol       string  `json:"symbol"`
	Shares       float64 `json:"shares"`
	CostPrice    float64 `json:"cost_price"`
	PurchaseDate string  `json:"purchase_date"`
	Market       string  `json:"market"`
	PortfolioID  string  `json:"portfolio_id,omitempty"`
}

func toHoldingResponse(h model.Holding) HoldingResponse {
	return HoldingResponse{
		ID:           h.ID,
		Symbol:       h.Symbol,
		Shares:       h.Shares,
		CostPrice:    h.CostPrice,
		PurchaseDate: repository.FormatDate(h.PurchaseDate),
		Market:       h.Market,
		PortfolioID:  h.PortfolioID,
	}
}

// Holdings lists holding lots, optionally filtered on portfolio_id
func (h *HoldingHandler) Holdings(w http.ResponseWriter, r *http.Request) {
	holdings, err := h.holdingService.GetHoldings(r.URL.Query().Get("portfolio_id"))
	if err != nil {
		respondServiceError(w, err)
		return
	}

	resp := make([]HoldingResponse, len(holdings))
	for i, holding := range holdings {
		resp[i] = toHoldingResponse(holding)
	}
	response.RespondData(w, http.StatusOK, resp)
}

// CreateHolding records a new lot
func (h *HoldingHandler) CreateHolding(w http.ResponseWriter, r *http.Request) {
	var req request.CreateHoldingRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := validation.ValidateCreateHolding(req); err != nil {
		respondValidationError(w, err)
		return
	}

	purchaseDate, _ := time.Parse("2006-01-02", req.PurchaseDate)
	holding, err := h.holdingService.CreateHolding(service.HoldingInput{
		Symbol:       req.Symbol,
		Shares:       req.Shares,
		CostPrice:    req.CostPrice,
		PurchaseDate: purchaseDate,
		PortfolioID:  req.PortfolioID,
	})
	if err != nil {
		respondServiceError(w, err)
		return
	}

	response.RespondData(w, http.StatusCreated, toHoldingResponse(*holding))
}

// UpdateHolding replaces the fields of an existing lot
func (h *HoldingHandler) UpdateHolding(w http.ResponseWriter, r *http.Request) {
	var req request.UpdateHoldingRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := validation.ValidateUpdateHolding(req); err != nil {
		respondValidationError(w, err)
		return
	}

	purchaseDate, _ := time.Parse("2006-01-02", req.PurchaseDate)
	holding, err := h.holdingService.UpdateHolding(chi.URLParam(r, "uuid"), service.HoldingInput{
		Symbol:       req.Symbol,
		Shares:       req.Shares,
		CostPrice:    req.CostPrice,
		PurchaseDate: purchaseDate,
		PortfolioID:  req.PortfolioID,
	})
	if err != nil {
		respondServiceError(w, err)
		return
	}

	response.RespondData(w, http.StatusOK, toHoldingResponse(*holding))
}

// DeleteHolding removes a lot
func (h *HoldingHandler) DeleteHolding(w http.ResponseWriter, r *http.Request) {
	if err := h.holdingService.DeleteHolding(chi.URLParam(r, "uuid")); err != nil {
		respondServiceError(w, err)
		return
	}
	response.RespondData(w, http.StatusOK, map[string]bool{"success": true})
}
