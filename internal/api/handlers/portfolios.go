package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/RX5950XT/portfolio-visualizer/internal/api/middleware"
	"github.com/RX5950XT/portfolio-visualizer/internal/api/request"
	"github.com/RX5950XT/portfolio-visualizer/internal/api/response"
	"github.com/RX5950XT/portfolio-visualizer/internal/auth"
	"github.com/RX5950XT/portfolio-visualizer/internal/model"
	"github.com/RX5950XT/portfolio-visualizer/internal/service"
	"github.com/RX5950XT/portfolio-visualizer/internal/validation"
)

// PortfolioHandler handles portfolio CRUD and the per-portfolio cash balance
type PortfolioHandler struct {
	portfolioService *service.PortfolioService
	cashService      *service.CashService
}

// NewPortfolioHandler creates a new PortfolioHandler
func NewPortfolioHandler(portfolioService *service.PortfolioService, cashService *service.CashService) *PortfolioHandler {
	return &PortfolioHandler{
		portfolioService: portfolioService,
		cashService:      cashService,
	}
}

// PortfolioResponse represents one portfolio
type PortfolioResponse struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	VisibleToGuest bool   `json:"visible_to_guest"`
	IsDefault      bool   `json:"is_default,omitempty"`
}

func toPortfolioResponse(p model.Portfolio) PortfolioResponse {
	return PortfolioResponse{
		ID:             p.ID,
		Name:           p.Name,
		VisibleToGuest: p.VisibleToGuest,
		IsDefault:      p.IsDefault,
	}
}

// Portfolios lists portfolios. Guests only receive guest-visible ones.
func (h *PortfolioHandler) Portfolios(w http.ResponseWriter, r *http.Request) {
	includeHidden := middleware.RoleFromContext(r.Context()) == auth.RoleAdmin
	portfolios, err := h.portfolioService.GetPortfolios(includeHidden)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	resp := make([]PortfolioResponse, len(portfolios))
	for i, p := range portfolios {
		resp[i] = toPortfolioResponse(p)
	}
	response.RespondData(w, http.StatusOK, resp)
}

// CreatePortfolio records a new portfolio
func (h *PortfolioHandler) CreatePortfolio(w http.ResponseWriter, r *http.Request) {
	var req request.CreatePortfolioRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := validation.ValidateCreatePortfolio(req); err != nil {
		respondValidationError(w, err)
		return
	}

	portfolio, err := h.portfolioService.CreatePortfolio(req.Name, req.VisibleToGuest)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	response.RespondData(w, http.StatusCreated, toPortfolioResponse(*portfolio))
}

// UpdatePortfolio renames a portfolio and sets its guest visibility
func (h *PortfolioHandler) UpdatePortfolio(w http.ResponseWriter, r *http.Request) {
	var req request.UpdatePortfolioRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := validation.ValidateUpdatePortfolio(req); err != nil {
		respondValidationError(w, err)
		return
	}

	portfolio, err := h.portfolioService.UpdatePortfolio(chi.URLParam(r, "uuid"), req.Name, req.VisibleToGuest)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	response.RespondData(w, http.StatusOK, toPortfolioResponse(*portfolio))
}

// DeletePortfolio removes a portfolio with its holdings and cash balance
func (h *PortfolioHandler) DeletePortfolio(w http.ResponseWriter, r *http.Request) {
	if err := h.portfolioService.DeletePortfolio(chi.URLParam(r, "uuid")); err != nil {
		respondServiceError(w, err)
		return
	}
	response.RespondData(w, http.StatusOK, map[string]bool{"success": true})
}

// CashBalanceResponse represents the cash balance of one portfolio
type CashBalanceResponse struct {
	PortfolioID string  `json:"portfolio_id,omitempty"`
	AmountTWD   float64 `json:"amount_twd"`
}

// CashBalance reads the cash balance, optionally scoped on portfolio_id.
// A portfolio without a stored balance reads as zero.
func (h *PortfolioHandler) CashBalance(w http.ResponseWriter, r *http.Request) {
	balance, err := h.cashService.GetCashBalance(r.URL.Query().Get("portfolio_id"))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	response.RespondData(w, http.StatusOK, CashBalanceResponse{
		PortfolioID: balance.PortfolioID,
		AmountTWD:   balance.AmountTWD,
	})
}

// SetCashBalance overwrites the cash balance of a portfolio
func (h *PortfolioHandler) SetCashBalance(w http.ResponseWriter, r *http.Request) {
	var req request.SetCashBalanceRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := validation.ValidateSetCashBalance(req); err != nil {
		respondValidationError(w, err)
		return
	}

	balance, err := h.cashService.SetCashBalance(req.PortfolioID, req.AmountTWD)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	response.RespondData(w, http.StatusOK, CashBalanceResponse{
		PortfolioID: balance.PortfolioID,
		AmountTWD:   balance.AmountTWD,
	})
}
