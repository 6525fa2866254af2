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

// TransactionHandler handles the sale ledger and the sell operation
type TransactionHandler struct {
	transactionService *service.TransactionService
}

// NewTransactionHandler creates a new TransactionHandler
func NewTransactionHandler(transactionService *service.TransactionService) *TransactionHandler {
	return &TransactionHandler{transactionService: transactionService}
}

// TransactionResponse represents one ledger entry
type TransactionResponse struct {
	ID              string  `json:"id"`
	Symbol          string  `json:"symbol"`
	Type            string  `json:"type"`
	Shares          float64 `json:"shares"`
	Price           float64 `json:"price"`
	TransactionDate string  `json:"transaction_date"`
	Market          string  `json:"market"`
	RealizedPnlTWD  float64 `json:"realized_pnl_twd"`
	HoldingID       string  `json:"holding_id,omitempty"`
	PortfolioID     string  `json:"portfolio_id,omitempty"`
	Notes           string  `json:"notes,omitempty"`
}

func toTransactionResponse(t model.Transaction) TransactionResponse {
	return TransactionResponse{
		ID:              t.ID,
		Symbol:          t.Symbol,
		Type:            t.Type,
		Shares:          t.Shares,
		Price:           t.Price,
		TransactionDate: repository.FormatDate(t.TransactionDate),
		Market:          t.Market,
		RealizedPnlTWD:  t.RealizedPnlTWD,
		HoldingID:       t.HoldingID,
		PortfolioID:     t.PortfolioID,
		Notes:           t.Notes,
	}
}

// Transactions lists ledger entries, optionally filtered on portfolio_id
func (h *TransactionHandler) Transactions(w http.ResponseWriter, r *http.Request) {
	transactions, err := h.transactionService.GetTransactions(r.URL.Query().Get("portfolio_id"))
	if err != nil {
		respondServiceError(w, err)
		return
	}

	resp := make([]TransactionResponse, len(transactions))
	for i, t := range transactions {
		resp[i] = toTransactionResponse(t)
	}
	response.RespondData(w, http.StatusOK, resp)
}

// SellResponse reports the outcome of a sell
type SellResponse struct {
	Success         bool    `json:"success"`
	RealizedPnlTWD  float64 `json:"realized_pnl_twd"`
	RemainingShares float64 `json:"remaining_shares"`
	CashAddedTWD    float64 `json:"cash_added_twd"`
}

// Sell executes a sale against a holding lot
func (h *TransactionHandler) Sell(w http.ResponseWriter, r *http.Request) {
	var req request.SellRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := validation.ValidateSell(req); err != nil {
		respondValidationError(w, err)
		return
	}

	transactionDate := time.Now().UTC()
	if req.TransactionDate != "" {
		transactionDate, _ = time.Parse("2006-01-02", req.TransactionDate)
	}

	result, err := h.transactionService.Sell(service.SellRequest{
		HoldingID:       req.HoldingID,
		Shares:          req.Shares,
		Price:           req.Price,
		TransactionDate: transactionDate,
		PortfolioID:     req.PortfolioID,
		Notes:           req.Notes,
	})
	if err != nil {
		respondServiceError(w, err)
		return
	}

	response.RespondData(w, http.StatusOK, SellResponse{
		Success:         true,
		RealizedPnlTWD:  result.RealizedPnlTWD,
		RemainingShares: result.RemainingShares,
		CashAddedTWD:    result.CashAddedTWD,
	})
}

// DeleteTransaction removes a ledger entry
func (h *TransactionHandler) DeleteTransaction(w http.ResponseWriter, r *http.Request) {
	if err := h.transactionService.DeleteTransaction(chi.URLParam(r, "uuid")); err != nil {
		respondServiceError(w, err)
		return
	}
	response.RespondData(w, http.StatusOK, map[string]bool{"success": true})
}
