package handlers

import (
	"net/http"

	"github.com/RX5950XT/portfolio-visualizer/internal/api/response"
	"github.com/RX5950XT/portfolio-visualizer/internal/model"
	"github.com/RX5950XT/portfolio-visualizer/internal/repository"
)

// EnrichedHoldingResponse is one lot with its live quote and derived figures
type EnrichedHoldingResponse struct {
	HoldingResponse
	CurrentPrice float64  `json:"currentPrice"`
	TotalCost    float64  `json:"totalCost"`
	TotalCostTWD float64  `json:"totalCostTWD"`
	CurrentValue float64  `json:"currentValue"`
	Gain         float64  `json:"gain"`
	GainPercent  float64  `json:"gainPercent"`
	ExpenseRatio *float64 `json:"expenseRatio,omitempty"`
}

// PositionResponse is all lots of one symbol merged into a single position
type PositionResponse struct {
	Symbol       string                    `json:"symbol"`
	Market       string                    `json:"market"`
	Shares       float64                   `json:"shares"`
	CostPrice    float64                   `json:"cost_price"`
	PurchaseDate string                    `json:"purchase_date"`
	TotalCost    float64                   `json:"totalCost"`
	TotalCostTWD float64                   `json:"totalCostTWD"`
	CurrentPrice float64                   `json:"currentPrice"`
	CurrentValue float64                   `json:"currentValue"`
	Gain         float64                   `json:"gain"`
	GainPercent  float64                   `json:"gainPercent"`
	ExpenseRatio *float64                  `json:"expenseRatio,omitempty"`
	Lots         []EnrichedHoldingResponse `json:"lots"`
}

// ValuationResponse is the full valuation view: every lot, the per-symbol
// positions, and the aggregate totals
type ValuationResponse struct {
	Holdings  []EnrichedHoldingResponse `json:"holdings"`
	Positions []PositionResponse        `json:"positions"`
	Totals    model.ValuationTotals     `json:"totals"`
}

func toEnrichedResponse(e model.EnrichedHolding) EnrichedHoldingResponse {
	return EnrichedHoldingResponse{
		HoldingResponse: toHoldingResponse(e.Holding),
		CurrentPrice:    e.CurrentPrice,
		TotalCost:       e.TotalCost,
		TotalCostTWD:    e.TotalCostTWD,
		CurrentValue:    e.CurrentValueTWD,
		Gain:            e.GainTWD,
		GainPercent:     e.GainPercent,
		ExpenseRatio:    e.ExpenseRatio,
	}
}

// Valuation computes the live valuation of all lots, optionally scoped on
// portfolio_id
func (h *HoldingHandler) Valuation(w http.ResponseWriter, r *http.Request) {
	result, err := h.valuationService.Valuate(r.URL.Query().Get("portfolio_id"))
	if err != nil {
		respondServiceError(w, err)
		return
	}

	holdings := make([]EnrichedHoldingResponse, len(result.Holdings))
	for i, e := range result.Holdings {
		holdings[i] = toEnrichedResponse(e)
	}

	positions := make([]PositionResponse, len(result.Positions))
	for i, p := range result.Positions {
		lots := make([]EnrichedHoldingResponse, len(p.Lots))
		for j, lot := range p.Lots {
			lots[j] = toEnrichedResponse(lot)
		}
		positions[i] = PositionResponse{
			Symbol:       p.Symbol,
			Market:       p.Market,
			Shares:       p.Shares,
			CostPrice:    p.AvgCostPrice,
			PurchaseDate: repository.FormatDate(p.PurchaseDate),
			TotalCost:    p.TotalCost,
			TotalCostTWD: p.TotalCostTWD,
			CurrentPrice: p.CurrentPrice,
			CurrentValue: p.CurrentValueTWD,
			Gain:         p.GainTWD,
			GainPercent:  p.GainPercent,
			ExpenseRatio: p.ExpenseRatio,
			Lots:         lots,
		}
	}

	response.RespondData(w, http.StatusOK, ValuationResponse{
		Holdings:  holdings,
		Positions: positions,
		Totals:    result.Totals,
	})
}
