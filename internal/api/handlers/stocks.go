package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/RX5950XT/portfolio-visualizer/internal/api/response"
	"github.com/RX5950XT/portfolio-visualizer/internal/config"
	"github.com/RX5950XT/portfolio-visualizer/internal/marketdata"
	"github.com/RX5950XT/portfolio-visualizer/internal/model"
	"github.com/RX5950XT/portfolio-visualizer/internal/repository"
	"github.com/RX5950XT/portfolio-visualizer/internal/yahoo"
)

// StockHandler exposes the market-data provider: quotes, history, the
// exchange rate, and ETF expense ratios. Provider failures never surface as
// hard errors; every endpoint degrades to a documented default so aggregate
// views stay renderable when the upstream is down.
type StockHandler struct {
	market marketdata.Provider
	cfg    config.MarketConfig
	log    zerolog.Logger
}

// NewStockHandler creates a new StockHandler
func NewStockHandler(market marketdata.Provider, cfg config.MarketConfig, log zerolog.Logger) *StockHandler {
	return &StockHandler{
		market: market,
		cfg:    cfg,
		log:    log.With().Str("component", "stock_handler").Logger(),
	}
}

// Quotes returns current quotes for the comma-separated symbols parameter.
// A symbol whose quote cannot be fetched reports a zero price.
func (h *StockHandler) Quotes(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("symbols")
	if strings.TrimSpace(raw) == "" {
		response.RespondError(w, http.StatusBadRequest, "symbols parameter is required", nil)
		return
	}

	quotes := make(map[string]*model.Quote)
	for _, symbol := range strings.Split(raw, ",") {
		symbol = strings.ToUpper(strings.TrimSpace(symbol))
		if symbol == "" {
			continue
		}
		quote, err := h.market.GetQuote(symbol)
		if err != nil {
			h.log.Warn().Err(err).Str("symbol", symbol).Msg("Quote unavailable")
			quote = &model.Quote{Symbol: symbol, Price: 0, AsOf: time.Now().UTC()}
		}
		quotes[symbol] = quote
	}

	response.RespondData(w, http.StatusOK, quotes)
}

// HistoryPointResponse is one daily close
type HistoryPointResponse struct {
	Date  string  `json:"date"`
	Close float64 `json:"close"`
}

// History returns daily closes for one symbol over a named range such as
// "1mo" or "1y". An upstream failure yields an empty series.
func (h *StockHandler) History(w http.ResponseWriter, r *http.Request) {
	symbol := strings.ToUpper(strings.TrimSpace(r.URL.Query().Get("symbol")))
	if symbol == "" {
		response.RespondError(w, http.StatusBadRequest, "symbol parameter is required", nil)
		return
	}

	points, err := h.market.GetHistory(symbol, yahoo.HistoryQuery{Range: r.URL.Query().Get("range")})
	if err != nil {
		h.log.Warn().Err(err).Str("symbol", symbol).Msg("History unavailable")
		points = nil
	}

	resp := make([]HistoryPointResponse, len(points))
	for i, p := range points {
		resp[i] = HistoryPointResponse{Date: repository.FormatDate(p.Date), Close: p.Close}
	}
	response.RespondData(w, http.StatusOK, resp)
}

// ExchangeRateResponse reports the USD to TWD conversion rate
type ExchangeRateResponse struct {
	Rate float64 `json:"rate"`
	From string  `json:"from"`
	To   string  `json:"to"`
}

// ExchangeRate returns the live USD/TWD rate, or the configured default when
// the provider is unavailable
func (h *StockHandler) ExchangeRate(w http.ResponseWriter, r *http.Request) {
	rate, err := h.market.GetExchangeRate()
	if err != nil || rate <= 0 {
		h.log.Warn().Err(err).Float64("default", h.cfg.DefaultExchangeRate).Msg("Exchange rate unavailable, using default")
		rate = h.cfg.DefaultExchangeRate
	}
	response.RespondData(w, http.StatusOK, ExchangeRateResponse{Rate: rate, From: "USD", To: "TWD"})
}

// ExpenseRatioResponse reports an ETF's annual expense ratio as a fraction,
// null when the symbol is not a known fund
type ExpenseRatioResponse struct {
	Symbol       string   `json:"symbol"`
	ExpenseRatio *float64 `json:"expense_ratio"`
}

// ExpenseRatio returns the expense ratio for one symbol. Unknown symbols and
// provider failures both report a null ratio.
func (h *StockHandler) ExpenseRatio(w http.ResponseWriter, r *http.Request) {
	symbol := strings.ToUpper(strings.TrimSpace(r.URL.Query().Get("symbol")))
	if symbol == "" {
		response.RespondError(w, http.StatusBadRequest, "symbol parameter is required", nil)
		return
	}

	ratio, err := h.market.GetExpenseRatio(symbol)
	if err != nil {
		h.log.Warn().Err(err).Str("symbol", symbol).Msg("Expense ratio unavailable")
		ratio = nil
	}
	response.RespondData(w, http.StatusOK, ExpenseRatioResponse{Symbol: symbol, ExpenseRatio: ratio})
}
