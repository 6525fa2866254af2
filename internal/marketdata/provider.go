// Package marketdata defines the market-data boundary consumed by the services:
// a Provider interface over the external quote source plus a TTL cache with
// explicit invalidation.
package marketdata

import (
	"github.com/RX5950XT/portfolio-visualizer/internal/model"
	"github.com/RX5950XT/portfolio-visualizer/internal/yahoo"
)

// Provider supplies quotes, history, the exchange rate, and ETF fee data.
// All methods are best-effort: callers degrade to documented defaults on
// error rather than failing the request.
type Provider interface {
	GetQuote(symbol string) (*model.Quote, error)
	GetHistory(symbol string, query yahoo.HistoryQuery) ([]model.PricePoint, error)
	GetExchangeRate() (float64, error)
	GetExpenseRatio(symbol string) (*float64, error)
}
