package model

import (
	"strings"
	"time"
)

// Market identifies which market a symbol trades on, derived solely from the
// symbol string. Domestic symbols are priced in TWD, foreign symbols in USD.
const (
	MarketDomestic = "TW"
	MarketForeign  = "US"
)

// ClassifyMarket derives the market from the ticker symbol. A symbol
// containing the domestic suffix marker (e.g. ".TW") is domestic; everything
// else is foreign. This string rule is the sole source of market
// classification.
func ClassifyMarket(symbol, domesticSuffix string) string {
	if strings.Contains(strings.ToUpper(symbol), strings.ToUpper(domesticSuffix)) {
		return MarketDomestic
	}
	return MarketForeign
}

// Holding represents a single purchase lot of a symbol
type Holding struct {
	ID           string    `json:"id"`
	Symbol       string    `json:"symbol"`
	Shares       float64   `json:"shares"`
	CostPrice    float64   `json:"cost_price"` // per share, in the lot's native currency
	PurchaseDate time.Time `json:"-"`
	Market       string    `json:"market"`
	PortfolioID  string    `json:"portfolio_id,omitempty"` // empty = default portfolio
	CreatedAt    time.Time `json:"created_at,omitempty"`
	UpdatedAt    time.Time `json:"updated_at,omitempty"`
}

// IsForeign reports whether the lot is priced in the foreign currency
func (h Holding) IsForeign() bool {
	return h.Market == MarketForeign
}

// CostNative returns the lot's total purchase cost in its native currency
func (h Holding) CostNative() float64 {
	return h.Shares * h.CostPrice
}
