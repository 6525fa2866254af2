package testutil

import (
	"fmt"
	"time"

	"github.com/RX5950XT/portfolio-visualizer/internal/model"
	"github.com/RX5950XT/portfolio-visualizer/internal/yahoo"
)

// StubProvider is a canned market-data provider. Symbols absent from the maps
// produce errors, exercising the degrade paths.
type StubProvider struct {
	Quotes        map[string]float64
	Histories     map[string][]model.PricePoint
	ExpenseRatios map[string]float64
	Rate          float64
	RateErr       error
}

// NewStubProvider creates an empty stub with a fixed exchange rate
func NewStubProvider(rate float64) *StubProvider {
	return &StubProvider{
		Quotes:        make(map[string]float64),
		Histories:     make(map[string][]model.PricePoint),
		ExpenseRatios: make(map[string]float64),
		Rate:          rate,
	}
}

// WithQuote registers a current price for a symbol
func (p *StubProvider) WithQuote(symbol string, price float64) *StubProvider {
	p.Quotes[symbol] = price
	return p
}

// WithHistory registers daily closes for a symbol. Dates are YYYY-MM-DD.
func (p *StubProvider) WithHistory(symbol string, closes map[string]float64) *StubProvider {
	points := make([]model.PricePoint, 0, len(closes))
	for date, close := range closes {
		parsed, _ := time.Parse("2006-01-02", date)
		points = append(points, model.PricePoint{Date: parsed, Close: close})
	}
	p.Histories[symbol] = points
	return p
}

// WithExpenseRatio registers a fund fee for a symbol
func (p *StubProvider) WithExpenseRatio(symbol string, ratio float64) *StubProvider {
	p.ExpenseRatios[symbol] = ratio
	return p
}

func (p *StubProvider) GetQuote(symbol string) (*model.Quote, error) {
	price, ok := p.Quotes[symbol]
	if !ok {
		return nil, fmt.Errorf("no quote for %s", symbol)
	}
	return &model.Quote{Symbol: symbol, Price: price, AsOf: time.Now().UTC()}, nil
}

func (p *StubProvider) GetHistory(symbol string, query yahoo.HistoryQuery) ([]model.PricePoint, error) {
	points, ok := p.Histories[symbol]
	if !ok {
		return nil, fmt.Errorf("no history for %s", symbol)
	}
	return points, nil
}

func (p *StubProvider) GetExchangeRate() (float64, error) {
	if p.RateErr != nil {
		return 0, p.RateErr
	}
	return p.Rate, nil
}

func (p *StubProvider) GetExpenseRatio(symbol string) (*float64, error) {
	ratio, ok := p.ExpenseRatios[symbol]
	if !ok {
		return nil, nil
	}
	return &ratio, nil
}

// InvalidateAll satisfies the quote invalidator used by mutating services
func (p *StubProvider) InvalidateAll() {}
