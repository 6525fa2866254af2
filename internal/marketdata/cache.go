package marketdata

import (
	"strings"
	"sync"
	"time"

	"github.com/RX5950XT/portfolio-visualizer/internal/model"
	"github.com/RX5950XT/portfolio-visualizer/internal/yahoo"
)

// expenseTTL is the cache lifetime for ETF fee data, which changes at most
// yearly.
const expenseTTL = 24 * time.Hour

type quoteEntry struct {
	quote     *model.Quote
	fetchedAt time.Time
}

type expenseEntry struct {
	ratio     *float64
	fetchedAt time.Time
}

type rateEntry struct {
	rate      float64
	fetchedAt time.Time
}

// Cache memoizes Provider responses per symbol for a fixed TTL. Mutating
// operations on holdings call InvalidateAll so the next read refetches fresh
// prices. Historical series are not cached; the trend endpoints always
// refetch.
type Cache struct {
	provider Provider
	ttl      time.Duration

	mu       sync.Mutex
	quotes   map[string]quoteEntry
	expenses map[string]expenseEntry
	rate     *rateEntry
}

// NewCache wraps a provider with a TTL quote cache
func NewCache(provider Provider, ttl time.Duration) *Cache {
	return &Cache{
		provider: provider,
		ttl:      ttl,
		quotes:   make(map[string]quoteEntry),
		expenses: make(map[string]expenseEntry),
	}
}

// GetQuote returns the cached quote for a symbol, fetching from the
// underlying provider when absent or expired. Failed fetches are not cached.
func (c *Cache) GetQuote(symbol string) (*model.Quote, error) {
	key := strings.ToUpper(symbol)

	c.mu.Lock()
	entry, ok := c.quotes[key]
	c.mu.Unlock()
	if ok && time.Since(entry.fetchedAt) < c.ttl {
		return entry.quote, nil
	}

	quote, err := c.provider.GetQuote(symbol)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.quotes[key] = quoteEntry{quote: quote, fetchedAt: time.Now()}
	c.mu.Unlock()

	return quote, nil
}

// GetHistory is a pass-through; historical series are not cached
func (c *Cache) GetHistory(symbol string, query yahoo.HistoryQuery) ([]model.PricePoint, error) {
	return c.provider.GetHistory(symbol, query)
}

// GetExchangeRate returns the cached USD/TWD rate, refetching after the TTL
func (c *Cache) GetExchangeRate() (float64, error) {
	c.mu.Lock()
	entry := c.rate
	c.mu.Unlock()
	if entry != nil && time.Since(entry.fetchedAt) < c.ttl {
		return entry.rate, nil
	}

	rate, err := c.provider.GetExchangeRate()
	if err != nil {
		return 0, err
	}

	c.mu.Lock()
	c.rate = &rateEntry{rate: rate, fetchedAt: time.Now()}
	c.mu.Unlock()

	return rate, nil
}

// GetExpenseRatio returns the cached fee ratio for a symbol. Nil results are
// cached too, so non-ETF symbols are not re-queried on every valuation.
func (c *Cache) GetExpenseRatio(symbol string) (*float64, error) {
	key := strings.ToUpper(symbol)

	c.mu.Lock()
	entry, ok := c.expenses[key]
	c.mu.Unlock()
	if ok && time.Since(entry.fetchedAt) < expenseTTL {
		return entry.ratio, nil
	}

	ratio, err := c.provider.GetExpenseRatio(symbol)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.expenses[key] = expenseEntry{ratio: ratio, fetchedAt: time.Now()}
	c.mu.Unlock()

	return ratio, nil
}

// Invalidate drops the cached quote for one symbol
func (c *Cache) Invalidate(symbol string) {
	c.mu.Lock()
	delete(c.quotes, strings.ToUpper(symbol))
	c.mu.Unlock()
}

// InvalidateAll drops all cached quotes and the exchange rate. Called after
// any holdings mutation to force fresh prices on the next read.
func (c *Cache) InvalidateAll() {
	c.mu.Lock()
	c.quotes = make(map[string]quoteEntry)
	c.rate = nil
	c.mu.Unlock()
}
