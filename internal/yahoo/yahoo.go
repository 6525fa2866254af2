package yahoo

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/RX5950XT/portfolio-visualizer/internal/model"
)

// exchangeRateSymbol is the Yahoo ticker for the USD/TWD currency pair
const exchangeRateSymbol = "USDTWD=X"

// fallbackExpenseRatios holds manually maintained fee data for common ETFs,
// used when the provider has no fundProfile for a symbol.
var fallbackExpenseRatios = map[string]float64{
	// US ETFs - Vanguard
	"VOO":  0.0003,
	"VTI":  0.0003,
	"VT":   0.0007,
	"VXUS": 0.0007,
	"VEU":  0.0007,
	"VGT":  0.0010,
	"VNQ":  0.0012,
	"BND":  0.0003,
	// US ETFs - iShares
	"IVV":  0.0003,
	"IJH":  0.0005,
	"EWY":  0.0059,
	"SOXX": 0.0035,
	// US ETFs - SPDR / State Street
	"SPY": 0.0009,
	"XLP": 0.0009,
	// US ETFs - other
	"QQQ":  0.0020,
	"ARKK": 0.0075,
	"NLR":  0.0060,
	// TW ETFs
	"0050.TW":   0.0043,
	"0056.TW":   0.0066,
	"00878.TW":  0.0056,
	"00692.TW":  0.0035,
	"006208.TW": 0.0015,
}

// HistoryQuery selects the window of a historical price request. Either a
// named Range (1mo, 3mo, 6mo, 1y, 5y) or an explicit Start/End pair is used;
// explicit dates win when both are set.
type HistoryQuery struct {
	Range string
	Start time.Time
	End   time.Time
}

// FinanceClient provides methods for fetching financial data from the Yahoo
// Finance API. It wraps an HTTP client and shapes the external payloads into
// the application's quote and price-point records.
type FinanceClient struct {
	httpClient *http.Client
	baseURL    string
}

// NewFinanceClient creates a new Yahoo Finance client with a request timeout.
// External calls are best-effort; callers degrade to defaults on failure.
func NewFinanceClient() *FinanceClient {
	return &FinanceClient{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		baseURL:    "https://query1.finance.yahoo.com",
	}
}

// NewFinanceClientWithBaseURL creates a client against a custom endpoint.
// Used by tests to point the client at an httptest server.
func NewFinanceClientWithBaseURL(baseURL string) *FinanceClient {
	return &FinanceClient{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		baseURL:    baseURL,
	}
}

// GetQuote fetches the current quote for a symbol. The price is taken from
// the chart meta's regular market price, falling back to the last non-null
// close; change figures are computed against the previous close.
func (c *FinanceClient) GetQuote(symbol string) (*model.Quote, error) {
	endpoint := fmt.Sprintf("%s/v8/finance/chart/%s?interval=1d&range=1d", c.baseURL, url.PathEscape(symbol))

	response, err := c.queryChart(endpoint)
	if err != nil {
		return nil, err
	}
	if len(response.Chart.Result) == 0 {
		return nil, fmt.Errorf("no results returned for symbol %s", symbol)
	}

	result := response.Chart.Result[0]
	meta := result.Meta

	price := meta.RegularMarketPrice
	if price == 0 {
		price = lastKnownClose(response)
	}
	if price == 0 {
		return nil, fmt.Errorf("no price available for symbol %s", symbol)
	}

	previousClose := meta.PreviousClose
	if previousClose == 0 {
		previousClose = meta.ChartPreviousClose
	}

	var change, changePercent float64
	if previousClose > 0 {
		change = price - previousClose
		changePercent = change / previousClose * 100
	}

	currency := meta.Currency
	if currency == "" {
		currency = "USD"
	}

	return &model.Quote{
		Symbol:        meta.Symbol,
		Price:         price,
		Change:        change,
		ChangePercent: changePercent,
		Currency:      currency,
		AsOf:          time.Now().UTC(),
	}, nil
}

// GetHistory fetches daily closing prices for a symbol. Days with null closes
// (non-trading days inside the window) are dropped from the result. Returns
// an empty slice when the window contains no data.
func (c *FinanceClient) GetHistory(symbol string, query HistoryQuery) ([]model.PricePoint, error) {
	var endpoint string
	if !query.Start.IsZero() {
		end := query.End
		if end.IsZero() {
			end = time.Now()
		}
		endpoint = fmt.Sprintf(
			"%s/v8/finance/chart/%s?interval=1d&period1=%d&period2=%d",
			c.baseURL, url.PathEscape(symbol), query.Start.Unix(), end.Unix(),
		)
	} else {
		r := query.Range
		if r == "" {
			r = "1mo"
		}
		endpoint = fmt.Sprintf("%s/v8/finance/chart/%s?interval=1d&range=%s", c.baseURL, url.PathEscape(symbol), r)
	}

	response, err := c.queryChart(endpoint)
	if err != nil {
		return nil, err
	}
	if len(response.Chart.Result) == 0 {
		return nil, fmt.Errorf("no results returned for symbol %s", symbol)
	}

	result := response.Chart.Result[0]
	if len(result.Indicators.Quote) == 0 {
		return []model.PricePoint{}, nil
	}

	closes := result.Indicators.Quote[0].Close
	points := make([]model.PricePoint, 0, len(result.Timestamp))
	for i, ts := range result.Timestamp {
		if i >= len(closes) || closes[i] == nil {
			continue
		}
		points = append(points, model.PricePoint{
			Date:  time.Unix(ts, 0).UTC().Truncate(24 * time.Hour),
			Close: *closes[i],
		})
	}

	return points, nil
}

// GetExchangeRate fetches the current USD/TWD rate via the currency-pair
// quote. Callers substitute the configured default when this fails.
func (c *FinanceClient) GetExchangeRate() (float64, error) {
	quote, err := c.GetQuote(exchangeRateSymbol)
	if err != nil {
		return 0, err
	}
	return quote.Price, nil
}

// GetExpenseRatio fetches an ETF's expense ratio from the quoteSummary
// fundProfile module, falling back to the static table for symbols the
// provider has no fee data for. Returns nil for symbols that are not ETFs.
func (c *FinanceClient) GetExpenseRatio(symbol string) (*float64, error) {
	upper := strings.ToUpper(symbol)

	ratio, err := c.queryFundProfile(upper)
	if err == nil && ratio != nil {
		return ratio, nil
	}

	if fallback, ok := fallbackExpenseRatios[upper]; ok {
		return &fallback, nil
	}

	if err != nil {
		return nil, err
	}
	return nil, nil
}

// queryFundProfile executes the quoteSummary request and extracts the fee
// ratio. The ratio may live in either the annual-report or net field.
func (c *FinanceClient) queryFundProfile(symbol string) (*float64, error) {
	endpoint := fmt.Sprintf("%s/v10/finance/quoteSummary/%s?modules=fundProfile", c.baseURL, url.PathEscape(symbol))

	data, err := c.get(endpoint)
	if err != nil {
		return nil, err
	}

	var response SummaryResponse
	if err := json.Unmarshal(data, &response); err != nil {
		return nil, fmt.Errorf("failed to parse quoteSummary response: %w", err)
	}
	if response.QuoteSummary.Error != nil {
		return nil, fmt.Errorf("yahoo error: %s", response.QuoteSummary.Error.Description)
	}
	if len(response.QuoteSummary.Result) == 0 {
		return nil, nil
	}

	fees := response.QuoteSummary.Result[0].FundProfile.FeesExpensesInvestment
	if fees.AnnualReportExpenseRatio != nil {
		return &fees.AnnualReportExpenseRatio.Raw, nil
	}
	if fees.NetExpenseRatio != nil {
		return &fees.NetExpenseRatio.Raw, nil
	}
	return nil, nil
}

// queryChart executes a chart API request and checks for API-level errors
func (c *FinanceClient) queryChart(endpoint string) (Response, error) {
	data, err := c.get(endpoint)
	if err != nil {
		return Response{}, err
	}

	var response Response
	if err := json.Unmarshal(data, &response); err != nil {
		return Response{}, fmt.Errorf("failed to parse chart response: %w", err)
	}

	if response.Chart.Error != nil {
		return response, fmt.Errorf("yahoo error: %s", response.Chart.Error.Description)
	}

	return response, nil
}

// get executes an HTTP GET with the headers Yahoo requires and returns the
// raw body
func (c *FinanceClient) get(endpoint string) ([]byte, error) {
	req, err := http.NewRequest(http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}

	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("yahoo returned status %d", resp.StatusCode)
	}

	return io.ReadAll(resp.Body)
}

// lastKnownClose returns the most recent non-null close in a chart response,
// or 0 when none exists
func lastKnownClose(response Response) float64 {
	result := response.Chart.Result[0]
	if len(result.Indicators.Quote) == 0 {
		return 0
	}
	closes := result.Indicators.Quote[0].Close
	for i := len(closes) - 1; i >= 0; i-- {
		if closes[i] != nil {
			return *closes[i]
		}
	}
	return 0
}
