package yahoo

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func chartJSON(symbol string, price, previousClose float64, timestamps []int64, closes []string) string {
	return fmt.Sprintf(`{
		"chart": {
			"result": [{
				"meta": {
					"currency": "USD",
					"symbol": %q,
					"regularMarketPrice": %g,
					"previousClose": %g
				},
				"timestamp": [%s],
				"indicators": {"quote": [{"close": [%s]}]}
			}],
			"error": null
		}
	}`, symbol, price, previousClose, joinInt64(timestamps), strings.Join(closes, ","))
}

func joinInt64(values []int64) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = fmt.Sprintf("%d", v)
	}
	return strings.Join(parts, ",")
}

func TestFinanceClient_GetQuote(t *testing.T) {
	t.Run("reads the regular market price", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, chartJSON("VOO", 529.77, 525.0, nil, nil))
		}))
		defer server.Close()

		client := NewFinanceClientWithBaseURL(server.URL)
		quote, err := client.GetQuote("VOO")
		if err != nil {
			t.Fatalf("GetQuote failed: %v", err)
		}

		if quote.Symbol != "VOO" || quote.Price != 529.77 {
			t.Errorf("unexpected quote: %+v", quote)
		}
		if quote.Change != 529.77-525.0 {
			t.Errorf("expected change vs previous close, got %v", quote.Change)
		}
		if quote.Currency != "USD" {
			t.Errorf("expected USD, got %s", quote.Currency)
		}
	})

	t.Run("falls back to the last non-null close", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, chartJSON("VOO", 0, 0, []int64{1704153600, 1704240000}, []string{"520.5", "null"}))
		}))
		defer server.Close()

		client := NewFinanceClientWithBaseURL(server.URL)
		quote, err := client.GetQuote("VOO")
		if err != nil {
			t.Fatalf("GetQuote failed: %v", err)
		}
		if quote.Price != 520.5 {
			t.Errorf("expected fallback price 520.5, got %v", quote.Price)
		}
	})

	t.Run("surfaces API errors", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `{"chart": {"result": null, "error": {"code": "Not Found", "description": "No data found"}}}`)
		}))
		defer server.Close()

		client := NewFinanceClientWithBaseURL(server.URL)
		if _, err := client.GetQuote("NOPE"); err == nil {
			t.Fatal("expected an error for an unknown symbol")
		}
	})

	t.Run("rejects non-200 responses", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
		}))
		defer server.Close()

		client := NewFinanceClientWithBaseURL(server.URL)
		if _, err := client.GetQuote("VOO"); err == nil {
			t.Fatal("expected an error on 429")
		}
	})
}

func TestFinanceClient_GetHistory(t *testing.T) {
	t.Run("drops null closes", func(t *testing.T) {
		// 2024-01-02, 2024-01-03, 2024-01-04 UTC
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, chartJSON("2330.TW", 600, 0,
				[]int64{1704153600, 1704240000, 1704326400},
				[]string{"593.0", "null", "601.0"},
			))
		}))
		defer server.Close()

		client := NewFinanceClientWithBaseURL(server.URL)
		points, err := client.GetHistory("2330.TW", HistoryQuery{Range: "1mo"})
		if err != nil {
			t.Fatalf("GetHistory failed: %v", err)
		}

		if len(points) != 2 {
			t.Fatalf("expected 2 points after dropping the null, got %d", len(points))
		}
		if points[0].Close != 593.0 || points[1].Close != 601.0 {
			t.Errorf("unexpected closes: %+v", points)
		}
		if got := points[0].Date.Format("2006-01-02"); got != "2024-01-02" {
			t.Errorf("expected 2024-01-02, got %s", got)
		}
	})

	t.Run("uses explicit period parameters when a start date is set", func(t *testing.T) {
		var gotQuery string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotQuery = r.URL.RawQuery
			fmt.Fprint(w, chartJSON("VOO", 500, 0, nil, nil))
		}))
		defer server.Close()

		client := NewFinanceClientWithBaseURL(server.URL)
		start, _ := time.Parse("2006-01-02", "2024-01-01")
		if _, err := client.GetHistory("VOO", HistoryQuery{Start: start}); err != nil {
			t.Fatalf("GetHistory failed: %v", err)
		}

		if !strings.Contains(gotQuery, "period1=") || !strings.Contains(gotQuery, "period2=") {
			t.Errorf("expected period parameters, got %s", gotQuery)
		}
	})

	t.Run("defaults to the 1mo range", func(t *testing.T) {
		var gotQuery string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotQuery = r.URL.RawQuery
			fmt.Fprint(w, chartJSON("VOO", 500, 0, nil, nil))
		}))
		defer server.Close()

		client := NewFinanceClientWithBaseURL(server.URL)
		if _, err := client.GetHistory("VOO", HistoryQuery{}); err != nil {
			t.Fatalf("GetHistory failed: %v", err)
		}

		if !strings.Contains(gotQuery, "range=1mo") {
			t.Errorf("expected range=1mo, got %s", gotQuery)
		}
	})
}

func TestFinanceClient_GetExpenseRatio(t *testing.T) {
	t.Run("reads the fundProfile fee", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `{
				"quoteSummary": {
					"result": [{
						"fundProfile": {
							"feesExpensesInvestment": {
								"annualReportExpenseRatio": {"raw": 0.0009, "fmt": "0.09%"}
							}
						}
					}],
					"error": null
				}
			}`)
		}))
		defer server.Close()

		client := NewFinanceClientWithBaseURL(server.URL)
		ratio, err := client.GetExpenseRatio("SPY")
		if err != nil {
			t.Fatalf("GetExpenseRatio failed: %v", err)
		}
		if ratio == nil || *ratio != 0.0009 {
			t.Errorf("expected ratio 0.0009, got %v", ratio)
		}
	})

	t.Run("falls back to the static table", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `{"quoteSummary": {"result": [], "error": null}}`)
		}))
		defer server.Close()

		client := NewFinanceClientWithBaseURL(server.URL)
		ratio, err := client.GetExpenseRatio("0050.TW")
		if err != nil {
			t.Fatalf("GetExpenseRatio failed: %v", err)
		}
		if ratio == nil || *ratio != 0.0043 {
			t.Errorf("expected fallback ratio 0.0043, got %v", ratio)
		}
	})

	t.Run("unknown symbols report nil", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `{"quoteSummary": {"result": [], "error": null}}`)
		}))
		defer server.Close()

		client := NewFinanceClientWithBaseURL(server.URL)
		ratio, err := client.GetExpenseRatio("AAPL")
		if err != nil {
			t.Fatalf("GetExpenseRatio failed: %v", err)
		}
		if ratio != nil {
			t.Errorf("expected nil ratio for a non-fund, got %v", *ratio)
		}
	})
}
