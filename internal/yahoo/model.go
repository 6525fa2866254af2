package yahoo

// Response represents the raw JSON response structure from the Yahoo Finance
// chart API. Close prices are pointers because Yahoo emits explicit nulls for
// days without data.
type Response struct {
	Chart struct {
		Result []struct {
			Meta struct {
				Currency           string  `json:"currency"`
				Symbol             string  `json:"symbol"`
				ExchangeName       string  `json:"exchangeName"`
				RegularMarketPrice float64 `json:"regularMarketPrice"`
				PreviousClose      float64 `json:"previousClose"`
				ChartPreviousClose float64 `json:"chartPreviousClose"`
			} `json:"meta"`
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Close []*float64 `json:"close"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

// SummaryResponse represents the Yahoo quoteSummary API response, used only
// for the fundProfile module carrying ETF fee information.
type SummaryResponse struct {
	QuoteSummary struct {
		Result []struct {
			FundProfile struct {
				FeesExpensesInvestment struct {
					AnnualReportExpenseRatio *RawValue `json:"annualReportExpenseRatio"`
					NetExpenseRatio          *RawValue `json:"netExpenseRatio"`
				} `json:"feesExpensesInvestment"`
			} `json:"fundProfile"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"quoteSummary"`
}

// RawValue is Yahoo's {raw, fmt} number wrapper
type RawValue struct {
	Raw float64 `json:"raw"`
	Fmt string  `json:"fmt"`
}
