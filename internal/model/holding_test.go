package model

import "testing"

func TestClassifyMarket(t *testing.T) {
	tests := []struct {
		symbol string
		want   string
	}{
		{"2330.TW", MarketDomestic},
		{"0050.tw", MarketDomestic},
		{"006208.TWO", MarketDomestic},
		{"VOO", MarketForeign},
		{"twlo", MarketForeign},
		{"", MarketForeign},
	}
	for _, tt := range tests {
		if got := ClassifyMarket(tt.symbol, ".TW"); got != tt.want {
			t.Errorf("ClassifyMarket(%q) = %q, want %q", tt.symbol, got, tt.want)
		}
	}
}

func TestHoldingIsForeign(t *testing.T) {
	if (Holding{Market: MarketForeign}).IsForeign() != true {
		t.Error("expected US lot to be foreign")
	}
	if (Holding{Market: MarketDomestic}).IsForeign() != false {
		t.Error("expected TW lot to be domestic")
	}
}

func TestHoldingCostNative(t *testing.T) {
	h := Holding{Shares: 10, CostPrice: 123.5}
	if got := h.CostNative(); got != 1235 {
		t.Errorf("CostNative() = %v, want 1235", got)
	}
}
