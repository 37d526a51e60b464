package chartshot

import "testing"

func TestQuoteURL(t *testing.T) {
	tests := []struct {
		symbol string
		index  bool
		want   string
	}{
		{"spy", false, "https://www.barchart.com/stocks/quotes/SPY/put-call-ratios"},
		{"AAPL", false, "https://www.barchart.com/stocks/quotes/AAPL/put-call-ratios"},
		{" vix ", true, "https://www.barchart.com/stocks/quotes/%24VIX/put-call-ratios"},
		{"spx", true, "https://www.barchart.com/stocks/quotes/%24SPX/put-call-ratios"},
	}

	for _, tt := range tests {
		if got := QuoteURL(tt.symbol, tt.index); got != tt.want {
			t.Errorf("QuoteURL(%q, %v) = %s, want %s", tt.symbol, tt.index, got, tt.want)
		}
	}
}
