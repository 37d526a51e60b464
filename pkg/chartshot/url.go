package chartshot

import (
	"fmt"
	"strings"
)

const quoteURLFormat = "https://www.barchart.com/stocks/quotes/%s/put-call-ratios"

// QuoteURL returns the Barchart put-call-ratio page for a symbol. Index
// symbols (VIX, SPX, ...) carry a $ prefix on Barchart, sent URL-escaped.
func QuoteURL(symbol string, index bool) string {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	if index {
		symbol = "%24" + symbol
	}
	return fmt.Sprintf(quoteURLFormat, symbol)
}
