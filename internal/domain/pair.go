// Package domain defines core data structures used throughout the spike watcher.
package domain

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// Pair exchange trading pair, used by the crypto bar sources.
type Pair struct {
	// From base currency symbol.
	From string
	// To quote currency symbol.
	To string
}

// ParsePair parses "BTC_USDT", "BTC/USDT" or "BTC-USDT". A ticker without a
// separator, such as "BTCUSDT", is kept whole as the base symbol.
func ParsePair(ticker string) (Pair, error) {
	ticker = strings.ToUpper(strings.TrimSpace(ticker))
	if ticker == "" {
		return Pair{}, errors.New("empty ticker")
	}

	parts := strings.FieldsFunc(ticker, func(r rune) bool {
		return r == '_' || r == '/' || r == '-'
	})
	switch len(parts) {
	case 1:
		return Pair{From: parts[0]}, nil
	case 2:
		return Pair{From: parts[0], To: parts[1]}, nil
	default:
		return Pair{}, errors.Errorf("invalid pair %q", ticker)
	}
}

// String returns the string representation.
func (p *Pair) String() string {
	if p.To == "" {
		return p.From
	}
	return fmt.Sprintf("%s_%s", p.From, p.To)
}

// Symbol returns the concatenated symbol representation.
func (p *Pair) Symbol() string {
	return fmt.Sprintf("%s%s", p.From, p.To)
}
