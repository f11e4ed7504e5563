package clients

import (
	"github.com/adshao/go-binance/v2"
)

// NewBinanceClient creates a spot client. Klines are public, so empty
// credentials are accepted.
func NewBinanceClient(apiKey, apiSecret string) *binance.Client {
	client := binance.NewClient(apiKey, apiSecret)
	return client
}
