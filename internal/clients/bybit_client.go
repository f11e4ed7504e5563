package clients

import (
	"github.com/hirokisan/bybit/v2"
)

// NewBybitClient creates a V5 client, authenticated only when a key pair is given.
func NewBybitClient(apiKey, apiSecret string) *bybit.Client {
	client := bybit.NewClient()
	if apiKey == "" || apiSecret == "" {
		return client
	}

	return client.WithAuth(apiKey, apiSecret)
}
