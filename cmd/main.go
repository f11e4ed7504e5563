// Command hawkeye watches one instrument's daily bars for volume spikes.
// It fetches history once a day at a fixed UTC time, derives the volume
// regime features, and sends a Telegram alert with a chart when the most
// recent spike happened today or yesterday.
//
// Usage:
//
//	hawkeye run --config hawkeye.yaml
//	hawkeye once --ticker SPY
//	hawkeye features --ticker BTC_USDT --provider binance --rows 30
//	hawkeye setup
//
// Environment variables:
//
//	TELEGRAM_BOT_TOKEN (notifications)
//	BINANCE_API_KEY, BINANCE_API_SECRET, BYBIT_API_KEY, BYBIT_API_SECRET (optional)
package main

import (
	"github.com/berkayda/hawkeye-public/internal/cli"
)

func main() {
	cli.Execute()
}
