// Package binance implements the exchange-facing edge of the collector: the
// REST metadata client that discovers the option universe and the websocket
// workers that feed the shared caches.
package binance

import (
	"encoding/json"

	"options_go/internal/domain"
)

// exchangeInfoResponse is the subset of /eapi/v1/exchangeInfo we consume.
type exchangeInfoResponse struct {
	OptionSymbols []optionDescriptor `json:"optionSymbols"`
}

// optionDescriptor is one instrument entry from the metadata endpoint. The
// endpoint carries more fields (fees, scales); only symbol and underlying
// matter for universe filtering.
type optionDescriptor struct {
	Symbol     string `json:"symbol"`     // e.g. "ETH-250301-2200-C"
	Underlying string `json:"underlying"` // e.g. "ETHUSDT"
}

// streamEnvelope wraps every frame of a multiplexed stream:
// {"stream":"ETH-250314-2900-C@ticker","data":{...}}.
type streamEnvelope struct {
	Stream string          `json:"stream"`
	Data   json.RawMessage `json:"data"`
}

// tickerFrame decodes the data member of an options ticker frame.
type tickerFrame = domain.QuoteUpdate

// tradeFrame decodes the data member of a spot trade frame.
type tradeFrame struct {
	EventType string `json:"e"` // "trade"
	EventTime int64  `json:"E"`
	AssetPair string `json:"s"` // e.g. "BTCUSDT"
	Price     string `json:"p"`
	Quantity  string `json:"q"`
	TradeTime int64  `json:"T"`
}
