package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// QuoteUpdate is the latest ticker state for one option contract as delivered
// by the exchange's 24hrTicker stream. All price-like fields stay opaque
// decimal text; only the filter comparisons ever parse them.
type QuoteUpdate struct {
	EventType  string `json:"e"`  // "24hrTicker"
	EventTime  int64  `json:"E"`  // event time, ms
	TradeTime  int64  `json:"T"`  // transaction time, ms
	Symbol     string `json:"s"`  // option symbol, e.g. "ETH-250314-2900-C"
	Open       string `json:"o"`  // 24h opening price
	High       string `json:"h"`  // 24h high
	Low        string `json:"l"`  // 24h low
	Last       string `json:"c"`  // last price
	Volume     string `json:"V"`  // 24h contract volume
	Amount     string `json:"A"`  // 24h quote-asset amount
	TradeCount int64  `json:"n"`  // 24h trade count
	BidPrice   string `json:"bo"` // best bid price
	AskPrice   string `json:"ao"` // best ask price
	BidQty     string `json:"bq"` // best bid quantity
	AskQty     string `json:"aq"` // best ask quantity
	BidIV      string `json:"b"`  // buy implied volatility
	AskIV      string `json:"a"`  // sell implied volatility
	Delta      string `json:"d"`
	Theta      string `json:"t"`
	Gamma      string `json:"g"`
	Vega       string `json:"v"`
	ImpliedVol string `json:"vo"`
	MarkPrice  string `json:"mp"`
}

// Tradable reports whether the quote carries strictly positive traded volume
// and a strictly positive last price. Non-numeric values fail the check.
func (q *QuoteUpdate) Tradable() bool {
	volume, err := decimal.NewFromString(q.Volume)
	if err != nil {
		return false
	}
	last, err := decimal.NewFromString(q.Last)
	if err != nil {
		return false
	}
	return volume.IsPositive() && last.IsPositive()
}

// OptionSnapshot is one persisted row of a snapshot pass: the decomposed
// symbol, the joined underlying price and the raw quote payload. Rows are
// append-only and never mutated.
type OptionSnapshot struct {
	ID              uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	SnapshotIndex   uint64    `gorm:"column:snapshot_index;index" json:"snapshot_index"`
	Timestamp       time.Time `gorm:"column:timestamp" json:"timestamp"`
	Symbol          string    `gorm:"column:symbol;index" json:"symbol"`
	Underlying      string    `gorm:"column:underlying" json:"underlying"`
	Expiration      string    `gorm:"column:expiration" json:"expiration"`
	Strike          string    `gorm:"column:strike" json:"strike"`
	Side            string    `gorm:"column:side" json:"side"`
	UnderlyingPrice string    `gorm:"column:underlying_price" json:"underlying_price"`

	Open       string `gorm:"column:open" json:"open"`
	High       string `gorm:"column:high" json:"high"`
	Low        string `gorm:"column:low" json:"low"`
	Last       string `gorm:"column:last" json:"last"`
	Volume     string `gorm:"column:volume" json:"volume"`
	Amount     string `gorm:"column:amount" json:"amount"`
	TradeCount int64  `gorm:"column:trade_count" json:"trade_count"`
	BidPrice   string `gorm:"column:bid_price" json:"bid_price"`
	AskPrice   string `gorm:"column:ask_price" json:"ask_price"`
	BidQty     string `gorm:"column:bid_qty" json:"bid_qty"`
	AskQty     string `gorm:"column:ask_qty" json:"ask_qty"`
	BidIV      string `gorm:"column:bid_iv" json:"bid_iv"`
	AskIV      string `gorm:"column:ask_iv" json:"ask_iv"`
	Delta      string `gorm:"column:delta" json:"delta"`
	Theta      string `gorm:"column:theta" json:"theta"`
	Gamma      string `gorm:"column:gamma" json:"gamma"`
	Vega       string `gorm:"column:vega" json:"vega"`
	ImpliedVol string `gorm:"column:implied_vol" json:"implied_vol"`
	MarkPrice  string `gorm:"column:mark_price" json:"mark_price"`
}

// TableName pins the historical table name used by the collector.
func (OptionSnapshot) TableName() string {
	return "option_snapshots"
}

// NewSnapshot builds one row from a parsed symbol, its latest quote and the
// joined underlying price (empty when the asset is untracked). The timestamp
// is taken at build time, so rows of one batch may differ by microseconds.
func NewSnapshot(index uint64, sym OptionSymbol, quote QuoteUpdate, underlyingPrice string) OptionSnapshot {
	return OptionSnapshot{
		SnapshotIndex:   index,
		Timestamp:       time.Now().UTC(),
		Symbol:          sym.String(),
		Underlying:      sym.Underlying,
		Expiration:      sym.Expiration,
		Strike:          sym.Strike,
		Side:            sym.Side,
		UnderlyingPrice: underlyingPrice,
		Open:            quote.Open,
		High:            quote.High,
		Low:             quote.Low,
		Last:            quote.Last,
		Volume:          quote.Volume,
		Amount:          quote.Amount,
		TradeCount:      quote.TradeCount,
		BidPrice:        quote.BidPrice,
		AskPrice:        quote.AskPrice,
		BidQty:          quote.BidQty,
		AskQty:          quote.AskQty,
		BidIV:           quote.BidIV,
		AskIV:           quote.AskIV,
		Delta:           quote.Delta,
		Theta:           quote.Theta,
		Gamma:           quote.Gamma,
		Vega:            quote.Vega,
		ImpliedVol:      quote.ImpliedVol,
		MarkPrice:       quote.MarkPrice,
	}
}
