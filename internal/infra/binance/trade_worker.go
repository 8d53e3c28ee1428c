package binance

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"options_go/internal/cache"
	"options_go/internal/infra"

	"github.com/gorilla/websocket"
)

// TradeWorker maintains one trade-event stream for the reference assets and
// keeps the shared price board current. Same reconnect policy as the options
// workers, applied independently.
type TradeWorker struct {
	baseURL     string
	underlyings []string
	quoteSuffix string
	prices      *cache.PriceBoard
	retry       infra.RetryPolicy

	conn   *websocket.Conn
	mu     sync.RWMutex
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewTradeWorker creates the underlying price tracker for the given base
// assets (e.g. BTC, ETH on a USDT quote).
func NewTradeWorker(baseURL string, underlyings []string, quoteSuffix string, prices *cache.PriceBoard, retry infra.RetryPolicy) *TradeWorker {
	return &TradeWorker{
		baseURL:     baseURL,
		underlyings: underlyings,
		quoteSuffix: quoteSuffix,
		prices:      prices,
		retry:       retry,
	}
}

// streamURL subscribes to one lower-cased "@trade" stream per asset pair.
func (w *TradeWorker) streamURL() string {
	names := make([]string, len(w.underlyings))
	for i, u := range w.underlyings {
		names[i] = strings.ToLower(u+w.quoteSuffix) + "@trade"
	}
	return w.baseURL + "?streams=" + strings.Join(names, "/")
}

// Connect starts the connection loop in the background.
func (w *TradeWorker) Connect(ctx context.Context) error {
	if len(w.underlyings) == 0 {
		return fmt.Errorf("trade worker needs at least one underlying")
	}
	ctx, w.cancel = context.WithCancel(ctx)
	w.wg.Add(1)
	go w.connectionLoop(ctx)
	return nil
}

func (w *TradeWorker) connectionLoop(ctx context.Context) {
	defer w.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		if err := w.connect(ctx); err != nil {
			slog.Error("trade stream connect failed", slog.Any("error", err))
		} else {
			w.readLoop(ctx)
		}

		infra.GlobalMetrics.RecordReconnect()
		slog.Warn("trade stream reconnecting", slog.Duration("delay", w.retry.Delay(0)))
		if !infra.Wait(ctx, w.retry, 0) {
			return
		}
	}
}

func (w *TradeWorker) connect(ctx context.Context) error {
	dialer := websocket.Dialer{HandshakeTimeout: handshakeTimeout}
	conn, _, err := dialer.DialContext(ctx, w.streamURL(), nil)
	if err != nil {
		return fmt.Errorf("dial failed: %w", err)
	}

	w.mu.Lock()
	w.conn = conn
	w.mu.Unlock()
	infra.GlobalMetrics.IncrementConnections()

	slog.Info("trade stream connected", slog.Int("assets", len(w.underlyings)))
	return nil
}

func (w *TradeWorker) readLoop(ctx context.Context) {
	defer func() {
		w.closeConnection()
		infra.GlobalMetrics.DecrementConnections()
	}()

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		w.mu.RLock()
		conn := w.conn
		w.mu.RUnlock()
		if conn == nil {
			return
		}

		_, msg, err := conn.ReadMessage()
		if err != nil {
			if ctx.Err() == nil {
				slog.Warn("trade stream read failed", slog.Any("error", err))
			}
			return
		}
		w.handleMessage(msg)
	}
}

func (w *TradeWorker) handleMessage(msg []byte) {
	var env streamEnvelope
	if json.Unmarshal(msg, &env) != nil || len(env.Data) == 0 {
		return
	}

	var trade tradeFrame
	if json.Unmarshal(env.Data, &trade) != nil {
		return
	}
	if trade.AssetPair == "" || trade.Price == "" {
		return
	}

	infra.GlobalMetrics.RecordMessage()
	w.prices.Set(trade.AssetPair, trade.Price)
}

func (w *TradeWorker) closeConnection() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.conn != nil {
		w.conn.Close()
		w.conn = nil
	}
}

// Disconnect stops the loop and waits for it to exit.
func (w *TradeWorker) Disconnect() {
	if w.cancel != nil {
		w.cancel()
	}
	w.closeConnection()
	w.wg.Wait()
}
