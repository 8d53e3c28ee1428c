package binance

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"options_go/internal/cache"
	"options_go/internal/infra"

	"github.com/gorilla/websocket"
)

const handshakeTimeout = 10 * time.Second

// OptionsWorker maintains one multiplexed ticker stream for a bounded group
// of option symbols and writes every inbound update into the shared quote
// cache. A dropped connection is re-dialed after the retry policy's delay,
// indefinitely; groups never affect each other.
type OptionsWorker struct {
	baseURL string
	symbols []string
	quotes  *cache.QuoteCache
	retry   infra.RetryPolicy

	conn   *websocket.Conn
	mu     sync.RWMutex
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewOptionsWorker creates a worker for one symbol group. baseURL is the
// stream endpoint before the streams query parameter.
func NewOptionsWorker(baseURL string, symbols []string, quotes *cache.QuoteCache, retry infra.RetryPolicy) *OptionsWorker {
	return &OptionsWorker{
		baseURL: baseURL,
		symbols: symbols,
		quotes:  quotes,
		retry:   retry,
	}
}

// streamURL builds the multiplexed subscription URL, one "@ticker" stream
// name per symbol in the group.
func (w *OptionsWorker) streamURL() string {
	names := make([]string, len(w.symbols))
	for i, s := range w.symbols {
		names[i] = s + "@ticker"
	}
	return w.baseURL + "?streams=" + strings.Join(names, "/")
}

// Connect starts the connection loop in the background.
func (w *OptionsWorker) Connect(ctx context.Context) error {
	if len(w.symbols) == 0 {
		return fmt.Errorf("options worker needs at least one symbol")
	}
	ctx, w.cancel = context.WithCancel(ctx)
	w.wg.Add(1)
	go w.connectionLoop(ctx)
	return nil
}

func (w *OptionsWorker) connectionLoop(ctx context.Context) {
	defer w.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		if err := w.connect(ctx); err != nil {
			slog.Error("options stream connect failed",
				slog.String("first", w.symbols[0]),
				slog.String("last", w.symbols[len(w.symbols)-1]),
				slog.Any("error", err))
		} else {
			w.readLoop(ctx)
		}

		// Every failure is a transient network condition: wait the fixed
		// delay and dial again. There is no retry budget.
		infra.GlobalMetrics.RecordReconnect()
		slog.Warn("options stream reconnecting",
			slog.String("first", w.symbols[0]),
			slog.String("last", w.symbols[len(w.symbols)-1]),
			slog.Duration("delay", w.retry.Delay(0)))
		if !infra.Wait(ctx, w.retry, 0) {
			return
		}
	}
}

func (w *OptionsWorker) connect(ctx context.Context) error {
	dialer := websocket.Dialer{HandshakeTimeout: handshakeTimeout}
	conn, _, err := dialer.DialContext(ctx, w.streamURL(), nil)
	if err != nil {
		return fmt.Errorf("dial failed: %w", err)
	}

	w.mu.Lock()
	w.conn = conn
	w.mu.Unlock()
	infra.GlobalMetrics.IncrementConnections()

	slog.Info("options stream connected",
		slog.String("first", w.symbols[0]),
		slog.String("last", w.symbols[len(w.symbols)-1]),
		slog.Int("symbols", len(w.symbols)))
	return nil
}

func (w *OptionsWorker) readLoop(ctx context.Context) {
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
				slog.Warn("options stream read failed",
					slog.String("first", w.symbols[0]),
					slog.String("last", w.symbols[len(w.symbols)-1]),
					slog.Any("error", err))
			}
			return
		}
		w.handleMessage(msg)
	}
}

func (w *OptionsWorker) handleMessage(msg []byte) {
	var env streamEnvelope
	if json.Unmarshal(msg, &env) != nil || len(env.Data) == 0 {
		return
	}

	var tick tickerFrame
	if json.Unmarshal(env.Data, &tick) != nil || tick.Symbol == "" {
		return
	}

	infra.GlobalMetrics.RecordMessage()
	w.quotes.Upsert(tick.Symbol, tick)
}

func (w *OptionsWorker) closeConnection() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.conn != nil {
		w.conn.Close()
		w.conn = nil
	}
}

// Disconnect stops the loop and waits for it to exit.
func (w *OptionsWorker) Disconnect() {
	if w.cancel != nil {
		w.cancel()
	}
	w.closeConnection()
	w.wg.Wait()
}
