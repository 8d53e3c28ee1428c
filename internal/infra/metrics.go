package infra

import (
	"sync/atomic"
	"time"
)

// Metrics provides lightweight observability without external dependencies.
// Uses atomic operations for thread-safety.
type Metrics struct {
	// Counters
	messagesReceived atomic.Uint64
	reconnects       atomic.Uint64
	rowsSaved        atomic.Uint64
	rowsDropped      atomic.Uint64
	errorsTotal      atomic.Uint64

	// Gauges
	activeConnections atomic.Int32
	universeSize      atomic.Int32
}

// GlobalMetrics is the singleton metrics instance.
var GlobalMetrics = &Metrics{}

// RecordMessage records one inbound stream message.
func (m *Metrics) RecordMessage() {
	m.messagesReceived.Add(1)
}

// RecordReconnect records one stream reconnect attempt.
func (m *Metrics) RecordReconnect() {
	m.reconnects.Add(1)
}

// RecordSnapshot records the outcome of one snapshot pass.
func (m *Metrics) RecordSnapshot(saved, dropped int) {
	m.rowsSaved.Add(uint64(saved))
	m.rowsDropped.Add(uint64(dropped))
}

// RecordError records an error occurrence.
func (m *Metrics) RecordError() {
	m.errorsTotal.Add(1)
}

// IncrementConnections increments active connections by 1.
func (m *Metrics) IncrementConnections() {
	m.activeConnections.Add(1)
}

// DecrementConnections decrements active connections by 1.
func (m *Metrics) DecrementConnections() {
	m.activeConnections.Add(-1)
}

// SetUniverseSize sets the current instrument universe size.
func (m *Metrics) SetUniverseSize(n int32) {
	m.universeSize.Store(n)
}

// MetricsSnapshot is a point-in-time view of all metrics.
type MetricsSnapshot struct {
	MessagesReceived  uint64
	Reconnects        uint64
	RowsSaved         uint64
	RowsDropped       uint64
	ErrorsTotal       uint64
	ActiveConnections int32
	UniverseSize      int32
	Timestamp         time.Time
}

// Snapshot returns current metrics as a snapshot.
func (m *Metrics) Snapshot() MetricsSnapshot {
	return MetricsSnapshot{
		MessagesReceived:  m.messagesReceived.Load(),
		Reconnects:        m.reconnects.Load(),
		RowsSaved:         m.rowsSaved.Load(),
		RowsDropped:       m.rowsDropped.Load(),
		ErrorsTotal:       m.errorsTotal.Load(),
		ActiveConnections: m.activeConnections.Load(),
		UniverseSize:      m.universeSize.Load(),
		Timestamp:         time.Now(),
	}
}

// Reset clears all metrics (for testing).
func (m *Metrics) Reset() {
	m.messagesReceived.Store(0)
	m.reconnects.Store(0)
	m.rowsSaved.Store(0)
	m.rowsDropped.Store(0)
	m.errorsTotal.Store(0)
	m.activeConnections.Store(0)
	m.universeSize.Store(0)
}
