package infra

import (
	"sync"
	"testing"
)

func TestMetrics_Counters(t *testing.T) {
	m := &Metrics{}

	m.RecordMessage()
	m.RecordMessage()
	m.RecordReconnect()
	m.RecordSnapshot(3, 2)
	m.RecordError()
	m.IncrementConnections()
	m.IncrementConnections()
	m.DecrementConnections()
	m.SetUniverseSize(1200)

	snap := m.Snapshot()
	if snap.MessagesReceived != 2 {
		t.Errorf("messages = %d, want 2", snap.MessagesReceived)
	}
	if snap.Reconnects != 1 {
		t.Errorf("reconnects = %d, want 1", snap.Reconnects)
	}
	if snap.RowsSaved != 3 || snap.RowsDropped != 2 {
		t.Errorf("rows saved/dropped = %d/%d, want 3/2", snap.RowsSaved, snap.RowsDropped)
	}
	if snap.ErrorsTotal != 1 {
		t.Errorf("errors = %d, want 1", snap.ErrorsTotal)
	}
	if snap.ActiveConnections != 1 {
		t.Errorf("connections = %d, want 1", snap.ActiveConnections)
	}
	if snap.UniverseSize != 1200 {
		t.Errorf("universe = %d, want 1200", snap.UniverseSize)
	}
}

func TestMetrics_Reset(t *testing.T) {
	m := &Metrics{}
	m.RecordMessage()
	m.RecordSnapshot(5, 1)
	m.Reset()

	snap := m.Snapshot()
	if snap.MessagesReceived != 0 || snap.RowsSaved != 0 || snap.RowsDropped != 0 {
		t.Errorf("metrics not reset: %+v", snap)
	}
}

func TestMetrics_ConcurrentAccess(t *testing.T) {
	m := &Metrics{}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 1000; j++ {
				m.RecordMessage()
			}
		}()
	}
	wg.Wait()

	if got := m.Snapshot().MessagesReceived; got != 8000 {
		t.Errorf("messages = %d, want 8000", got)
	}
}
