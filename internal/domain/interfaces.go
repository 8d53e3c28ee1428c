package domain

import "context"

// MetadataClient defines the instrument-universe discovery boundary.
type MetadataClient interface {
	// FetchUniverse returns the ordered list of tradable option symbols
	// filtered to the configured underlying allow-list. Fails with a
	// TransportError on network/parse failure or an EmptyResultError when
	// the exchange reports zero instruments.
	FetchUniverse(ctx context.Context) ([]string, error)
}

// StreamWorker defines the interface for exchange WebSocket connectors
type StreamWorker interface {
	Connect(ctx context.Context) error
	Disconnect()
}

// SnapshotStore defines the persistence boundary for snapshot rows.
type SnapshotStore interface {
	// SaveSnapshots appends one batch of rows. Rows are never updated.
	SaveSnapshots(rows []OptionSnapshot) error
	// MaxSnapshotIndex returns the largest persisted index, 0 when empty.
	MaxSnapshotIndex() (uint64, error)
}
