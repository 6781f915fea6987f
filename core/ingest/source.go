package ingest

import "context"

// Candidate is one item produced by a Source.
type Candidate struct {
	// Key is the source-specific unique characteristic the document ID is derived from.
	Key string
	// Path references an existing payload. When set, Data is ignored and the payload
	// is never cleaned up.
	Path string
	// Data is the payload to persist to scratch storage when Path is empty.
	Data []byte
	// Extension is the file extension of a persisted payload, without the dot.
	Extension string
	// Label is a short display name. It defaults to Key.
	Label string
	// Metadata is adapter-defined. The source tag is added by the engine.
	Metadata Metadata
}

// Source produces candidates for one synchronization pass.
type Source interface {
	// Name is the source tag stamped on every item.
	Name() string
	// Fetch returns every candidate the source currently has.
	Fetch(ctx context.Context) ([]Candidate, error)
}
