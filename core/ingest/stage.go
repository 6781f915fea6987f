package ingest

import (
	"context"
	"sync"

	"github.com/doughepi/grain/core/payload"

	"github.com/cockroachdb/errors"
)

// StagedStore accumulates items for one pass. It is safe for concurrent use.
//
// Items with the same document ID are all kept; dedup happens only against the
// remote state.
type StagedStore struct {
	source string
	store  payload.Store

	mu    sync.Mutex
	items []DataItem
}

// NewStagedStore creates a store that stamps every item with the given source tag and
// persists payloads through store.
func NewStagedStore(source string, store payload.Store) *StagedStore {
	return &StagedStore{source: source, store: store}
}

// Source returns the source tag.
func (s *StagedStore) Source() string {
	return s.source
}

// StageReference records an item whose payload already exists at location.
func (s *StagedStore) StageReference(key, location string, md Metadata, label string) DataItem {
	item := NewDataItem(key, location, s.stamp(md), label, false)
	s.add(item)
	return item
}

// StageAndPersist writes data to location and then records the item. If the write
// fails nothing is staged.
func (s *StagedStore) StageAndPersist(ctx context.Context, key, location string, data []byte, md Metadata, label string) (DataItem, error) {
	if err := s.store.Write(ctx, location, data); err != nil {
		return DataItem{}, errors.Mark(errors.Wrapf(err, "failed to persist payload for %q", key), ErrPayloadWrite)
	}
	item := NewDataItem(key, location, s.stamp(md), label, true)
	s.add(item)
	return item, nil
}

// Drain returns all staged items in insertion order and empties the store.
func (s *StagedStore) Drain() []DataItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	items := s.items
	s.items = nil
	return items
}

// Len returns the number of staged items.
func (s *StagedStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

func (s *StagedStore) add(item DataItem) {
	s.mu.Lock()
	s.items = append(s.items, item)
	s.mu.Unlock()
}

// stamp puts the source tag first. An adapter-provided source key overrides the value
// but not the position.
func (s *StagedStore) stamp(md Metadata) Metadata {
	return NewMetadata(s.source).Merge(md)
}
