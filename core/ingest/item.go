package ingest

import "github.com/doughepi/grain/core/remote"

// DataItem is one unit of content destined for the remote store.
type DataItem struct {
	// DocumentID is derived from the item's unique characteristic.
	DocumentID string
	// Location references the payload bytes.
	Location string
	// Metadata always starts with the source tag.
	Metadata Metadata
	// Label is a short human-readable name used in progress output.
	Label string
	// Owned is true when the payload was written by the pass and may be cleaned up.
	Owned bool
}

// NewDataItem builds an item for the given unique characteristic.
func NewDataItem(uniqueCharacteristic, location string, md Metadata, label string, owned bool) DataItem {
	if label == "" {
		label = uniqueCharacteristic
	}
	return DataItem{
		DocumentID: DeriveID(uniqueCharacteristic),
		Location:   location,
		Metadata:   md,
		Label:      label,
		Owned:      owned,
	}
}

// File converts the item into one entry of a bulk remote call.
func (d DataItem) File() remote.File {
	return remote.File{
		DocumentID: d.DocumentID,
		Location:   d.Location,
		Metadata:   d.Metadata,
	}
}

func files(items []DataItem) []remote.File {
	out := make([]remote.File, len(items))
	for i, item := range items {
		out[i] = item.File()
	}
	return out
}

func documentIDs(items []DataItem) []string {
	ids := make([]string, len(items))
	for i, item := range items {
		ids[i] = item.DocumentID
	}
	return ids
}
