package ingest

import (
	"context"

	"github.com/doughepi/grain/core/remote"
)

// Status is the ingestion status of a remote document.
type Status string

const (
	// StatusAbsent is the zero value: the remote store does not know the document.
	StatusAbsent Status = ""
	// StatusProcessing means the service is still ingesting the document.
	StatusProcessing Status = "processing"
	// StatusSuccess means ingestion completed.
	StatusSuccess Status = "success"
	// StatusFailed means ingestion failed on the service side.
	StatusFailed Status = "failed"
	// StatusUnknown is used for a present document that reported no status.
	StatusUnknown Status = "unknown"
)

// Terminal reports whether the status will not change without a new upload.
func (s Status) Terminal() bool {
	return s != StatusAbsent && s != StatusProcessing
}

// Snapshotter reads the remote store's current document state.
type Snapshotter interface {
	// Snapshot returns the status of every known document when ids is nil, or of
	// exactly the given ids otherwise. Documents the store does not know are absent
	// from the map.
	Snapshot(ctx context.Context, ids []string) (map[string]Status, error)
}

// RemoteSnapshotter implements Snapshotter over the documents overview endpoint.
type RemoteSnapshotter struct {
	client   remote.Client
	pageSize int
}

// NewRemoteSnapshotter creates a snapshotter that pages through listings pageSize
// documents at a time.
func NewRemoteSnapshotter(client remote.Client, pageSize int) *RemoteSnapshotter {
	if pageSize < 1 {
		pageSize = 100
	}
	return &RemoteSnapshotter{client: client, pageSize: pageSize}
}

// Snapshot implements Snapshotter. Errors are returned unwrapped; the engine decides
// whether they are fatal.
func (s *RemoteSnapshotter) Snapshot(ctx context.Context, ids []string) (map[string]Status, error) {
	known := make(map[string]Status)
	if ids == nil {
		return known, s.listAll(ctx, known)
	}

	for start := 0; start < len(ids); start += s.pageSize {
		end := min(start+s.pageSize, len(ids))
		chunk := ids[start:end]
		page, err := s.client.DocumentsOverview(ctx, chunk, 0, len(chunk))
		if err != nil {
			return nil, err
		}
		collect(known, page)
	}
	return known, nil
}

// listAll pages through the full listing. The offset advances by what the service
// actually returned, so a server-side cap on limit does not end the listing early.
// Paging stops at total_entries when the service reports it, otherwise at a short
// page, and always at an empty page or one that adds no new documents.
func (s *RemoteSnapshotter) listAll(ctx context.Context, known map[string]Status) error {
	offset := 0
	for {
		page, err := s.client.DocumentsOverview(ctx, nil, offset, s.pageSize)
		if err != nil {
			return err
		}
		if page == nil || len(page.Results) == 0 {
			return nil
		}

		before := len(known)
		collect(known, page)
		offset += len(page.Results)

		if len(known) == before {
			return nil
		}
		if page.TotalEntries > 0 {
			if offset >= page.TotalEntries {
				return nil
			}
			continue
		}
		if len(page.Results) < s.pageSize {
			return nil
		}
	}
}

func collect(known map[string]Status, page *remote.OverviewPage) {
	if page == nil {
		return
	}
	for _, doc := range page.Results {
		id := doc.Key()
		if id == "" {
			continue
		}
		status := Status(doc.StatusValue())
		if status == StatusAbsent {
			status = StatusUnknown
		}
		known[id] = status
	}
}
