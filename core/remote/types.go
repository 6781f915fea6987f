package remote

import (
	"context"
	"encoding/json"
	"fmt"
)

// Client defines the operations grain needs from the ingestion service.
type Client interface {
	// IngestFiles creates one document per file.
	IngestFiles(ctx context.Context, files []File) (*Response, error)
	// UpdateFiles replaces the content and metadata of existing documents.
	UpdateFiles(ctx context.Context, files []File) (*Response, error)
	// DocumentsOverview lists documents. A nil ids lists everything, paged by
	// offset and limit; otherwise only the given documents are returned.
	DocumentsOverview(ctx context.Context, ids []string, offset, limit int) (*OverviewPage, error)
	// Login authenticates the client for subsequent calls.
	Login(ctx context.Context, email, password string) (*Token, error)
}

// File is one entry of a bulk ingest or update call.
type File struct {
	// DocumentID is the identifier the document is stored under.
	DocumentID string
	// Location is where the payload bytes are read from.
	Location string
	// Metadata is encoded as one element of the metadatas array.
	Metadata any
}

// Document is one entry of a documents overview.
type Document struct {
	ID              string         `json:"id,omitempty"`
	DocumentID      string         `json:"document_id,omitempty"`
	IngestionStatus string         `json:"ingestion_status,omitempty"`
	Status          string         `json:"status,omitempty"`
	Title           string         `json:"title,omitempty"`
	Version         string         `json:"version,omitempty"`
	Metadata        map[string]any `json:"metadata,omitempty"`
	CreatedAt       string         `json:"created_at,omitempty"`
	UpdatedAt       string         `json:"updated_at,omitempty"`
}

// Key returns the document identifier, whichever field the service filled in.
func (d Document) Key() string {
	if d.ID != "" {
		return d.ID
	}
	return d.DocumentID
}

// StatusValue returns the ingestion status, whichever field the service filled in.
func (d Document) StatusValue() string {
	if d.IngestionStatus != "" {
		return d.IngestionStatus
	}
	return d.Status
}

// OverviewPage is the body of a documents overview response.
type OverviewPage struct {
	Results      []Document `json:"results"`
	TotalEntries int        `json:"total_entries,omitempty"`
}

// Response is the body of an ingest or update response.
type Response struct {
	Results json.RawMessage `json:"results,omitempty"`
}

// Token is the result of a successful login.
type Token struct {
	AccessToken string `json:"token"`
	TokenType   string `json:"token_type"`
}

// APIError is returned when the service answers with a non-2xx status.
type APIError struct {
	StatusCode int
	Endpoint   string
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%s: unexpected status %d", e.Endpoint, e.StatusCode)
	}
	return fmt.Sprintf("%s: unexpected status %d: %s", e.Endpoint, e.StatusCode, e.Message)
}
