// Package remote is the client for the document-ingestion service (an R2R-compatible
// HTTP API) that grain synchronizes into.
//
// The package exposes a Client interface so that the sync engine receives the client
// explicitly and tests can substitute core/remote/mocks. HTTPClient is the production
// implementation.
//
// # Endpoints
//
//   - POST {base}/{version}/ingest_files: create documents (multipart upload).
//   - POST {base}/{version}/update_files: replace existing documents.
//   - GET  {base}/{version}/documents_overview: list documents and their ingestion status.
//   - POST {base}/{version}/login: exchange credentials for a bearer token.
//
// Bulk calls take a []File. Each File carries the document ID, the payload location and
// the metadata of one item, so the parallel document_ids/metadatas/files sequences sent
// on the wire are always index-aligned.
package remote
