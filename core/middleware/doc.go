// Package middleware contains HTTP middleware for the Fiber application.
//
// # Components
//
//   - auth: API key validation (X-API-Key) protecting the sync API.
//   - rayid: a unique Request ID (RayID) for every incoming request, stored in the
//     context for logger.WithRayID and echoed in the X-Ray-ID response header.
//
// Both are registered globally by the `serve` command; rayid first so that every log
// line of a request carries its RayID.
package middleware
