// Package server holds the HTTP server configuration.
//
// The `serve` command starts a Fiber app that exposes sync passes, the remote document
// overview and the pass history. This package defines its listen port, the optional API
// key checked by core/middleware/auth, and the directories the directory sync endpoint
// may read.
package server
