// Package syncapi exposes sync passes, the remote documents overview and the pass
// history over HTTP.
//
// Routes:
//   - POST /sync/directory runs a directory pass. Identical concurrent requests are
//     collapsed into a single pass.
//   - GET /documents proxies the remote documents overview.
//   - GET /history lists recorded passes.
package syncapi
