// Package directory is the sync source for files in a local directory, with an
// fsnotify watcher for re-syncing when they change.
//
// Files are matched by extension (txt and md by default), optionally recursively, and
// identified by the SHA-256 of their content. They are staged by reference: the engine
// uploads them from where they are and never deletes them.
package directory
