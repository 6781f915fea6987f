// Package payload stores the transient bytes that a synchronization pass uploads.
//
// Staged items never carry their payload in memory; they carry a location that a
// Store knows how to open, write and remove. Two backends exist:
//
//   - FileStore: a scratch directory on the local filesystem.
//   - ObjectStore: a bucket prefix on S3/MinIO through core/storage.
//
// Locations that were not produced by a store (for example a user's own file that a
// source only references) are plain filesystem paths and are opened as such by both
// backends.
//
// # Usage
//
//	store, err := payload.NewScratchFileStore("")
//	loc := store.Location(uuid.NewString() + ".html")
//	err = store.Write(ctx, loc, body)
//	defer store.Close()
package payload
