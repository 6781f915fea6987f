// Package storage wraps the MinIO Go client for the object-storage payload backend.
//
// core/payload.ObjectStore keeps pass payloads in an S3 bucket or a self-hosted MinIO
// instance through the Client interface, and tests swap in core/storage/mocks.
//
// # Operations
//
//   - BucketExists / MakeBucket: make sure the scratch bucket is there.
//   - PutObject / GetObject: write a payload and stream it back for upload.
//   - ListObjects: find payloads left behind by interrupted passes.
//   - RemoveObject / RemoveObjects: clean up payloads after a pass.
//
// # Usage
//
//	client, err := storage.NewClient(cfg.Storage)
//	store := payload.NewObjectStore(client, cfg.Storage.Bucket, cfg.Storage.Prefix)
//	err = store.EnsureBucket(ctx)
package storage
