package payload

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/doughepi/grain/core/storage"

	"github.com/minio/minio-go/v7"
)

// objectScheme marks locations that live in object storage.
const objectScheme = "s3://"

// ObjectStore keeps payloads in an S3/MinIO bucket under a key prefix.
// Locations it produces look like s3://bucket/prefix/name; any other location is
// treated as a local file so referenced user files can still be opened.
type ObjectStore struct {
	client storage.Client
	bucket string
	prefix string
	local  *FileStore
}

// NewObjectStore creates an object-storage payload store.
func NewObjectStore(client storage.Client, bucket, prefix string) *ObjectStore {
	return &ObjectStore{
		client: client,
		bucket: bucket,
		prefix: strings.Trim(prefix, "/"),
		local:  NewFileStore(""),
	}
}

// EnsureBucket creates the bucket if it does not exist yet.
func (s *ObjectStore) EnsureBucket(ctx context.Context) error {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket %s: %w", s.bucket, err)
	}
	if exists {
		return nil
	}
	if err := s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{}); err != nil {
		return fmt.Errorf("failed to create bucket %s: %w", s.bucket, err)
	}
	return nil
}

// Location implements Store.
func (s *ObjectStore) Location(name string) string {
	key := name
	if s.prefix != "" {
		key = path.Join(s.prefix, name)
	}
	return objectScheme + s.bucket + "/" + key
}

// Write implements Store.
func (s *ObjectStore) Write(ctx context.Context, location string, data []byte) error {
	bucket, key, ok := parseObjectLocation(location)
	if !ok {
		return s.local.Write(ctx, location, data)
	}
	opts := minio.PutObjectOptions{ContentType: contentType(key)}
	if _, err := s.client.PutObject(ctx, bucket, key, bytes.NewReader(data), int64(len(data)), opts); err != nil {
		return fmt.Errorf("failed to put %s: %w", location, err)
	}
	return nil
}

// Open implements Opener.
func (s *ObjectStore) Open(ctx context.Context, location string) (io.ReadCloser, error) {
	bucket, key, ok := parseObjectLocation(location)
	if !ok {
		return s.local.Open(ctx, location)
	}
	reader, err := s.client.GetObject(ctx, bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to get %s: %w", location, err)
	}
	return reader, nil
}

// Remove implements Store.
func (s *ObjectStore) Remove(ctx context.Context, location string) error {
	bucket, key, ok := parseObjectLocation(location)
	if !ok {
		return s.local.Remove(ctx, location)
	}
	if err := s.client.RemoveObject(ctx, bucket, key, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("failed to remove %s: %w", location, err)
	}
	return nil
}

// RemoveAll implements BatchRemover using the multi-object delete API.
// Locations outside the store's bucket fall back to one-at-a-time removal.
func (s *ObjectStore) RemoveAll(ctx context.Context, locations []string) map[string]error {
	failed := make(map[string]error)

	keyToLocation := make(map[string]string, len(locations))
	objectsCh := make(chan minio.ObjectInfo, len(locations))
	for _, location := range locations {
		bucket, key, ok := parseObjectLocation(location)
		if !ok || bucket != s.bucket {
			if err := s.Remove(ctx, location); err != nil {
				failed[location] = err
			}
			continue
		}
		keyToLocation[key] = location
		objectsCh <- minio.ObjectInfo{Key: key}
	}
	close(objectsCh)

	if len(keyToLocation) == 0 {
		return failed
	}

	for rerr := range s.client.RemoveObjects(ctx, s.bucket, objectsCh, minio.RemoveObjectsOptions{}) {
		if rerr.Err == nil {
			continue
		}
		location, ok := keyToLocation[rerr.ObjectName]
		if !ok {
			location = objectScheme + s.bucket + "/" + rerr.ObjectName
		}
		failed[location] = fmt.Errorf("failed to remove %s: %w", location, rerr.Err)
	}
	return failed
}

// Sweep removes payloads under the store's prefix that were last modified more than
// olderThan ago. Those are left behind by passes that never reached cleanup. It returns
// how many payloads were removed. A store without a prefix is never swept.
func (s *ObjectStore) Sweep(ctx context.Context, olderThan time.Duration) (int, error) {
	if s.prefix == "" {
		return 0, fmt.Errorf("refusing to sweep bucket %s without a prefix", s.bucket)
	}
	cutoff := time.Now().Add(-olderThan)

	// Cancelling stops the listing goroutine when an error ends the loop early.
	listCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	var stale []string
	opts := minio.ListObjectsOptions{Prefix: s.prefix + "/", Recursive: true}
	for obj := range s.client.ListObjects(listCtx, s.bucket, opts) {
		if obj.Err != nil {
			return 0, fmt.Errorf("failed to list %s/%s: %w", s.bucket, s.prefix, obj.Err)
		}
		if obj.LastModified.Before(cutoff) {
			stale = append(stale, objectScheme+s.bucket+"/"+obj.Key)
		}
	}
	if len(stale) == 0 {
		return 0, nil
	}

	failed := s.RemoveAll(ctx, stale)
	for location, err := range failed {
		return len(stale) - len(failed), fmt.Errorf("failed to sweep %d payloads, first %s: %w", len(failed), location, err)
	}
	return len(stale), nil
}

func parseObjectLocation(location string) (bucket, key string, ok bool) {
	rest, found := strings.CutPrefix(location, objectScheme)
	if !found {
		return "", "", false
	}
	bucket, key, found = strings.Cut(rest, "/")
	if !found || bucket == "" || key == "" {
		return "", "", false
	}
	return bucket, key, true
}

func contentType(key string) string {
	if ct := mime.TypeByExtension(filepath.Ext(key)); ct != "" {
		return ct
	}
	return "application/octet-stream"
}
