// Package storage provides the client-side key-value stores used for guest
// identity, cached profiles, saved locations and the auth session.
package storage

import (
	"context"

	"gahana/internal/domain/service"
	"gahana/internal/errors"

	"gocloud.dev/blob"
	"gocloud.dev/blob/fileblob"
	"gocloud.dev/blob/memblob"
	"gocloud.dev/gcerrors"
)

const jsonSuffix = ".json"

// blobStore keeps each key as one JSON object in a bucket.
type blobStore struct {
	bucket *blob.Bucket
	prefix string
}

// NewBlobStore wraps an open bucket. The store owns the bucket and closes it on Close.
func NewBlobStore(bucket *blob.Bucket, prefix string) service.KVStore {
	return &blobStore{bucket: bucket, prefix: prefix}
}

// OpenFileStore stores keys as files under dir, creating it when missing.
func OpenFileStore(dir, prefix string) (service.KVStore, error) {
	bucket, err := fileblob.OpenBucket(dir, &fileblob.Options{CreateDir: true})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open state directory %s", dir)
	}

	return NewBlobStore(bucket, prefix), nil
}

// NewMemoryStore keeps keys in process memory only.
func NewMemoryStore() service.KVStore {
	return NewBlobStore(memblob.OpenBucket(nil), "")
}

func (s *blobStore) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := s.bucket.ReadAll(ctx, s.objectKey(key))
	if gcerrors.Code(err) == gcerrors.NotFound {
		return nil, service.ErrKeyNotFound
	}
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read %s", key)
	}

	return data, nil
}

func (s *blobStore) Set(ctx context.Context, key string, value []byte) error {
	err := s.bucket.WriteAll(ctx, s.objectKey(key), value, &blob.WriterOptions{ContentType: "application/json"})

	return errors.Wrapf(err, "failed to write %s", key)
}

func (s *blobStore) Delete(ctx context.Context, key string) error {
	err := s.bucket.Delete(ctx, s.objectKey(key))
	if err == nil || gcerrors.Code(err) == gcerrors.NotFound {
		return nil
	}

	return errors.Wrapf(err, "failed to delete %s", key)
}

func (s *blobStore) Close() error {
	return errors.WithStack(s.bucket.Close())
}

func (s *blobStore) objectKey(key string) string {
	return s.prefix + key + jsonSuffix
}
