package storage

import (
	"context"
	"io"
)

// ObjectStore is the blob-side collaborator of the lifecycle engine. Rows
// in the relational store are the source of truth; deletions here are
// best-effort and must never roll back committed row deletions.
type ObjectStore interface {
	Put(ctx context.Context, bucket, key string, body io.Reader, contentType string) error
	Delete(ctx context.Context, bucket, key string) error
}
