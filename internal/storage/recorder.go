package storage

import (
	"context"
	"io"
	"sync"
)

// ObjectRef identifies one stored blob.
type ObjectRef struct {
	Bucket string
	Key    string
}

// Recorder is an in-memory ObjectStore used by tests. It remembers every
// put and delete and can be told to fail deletions.
type Recorder struct {
	mu      sync.Mutex
	Puts    []ObjectRef
	Deletes []ObjectRef
	FailErr error
}

func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) Put(ctx context.Context, bucket, key string, body io.Reader, contentType string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.FailErr != nil {
		return r.FailErr
	}
	r.Puts = append(r.Puts, ObjectRef{Bucket: bucket, Key: key})
	return nil
}

func (r *Recorder) Delete(ctx context.Context, bucket, key string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.FailErr != nil {
		return r.FailErr
	}
	r.Deletes = append(r.Deletes, ObjectRef{Bucket: bucket, Key: key})
	return nil
}

func (r *Recorder) Deleted(bucket, key string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, d := range r.Deletes {
		if d.Bucket == bucket && d.Key == key {
			return true
		}
	}
	return false
}
