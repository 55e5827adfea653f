package service

import (
	"fmt"
	"sync"
)

// keyedMutex serializes lifecycle operations per target aggregate. The
// database transaction is the correctness guard; this keeps concurrent
// cascades against the same galerie or user from interleaving their
// read-then-write phases inside one process.
type keyedMutex struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newKeyedMutex() *keyedMutex {
	return &keyedMutex{locks: make(map[string]*sync.Mutex)}
}

func (k *keyedMutex) lock(key string) func() {
	k.mu.Lock()
	m, ok := k.locks[key]
	if !ok {
		m = &sync.Mutex{}
		k.locks[key] = m
	}
	k.mu.Unlock()

	m.Lock()
	return m.Unlock
}

func galerieKey(galerieID uint) string {
	return fmt.Sprintf("galerie:%d", galerieID)
}

func userKey(userID uint) string {
	return fmt.Sprintf("user:%d", userID)
}
