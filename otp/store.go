// Package otp holds one-time codes between send and verify. The memory store
// matches the original single-instance behavior: codes live in process memory
// and are lost on restart. The redis store is the multi-instance option.
package otp

import (
	"errors"
	"sync"
	"time"
)

const (
	DefaultTTL  = 5 * time.Minute
	maxAttempts = 5
)

var (
	ErrNotFound     = errors.New("otp not found or expired")
	ErrMismatch     = errors.New("otp does not match")
	ErrTooManyTries = errors.New("too many incorrect attempts")
)

// Store saves a code per phone number and verifies it exactly once: a
// successful Verify consumes the code.
type Store interface {
	Set(phone, code string, ttl time.Duration) error
	Verify(phone, code string) error
}

type memoryEntry struct {
	code      string
	expiresAt time.Time
	attempts  int
}

// MemoryStore is a mutex-guarded in-process map with lazy expiry.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]*memoryEntry
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string]*memoryEntry)}
}

func (s *MemoryStore) Set(phone, code string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[phone] = &memoryEntry{
		code:      code,
		expiresAt: time.Now().Add(ttl),
	}
	return nil
}

func (s *MemoryStore) Verify(phone, code string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[phone]
	if !ok || time.Now().After(e.expiresAt) {
		delete(s.entries, phone)
		return ErrNotFound
	}
	if e.code != code {
		e.attempts++
		if e.attempts >= maxAttempts {
			delete(s.entries, phone)
			return ErrTooManyTries
		}
		return ErrMismatch
	}
	// consumed on success
	delete(s.entries, phone)
	return nil
}
