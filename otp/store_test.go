package otp

import (
	"errors"
	"testing"
	"time"
)

func TestMemoryStoreVerifyConsumesCode(t *testing.T) {
	s := NewMemoryStore()
	if err := s.Set("9876543210", "482913", DefaultTTL); err != nil {
		t.Fatalf("set: %v", err)
	}

	if err := s.Verify("9876543210", "482913"); err != nil {
		t.Fatalf("first verify: %v", err)
	}

	// a second verify must fail: the code is single-use
	if err := s.Verify("9876543210", "482913"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound on reuse, got %v", err)
	}
}

func TestMemoryStoreMismatch(t *testing.T) {
	s := NewMemoryStore()
	s.Set("9876543210", "482913", DefaultTTL)

	if err := s.Verify("9876543210", "000000"); !errors.Is(err, ErrMismatch) {
		t.Fatalf("expected ErrMismatch, got %v", err)
	}

	// the right code still works after a failed attempt
	if err := s.Verify("9876543210", "482913"); err != nil {
		t.Fatalf("verify after mismatch: %v", err)
	}
}

func TestMemoryStoreTooManyAttempts(t *testing.T) {
	s := NewMemoryStore()
	s.Set("9876543210", "482913", DefaultTTL)

	var err error
	for i := 0; i < maxAttempts; i++ {
		err = s.Verify("9876543210", "000000")
	}
	if !errors.Is(err, ErrTooManyTries) {
		t.Fatalf("expected ErrTooManyTries, got %v", err)
	}

	// the entry is gone, even for the correct code
	if err := s.Verify("9876543210", "482913"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after lockout, got %v", err)
	}
}

func TestMemoryStoreExpiry(t *testing.T) {
	s := NewMemoryStore()
	s.Set("9876543210", "482913", -time.Second)

	if err := s.Verify("9876543210", "482913"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for expired code, got %v", err)
	}
}

func TestMemoryStoreUnknownPhone(t *testing.T) {
	s := NewMemoryStore()
	if err := s.Verify("9000000000", "123456"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestMemoryStoreSetOverwrites(t *testing.T) {
	s := NewMemoryStore()
	s.Set("9876543210", "111111", DefaultTTL)
	s.Set("9876543210", "222222", DefaultTTL)

	if err := s.Verify("9876543210", "111111"); !errors.Is(err, ErrMismatch) {
		t.Fatalf("old code should not verify, got %v", err)
	}
	if err := s.Verify("9876543210", "222222"); err != nil {
		t.Fatalf("latest code should verify: %v", err)
	}
}
