package otp

import (
	"testing"
	"time"

	"majdoorsathi/rdx"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestRedisStore(t *testing.T) *RedisStore {
	t.Helper()
	mr := miniredis.RunT(t)
	rdx.Conn = redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return NewRedisStore()
}

func TestRedisStoreConsumesOnSuccess(t *testing.T) {
	s := newTestRedisStore(t)

	if err := s.Set("9876543210", "123456", time.Minute); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := s.Verify("9876543210", "123456"); err != nil {
		t.Fatalf("verify: %v", err)
	}
	if err := s.Verify("9876543210", "123456"); err != ErrNotFound {
		t.Fatalf("second verify = %v, want ErrNotFound", err)
	}
}

func TestRedisStoreMismatchThenSuccess(t *testing.T) {
	s := newTestRedisStore(t)

	if err := s.Set("9876543210", "123456", time.Minute); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := s.Verify("9876543210", "000000"); err != ErrMismatch {
		t.Fatalf("verify wrong code = %v, want ErrMismatch", err)
	}
	if err := s.Verify("9876543210", "123456"); err != nil {
		t.Fatalf("verify after mismatch: %v", err)
	}
}

func TestRedisStoreLockout(t *testing.T) {
	s := newTestRedisStore(t)

	if err := s.Set("9876543210", "123456", time.Minute); err != nil {
		t.Fatalf("set: %v", err)
	}
	for i := 0; i < maxAttempts-1; i++ {
		if err := s.Verify("9876543210", "000000"); err != ErrMismatch {
			t.Fatalf("attempt %d = %v, want ErrMismatch", i+1, err)
		}
	}
	if err := s.Verify("9876543210", "000000"); err != ErrTooManyTries {
		t.Fatalf("final attempt = %v, want ErrTooManyTries", err)
	}
	// the lockout also burns the code
	if err := s.Verify("9876543210", "123456"); err != ErrNotFound {
		t.Fatalf("verify after lockout = %v, want ErrNotFound", err)
	}
}

func TestRedisStoreSetResetsAttempts(t *testing.T) {
	s := newTestRedisStore(t)

	if err := s.Set("9876543210", "123456", time.Minute); err != nil {
		t.Fatalf("set: %v", err)
	}
	for i := 0; i < maxAttempts-1; i++ {
		s.Verify("9876543210", "000000")
	}
	if err := s.Set("9876543210", "654321", time.Minute); err != nil {
		t.Fatalf("re-set: %v", err)
	}
	if err := s.Verify("9876543210", "654321"); err != nil {
		t.Fatalf("verify fresh code: %v", err)
	}
}
