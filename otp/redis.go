package otp

import (
	"time"

	"majdoorsathi/rdx"

	"github.com/redis/go-redis/v9"
)

// RedisStore keeps codes in Redis so multiple server instances share them.
// This departs from the original process-local behavior; it is only used
// when OTP_STORE=redis.
type RedisStore struct{}

func NewRedisStore() *RedisStore {
	return &RedisStore{}
}

func key(phone string) string { return "otp:" + phone }

func attemptsKey(phone string) string { return "otp:attempts:" + phone }

func (s *RedisStore) Set(phone, code string, ttl time.Duration) error {
	rdx.RdxDel(attemptsKey(phone))
	return rdx.SetWithExpiry(key(phone), code, ttl)
}

func (s *RedisStore) Verify(phone, code string) error {
	stored, err := rdx.RdxGet(key(phone))
	if err == redis.Nil {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	if stored != code {
		n, err := rdx.RdxIncr(attemptsKey(phone))
		if err != nil {
			return err
		}
		if n == 1 {
			rdx.RdxExpire(attemptsKey(phone), DefaultTTL)
		}
		if n >= maxAttempts {
			rdx.RdxDel(key(phone))
			rdx.RdxDel(attemptsKey(phone))
			return ErrTooManyTries
		}
		return ErrMismatch
	}

	// GETDEL consumes the code; under concurrent verifies only one caller
	// receives it, the rest see it as already gone.
	consumed, err := rdx.RdxGetDel(key(phone))
	if err == redis.Nil {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	if consumed != code {
		return ErrMismatch
	}

	rdx.RdxDel(attemptsKey(phone))
	return nil
}
