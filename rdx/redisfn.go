package rdx

import (
	"os"
	"time"

	"majdoorsathi/globals"

	"github.com/redis/go-redis/v9"
)

// Conn is the shared Redis client. Connect must run before any helper is
// used.
var Conn *redis.Client

func Connect() error {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}
	Conn = redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: os.Getenv("REDIS_PASSWORD"),
	})
	return Conn.Ping(globals.Ctx).Err()
}

func RdxGet(key string) (string, error) {
	return Conn.Get(globals.Ctx, key).Result()
}

func RdxSet(key, value string) error {
	return Conn.Set(globals.Ctx, key, value, 0).Err()
}

func SetWithExpiry(key, value string, ttl time.Duration) error {
	return Conn.Set(globals.Ctx, key, value, ttl).Err()
}

func RdxDel(key string) error {
	return Conn.Del(globals.Ctx, key).Err()
}

// RdxGetDel reads and removes a key in one round trip, so concurrent
// readers cannot both observe the value.
func RdxGetDel(key string) (string, error) {
	return Conn.GetDel(globals.Ctx, key).Result()
}

func RdxIncr(key string) (int64, error) {
	return Conn.Incr(globals.Ctx, key).Result()
}

func RdxExpire(key string, ttl time.Duration) error {
	return Conn.Expire(globals.Ctx, key, ttl).Err()
}

func RdxHset(hash, field, value string) error {
	return Conn.HSet(globals.Ctx, hash, field, value).Err()
}

func RdxHget(hash, field string) (string, error) {
	return Conn.HGet(globals.Ctx, hash, field).Result()
}

func RdxHdel(hash, field string) (int64, error) {
	return Conn.HDel(globals.Ctx, hash, field).Result()
}
