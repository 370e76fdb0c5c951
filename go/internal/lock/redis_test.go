package lock

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

func TestRedisLock(t *testing.T) {
	addr := os.Getenv("TREBOL_TEST_REDIS")
	if addr == "" {
		t.Skip("TREBOL_TEST_REDIS not set")
	}
	client := redis.NewClient(&redis.Options{Addr: addr})
	defer client.Close()

	ctx := context.Background()
	l := NewRedisLock(client, time.Second, 1, 5*time.Millisecond)
	key := "trebol:test:" + newToken()

	token, ok, err := l.Acquire(ctx, key)
	if err != nil || !ok {
		t.Fatalf("acquire: ok=%v err=%v", ok, err)
	}
	if _, ok, _ := l.Acquire(ctx, key); ok {
		t.Fatal("expected second acquire to fail while held")
	}
	if err := l.Release(ctx, key, "stale"); err != nil {
		t.Fatalf("release with stale token: %v", err)
	}
	if _, ok, _ := l.Acquire(ctx, key); ok {
		t.Fatal("stale token must not release the key")
	}
	if err := l.Release(ctx, key, token); err != nil {
		t.Fatalf("release: %v", err)
	}
	if _, ok, _ := l.Acquire(ctx, key); !ok {
		t.Fatal("expected acquire after release")
	}
}
