package mq

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"majdoorsathi/models"
	"majdoorsathi/rdx"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func TestEmitPublishes(t *testing.T) {
	mr := miniredis.RunT(t)
	rdx.Conn = redis.NewClient(&redis.Options{Addr: mr.Addr()})

	sub := rdx.Conn.Subscribe(context.Background(), Channel)
	defer sub.Close()
	if _, err := sub.Receive(context.Background()); err != nil {
		t.Fatalf("subscribe: %v", err)
	}

	Emit(context.Background(), "created", models.Index{
		EntityType: "jobs", EntityId: "j1", Title: "Mason needed",
	})

	select {
	case msg := <-sub.Channel():
		var idx models.Index
		if err := json.Unmarshal([]byte(msg.Payload), &idx); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		if idx.Method != "created" || idx.EntityId != "j1" {
			t.Fatalf("unexpected event %+v", idx)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("no event received")
	}
}

func TestEmitSwallowsPublishError(t *testing.T) {
	mr := miniredis.RunT(t)
	rdx.Conn = redis.NewClient(&redis.Options{Addr: mr.Addr()})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// fire-and-forget: a dead context must not panic or surface an error
	Emit(ctx, "created", models.Index{EntityType: "jobs", EntityId: "j2"})
}
