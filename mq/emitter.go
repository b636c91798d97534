package mq

import (
	"context"
	"encoding/json"
	"log"

	"majdoorsathi/models"
	"majdoorsathi/rdx"
)

const Channel = "indexing-events"

// Emit publishes an indexing event to the Redis channel. Fire-and-forget:
// handlers never fail because indexing did.
func Emit(ctx context.Context, eventName string, content models.Index) {
	content.Method = eventName

	data, err := json.Marshal(content)
	if err != nil {
		log.Printf("[mq] marshal event: %v", err)
		return
	}

	if err := rdx.Conn.Publish(ctx, Channel, data).Err(); err != nil {
		log.Printf("[mq] publish %s: %v", eventName, err)
	}
}
