package chats

import (
	"encoding/json"
	"testing"
	"time"

	"majdoorsathi/models"
)

func TestHubRegisterBroadcastUnregister(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	defer hub.Stop()

	client := &Client{
		Send:   make(chan []byte, 10),
		Room:   "chat1",
		UserID: "u1",
	}
	hub.register <- client

	msg := models.Message{ChatID: "chat1", SenderID: "u2", Text: "hello test"}
	data, _ := json.Marshal(msg)
	hub.broadcast <- broadcastMsg{Room: "chat1", Data: data}

	select {
	case got := <-client.Send:
		if string(got) != string(data) {
			t.Fatalf("expected %s, got %s", data, got)
		}
	case <-time.After(1 * time.Second):
		t.Fatal("timeout waiting for message")
	}

	hub.unregister <- client
}

func TestHubBroadcastIsScopedToRoom(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	defer hub.Stop()

	inRoom := &Client{Send: make(chan []byte, 10), Room: "chat1", UserID: "u1"}
	otherRoom := &Client{Send: make(chan []byte, 10), Room: "chat2", UserID: "u2"}
	hub.register <- inRoom
	hub.register <- otherRoom

	hub.BroadcastMessage(models.Message{ChatID: "chat1", SenderID: "u3", Text: "only chat1"})

	select {
	case <-inRoom.Send:
	case <-time.After(1 * time.Second):
		t.Fatal("client in room never got the message")
	}

	select {
	case got := <-otherRoom.Send:
		t.Fatalf("client in another room got %s", got)
	case <-time.After(100 * time.Millisecond):
	}
}
