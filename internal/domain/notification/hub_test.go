package notification_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/rewear/rewear-api/internal/domain/notification"
)

func TestHubDeliversToRegisteredConnection(t *testing.T) {
	hub := notification.NewHub(nil)
	go hub.Run()
	defer hub.Shutdown()

	userID := uuid.New()
	conn := &notification.Connection{UserID: userID, Send: make(chan []byte, 1)}
	hub.Register(conn)

	// Give the hub loop a beat to index the connection
	time.Sleep(20 * time.Millisecond)

	hub.Notify(userID, "item_moderated", map[string]string{"item": "Denim Jacket"})

	select {
	case data := <-conn.Send:
		var event notification.Event
		if err := json.Unmarshal(data, &event); err != nil {
			t.Fatalf("decode event failed: %v", err)
		}
		if event.Type != "item_moderated" {
			t.Fatalf("expected item_moderated, got %s", event.Type)
		}
		if event.UserID != userID {
			t.Fatalf("event addressed to wrong user: %s", event.UserID)
		}
	case <-time.After(time.Second):
		t.Fatal("event never delivered")
	}
}

func TestHubUnregisterAfterShutdown(t *testing.T) {
	hub := notification.NewHub(nil)
	go hub.Run()

	conn := &notification.Connection{UserID: uuid.New(), Send: make(chan []byte, 1)}
	hub.Register(conn)
	hub.Shutdown()

	// A read pump tearing down after shutdown must not hang on the hub
	done := make(chan struct{})
	go func() {
		hub.Unregister(conn)
		hub.Register(&notification.Connection{UserID: uuid.New(), Send: make(chan []byte, 1)})
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("register/unregister blocked after shutdown")
	}
}
