package ws

import (
	"encoding/json"
	"testing"
)

func drain(t *testing.T, c *Client) map[string]interface{} {
	t.Helper()
	select {
	case data := <-c.Send:
		var m map[string]interface{}
		if err := json.Unmarshal(data, &m); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		return m
	default:
		return nil
	}
}

func TestHubBroadcastToUser(t *testing.T) {
	h := NewHub()
	creator := &Client{UserID: 2, Role: "CREATOR", Send: make(chan []byte, 4)}
	other := &Client{UserID: 3, Role: "CREATOR", Send: make(chan []byte, 4)}
	h.Register(creator)
	h.Register(other)

	h.BroadcastToUser(2, map[string]interface{}{"type": "queue.new"})

	if msg := drain(t, creator); msg == nil || msg["type"] != "queue.new" {
		t.Errorf("creator did not receive event: %v", msg)
	}
	if msg := drain(t, other); msg != nil {
		t.Errorf("other user received someone else's event: %v", msg)
	}
}

func TestHubMultipleConnectionsPerUser(t *testing.T) {
	h := NewHub()
	a := &Client{UserID: 2, Send: make(chan []byte, 4)}
	b := &Client{UserID: 2, Send: make(chan []byte, 4)}
	h.Register(a)
	h.Register(b)

	h.BroadcastToUser(2, map[string]interface{}{"type": "ping"})

	if drain(t, a) == nil || drain(t, b) == nil {
		t.Error("both connections of the same user should receive the event")
	}
}

func TestClientCloseUnregisters(t *testing.T) {
	h := NewHub()
	c := &Client{UserID: 2, Send: make(chan []byte, 4)}
	h.Register(c)
	if h.ClientCount() != 1 {
		t.Fatalf("client count = %d, want 1", h.ClientCount())
	}
	c.Close()
	if h.ClientCount() != 0 {
		t.Errorf("client count = %d after close, want 0", h.ClientCount())
	}
	// double close must not panic
	c.Close()
}

func TestRoomFeedBroadcastAndViewerCount(t *testing.T) {
	rh := NewRoomHub()
	feed := rh.GetOrCreateFeed(10, 2)

	viewer := &Client{UserID: 5, Send: make(chan []byte, 4)}
	feed.Join(viewer)
	if rh.ViewerCount(10) != 1 {
		t.Fatalf("viewer count = %d, want 1", rh.ViewerCount(10))
	}

	feed.Broadcast(map[string]interface{}{"type": "room.interaction"})
	if msg := drain(t, viewer); msg == nil || msg["type"] != "room.interaction" {
		t.Errorf("viewer did not receive feed event: %v", msg)
	}

	feed.Leave(viewer)
	if rh.ViewerCount(10) != 0 {
		t.Errorf("viewer count = %d after leave, want 0", rh.ViewerCount(10))
	}

	rh.RemoveFeed(10)
	if rh.GetFeed(10) != nil {
		t.Error("feed should be gone after RemoveFeed")
	}
	if rh.ViewerCount(99) != 0 {
		t.Error("unknown room should report 0 viewers")
	}
}

func TestRoomFeedSlowClientDoesNotBlock(t *testing.T) {
	rh := NewRoomHub()
	feed := rh.GetOrCreateFeed(10, 2)
	slow := &Client{UserID: 5, Send: make(chan []byte)} // unbuffered, nobody reading
	feed.Join(slow)

	// Broadcast drops instead of blocking; the test hangs if it doesn't.
	feed.Broadcast(map[string]interface{}{"type": "room.interaction"})
}
