package ws

import (
	"encoding/json"
	"sync"
)

// RoomFeed is one live room's viewer channel: tips and settled requests are
// announced here so the audience sees money move.
type RoomFeed struct {
	RoomID  uint
	HostID  uint
	clients map[*Client]struct{}
	mu      sync.RWMutex
}

func NewRoomFeed(roomID, hostID uint) *RoomFeed {
	return &RoomFeed{
		RoomID:  roomID,
		HostID:  hostID,
		clients: make(map[*Client]struct{}),
	}
}

func (r *RoomFeed) Join(c *Client) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.clients[c] = struct{}{}
}

func (r *RoomFeed) Leave(c *Client) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.clients, c)
}

func (r *RoomFeed) ViewerCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.clients)
}

func (r *RoomFeed) Broadcast(payload interface{}) {
	data, _ := json.Marshal(payload)
	r.mu.RLock()
	clients := make([]*Client, 0, len(r.clients))
	for c := range r.clients {
		clients = append(clients, c)
	}
	r.mu.RUnlock()
	for _, c := range clients {
		select {
		case c.Send <- data:
		default:
		}
	}
}

// RoomHub holds all live room feeds by room ID.
type RoomHub struct {
	mu    sync.RWMutex
	rooms map[uint]*RoomFeed
}

func NewRoomHub() *RoomHub {
	return &RoomHub{rooms: make(map[uint]*RoomFeed)}
}

func (h *RoomHub) GetOrCreateFeed(roomID, hostID uint) *RoomFeed {
	h.mu.Lock()
	defer h.mu.Unlock()
	if r, ok := h.rooms[roomID]; ok {
		return r
	}
	r := NewRoomFeed(roomID, hostID)
	h.rooms[roomID] = r
	return r
}

func (h *RoomHub) GetFeed(roomID uint) *RoomFeed {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.rooms[roomID]
}

func (h *RoomHub) RemoveFeed(roomID uint) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.rooms, roomID)
}

// ViewerCount reports the audience size of a room, 0 when no feed exists.
func (h *RoomHub) ViewerCount(roomID uint) int {
	h.mu.RLock()
	r := h.rooms[roomID]
	h.mu.RUnlock()
	if r == nil {
		return 0
	}
	return r.ViewerCount()
}
