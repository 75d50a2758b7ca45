package ws

import (
	"encoding/json"
	"log"
	"sync"

	"github.com/gorilla/websocket"
)

// Event types broadcast to list subscribers.
const (
	EventListUpdated  = "list_updated"
	EventItemCreated  = "item_created"
	EventItemUpdated  = "item_updated"
	EventItemDeleted  = "item_deleted"
	EventShareAdded   = "share_added"
	EventShareRemoved = "share_removed"
)

type Message struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

// Hub fans list events out to the websocket clients watching each list.
type Hub struct {
	mu    sync.RWMutex
	lists map[uint]map[*websocket.Conn]bool
}

func NewHub() *Hub {
	return &Hub{
		lists: make(map[uint]map[*websocket.Conn]bool),
	}
}

func (h *Hub) AddConnection(listID uint, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.lists[listID] == nil {
		h.lists[listID] = make(map[*websocket.Conn]bool)
	}
	h.lists[listID][conn] = true
	log.Printf("ws: client connected to list %d (total: %d)", listID, len(h.lists[listID]))
}

func (h *Hub) RemoveConnection(listID uint, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if conns, ok := h.lists[listID]; ok {
		delete(conns, conn)
		conn.Close()
		if len(conns) == 0 {
			delete(h.lists, listID)
		}
		log.Printf("ws: client disconnected from list %d", listID)
	}
}

func (h *Hub) Broadcast(listID uint, message Message) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	conns, ok := h.lists[listID]
	if !ok {
		return
	}

	data, err := json.Marshal(message)
	if err != nil {
		log.Printf("ws: marshal error: %v", err)
		return
	}

	for conn := range conns {
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			log.Printf("ws: write error: %v", err)
			conn.Close()
			delete(conns, conn)
		}
	}
}
