// Package websocket pushes inventory availability changes to connected
// clients so open trip planners see seat and room counts move in real time.
package websocket

import (
	"encoding/json"
	"log"
	"sync"
	"time"
)

// MessageType represents the type of WebSocket message
type MessageType string

const (
	MessageTypeAvailability     MessageType = "availability_updated"
	MessageTypeBookingCommitted MessageType = "booking_committed"
)

// AvailabilityUpdate reports the remaining units of one offering.
type AvailabilityUpdate struct {
	OfferingID string `json:"offeringId"`
	Kind       string `json:"kind"` // flight_seat or hotel_room
	UnitsLeft  int    `json:"unitsLeft"`
}

// Message represents a WebSocket message
type Message struct {
	Type      MessageType          `json:"type"`
	BookingID string               `json:"bookingId,omitempty"`
	Updates   []AvailabilityUpdate `json:"updates,omitempty"`
	Message   string               `json:"message,omitempty"`
	Timestamp int64                `json:"timestamp"`
}

// Hub manages the set of availability subscribers.
type Hub struct {
	clients    map[*Client]bool
	register   chan *Client
	unregister chan *Client
	broadcast  chan *Message
	mu         sync.RWMutex
}

// NewHub creates a new Hub. Callers run it with go hub.Run().
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan *Message, 256),
	}
}

// Run starts the hub's main loop
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			log.Printf("WebSocket: Client registered (total: %d)", len(h.clients))
			h.mu.Unlock()

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
				log.Printf("WebSocket: Client unregistered (remaining: %d)", len(h.clients))
			}
			h.mu.Unlock()

		case message := <-h.broadcast:
			data, err := json.Marshal(message)
			if err != nil {
				log.Printf("WebSocket: Failed to marshal message: %v", err)
				continue
			}

			h.mu.RLock()
			clients := make([]*Client, 0, len(h.clients))
			for client := range h.clients {
				clients = append(clients, client)
			}
			h.mu.RUnlock()

			for _, client := range clients {
				select {
				case client.send <- data:
				default:
					// Slow consumer; drop it rather than block the hub.
					h.mu.Lock()
					delete(h.clients, client)
					close(client.send)
					h.mu.Unlock()
				}
			}
		}
	}
}

// BroadcastAvailability pushes new unit counts for the given offerings.
func (h *Hub) BroadcastAvailability(updates []AvailabilityUpdate) {
	if len(updates) == 0 {
		return
	}
	h.broadcast <- &Message{
		Type:      MessageTypeAvailability,
		Updates:   updates,
		Timestamp: time.Now().UnixMilli(),
	}
}

// BroadcastBookingCommitted notifies clients that a booking consumed the
// listed offerings.
func (h *Hub) BroadcastBookingCommitted(bookingID string, updates []AvailabilityUpdate) {
	h.broadcast <- &Message{
		Type:      MessageTypeBookingCommitted,
		BookingID: bookingID,
		Updates:   updates,
		Message:   "Inventory was consumed by a committed booking",
		Timestamp: time.Now().UnixMilli(),
	}
}

// ClientCount returns the number of connected subscribers.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
