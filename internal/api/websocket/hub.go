package websocket

import (
	"log"
	"sync"
	"time"
)

// ActivityEvent is one supporter interaction pushed to campaign dashboards
// as it happens.
type ActivityEvent struct {
	CampaignID   uint      `json:"campaign_id"`
	ActivityType string    `json:"activity_type"`
	UserHandle   string    `json:"user_handle"`
	OccurredAt   time.Time `json:"occurred_at"`
}

// Hub fans activity events out to the dashboards watching each campaign.
// Clients subscribe to exactly one campaign when they connect.
type Hub struct {
	clients map[*Client]bool

	register   chan *Client
	unregister chan *Client
	events     chan *ActivityEvent

	mu sync.RWMutex
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		events:     make(chan *ActivityEvent, 256),
	}
}

// Run is the hub's main loop. Start it once, in its own goroutine.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			h.mu.Unlock()
			log.Printf("🔌 Live feed client connected (campaign %d). Total: %d", client.campaignID, h.ClientCount())

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
			}
			h.mu.Unlock()
			log.Printf("🔌 Live feed client disconnected. Total: %d", h.ClientCount())

		case event := <-h.events:
			h.mu.Lock()
			for client := range h.clients {
				if client.campaignID != event.CampaignID {
					continue
				}
				select {
				case client.send <- event:
				default:
					// Slow consumer, drop the connection.
					close(client.send)
					delete(h.clients, client)
				}
			}
			h.mu.Unlock()
		}
	}
}

// Publish queues an activity event for delivery. Never blocks the request
// path; the event is dropped if the hub is saturated.
func (h *Hub) Publish(event *ActivityEvent) {
	select {
	case h.events <- event:
	default:
		log.Printf("⚠️ Live feed buffer full, event dropped")
	}
}

func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
