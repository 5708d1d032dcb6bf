package websocket

import (
	"context"
	"encoding/json"
	"sync"

	"competency-assessment-be/internal/pkg/logger"
	"competency-assessment-be/pkg/events"

	"github.com/redis/go-redis/v9"
)

// RelayChannel carries progress messages between instances
const RelayChannel = "assessment_progress"

const hubModule = "HUB"

// Hub fans assessment events out to the websocket clients watching a session.
// With redis every instance receives every event through RelayChannel and
// delivers to its own clients; without it delivery is local only.
type Hub struct {
	// Registered clients: SessionID -> set of connections (multi-tab)
	clients map[string]map[*Client]struct{}

	register   chan *Client
	unregister chan *Client
	done       chan struct{}

	mu sync.RWMutex

	rdb    *redis.Client
	logger logger.ILogger
}

type relayMessage struct {
	SessionID string          `json:"session_id"`
	Message   json.RawMessage `json:"message"`
}

func NewHub(rdb *redis.Client, log logger.ILogger) *Hub {
	return &Hub{
		clients:    make(map[string]map[*Client]struct{}),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
		rdb:        rdb,
		logger:     log,
	}
}

func (h *Hub) Run(ctx context.Context) {
	if h.rdb != nil {
		go h.subscribeToRedis(ctx)
	}

	defer close(h.done)

	for {
		select {
		case <-ctx.Done():
			h.mu.Lock()
			for sessionID, set := range h.clients {
				for client := range set {
					close(client.Send)
				}
				delete(h.clients, sessionID)
			}
			h.mu.Unlock()
			return

		case client := <-h.register:
			h.mu.Lock()
			if h.clients[client.SessionID] == nil {
				h.clients[client.SessionID] = make(map[*Client]struct{})
			}
			h.clients[client.SessionID][client] = struct{}{}
			h.mu.Unlock()
			h.logger.Debug(hubModule, "Client registered", map[string]interface{}{"session_id": client.SessionID})

		case client := <-h.unregister:
			h.mu.Lock()
			h.remove(client)
			h.mu.Unlock()
		}
	}
}

// remove must be called with mu held
func (h *Hub) remove(client *Client) {
	set, ok := h.clients[client.SessionID]
	if !ok {
		return
	}
	if _, ok := set[client]; !ok {
		return
	}
	delete(set, client)
	close(client.Send)
	if len(set) == 0 {
		delete(h.clients, client.SessionID)
		h.logger.Debug(hubModule, "No clients left for session", map[string]interface{}{"session_id": client.SessionID})
	}
}

// Publish implements service.EventSink. Events without a session_id are ignored.
func (h *Hub) Publish(ctx context.Context, event events.Event) error {
	sessionID, _ := event.Payload()["session_id"].(string)
	if sessionID == "" {
		return nil
	}

	data, err := json.Marshal(events.BaseEvent{
		Type:       event.EventType(),
		Data:       event.Payload(),
		OccurredAt: event.Timestamp(),
	})
	if err != nil {
		return err
	}

	if h.rdb == nil {
		h.deliver(sessionID, data)
		return nil
	}

	payload, err := json.Marshal(relayMessage{SessionID: sessionID, Message: data})
	if err != nil {
		return err
	}
	return h.rdb.Publish(ctx, RelayChannel, payload).Err()
}

// ClientCount reports how many connections watch sessionID on this instance
func (h *Hub) ClientCount(sessionID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[sessionID])
}

func (h *Hub) deliver(sessionID string, data []byte) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for client := range h.clients[sessionID] {
		select {
		case client.Send <- data:
		default:
			h.logger.Warn(hubModule, "Client send buffer full, dropping connection", map[string]interface{}{"session_id": sessionID})
			h.remove(client)
		}
	}
}

func (h *Hub) subscribeToRedis(ctx context.Context) {
	pubsub := h.rdb.Subscribe(ctx, RelayChannel)
	defer pubsub.Close()

	for msg := range pubsub.Channel() {
		var relay relayMessage
		if err := json.Unmarshal([]byte(msg.Payload), &relay); err != nil {
			h.logger.Warn(hubModule, "Dropping malformed relay message", map[string]interface{}{"error": err.Error()})
			continue
		}
		h.deliver(relay.SessionID, relay.Message)
	}
}
