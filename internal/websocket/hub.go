package websocket

import (
	"context"
	"encoding/json"
	"sync"

	"notes-app/internal/dto"
	"notes-app/internal/pkg/logger"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	hubModule = "Hub"

	// RedisChannel carries change feed frames between instances.
	RedisChannel = "notes_events"
)

// Frame is what subscribers receive for every note change.
type Frame struct {
	Type string                `json:"type"`
	Data *dto.NoteEventMessage `json:"data"`
}

type redisEnvelope struct {
	Origin  string          `json:"origin"`
	Message json.RawMessage `json:"message"`
}

type Hub struct {
	// Instance id, used to drop our own frames echoed back by Redis.
	id string

	clients map[*Client]struct{}

	register   chan *Client
	unregister chan *Client
	done       chan struct{}

	mu sync.RWMutex

	// Redis connection for cross-instance communication, nil when disabled
	rdb *redis.Client

	logger logger.ILogger
}

func NewHub(rdb *redis.Client, log logger.ILogger) *Hub {
	return &Hub{
		id:         uuid.NewString(),
		clients:    make(map[*Client]struct{}),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
		rdb:        rdb,
		logger:     log,
	}
}

// Run owns client registration until ctx is cancelled.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)

	if h.rdb != nil {
		go h.subscribeToRedis(ctx)
	}

	for {
		select {
		case <-ctx.Done():
			h.mu.Lock()
			for client := range h.clients {
				delete(h.clients, client)
				close(client.Send)
			}
			h.mu.Unlock()
			return

		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = struct{}{}
			h.mu.Unlock()
			h.logger.Info(hubModule, "Client registered", map[string]interface{}{"client_id": client.ID})

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.Send)
				h.logger.Info(hubModule, "Client unregistered", map[string]interface{}{"client_id": client.ID})
			}
			h.mu.Unlock()
		}
	}
}

// Register adds a client. It reports false once the hub has stopped.
func (h *Hub) Register(client *Client) bool {
	select {
	case h.register <- client:
		return true
	case <-h.done:
		return false
	}
}

func (h *Hub) Unregister(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}

func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// HandleNoteEvent pushes the event to local clients and, when Redis is
// configured, to every other instance.
func (h *Hub) HandleNoteEvent(ctx context.Context, evt *dto.NoteEventMessage) error {
	data, err := json.Marshal(Frame{Type: "note_event", Data: evt})
	if err != nil {
		return err
	}

	h.deliverLocal(data)

	if h.rdb == nil {
		return nil
	}

	payload, err := json.Marshal(redisEnvelope{Origin: h.id, Message: data})
	if err != nil {
		return err
	}
	return h.rdb.Publish(ctx, RedisChannel, payload).Err()
}

func (h *Hub) deliverLocal(data []byte) {
	var slow []*Client

	h.mu.RLock()
	for client := range h.clients {
		select {
		case client.Send <- data:
		default:
			slow = append(slow, client)
		}
	}
	h.mu.RUnlock()

	for _, client := range slow {
		h.logger.Warn(hubModule, "Client Send buffer full, dropping client", map[string]interface{}{"client_id": client.ID})
		h.Unregister(client)
	}
}

func (h *Hub) subscribeToRedis(ctx context.Context) {
	pubsub := h.rdb.Subscribe(ctx, RedisChannel)
	defer pubsub.Close()

	ch := pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}

			var envelope redisEnvelope
			if err := json.Unmarshal([]byte(msg.Payload), &envelope); err != nil {
				h.logger.Warn(hubModule, "Redis msg parse error", map[string]interface{}{"error": err.Error()})
				continue
			}
			if envelope.Origin == h.id {
				continue
			}
			h.deliverLocal(envelope.Message)
		}
	}
}
