package ws

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	eventChannelPrefix = "events:"
	presenceSetKey     = "presence:online"
	presenceKeyPrefix  = "presence:user:"
)

// RedisHub extends the in-memory hub across servers. Local connections live
// in the clients map; payloads for users connected elsewhere are published on
// a per-user channel and picked up by whichever server holds the connection.
type RedisHub struct {
	clients map[string]*UserClient
	mu      sync.RWMutex

	rdb      *redis.Client
	pubsub   *redis.PubSub
	serverID string
	log      *zap.SugaredLogger

	register   chan *UserClient
	unregister chan *UserClient
	broadcast  chan []byte

	onClientUnregister func(client *UserClient) error
}

type relayedMessage struct {
	FromServerID string `json:"fromServerId"`
	ToUserID     string `json:"toUserId"`
	Payload      []byte `json:"payload"`
}

func NewRedisHub(rdb *redis.Client, serverID string, log *zap.SugaredLogger) *RedisHub {
	hub := &RedisHub{
		clients:    make(map[string]*UserClient),
		rdb:        rdb,
		serverID:   serverID,
		log:        log,
		register:   make(chan *UserClient),
		unregister: make(chan *UserClient),
		broadcast:  make(chan []byte, 256),
	}

	hub.pubsub = rdb.PSubscribe(context.Background(), eventChannelPrefix+"*")
	return hub
}

func (h *RedisHub) Run() {
	go h.subscribe()

	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			if old, ok := h.clients[client.UserId]; ok && old != client {
				close(old.send)
			}
			h.clients[client.UserId] = client
			h.mu.Unlock()

			ctx := context.Background()
			h.rdb.Set(ctx, presenceKeyPrefix+client.UserId, h.serverID, 0)
			h.rdb.SAdd(ctx, presenceSetKey, client.UserId)
			h.log.Infow("client connected", "serverId", h.serverID, "userId", client.UserId)

		case client := <-h.unregister:
			h.mu.Lock()
			if current, ok := h.clients[client.UserId]; ok && current == client {
				delete(h.clients, client.UserId)
				close(client.send)

				ctx := context.Background()
				h.rdb.Del(ctx, presenceKeyPrefix+client.UserId)
				h.rdb.SRem(ctx, presenceSetKey, client.UserId)
				h.log.Infow("client disconnected", "serverId", h.serverID, "userId", client.UserId)
			}
			h.mu.Unlock()

			if h.onClientUnregister != nil {
				if err := h.onClientUnregister(client); err != nil {
					h.log.Warnw("unregister callback error", "userId", client.UserId, "error", err)
				}
			}

		case message := <-h.broadcast:
			h.broadcastLocal(message)
		}
	}
}

func (h *RedisHub) subscribe() {
	ch := h.pubsub.Channel()
	h.log.Infow("redis subscriber started", "serverId", h.serverID)

	for msg := range ch {
		var relayed relayedMessage
		if err := json.Unmarshal([]byte(msg.Payload), &relayed); err != nil {
			h.log.Warnw("bad relayed message", "error", err)
			continue
		}
		if relayed.FromServerID == h.serverID {
			continue
		}

		h.mu.RLock()
		_, existsLocally := h.clients[relayed.ToUserID]
		h.mu.RUnlock()
		if !existsLocally {
			continue
		}

		h.deliverLocal(relayed.ToUserID, relayed.Payload)
	}
}

// SendToUser delivers locally when possible, otherwise relays through Redis
// for whichever server holds the connection.
func (h *RedisHub) SendToUser(userID string, message []byte) {
	h.mu.RLock()
	_, existsLocally := h.clients[userID]
	h.mu.RUnlock()

	if existsLocally {
		h.deliverLocal(userID, message)
		return
	}
	h.relay(userID, message)
}

func (h *RedisHub) deliverLocal(userID string, message []byte) {
	h.mu.RLock()
	client, ok := h.clients[userID]
	h.mu.RUnlock()
	if !ok {
		return
	}
	select {
	case client.send <- message:
	default:
		h.log.Warnw("failed to send to local client", "userId", userID)
	}
}

func (h *RedisHub) relay(userID string, message []byte) {
	ctx := context.Background()

	relayed := relayedMessage{
		FromServerID: h.serverID,
		ToUserID:     userID,
		Payload:      message,
	}
	msgBytes, err := json.Marshal(relayed)
	if err != nil {
		h.log.Warnw("marshal relayed message", "error", err)
		return
	}

	if err := h.rdb.Publish(ctx, eventChannelPrefix+userID, msgBytes).Err(); err != nil {
		h.log.Warnw("publish relayed message", "userId", userID, "error", err)
	}
}

func (h *RedisHub) broadcastLocal(message []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for userId, client := range h.clients {
		select {
		case client.send <- message:
		default:
			h.log.Warnw("dropping broadcast for slow client", "userId", userId)
		}
	}
}

func (h *RedisHub) Broadcast(message []byte) {
	h.broadcast <- message
}

// IsOnline checks local connections first, then cluster-wide presence.
func (h *RedisHub) IsOnline(userID string) bool {
	h.mu.RLock()
	_, ok := h.clients[userID]
	h.mu.RUnlock()
	if ok {
		return true
	}

	exists, err := h.rdb.Exists(context.Background(), presenceKeyPrefix+userID).Result()
	if err != nil {
		h.log.Warnw("presence lookup failed", "userId", userID, "error", err)
		return false
	}
	return exists > 0
}

func (h *RedisHub) Online() []string {
	ids, err := h.rdb.SMembers(context.Background(), presenceSetKey).Result()
	if err != nil {
		h.log.Warnw("presence list failed", "error", err)
		h.mu.RLock()
		defer h.mu.RUnlock()
		local := make([]string, 0, len(h.clients))
		for userId := range h.clients {
			local = append(local, userId)
		}
		return local
	}
	return ids
}

func (h *RedisHub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

func (h *RedisHub) RegisterClient(client *UserClient) {
	h.register <- client
}

func (h *RedisHub) UnregisterClient(client *UserClient) {
	h.unregister <- client
}

func (h *RedisHub) SetOnClientUnregister(callback func(client *UserClient) error) {
	h.onClientUnregister = callback
}
