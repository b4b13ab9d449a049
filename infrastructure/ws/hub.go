package ws

import (
	"sync"

	"go.uber.org/zap"
)

// MemHub is the single-server hub. The clients map is the presence registry;
// entries exist exactly while a connection is registered and are rebuilt from
// zero on restart.
type MemHub struct {
	clients            map[string]*UserClient
	broadcast          chan []byte
	register           chan *UserClient
	unregister         chan *UserClient
	mu                 sync.RWMutex
	log                *zap.SugaredLogger
	onClientUnregister func(client *UserClient) error
}

func NewHub(log *zap.SugaredLogger) *MemHub {
	return &MemHub{
		clients:    make(map[string]*UserClient),
		broadcast:  make(chan []byte, 256),
		register:   make(chan *UserClient),
		unregister: make(chan *UserClient),
		log:        log,
	}
}

func (h *MemHub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			if old, ok := h.clients[client.UserId]; ok && old != client {
				close(old.send)
			}
			h.clients[client.UserId] = client
			h.mu.Unlock()
			h.log.Infow("client connected", "userId", client.UserId)

		case client := <-h.unregister:
			h.mu.Lock()
			if current, ok := h.clients[client.UserId]; ok && current == client {
				delete(h.clients, client.UserId)
				close(client.send)
				h.log.Infow("client disconnected", "userId", client.UserId)
			}
			h.mu.Unlock()

			if h.onClientUnregister != nil {
				if err := h.onClientUnregister(client); err != nil {
					h.log.Warnw("unregister callback error", "userId", client.UserId, "error", err)
				}
			}

		case message := <-h.broadcast:
			h.mu.RLock()
			for userId, client := range h.clients {
				select {
				case client.send <- message:
				default:
					h.log.Warnw("dropping broadcast for slow client", "userId", userId)
				}
			}
			h.mu.RUnlock()
		}
	}
}

func (h *MemHub) Broadcast(message []byte) {
	h.broadcast <- message
}

func (h *MemHub) SendToUser(userID string, message []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	client, exists := h.clients[userID]
	if !exists {
		return
	}
	select {
	case client.send <- message:
	default:
		h.log.Warnw("failed to send to client", "userId", userID)
	}
}

func (h *MemHub) IsOnline(userID string) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	_, ok := h.clients[userID]
	return ok
}

func (h *MemHub) Online() []string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	ids := make([]string, 0, len(h.clients))
	for userId := range h.clients {
		ids = append(ids, userId)
	}
	return ids
}

func (h *MemHub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

func (h *MemHub) RegisterClient(client *UserClient) {
	h.register <- client
}

func (h *MemHub) UnregisterClient(client *UserClient) {
	h.unregister <- client
}

func (h *MemHub) SetOnClientUnregister(callback func(client *UserClient) error) {
	h.onClientUnregister = callback
}
