package websocket

import (
	"context"
	"encoding/json"
	"net/http"

	"entreprenapp/infrastructure/ws"
	httpdelivery "entreprenapp/internal/delivery/http"
	"entreprenapp/internal/usecase"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

type event struct {
	Event string `json:"event"`
	Data  any    `json:"data"`
}

// Handler upgrades authenticated requests on /ws/{userId} and tracks
// presence through the hub.
type Handler struct {
	hub      ws.Hub
	userUc   usecase.UserUsecase
	log      *zap.SugaredLogger
	upgrader websocket.Upgrader
}

func NewHandler(hub ws.Hub, userUc usecase.UserUsecase, allowedOrigins []string, log *zap.SugaredLogger) *Handler {
	allowed := make(map[string]bool, len(allowedOrigins))
	for _, origin := range allowedOrigins {
		allowed[origin] = true
	}

	h := &Handler{
		hub:    hub,
		userUc: userUc,
		log:    log,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				return origin == "" || allowed[origin]
			},
		},
	}

	hub.SetOnClientUnregister(h.onUnregister)
	return h
}

// Serve handles GET /ws/{userId}. The path id must match the authenticated
// principal; a connection for someone else is rejected before the upgrade.
func (h *Handler) Serve(w http.ResponseWriter, r *http.Request) {
	user, ok := httpdelivery.UserFromContext(r.Context())
	if !ok {
		http.Error(w, "authentication required", http.StatusUnauthorized)
		return
	}

	userId := chi.URLParam(r, "userId")
	if userId != user.Id {
		http.Error(w, "forbidden", http.StatusForbidden)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warnw("websocket upgrade failed", "userId", userId, "error", err)
		return
	}

	client := ws.NewClient(userId, h.hub, conn, h.log)
	h.hub.RegisterClient(client)

	if err := h.userUc.HandleRegisterClient(r.Context(), userId); err != nil {
		h.log.Warnw("mark online failed", "userId", userId, "error", err)
	}

	h.broadcast("user_online", map[string]string{"userId": userId})
	h.sendTo(userId, "online_users", map[string]any{"users": h.hub.Online()})

	go client.WritePump()
	go client.ReadPump(func(data []byte) {
		// Inbound frames are ignored; all domain writes go through
		// the HTTP API. Logged so a misbehaving client is visible.
		h.log.Debugw("unsolicited websocket frame", "userId", userId, "bytes", len(data))
	})
}

func (h *Handler) onUnregister(client *ws.UserClient) error {
	// The request context is long gone by the time a connection drops.
	if err := h.userUc.HandleUnregisterClient(context.Background(), client.UserId); err != nil {
		h.log.Warnw("mark offline failed", "userId", client.UserId, "error", err)
	}
	h.broadcast("user_offline", map[string]string{"userId": client.UserId})
	return nil
}

func (h *Handler) broadcast(name string, data any) {
	payload, err := json.Marshal(event{Event: name, Data: data})
	if err != nil {
		h.log.Errorw("marshal websocket event", "event", name, "error", err)
		return
	}
	h.hub.Broadcast(payload)
}

func (h *Handler) sendTo(userId, name string, data any) {
	payload, err := json.Marshal(event{Event: name, Data: data})
	if err != nil {
		h.log.Errorw("marshal websocket event", "event", name, "error", err)
		return
	}
	h.hub.SendToUser(userId, payload)
}
