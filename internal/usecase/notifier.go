package usecase

import (
	"context"
	"encoding/json"
	"time"

	"entreprenapp/infrastructure/ws"
	"entreprenapp/internal/entity"
	"entreprenapp/internal/repository"

	"go.uber.org/zap"
)

// NotificationEvent is what controllers publish after a successful mutation.
// The notifier records it and then, if the recipient is connected, pushes it
// over the websocket. Delivery is at-most-once; the persisted document is the
// source of truth.
type NotificationEvent struct {
	RecipientId string
	ActorId     string
	Type        entity.NotificationType
	RelatedId   string
}

type Notifier interface {
	// Publish never blocks the caller and never fails the request that
	// produced the event.
	Publish(event NotificationEvent)
	// PushToUser sends a typed payload straight to a connected user
	// without a persisted record (presence updates, live messages).
	PushToUser(userId, eventName string, data any)
	Close()
}

type wsEnvelope struct {
	Event string `json:"event"`
	Data  any    `json:"data"`
}

type notifier struct {
	repo   repository.NotificationRepository
	hub    ws.Hub
	log    *zap.SugaredLogger
	events chan NotificationEvent
	done   chan struct{}
}

func NewNotifier(repo repository.NotificationRepository, hub ws.Hub, log *zap.SugaredLogger) Notifier {
	n := &notifier{
		repo:   repo,
		hub:    hub,
		log:    log,
		events: make(chan NotificationEvent, 256),
		done:   make(chan struct{}),
	}
	go n.run()
	return n
}

func (n *notifier) Publish(event NotificationEvent) {
	if event.RecipientId == event.ActorId {
		return
	}
	select {
	case n.events <- event:
	default:
		n.log.Warnw("notification queue full, dropping event",
			"recipientId", event.RecipientId, "type", event.Type)
	}
}

func (n *notifier) PushToUser(userId, eventName string, data any) {
	payload, err := json.Marshal(wsEnvelope{Event: eventName, Data: data})
	if err != nil {
		n.log.Warnw("marshal push payload", "event", eventName, "error", err)
		return
	}
	n.hub.SendToUser(userId, payload)
}

func (n *notifier) Close() {
	close(n.done)
}

func (n *notifier) run() {
	for {
		select {
		case event := <-n.events:
			n.handle(event)
		case <-n.done:
			// Drain whatever is queued before stopping.
			for {
				select {
				case event := <-n.events:
					n.handle(event)
				default:
					return
				}
			}
		}
	}
}

func (n *notifier) handle(event NotificationEvent) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	record := entity.Notification{
		RecipientId: event.RecipientId,
		ActorId:     event.ActorId,
		Type:        event.Type,
		RelatedId:   event.RelatedId,
	}

	id, err := n.repo.Create(ctx, record)
	if err != nil {
		n.log.Errorw("persist notification",
			"recipientId", event.RecipientId, "type", event.Type, "error", err)
		return
	}
	record.Id = id
	record.CreatedAt = time.Now()

	// Best-effort push; offline recipients fetch on next connect.
	if !n.hub.IsOnline(event.RecipientId) {
		return
	}
	n.PushToUser(event.RecipientId, "new_notification", record)
}
