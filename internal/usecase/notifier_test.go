package usecase

import (
	"encoding/json"
	"testing"

	"entreprenapp/infrastructure/ws"
	"entreprenapp/internal/entity"

	"go.uber.org/zap"
)

type fakeHub struct {
	online map[string]bool
	sent   map[string][][]byte
}

func newFakeHub(online ...string) *fakeHub {
	h := &fakeHub{online: map[string]bool{}, sent: map[string][][]byte{}}
	for _, id := range online {
		h.online[id] = true
	}
	return h
}

func (h *fakeHub) Run()                              {}
func (h *fakeHub) RegisterClient(*ws.UserClient)     {}
func (h *fakeHub) UnregisterClient(*ws.UserClient)   {}
func (h *fakeHub) Broadcast([]byte)                  {}
func (h *fakeHub) IsOnline(userID string) bool       { return h.online[userID] }
func (h *fakeHub) ClientCount() int                  { return len(h.online) }
func (h *fakeHub) SetOnClientUnregister(func(client *ws.UserClient) error) {}

func (h *fakeHub) SendToUser(userID string, message []byte) {
	h.sent[userID] = append(h.sent[userID], message)
}

func (h *fakeHub) Online() []string {
	ids := make([]string, 0, len(h.online))
	for id := range h.online {
		ids = append(ids, id)
	}
	return ids
}

func newTestNotifier(repo *mockNotificationRepo, hub ws.Hub) *notifier {
	return &notifier{
		repo:   repo,
		hub:    hub,
		log:    zap.NewNop().Sugar(),
		events: make(chan NotificationEvent, 8),
		done:   make(chan struct{}),
	}
}

func TestNotifierPersistsForOfflineRecipient(t *testing.T) {
	repo := &mockNotificationRepo{}
	hub := newFakeHub() // nobody online

	n := newTestNotifier(repo, hub)
	n.handle(NotificationEvent{
		RecipientId: "bob", ActorId: "alice",
		Type: entity.NotificationLike, RelatedId: "post-1",
	})

	if len(repo.created) != 1 {
		t.Fatalf("persisted %d notifications, want 1", len(repo.created))
	}
	if got := repo.created[0].Type; got != entity.NotificationLike {
		t.Fatalf("type = %q, want %q", got, entity.NotificationLike)
	}
	if len(hub.sent["bob"]) != 0 {
		t.Fatal("offline recipient must not receive a push")
	}
}

func TestNotifierPushesToOnlineRecipient(t *testing.T) {
	repo := &mockNotificationRepo{}
	hub := newFakeHub("bob")

	n := newTestNotifier(repo, hub)
	n.handle(NotificationEvent{
		RecipientId: "bob", ActorId: "alice",
		Type: entity.NotificationComment, RelatedId: "post-1",
	})

	if len(repo.created) != 1 {
		t.Fatalf("persisted %d notifications, want 1", len(repo.created))
	}
	frames := hub.sent["bob"]
	if len(frames) != 1 {
		t.Fatalf("pushed %d frames, want 1", len(frames))
	}

	var envelope struct {
		Event string              `json:"event"`
		Data  entity.Notification `json:"data"`
	}
	if err := json.Unmarshal(frames[0], &envelope); err != nil {
		t.Fatalf("unmarshal push: %v", err)
	}
	if envelope.Event != "new_notification" {
		t.Fatalf("event = %q, want new_notification", envelope.Event)
	}
	if envelope.Data.ActorId != "alice" {
		t.Fatalf("actorId = %q, want alice", envelope.Data.ActorId)
	}
}

func TestNotifierSkipsSelfNotifications(t *testing.T) {
	n := newTestNotifier(&mockNotificationRepo{}, newFakeHub())

	n.Publish(NotificationEvent{RecipientId: "alice", ActorId: "alice", Type: entity.NotificationLike})

	if len(n.events) != 0 {
		t.Fatal("self-notification must not be queued")
	}
}

func TestNotifierDropsWhenQueueFull(t *testing.T) {
	n := newTestNotifier(&mockNotificationRepo{}, newFakeHub())

	// No consumer is running; fill the queue and then overflow it.
	for i := 0; i < cap(n.events)+5; i++ {
		n.Publish(NotificationEvent{RecipientId: "bob", ActorId: "alice", Type: entity.NotificationLike})
	}
	if len(n.events) != cap(n.events) {
		t.Fatalf("queued %d events, want %d (overflow must drop, not block)", len(n.events), cap(n.events))
	}
}
