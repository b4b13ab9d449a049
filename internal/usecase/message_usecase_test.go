package usecase

import (
	"context"
	"net/http"
	"testing"

	"entreprenapp/internal/entity"
	"entreprenapp/internal/repository"
)

type mockMessageRepo struct {
	GetConversationFn func(ctx context.Context, conversationId string) (entity.Conversation, error)
	markedRead        []string
}

func (m *mockMessageRepo) GetOrCreateConversation(_ context.Context, userA, userB string) (entity.Conversation, error) {
	return entity.Conversation{
		Id:           "conv-1",
		PairKey:      repository.PairKey(userA, userB),
		Participants: []string{userA, userB},
	}, nil
}

func (m *mockMessageRepo) GetConversation(ctx context.Context, conversationId string) (entity.Conversation, error) {
	if m.GetConversationFn != nil {
		return m.GetConversationFn(ctx, conversationId)
	}
	return entity.Conversation{}, repository.ErrNotFound
}

func (m *mockMessageRepo) ListConversations(context.Context, string) ([]entity.Conversation, error) {
	return nil, nil
}

func (m *mockMessageRepo) CreateMessage(_ context.Context, msg entity.Message) (entity.Message, error) {
	msg.Id = "msg-1"
	return msg, nil
}

func (m *mockMessageRepo) ListMessages(context.Context, string, int64, int64) ([]entity.Message, error) {
	return nil, nil
}

func (m *mockMessageRepo) MarkRead(_ context.Context, conversationId, readerId string) error {
	m.markedRead = append(m.markedRead, conversationId+":"+readerId)
	return nil
}

func (m *mockMessageRepo) EnsureIndexes(context.Context) error { return nil }

func knownUsers(ids ...string) *mockUserRepo {
	known := map[string]bool{}
	for _, id := range ids {
		known[id] = true
	}
	return &mockUserRepo{
		GetFn: func(_ context.Context, id string) (entity.User, error) {
			if !known[id] {
				return entity.User{}, repository.ErrNotFound
			}
			return entity.User{Id: id, Verified: true}, nil
		},
	}
}

func TestSendMessagePushesAndNotifies(t *testing.T) {
	notif := &recordingNotifier{}
	uc := NewMessageUsecase(&mockMessageRepo{}, knownUsers("alice", "bob"), notif)

	msg, err := uc.Send(context.Background(), entity.User{Id: "alice"}, entity.SendMessageRequest{
		RecipientId: "bob", Body: "hi",
	})
	if err != nil {
		t.Fatalf("send: %v", err)
	}
	if msg.ConversationId != "conv-1" || msg.SenderId != "alice" {
		t.Fatalf("message = %+v", msg)
	}

	if len(notif.pushed) != 1 || notif.pushed[0] != "bob:new_message" {
		t.Fatalf("pushed = %v, want live new_message to bob", notif.pushed)
	}
	if len(notif.published) != 1 || notif.published[0].Type != entity.NotificationMessage {
		t.Fatalf("published = %+v", notif.published)
	}
}

func TestSendMessageGuards(t *testing.T) {
	uc := NewMessageUsecase(&mockMessageRepo{}, knownUsers("alice"), &recordingNotifier{})

	_, err := uc.Send(context.Background(), entity.User{Id: "alice"}, entity.SendMessageRequest{
		RecipientId: "alice", Body: "hi",
	})
	wantStatus(t, err, http.StatusBadRequest)

	_, err = uc.Send(context.Background(), entity.User{Id: "alice"}, entity.SendMessageRequest{
		RecipientId: "ghost", Body: "hi",
	})
	wantStatus(t, err, http.StatusNotFound)
}

func TestMessagesRequireParticipant(t *testing.T) {
	repo := &mockMessageRepo{
		GetConversationFn: func(_ context.Context, id string) (entity.Conversation, error) {
			return entity.Conversation{Id: id, Participants: []string{"alice", "bob"}}, nil
		},
	}
	uc := NewMessageUsecase(repo, knownUsers("alice", "bob", "mallory"), &recordingNotifier{})

	_, err := uc.Messages(context.Background(), entity.User{Id: "mallory"}, "conv-1", 20, 0)
	wantStatus(t, err, http.StatusForbidden)

	if _, err := uc.Messages(context.Background(), entity.User{Id: "alice"}, "conv-1", 20, 0); err != nil {
		t.Fatalf("participant read: %v", err)
	}
}

func TestMarkReadScopedToReader(t *testing.T) {
	repo := &mockMessageRepo{
		GetConversationFn: func(_ context.Context, id string) (entity.Conversation, error) {
			return entity.Conversation{Id: id, Participants: []string{"alice", "bob"}}, nil
		},
	}
	uc := NewMessageUsecase(repo, knownUsers("alice", "bob"), &recordingNotifier{})

	if err := uc.MarkRead(context.Background(), entity.User{Id: "bob"}, "conv-1"); err != nil {
		t.Fatalf("mark read: %v", err)
	}
	if len(repo.markedRead) != 1 || repo.markedRead[0] != "conv-1:bob" {
		t.Fatalf("markedRead = %v", repo.markedRead)
	}
}
