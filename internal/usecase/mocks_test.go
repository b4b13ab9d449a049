package usecase

import (
	"context"
	"time"

	"entreprenapp/internal/entity"
	"entreprenapp/internal/repository"
)

// Handwritten mocks: each method delegates to an optional function field so
// a test only stubs what it touches. Unstubbed reads return zero values and
// unstubbed writes succeed.

type mockUserRepo struct {
	GetFn            func(ctx context.Context, userId string) (entity.User, error)
	GetByEmailFn     func(ctx context.Context, email string) (entity.User, error)
	CreateFn         func(ctx context.Context, user entity.User) (string, error)
	EmailExistsFn    func(ctx context.Context, email string) (bool, error)
	UsernameExistsFn func(ctx context.Context, username string) (bool, error)
	SetVerifiedFn    func(ctx context.Context, userId string) error
	AddFriendsFn     func(ctx context.Context, userId, friendId string) error
}

func (m *mockUserRepo) Get(ctx context.Context, userId string) (entity.User, error) {
	if m.GetFn != nil {
		return m.GetFn(ctx, userId)
	}
	return entity.User{}, repository.ErrNotFound
}

func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (entity.User, error) {
	if m.GetByEmailFn != nil {
		return m.GetByEmailFn(ctx, email)
	}
	return entity.User{}, repository.ErrNotFound
}

func (m *mockUserRepo) Create(ctx context.Context, user entity.User) (string, error) {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, user)
	}
	return "user-1", nil
}

func (m *mockUserRepo) UpdateProfile(context.Context, string, entity.UpdateProfileRequest) error {
	return nil
}

func (m *mockUserRepo) EmailExists(ctx context.Context, email string) (bool, error) {
	if m.EmailExistsFn != nil {
		return m.EmailExistsFn(ctx, email)
	}
	return false, nil
}

func (m *mockUserRepo) UsernameExists(ctx context.Context, username string) (bool, error) {
	if m.UsernameExistsFn != nil {
		return m.UsernameExistsFn(ctx, username)
	}
	return false, nil
}

func (m *mockUserRepo) SetVerified(ctx context.Context, userId string) error {
	if m.SetVerifiedFn != nil {
		return m.SetVerifiedFn(ctx, userId)
	}
	return nil
}

func (m *mockUserRepo) SetVerifyCode(context.Context, string, string, time.Time) error {
	return nil
}

func (m *mockUserRepo) SetOnline(context.Context, string, bool) error { return nil }
func (m *mockUserRepo) SoftDelete(context.Context, string) error      { return nil }

func (m *mockUserRepo) AddFriends(ctx context.Context, userId, friendId string) error {
	if m.AddFriendsFn != nil {
		return m.AddFriendsFn(ctx, userId, friendId)
	}
	return nil
}

func (m *mockUserRepo) RemoveFriends(context.Context, string, string) error { return nil }

func (m *mockUserRepo) Suggestions(context.Context, string, []string, int64) ([]entity.User, error) {
	return nil, nil
}

func (m *mockUserRepo) Search(context.Context, string, int64, int64) ([]entity.User, error) {
	return nil, nil
}

func (m *mockUserRepo) EnsureIndexes(context.Context) error { return nil }

type mockFriendRepo struct {
	GetFn            func(ctx context.Context, requestId string) (entity.FriendRequest, error)
	CreateFn         func(ctx context.Context, req entity.FriendRequest) (string, error)
	PendingBetweenFn func(ctx context.Context, userA, userB string) (bool, error)
	ResolveFn        func(ctx context.Context, requestId string, status entity.FriendRequestStatus) (entity.FriendRequest, error)
}

func (m *mockFriendRepo) Get(ctx context.Context, requestId string) (entity.FriendRequest, error) {
	if m.GetFn != nil {
		return m.GetFn(ctx, requestId)
	}
	return entity.FriendRequest{}, repository.ErrNotFound
}

func (m *mockFriendRepo) Create(ctx context.Context, req entity.FriendRequest) (string, error) {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, req)
	}
	return "req-1", nil
}

func (m *mockFriendRepo) PendingBetween(ctx context.Context, userA, userB string) (bool, error) {
	if m.PendingBetweenFn != nil {
		return m.PendingBetweenFn(ctx, userA, userB)
	}
	return false, nil
}

func (m *mockFriendRepo) Resolve(ctx context.Context, requestId string, status entity.FriendRequestStatus) (entity.FriendRequest, error) {
	if m.ResolveFn != nil {
		return m.ResolveFn(ctx, requestId, status)
	}
	return entity.FriendRequest{}, repository.ErrNotFound
}

func (m *mockFriendRepo) ListIncoming(context.Context, string) ([]entity.FriendRequest, error) {
	return nil, nil
}

func (m *mockFriendRepo) ListOutgoing(context.Context, string) ([]entity.FriendRequest, error) {
	return nil, nil
}

type mockNotificationRepo struct {
	CreateFn func(ctx context.Context, n entity.Notification) (string, error)
	created  []entity.Notification
}

func (m *mockNotificationRepo) Create(ctx context.Context, n entity.Notification) (string, error) {
	m.created = append(m.created, n)
	if m.CreateFn != nil {
		return m.CreateFn(ctx, n)
	}
	return "notif-1", nil
}

func (m *mockNotificationRepo) ListByRecipient(context.Context, string, int64, int64) ([]entity.Notification, error) {
	return nil, nil
}

func (m *mockNotificationRepo) UnreadCount(context.Context, string) (int64, error) { return 0, nil }
func (m *mockNotificationRepo) MarkRead(context.Context, string, string) error     { return nil }
func (m *mockNotificationRepo) MarkAllRead(context.Context, string) error          { return nil }
func (m *mockNotificationRepo) EnsureIndexes(context.Context) error                { return nil }

// recordingNotifier captures published events; handy for asserting that a
// mutation produced (or suppressed) a notification.
type recordingNotifier struct {
	published []NotificationEvent
	pushed    []string
}

func (n *recordingNotifier) Publish(event NotificationEvent) {
	n.published = append(n.published, event)
}

func (n *recordingNotifier) PushToUser(userId, eventName string, _ any) {
	n.pushed = append(n.pushed, userId+":"+eventName)
}

func (n *recordingNotifier) Close() {}
