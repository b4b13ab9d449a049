package usecase

import (
	"context"
	"net/http"
	"testing"

	"entreprenapp/internal/entity"
	"entreprenapp/internal/repository"
)

type mockPostRepo struct {
	GetFn        func(ctx context.Context, postId string) (entity.Post, error)
	ToggleLikeFn func(ctx context.Context, postId, userId string) (entity.LikeResult, error)
	DeleteFn     func(ctx context.Context, postId string) error
}

func (m *mockPostRepo) Get(ctx context.Context, postId string) (entity.Post, error) {
	if m.GetFn != nil {
		return m.GetFn(ctx, postId)
	}
	return entity.Post{}, repository.ErrNotFound
}

func (m *mockPostRepo) Create(_ context.Context, post entity.Post) (string, error) {
	return "post-1", nil
}

func (m *mockPostRepo) Update(context.Context, string, entity.UpdatePostRequest) error { return nil }

func (m *mockPostRepo) Delete(ctx context.Context, postId string) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, postId)
	}
	return nil
}

func (m *mockPostRepo) List(context.Context, int64, int64) ([]entity.Post, error) { return nil, nil }

func (m *mockPostRepo) ListByAuthor(context.Context, string, int64, int64) ([]entity.Post, error) {
	return nil, nil
}

func (m *mockPostRepo) ToggleLike(ctx context.Context, postId, userId string) (entity.LikeResult, error) {
	if m.ToggleLikeFn != nil {
		return m.ToggleLikeFn(ctx, postId, userId)
	}
	return entity.LikeResult{}, repository.ErrNotFound
}

func (m *mockPostRepo) Search(context.Context, string, int64, int64) ([]entity.Post, error) {
	return nil, nil
}

type mockCommentRepo struct {
	deletedByPost []string
}

func (m *mockCommentRepo) Get(context.Context, string) (entity.Comment, error) {
	return entity.Comment{}, repository.ErrNotFound
}

func (m *mockCommentRepo) Create(context.Context, entity.Comment) (string, error) {
	return "comment-1", nil
}

func (m *mockCommentRepo) Update(context.Context, string, string) error { return nil }
func (m *mockCommentRepo) Delete(context.Context, string) error         { return nil }

func (m *mockCommentRepo) DeleteByPost(_ context.Context, postId string) error {
	m.deletedByPost = append(m.deletedByPost, postId)
	return nil
}

func (m *mockCommentRepo) ListByPost(context.Context, string, int64, int64) ([]entity.Comment, error) {
	return nil, nil
}

func (m *mockCommentRepo) AddReply(context.Context, string, entity.Reply) (string, error) {
	return "reply-1", nil
}

func (m *mockCommentRepo) ToggleLike(context.Context, string, string) (entity.LikeResult, error) {
	return entity.LikeResult{}, repository.ErrNotFound
}

func TestCreatePostNotifiesFriends(t *testing.T) {
	notif := &recordingNotifier{}
	postRepo := &mockPostRepo{
		GetFn: func(_ context.Context, id string) (entity.Post, error) {
			return entity.Post{Id: id, AuthorId: "alice"}, nil
		},
	}
	uc := NewPostUsecase(postRepo, &mockCommentRepo{}, notif)

	author := entity.User{Id: "alice", Friends: []string{"bob", "carol"}}
	if _, err := uc.Create(context.Background(), author, entity.CreatePostRequest{Content: "hello"}); err != nil {
		t.Fatalf("create: %v", err)
	}

	if len(notif.published) != 2 {
		t.Fatalf("published %d events, want one per friend", len(notif.published))
	}
	for _, event := range notif.published {
		if event.Type != entity.NotificationPost || event.ActorId != "alice" {
			t.Fatalf("unexpected event %+v", event)
		}
	}
}

func TestToggleLikeNotifiesOnLikeOnly(t *testing.T) {
	liked := true
	notif := &recordingNotifier{}
	postRepo := &mockPostRepo{
		GetFn: func(_ context.Context, id string) (entity.Post, error) {
			return entity.Post{Id: id, AuthorId: "bob"}, nil
		},
		ToggleLikeFn: func(context.Context, string, string) (entity.LikeResult, error) {
			return entity.LikeResult{IsLiked: liked, LikeCount: 1}, nil
		},
	}
	uc := NewPostUsecase(postRepo, &mockCommentRepo{}, notif)
	actor := entity.User{Id: "alice"}

	if _, err := uc.ToggleLike(context.Background(), actor, "post-1"); err != nil {
		t.Fatalf("like: %v", err)
	}
	if len(notif.published) != 1 {
		t.Fatalf("like published %d events, want 1", len(notif.published))
	}
	if notif.published[0].Type != entity.NotificationLike {
		t.Fatalf("event type = %q, want like", notif.published[0].Type)
	}

	// Unlike must stay silent.
	liked = false
	if _, err := uc.ToggleLike(context.Background(), actor, "post-1"); err != nil {
		t.Fatalf("unlike: %v", err)
	}
	if len(notif.published) != 1 {
		t.Fatal("unlike must not publish a notification")
	}
}

func TestToggleLikeUnknownPost(t *testing.T) {
	uc := NewPostUsecase(&mockPostRepo{}, &mockCommentRepo{}, &recordingNotifier{})

	_, err := uc.ToggleLike(context.Background(), entity.User{Id: "alice"}, "ghost")
	wantStatus(t, err, http.StatusNotFound)
}

func TestDeletePostCascadesComments(t *testing.T) {
	commentRepo := &mockCommentRepo{}
	uc := NewPostUsecase(&mockPostRepo{}, commentRepo, &recordingNotifier{})

	if err := uc.Delete(context.Background(), "post-1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if len(commentRepo.deletedByPost) != 1 || commentRepo.deletedByPost[0] != "post-1" {
		t.Fatalf("DeleteByPost calls = %v", commentRepo.deletedByPost)
	}
}
