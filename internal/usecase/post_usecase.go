package usecase

import (
	"context"
	"errors"

	"entreprenapp/internal/entity"
	"entreprenapp/internal/repository"
	"entreprenapp/pkg/apperror"
)

type PostUsecase interface {
	Get(ctx context.Context, postId string) (entity.Post, error)
	Create(ctx context.Context, author entity.User, req entity.CreatePostRequest) (entity.Post, error)
	Update(ctx context.Context, postId string, req entity.UpdatePostRequest) (entity.Post, error)
	Delete(ctx context.Context, postId string) error
	Feed(ctx context.Context, limit, offset int64) ([]entity.Post, error)
	ListByAuthor(ctx context.Context, authorId string, limit, offset int64) ([]entity.Post, error)
	ToggleLike(ctx context.Context, actor entity.User, postId string) (entity.LikeResult, error)
}

type postUsecase struct {
	postRepo    repository.PostRepository
	commentRepo repository.CommentRepository
	notifier    Notifier
}

func NewPostUsecase(postRepo repository.PostRepository, commentRepo repository.CommentRepository, notifier Notifier) PostUsecase {
	return &postUsecase{
		postRepo:    postRepo,
		commentRepo: commentRepo,
		notifier:    notifier,
	}
}

func (u *postUsecase) Get(ctx context.Context, postId string) (entity.Post, error) {
	post, err := u.postRepo.Get(ctx, postId)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return entity.Post{}, apperror.NotFound("post not found")
		}
		return entity.Post{}, apperror.Internal(err)
	}
	return post, nil
}

func (u *postUsecase) Create(ctx context.Context, author entity.User, req entity.CreatePostRequest) (entity.Post, error) {
	post := entity.Post{
		AuthorId: author.Id,
		Content:  req.Content,
		MediaURL: req.MediaURL,
	}
	postId, err := u.postRepo.Create(ctx, post)
	if err != nil {
		return entity.Post{}, apperror.Internal(err)
	}

	created, err := u.postRepo.Get(ctx, postId)
	if err != nil {
		return entity.Post{}, apperror.Internal(err)
	}

	for _, friendId := range author.Friends {
		u.notifier.Publish(NotificationEvent{
			RecipientId: friendId,
			ActorId:     author.Id,
			Type:        entity.NotificationPost,
			RelatedId:   postId,
		})
	}
	return created, nil
}

func (u *postUsecase) Update(ctx context.Context, postId string, req entity.UpdatePostRequest) (entity.Post, error) {
	if err := u.postRepo.Update(ctx, postId, req); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return entity.Post{}, apperror.NotFound("post not found")
		}
		return entity.Post{}, apperror.Internal(err)
	}
	return u.Get(ctx, postId)
}

func (u *postUsecase) Delete(ctx context.Context, postId string) error {
	if err := u.postRepo.Delete(ctx, postId); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperror.NotFound("post not found")
		}
		return apperror.Internal(err)
	}
	// Comments are orphaned otherwise; referential links are not enforced
	// by the store.
	if err := u.commentRepo.DeleteByPost(ctx, postId); err != nil {
		return apperror.Internal(err)
	}
	return nil
}

func (u *postUsecase) Feed(ctx context.Context, limit, offset int64) ([]entity.Post, error) {
	posts, err := u.postRepo.List(ctx, limit, offset)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return posts, nil
}

func (u *postUsecase) ListByAuthor(ctx context.Context, authorId string, limit, offset int64) ([]entity.Post, error) {
	posts, err := u.postRepo.ListByAuthor(ctx, authorId, limit, offset)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return posts, nil
}

func (u *postUsecase) ToggleLike(ctx context.Context, actor entity.User, postId string) (entity.LikeResult, error) {
	post, err := u.Get(ctx, postId)
	if err != nil {
		return entity.LikeResult{}, err
	}

	result, err := u.postRepo.ToggleLike(ctx, postId, actor.Id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return entity.LikeResult{}, apperror.NotFound("post not found")
		}
		return entity.LikeResult{}, apperror.Internal(err)
	}

	if result.IsLiked {
		u.notifier.Publish(NotificationEvent{
			RecipientId: post.AuthorId,
			ActorId:     actor.Id,
			Type:        entity.NotificationLike,
			RelatedId:   postId,
		})
	}
	return result, nil
}
