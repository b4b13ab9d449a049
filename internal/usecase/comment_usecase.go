package usecase

import (
	"context"
	"errors"

	"entreprenapp/internal/entity"
	"entreprenapp/internal/repository"
	"entreprenapp/pkg/apperror"
)

type CommentUsecase interface {
	Get(ctx context.Context, commentId string) (entity.Comment, error)
	Create(ctx context.Context, actor entity.User, postId string, req entity.CreateCommentRequest) (entity.Comment, error)
	Update(ctx context.Context, commentId, content string) (entity.Comment, error)
	Delete(ctx context.Context, commentId string) error
	ListByPost(ctx context.Context, postId string, limit, offset int64) ([]entity.Comment, error)
	Reply(ctx context.Context, actor entity.User, commentId string, req entity.CreateReplyRequest) (entity.Comment, error)
	ToggleLike(ctx context.Context, actor entity.User, commentId string) (entity.LikeResult, error)
}

type commentUsecase struct {
	commentRepo repository.CommentRepository
	postRepo    repository.PostRepository
	notifier    Notifier
}

func NewCommentUsecase(commentRepo repository.CommentRepository, postRepo repository.PostRepository, notifier Notifier) CommentUsecase {
	return &commentUsecase{
		commentRepo: commentRepo,
		postRepo:    postRepo,
		notifier:    notifier,
	}
}

func (u *commentUsecase) Get(ctx context.Context, commentId string) (entity.Comment, error) {
	comment, err := u.commentRepo.Get(ctx, commentId)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return entity.Comment{}, apperror.NotFound("comment not found")
		}
		return entity.Comment{}, apperror.Internal(err)
	}
	return comment, nil
}

func (u *commentUsecase) Create(ctx context.Context, actor entity.User, postId string, req entity.CreateCommentRequest) (entity.Comment, error) {
	post, err := u.postRepo.Get(ctx, postId)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return entity.Comment{}, apperror.NotFound("post not found")
		}
		return entity.Comment{}, apperror.Internal(err)
	}

	comment := entity.Comment{
		PostId:   postId,
		AuthorId: actor.Id,
		Content:  req.Content,
	}
	commentId, err := u.commentRepo.Create(ctx, comment)
	if err != nil {
		return entity.Comment{}, apperror.Internal(err)
	}

	u.notifier.Publish(NotificationEvent{
		RecipientId: post.AuthorId,
		ActorId:     actor.Id,
		Type:        entity.NotificationComment,
		RelatedId:   postId,
	})

	return u.Get(ctx, commentId)
}

func (u *commentUsecase) Update(ctx context.Context, commentId, content string) (entity.Comment, error) {
	if err := u.commentRepo.Update(ctx, commentId, content); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return entity.Comment{}, apperror.NotFound("comment not found")
		}
		return entity.Comment{}, apperror.Internal(err)
	}
	return u.Get(ctx, commentId)
}

func (u *commentUsecase) Delete(ctx context.Context, commentId string) error {
	if err := u.commentRepo.Delete(ctx, commentId); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperror.NotFound("comment not found")
		}
		return apperror.Internal(err)
	}
	return nil
}

func (u *commentUsecase) ListByPost(ctx context.Context, postId string, limit, offset int64) ([]entity.Comment, error) {
	comments, err := u.commentRepo.ListByPost(ctx, postId, limit, offset)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return comments, nil
}

func (u *commentUsecase) Reply(ctx context.Context, actor entity.User, commentId string, req entity.CreateReplyRequest) (entity.Comment, error) {
	comment, err := u.Get(ctx, commentId)
	if err != nil {
		return entity.Comment{}, err
	}

	reply := entity.Reply{
		AuthorId: actor.Id,
		Content:  req.Content,
	}
	if _, err := u.commentRepo.AddReply(ctx, commentId, reply); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return entity.Comment{}, apperror.NotFound("comment not found")
		}
		return entity.Comment{}, apperror.Internal(err)
	}

	u.notifier.Publish(NotificationEvent{
		RecipientId: comment.AuthorId,
		ActorId:     actor.Id,
		Type:        entity.NotificationComment,
		RelatedId:   comment.PostId,
	})

	return u.Get(ctx, commentId)
}

func (u *commentUsecase) ToggleLike(ctx context.Context, actor entity.User, commentId string) (entity.LikeResult, error) {
	comment, err := u.Get(ctx, commentId)
	if err != nil {
		return entity.LikeResult{}, err
	}

	result, err := u.commentRepo.ToggleLike(ctx, commentId, actor.Id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return entity.LikeResult{}, apperror.NotFound("comment not found")
		}
		return entity.LikeResult{}, apperror.Internal(err)
	}

	if result.IsLiked {
		u.notifier.Publish(NotificationEvent{
			RecipientId: comment.AuthorId,
			ActorId:     actor.Id,
			Type:        entity.NotificationLike,
			RelatedId:   comment.PostId,
		})
	}
	return result, nil
}
