package usecase

import (
	"context"
	"errors"

	"entreprenapp/internal/entity"
	"entreprenapp/internal/repository"
	"entreprenapp/pkg/apperror"
)

type NotificationUsecase interface {
	List(ctx context.Context, recipientId string, limit, offset int64) ([]entity.Notification, error)
	UnreadCount(ctx context.Context, recipientId string) (int64, error)
	MarkRead(ctx context.Context, actor entity.User, notificationId string) error
	MarkAllRead(ctx context.Context, recipientId string) error
}

type notificationUsecase struct {
	repo repository.NotificationRepository
}

func NewNotificationUsecase(repo repository.NotificationRepository) NotificationUsecase {
	return &notificationUsecase{repo: repo}
}

func (u *notificationUsecase) List(ctx context.Context, recipientId string, limit, offset int64) ([]entity.Notification, error) {
	notifications, err := u.repo.ListByRecipient(ctx, recipientId, limit, offset)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return notifications, nil
}

func (u *notificationUsecase) UnreadCount(ctx context.Context, recipientId string) (int64, error) {
	count, err := u.repo.UnreadCount(ctx, recipientId)
	if err != nil {
		return 0, apperror.Internal(err)
	}
	return count, nil
}

// MarkRead scopes the update to the acting recipient, so a user cannot mark
// someone else's notification.
func (u *notificationUsecase) MarkRead(ctx context.Context, actor entity.User, notificationId string) error {
	if err := u.repo.MarkRead(ctx, notificationId, actor.Id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperror.NotFound("notification not found")
		}
		return apperror.Internal(err)
	}
	return nil
}

func (u *notificationUsecase) MarkAllRead(ctx context.Context, recipientId string) error {
	if err := u.repo.MarkAllRead(ctx, recipientId); err != nil {
		return apperror.Internal(err)
	}
	return nil
}
