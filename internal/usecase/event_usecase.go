package usecase

import (
	"context"
	"errors"

	"entreprenapp/internal/entity"
	"entreprenapp/internal/repository"
	"entreprenapp/pkg/apperror"
)

type EventUsecase interface {
	Get(ctx context.Context, eventId string) (entity.Event, error)
	Create(ctx context.Context, organizer entity.User, req entity.CreateEventRequest) (entity.Event, error)
	Update(ctx context.Context, eventId string, req entity.UpdateEventRequest) (entity.Event, error)
	Delete(ctx context.Context, eventId string) error
	List(ctx context.Context, limit, offset int64) ([]entity.Event, error)
	Join(ctx context.Context, actor entity.User, eventId string) (entity.Event, error)
	Leave(ctx context.Context, actor entity.User, eventId string) (entity.Event, error)
}

type eventUsecase struct {
	eventRepo repository.EventRepository
	notifier  Notifier
}

func NewEventUsecase(eventRepo repository.EventRepository, notifier Notifier) EventUsecase {
	return &eventUsecase{
		eventRepo: eventRepo,
		notifier:  notifier,
	}
}

func (u *eventUsecase) Get(ctx context.Context, eventId string) (entity.Event, error) {
	event, err := u.eventRepo.Get(ctx, eventId)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return entity.Event{}, apperror.NotFound("event not found")
		}
		return entity.Event{}, apperror.Internal(err)
	}
	return event, nil
}

func (u *eventUsecase) Create(ctx context.Context, organizer entity.User, req entity.CreateEventRequest) (entity.Event, error) {
	event := entity.Event{
		OrganizerId: organizer.Id,
		Title:       req.Title,
		Description: req.Description,
		Location:    req.Location,
		StartsAt:    req.StartsAt,
		EndsAt:      req.EndsAt,
	}
	eventId, err := u.eventRepo.Create(ctx, event)
	if err != nil {
		return entity.Event{}, apperror.Internal(err)
	}

	for _, friendId := range organizer.Friends {
		u.notifier.Publish(NotificationEvent{
			RecipientId: friendId,
			ActorId:     organizer.Id,
			Type:        entity.NotificationEvent,
			RelatedId:   eventId,
		})
	}

	return u.Get(ctx, eventId)
}

func (u *eventUsecase) Update(ctx context.Context, eventId string, req entity.UpdateEventRequest) (entity.Event, error) {
	if err := u.eventRepo.Update(ctx, eventId, req); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return entity.Event{}, apperror.NotFound("event not found")
		}
		return entity.Event{}, apperror.Internal(err)
	}
	return u.Get(ctx, eventId)
}

func (u *eventUsecase) Delete(ctx context.Context, eventId string) error {
	if err := u.eventRepo.Delete(ctx, eventId); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperror.NotFound("event not found")
		}
		return apperror.Internal(err)
	}
	return nil
}

func (u *eventUsecase) List(ctx context.Context, limit, offset int64) ([]entity.Event, error) {
	events, err := u.eventRepo.List(ctx, limit, offset)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return events, nil
}

func (u *eventUsecase) Join(ctx context.Context, actor entity.User, eventId string) (entity.Event, error) {
	if err := u.eventRepo.Join(ctx, eventId, actor.Id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return entity.Event{}, apperror.NotFound("event not found")
		}
		return entity.Event{}, apperror.Internal(err)
	}
	return u.Get(ctx, eventId)
}

func (u *eventUsecase) Leave(ctx context.Context, actor entity.User, eventId string) (entity.Event, error) {
	if err := u.eventRepo.Leave(ctx, eventId, actor.Id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return entity.Event{}, apperror.NotFound("event not found")
		}
		return entity.Event{}, apperror.Internal(err)
	}
	return u.Get(ctx, eventId)
}
