package usecase

import (
	"context"
	"errors"
	"time"

	"entreprenapp/internal/entity"
	"entreprenapp/internal/repository"
	"entreprenapp/pkg/apperror"
)

type ChallengeUsecase interface {
	Get(ctx context.Context, challengeId string) (entity.Challenge, error)
	Create(ctx context.Context, creator entity.User, req entity.CreateChallengeRequest) (entity.Challenge, error)
	Delete(ctx context.Context, challengeId string) error
	List(ctx context.Context, limit, offset int64) ([]entity.Challenge, error)
	Apply(ctx context.Context, applicant entity.User, challengeId string, req entity.ApplyChallengeRequest) (entity.Challenge, error)
}

type challengeUsecase struct {
	challengeRepo repository.ChallengeRepository
	notifier      Notifier
}

func NewChallengeUsecase(challengeRepo repository.ChallengeRepository, notifier Notifier) ChallengeUsecase {
	return &challengeUsecase{
		challengeRepo: challengeRepo,
		notifier:      notifier,
	}
}

func (u *challengeUsecase) Get(ctx context.Context, challengeId string) (entity.Challenge, error) {
	challenge, err := u.challengeRepo.Get(ctx, challengeId)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return entity.Challenge{}, apperror.NotFound("challenge not found")
		}
		return entity.Challenge{}, apperror.Internal(err)
	}
	return challenge, nil
}

func (u *challengeUsecase) Create(ctx context.Context, creator entity.User, req entity.CreateChallengeRequest) (entity.Challenge, error) {
	if req.Deadline.Before(time.Now()) {
		return entity.Challenge{}, apperror.BadRequest("deadline must be in the future")
	}

	challenge := entity.Challenge{
		CreatorId:   creator.Id,
		Title:       req.Title,
		Description: req.Description,
		Deadline:    req.Deadline,
	}
	challengeId, err := u.challengeRepo.Create(ctx, challenge)
	if err != nil {
		return entity.Challenge{}, apperror.Internal(err)
	}
	return u.Get(ctx, challengeId)
}

func (u *challengeUsecase) Delete(ctx context.Context, challengeId string) error {
	if err := u.challengeRepo.Delete(ctx, challengeId); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperror.NotFound("challenge not found")
		}
		return apperror.Internal(err)
	}
	return nil
}

func (u *challengeUsecase) List(ctx context.Context, limit, offset int64) ([]entity.Challenge, error) {
	challenges, err := u.challengeRepo.List(ctx, limit, offset)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return challenges, nil
}

func (u *challengeUsecase) Apply(ctx context.Context, applicant entity.User, challengeId string, req entity.ApplyChallengeRequest) (entity.Challenge, error) {
	challenge, err := u.Get(ctx, challengeId)
	if err != nil {
		return entity.Challenge{}, err
	}
	if time.Now().After(challenge.Deadline) {
		return entity.Challenge{}, apperror.BadRequest("challenge deadline has passed")
	}

	app := entity.ChallengeApplication{
		UserId:   applicant.Id,
		Proposal: req.Proposal,
	}
	if err := u.challengeRepo.Apply(ctx, challengeId, app); err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return entity.Challenge{}, apperror.NotFound("challenge not found")
		case errors.Is(err, repository.ErrAlreadyApplied):
			return entity.Challenge{}, apperror.BadRequest("already applied to this challenge")
		default:
			return entity.Challenge{}, apperror.Internal(err)
		}
	}

	u.notifier.Publish(NotificationEvent{
		RecipientId: challenge.CreatorId,
		ActorId:     applicant.Id,
		Type:        entity.NotificationChallenge,
		RelatedId:   challengeId,
	})

	return u.Get(ctx, challengeId)
}
