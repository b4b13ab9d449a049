package usecase

import (
	"context"
	"errors"

	"entreprenapp/internal/entity"
	"entreprenapp/internal/repository"
	"entreprenapp/pkg/apperror"
)

type ProjectUsecase interface {
	Get(ctx context.Context, projectId string) (entity.Project, error)
	Create(ctx context.Context, owner entity.User, req entity.CreateProjectRequest) (entity.Project, error)
	Delete(ctx context.Context, projectId string) error
	List(ctx context.Context, limit, offset int64) ([]entity.Project, error)
	Invest(ctx context.Context, investor entity.User, projectId string, amount int64) (entity.Project, error)
}

type projectUsecase struct {
	projectRepo repository.ProjectRepository
	notifier    Notifier
}

func NewProjectUsecase(projectRepo repository.ProjectRepository, notifier Notifier) ProjectUsecase {
	return &projectUsecase{
		projectRepo: projectRepo,
		notifier:    notifier,
	}
}

func (u *projectUsecase) Get(ctx context.Context, projectId string) (entity.Project, error) {
	project, err := u.projectRepo.Get(ctx, projectId)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return entity.Project{}, apperror.NotFound("project not found")
		}
		return entity.Project{}, apperror.Internal(err)
	}
	return project, nil
}

func (u *projectUsecase) Create(ctx context.Context, owner entity.User, req entity.CreateProjectRequest) (entity.Project, error) {
	project := entity.Project{
		OwnerId:     owner.Id,
		Title:       req.Title,
		Pitch:       req.Pitch,
		FundingGoal: req.FundingGoal,
	}
	projectId, err := u.projectRepo.Create(ctx, project)
	if err != nil {
		return entity.Project{}, apperror.Internal(err)
	}
	return u.Get(ctx, projectId)
}

func (u *projectUsecase) Delete(ctx context.Context, projectId string) error {
	if err := u.projectRepo.Delete(ctx, projectId); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperror.NotFound("project not found")
		}
		return apperror.Internal(err)
	}
	return nil
}

func (u *projectUsecase) List(ctx context.Context, limit, offset int64) ([]entity.Project, error) {
	projects, err := u.projectRepo.List(ctx, limit, offset)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return projects, nil
}

func (u *projectUsecase) Invest(ctx context.Context, investor entity.User, projectId string, amount int64) (entity.Project, error) {
	inv := entity.Investment{
		UserId: investor.Id,
		Amount: amount,
	}
	if err := u.projectRepo.Invest(ctx, projectId, inv); err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return entity.Project{}, apperror.NotFound("project not found")
		case errors.Is(err, repository.ErrGoalExceeded):
			return entity.Project{}, apperror.BadRequest("investment would exceed the funding goal")
		default:
			return entity.Project{}, apperror.Internal(err)
		}
	}

	project, err := u.Get(ctx, projectId)
	if err != nil {
		return entity.Project{}, err
	}

	u.notifier.Publish(NotificationEvent{
		RecipientId: project.OwnerId,
		ActorId:     investor.Id,
		Type:        entity.NotificationInvestment,
		RelatedId:   projectId,
	})

	return project, nil
}
