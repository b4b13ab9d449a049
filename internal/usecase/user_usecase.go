package usecase

import (
	"context"
	"errors"

	"entreprenapp/internal/entity"
	"entreprenapp/internal/repository"
	"entreprenapp/pkg/apperror"
)

const suggestionLimit = 20

type UserUsecase interface {
	Get(ctx context.Context, userId string) (entity.User, error)
	UpdateProfile(ctx context.Context, userId string, req entity.UpdateProfileRequest) (entity.User, error)
	Delete(ctx context.Context, actor entity.User, targetId string) error
	Suggestions(ctx context.Context, forUser entity.User) ([]entity.User, error)
	HandleUnregisterClient(ctx context.Context, userId string) error
	HandleRegisterClient(ctx context.Context, userId string) error
}

type userUsecase struct {
	userRepo   repository.UserRepository
	friendRepo repository.FriendRequestRepository
}

func NewUserUsecase(userRepo repository.UserRepository, friendRepo repository.FriendRequestRepository) UserUsecase {
	return &userUsecase{
		userRepo:   userRepo,
		friendRepo: friendRepo,
	}
}

func (u *userUsecase) Get(ctx context.Context, userId string) (entity.User, error) {
	user, err := u.userRepo.Get(ctx, userId)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return entity.User{}, apperror.NotFound("user not found")
		}
		return entity.User{}, apperror.Internal(err)
	}
	user.Password = ""
	return user, nil
}

func (u *userUsecase) UpdateProfile(ctx context.Context, userId string, req entity.UpdateProfileRequest) (entity.User, error) {
	if err := u.userRepo.UpdateProfile(ctx, userId, req); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return entity.User{}, apperror.NotFound("user not found")
		}
		return entity.User{}, apperror.Internal(err)
	}
	return u.Get(ctx, userId)
}

// Delete soft-deletes an account. Only the account owner or an admin may do
// it.
func (u *userUsecase) Delete(ctx context.Context, actor entity.User, targetId string) error {
	if actor.Id != targetId && actor.Role != entity.RoleAdmin {
		return apperror.Forbidden("Vous n'avez pas la permission d'effectuer cette action")
	}
	if err := u.userRepo.SoftDelete(ctx, targetId); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperror.NotFound("user not found")
		}
		return apperror.Internal(err)
	}
	return nil
}

// Suggestions returns verified users with no friendship edge and no pending
// request with the caller.
func (u *userUsecase) Suggestions(ctx context.Context, forUser entity.User) ([]entity.User, error) {
	exclude := append([]string{}, forUser.Friends...)

	incoming, err := u.friendRepo.ListIncoming(ctx, forUser.Id)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	for _, req := range incoming {
		exclude = append(exclude, req.SenderId)
	}

	outgoing, err := u.friendRepo.ListOutgoing(ctx, forUser.Id)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	for _, req := range outgoing {
		exclude = append(exclude, req.ReceiverId)
	}

	users, err := u.userRepo.Suggestions(ctx, forUser.Id, exclude, suggestionLimit)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	for i := range users {
		users[i].Password = ""
	}
	return users, nil
}

func (u *userUsecase) HandleRegisterClient(ctx context.Context, userId string) error {
	return u.userRepo.SetOnline(ctx, userId, true)
}

func (u *userUsecase) HandleUnregisterClient(ctx context.Context, userId string) error {
	return u.userRepo.SetOnline(ctx, userId, false)
}
