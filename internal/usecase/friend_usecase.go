package usecase

import (
	"context"
	"errors"

	"entreprenapp/internal/entity"
	"entreprenapp/internal/repository"
	"entreprenapp/pkg/apperror"
)

type FriendUsecase interface {
	Send(ctx context.Context, sender entity.User, receiverId string) (entity.FriendRequest, error)
	Accept(ctx context.Context, actor entity.User, requestId string) (entity.FriendRequest, error)
	Reject(ctx context.Context, actor entity.User, requestId string) (entity.FriendRequest, error)
	ListIncoming(ctx context.Context, userId string) ([]entity.FriendRequest, error)
	ListOutgoing(ctx context.Context, userId string) ([]entity.FriendRequest, error)
	Unfriend(ctx context.Context, actor entity.User, friendId string) error
}

type friendUsecase struct {
	friendRepo repository.FriendRequestRepository
	userRepo   repository.UserRepository
	notifier   Notifier
}

func NewFriendUsecase(friendRepo repository.FriendRequestRepository, userRepo repository.UserRepository, notifier Notifier) FriendUsecase {
	return &friendUsecase{
		friendRepo: friendRepo,
		userRepo:   userRepo,
		notifier:   notifier,
	}
}

func (u *friendUsecase) Send(ctx context.Context, sender entity.User, receiverId string) (entity.FriendRequest, error) {
	if receiverId == sender.Id {
		return entity.FriendRequest{}, apperror.BadRequest("cannot send a friend request to yourself")
	}

	for _, friendId := range sender.Friends {
		if friendId == receiverId {
			return entity.FriendRequest{}, apperror.BadRequest("already friends")
		}
	}

	if _, err := u.userRepo.Get(ctx, receiverId); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return entity.FriendRequest{}, apperror.NotFound("user not found")
		}
		return entity.FriendRequest{}, apperror.Internal(err)
	}

	pending, err := u.friendRepo.PendingBetween(ctx, sender.Id, receiverId)
	if err != nil {
		return entity.FriendRequest{}, apperror.Internal(err)
	}
	if pending {
		return entity.FriendRequest{}, apperror.BadRequest("a pending request already exists")
	}

	request := entity.FriendRequest{
		SenderId:   sender.Id,
		ReceiverId: receiverId,
	}
	requestId, err := u.friendRepo.Create(ctx, request)
	if err != nil {
		return entity.FriendRequest{}, apperror.Internal(err)
	}

	u.notifier.Publish(NotificationEvent{
		RecipientId: receiverId,
		ActorId:     sender.Id,
		Type:        entity.NotificationFriendRequest,
		RelatedId:   requestId,
	})

	return u.friendRepo.Get(ctx, requestId)
}

func (u *friendUsecase) Accept(ctx context.Context, actor entity.User, requestId string) (entity.FriendRequest, error) {
	resolved, err := u.resolve(ctx, actor, requestId, entity.FriendRequestAccepted)
	if err != nil {
		return entity.FriendRequest{}, err
	}

	if err := u.userRepo.AddFriends(ctx, resolved.SenderId, resolved.ReceiverId); err != nil {
		return entity.FriendRequest{}, apperror.Internal(err)
	}

	u.notifier.Publish(NotificationEvent{
		RecipientId: resolved.SenderId,
		ActorId:     actor.Id,
		Type:        entity.NotificationFriendAccept,
		RelatedId:   resolved.Id,
	})

	return resolved, nil
}

func (u *friendUsecase) Reject(ctx context.Context, actor entity.User, requestId string) (entity.FriendRequest, error) {
	return u.resolve(ctx, actor, requestId, entity.FriendRequestRejected)
}

// resolve enforces that only the receiver settles a pending request. The
// pending precondition lives in the repository filter, so an already-settled
// request surfaces as not-found rather than flipping state.
func (u *friendUsecase) resolve(ctx context.Context, actor entity.User, requestId string, status entity.FriendRequestStatus) (entity.FriendRequest, error) {
	request, err := u.friendRepo.Get(ctx, requestId)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return entity.FriendRequest{}, apperror.NotFound("friend request not found")
		}
		return entity.FriendRequest{}, apperror.Internal(err)
	}

	if request.ReceiverId != actor.Id {
		return entity.FriendRequest{}, apperror.Forbidden("Vous n'avez pas la permission d'effectuer cette action")
	}
	if request.Status != entity.FriendRequestPending {
		return entity.FriendRequest{}, apperror.BadRequest("friend request already resolved")
	}

	resolved, err := u.friendRepo.Resolve(ctx, requestId, status)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return entity.FriendRequest{}, apperror.BadRequest("friend request already resolved")
		}
		return entity.FriendRequest{}, apperror.Internal(err)
	}
	return resolved, nil
}

func (u *friendUsecase) ListIncoming(ctx context.Context, userId string) ([]entity.FriendRequest, error) {
	requests, err := u.friendRepo.ListIncoming(ctx, userId)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return requests, nil
}

func (u *friendUsecase) ListOutgoing(ctx context.Context, userId string) ([]entity.FriendRequest, error) {
	requests, err := u.friendRepo.ListOutgoing(ctx, userId)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return requests, nil
}

func (u *friendUsecase) Unfriend(ctx context.Context, actor entity.User, friendId string) error {
	found := false
	for _, id := range actor.Friends {
		if id == friendId {
			found = true
			break
		}
	}
	if !found {
		return apperror.BadRequest("not friends")
	}

	if err := u.userRepo.RemoveFriends(ctx, actor.Id, friendId); err != nil {
		return apperror.Internal(err)
	}
	return nil
}
