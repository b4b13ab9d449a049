package usecase

import (
	"context"
	"errors"

	"entreprenapp/internal/entity"
	"entreprenapp/internal/repository"
	"entreprenapp/pkg/apperror"
)

type MessageUsecase interface {
	// Send persists the message first; the live push to an online
	// recipient is best-effort and never affects the result.
	Send(ctx context.Context, sender entity.User, req entity.SendMessageRequest) (entity.Message, error)
	Conversations(ctx context.Context, userId string) ([]entity.Conversation, error)
	Messages(ctx context.Context, actor entity.User, conversationId string, limit, offset int64) ([]entity.Message, error)
	MarkRead(ctx context.Context, actor entity.User, conversationId string) error
}

type messageUsecase struct {
	messageRepo repository.MessageRepository
	userRepo    repository.UserRepository
	notifier    Notifier
}

func NewMessageUsecase(messageRepo repository.MessageRepository, userRepo repository.UserRepository, notifier Notifier) MessageUsecase {
	return &messageUsecase{
		messageRepo: messageRepo,
		userRepo:    userRepo,
		notifier:    notifier,
	}
}

func (u *messageUsecase) Send(ctx context.Context, sender entity.User, req entity.SendMessageRequest) (entity.Message, error) {
	if req.RecipientId == sender.Id {
		return entity.Message{}, apperror.BadRequest("cannot message yourself")
	}

	if _, err := u.userRepo.Get(ctx, req.RecipientId); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return entity.Message{}, apperror.NotFound("recipient not found")
		}
		return entity.Message{}, apperror.Internal(err)
	}

	conv, err := u.messageRepo.GetOrCreateConversation(ctx, sender.Id, req.RecipientId)
	if err != nil {
		return entity.Message{}, apperror.Internal(err)
	}

	msg := entity.Message{
		ConversationId: conv.Id,
		SenderId:       sender.Id,
		Body:           req.Body,
	}
	created, err := u.messageRepo.CreateMessage(ctx, msg)
	if err != nil {
		return entity.Message{}, apperror.Internal(err)
	}

	// Live delivery plus a persisted notification; both are additive to
	// the stored message.
	u.notifier.PushToUser(req.RecipientId, "new_message", created)
	u.notifier.Publish(NotificationEvent{
		RecipientId: req.RecipientId,
		ActorId:     sender.Id,
		Type:        entity.NotificationMessage,
		RelatedId:   conv.Id,
	})

	return created, nil
}

func (u *messageUsecase) Conversations(ctx context.Context, userId string) ([]entity.Conversation, error) {
	convs, err := u.messageRepo.ListConversations(ctx, userId)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return convs, nil
}

func (u *messageUsecase) Messages(ctx context.Context, actor entity.User, conversationId string, limit, offset int64) ([]entity.Message, error) {
	if err := u.requireParticipant(ctx, actor, conversationId); err != nil {
		return nil, err
	}

	msgs, err := u.messageRepo.ListMessages(ctx, conversationId, limit, offset)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return msgs, nil
}

func (u *messageUsecase) MarkRead(ctx context.Context, actor entity.User, conversationId string) error {
	if err := u.requireParticipant(ctx, actor, conversationId); err != nil {
		return err
	}
	if err := u.messageRepo.MarkRead(ctx, conversationId, actor.Id); err != nil {
		return apperror.Internal(err)
	}
	return nil
}

func (u *messageUsecase) requireParticipant(ctx context.Context, actor entity.User, conversationId string) error {
	conv, err := u.messageRepo.GetConversation(ctx, conversationId)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperror.NotFound("conversation not found")
		}
		return apperror.Internal(err)
	}
	for _, participantId := range conv.Participants {
		if participantId == actor.Id {
			return nil
		}
	}
	return apperror.Forbidden("Vous n'avez pas la permission d'effectuer cette action")
}
