package repository

import (
	"context"
	"strings"
	"time"

	"entreprenapp/internal/entity"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MessageRepository interface {
	GetOrCreateConversation(ctx context.Context, userA, userB string) (entity.Conversation, error)
	GetConversation(ctx context.Context, conversationId string) (entity.Conversation, error)
	ListConversations(ctx context.Context, userId string) ([]entity.Conversation, error)
	CreateMessage(ctx context.Context, msg entity.Message) (entity.Message, error)
	ListMessages(ctx context.Context, conversationId string, limit, offset int64) ([]entity.Message, error)
	MarkRead(ctx context.Context, conversationId, readerId string) error
	EnsureIndexes(ctx context.Context) error
}

type messageRepository struct {
	db *mongo.Database
}

func NewMessageRepository(db *mongo.Database) MessageRepository {
	return &messageRepository{db: db}
}

func (r *messageRepository) conversations() *mongo.Collection {
	return r.db.Collection("conversations")
}

func (r *messageRepository) messages() *mongo.Collection {
	return r.db.Collection("messages")
}

// PairKey is order-independent so both participants resolve to the same
// conversation.
func PairKey(userA, userB string) string {
	if userA > userB {
		userA, userB = userB, userA
	}
	return strings.Join([]string{userA, userB}, ":")
}

func (r *messageRepository) GetOrCreateConversation(ctx context.Context, userA, userB string) (entity.Conversation, error) {
	pairKey := PairKey(userA, userB)

	var conv entity.Conversation
	err := r.conversations().FindOne(ctx, bson.M{"pairKey": pairKey}).Decode(&conv)
	if err == nil {
		return conv, nil
	}
	if err != mongo.ErrNoDocuments {
		return entity.Conversation{}, err
	}

	conv = entity.Conversation{
		Id:            uuid.New().String(),
		PairKey:       pairKey,
		Participants:  []string{userA, userB},
		LastMessageAt: time.Now(),
		CreatedAt:     time.Now(),
	}
	if _, err := r.conversations().InsertOne(ctx, conv); err != nil {
		// Lost a race against the other participant; the unique pairKey
		// index guarantees the existing document is the one to use.
		if mongo.IsDuplicateKeyError(err) {
			var existing entity.Conversation
			if findErr := r.conversations().FindOne(ctx, bson.M{"pairKey": pairKey}).Decode(&existing); findErr == nil {
				return existing, nil
			}
		}
		return entity.Conversation{}, err
	}
	return conv, nil
}

func (r *messageRepository) GetConversation(ctx context.Context, conversationId string) (entity.Conversation, error) {
	var conv entity.Conversation
	err := r.conversations().FindOne(ctx, bson.M{"_id": conversationId}).Decode(&conv)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return entity.Conversation{}, ErrNotFound
		}
		return entity.Conversation{}, err
	}
	return conv, nil
}

func (r *messageRepository) ListConversations(ctx context.Context, userId string) ([]entity.Conversation, error) {
	opts := options.Find().SetSort(bson.M{"lastMessageAt": -1})
	cursor, err := r.conversations().Find(ctx, bson.M{"participants": userId}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var convs []entity.Conversation
	if err := cursor.All(ctx, &convs); err != nil {
		return nil, err
	}
	return convs, nil
}

func (r *messageRepository) CreateMessage(ctx context.Context, msg entity.Message) (entity.Message, error) {
	msg.Id = uuid.New().String()
	msg.SentAt = time.Now()

	if _, err := r.messages().InsertOne(ctx, msg); err != nil {
		return entity.Message{}, err
	}

	_, err := r.conversations().UpdateOne(ctx, bson.M{"_id": msg.ConversationId}, bson.M{
		"$set": bson.M{"lastMessageAt": msg.SentAt},
	})
	if err != nil {
		return entity.Message{}, err
	}
	return msg, nil
}

func (r *messageRepository) ListMessages(ctx context.Context, conversationId string, limit, offset int64) ([]entity.Message, error) {
	opts := options.Find().
		SetSort(bson.M{"sentAt": -1}).
		SetLimit(limit).
		SetSkip(offset)

	cursor, err := r.messages().Find(ctx, bson.M{"conversationId": conversationId}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var msgs []entity.Message
	if err := cursor.All(ctx, &msgs); err != nil {
		return nil, err
	}
	return msgs, nil
}

// MarkRead stamps every unread message in the conversation that the reader
// did not send.
func (r *messageRepository) MarkRead(ctx context.Context, conversationId, readerId string) error {
	now := time.Now()
	_, err := r.messages().UpdateMany(ctx, bson.M{
		"conversationId": conversationId,
		"senderId":       bson.M{"$ne": readerId},
		"readAt":         bson.M{"$exists": false},
	}, bson.M{
		"$set": bson.M{"readAt": now},
	})
	return err
}

func (r *messageRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.conversations().Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "pairKey", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return err
	}

	_, err = r.messages().Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "conversationId", Value: 1}, {Key: "sentAt", Value: -1}},
	})
	return err
}
