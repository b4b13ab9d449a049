package repository

import (
	"context"
	"time"

	"entreprenapp/internal/entity"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// notificationTTL controls the store-level expiring index; documents are
// purged 30 days after creation.
const notificationTTL = 30 * 24 * time.Hour

type NotificationRepository interface {
	Create(ctx context.Context, n entity.Notification) (string, error)
	ListByRecipient(ctx context.Context, recipientId string, limit, offset int64) ([]entity.Notification, error)
	UnreadCount(ctx context.Context, recipientId string) (int64, error)
	MarkRead(ctx context.Context, notificationId, recipientId string) error
	MarkAllRead(ctx context.Context, recipientId string) error
	EnsureIndexes(ctx context.Context) error
}

type notificationRepository struct {
	db *mongo.Database
}

func NewNotificationRepository(db *mongo.Database) NotificationRepository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) collection() *mongo.Collection {
	return r.db.Collection("notifications")
}

func (r *notificationRepository) Create(ctx context.Context, n entity.Notification) (string, error) {
	n.Id = uuid.New().String()
	n.CreatedAt = time.Now()

	if _, err := r.collection().InsertOne(ctx, n); err != nil {
		return "", err
	}
	return n.Id, nil
}

func (r *notificationRepository) ListByRecipient(ctx context.Context, recipientId string, limit, offset int64) ([]entity.Notification, error) {
	opts := options.Find().
		SetSort(bson.M{"createdAt": -1}).
		SetLimit(limit).
		SetSkip(offset)

	cursor, err := r.collection().Find(ctx, bson.M{"recipientId": recipientId}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var notifications []entity.Notification
	if err := cursor.All(ctx, &notifications); err != nil {
		return nil, err
	}
	return notifications, nil
}

func (r *notificationRepository) UnreadCount(ctx context.Context, recipientId string) (int64, error) {
	return r.collection().CountDocuments(ctx, bson.M{"recipientId": recipientId, "read": false})
}

func (r *notificationRepository) MarkRead(ctx context.Context, notificationId, recipientId string) error {
	res, err := r.collection().UpdateOne(ctx,
		bson.M{"_id": notificationId, "recipientId": recipientId},
		bson.M{"$set": bson.M{"read": true}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *notificationRepository) MarkAllRead(ctx context.Context, recipientId string) error {
	_, err := r.collection().UpdateMany(ctx,
		bson.M{"recipientId": recipientId, "read": false},
		bson.M{"$set": bson.M{"read": true}},
	)
	return err
}

func (r *notificationRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection().Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "createdAt", Value: 1}},
			Options: options.Index().SetExpireAfterSeconds(int32(notificationTTL.Seconds())),
		},
		{
			Keys: bson.D{{Key: "recipientId", Value: 1}, {Key: "createdAt", Value: -1}},
		},
	})
	return err
}
