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

type FriendRequestRepository interface {
	Get(ctx context.Context, requestId string) (entity.FriendRequest, error)
	Create(ctx context.Context, req entity.FriendRequest) (string, error)
	PendingBetween(ctx context.Context, userA, userB string) (bool, error)
	// Resolve flips a pending request to accepted/rejected. The pending
	// state is part of the filter so the transition is one-way and
	// concurrent resolutions cannot both win.
	Resolve(ctx context.Context, requestId string, status entity.FriendRequestStatus) (entity.FriendRequest, error)
	ListIncoming(ctx context.Context, userId string) ([]entity.FriendRequest, error)
	ListOutgoing(ctx context.Context, userId string) ([]entity.FriendRequest, error)
}

type friendRequestRepository struct {
	db *mongo.Database
}

func NewFriendRequestRepository(db *mongo.Database) FriendRequestRepository {
	return &friendRequestRepository{db: db}
}

func (r *friendRequestRepository) collection() *mongo.Collection {
	return r.db.Collection("friend_requests")
}

func (r *friendRequestRepository) Get(ctx context.Context, requestId string) (entity.FriendRequest, error) {
	var req entity.FriendRequest
	err := r.collection().FindOne(ctx, bson.M{"_id": requestId}).Decode(&req)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return entity.FriendRequest{}, ErrNotFound
		}
		return entity.FriendRequest{}, err
	}
	return req, nil
}

func (r *friendRequestRepository) Create(ctx context.Context, req entity.FriendRequest) (string, error) {
	req.Id = uuid.New().String()
	req.Status = entity.FriendRequestPending
	now := time.Now()
	req.CreatedAt = now
	req.UpdatedAt = now

	if _, err := r.collection().InsertOne(ctx, req); err != nil {
		return "", err
	}
	return req.Id, nil
}

func (r *friendRequestRepository) PendingBetween(ctx context.Context, userA, userB string) (bool, error) {
	filter := bson.M{
		"status": entity.FriendRequestPending,
		"$or": []bson.M{
			{"senderId": userA, "receiverId": userB},
			{"senderId": userB, "receiverId": userA},
		},
	}
	count, err := r.collection().CountDocuments(ctx, filter)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *friendRequestRepository) Resolve(ctx context.Context, requestId string, status entity.FriendRequestStatus) (entity.FriendRequest, error) {
	filter := bson.M{"_id": requestId, "status": entity.FriendRequestPending}
	update := bson.M{"$set": bson.M{"status": status, "updatedAt": time.Now()}}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var req entity.FriendRequest
	err := r.collection().FindOneAndUpdate(ctx, filter, update, opts).Decode(&req)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return entity.FriendRequest{}, ErrNotFound
		}
		return entity.FriendRequest{}, err
	}
	return req, nil
}

func (r *friendRequestRepository) ListIncoming(ctx context.Context, userId string) ([]entity.FriendRequest, error) {
	return r.list(ctx, bson.M{"receiverId": userId, "status": entity.FriendRequestPending})
}

func (r *friendRequestRepository) ListOutgoing(ctx context.Context, userId string) ([]entity.FriendRequest, error) {
	return r.list(ctx, bson.M{"senderId": userId, "status": entity.FriendRequestPending})
}

func (r *friendRequestRepository) list(ctx context.Context, filter bson.M) ([]entity.FriendRequest, error) {
	opts := options.Find().SetSort(bson.M{"createdAt": -1})
	cursor, err := r.collection().Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var requests []entity.FriendRequest
	if err := cursor.All(ctx, &requests); err != nil {
		return nil, err
	}
	return requests, nil
}
