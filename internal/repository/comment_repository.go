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

type CommentRepository interface {
	Get(ctx context.Context, commentId string) (entity.Comment, error)
	Create(ctx context.Context, comment entity.Comment) (string, error)
	Update(ctx context.Context, commentId, content string) error
	Delete(ctx context.Context, commentId string) error
	DeleteByPost(ctx context.Context, postId string) error
	ListByPost(ctx context.Context, postId string, limit, offset int64) ([]entity.Comment, error)
	AddReply(ctx context.Context, commentId string, reply entity.Reply) (string, error)
	ToggleLike(ctx context.Context, commentId, userId string) (entity.LikeResult, error)
}

type commentRepository struct {
	db *mongo.Database
}

func NewCommentRepository(db *mongo.Database) CommentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) collection() *mongo.Collection {
	return r.db.Collection("comments")
}

func (r *commentRepository) Get(ctx context.Context, commentId string) (entity.Comment, error) {
	var comment entity.Comment
	err := r.collection().FindOne(ctx, bson.M{"_id": commentId}).Decode(&comment)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return entity.Comment{}, ErrNotFound
		}
		return entity.Comment{}, err
	}
	return comment, nil
}

func (r *commentRepository) Create(ctx context.Context, comment entity.Comment) (string, error) {
	comment.Id = uuid.New().String()
	now := time.Now()
	comment.CreatedAt = now
	comment.UpdatedAt = now
	if comment.Likes == nil {
		comment.Likes = []string{}
	}
	if comment.Replies == nil {
		comment.Replies = []entity.Reply{}
	}

	if _, err := r.collection().InsertOne(ctx, comment); err != nil {
		return "", err
	}
	return comment.Id, nil
}

func (r *commentRepository) Update(ctx context.Context, commentId, content string) error {
	res, err := r.collection().UpdateOne(ctx, bson.M{"_id": commentId}, bson.M{
		"$set": bson.M{"content": content, "updatedAt": time.Now()},
	})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *commentRepository) Delete(ctx context.Context, commentId string) error {
	res, err := r.collection().DeleteOne(ctx, bson.M{"_id": commentId})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *commentRepository) DeleteByPost(ctx context.Context, postId string) error {
	_, err := r.collection().DeleteMany(ctx, bson.M{"postId": postId})
	return err
}

func (r *commentRepository) ListByPost(ctx context.Context, postId string, limit, offset int64) ([]entity.Comment, error) {
	opts := options.Find().
		SetSort(bson.M{"createdAt": 1}).
		SetLimit(limit).
		SetSkip(offset)

	cursor, err := r.collection().Find(ctx, bson.M{"postId": postId}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var comments []entity.Comment
	if err := cursor.All(ctx, &comments); err != nil {
		return nil, err
	}
	return comments, nil
}

func (r *commentRepository) AddReply(ctx context.Context, commentId string, reply entity.Reply) (string, error) {
	reply.Id = uuid.New().String()
	reply.CreatedAt = time.Now()

	res, err := r.collection().UpdateOne(ctx, bson.M{"_id": commentId}, bson.M{
		"$push": bson.M{"replies": reply},
		"$set":  bson.M{"updatedAt": time.Now()},
	})
	if err != nil {
		return "", err
	}
	if res.MatchedCount == 0 {
		return "", ErrNotFound
	}
	return reply.Id, nil
}

func (r *commentRepository) ToggleLike(ctx context.Context, commentId, userId string) (entity.LikeResult, error) {
	res, err := r.collection().UpdateOne(ctx,
		bson.M{"_id": commentId, "likes": userId},
		bson.M{"$pull": bson.M{"likes": userId}},
	)
	if err != nil {
		return entity.LikeResult{}, err
	}

	liked := false
	if res.ModifiedCount == 0 {
		addRes, err := r.collection().UpdateOne(ctx,
			bson.M{"_id": commentId},
			bson.M{"$addToSet": bson.M{"likes": userId}},
		)
		if err != nil {
			return entity.LikeResult{}, err
		}
		if addRes.MatchedCount == 0 {
			return entity.LikeResult{}, ErrNotFound
		}
		liked = true
	}

	comment, err := r.Get(ctx, commentId)
	if err != nil {
		return entity.LikeResult{}, err
	}
	return entity.LikeResult{IsLiked: liked, LikeCount: len(comment.Likes)}, nil
}
