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

type PostRepository interface {
	Get(ctx context.Context, postId string) (entity.Post, error)
	Create(ctx context.Context, post entity.Post) (string, error)
	Update(ctx context.Context, postId string, req entity.UpdatePostRequest) error
	Delete(ctx context.Context, postId string) error
	List(ctx context.Context, limit, offset int64) ([]entity.Post, error)
	ListByAuthor(ctx context.Context, authorId string, limit, offset int64) ([]entity.Post, error)
	ToggleLike(ctx context.Context, postId, userId string) (entity.LikeResult, error)
	Search(ctx context.Context, query string, limit, offset int64) ([]entity.Post, error)
}

type postRepository struct {
	db *mongo.Database
}

func NewPostRepository(db *mongo.Database) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) collection() *mongo.Collection {
	return r.db.Collection("posts")
}

func (r *postRepository) Get(ctx context.Context, postId string) (entity.Post, error) {
	var post entity.Post
	err := r.collection().FindOne(ctx, bson.M{"_id": postId}).Decode(&post)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return entity.Post{}, ErrNotFound
		}
		return entity.Post{}, err
	}
	return post, nil
}

func (r *postRepository) Create(ctx context.Context, post entity.Post) (string, error) {
	post.Id = uuid.New().String()
	now := time.Now()
	post.CreatedAt = now
	post.UpdatedAt = now
	if post.Likes == nil {
		post.Likes = []string{}
	}

	if _, err := r.collection().InsertOne(ctx, post); err != nil {
		return "", err
	}
	return post.Id, nil
}

func (r *postRepository) Update(ctx context.Context, postId string, req entity.UpdatePostRequest) error {
	update := bson.M{
		"$set": bson.M{
			"content":   req.Content,
			"mediaUrl":  req.MediaURL,
			"updatedAt": time.Now(),
		},
	}
	res, err := r.collection().UpdateOne(ctx, bson.M{"_id": postId}, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *postRepository) Delete(ctx context.Context, postId string) error {
	res, err := r.collection().DeleteOne(ctx, bson.M{"_id": postId})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *postRepository) List(ctx context.Context, limit, offset int64) ([]entity.Post, error) {
	return r.find(ctx, bson.M{}, limit, offset)
}

func (r *postRepository) ListByAuthor(ctx context.Context, authorId string, limit, offset int64) ([]entity.Post, error) {
	return r.find(ctx, bson.M{"authorId": authorId}, limit, offset)
}

func (r *postRepository) Search(ctx context.Context, query string, limit, offset int64) ([]entity.Post, error) {
	filter := bson.M{"content": searchPattern(query)}
	return r.find(ctx, filter, limit, offset)
}

func (r *postRepository) find(ctx context.Context, filter bson.M, limit, offset int64) ([]entity.Post, error) {
	opts := options.Find().
		SetSort(bson.M{"createdAt": -1}).
		SetLimit(limit).
		SetSkip(offset)

	cursor, err := r.collection().Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var posts []entity.Post
	if err := cursor.All(ctx, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// ToggleLike removes the user's like when present, adds it otherwise. Each
// branch is a single filtered update so two toggles by the same user always
// return to the original state.
func (r *postRepository) ToggleLike(ctx context.Context, postId, userId string) (entity.LikeResult, error) {
	res, err := r.collection().UpdateOne(ctx,
		bson.M{"_id": postId, "likes": userId},
		bson.M{"$pull": bson.M{"likes": userId}},
	)
	if err != nil {
		return entity.LikeResult{}, err
	}

	liked := false
	if res.ModifiedCount == 0 {
		addRes, err := r.collection().UpdateOne(ctx,
			bson.M{"_id": postId},
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

	post, err := r.Get(ctx, postId)
	if err != nil {
		return entity.LikeResult{}, err
	}
	return entity.LikeResult{IsLiked: liked, LikeCount: len(post.Likes)}, nil
}
