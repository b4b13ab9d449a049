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

type ChallengeRepository interface {
	Get(ctx context.Context, challengeId string) (entity.Challenge, error)
	Create(ctx context.Context, challenge entity.Challenge) (string, error)
	Delete(ctx context.Context, challengeId string) error
	List(ctx context.Context, limit, offset int64) ([]entity.Challenge, error)
	// Apply pushes the application and bumps applicantCount in one update
	// document; the not-already-applied condition sits in the filter so a
	// user cannot apply twice.
	Apply(ctx context.Context, challengeId string, app entity.ChallengeApplication) error
}

type challengeRepository struct {
	db *mongo.Database
}

func NewChallengeRepository(db *mongo.Database) ChallengeRepository {
	return &challengeRepository{db: db}
}

func (r *challengeRepository) collection() *mongo.Collection {
	return r.db.Collection("challenges")
}

func (r *challengeRepository) Get(ctx context.Context, challengeId string) (entity.Challenge, error) {
	var challenge entity.Challenge
	err := r.collection().FindOne(ctx, bson.M{"_id": challengeId}).Decode(&challenge)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return entity.Challenge{}, ErrNotFound
		}
		return entity.Challenge{}, err
	}
	return challenge, nil
}

func (r *challengeRepository) Create(ctx context.Context, challenge entity.Challenge) (string, error) {
	challenge.Id = uuid.New().String()
	now := time.Now()
	challenge.CreatedAt = now
	challenge.UpdatedAt = now
	if challenge.Applicants == nil {
		challenge.Applicants = []entity.ChallengeApplication{}
	}

	if _, err := r.collection().InsertOne(ctx, challenge); err != nil {
		return "", err
	}
	return challenge.Id, nil
}

func (r *challengeRepository) Delete(ctx context.Context, challengeId string) error {
	res, err := r.collection().DeleteOne(ctx, bson.M{"_id": challengeId})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *challengeRepository) List(ctx context.Context, limit, offset int64) ([]entity.Challenge, error) {
	opts := options.Find().
		SetSort(bson.M{"deadline": 1}).
		SetLimit(limit).
		SetSkip(offset)

	cursor, err := r.collection().Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var challenges []entity.Challenge
	if err := cursor.All(ctx, &challenges); err != nil {
		return nil, err
	}
	return challenges, nil
}

func (r *challengeRepository) Apply(ctx context.Context, challengeId string, app entity.ChallengeApplication) error {
	app.AppliedAt = time.Now()

	filter := bson.M{
		"_id":               challengeId,
		"applicants.userId": bson.M{"$ne": app.UserId},
	}
	update := bson.M{
		"$push": bson.M{"applicants": app},
		"$inc":  bson.M{"applicantCount": 1},
		"$set":  bson.M{"updatedAt": time.Now()},
	}

	res, err := r.collection().UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		count, err := r.collection().CountDocuments(ctx, bson.M{"_id": challengeId})
		if err != nil {
			return err
		}
		if count == 0 {
			return ErrNotFound
		}
		return ErrAlreadyApplied
	}
	return nil
}
