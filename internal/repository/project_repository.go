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

type ProjectRepository interface {
	Get(ctx context.Context, projectId string) (entity.Project, error)
	Create(ctx context.Context, project entity.Project) (string, error)
	Delete(ctx context.Context, projectId string) error
	List(ctx context.Context, limit, offset int64) ([]entity.Project, error)
	// Invest applies the whole investment as one conditional document
	// update: the guard raisedAmount+amount <= fundingGoal lives in the
	// filter, so concurrent investments cannot overshoot the goal.
	Invest(ctx context.Context, projectId string, inv entity.Investment) error
}

type projectRepository struct {
	db *mongo.Database
}

func NewProjectRepository(db *mongo.Database) ProjectRepository {
	return &projectRepository{db: db}
}

func (r *projectRepository) collection() *mongo.Collection {
	return r.db.Collection("projects")
}

func (r *projectRepository) Get(ctx context.Context, projectId string) (entity.Project, error) {
	var project entity.Project
	err := r.collection().FindOne(ctx, bson.M{"_id": projectId}).Decode(&project)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return entity.Project{}, ErrNotFound
		}
		return entity.Project{}, err
	}
	return project, nil
}

func (r *projectRepository) Create(ctx context.Context, project entity.Project) (string, error) {
	project.Id = uuid.New().String()
	now := time.Now()
	project.CreatedAt = now
	project.UpdatedAt = now
	if project.Investors == nil {
		project.Investors = []entity.Investment{}
	}

	if _, err := r.collection().InsertOne(ctx, project); err != nil {
		return "", err
	}
	return project.Id, nil
}

func (r *projectRepository) Delete(ctx context.Context, projectId string) error {
	res, err := r.collection().DeleteOne(ctx, bson.M{"_id": projectId})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *projectRepository) List(ctx context.Context, limit, offset int64) ([]entity.Project, error) {
	opts := options.Find().
		SetSort(bson.M{"createdAt": -1}).
		SetLimit(limit).
		SetSkip(offset)

	cursor, err := r.collection().Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var projects []entity.Project
	if err := cursor.All(ctx, &projects); err != nil {
		return nil, err
	}
	return projects, nil
}

func (r *projectRepository) Invest(ctx context.Context, projectId string, inv entity.Investment) error {
	inv.InvestedAt = time.Now()

	filter := bson.M{
		"_id": projectId,
		"$expr": bson.M{
			"$lte": bson.A{
				bson.M{"$add": bson.A{"$raisedAmount", inv.Amount}},
				"$fundingGoal",
			},
		},
	}
	update := bson.M{
		"$inc":  bson.M{"raisedAmount": inv.Amount},
		"$push": bson.M{"investors": inv},
		"$set":  bson.M{"updatedAt": time.Now()},
	}

	res, err := r.collection().UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		// Distinguish a missing project from a guard rejection.
		count, err := r.collection().CountDocuments(ctx, bson.M{"_id": projectId})
		if err != nil {
			return err
		}
		if count == 0 {
			return ErrNotFound
		}
		return ErrGoalExceeded
	}
	return nil
}
