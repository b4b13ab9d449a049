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

type EventRepository interface {
	Get(ctx context.Context, eventId string) (entity.Event, error)
	Create(ctx context.Context, event entity.Event) (string, error)
	Update(ctx context.Context, eventId string, req entity.UpdateEventRequest) error
	Delete(ctx context.Context, eventId string) error
	List(ctx context.Context, limit, offset int64) ([]entity.Event, error)
	Join(ctx context.Context, eventId, userId string) error
	Leave(ctx context.Context, eventId, userId string) error
}

type eventRepository struct {
	db *mongo.Database
}

func NewEventRepository(db *mongo.Database) EventRepository {
	return &eventRepository{db: db}
}

func (r *eventRepository) collection() *mongo.Collection {
	return r.db.Collection("events")
}

func (r *eventRepository) Get(ctx context.Context, eventId string) (entity.Event, error) {
	var event entity.Event
	err := r.collection().FindOne(ctx, bson.M{"_id": eventId}).Decode(&event)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return entity.Event{}, ErrNotFound
		}
		return entity.Event{}, err
	}
	return event, nil
}

func (r *eventRepository) Create(ctx context.Context, event entity.Event) (string, error) {
	event.Id = uuid.New().String()
	now := time.Now()
	event.CreatedAt = now
	event.UpdatedAt = now
	if event.Attendees == nil {
		event.Attendees = []string{}
	}

	if _, err := r.collection().InsertOne(ctx, event); err != nil {
		return "", err
	}
	return event.Id, nil
}

func (r *eventRepository) Update(ctx context.Context, eventId string, req entity.UpdateEventRequest) error {
	update := bson.M{
		"$set": bson.M{
			"title":       req.Title,
			"description": req.Description,
			"location":    req.Location,
			"startsAt":    req.StartsAt,
			"endsAt":      req.EndsAt,
			"updatedAt":   time.Now(),
		},
	}
	res, err := r.collection().UpdateOne(ctx, bson.M{"_id": eventId}, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *eventRepository) Delete(ctx context.Context, eventId string) error {
	res, err := r.collection().DeleteOne(ctx, bson.M{"_id": eventId})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *eventRepository) List(ctx context.Context, limit, offset int64) ([]entity.Event, error) {
	opts := options.Find().
		SetSort(bson.M{"startsAt": 1}).
		SetLimit(limit).
		SetSkip(offset)

	cursor, err := r.collection().Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var events []entity.Event
	if err := cursor.All(ctx, &events); err != nil {
		return nil, err
	}
	return events, nil
}

func (r *eventRepository) Join(ctx context.Context, eventId, userId string) error {
	res, err := r.collection().UpdateOne(ctx, bson.M{"_id": eventId}, bson.M{
		"$addToSet": bson.M{"attendees": userId},
	})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *eventRepository) Leave(ctx context.Context, eventId, userId string) error {
	res, err := r.collection().UpdateOne(ctx, bson.M{"_id": eventId}, bson.M{
		"$pull": bson.M{"attendees": userId},
	})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
