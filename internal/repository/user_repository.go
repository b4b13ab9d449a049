package repository

import (
	"context"
	"regexp"
	"time"

	"entreprenapp/internal/entity"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type UserRepository interface {
	Get(ctx context.Context, userId string) (entity.User, error)
	GetByEmail(ctx context.Context, email string) (entity.User, error)
	Create(ctx context.Context, user entity.User) (string, error)
	UpdateProfile(ctx context.Context, userId string, req entity.UpdateProfileRequest) error
	EmailExists(ctx context.Context, email string) (bool, error)
	UsernameExists(ctx context.Context, username string) (bool, error)
	SetVerified(ctx context.Context, userId string) error
	SetVerifyCode(ctx context.Context, userId, code string, expiresAt time.Time) error
	SetOnline(ctx context.Context, userId string, online bool) error
	SoftDelete(ctx context.Context, userId string) error
	AddFriends(ctx context.Context, userId, friendId string) error
	RemoveFriends(ctx context.Context, userId, friendId string) error
	Suggestions(ctx context.Context, forUserId string, excludeIds []string, limit int64) ([]entity.User, error)
	Search(ctx context.Context, query string, limit, offset int64) ([]entity.User, error)
	EnsureIndexes(ctx context.Context) error
}

type userRepository struct {
	db *mongo.Database
}

func NewUserRepository(db *mongo.Database) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) collection() *mongo.Collection {
	return r.db.Collection("users")
}

// notDeleted excludes soft-deleted accounts from every read path.
func notDeleted(filter bson.M) bson.M {
	filter["deletedAt"] = bson.M{"$exists": false}
	return filter
}

// searchPattern matches query as a case-insensitive literal substring.
// Metacharacters in the query are escaped so "a.c" does not match "abc".
func searchPattern(query string) bson.M {
	return bson.M{"$regex": regexp.QuoteMeta(query), "$options": "i"}
}

func (r *userRepository) Get(ctx context.Context, userId string) (entity.User, error) {
	var user entity.User
	err := r.collection().FindOne(ctx, notDeleted(bson.M{"_id": userId})).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return entity.User{}, ErrNotFound
		}
		return entity.User{}, err
	}
	return user, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (entity.User, error) {
	var user entity.User
	err := r.collection().FindOne(ctx, notDeleted(bson.M{"email": email})).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return entity.User{}, ErrNotFound
		}
		return entity.User{}, err
	}
	return user, nil
}

func (r *userRepository) Create(ctx context.Context, user entity.User) (string, error) {
	user.Id = uuid.New().String()
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now
	if user.Friends == nil {
		user.Friends = []string{}
	}

	if _, err := r.collection().InsertOne(ctx, user); err != nil {
		return "", err
	}
	return user.Id, nil
}

func (r *userRepository) UpdateProfile(ctx context.Context, userId string, req entity.UpdateProfileRequest) error {
	set := bson.M{"updatedAt": time.Now()}
	if req.Name != "" {
		set["name"] = req.Name
	}
	if req.Bio != "" {
		set["bio"] = req.Bio
	}
	if req.Company != "" {
		set["company"] = req.Company
	}
	if req.Location != "" {
		set["location"] = req.Location
	}
	if req.AvatarURL != "" {
		set["avatarUrl"] = req.AvatarURL
	}

	res, err := r.collection().UpdateOne(ctx, notDeleted(bson.M{"_id": userId}), bson.M{"$set": set})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *userRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	count, err := r.collection().CountDocuments(ctx, bson.M{"email": email})
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *userRepository) UsernameExists(ctx context.Context, username string) (bool, error) {
	count, err := r.collection().CountDocuments(ctx, bson.M{"username": username})
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *userRepository) SetVerified(ctx context.Context, userId string) error {
	update := bson.M{
		"$set":   bson.M{"verified": true, "updatedAt": time.Now()},
		"$unset": bson.M{"verifyCode": "", "verifyCodeExpiresAt": ""},
	}
	res, err := r.collection().UpdateOne(ctx, bson.M{"_id": userId}, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *userRepository) SetVerifyCode(ctx context.Context, userId, code string, expiresAt time.Time) error {
	update := bson.M{
		"$set": bson.M{
			"verifyCode":          code,
			"verifyCodeExpiresAt": expiresAt,
			"updatedAt":           time.Now(),
		},
	}
	res, err := r.collection().UpdateOne(ctx, bson.M{"_id": userId}, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *userRepository) SetOnline(ctx context.Context, userId string, online bool) error {
	_, err := r.collection().UpdateOne(ctx, bson.M{"_id": userId}, bson.M{
		"$set": bson.M{"online": online},
	})
	return err
}

func (r *userRepository) SoftDelete(ctx context.Context, userId string) error {
	res, err := r.collection().UpdateOne(ctx, notDeleted(bson.M{"_id": userId}), bson.M{
		"$set": bson.M{"deletedAt": time.Now()},
	})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *userRepository) AddFriends(ctx context.Context, userId, friendId string) error {
	_, err := r.collection().UpdateOne(ctx, bson.M{"_id": userId}, bson.M{
		"$addToSet": bson.M{"friends": friendId},
	})
	if err != nil {
		return err
	}
	_, err = r.collection().UpdateOne(ctx, bson.M{"_id": friendId}, bson.M{
		"$addToSet": bson.M{"friends": userId},
	})
	return err
}

func (r *userRepository) RemoveFriends(ctx context.Context, userId, friendId string) error {
	_, err := r.collection().UpdateOne(ctx, bson.M{"_id": userId}, bson.M{
		"$pull": bson.M{"friends": friendId},
	})
	if err != nil {
		return err
	}
	_, err = r.collection().UpdateOne(ctx, bson.M{"_id": friendId}, bson.M{
		"$pull": bson.M{"friends": userId},
	})
	return err
}

func (r *userRepository) Suggestions(ctx context.Context, forUserId string, excludeIds []string, limit int64) ([]entity.User, error) {
	exclude := append([]string{forUserId}, excludeIds...)
	filter := notDeleted(bson.M{
		"_id":      bson.M{"$nin": exclude},
		"verified": true,
	})

	opts := options.Find().SetLimit(limit).SetSort(bson.M{"createdAt": -1})
	cursor, err := r.collection().Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var users []entity.User
	if err := cursor.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (r *userRepository) Search(ctx context.Context, query string, limit, offset int64) ([]entity.User, error) {
	pattern := searchPattern(query)
	filter := notDeleted(bson.M{
		"$or": []bson.M{
			{"name": pattern},
			{"username": pattern},
		},
	})

	opts := options.Find().SetLimit(limit).SetSkip(offset)
	cursor, err := r.collection().Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var users []entity.User
	if err := cursor.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (r *userRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection().Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "username", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	})
	return err
}
