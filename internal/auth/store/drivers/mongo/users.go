package mongo

import (
	"context"
	"time"

	"github.com/aussiebroadwan/hdnotes/internal/auth/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type userDoc struct {
	ID              string     `bson:"_id"`
	Email           string     `bson:"email"`
	Name            string     `bson:"name"`
	AvatarRef       string     `bson:"avatar_ref,omitempty"`
	EmailVerifiedAt *time.Time `bson:"email_verified_at,omitempty"`
	CreatedAt       time.Time  `bson:"created_at"`
	UpdatedAt       time.Time  `bson:"updated_at"`
}

func (d userDoc) domain() domain.User {
	return domain.User{
		ID:              d.ID,
		Email:           d.Email,
		Name:            d.Name,
		AvatarRef:       d.AvatarRef,
		EmailVerifiedAt: d.EmailVerifiedAt,
		CreatedAt:       d.CreatedAt.UTC(),
		UpdatedAt:       d.UpdatedAt.UTC(),
	}
}

type usersRepo struct {
	users *mongo.Collection
	notes *mongo.Collection
}

func (r *usersRepo) findOne(ctx context.Context, filter bson.M) (domain.User, error) {
	var d userDoc
	if err := r.users.FindOne(ctx, filter).Decode(&d); err != nil {
		return domain.User{}, mapMongoErr(err)
	}
	return d.domain(), nil
}

func (r *usersRepo) GetUserByID(ctx context.Context, id string) (domain.User, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *usersRepo) GetUserByEmail(ctx context.Context, email string) (domain.User, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

// CreateUser relies on the unique email index; a concurrent second insert
// fails with a duplicate key error.
func (r *usersRepo) CreateUser(ctx context.Context, u domain.User) error {
	_, err := r.users.InsertOne(ctx, userDoc{
		ID:              u.ID,
		Email:           u.Email,
		Name:            u.Name,
		AvatarRef:       u.AvatarRef,
		EmailVerifiedAt: u.EmailVerifiedAt,
		CreatedAt:       u.CreatedAt,
		UpdatedAt:       u.UpdatedAt,
	})
	return mapMongoErr(err)
}

func (r *usersRepo) UpdateUserName(ctx context.Context, id, name string, now time.Time) (domain.User, error) {
	var d userDoc
	err := r.users.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"name": name, "updated_at": now}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&d)
	if err != nil {
		return domain.User{}, mapMongoErr(err)
	}
	return d.domain(), nil
}

// DeleteUser removes the user first; notes left behind by a failure in
// between are unreachable since nothing can authenticate as their owner.
func (r *usersRepo) DeleteUser(ctx context.Context, id string) error {
	res, err := r.users.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return mapMongoErr(err)
	}
	if res.DeletedCount == 0 {
		return mapMongoErr(mongo.ErrNoDocuments)
	}

	_, err = r.notes.DeleteMany(ctx, bson.M{"user_id": id})
	return mapMongoErr(err)
}
