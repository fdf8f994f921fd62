package mongo

import (
	"context"
	"time"

	"github.com/aussiebroadwan/hdnotes/internal/auth/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// credentialDoc is keyed by email so at most one can exist per address.
type credentialDoc struct {
	Email     string    `bson:"_id"`
	ID        string    `bson:"cid"`
	Code      string    `bson:"code"`
	ExpiresAt time.Time `bson:"expires_at"`
	CreatedAt time.Time `bson:"created_at"`
}

func (d credentialDoc) domain() domain.Credential {
	return domain.Credential{
		ID:        d.ID,
		Email:     d.Email,
		Code:      d.Code,
		ExpiresAt: d.ExpiresAt.UTC(),
		CreatedAt: d.CreatedAt.UTC(),
	}
}

type credentialsRepo struct {
	c *mongo.Collection
}

func (r *credentialsRepo) ReplaceCredential(ctx context.Context, c domain.Credential) error {
	_, err := r.c.ReplaceOne(ctx,
		bson.M{"_id": c.Email},
		credentialDoc{
			Email:     c.Email,
			ID:        c.ID,
			Code:      c.Code,
			ExpiresAt: c.ExpiresAt,
			CreatedAt: c.CreatedAt,
		},
		options.Replace().SetUpsert(true),
	)
	return mapMongoErr(err)
}

// ConsumeCredential is a single FindOneAndDelete; the server guarantees
// only one caller gets the document back.
func (r *credentialsRepo) ConsumeCredential(
	ctx context.Context,
	email, code string,
	now time.Time,
) (domain.Credential, error) {
	var d credentialDoc
	err := r.c.FindOneAndDelete(ctx, bson.M{
		"_id":        email,
		"code":       code,
		"expires_at": bson.M{"$gt": now},
	}).Decode(&d)
	if err != nil {
		return domain.Credential{}, mapMongoErr(err)
	}
	return d.domain(), nil
}

func (r *credentialsRepo) DeleteCredentials(ctx context.Context, email string) error {
	_, err := r.c.DeleteOne(ctx, bson.M{"_id": email})
	return mapMongoErr(err)
}

func (r *credentialsRepo) DeleteExpiredCredentials(ctx context.Context, now time.Time) (int64, error) {
	res, err := r.c.DeleteMany(ctx, bson.M{"expires_at": bson.M{"$lte": now}})
	if err != nil {
		return 0, mapMongoErr(err)
	}
	return res.DeletedCount, nil
}
