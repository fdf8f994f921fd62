package mongo

import (
	"context"
	"time"

	"github.com/aussiebroadwan/hdnotes/internal/auth/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type noteDoc struct {
	ID        string    `bson:"_id"`
	UserID    string    `bson:"user_id"`
	Title     string    `bson:"title"`
	Content   string    `bson:"content"`
	CreatedAt time.Time `bson:"created_at"`
	UpdatedAt time.Time `bson:"updated_at"`
}

func (d noteDoc) domain() domain.Note {
	return domain.Note{
		ID:        d.ID,
		UserID:    d.UserID,
		Title:     d.Title,
		Content:   d.Content,
		CreatedAt: d.CreatedAt.UTC(),
		UpdatedAt: d.UpdatedAt.UTC(),
	}
}

type notesRepo struct {
	c *mongo.Collection
}

func (r *notesRepo) CreateNote(ctx context.Context, n domain.Note) error {
	_, err := r.c.InsertOne(ctx, noteDoc{
		ID:        n.ID,
		UserID:    n.UserID,
		Title:     n.Title,
		Content:   n.Content,
		CreatedAt: n.CreatedAt,
		UpdatedAt: n.UpdatedAt,
	})
	return mapMongoErr(err)
}

func (r *notesRepo) ListNotesByUser(ctx context.Context, userID string) ([]domain.Note, error) {
	cur, err := r.c.Find(ctx,
		bson.M{"user_id": userID},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}}),
	)
	if err != nil {
		return nil, mapMongoErr(err)
	}
	defer cur.Close(ctx)

	notes := []domain.Note{}
	for cur.Next(ctx) {
		var d noteDoc
		if err := cur.Decode(&d); err != nil {
			return nil, err
		}
		notes = append(notes, d.domain())
	}
	return notes, cur.Err()
}

func (r *notesRepo) UpdateNote(ctx context.Context, n domain.Note) (domain.Note, error) {
	var d noteDoc
	err := r.c.FindOneAndUpdate(ctx,
		bson.M{"_id": n.ID, "user_id": n.UserID},
		bson.M{"$set": bson.M{"title": n.Title, "content": n.Content, "updated_at": n.UpdatedAt}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&d)
	if err != nil {
		return domain.Note{}, mapMongoErr(err)
	}
	return d.domain(), nil
}

func (r *notesRepo) DeleteNote(ctx context.Context, userID, id string) error {
	res, err := r.c.DeleteOne(ctx, bson.M{"_id": id, "user_id": userID})
	if err != nil {
		return mapMongoErr(err)
	}
	if res.DeletedCount == 0 {
		return mapMongoErr(mongo.ErrNoDocuments)
	}
	return nil
}
