package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aussiebroadwan/hdnotes/internal/auth/store"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const (
	usersCollection       = "users"
	credentialsCollection = "credentials"
	notesCollection       = "notes"
)

type Store struct {
	client *mongo.Client
	db     *mongo.Database
}

// NewStore connects to uri and uses database dbName.
func NewStore(ctx context.Context, uri, dbName string) (*Store, error) {
	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect: %w", err)
	}

	if err := client.Ping(connectCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping: %w", err)
	}

	return &Store{client: client, db: client.Database(dbName)}, nil
}

// ApplyMigrations creates the indexes the contract relies on: unique
// emails, the TTL reaper on credentials and the notes listing order.
// Creating an index that already exists is a no-op.
func (s *Store) ApplyMigrations() error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if _, err := s.db.Collection(usersCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetName("uniq_email").SetUnique(true),
	}); err != nil {
		return fmt.Errorf("users indexes: %w", err)
	}

	// Credentials are keyed by email (_id) so uniqueness comes for free;
	// the TTL index lets the server reap expired codes on its own.
	if _, err := s.db.Collection(credentialsCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "expires_at", Value: 1}},
		Options: options.Index().SetName("ttl_expires_at").SetExpireAfterSeconds(0),
	}); err != nil {
		return fmt.Errorf("credentials indexes: %w", err)
	}

	if _, err := s.db.Collection(notesCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: -1}},
		Options: options.Index().SetName("user_created"),
	}); err != nil {
		return fmt.Errorf("notes indexes: %w", err)
	}

	return nil
}

func (s *Store) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.client.Disconnect(ctx)
}

// Ping verifies the database connection is still alive.
func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, readpref.Primary())
}

func (s *Store) Users() store.Users {
	return &usersRepo{users: s.db.Collection(usersCollection), notes: s.db.Collection(notesCollection)}
}

func (s *Store) Credentials() store.Credentials {
	return &credentialsRepo{c: s.db.Collection(credentialsCollection)}
}

func (s *Store) Notes() store.Notes {
	return &notesRepo{c: s.db.Collection(notesCollection)}
}

func mapMongoErr(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, mongo.ErrNoDocuments):
		return store.ErrNotFound
	case mongo.IsDuplicateKeyError(err):
		return store.ErrAlreadyExists
	default:
		return err
	}
}
