package store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoStorage implements Storage on MongoDB. Ids are int64 values handed
// out by the counters collection and stored as each document's _id.
type MongoStorage struct {
	provider *Provider
	now      func() time.Time
	logger   *slog.Logger

	indexMu sync.Mutex
	indexed bool
}

func NewMongoStorage(provider *Provider) *MongoStorage {
	return &MongoStorage{provider: provider, now: time.Now, logger: provider.logger}
}

// db returns the live handle, or ErrUnavailable when none is configured.
// The first call that reaches the server also creates the indexes; a failed
// attempt is retried by the next call.
func (s *MongoStorage) db(ctx context.Context) (*DB, error) {
	db, err := s.provider.Handle(ctx)
	if err != nil {
		return nil, err
	}
	if db == nil {
		return nil, ErrUnavailable
	}
	s.indexMu.Lock()
	defer s.indexMu.Unlock()
	if !s.indexed {
		if err := s.createIndexes(ctx, db); err != nil {
			return nil, err
		}
		s.indexed = true
	}
	return db, nil
}

// EnsureIndexes connects if needed and makes sure the indexes exist.
func (s *MongoStorage) EnsureIndexes(ctx context.Context) error {
	_, err := s.db(ctx)
	return err
}

// createIndexes creates the lookup indexes and the unique index that keeps
// one participation per (userId, challengeId).
func (s *MongoStorage) createIndexes(ctx context.Context, db *DB) error {
	indexes := []struct {
		coll  *mongo.Collection
		model mongo.IndexModel
	}{
		{db.Users(), mongo.IndexModel{Keys: bson.D{{Key: "username", Value: 1}}}},
		{db.Reviews(), mongo.IndexModel{Keys: bson.D{{Key: "bookId", Value: 1}}}},
		{db.Reviews(), mongo.IndexModel{Keys: bson.D{{Key: "userId", Value: 1}}}},
		{db.UserChallenges(), mongo.IndexModel{
			Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "challengeId", Value: 1}},
			Options: options.Index().SetUnique(true),
		}},
		{db.UserChallenges(), mongo.IndexModel{Keys: bson.D{{Key: "challengeId", Value: 1}}}},
		{db.UserBadges(), mongo.IndexModel{Keys: bson.D{{Key: "userId", Value: 1}}}},
	}
	for _, idx := range indexes {
		if _, err := idx.coll.Indexes().CreateOne(ctx, idx.model); err != nil {
			return fmt.Errorf("create index on %s: %w", idx.coll.Name(), err)
		}
	}
	s.logger.Info("mongodb indexes ensured", "count", len(indexes))
	return nil
}

func (s *MongoStorage) Ping(ctx context.Context) error {
	db, err := s.db(ctx)
	if err != nil {
		return err
	}
	return db.Client.Ping(ctx, nil)
}

func (s *MongoStorage) Close(ctx context.Context) error {
	return s.provider.Close(ctx)
}

// findOne decodes the first match into a T, or returns nil when nothing matches.
func findOne[T any](ctx context.Context, coll *mongo.Collection, filter any, opts ...*options.FindOneOptions) (*T, error) {
	var v T
	err := coll.FindOne(ctx, filter, opts...).Decode(&v)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find %s: %w", coll.Name(), err)
	}
	return &v, nil
}

// findAll returns every match in ascending _id order.
func findAll[T any](ctx context.Context, coll *mongo.Collection, filter any) ([]T, error) {
	cur, err := coll.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("find %s: %w", coll.Name(), err)
	}
	defer cur.Close(ctx)
	var out []T
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode %s: %w", coll.Name(), err)
	}
	if out == nil {
		out = []T{}
	}
	return out, nil
}
