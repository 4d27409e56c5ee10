package store

import (
	"context"
	"fmt"

	"github.com/ic-coder123/bookverse/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (s *MongoStorage) CreateUser(ctx context.Context, user models.NewUser) (*models.User, error) {
	db, err := s.db(ctx)
	if err != nil {
		return nil, err
	}
	return s.insertUser(ctx, db, user)
}

func (s *MongoStorage) insertUser(ctx context.Context, db *DB, user models.NewUser) (*models.User, error) {
	id, err := db.NextID(ctx, usersCollection)
	if err != nil {
		return nil, err
	}
	u := user.Build(s.now())
	u.ID = id
	if _, err := db.Users().InsertOne(ctx, &u, options.InsertOne()); err != nil {
		return nil, fmt.Errorf("insert user: %w", err)
	}
	return &u, nil
}

// GetUserByUsername returns the oldest user with that username.
func (s *MongoStorage) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	db, err := s.db(ctx)
	if err != nil {
		return nil, err
	}
	return userByUsername(ctx, db, username)
}

func userByUsername(ctx context.Context, db *DB, username string) (*models.User, error) {
	opts := options.FindOne().SetSort(bson.D{{Key: "_id", Value: 1}})
	return findOne[models.User](ctx, db.Users(), bson.M{"username": username}, opts)
}

func (s *MongoStorage) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	db, err := s.db(ctx)
	if err != nil {
		return nil, err
	}
	return findOne[models.User](ctx, db.Users(), bson.M{"_id": id})
}

func (s *MongoStorage) UpsertUser(ctx context.Context, user models.NewUser) (*models.User, error) {
	db, err := s.db(ctx)
	if err != nil {
		return nil, err
	}
	existing, err := userByUsername(ctx, db, user.Username)
	if err != nil || existing != nil {
		return existing, err
	}
	return s.insertUser(ctx, db, user)
}
