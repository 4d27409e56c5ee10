package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/ic-coder123/bookverse/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (s *MongoStorage) GetReviewsByBookID(ctx context.Context, bookID int64) ([]models.Review, error) {
	db, err := s.db(ctx)
	if err != nil {
		return nil, err
	}
	return findAll[models.Review](ctx, db.Reviews(), bson.M{"bookId": bookID})
}

func (s *MongoStorage) GetAllReviews(ctx context.Context) ([]models.Review, error) {
	db, err := s.db(ctx)
	if err != nil {
		return nil, err
	}
	return findAll[models.Review](ctx, db.Reviews(), bson.M{})
}

func (s *MongoStorage) CreateReview(ctx context.Context, review models.NewReview) (*models.Review, error) {
	db, err := s.db(ctx)
	if err != nil {
		return nil, err
	}
	id, err := db.NextID(ctx, reviewsCollection)
	if err != nil {
		return nil, err
	}
	r := review.Build(s.now())
	r.ID = id
	if _, err := db.Reviews().InsertOne(ctx, &r, options.InsertOne()); err != nil {
		return nil, fmt.Errorf("insert review: %w", err)
	}
	if err := s.refreshBookRating(ctx, db, r.BookID); err != nil {
		return nil, err
	}
	if r.UserID != 0 {
		if err := s.refreshReadingProgress(ctx, db, r.UserID); err != nil {
			return nil, err
		}
	}
	return &r, nil
}

func (s *MongoStorage) DeleteReview(ctx context.Context, id int64) (bool, error) {
	db, err := s.db(ctx)
	if err != nil {
		return false, err
	}
	var deleted models.Review
	err = db.Reviews().FindOneAndDelete(ctx, bson.M{"_id": id}).Decode(&deleted)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("delete review: %w", err)
	}
	if err := s.refreshBookRating(ctx, db, deleted.BookID); err != nil {
		return true, err
	}
	return true, nil
}

func (s *MongoStorage) updateReview(ctx context.Context, id int64, update bson.M) error {
	db, err := s.db(ctx)
	if err != nil {
		return err
	}
	if _, err := db.Reviews().UpdateOne(ctx, bson.M{"_id": id}, update); err != nil {
		return fmt.Errorf("update review %d: %w", id, err)
	}
	return nil
}

func (s *MongoStorage) LikeReview(ctx context.Context, id int64) error {
	return s.updateReview(ctx, id, bson.M{"$inc": bson.M{"likes": 1}})
}

func (s *MongoStorage) DislikeReview(ctx context.Context, id int64) error {
	return s.updateReview(ctx, id, bson.M{"$inc": bson.M{"dislikes": 1}})
}

func (s *MongoStorage) FlagReview(ctx context.Context, id int64) error {
	return s.updateReview(ctx, id, bson.M{"$inc": bson.M{"flags": 1}})
}

func (s *MongoStorage) HideReview(ctx context.Context, id int64) error {
	return s.updateReview(ctx, id, bson.M{"$set": bson.M{"isHidden": true}})
}
