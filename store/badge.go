package store

import (
	"context"
	"fmt"

	"github.com/ic-coder123/bookverse/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (s *MongoStorage) GetUserBadges(ctx context.Context, userID int64) ([]models.UserBadge, error) {
	db, err := s.db(ctx)
	if err != nil {
		return nil, err
	}
	return findAll[models.UserBadge](ctx, db.UserBadges(), bson.M{"userId": userID})
}

func (s *MongoStorage) AwardBadge(ctx context.Context, badge models.NewUserBadge) (*models.UserBadge, error) {
	db, err := s.db(ctx)
	if err != nil {
		return nil, err
	}
	return s.insertBadge(ctx, db, badge)
}

func (s *MongoStorage) insertBadge(ctx context.Context, db *DB, badge models.NewUserBadge) (*models.UserBadge, error) {
	id, err := db.NextID(ctx, userBadgesCollection)
	if err != nil {
		return nil, err
	}
	b := &models.UserBadge{
		ID:          id,
		UserID:      badge.UserID,
		ChallengeID: badge.ChallengeID,
		BadgeIcon:   badge.BadgeIcon,
		BadgeColor:  badge.BadgeColor,
		BadgeTitle:  badge.BadgeTitle,
		EarnedAt:    s.now(),
	}
	if _, err := db.UserBadges().InsertOne(ctx, b, options.InsertOne()); err != nil {
		return nil, fmt.Errorf("insert badge: %w", err)
	}
	s.logger.Debug("badge awarded", "user_id", badge.UserID, "challenge_id", badge.ChallengeID)
	return b, nil
}
