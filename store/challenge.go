package store

import (
	"context"
	"fmt"

	"github.com/ic-coder123/bookverse/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (s *MongoStorage) GetAllChallenges(ctx context.Context) ([]models.Challenge, error) {
	db, err := s.db(ctx)
	if err != nil {
		return nil, err
	}
	return findAll[models.Challenge](ctx, db.Challenges(), bson.M{})
}

func (s *MongoStorage) GetActiveCurrentChallenges(ctx context.Context) ([]models.Challenge, error) {
	db, err := s.db(ctx)
	if err != nil {
		return nil, err
	}
	now := s.now()
	return findAll[models.Challenge](ctx, db.Challenges(), bson.M{
		"isActive":  true,
		"startDate": bson.M{"$lte": now},
		"endDate":   bson.M{"$gte": now},
	})
}

func (s *MongoStorage) GetChallenge(ctx context.Context, id int64) (*models.Challenge, error) {
	db, err := s.db(ctx)
	if err != nil {
		return nil, err
	}
	return findOne[models.Challenge](ctx, db.Challenges(), bson.M{"_id": id})
}

func (s *MongoStorage) CreateChallenge(ctx context.Context, challenge models.NewChallenge) (*models.Challenge, error) {
	db, err := s.db(ctx)
	if err != nil {
		return nil, err
	}
	id, err := db.NextID(ctx, challengesCollection)
	if err != nil {
		return nil, err
	}
	c := challenge.Build(s.now())
	c.ID = id
	if _, err := db.Challenges().InsertOne(ctx, &c, options.InsertOne()); err != nil {
		return nil, fmt.Errorf("insert challenge: %w", err)
	}
	return &c, nil
}

func (s *MongoStorage) UpdateChallenge(ctx context.Context, id int64, update models.ChallengeUpdate) (*models.Challenge, error) {
	db, err := s.db(ctx)
	if err != nil {
		return nil, err
	}
	if set := update.Fields(); len(set) > 0 {
		if _, err := db.Challenges().UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set}); err != nil {
			return nil, fmt.Errorf("update challenge: %w", err)
		}
	}
	return findOne[models.Challenge](ctx, db.Challenges(), bson.M{"_id": id})
}

// DeleteChallenge removes the challenge, then its participations, then its
// badges. Earlier steps are not undone if a later one fails.
func (s *MongoStorage) DeleteChallenge(ctx context.Context, id int64) (bool, error) {
	db, err := s.db(ctx)
	if err != nil {
		return false, err
	}
	res, err := db.Challenges().DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return false, fmt.Errorf("delete challenge: %w", err)
	}
	if res.DeletedCount == 0 {
		return false, nil
	}
	if _, err := db.UserChallenges().DeleteMany(ctx, bson.M{"challengeId": id}); err != nil {
		return true, fmt.Errorf("delete participations of challenge %d: %w", id, err)
	}
	if _, err := db.UserBadges().DeleteMany(ctx, bson.M{"challengeId": id}); err != nil {
		return true, fmt.Errorf("delete badges of challenge %d: %w", id, err)
	}
	return true, nil
}

func (s *MongoStorage) GetUserChallenges(ctx context.Context, userID int64) ([]models.UserChallenge, error) {
	db, err := s.db(ctx)
	if err != nil {
		return nil, err
	}
	return findAll[models.UserChallenge](ctx, db.UserChallenges(), bson.M{"userId": userID})
}

func pairFilter(userID, challengeID int64) bson.M {
	return bson.M{"userId": userID, "challengeId": challengeID}
}

// JoinChallenge returns the existing participation for the pair or creates
// one. The unique (userId, challengeId) index settles concurrent joins.
func (s *MongoStorage) JoinChallenge(ctx context.Context, userID, challengeID int64) (*models.UserChallenge, error) {
	db, err := s.db(ctx)
	if err != nil {
		return nil, err
	}
	existing, err := findOne[models.UserChallenge](ctx, db.UserChallenges(), pairFilter(userID, challengeID))
	if err != nil || existing != nil {
		return existing, err
	}
	id, err := db.NextID(ctx, userChallengesCollection)
	if err != nil {
		return nil, err
	}
	uc := &models.UserChallenge{
		ID:          id,
		UserID:      userID,
		ChallengeID: challengeID,
		JoinedAt:    s.now(),
	}
	_, err = db.UserChallenges().InsertOne(ctx, uc, options.InsertOne())
	if mongo.IsDuplicateKeyError(err) {
		return findOne[models.UserChallenge](ctx, db.UserChallenges(), pairFilter(userID, challengeID))
	}
	if err != nil {
		return nil, fmt.Errorf("insert user challenge: %w", err)
	}
	return uc, nil
}

func (s *MongoStorage) UpdateChallengeProgress(ctx context.Context, userID, challengeID int64, progress int) error {
	db, err := s.db(ctx)
	if err != nil {
		return err
	}
	return s.updateChallengeProgress(ctx, db, userID, challengeID, progress)
}

// updateChallengeProgress stores progress and flips completion with a
// conditional update, so only the caller that flips it awards the badge.
func (s *MongoStorage) updateChallengeProgress(ctx context.Context, db *DB, userID, challengeID int64, progress int) error {
	uc, err := findOne[models.UserChallenge](ctx, db.UserChallenges(), pairFilter(userID, challengeID))
	if err != nil || uc == nil {
		return err
	}
	challenge, err := findOne[models.Challenge](ctx, db.Challenges(), bson.M{"_id": challengeID})
	if err != nil {
		return err
	}
	target := 0
	if challenge != nil {
		target = challenge.Target
	}

	if _, err := db.UserChallenges().UpdateOne(ctx, bson.M{"_id": uc.ID}, bson.M{"$set": bson.M{"progress": progress}}); err != nil {
		return fmt.Errorf("update progress: %w", err)
	}
	if uc.IsCompleted || progress < target {
		return nil
	}
	res, err := db.UserChallenges().UpdateOne(ctx,
		bson.M{"_id": uc.ID, "isCompleted": false},
		bson.M{"$set": bson.M{"isCompleted": true, "completedAt": s.now()}},
	)
	if err != nil {
		return fmt.Errorf("complete challenge: %w", err)
	}
	if res.ModifiedCount == 0 || challenge == nil {
		return nil
	}
	_, err = s.insertBadge(ctx, db, models.BadgeFor(userID, *challenge))
	return err
}

// refreshReadingProgress recomputes every unfinished challenge userID has joined.
func (s *MongoStorage) refreshReadingProgress(ctx context.Context, db *DB, userID int64) error {
	joined, err := findAll[models.UserChallenge](ctx, db.UserChallenges(), bson.M{"userId": userID, "isCompleted": false})
	if err != nil || len(joined) == 0 {
		return err
	}
	userReviews, err := findAll[models.Review](ctx, db.Reviews(), bson.M{"userId": userID})
	if err != nil {
		return err
	}
	for _, uc := range joined {
		challenge, err := findOne[models.Challenge](ctx, db.Challenges(), bson.M{"_id": uc.ChallengeID})
		if err != nil {
			return err
		}
		if challenge == nil {
			continue
		}
		progress := ChallengeProgress(*challenge, userReviews)
		if err := s.updateChallengeProgress(ctx, db, userID, uc.ChallengeID, progress); err != nil {
			return err
		}
	}
	return nil
}
