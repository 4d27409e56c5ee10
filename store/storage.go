package store

import (
	"context"
	"errors"
	"log/slog"

	"github.com/ic-coder123/bookverse/config"
	"github.com/ic-coder123/bookverse/models"
)

// ErrUnavailable is returned by the MongoDB backend when it needs a
// collection but no connection string is configured.
var ErrUnavailable = errors.New("database not available")

// Storage is the contract every backend satisfies. Lookups that find nothing
// return a nil record and a nil error; deletes report false. Errors are
// reserved for backend failures.
type Storage interface {
	CreateUser(ctx context.Context, user models.NewUser) (*models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
	// UpsertUser returns the user with the same username unchanged, or creates it.
	UpsertUser(ctx context.Context, user models.NewUser) (*models.User, error)

	GetAllBooks(ctx context.Context) ([]models.Book, error)
	GetBook(ctx context.Context, id int64) (*models.Book, error)
	CreateBook(ctx context.Context, book models.NewBook) (*models.Book, error)
	UpdateBook(ctx context.Context, id int64, update models.BookUpdate) (*models.Book, error)
	// DeleteBook also deletes the book's reviews.
	DeleteBook(ctx context.Context, id int64) (bool, error)

	GetReviewsByBookID(ctx context.Context, bookID int64) ([]models.Review, error)
	GetAllReviews(ctx context.Context) ([]models.Review, error)
	// CreateReview recomputes the book's rating aggregate and, for reviews
	// with a user, that user's challenge progress.
	CreateReview(ctx context.Context, review models.NewReview) (*models.Review, error)
	// DeleteReview recomputes the book's rating aggregate.
	DeleteReview(ctx context.Context, id int64) (bool, error)
	LikeReview(ctx context.Context, id int64) error
	DislikeReview(ctx context.Context, id int64) error
	FlagReview(ctx context.Context, id int64) error
	HideReview(ctx context.Context, id int64) error

	GetAllChallenges(ctx context.Context) ([]models.Challenge, error)
	GetActiveCurrentChallenges(ctx context.Context) ([]models.Challenge, error)
	GetChallenge(ctx context.Context, id int64) (*models.Challenge, error)
	CreateChallenge(ctx context.Context, challenge models.NewChallenge) (*models.Challenge, error)
	UpdateChallenge(ctx context.Context, id int64, update models.ChallengeUpdate) (*models.Challenge, error)
	// DeleteChallenge also deletes the challenge's participations and badges.
	DeleteChallenge(ctx context.Context, id int64) (bool, error)

	GetUserChallenges(ctx context.Context, userID int64) ([]models.UserChallenge, error)
	JoinChallenge(ctx context.Context, userID, challengeID int64) (*models.UserChallenge, error)
	// UpdateChallengeProgress stores progress and, the first time the target
	// is reached, marks the participation completed and awards the badge.
	UpdateChallengeProgress(ctx context.Context, userID, challengeID int64, progress int) error
	GetUserBadges(ctx context.Context, userID int64) ([]models.UserBadge, error)
	AwardBadge(ctx context.Context, badge models.NewUserBadge) (*models.UserBadge, error)

	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}

var (
	_ Storage = (*MemStorage)(nil)
	_ Storage = (*MongoStorage)(nil)
)

// Open picks the backend once for the process: MongoDB when a connection
// string is configured, memory otherwise. It does not connect; the first
// MongoDB operation does, and connection errors surface from that call.
func Open(ctx context.Context, cfg *config.Config, logger *slog.Logger) (Storage, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if !cfg.UseMongo() {
		logger.Warn("MONGODB_URI not set, using in-memory storage")
		s := NewMemStorage()
		s.logger = logger
		return s, nil
	}
	provider := NewProvider(cfg.MongoURI, cfg.DBName, cfg.MongoTimeout)
	provider.logger = logger
	logger.Info("using mongodb storage", "db", cfg.DBName)
	return NewMongoStorage(provider), nil
}
