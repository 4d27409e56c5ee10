package store

import (
	"cmp"
	"context"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/ic-coder123/bookverse/models"
)

// MemStorage keeps everything in process-local maps keyed by sequential ids.
// A single mutex serializes every operation, including aggregate updates.
type MemStorage struct {
	mu     sync.Mutex
	now    func() time.Time
	logger *slog.Logger

	users          map[int64]*models.User
	books          map[int64]*models.Book
	reviews        map[int64]*models.Review
	challenges     map[int64]*models.Challenge
	userChallenges map[int64]*models.UserChallenge
	userBadges     map[int64]*models.UserBadge

	nextUserID          int64
	nextBookID          int64
	nextReviewID        int64
	nextChallengeID     int64
	nextUserChallengeID int64
	nextUserBadgeID     int64
}

// NewMemStorage returns an empty store. Use seed.Defaults to load starter data.
func NewMemStorage() *MemStorage {
	return &MemStorage{
		now:                 time.Now,
		logger:              slog.Default(),
		users:               map[int64]*models.User{},
		books:               map[int64]*models.Book{},
		reviews:             map[int64]*models.Review{},
		challenges:          map[int64]*models.Challenge{},
		userChallenges:      map[int64]*models.UserChallenge{},
		userBadges:          map[int64]*models.UserBadge{},
		nextUserID:          1,
		nextBookID:          1,
		nextReviewID:        1,
		nextChallengeID:     1,
		nextUserChallengeID: 1,
		nextUserBadgeID:     1,
	}
}

// sortedValues copies the map values in ascending id order.
func sortedValues[T any](m map[int64]*T, keep func(*T) bool) []T {
	ids := make([]int64, 0, len(m))
	for id, v := range m {
		if keep == nil || keep(v) {
			ids = append(ids, id)
		}
	}
	slices.SortFunc(ids, cmp.Compare[int64])
	out := make([]T, 0, len(ids))
	for _, id := range ids {
		out = append(out, *m[id])
	}
	return out
}

func clone[T any](v *T) *T {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

// copyUserChallenge also detaches CompletedAt from the stored record.
func copyUserChallenge(uc *models.UserChallenge) *models.UserChallenge {
	c := clone(uc)
	if c != nil && c.CompletedAt != nil {
		at := *c.CompletedAt
		c.CompletedAt = &at
	}
	return c
}

func (s *MemStorage) Ping(ctx context.Context) error  { return nil }
func (s *MemStorage) Close(ctx context.Context) error { return nil }

// Users

func (s *MemStorage) CreateUser(ctx context.Context, user models.NewUser) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return clone(s.createUser(user)), nil
}

func (s *MemStorage) createUser(user models.NewUser) *models.User {
	u := user.Build(s.now())
	u.ID = s.nextUserID
	s.nextUserID++
	s.users[u.ID] = &u
	return &u
}

// userByUsername returns the oldest user with that username.
func (s *MemStorage) userByUsername(username string) *models.User {
	var found *models.User
	for _, u := range s.users {
		if u.Username == username && (found == nil || u.ID < found.ID) {
			found = u
		}
	}
	return found
}

func (s *MemStorage) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return clone(s.userByUsername(username)), nil
}

func (s *MemStorage) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return clone(s.users[id]), nil
}

func (s *MemStorage) UpsertUser(ctx context.Context, user models.NewUser) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if existing := s.userByUsername(user.Username); existing != nil {
		return clone(existing), nil
	}
	return clone(s.createUser(user)), nil
}

// Books

func (s *MemStorage) GetAllBooks(ctx context.Context) ([]models.Book, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return sortedValues(s.books, nil), nil
}

func (s *MemStorage) GetBook(ctx context.Context, id int64) (*models.Book, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return clone(s.books[id]), nil
}

func (s *MemStorage) CreateBook(ctx context.Context, book models.NewBook) (*models.Book, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b := &models.Book{
		ID:            s.nextBookID,
		Title:         book.Title,
		Author:        book.Author,
		Description:   book.Description,
		CoverImage:    book.CoverImage,
		Genre:         book.Genre,
		AmazonURL:     book.AmazonURL,
		AverageRating: NoRating,
		TotalReviews:  0,
		CreatedAt:     s.now(),
	}
	s.nextBookID++
	s.books[b.ID] = b
	return clone(b), nil
}

func (s *MemStorage) UpdateBook(ctx context.Context, id int64, update models.BookUpdate) (*models.Book, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.books[id]
	if !ok {
		return nil, nil
	}
	update.Apply(b)
	return clone(b), nil
}

func (s *MemStorage) DeleteBook(ctx context.Context, id int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.books[id]; !ok {
		return false, nil
	}
	delete(s.books, id)
	for rid, r := range s.reviews {
		if r.BookID == id {
			delete(s.reviews, rid)
		}
	}
	return true, nil
}

// Reviews

func (s *MemStorage) reviewsWhere(keep func(*models.Review) bool) []models.Review {
	return sortedValues(s.reviews, keep)
}

func (s *MemStorage) GetReviewsByBookID(ctx context.Context, bookID int64) ([]models.Review, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reviewsWhere(func(r *models.Review) bool { return r.BookID == bookID }), nil
}

func (s *MemStorage) GetAllReviews(ctx context.Context) ([]models.Review, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reviewsWhere(nil), nil
}

// refreshBookRating recomputes the aggregate of bookID if the book exists.
func (s *MemStorage) refreshBookRating(bookID int64) {
	b, ok := s.books[bookID]
	if !ok {
		return
	}
	reviews := s.reviewsWhere(func(r *models.Review) bool { return r.BookID == bookID })
	b.AverageRating, b.TotalReviews = AverageRating(reviewRatings(reviews))
}

func (s *MemStorage) CreateReview(ctx context.Context, review models.NewReview) (*models.Review, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r := review.Build(s.now())
	r.ID = s.nextReviewID
	s.nextReviewID++
	s.reviews[r.ID] = &r

	s.refreshBookRating(r.BookID)
	if r.UserID != 0 {
		s.refreshReadingProgress(r.UserID)
	}
	return clone(&r), nil
}

func (s *MemStorage) DeleteReview(ctx context.Context, id int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.reviews[id]
	if !ok {
		return false, nil
	}
	delete(s.reviews, id)
	s.refreshBookRating(r.BookID)
	return true, nil
}

func (s *MemStorage) mutateReview(id int64, fn func(*models.Review)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if r, ok := s.reviews[id]; ok {
		fn(r)
	}
	return nil
}

func (s *MemStorage) LikeReview(ctx context.Context, id int64) error {
	return s.mutateReview(id, func(r *models.Review) { r.Likes++ })
}

func (s *MemStorage) DislikeReview(ctx context.Context, id int64) error {
	return s.mutateReview(id, func(r *models.Review) { r.Dislikes++ })
}

func (s *MemStorage) FlagReview(ctx context.Context, id int64) error {
	return s.mutateReview(id, func(r *models.Review) { r.Flags++ })
}

func (s *MemStorage) HideReview(ctx context.Context, id int64) error {
	return s.mutateReview(id, func(r *models.Review) { r.IsHidden = true })
}

// Challenges

func (s *MemStorage) GetAllChallenges(ctx context.Context) ([]models.Challenge, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return sortedValues(s.challenges, nil), nil
}

func (s *MemStorage) GetActiveCurrentChallenges(ctx context.Context) ([]models.Challenge, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	return sortedValues(s.challenges, func(c *models.Challenge) bool { return c.ActiveAt(now) }), nil
}

func (s *MemStorage) GetChallenge(ctx context.Context, id int64) (*models.Challenge, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return clone(s.challenges[id]), nil
}

func (s *MemStorage) CreateChallenge(ctx context.Context, challenge models.NewChallenge) (*models.Challenge, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := challenge.Build(s.now())
	c.ID = s.nextChallengeID
	s.nextChallengeID++
	s.challenges[c.ID] = &c
	return clone(&c), nil
}

func (s *MemStorage) UpdateChallenge(ctx context.Context, id int64, update models.ChallengeUpdate) (*models.Challenge, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.challenges[id]
	if !ok {
		return nil, nil
	}
	update.Apply(c)
	return clone(c), nil
}

func (s *MemStorage) DeleteChallenge(ctx context.Context, id int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.challenges[id]; !ok {
		return false, nil
	}
	delete(s.challenges, id)
	for ucID, uc := range s.userChallenges {
		if uc.ChallengeID == id {
			delete(s.userChallenges, ucID)
		}
	}
	for ubID, ub := range s.userBadges {
		if ub.ChallengeID == id {
			delete(s.userBadges, ubID)
		}
	}
	return true, nil
}

func (s *MemStorage) GetUserChallenges(ctx context.Context, userID int64) ([]models.UserChallenge, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	joined := sortedValues(s.userChallenges, func(uc *models.UserChallenge) bool { return uc.UserID == userID })
	for i := range joined {
		joined[i] = *copyUserChallenge(&joined[i])
	}
	return joined, nil
}

func (s *MemStorage) userChallenge(userID, challengeID int64) *models.UserChallenge {
	for _, uc := range s.userChallenges {
		if uc.UserID == userID && uc.ChallengeID == challengeID {
			return uc
		}
	}
	return nil
}

func (s *MemStorage) JoinChallenge(ctx context.Context, userID, challengeID int64) (*models.UserChallenge, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if existing := s.userChallenge(userID, challengeID); existing != nil {
		return copyUserChallenge(existing), nil
	}
	uc := &models.UserChallenge{
		ID:          s.nextUserChallengeID,
		UserID:      userID,
		ChallengeID: challengeID,
		JoinedAt:    s.now(),
	}
	s.nextUserChallengeID++
	s.userChallenges[uc.ID] = uc
	return clone(uc), nil
}

func (s *MemStorage) UpdateChallengeProgress(ctx context.Context, userID, challengeID int64, progress int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.updateChallengeProgress(userID, challengeID, progress)
	return nil
}

func (s *MemStorage) updateChallengeProgress(userID, challengeID int64, progress int) {
	uc := s.userChallenge(userID, challengeID)
	if uc == nil {
		return
	}
	challenge := s.challenges[challengeID]
	target := 0
	if challenge != nil {
		target = challenge.Target
	}

	uc.Progress = progress
	if uc.IsCompleted || progress < target {
		return
	}
	now := s.now()
	uc.IsCompleted = true
	uc.CompletedAt = &now
	if challenge != nil {
		s.awardBadge(models.BadgeFor(userID, *challenge))
	}
}

// refreshReadingProgress recomputes every unfinished challenge userID has joined.
func (s *MemStorage) refreshReadingProgress(userID int64) {
	userReviews := s.reviewsWhere(func(r *models.Review) bool { return r.UserID == userID })
	joined := sortedValues(s.userChallenges, func(uc *models.UserChallenge) bool { return uc.UserID == userID })
	for _, uc := range joined {
		challenge, ok := s.challenges[uc.ChallengeID]
		if !ok || uc.IsCompleted {
			continue
		}
		s.updateChallengeProgress(userID, uc.ChallengeID, ChallengeProgress(*challenge, userReviews))
	}
}

func (s *MemStorage) GetUserBadges(ctx context.Context, userID int64) ([]models.UserBadge, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return sortedValues(s.userBadges, func(b *models.UserBadge) bool { return b.UserID == userID }), nil
}

func (s *MemStorage) AwardBadge(ctx context.Context, badge models.NewUserBadge) (*models.UserBadge, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return clone(s.awardBadge(badge)), nil
}

func (s *MemStorage) awardBadge(badge models.NewUserBadge) *models.UserBadge {
	b := &models.UserBadge{
		ID:          s.nextUserBadgeID,
		UserID:      badge.UserID,
		ChallengeID: badge.ChallengeID,
		BadgeIcon:   badge.BadgeIcon,
		BadgeColor:  badge.BadgeColor,
		BadgeTitle:  badge.BadgeTitle,
		EarnedAt:    s.now(),
	}
	s.nextUserBadgeID++
	s.userBadges[b.ID] = b
	s.logger.Debug("badge awarded", "user_id", b.UserID, "challenge_id", b.ChallengeID)
	return b
}
