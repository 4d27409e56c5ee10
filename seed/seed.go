// Package seed loads the starter challenges and books into a store.
package seed

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/ic-coder123/bookverse/models"
	"github.com/ic-coder123/bookverse/store"
)

// Result counts what Defaults created.
type Result struct {
	Challenges int
	Books      int
}

// Challenges returns the default reading challenges for the month and year of now.
func Challenges(now time.Time) []models.NewChallenge {
	loc := now.Location()
	startOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, loc)
	endOfMonth := startOfMonth.AddDate(0, 1, 0).Add(-time.Nanosecond)
	startOfYear := time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, loc)
	endOfYear := startOfYear.AddDate(1, 0, 0).Add(-time.Nanosecond)

	return []models.NewChallenge{
		{
			Title:       "Book Explorer",
			Description: "Read 5 books this month",
			Type:        models.ChallengeMonthly,
			Target:      5,
			StartDate:   startOfMonth,
			EndDate:     endOfMonth,
			BadgeIcon:   "📚",
			BadgeColor:  "bg-blue-500",
			IsActive:    true,
		},
		{
			Title:       "Reading Enthusiast",
			Description: "Complete 25 books this year",
			Type:        models.ChallengeYearly,
			Target:      25,
			StartDate:   startOfYear,
			EndDate:     endOfYear,
			BadgeIcon:   "🏆",
			BadgeColor:  "bg-yellow-500",
			IsActive:    true,
		},
		{
			Title:       "Quick Reader",
			Description: "Read 3 books this month",
			Type:        models.ChallengeMonthly,
			Target:      3,
			StartDate:   startOfMonth,
			EndDate:     endOfMonth,
			BadgeIcon:   "⚡",
			BadgeColor:  "bg-green-500",
			IsActive:    true,
		},
		{
			Title:       "Bookworm",
			Description: "Maintain a 7-day reading streak",
			Type:        models.ChallengeStreak,
			Target:      7,
			StartDate:   now,
			EndDate:     now.Add(30 * 24 * time.Hour),
			BadgeIcon:   "🐛",
			BadgeColor:  "bg-purple-500",
			IsActive:    true,
		},
	}
}

// Books is the starter catalog.
var Books = []models.NewBook{
	{
		Title:       "Harry Potter and the Sorcerer's Stone",
		Author:      "J.K. Rowling",
		Description: "The first book in the Harry Potter series follows Harry as he discovers he's a wizard and begins his magical education at Hogwarts School of Witchcraft and Wizardry.",
		CoverImage:  "https://images-na.ssl-images-amazon.com/images/S/compressed.photo.goodreads.com/books/1474154022i/3.jpg",
		Genre:       "Fantasy",
		AmazonURL:   "https://www.amazon.com/Harry-Potter-Sorcerers-Stone-Rowling/dp/0439708184",
	},
	{
		Title:       "The Hunger Games",
		Author:      "Suzanne Collins",
		Description: "In a dystopian future, Katniss Everdeen volunteers for the Hunger Games to save her sister, sparking a revolution against the oppressive Capitol.",
		CoverImage:  "https://images-na.ssl-images-amazon.com/images/S/compressed.photo.goodreads.com/books/1586722975i/2767052.jpg",
		Genre:       "Young Adult",
		AmazonURL:   "https://www.amazon.com/Hunger-Games-Suzanne-Collins/dp/0439023483",
	},
	{
		Title:       "Wonder",
		Author:      "R.J. Palacio",
		Description: "August Pullman, born with facial differences, enters fifth grade at a mainstream elementary school and shows everyone that you can't blend in when you were born to stand out.",
		CoverImage:  "https://images-na.ssl-images-amazon.com/images/S/compressed.photo.goodreads.com/books/1309316972i/11387515.jpg",
		Genre:       "Children's Fiction",
		AmazonURL:   "https://www.amazon.com/Wonder-R-J-Palacio/dp/0375869026",
	},
}

// Defaults creates the starter challenges and books through s. Each family
// is skipped when the store already holds records of that kind, so running
// it twice is harmless.
func Defaults(ctx context.Context, s store.Storage, now time.Time, logger *slog.Logger) (Result, error) {
	if logger == nil {
		logger = slog.Default()
	}
	var res Result

	existingChallenges, err := s.GetAllChallenges(ctx)
	if err != nil {
		return res, fmt.Errorf("list challenges: %w", err)
	}
	if len(existingChallenges) == 0 {
		for _, c := range Challenges(now) {
			if _, err := s.CreateChallenge(ctx, c); err != nil {
				return res, fmt.Errorf("seed challenge %q: %w", c.Title, err)
			}
			res.Challenges++
		}
	} else {
		logger.Info("challenges present, skipping seed", "count", len(existingChallenges))
	}

	existingBooks, err := s.GetAllBooks(ctx)
	if err != nil {
		return res, fmt.Errorf("list books: %w", err)
	}
	if len(existingBooks) == 0 {
		for _, b := range Books {
			if _, err := s.CreateBook(ctx, b); err != nil {
				return res, fmt.Errorf("seed book %q: %w", b.Title, err)
			}
			res.Books++
		}
	} else {
		logger.Info("books present, skipping seed", "count", len(existingBooks))
	}

	logger.Info("seeded default data", "challenges", res.Challenges, "books", res.Books)
	return res, nil
}
