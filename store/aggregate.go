package store

import (
	"fmt"

	"github.com/ic-coder123/bookverse/models"
)

// NoRating is the average of a book without reviews.
const NoRating = "0"

// AverageRating returns the mean of ratings rounded half-up to one decimal
// digit, and the number of ratings.
func AverageRating(ratings []int) (string, int) {
	sum := 0
	for _, r := range ratings {
		sum += r
	}
	return FormatAverage(int64(sum), len(ratings)), len(ratings)
}

// FormatAverage formats sum/n rounded half-up to one decimal digit.
func FormatAverage(sum int64, n int) string {
	if n <= 0 {
		return NoRating
	}
	num := 20*sum + int64(n)
	den := 2 * int64(n)
	tenths := num / den
	if num < 0 && num%den != 0 {
		tenths-- // floor for negative sums
	}
	sign := ""
	if tenths < 0 {
		sign = "-"
		tenths = -tenths
	}
	return fmt.Sprintf("%s%d.%d", sign, tenths/10, tenths%10)
}

func reviewRatings(reviews []models.Review) []int {
	ratings := make([]int, len(reviews))
	for i, r := range reviews {
		ratings[i] = r.Rating
	}
	return ratings
}

// ChallengeProgress computes a user's progress on c from all of their reviews.
// Genre and streak challenges use simple review counts; pages challenges have
// no page data to count and stay at zero.
func ChallengeProgress(c models.Challenge, userReviews []models.Review) int {
	switch c.Type {
	case models.ChallengeMonthly, models.ChallengeYearly:
		count := 0
		for _, r := range userReviews {
			if c.InWindow(r.CreatedAt) {
				count++
			}
		}
		return count
	case models.ChallengeGenre:
		return len(userReviews)
	case models.ChallengeStreak:
		return min(len(userReviews), c.Target)
	default:
		return 0
	}
}
