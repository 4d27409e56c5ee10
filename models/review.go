package models

import "time"

type Review struct {
	ID         int64     `bson:"_id" json:"id"`
	BookID     int64     `bson:"bookId" json:"bookId"`
	Content    string    `bson:"content" json:"content"`
	Rating     int       `bson:"rating" json:"rating"`
	AuthorName string    `bson:"authorName" json:"authorName"`
	UserID     int64     `bson:"userId,omitempty" json:"userId,omitempty"` // 0 for anonymous reviews
	Likes      int       `bson:"likes" json:"likes"`
	Dislikes   int       `bson:"dislikes" json:"dislikes"`
	Flags      int       `bson:"flags" json:"flags"`
	IsHidden   bool      `bson:"isHidden" json:"isHidden"`
	CreatedAt  time.Time `bson:"createdAt" json:"createdAt"`
}

type NewReview struct {
	BookID     int64  `json:"bookId"`
	Content    string `json:"content"`
	Rating     int    `json:"rating"`
	AuthorName string `json:"authorName"`
	UserID     int64  `json:"userId,omitempty"`
}

// Build turns the payload into a fresh Review with zeroed moderation counters.
func (n NewReview) Build(now time.Time) Review {
	return Review{
		BookID:     n.BookID,
		Content:    n.Content,
		Rating:     n.Rating,
		AuthorName: n.AuthorName,
		UserID:     n.UserID,
		CreatedAt:  now,
	}
}
