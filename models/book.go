package models

import "time"

// Book is a catalog entry. AverageRating and TotalReviews are derived from the
// book's reviews and are only written by the storage backends.
type Book struct {
	ID            int64     `bson:"_id" json:"id"`
	Title         string    `bson:"title" json:"title"`
	Author        string    `bson:"author" json:"author"`
	Description   string    `bson:"description" json:"description"`
	CoverImage    string    `bson:"coverImage" json:"coverImage"`
	Genre         string    `bson:"genre" json:"genre"`
	AmazonURL     string    `bson:"amazonUrl,omitempty" json:"amazonUrl,omitempty"`
	AverageRating string    `bson:"averageRating" json:"averageRating"` // one fractional digit, "0" when unrated
	TotalReviews  int       `bson:"totalReviews" json:"totalReviews"`
	CreatedAt     time.Time `bson:"createdAt" json:"createdAt"`
}

type NewBook struct {
	Title       string `json:"title"`
	Author      string `json:"author"`
	Description string `json:"description"`
	CoverImage  string `json:"coverImage"`
	Genre       string `json:"genre"`
	AmazonURL   string `json:"amazonUrl,omitempty"`
}

// BookUpdate is a partial update; nil fields are left unchanged.
type BookUpdate struct {
	Title       *string `json:"title,omitempty"`
	Author      *string `json:"author,omitempty"`
	Description *string `json:"description,omitempty"`
	CoverImage  *string `json:"coverImage,omitempty"`
	Genre       *string `json:"genre,omitempty"`
	AmazonURL   *string `json:"amazonUrl,omitempty"`
}

// Apply copies the set fields of u onto b.
func (u BookUpdate) Apply(b *Book) {
	if u.Title != nil {
		b.Title = *u.Title
	}
	if u.Author != nil {
		b.Author = *u.Author
	}
	if u.Description != nil {
		b.Description = *u.Description
	}
	if u.CoverImage != nil {
		b.CoverImage = *u.CoverImage
	}
	if u.Genre != nil {
		b.Genre = *u.Genre
	}
	if u.AmazonURL != nil {
		b.AmazonURL = *u.AmazonURL
	}
}

// Fields returns the set fields keyed by their document names.
func (u BookUpdate) Fields() map[string]any {
	set := map[string]any{}
	if u.Title != nil {
		set["title"] = *u.Title
	}
	if u.Author != nil {
		set["author"] = *u.Author
	}
	if u.Description != nil {
		set["description"] = *u.Description
	}
	if u.CoverImage != nil {
		set["coverImage"] = *u.CoverImage
	}
	if u.Genre != nil {
		set["genre"] = *u.Genre
	}
	if u.AmazonURL != nil {
		set["amazonUrl"] = *u.AmazonURL
	}
	return set
}
