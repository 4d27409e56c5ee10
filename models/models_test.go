package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestIsUnder13(t *testing.T) {
	now := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)
	tests := []struct {
		name      string
		birthYear int
		want      bool
	}{
		{"unknown", 0, false},
		{"ten years old", 2016, true},
		{"twelve", 2014, true},
		{"thirteen", 2013, false},
		{"twenty", 2006, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsUnder13(tt.birthYear, now))
		})
	}
}

func TestNewUserBuild(t *testing.T) {
	now := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)
	u := NewUser{Username: "kid", Password: "pw", BirthYear: 2016, ParentEmail: "p@example.com"}.Build(now)
	assert.True(t, u.IsUnder13)
	assert.False(t, u.ParentConsent)
	assert.Equal(t, now, u.CreatedAt)
	assert.Zero(t, u.ID)
}

func TestChallengeActiveAt(t *testing.T) {
	start := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, time.March, 31, 23, 59, 59, 0, time.UTC)
	c := Challenge{IsActive: true, StartDate: start, EndDate: end}

	assert.True(t, c.ActiveAt(start))
	assert.True(t, c.ActiveAt(end))
	assert.True(t, c.ActiveAt(start.Add(48*time.Hour)))
	assert.False(t, c.ActiveAt(start.Add(-time.Second)))
	assert.False(t, c.ActiveAt(end.Add(time.Second)))

	c.IsActive = false
	assert.False(t, c.ActiveAt(start.Add(time.Hour)))
	assert.True(t, c.InWindow(start.Add(time.Hour)))
}

func TestChallengeTypeValid(t *testing.T) {
	for _, ct := range ChallengeTypes {
		assert.True(t, ct.Valid(), ct)
	}
	assert.False(t, ChallengeType("weekly").Valid())
}

func TestBookUpdate(t *testing.T) {
	title := "New Title"
	url := ""
	b := Book{Title: "Old", Author: "A", AmazonURL: "https://example.com"}
	u := BookUpdate{Title: &title, AmazonURL: &url}

	u.Apply(&b)
	assert.Equal(t, "New Title", b.Title)
	assert.Equal(t, "A", b.Author)
	assert.Empty(t, b.AmazonURL)
	assert.Equal(t, map[string]any{"title": "New Title", "amazonUrl": ""}, u.Fields())
	assert.Empty(t, BookUpdate{}.Fields())
}

func TestChallengeUpdate(t *testing.T) {
	target := 10
	active := false
	c := Challenge{Title: "T", Target: 3, IsActive: true}
	ChallengeUpdate{Target: &target, IsActive: &active}.Apply(&c)
	assert.Equal(t, 10, c.Target)
	assert.False(t, c.IsActive)
	assert.Equal(t, "T", c.Title)
}

func TestBadgeFor(t *testing.T) {
	c := Challenge{ID: 4, Title: "Bookworm", BadgeIcon: "🐛", BadgeColor: "bg-purple-500"}
	assert.Equal(t, NewUserBadge{
		UserID:      9,
		ChallengeID: 4,
		BadgeIcon:   "🐛",
		BadgeColor:  "bg-purple-500",
		BadgeTitle:  "Bookworm",
	}, BadgeFor(9, c))
}
