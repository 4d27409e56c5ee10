package models

import "time"

// ChallengeType is the kind of reading challenge.
type ChallengeType string

const (
	ChallengeMonthly ChallengeType = "monthly"
	ChallengeYearly  ChallengeType = "yearly"
	ChallengeGenre   ChallengeType = "genre"
	ChallengePages   ChallengeType = "pages"
	ChallengeStreak  ChallengeType = "streak"
)

var ChallengeTypes = []ChallengeType{ChallengeMonthly, ChallengeYearly, ChallengeGenre, ChallengePages, ChallengeStreak}

func (t ChallengeType) Valid() bool {
	for _, ct := range ChallengeTypes {
		if ct == t {
			return true
		}
	}
	return false
}

type Challenge struct {
	ID          int64         `bson:"_id" json:"id"`
	Title       string        `bson:"title" json:"title"`
	Description string        `bson:"description" json:"description"`
	Type        ChallengeType `bson:"type" json:"type"`
	Target      int           `bson:"target" json:"target"`
	StartDate   time.Time     `bson:"startDate" json:"startDate"`
	EndDate     time.Time     `bson:"endDate" json:"endDate"`
	BadgeIcon   string        `bson:"badgeIcon" json:"badgeIcon"`
	BadgeColor  string        `bson:"badgeColor" json:"badgeColor"`
	IsActive    bool          `bson:"isActive" json:"isActive"`
	CreatedAt   time.Time     `bson:"createdAt" json:"createdAt"`
}

// ActiveAt reports whether the challenge is switched on and t falls inside
// its window, both ends inclusive.
func (c Challenge) ActiveAt(t time.Time) bool {
	return c.IsActive && !t.Before(c.StartDate) && !t.After(c.EndDate)
}

// InWindow reports whether t falls inside [StartDate, EndDate].
func (c Challenge) InWindow(t time.Time) bool {
	return !t.Before(c.StartDate) && !t.After(c.EndDate)
}

type NewChallenge struct {
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Type        ChallengeType `json:"type"`
	Target      int           `json:"target"`
	StartDate   time.Time     `json:"startDate"`
	EndDate     time.Time     `json:"endDate"`
	BadgeIcon   string        `json:"badgeIcon"`
	BadgeColor  string        `json:"badgeColor"`
	IsActive    bool          `json:"isActive"`
}

func (n NewChallenge) Build(now time.Time) Challenge {
	return Challenge{
		Title:       n.Title,
		Description: n.Description,
		Type:        n.Type,
		Target:      n.Target,
		StartDate:   n.StartDate,
		EndDate:     n.EndDate,
		BadgeIcon:   n.BadgeIcon,
		BadgeColor:  n.BadgeColor,
		IsActive:    n.IsActive,
		CreatedAt:   now,
	}
}

// ChallengeUpdate is a partial update; nil fields are left unchanged.
type ChallengeUpdate struct {
	Title       *string        `json:"title,omitempty"`
	Description *string        `json:"description,omitempty"`
	Type        *ChallengeType `json:"type,omitempty"`
	Target      *int           `json:"target,omitempty"`
	StartDate   *time.Time     `json:"startDate,omitempty"`
	EndDate     *time.Time     `json:"endDate,omitempty"`
	BadgeIcon   *string        `json:"badgeIcon,omitempty"`
	BadgeColor  *string        `json:"badgeColor,omitempty"`
	IsActive    *bool          `json:"isActive,omitempty"`
}

func (u ChallengeUpdate) Apply(c *Challenge) {
	if u.Title != nil {
		c.Title = *u.Title
	}
	if u.Description != nil {
		c.Description = *u.Description
	}
	if u.Type != nil {
		c.Type = *u.Type
	}
	if u.Target != nil {
		c.Target = *u.Target
	}
	if u.StartDate != nil {
		c.StartDate = *u.StartDate
	}
	if u.EndDate != nil {
		c.EndDate = *u.EndDate
	}
	if u.BadgeIcon != nil {
		c.BadgeIcon = *u.BadgeIcon
	}
	if u.BadgeColor != nil {
		c.BadgeColor = *u.BadgeColor
	}
	if u.IsActive != nil {
		c.IsActive = *u.IsActive
	}
}

// Fields returns the set fields keyed by their document names.
func (u ChallengeUpdate) Fields() map[string]any {
	set := map[string]any{}
	if u.Title != nil {
		set["title"] = *u.Title
	}
	if u.Description != nil {
		set["description"] = *u.Description
	}
	if u.Type != nil {
		set["type"] = *u.Type
	}
	if u.Target != nil {
		set["target"] = *u.Target
	}
	if u.StartDate != nil {
		set["startDate"] = *u.StartDate
	}
	if u.EndDate != nil {
		set["endDate"] = *u.EndDate
	}
	if u.BadgeIcon != nil {
		set["badgeIcon"] = *u.BadgeIcon
	}
	if u.BadgeColor != nil {
		set["badgeColor"] = *u.BadgeColor
	}
	if u.IsActive != nil {
		set["isActive"] = *u.IsActive
	}
	return set
}

// UserChallenge records a user's participation in a challenge. At most one
// exists per (UserID, ChallengeID).
type UserChallenge struct {
	ID          int64      `bson:"_id" json:"id"`
	UserID      int64      `bson:"userId" json:"userId"`
	ChallengeID int64      `bson:"challengeId" json:"challengeId"`
	Progress    int        `bson:"progress" json:"progress"`
	IsCompleted bool       `bson:"isCompleted" json:"isCompleted"`
	CompletedAt *time.Time `bson:"completedAt,omitempty" json:"completedAt,omitempty"`
	JoinedAt    time.Time  `bson:"joinedAt" json:"joinedAt"`
}

type UserBadge struct {
	ID          int64     `bson:"_id" json:"id"`
	UserID      int64     `bson:"userId" json:"userId"`
	ChallengeID int64     `bson:"challengeId" json:"challengeId"`
	BadgeIcon   string    `bson:"badgeIcon" json:"badgeIcon"`
	BadgeColor  string    `bson:"badgeColor" json:"badgeColor"`
	BadgeTitle  string    `bson:"badgeTitle" json:"badgeTitle"`
	EarnedAt    time.Time `bson:"earnedAt" json:"earnedAt"`
}

type NewUserBadge struct {
	UserID      int64  `json:"userId"`
	ChallengeID int64  `json:"challengeId"`
	BadgeIcon   string `json:"badgeIcon"`
	BadgeColor  string `json:"badgeColor"`
	BadgeTitle  string `json:"badgeTitle"`
}

// BadgeFor copies the challenge's badge presentation for userID.
func BadgeFor(userID int64, c Challenge) NewUserBadge {
	return NewUserBadge{
		UserID:      userID,
		ChallengeID: c.ID,
		BadgeIcon:   c.BadgeIcon,
		BadgeColor:  c.BadgeColor,
		BadgeTitle:  c.Title,
	}
}
