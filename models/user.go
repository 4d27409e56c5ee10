package models

import "time"

// Under13Age is the age below which an account needs parental consent.
const Under13Age = 13

type User struct {
	ID            int64     `bson:"_id" json:"id"`
	Username      string    `bson:"username" json:"username"`
	Password      string    `bson:"password" json:"-"`
	BirthYear     int       `bson:"birthYear,omitempty" json:"birthYear,omitempty"` // 0 when not given
	ParentEmail   string    `bson:"parentEmail,omitempty" json:"parentEmail,omitempty"`
	IsUnder13     bool      `bson:"isUnder13" json:"isUnder13"`
	ParentConsent bool      `bson:"parentConsent" json:"parentConsent"`
	CreatedAt     time.Time `bson:"createdAt" json:"createdAt"`
}

type NewUser struct {
	Username      string `json:"username"`
	Password      string `json:"password"`
	BirthYear     int    `json:"birthYear,omitempty"`
	ParentEmail   string `json:"parentEmail,omitempty"`
	ParentConsent bool   `json:"parentConsent"`
}

// IsUnder13 reports whether someone born in birthYear is younger than 13 in
// the year of now. An unknown birth year (0) is never under 13.
func IsUnder13(birthYear int, now time.Time) bool {
	if birthYear == 0 {
		return false
	}
	return now.Year()-birthYear < Under13Age
}

// Build turns the payload into a User created at now. The id is left for the backend.
func (n NewUser) Build(now time.Time) User {
	return User{
		Username:      n.Username,
		Password:      n.Password,
		BirthYear:     n.BirthYear,
		ParentEmail:   n.ParentEmail,
		IsUnder13:     IsUnder13(n.BirthYear, now),
		ParentConsent: n.ParentConsent,
		CreatedAt:     now,
	}
}
