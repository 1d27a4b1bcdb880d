package model

import "time"

// User is a projected view of a user document in the remote Overleaf
// MongoDB. It is never persisted locally; every read re-fetches from the
// remote store.
type User struct {
	ID         string
	Email      string
	FirstName  string
	LastName   string
	IsAdmin    bool
	LastActive *time.Time
	SignUpDate *time.Time
	Emails     []UserEmail
}

// UserEmail is one address entry on a user document. Only the first
// entry's confirmation timestamp is consulted for verification status.
type UserEmail struct {
	Email       string
	ConfirmedAt *time.Time
}

// Verified reports whether the user's primary address has completed
// email verification.
func (u *User) Verified() bool {
	return len(u.Emails) > 0 && u.Emails[0].ConfirmedAt != nil
}

// Role returns the display role derived from the admin flag.
func (u *User) Role() string {
	if u.IsAdmin {
		return "ADMIN"
	}
	return "USER"
}

// UserStats aggregates remote count queries over the users collection.
type UserStats struct {
	Total    int64
	Admins   int64
	Verified int64
}

// Unverified is derived, not queried.
func (s UserStats) Unverified() int64 {
	return s.Total - s.Verified
}
