package models

import "time"

// RefreshToken is the revocable server-side half of a session. The client
// may cache its Token value for "remember me"; revoking the row invalidates
// the remembered session without touching any password.
type RefreshToken struct {
	ID        string
	UserID    string
	Token     string
	Expires   time.Time
	CreatedAt time.Time
}
