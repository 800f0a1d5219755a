package models

import "time"

// Session is the single process-wide authentication record. At most one
// session exists at a time; it is valid while ExpiresAt is strictly in the
// future. Expiry is evaluated lazily on each check — an expired session is
// treated like no session but stays persisted until the next logout or
// login replaces it.
type Session struct {
	UserID    string    `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}
