package models

import "time"

// User is an identity record. Username and email are unique across all
// users; PasswordHash holds a bcrypt hash, never a plaintext password.
type User struct {
	ID           string     `json:"id"`
	Username     string     `json:"username"`
	Email        string     `json:"email"`
	PasswordHash string     `json:"password_hash"`
	CreatedAt    time.Time  `json:"created_at"`
	LastLogin    *time.Time `json:"last_login,omitempty"`
}
