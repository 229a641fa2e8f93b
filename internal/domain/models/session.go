package models

import "time"

// SessionTTL is the fixed absolute lifetime of a session.
const SessionTTL = 24 * time.Hour

// Session binds an opaque token to an authenticated identity. The token
// is the record ID itself; nothing about the user is derivable from it.
type Session struct {
	ID        SessionID `json:"id"`
	UserID    UserID    `json:"user_id" cbor:"user_id"`
	Username  string    `json:"username"`
	IsAdmin   bool      `json:"is_admin" cbor:"is_admin"`
	ExpiresAt time.Time `json:"expires_at" cbor:"expires_at"`
	CreatedAt time.Time `json:"created_at" cbor:"created_at"`
}

// Expired reports whether the session's absolute expiry has passed.
func (s *Session) Expired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}

// Identity returns the identity this session authenticates.
func (s *Session) Identity() Identity {
	return Identity{
		UserID:   s.UserID,
		Username: s.Username,
		IsAdmin:  s.IsAdmin,
	}
}
