package models

import "time"

// RootUsername is the distinguished always-admin account. Its admin flag
// can never be revoked, by anyone.
const RootUsername = "root"

// User is a registered account. Usernames are unique and compared
// case-sensitively. The bcrypt hash never leaves the server.
type User struct {
	ID           UserID    `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-" cbor:"password_hash"`
	IsAdmin      bool      `json:"is_admin" cbor:"is_admin"`
	CreatedAt    time.Time `json:"created_at" cbor:"created_at"`
}

// IsRoot reports whether this is the distinguished root account.
func (u *User) IsRoot() bool { return u.Username == RootUsername }

// Identity is the immutable per-request view of who is calling. It is
// resolved once from the session cookie and threaded through every
// service call; the zero value is the anonymous viewer.
type Identity struct {
	UserID   UserID `json:"user_id"`
	Username string `json:"username"`
	IsAdmin  bool   `json:"is_admin"`
}

// Anonymous reports whether no authenticated user backs this identity.
func (id Identity) Anonymous() bool { return id.UserID.IsZero() }
