package models

import "time"

// Article is a posted or uploaded piece of text/markdown content.
// Author is a denormalized snapshot of the author's username at creation
// time; it is not refreshed if the account ever changes.
type Article struct {
	ID        ArticleID `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	WordCount int       `json:"word_count" cbor:"word_count"`
	AuthorID  UserID    `json:"author_id" cbor:"author_id"`
	Author    string    `json:"author"`
	IsPrivate bool      `json:"is_private" cbor:"is_private"`
	CreatedAt time.Time `json:"created_at" cbor:"created_at"`
}

// VisibleTo reports whether the given viewer may read this article.
// Public articles are visible to everyone, private ones only to their
// author and to admins.
func (a *Article) VisibleTo(viewer Identity) bool {
	if !a.IsPrivate {
		return true
	}
	if viewer.Anonymous() {
		return false
	}
	return viewer.IsAdmin || a.AuthorID == viewer.UserID
}
