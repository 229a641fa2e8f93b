package models

import "time"

// Note is a single titled note attached to an annotation. Order within
// the annotation is significant and preserved on update.
type Note struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// Annotation marks a span of article text and carries the notes its
// owner attached to it. Numbers form a single shared sequence per
// article: at any time the numbers on an article are exactly 1..N with
// no gaps or duplicates, regardless of which users created them.
type Annotation struct {
	ID           AnnotationID `json:"id"`
	ArticleID    ArticleID    `json:"article_id" cbor:"article_id"`
	UserID       UserID       `json:"user_id" cbor:"user_id"`
	Username     string       `json:"username"`
	Number       int          `json:"annotation_number" cbor:"annotation_number"`
	SelectedText string       `json:"selected_text" cbor:"selected_text"`
	StartOffset  int          `json:"start_offset" cbor:"start_offset"`
	EndOffset    int          `json:"end_offset" cbor:"end_offset"`
	Notes        []Note       `json:"notes"`
	CreatedAt    time.Time    `json:"created_at" cbor:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at" cbor:"updated_at"`
}

// AnnotationView is the API shape for listings: the annotation plus a
// derived ownership flag for the requesting viewer.
type AnnotationView struct {
	Annotation
	IsOwner bool `json:"is_owner"`
}
