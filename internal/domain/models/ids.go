package models

import (
	"encoding/json"
	"fmt"

	"github.com/fxamacker/cbor/v2"
	"github.com/google/uuid"
	surreal "github.com/surrealdb/surrealdb.go/pkg/models"
)

// Typed record identifiers. Each wraps a UUID and knows which table it
// belongs to, so struct fields marshal to proper SurrealDB RecordIDs
// (CBOR tag 8) instead of bare strings, while the JSON the API serves
// stays a plain UUID string.

const (
	TableUser       = "user"
	TableArticle    = "article"
	TableAnnotation = "annotation"
	TableSession    = "session"
)

// recordIDTag is the CBOR tag number SurrealDB uses for record IDs.
const recordIDTag = 8

// UserID identifies a user record.
type UserID struct {
	uuid uuid.UUID
}

func NewUserID() UserID { return UserID{uuid: uuid.New()} }

func ParseUserID(s string) (UserID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return UserID{}, fmt.Errorf("invalid user ID: %w", err)
	}
	return UserID{uuid: id}, nil
}

func (u UserID) String() string { return u.uuid.String() }
func (u UserID) IsZero() bool   { return u.uuid == uuid.Nil }

func (u UserID) RecordID() surreal.RecordID {
	return surreal.RecordID{Table: TableUser, ID: u.uuid.String()}
}

func (u UserID) MarshalJSON() ([]byte, error) { return marshalIDJSON(u.uuid) }
func (u *UserID) UnmarshalJSON(data []byte) error {
	return unmarshalIDJSON(data, &u.uuid)
}

func (u UserID) MarshalCBOR() ([]byte, error) {
	return marshalIDCBOR(TableUser, u.uuid)
}
func (u *UserID) UnmarshalCBOR(data []byte) error {
	return unmarshalIDCBOR(data, TableUser, &u.uuid)
}

// ArticleID identifies an article record.
type ArticleID struct {
	uuid uuid.UUID
}

func NewArticleID() ArticleID { return ArticleID{uuid: uuid.New()} }

func ParseArticleID(s string) (ArticleID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return ArticleID{}, fmt.Errorf("invalid article ID: %w", err)
	}
	return ArticleID{uuid: id}, nil
}

func (a ArticleID) String() string { return a.uuid.String() }
func (a ArticleID) IsZero() bool   { return a.uuid == uuid.Nil }

func (a ArticleID) RecordID() surreal.RecordID {
	return surreal.RecordID{Table: TableArticle, ID: a.uuid.String()}
}

func (a ArticleID) MarshalJSON() ([]byte, error) { return marshalIDJSON(a.uuid) }
func (a *ArticleID) UnmarshalJSON(data []byte) error {
	return unmarshalIDJSON(data, &a.uuid)
}

func (a ArticleID) MarshalCBOR() ([]byte, error) {
	return marshalIDCBOR(TableArticle, a.uuid)
}
func (a *ArticleID) UnmarshalCBOR(data []byte) error {
	return unmarshalIDCBOR(data, TableArticle, &a.uuid)
}

// AnnotationID identifies an annotation record.
type AnnotationID struct {
	uuid uuid.UUID
}

func NewAnnotationID() AnnotationID { return AnnotationID{uuid: uuid.New()} }

func ParseAnnotationID(s string) (AnnotationID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return AnnotationID{}, fmt.Errorf("invalid annotation ID: %w", err)
	}
	return AnnotationID{uuid: id}, nil
}

func (a AnnotationID) String() string { return a.uuid.String() }
func (a AnnotationID) IsZero() bool   { return a.uuid == uuid.Nil }

func (a AnnotationID) RecordID() surreal.RecordID {
	return surreal.RecordID{Table: TableAnnotation, ID: a.uuid.String()}
}

func (a AnnotationID) MarshalJSON() ([]byte, error) { return marshalIDJSON(a.uuid) }
func (a *AnnotationID) UnmarshalJSON(data []byte) error {
	return unmarshalIDJSON(data, &a.uuid)
}

func (a AnnotationID) MarshalCBOR() ([]byte, error) {
	return marshalIDCBOR(TableAnnotation, a.uuid)
}
func (a *AnnotationID) UnmarshalCBOR(data []byte) error {
	return unmarshalIDCBOR(data, TableAnnotation, &a.uuid)
}

// SessionID is the opaque session token. It doubles as the record ID of
// the persisted session, so resolution is a single select by ID.
type SessionID struct {
	uuid uuid.UUID
}

func NewSessionID() SessionID { return SessionID{uuid: uuid.New()} }

func ParseSessionID(s string) (SessionID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return SessionID{}, fmt.Errorf("invalid session token: %w", err)
	}
	return SessionID{uuid: id}, nil
}

func (s SessionID) String() string { return s.uuid.String() }
func (s SessionID) IsZero() bool   { return s.uuid == uuid.Nil }

func (s SessionID) RecordID() surreal.RecordID {
	return surreal.RecordID{Table: TableSession, ID: s.uuid.String()}
}

func (s SessionID) MarshalJSON() ([]byte, error) { return marshalIDJSON(s.uuid) }
func (s *SessionID) UnmarshalJSON(data []byte) error {
	return unmarshalIDJSON(data, &s.uuid)
}

func (s SessionID) MarshalCBOR() ([]byte, error) {
	return marshalIDCBOR(TableSession, s.uuid)
}
func (s *SessionID) UnmarshalCBOR(data []byte) error {
	return unmarshalIDCBOR(data, TableSession, &s.uuid)
}

func marshalIDJSON(id uuid.UUID) ([]byte, error) {
	return json.Marshal(id.String())
}

func unmarshalIDJSON(data []byte, target *uuid.UUID) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return err
	}
	*target = id
	return nil
}

func marshalIDCBOR(table string, id uuid.UUID) ([]byte, error) {
	return cbor.Marshal(cbor.Tag{
		Number:  recordIDTag,
		Content: []any{table, id.String()},
	})
}

// unmarshalIDCBOR decodes a SurrealDB RecordID tag and checks it refers
// to the expected table before extracting the UUID part.
func unmarshalIDCBOR(data []byte, expectedTable string, target *uuid.UUID) error {
	if len(data) == 0 {
		return fmt.Errorf("empty CBOR data")
	}

	// Major type 6 is a CBOR tag; anything else cannot be a RecordID.
	if data[0]>>5 != 6 {
		return fmt.Errorf("expected CBOR tag for RecordID, got major type %d", data[0]>>5)
	}

	var tag cbor.Tag
	if err := cbor.Unmarshal(data, &tag); err != nil {
		return fmt.Errorf("failed to unmarshal CBOR tag: %w", err)
	}
	if tag.Number != recordIDTag {
		return fmt.Errorf("expected RecordID tag (%d), got %d", recordIDTag, tag.Number)
	}

	arr, ok := tag.Content.([]any)
	if !ok || len(arr) != 2 {
		return fmt.Errorf("invalid RecordID format: expected [table, id] array")
	}

	table, ok := arr[0].(string)
	if !ok {
		return fmt.Errorf("invalid RecordID format: table name must be string")
	}
	if table != expectedTable {
		return fmt.Errorf("expected table %s, got %s", expectedTable, table)
	}

	idStr, ok := arr[1].(string)
	if !ok {
		return fmt.Errorf("invalid RecordID format: ID must be string")
	}

	parsed, err := uuid.Parse(idStr)
	if err != nil {
		return fmt.Errorf("invalid RecordID UUID: %w", err)
	}
	*target = parsed
	return nil
}
