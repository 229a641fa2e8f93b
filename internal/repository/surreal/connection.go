// Package surreal implements the repository interfaces on SurrealDB.
//
// All queries are parameterized ($param syntax); user-provided values
// never reach a query string through interpolation. Records marshal via
// the surrealcbor codec so time.Time and the typed record IDs survive
// the round trip intact.
package surreal

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"

	surrealdb "github.com/surrealdb/surrealdb.go"
	"github.com/surrealdb/surrealdb.go/pkg/connection"
	"github.com/surrealdb/surrealdb.go/pkg/connection/gorillaws"
	"github.com/surrealdb/surrealdb.go/surrealcbor"
)

// ConnectionConfig holds what Connect needs to reach the database.
type ConnectionConfig struct {
	URL       string // websocket endpoint, e.g. ws://localhost:8000/rpc
	Namespace string
	Database  string
	Username  string
	Password  string
}

// Connect dials SurrealDB over websocket with the surrealcbor codec,
// authenticates when credentials are configured, and selects the
// namespace/database. The caller owns the returned handle.
func Connect(ctx context.Context, cfg ConnectionConfig) (*surrealdb.DB, error) {
	u, err := url.Parse(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("parse database URL: %w", err)
	}

	conf := connection.NewConfig(u)

	// The default codec mangles time.Time and RecordID values; the
	// surrealcbor codec matches SurrealDB's internal CBOR format.
	codec := surrealcbor.New()
	conf.Marshaler = codec
	conf.Unmarshaler = codec

	db, err := surrealdb.FromConnection(ctx, gorillaws.New(conf))
	if err != nil {
		return nil, fmt.Errorf("connect to SurrealDB: %w", err)
	}

	if cfg.Username != "" {
		if _, err := db.SignIn(ctx, map[string]any{
			"user": cfg.Username,
			"pass": cfg.Password,
		}); err != nil {
			return nil, fmt.Errorf("authenticate: %w", err)
		}
	}

	if err := db.Use(ctx, cfg.Namespace, cfg.Database); err != nil {
		return nil, fmt.Errorf("use namespace/database: %w", err)
	}

	return db, nil
}

// RepositoryConfig bundles the shared dependencies of every repository.
type RepositoryConfig struct {
	DB     *surrealdb.DB
	Logger *slog.Logger
}
