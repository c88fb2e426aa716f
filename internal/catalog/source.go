// internal/catalog/source.go
package catalog

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
)

// Source loads a catalog at startup.
type Source interface {
	Load(ctx context.Context) (*Catalog, error)
	Name() string
}

type EmbeddedSource struct{}

func (EmbeddedSource) Name() string { return "embedded" }

func (EmbeddedSource) Load(_ context.Context) (*Catalog, error) {
	return LoadEmbedded()
}

const selectCareersQuery = `SELECT document FROM career_catalog WHERE active = true ORDER BY position ASC`

// PostgresSource reads one JSON career document per row from the
// career_catalog table. Row order defines catalog order.
type PostgresSource struct {
	db      *sql.DB
	version string
}

func NewPostgresSource(db *sql.DB, version string) *PostgresSource {
	return &PostgresSource{db: db, version: version}
}

func (s *PostgresSource) Name() string { return "postgres" }

func (s *PostgresSource) Load(ctx context.Context) (*Catalog, error) {
	rows, err := s.db.QueryContext(ctx, selectCareersQuery)
	if err != nil {
		return nil, fmt.Errorf("query career catalog: %w", err)
	}
	defer rows.Close()

	careers := make([]json.RawMessage, 0, 16)
	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			return nil, fmt.Errorf("scan career row: %w", err)
		}
		careers = append(careers, json.RawMessage(raw))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate career rows: %w", err)
	}

	data, err := json.Marshal(map[string]interface{}{
		"version": s.version,
		"careers": careers,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	return Parse(data)
}

// NewSource picks the catalog source named in configuration.
func NewSource(name string, db *sql.DB, version string) (Source, error) {
	switch name {
	case "", "embedded":
		return EmbeddedSource{}, nil
	case "postgres":
		if db == nil {
			return nil, fmt.Errorf("postgres catalog source requires a database connection")
		}
		return NewPostgresSource(db, version), nil
	default:
		return nil, fmt.Errorf("unknown catalog source %q", name)
	}
}
