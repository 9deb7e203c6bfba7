package io

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/matzehuels/importgraph/pkg/errors"
	"github.com/matzehuels/importgraph/pkg/simgraph"
)

// DefaultTable is the flat AST feature table written by the feature loader.
const DefaultTable = "ast_flat"

// PGOptions configures [NewPGSource].
type PGOptions struct {
	DSN         string // postgres:// URL or key=value connection string
	Table       string // Optionally schema-qualified. Empty means DefaultTable.
	FeatureType string // Empty means DefaultFeatureType.
}

// PGSource loads records from a Postgres feature table with the columns
// id, filename, feature_type and feature_value.
type PGSource struct {
	pool        *pgxpool.Pool
	query       string
	table       string
	featureType string
}

// NewPGSource connects to Postgres and verifies the connection.
// Call Close when done.
func NewPGSource(ctx context.Context, opts PGOptions) (*PGSource, error) {
	if opts.Table == "" {
		opts.Table = DefaultTable
	}
	if opts.FeatureType == "" {
		opts.FeatureType = DefaultFeatureType
	}
	query, err := selectQuery(opts.Table)
	if err != nil {
		return nil, err
	}

	config, err := pgxpool.ParseConfig(opts.DSN)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse database url")
	}
	config.MaxConns = 2
	config.MaxConnLifetime = 5 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeDatabase, err, "create connection pool")
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, errors.Wrap(errors.ErrCodeDatabase, err, "database unreachable")
	}

	return &PGSource{
		pool:        pool,
		query:       query,
		table:       opts.Table,
		featureType: opts.FeatureType,
	}, nil
}

// Load implements [Source]. Rows are returned in id order. A NULL or empty
// filename or feature value is a MALFORMED_INPUT error.
func (s *PGSource) Load(ctx context.Context) ([]simgraph.Record, error) {
	rows, err := s.pool.Query(ctx, s.query, s.featureType)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeDatabase, err, "query %s", s.table)
	}
	defer rows.Close()

	var records []simgraph.Record
	for n := 1; rows.Next(); n++ {
		var filename, value *string
		if err := rows.Scan(&filename, &value); err != nil {
			return nil, errors.Wrap(errors.ErrCodeDatabase, err, "scan %s row %d", s.table, n)
		}
		if filename == nil || *filename == "" {
			return nil, errors.Malformed(n, "filename", "null or empty")
		}
		if value == nil || *value == "" {
			return nil, errors.Malformed(n, "feature_value", "null or empty")
		}
		records = append(records, simgraph.Record{Filename: *filename, ImportPath: *value})
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeDatabase, err, "read %s", s.table)
	}
	return records, nil
}

// Describe implements [Source].
func (s *PGSource) Describe() string {
	return fmt.Sprintf("postgres table %s (%s)", s.table, s.featureType)
}

// Close releases the connection pool.
func (s *PGSource) Close() {
	s.pool.Close()
}

func selectQuery(table string) (string, error) {
	parts := strings.Split(table, ".")
	if len(parts) > 2 {
		return "", errors.New(errors.ErrCodeInvalidConfig, "invalid table name %q", table)
	}
	for _, p := range parts {
		if p == "" {
			return "", errors.New(errors.ErrCodeInvalidConfig, "invalid table name %q", table)
		}
	}
	ident := pgx.Identifier(parts).Sanitize()
	return "SELECT filename, feature_value FROM " + ident + " WHERE feature_type = $1 ORDER BY id", nil
}
