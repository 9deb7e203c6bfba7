//go:build integration

package io

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/importgraph/pkg/simgraph"
)

func TestPGSource_Integration(t *testing.T) {
	dsn := os.Getenv("IMPORTGRAPH_TEST_DSN")
	if dsn == "" {
		t.Skip("IMPORTGRAPH_TEST_DSN not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	conn, err := pgx.Connect(ctx, dsn)
	require.NoError(t, err)
	defer conn.Close(ctx)

	const table = "importgraph_it_ast_flat"
	_, err = conn.Exec(ctx, `DROP TABLE IF EXISTS `+table)
	require.NoError(t, err)
	_, err = conn.Exec(ctx, `CREATE TABLE `+table+` (
		id SERIAL PRIMARY KEY,
		filename TEXT,
		feature_type TEXT,
		feature_value TEXT,
		combined_feature TEXT
	)`)
	require.NoError(t, err)
	t.Cleanup(func() { _, _ = conn.Exec(context.Background(), `DROP TABLE IF EXISTS `+table) })

	_, err = conn.Exec(ctx, `INSERT INTO `+table+` (filename, feature_type, feature_value) VALUES
		('A', 'import_source', 'os'),
		('B', 'import_source', 'os'),
		('A', 'jsx_element', 'div'),
		('C', 'import_source', 'os')`)
	require.NoError(t, err)

	src, err := NewPGSource(ctx, PGOptions{DSN: dsn, Table: table})
	require.NoError(t, err)
	defer src.Close()

	got, err := src.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, []simgraph.Record{
		{Filename: "A", ImportPath: "os"},
		{Filename: "B", ImportPath: "os"},
		{Filename: "C", ImportPath: "os"},
	}, got)
}
