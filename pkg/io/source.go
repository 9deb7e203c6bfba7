package io

import (
	"context"
	"io"

	"github.com/matzehuels/importgraph/pkg/simgraph"
)

// Source yields the import records of one analysis run.
type Source interface {
	// Load returns every record. Implementations that block honour ctx.
	Load(ctx context.Context) ([]simgraph.Record, error)

	// Describe names the source for logs, e.g. "file deps.csv".
	Describe() string
}

// FileSource loads records from a CSV or JSON file.
type FileSource struct {
	Path    string
	Options Options
}

// Load implements [Source].
func (s FileSource) Load(ctx context.Context) ([]simgraph.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return ImportFile(s.Path, s.Options)
}

// Describe implements [Source].
func (s FileSource) Describe() string { return "file " + s.Path }

// ReaderSource loads records from an already open stream such as stdin.
type ReaderSource struct {
	Name    string
	R       io.Reader
	Options Options
}

// Load implements [Source].
func (s ReaderSource) Load(ctx context.Context) ([]simgraph.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return Read(s.R, s.Options)
}

// Describe implements [Source].
func (s ReaderSource) Describe() string {
	if s.Name == "" {
		return "stream"
	}
	return "stream " + s.Name
}

// StaticSource serves a fixed record slice. Useful in tests and for callers
// that already hold records in memory.
type StaticSource []simgraph.Record

// Load implements [Source].
func (s StaticSource) Load(context.Context) ([]simgraph.Record, error) { return s, nil }

// Describe implements [Source].
func (s StaticSource) Describe() string { return "memory" }
