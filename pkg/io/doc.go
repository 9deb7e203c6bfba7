// Package io loads import records from files, streams and Postgres.
//
// # Overview
//
// An import record is one (file, import path) fact produced by an upstream
// extractor. This package decodes the formats that extractor writes and
// hands back [simgraph.Record] values ready for [simgraph.BuildIndex].
//
// # CSV
//
// [ReadCSV] expects a header row. Only the Filename and Feature Value columns
// are required. When a Feature Type column exists, rows are filtered to
// [DefaultFeatureType] (or [CSVOptions.FeatureType]):
//
//	Filename,Feature Type,Feature Value,Combined Feature
//	src/app.ts,import_source,react,import_source:react
//
// # JSON
//
// [ReadJSON] expects an array of objects:
//
//	[{"filename": "src/app.ts", "feature_value": "react"}]
//
// # Sources
//
// A [Source] abstracts where records come from. [FileSource] dispatches on
// the file extension, [ReaderSource] wraps stdin or any reader, and
// [PGSource] queries a feature table:
//
//	src, err := io.NewPGSource(ctx, io.PGOptions{DSN: dsn})
//	if err != nil {
//	    return err
//	}
//	defer src.Close()
//	records, err := src.Load(ctx)
//
// # Errors
//
// Unreadable input carries INVALID_INPUT, missing columns and empty values
// carry MALFORMED_INPUT with the offending line, and database failures carry
// DATABASE_ERROR. See [errors.Code].
//
// [simgraph.Record]: github.com/matzehuels/importgraph/pkg/simgraph.Record
// [simgraph.BuildIndex]: github.com/matzehuels/importgraph/pkg/simgraph.BuildIndex
// [errors.Code]: github.com/matzehuels/importgraph/pkg/errors.Code
package io
