// Package config loads and validates analysis settings.
//
// Settings come from, in increasing precedence: [Default], a TOML or YAML
// file read by [Load], the IMPORTGRAPH_DSN environment variable (only for an
// unset DSN, see [Config.ApplyEnv]) and command-line flags applied by the
// caller. A minimal TOML file:
//
//	threshold = 3
//	resolution = 1.0
//
//	[postgres]
//	table = "ast_flat"
package config
