// Package config handles configuration loading, parsing, and validation
// from defaults, an optional YAML file and ATTUNE_* environment variables.
// It provides type-safe access to the settings needed by the HTTP server,
// the database layer, token validation and the analysis engines.
package config
