// Package models contains the data structures used throughout dbmask.
package models

import "strings"

// Engine identifies a supported database backend.
type Engine string

// Supported engines.
const (
	EngineMySQL    Engine = "mysql"
	EnginePostgres Engine = "postgres"
)

// ConnectionSpec holds the connection parameters for a database client
// invocation. Name is required; every other field is optional and an empty
// value contributes no tokens to the built argument vector.
type ConnectionSpec struct {
	Host           string
	Port           string
	User           string
	Password       string
	Name           string
	AdditionalOpts string // raw passthrough flags, split on whitespace
}

// SplitAdditionalOpts returns the passthrough options as individual tokens.
// Splitting is plain whitespace splitting: options containing spaces cannot
// be expressed, matching the historical behavior of the *_opts flags.
func (s ConnectionSpec) SplitAdditionalOpts() []string {
	return strings.Fields(s.AdditionalOpts)
}
