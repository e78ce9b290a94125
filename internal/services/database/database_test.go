package database

import (
	"errors"
	"io"
	"testing"

	"github.com/rs/zerolog"
	"github.com/skessler/dbmask/internal/models"
	"github.com/skessler/dbmask/internal/services/command"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() zerolog.Logger {
	return zerolog.New(io.Discard)
}

func testSpec() models.ConnectionSpec {
	return models.ConnectionSpec{Name: "db_name"}
}

func TestNewDumpRunner_UnsupportedEngine(t *testing.T) {
	runner, err := NewDumpRunner("oracle", testLogger(), testSpec())

	require.Error(t, err)
	assert.Nil(t, runner)
	assert.Contains(t, err.Error(), "unsupported database engine")
}

func TestNewCmdRunner_UnsupportedEngine(t *testing.T) {
	runner, err := NewCmdRunner("oracle", testLogger(), testSpec())

	require.Error(t, err)
	assert.Nil(t, runner)
	assert.Contains(t, err.Error(), "unsupported database engine")
}

func TestNewDumpRunner_KnownEngines(t *testing.T) {
	// The client binaries may or may not exist on the test host, so a
	// DependencyError is as acceptable as a runner here. Anything else is
	// a dispatch bug.
	for _, engine := range []models.Engine{models.EngineMySQL, models.EnginePostgres} {
		runner, err := NewDumpRunner(engine, testLogger(), testSpec())
		if err != nil {
			var depErr *command.DependencyError
			assert.True(t, errors.As(err, &depErr), "engine %s: unexpected error %v", engine, err)
			continue
		}
		assert.NotNil(t, runner)
	}
}

func TestNewCmdRunner_KnownEngines(t *testing.T) {
	for _, engine := range []models.Engine{models.EngineMySQL, models.EnginePostgres} {
		runner, err := NewCmdRunner(engine, testLogger(), testSpec())
		if err != nil {
			var depErr *command.DependencyError
			assert.True(t, errors.As(err, &depErr), "engine %s: unexpected error %v", engine, err)
			continue
		}
		assert.NotNil(t, runner)
	}
}
