// Package database exposes the backend-independent runner interfaces and
// selects an implementation per engine.
package database

import (
	"context"
	"fmt"
	"io"

	"github.com/rs/zerolog"
	"github.com/skessler/dbmask/internal/models"
	"github.com/skessler/dbmask/internal/services/mysql"
	"github.com/skessler/dbmask/internal/services/postgres"
)

// DumpRunner streams a bulk export of a database.
type DumpRunner interface {
	OpenDumper(ctx context.Context) (io.ReadCloser, error)
}

// CmdRunner executes SQL statements through a backend's client binary.
type CmdRunner interface {
	OpenBatch(ctx context.Context) (io.WriteCloser, error)
	Execute(ctx context.Context, statement string) (string, error)
	ExecuteMany(ctx context.Context, statements []string) ([]string, error)
	DBExecute(ctx context.Context, statement string) (string, error)
	DBExecuteMany(ctx context.Context, statements []string) ([]string, error)
	SingleResult(ctx context.Context, statement string) (string, error)
}

// NewDumpRunner returns the dump runner for the given engine. The backend is
// selected once here; callers only see the interface.
func NewDumpRunner(engine models.Engine, logger zerolog.Logger, spec models.ConnectionSpec) (DumpRunner, error) {
	switch engine {
	case models.EngineMySQL:
		return mysql.NewDumpRunner(logger, spec)
	case models.EnginePostgres:
		return postgres.NewDumpRunner(logger, spec)
	default:
		return nil, fmt.Errorf("unsupported database engine %q", engine)
	}
}

// NewCmdRunner returns the command runner for the given engine.
func NewCmdRunner(engine models.Engine, logger zerolog.Logger, spec models.ConnectionSpec) (CmdRunner, error) {
	switch engine {
	case models.EngineMySQL:
		return mysql.NewCmdRunner(logger, spec)
	case models.EnginePostgres:
		return postgres.NewCmdRunner(logger, spec)
	default:
		return nil, fmt.Errorf("unsupported database engine %q", engine)
	}
}
