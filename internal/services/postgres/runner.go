// Package postgres wraps the pg_dump and psql client binaries.
package postgres

import (
	"context"
	"io"

	"github.com/rs/zerolog"
	"github.com/skessler/dbmask/internal/models"
	"github.com/skessler/dbmask/internal/services/command"
)

const (
	dumpExecutable = "pg_dump"
	cmdExecutable  = "psql"
)

// passwordEnv returns the environment overlay for the spawned process. The
// postgres clients never take the password on the command line; when no
// password is configured, PGPASSWORD must not be set at all.
func passwordEnv(spec models.ConnectionSpec) []string {
	if spec.Password == "" {
		return nil
	}
	return []string{"PGPASSWORD=" + spec.Password}
}

func connectionArgs(spec models.ConnectionSpec) []string {
	var args []string
	if spec.Host != "" {
		args = append(args, "--host", spec.Host)
	}
	if spec.Port != "" {
		args = append(args, "--port", spec.Port)
	}
	if spec.User != "" {
		args = append(args, "--username", spec.User)
	}
	return args
}

// DumpRunner streams a database dump from pg_dump.
type DumpRunner struct {
	executor command.Executor
	logger   zerolog.Logger
	spec     models.ConnectionSpec
}

// NewDumpRunner creates a dump runner, verifying pg_dump is on PATH.
func NewDumpRunner(logger zerolog.Logger, spec models.ConnectionSpec) (*DumpRunner, error) {
	return NewDumpRunnerWithExecutor(logger, spec, &command.DefaultExecutor{})
}

// NewDumpRunnerWithExecutor creates a dump runner with a custom executor
// (for testing).
func NewDumpRunnerWithExecutor(logger zerolog.Logger, spec models.ConnectionSpec, executor command.Executor) (*DumpRunner, error) {
	if _, err := executor.LookPath(dumpExecutable); err != nil {
		return nil, &command.DependencyError{Executable: dumpExecutable, Err: err}
	}

	return &DumpRunner{
		executor: executor,
		logger:   logger,
		spec:     spec,
	}, nil
}

func (r *DumpRunner) dumpArgs() []string {
	args := connectionArgs(r.spec)
	args = append(args, r.spec.SplitAdditionalOpts()...)
	return append(args, r.spec.Name)
}

// OpenDumper starts pg_dump with stdout piped and returns the read end.
// The caller owns the stream; closing it reaps the process.
func (r *DumpRunner) OpenDumper(ctx context.Context) (io.ReadCloser, error) {
	r.logger.Debug().Str("database", r.spec.Name).Msg("opening pg_dump stream")
	return r.executor.OpenStdout(ctx, passwordEnv(r.spec), dumpExecutable, r.dumpArgs()...)
}

// CmdRunner executes statements through the psql client binary.
type CmdRunner struct {
	executor command.Executor
	logger   zerolog.Logger
	spec     models.ConnectionSpec
}

// NewCmdRunner creates a command runner, verifying psql is on PATH.
func NewCmdRunner(logger zerolog.Logger, spec models.ConnectionSpec) (*CmdRunner, error) {
	return NewCmdRunnerWithExecutor(logger, spec, &command.DefaultExecutor{})
}

// NewCmdRunnerWithExecutor creates a command runner with a custom executor
// (for testing).
func NewCmdRunnerWithExecutor(logger zerolog.Logger, spec models.ConnectionSpec, executor command.Executor) (*CmdRunner, error) {
	if _, err := executor.LookPath(cmdExecutable); err != nil {
		return nil, &command.DependencyError{Executable: cmdExecutable, Err: err}
	}

	return &CmdRunner{
		executor: executor,
		logger:   logger,
		spec:     spec,
	}, nil
}

// OpenBatch starts psql with stdin piped for streaming statements in. The
// session is scoped to the configured database and runs quiet.
func (r *CmdRunner) OpenBatch(ctx context.Context) (io.WriteCloser, error) {
	args := append(connectionArgs(r.spec), "--dbname", r.spec.Name, "--quiet")
	args = append(args, r.spec.SplitAdditionalOpts()...)

	r.logger.Debug().Str("database", r.spec.Name).Msg("opening psql batch stream")
	return r.executor.OpenStdin(ctx, passwordEnv(r.spec), cmdExecutable, args...)
}

// Execute runs a single statement and returns the decoded output.
func (r *CmdRunner) Execute(ctx context.Context, statement string) (string, error) {
	args := append(connectionArgs(r.spec), r.spec.SplitAdditionalOpts()...)
	args = append(args, "--command", statement)

	out, err := r.executor.CaptureOutput(ctx, passwordEnv(r.spec), cmdExecutable, args...)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// ExecuteMany runs each statement as its own invocation and returns the
// decoded outputs in input order.
func (r *CmdRunner) ExecuteMany(ctx context.Context, statements []string) ([]string, error) {
	results := make([]string, 0, len(statements))
	for _, statement := range statements {
		out, err := r.Execute(ctx, statement)
		if err != nil {
			return nil, err
		}
		results = append(results, out)
	}
	return results, nil
}

// DBExecute runs a single statement scoped to the configured database.
func (r *CmdRunner) DBExecute(ctx context.Context, statement string) (string, error) {
	args := append(connectionArgs(r.spec), "--dbname", r.spec.Name)
	args = append(args, r.spec.SplitAdditionalOpts()...)
	args = append(args, "--command", statement)

	out, err := r.executor.CaptureOutput(ctx, passwordEnv(r.spec), cmdExecutable, args...)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// DBExecuteMany runs each statement scoped to the configured database.
func (r *CmdRunner) DBExecuteMany(ctx context.Context, statements []string) ([]string, error) {
	results := make([]string, 0, len(statements))
	for _, statement := range statements {
		out, err := r.DBExecute(ctx, statement)
		if err != nil {
			return nil, err
		}
		results = append(results, out)
	}
	return results, nil
}

// SingleResult runs a statement expected to yield one value, in tuples-only
// unaligned mode (-tA), and returns the decoded output as-is.
func (r *CmdRunner) SingleResult(ctx context.Context, statement string) (string, error) {
	args := append(connectionArgs(r.spec), "--dbname", r.spec.Name, "-tA")
	args = append(args, r.spec.SplitAdditionalOpts()...)
	args = append(args, "--command", statement)

	out, err := r.executor.CaptureOutput(ctx, passwordEnv(r.spec), cmdExecutable, args...)
	if err != nil {
		return "", err
	}
	return string(out), nil
}
