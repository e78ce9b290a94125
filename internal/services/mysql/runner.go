// Package mysql wraps the mysqldump and mysql client binaries.
package mysql

import (
	"context"
	"io"

	"github.com/rs/zerolog"
	"github.com/skessler/dbmask/internal/models"
	"github.com/skessler/dbmask/internal/services/command"
)

const (
	dumpExecutable = "mysqldump"
	cmdExecutable  = "mysql"
)

// DumpRunner streams a database dump from mysqldump.
type DumpRunner struct {
	executor command.Executor
	logger   zerolog.Logger
	spec     models.ConnectionSpec
}

// NewDumpRunner creates a dump runner, verifying mysqldump is on PATH.
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
	var args []string
	if r.spec.Host != "" {
		args = append(args, "--host", r.spec.Host)
	}
	if r.spec.Port != "" {
		args = append(args, "--port", r.spec.Port)
	}
	if r.spec.User != "" {
		args = append(args, "--user", r.spec.User)
	}
	if r.spec.Password != "" {
		// mysqldump takes the password concatenated onto the flag.
		args = append(args, "-p"+r.spec.Password)
	}
	args = append(args, r.spec.SplitAdditionalOpts()...)
	return append(args, r.spec.Name)
}

// OpenDumper starts mysqldump with stdout piped and returns the read end.
// The caller owns the stream; closing it reaps the process.
func (r *DumpRunner) OpenDumper(ctx context.Context) (io.ReadCloser, error) {
	r.logger.Debug().Str("database", r.spec.Name).Msg("opening mysqldump stream")
	return r.executor.OpenStdout(ctx, nil, dumpExecutable, r.dumpArgs()...)
}

// CmdRunner executes statements through the mysql client binary.
type CmdRunner struct {
	executor command.Executor
	logger   zerolog.Logger
	spec     models.ConnectionSpec
}

// NewCmdRunner creates a command runner, verifying mysql is on PATH.
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

// baseArgs builds the connection portion of the mysql argument vector. The
// interactive client uses the short flag forms, unlike mysqldump.
func (r *CmdRunner) baseArgs() []string {
	var args []string
	if r.spec.Host != "" {
		args = append(args, "-h", r.spec.Host)
	}
	if r.spec.Port != "" {
		args = append(args, "-P", r.spec.Port)
	}
	if r.spec.User != "" {
		args = append(args, "-u", r.spec.User)
	}
	if r.spec.Password != "" {
		args = append(args, "-p"+r.spec.Password)
	}
	return args
}

// OpenBatch starts mysql with stdin piped for streaming statements in.
// The caller owns the stream; closing it reaps the process.
func (r *CmdRunner) OpenBatch(ctx context.Context) (io.WriteCloser, error) {
	args := append(r.baseArgs(), r.spec.SplitAdditionalOpts()...)
	args = append(args, r.spec.Name)

	r.logger.Debug().Str("database", r.spec.Name).Msg("opening mysql batch stream")
	return r.executor.OpenStdin(ctx, nil, cmdExecutable, args...)
}

// Execute runs a single statement and returns the decoded output.
func (r *CmdRunner) Execute(ctx context.Context, statement string) (string, error) {
	args := append(r.baseArgs(), r.spec.SplitAdditionalOpts()...)
	args = append(args, "--execute", statement)

	out, err := r.executor.CaptureOutput(ctx, nil, cmdExecutable, args...)
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
	args := append(r.baseArgs(), r.spec.SplitAdditionalOpts()...)
	args = append(args, r.spec.Name, "--execute", statement)

	out, err := r.executor.CaptureOutput(ctx, nil, cmdExecutable, args...)
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

// SingleResult runs a statement expected to yield one value, with column
// headers suppressed (-sN), and returns the decoded output as-is.
func (r *CmdRunner) SingleResult(ctx context.Context, statement string) (string, error) {
	args := append(r.baseArgs(), "-sN")
	args = append(args, r.spec.SplitAdditionalOpts()...)
	args = append(args, r.spec.Name, "--execute", statement)

	out, err := r.executor.CaptureOutput(ctx, nil, cmdExecutable, args...)
	if err != nil {
		return "", err
	}
	return string(out), nil
}
