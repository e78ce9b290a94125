// Package command provides process execution for external database client
// binaries.
package command

import (
	"context"
	"io"
	"os"
	"os/exec"
)

// Executor abstracts executable resolution and process creation so runners
// can be tested without spawning real client binaries.
type Executor interface {
	// LookPath resolves an executable name on the system search path.
	LookPath(name string) (string, error)
	// CaptureOutput runs the command to completion and returns its stdout.
	CaptureOutput(ctx context.Context, env []string, name string, args ...string) ([]byte, error)
	// OpenStdout starts the command with stdout piped. Closing the returned
	// reader closes the pipe and reaps the child process.
	OpenStdout(ctx context.Context, env []string, name string, args ...string) (io.ReadCloser, error)
	// OpenStdin starts the command with stdin piped. Closing the returned
	// writer closes the pipe and reaps the child process.
	OpenStdin(ctx context.Context, env []string, name string, args ...string) (io.WriteCloser, error)
}

// DefaultExecutor is the default executor using os/exec.
type DefaultExecutor struct{}

func (e *DefaultExecutor) command(ctx context.Context, env []string, name string, args ...string) *exec.Cmd {
	cmd := exec.CommandContext(ctx, name, args...)
	if len(env) > 0 {
		// Merge the overlay onto the ambient environment, never replace it.
		cmd.Env = append(os.Environ(), env...)
	}
	return cmd
}

// LookPath resolves an executable via exec.LookPath.
func (e *DefaultExecutor) LookPath(name string) (string, error) {
	return exec.LookPath(name)
}

// CaptureOutput runs the command and returns its raw stdout bytes. Errors
// from the child (non-zero exit) propagate unmodified from os/exec.
func (e *DefaultExecutor) CaptureOutput(ctx context.Context, env []string, name string, args ...string) ([]byte, error) {
	return e.command(ctx, env, name, args...).Output()
}

// OpenStdout starts the command and returns its stdout pipe.
func (e *DefaultExecutor) OpenStdout(ctx context.Context, env []string, name string, args ...string) (io.ReadCloser, error) {
	cmd := e.command(ctx, env, name, args...)

	pipe, err := cmd.StdoutPipe()
	if err != nil {
		return nil, err
	}
	if err := cmd.Start(); err != nil {
		return nil, err
	}

	return &reapingReader{ReadCloser: pipe, cmd: cmd}, nil
}

// OpenStdin starts the command and returns its stdin pipe.
func (e *DefaultExecutor) OpenStdin(ctx context.Context, env []string, name string, args ...string) (io.WriteCloser, error) {
	cmd := e.command(ctx, env, name, args...)

	pipe, err := cmd.StdinPipe()
	if err != nil {
		return nil, err
	}
	if err := cmd.Start(); err != nil {
		return nil, err
	}

	return &reapingWriter{WriteCloser: pipe, cmd: cmd}, nil
}

// reapingReader closes the stdout pipe and waits on the child so a single
// Close both releases the stream and reaps the process.
type reapingReader struct {
	io.ReadCloser
	cmd *exec.Cmd
}

func (r *reapingReader) Close() error {
	closeErr := r.ReadCloser.Close()
	waitErr := r.cmd.Wait()
	if closeErr != nil {
		return closeErr
	}
	return waitErr
}

// reapingWriter closes the stdin pipe and waits on the child. The child sees
// EOF on the pipe close, so Wait observes its normal exit.
type reapingWriter struct {
	io.WriteCloser
	cmd *exec.Cmd
}

func (w *reapingWriter) Close() error {
	closeErr := w.WriteCloser.Close()
	waitErr := w.cmd.Wait()
	if closeErr != nil {
		return closeErr
	}
	return waitErr
}
