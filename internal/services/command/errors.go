package command

import "fmt"

// DependencyError indicates a required client executable could not be
// resolved on the system search path. It is returned at runner construction,
// before any process is spawned.
type DependencyError struct {
	Executable string
	Err        error
}

func (e *DependencyError) Error() string {
	return fmt.Sprintf("required executable %q not found in PATH: %v", e.Executable, e.Err)
}

func (e *DependencyError) Unwrap() error {
	return e.Err
}
