package kb

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrExternalTool  = errors.New("external tool failed")
	ErrParse         = errors.New("unexpected command output")
	ErrConfig        = errors.New("invalid configuration")
	ErrNotFound      = errors.New("layout not found")
	ErrIO            = errors.New("state file error")
	ErrInvalidLayout = errors.New("invalid layout")
)

// ExternalToolError is returned when a helper program cannot be started or
// exits with a non-zero status. ExitCode is -1 if the program never ran.
type ExternalToolError struct {
	Command  string
	ExitCode int
	Stderr   string
	Err      error
}

func (e *ExternalToolError) Error() string {
	var b strings.Builder
	if e.ExitCode < 0 {
		fmt.Fprintf(&b, "run %q: %v", e.Command, e.Err)
	} else {
		fmt.Fprintf(&b, "%q exited with code %d", e.Command, e.ExitCode)
	}
	if e.Stderr != "" {
		fmt.Fprintf(&b, ", stderr: %s", e.Stderr)
	}
	return b.String()
}

func (e *ExternalToolError) Unwrap() error {
	return e.Err
}

func (e *ExternalToolError) Is(target error) bool {
	return target == ErrExternalTool
}
