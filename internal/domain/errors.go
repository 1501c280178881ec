package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrReviewRejected is returned when the review service reports the
	// submission as invalid.
	ErrReviewRejected = errors.New("notarization rejected")

	// ErrReviewTimedOut is returned once the poll attempt ceiling is passed.
	ErrReviewTimedOut = errors.New("notarization did not finish in time")

	// ErrUnparsableResponse marks tool output that lacks the expected marker.
	ErrUnparsableResponse = errors.New("unparsable response")
)

// ConfigError reports a missing settings file or required key.
type ConfigError struct {
	Path       string // settings file, when known
	MissingKey string
	Hint       string // closest present key, if any
	Err        error
}

func (e *ConfigError) Error() string {
	switch {
	case e.MissingKey != "" && e.Hint != "":
		return fmt.Sprintf("'%s' key/value is required (did you mean '%s'?)", e.MissingKey, e.Hint)
	case e.MissingKey != "":
		return fmt.Sprintf("'%s' key/value is required", e.MissingKey)
	case e.Path != "" && e.Err != nil:
		return fmt.Sprintf("settings %s: %v", e.Path, e.Err)
	case e.Err != nil:
		return e.Err.Error()
	}
	return "invalid settings"
}

func (e *ConfigError) Unwrap() error { return e.Err }

// FilesystemError reports a failed directory, copy or write operation.
type FilesystemError struct {
	Op   string
	Path string
	Err  error
}

func (e *FilesystemError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *FilesystemError) Unwrap() error { return e.Err }

// SubprocessError reports a non-zero exit from an external tool. Its Code
// becomes the process exit code of opkit.
type SubprocessError struct {
	Stage  string
	Cmd    string
	Code   int
	Output string
}

func (e *SubprocessError) Error() string {
	return fmt.Sprintf("%s: %q exited with code %d", e.Stage, e.Cmd, e.Code)
}

// ExitCode returns the code opkit should terminate with for err.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var sub *SubprocessError
	if errors.As(err, &sub) && sub.Code != 0 {
		return sub.Code
	}
	return 1
}
