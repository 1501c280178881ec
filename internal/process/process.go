// Package process runs external tools on behalf of the build pipeline.
//
// Every invocation blocks until the process exits. The working directory
// is passed per command, so the caller's own directory is never changed.
package process

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"runtime"

	"opkit/internal/domain"
)

// Runner executes domain.Commands with os/exec.
type Runner struct {
	// Stdin, Stdout and Stderr are used for attached commands; nil falls
	// back to the process's own streams.
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// New returns a Runner attached to the current terminal.
func New() *Runner { return &Runner{} }

// Run starts cmd and waits for it. A non-zero exit is reported through
// Result.ExitCode with a nil error.
func (r *Runner) Run(ctx context.Context, cmd domain.Command) (domain.Result, error) {
	c := exec.CommandContext(ctx, cmd.Name, cmd.Args...)
	c.Dir = cmd.Dir
	if len(cmd.Env) > 0 {
		c.Env = append(os.Environ(), cmd.Env...)
	}

	var out bytes.Buffer
	if cmd.Attach {
		c.Stdin = pick[io.Reader](r.Stdin, os.Stdin)
		c.Stdout = pick[io.Writer](r.Stdout, os.Stdout)
		c.Stderr = pick[io.Writer](r.Stderr, os.Stderr)
	} else {
		c.Stdout = &out
		c.Stderr = &out
	}

	err := c.Run()
	res := domain.Result{Output: out.String()}

	var exitErr *exec.ExitError
	switch {
	case err == nil:
		return res, nil
	case errors.As(err, &exitErr):
		res.ExitCode = exitErr.ExitCode()
		if res.ExitCode < 0 {
			// Killed by a signal.
			res.ExitCode = 1
		}
		return res, nil
	default:
		res.ExitCode = -1
		return res, err
	}
}

// Check runs cmd and turns a non-zero exit into a SubprocessError tagged
// with stage. display replaces the command line in the error when the real
// one carries secrets.
func Check(ctx context.Context, r domain.Runner, stage string, cmd domain.Command, display string) (domain.Result, error) {
	res, err := r.Run(ctx, cmd)
	if display == "" {
		display = cmd.String()
	}
	if err != nil {
		return res, fmt.Errorf("%s: start %q: %w", stage, display, err)
	}
	if res.ExitCode != 0 {
		return res, &domain.SubprocessError{Stage: stage, Cmd: display, Code: res.ExitCode, Output: res.Output}
	}
	return res, nil
}

// Shell wraps a command line for the platform shell, for user-declared
// commands that rely on shell syntax.
func Shell(line, dir string) domain.Command {
	if runtime.GOOS == "windows" {
		return domain.Command{Name: "cmd", Args: []string{"/C", line}, Dir: dir}
	}
	return domain.Command{Name: "sh", Args: []string{"-c", line}, Dir: dir}
}

func pick[T comparable](v, fallback T) T {
	var zero T
	if v == zero {
		return fallback
	}
	return v
}

var _ domain.Runner = (*Runner)(nil)
