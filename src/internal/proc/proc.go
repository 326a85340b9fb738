// Package proc runs backend tool subprocesses with timeout and
// cancellation discipline. Arguments are passed as a slice and never
// routed through a shell, so caller input cannot be reinterpreted.
package proc

import (
	"bytes"
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/nvmux/nvmux/src/internal/backend"
)

// DefaultTimeout bounds a command that carries no explicit timeout.
const DefaultTimeout = 30 * time.Second

// waitDelay bounds how long Wait blocks on output pipes after the
// child dies. A grandchild inheriting stdout must not hold Run hostage.
const waitDelay = 5 * time.Second

// stderrExcerptLimit bounds the diagnostic text carried on errors.
const stderrExcerptLimit = 2048

// Command describes one subprocess invocation.
type Command struct {
	Path string
	Args []string
	Env  []string // extra variables, appended to the parent environment
	Dir  string

	// Timeout overrides DefaultTimeout when positive.
	Timeout time.Duration

	// ShowWindow leaves the console window visible on Windows. The
	// zero value keeps spawned tools from flashing a console.
	ShowWindow bool
}

func (c Command) display() string {
	name := filepath.Base(c.Path)
	if len(c.Args) == 0 {
		return name
	}
	return name + " " + strings.Join(c.Args, " ")
}

func (c Command) timeout() time.Duration {
	if c.Timeout > 0 {
		return c.Timeout
	}
	return DefaultTimeout
}

// Result carries the captured output of a finished subprocess.
type Result struct {
	Stdout string
	Stderr string
}

// Run executes the command to completion and captures stdout and
// stderr separately. The child is killed when the timeout or ctx
// expires. Every failure is mapped to a backend error kind: spawn
// problems to ErrIO, deadline kills to ErrTimeout, non-zero exits to
// ErrCommandFailed carrying a stderr excerpt.
func Run(ctx context.Context, cmd Command) (Result, error) {
	runCtx, cancel := context.WithTimeout(ctx, cmd.timeout())
	defer cancel()

	c := exec.CommandContext(runCtx, cmd.Path, cmd.Args...)
	c.Dir = cmd.Dir
	c.Env = environ(cmd.Env)
	c.WaitDelay = waitDelay
	setSpawnAttrs(c, cmd.ShowWindow)

	var stdout, stderr bytes.Buffer
	c.Stdout = &stdout
	c.Stderr = &stderr

	err := c.Run()
	res := Result{Stdout: stdout.String(), Stderr: stderr.String()}
	if err == nil {
		return res, nil
	}
	return res, mapRunError(err, runCtx, cmd, res.Stderr, res.Stdout)
}

// mapRunError folds exec and context failures into the backend error
// taxonomy. The deadline check runs first: a killed child surfaces as
// an *exec.ExitError too, and the timeout is the truer cause.
func mapRunError(err error, runCtx context.Context, cmd Command, stderr, stdout string) error {
	switch {
	case errors.Is(runCtx.Err(), context.DeadlineExceeded):
		return &backend.ErrTimeout{Command: cmd.display(), After: cmd.timeout()}
	case errors.Is(runCtx.Err(), context.Canceled):
		return &backend.ErrIO{Op: "run " + cmd.display(), Err: context.Canceled}
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		diag := excerpt(stderr)
		if diag == "" {
			diag = excerpt(stdout)
		}
		return &backend.ErrCommandFailed{
			Command:  cmd.display(),
			ExitCode: exitErr.ExitCode(),
			Stderr:   diag,
		}
	}

	return &backend.ErrIO{Op: "spawn " + cmd.display(), Err: err}
}

func environ(extra []string) []string {
	if len(extra) == 0 {
		return nil // inherit
	}
	return append(os.Environ(), extra...)
}

// excerpt trims diagnostics to the last stderrExcerptLimit bytes,
// resuming at a line boundary when one exists.
func excerpt(s string) string {
	s = strings.TrimSpace(s)
	if len(s) <= stderrExcerptLimit {
		return s
	}
	cut := s[len(s)-stderrExcerptLimit:]
	if i := strings.IndexByte(cut, '\n'); i >= 0 && i+1 < len(cut) {
		cut = cut[i+1:]
	}
	return cut
}
