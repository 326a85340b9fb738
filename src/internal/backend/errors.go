package backend

import (
	"errors"
	"fmt"
	"time"
)

// The error types below are the only failures that cross the Provider
// boundary. Lower layers map exec, parse, and network failures into one
// of these before returning.

// ErrBackendNotFound is returned when a backend executable cannot be
// located on the host.
type ErrBackendNotFound struct {
	Backend string
	Probed  []string
}

func (e *ErrBackendNotFound) Error() string {
	if len(e.Probed) == 0 {
		return fmt.Sprintf("%s executable not found", e.Backend)
	}
	return fmt.Sprintf("%s executable not found (probed %d locations)", e.Backend, len(e.Probed))
}

// IsBackendNotFound checks if an error indicates a missing backend tool.
func IsBackendNotFound(err error) bool {
	var target *ErrBackendNotFound
	return errors.As(err, &target)
}

// ErrCommandFailed is returned when a backend subprocess exits non-zero.
// Stderr carries the tail of the captured diagnostic output.
type ErrCommandFailed struct {
	Command  string
	ExitCode int
	Stderr   string
}

func (e *ErrCommandFailed) Error() string {
	if e.Stderr == "" {
		return fmt.Sprintf("%s exited with status %d", e.Command, e.ExitCode)
	}
	return fmt.Sprintf("%s exited with status %d: %s", e.Command, e.ExitCode, e.Stderr)
}

// IsCommandFailed checks if an error indicates a non-zero subprocess exit.
func IsCommandFailed(err error) bool {
	var target *ErrCommandFailed
	return errors.As(err, &target)
}

// ErrParseFailed is returned when tool output carried content but no
// line matched the expected format.
type ErrParseFailed struct {
	Source string
	Detail string
}

func (e *ErrParseFailed) Error() string {
	return fmt.Sprintf("cannot parse %s output: %s", e.Source, e.Detail)
}

// IsParseFailed checks if an error indicates unusable tool output.
func IsParseFailed(err error) bool {
	var target *ErrParseFailed
	return errors.As(err, &target)
}

// ErrInstallFailed is returned when an installation subprocess spawned
// successfully but did not complete.
type ErrInstallFailed struct {
	Version string
	Reason  string
}

func (e *ErrInstallFailed) Error() string {
	return fmt.Sprintf("failed to install %s: %s", e.Version, e.Reason)
}

// IsInstallFailed checks if an error indicates a failed installation.
func IsInstallFailed(err error) bool {
	var target *ErrInstallFailed
	return errors.As(err, &target)
}

// ErrNetwork is returned when an HTTP request cannot be completed.
type ErrNetwork struct {
	URL string
	Err error
}

func (e *ErrNetwork) Error() string {
	return fmt.Sprintf("request to %s failed: %v", e.URL, e.Err)
}

func (e *ErrNetwork) Unwrap() error {
	return e.Err
}

// IsNetworkError checks if an error indicates a network failure.
func IsNetworkError(err error) bool {
	var target *ErrNetwork
	return errors.As(err, &target)
}

// ErrIO is returned for filesystem and process-spawn failures.
type ErrIO struct {
	Op  string
	Err error
}

func (e *ErrIO) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *ErrIO) Unwrap() error {
	return e.Err
}

// IsIOError checks if an error indicates a filesystem or spawn failure.
func IsIOError(err error) bool {
	var target *ErrIO
	return errors.As(err, &target)
}

// ErrTimeout is returned when a subprocess exceeded its deadline and
// was killed.
type ErrTimeout struct {
	Command string
	After   time.Duration
}

func (e *ErrTimeout) Error() string {
	return fmt.Sprintf("%s timed out after %s", e.Command, e.After)
}

// IsTimeout checks if an error indicates a killed, overdue subprocess.
func IsTimeout(err error) bool {
	var target *ErrTimeout
	return errors.As(err, &target)
}

// ErrVersionNotFound is returned when an operation names a version the
// backend does not have.
type ErrVersionNotFound struct {
	Version string
	Backend string
}

func (e *ErrVersionNotFound) Error() string {
	return fmt.Sprintf("node %s is not installed via %s", e.Version, e.Backend)
}

// IsVersionNotFound checks if an error names an absent version.
func IsVersionNotFound(err error) bool {
	var target *ErrVersionNotFound
	return errors.As(err, &target)
}
