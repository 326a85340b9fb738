package backend

import "time"

// ShellInitOptions carries caller-provided shell lines that a sourced
// backend needs before it can run. The content is spliced into the
// invocation verbatim, never interpreted.
type ShellInitOptions struct {
	Prelude string
}

// Environment is one detected installation context for a backend
// variant. It is owned by the calling session; providers read it but
// never mutate it.
type Environment struct {
	Kind      Kind
	ExecPath  string // absolute path to the tool, or nvm.sh for sourced backends
	ShellInit ShellInitOptions
	WSLDistro string // set when the tool lives inside a WSL distribution

	// ShowWindow leaves backend console windows visible on Windows.
	ShowWindow bool

	// CmdTimeout bounds ordinary commands; zero means the runner's
	// default. InstallTimeout bounds installs, which download full
	// Node distributions.
	CmdTimeout     time.Duration
	InstallTimeout time.Duration
}

// FromOutcome builds an Environment from a successful detection.
func FromOutcome(kind Kind, out Outcome) Environment {
	return Environment{
		Kind:      kind,
		ExecPath:  out.Path,
		WSLDistro: out.Distro,
	}
}
