// Package backend defines the capability interface that normalizes the
// supported Node version managers into one contract, along with the
// error kinds, progress values, and detection outcomes shared by every
// implementation.
package backend

import (
	"context"
	"fmt"

	"github.com/nvmux/nvmux/src/internal/node"
)

// Kind identifies a backend variant.
type Kind string

const (
	KindFnm Kind = "fnm"
	KindNvm Kind = "nvm"
)

// ParseKind validates a backend name from settings or a flag.
func ParseKind(s string) (Kind, error) {
	switch Kind(s) {
	case KindFnm, KindNvm:
		return Kind(s), nil
	}
	return "", fmt.Errorf("unknown backend %q (expected %q or %q)", s, KindFnm, KindNvm)
}

// Info is the static description of a backend variant. Constructed from
// a fixed table, never derived from probing.
type Info struct {
	Kind        Kind
	DisplayName string
	Executable  string // bare executable name, no path
	Repo        string // GitHub "owner/name" slug for update checks
}

// Capabilities describes what a backend variant can do. Static per
// variant; callers branch on these instead of on Kind.
type Capabilities struct {
	ShellInit      bool // needs a shell init prelude to run
	SelfUpdate     bool // tool publishes releases we can upgrade to
	ArchSelection  bool // tool can switch the architecture of a version
	InstallPercent bool // install output carries download percentages
}

// Update describes a newer release of the backend tool itself.
type Update struct {
	Latest node.Version
	URL    string
}

// Provider is the uniform contract over one detected backend
// installation. Implementations wrap exactly one external tool; all
// blocking operations honor ctx cancellation by killing the subprocess.
type Provider interface {
	// Info returns the static description of the variant.
	Info() Info

	// Capabilities returns the variant's static capability set.
	Capabilities() Capabilities

	// ListInstalled returns the installed versions, default first
	// marked. Nothing installed is an empty slice, not an error.
	ListInstalled(ctx context.Context) ([]node.Installed, error)

	// ListRemote returns the versions available for installation, as
	// reported by the tool's own remote listing.
	ListRemote(ctx context.Context) ([]node.Remote, error)

	// Install installs a version, streaming progress snapshots to
	// onProgress as the subprocess reports them. onProgress may be nil.
	// Returns the installed version on success.
	Install(ctx context.Context, version node.Version, onProgress func(InstallProgress)) (*node.Installed, error)

	// SetDefault makes an installed version the default. An absent
	// version fails with ErrVersionNotFound.
	SetDefault(ctx context.Context, version node.Version) error

	// Uninstall removes an installed version. An absent version fails
	// with ErrVersionNotFound.
	Uninstall(ctx context.Context, version node.Version) error

	// CheckUpdate reports a newer release of the backend tool itself,
	// or nil when current is up to date.
	CheckUpdate(ctx context.Context, current node.Version) (*Update, error)
}
