package backend

import "github.com/nvmux/nvmux/src/internal/node"

// OutcomeKind tags a detection result.
type OutcomeKind int

const (
	OutcomeNotFound OutcomeKind = iota
	OutcomeFound
	OutcomeFoundInWSL
)

func (k OutcomeKind) String() string {
	switch k {
	case OutcomeFound:
		return "found"
	case OutcomeFoundInWSL:
		return "found in WSL"
	default:
		return "not found"
	}
}

// Outcome is the result of probing the host for a backend executable.
// Version is nil when the tool's version flag produced nothing usable;
// the path is still trusted. Probed lists the locations tried, filled
// only for NotFound.
type Outcome struct {
	Kind    OutcomeKind
	Path    string
	Version *node.Version
	Distro  string // WSL distribution name, FoundInWSL only
	Probed  []string
}

// Found builds an outcome for an executable located on the host.
func Found(path string, version *node.Version) Outcome {
	return Outcome{Kind: OutcomeFound, Path: path, Version: version}
}

// FoundInWSL builds an outcome for an executable located inside a WSL
// distribution.
func FoundInWSL(distro, path string) Outcome {
	return Outcome{Kind: OutcomeFoundInWSL, Path: path, Distro: distro}
}

// NotFound builds an outcome recording the locations that were probed.
func NotFound(probed []string) Outcome {
	return Outcome{Kind: OutcomeNotFound, Probed: probed}
}
