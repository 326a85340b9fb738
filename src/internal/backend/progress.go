package backend

// InstallPhase is one step of a long-running installation.
type InstallPhase int

const (
	PhaseIdle InstallPhase = iota
	PhaseResolving
	PhaseDownloading
	PhaseExtracting
	PhaseLinking
	PhaseDone
	PhaseFailed
)

func (p InstallPhase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseResolving:
		return "resolving"
	case PhaseDownloading:
		return "downloading"
	case PhaseExtracting:
		return "extracting"
	case PhaseLinking:
		return "linking"
	case PhaseDone:
		return "done"
	case PhaseFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Terminal reports whether no further progress follows this phase.
func (p InstallPhase) Terminal() bool {
	return p == PhaseDone || p == PhaseFailed
}

// InstallProgress is a transient snapshot of a running installation.
// Each value supersedes the previous one; values arrive in the order
// the subprocess emitted them.
type InstallProgress struct {
	Phase   InstallPhase
	Percent float64 // 0-100, meaningful while downloading
	Message string  // failure reason, or detail text for the phase
}

// Resolving, Downloading, Extracting, Linking, Done, and Failed build
// progress values for the corresponding phase.

func Resolving(message string) InstallProgress {
	return InstallProgress{Phase: PhaseResolving, Message: message}
}

func Downloading(percent float64) InstallProgress {
	return InstallProgress{Phase: PhaseDownloading, Percent: percent}
}

func Extracting() InstallProgress {
	return InstallProgress{Phase: PhaseExtracting}
}

func Linking() InstallProgress {
	return InstallProgress{Phase: PhaseLinking}
}

func Done() InstallProgress {
	return InstallProgress{Phase: PhaseDone, Percent: 100}
}

func Failed(reason string) InstallProgress {
	return InstallProgress{Phase: PhaseFailed, Message: reason}
}
