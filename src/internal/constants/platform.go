// Package constants defines common constants used across nvmux
package constants

// Operating systems
const (
	OSWindows = "windows"
	OSDarwin  = "darwin"
	OSLinux   = "linux"
)

// Shells
const (
	ShellBash = "bash"
)

// User responses
const (
	ResponseYes = "yes"
	ResponseY   = "y"
)

// File extensions
const (
	ExtExe = ".exe"
)
