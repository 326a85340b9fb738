//go:build !windows

package proc

import "os/exec"

func setSpawnAttrs(c *exec.Cmd, showWindow bool) {
	// Console visibility only applies on Windows.
}
