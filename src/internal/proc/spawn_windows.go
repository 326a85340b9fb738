//go:build windows

package proc

import (
	"os/exec"
	"syscall"

	"golang.org/x/sys/windows"
)

// setSpawnAttrs keeps backend tools from flashing a console window
// when the application itself runs without one.
func setSpawnAttrs(c *exec.Cmd, showWindow bool) {
	if showWindow {
		return
	}
	c.SysProcAttr = &syscall.SysProcAttr{
		HideWindow:    true,
		CreationFlags: windows.CREATE_NO_WINDOW,
	}
}
