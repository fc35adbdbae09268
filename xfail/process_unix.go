//go:build unix

package xfail

import (
	"os/exec"
	"syscall"
)

// setProcessGroup configures the command to run in its own process group so
// a terminal interrupt is not delivered to the child twice.
func setProcessGroup(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
}
