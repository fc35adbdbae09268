//go:build !unix

package xfail

import "os/exec"

// setProcessGroup is a no-op on platforms without Unix process groups.
func setProcessGroup(cmd *exec.Cmd) {}
