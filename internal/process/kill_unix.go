//go:build !windows

package process

import (
	"syscall"
)

// Kill sends SIGTERM to a process, or SIGKILL when force is set. Errors
// (permission denied, no such process) are returned untouched; the caller
// decides how to report them. There is no confirmation that the process
// actually exited.
func Kill(pid int, force bool) error {
	sig := syscall.SIGTERM
	if force {
		sig = syscall.SIGKILL
	}
	return syscall.Kill(pid, sig)
}
