//go:build windows

package process

import (
	"golang.org/x/sys/windows"
)

// Kill terminates a process on Windows via TerminateProcess. Unix signals
// do not exist here, so force changes nothing at this layer; the ports
// inspector layers a taskkill fallback on top for processes this call
// cannot reach.
func Kill(pid int, force bool) error {
	_ = force
	h, err := windows.OpenProcess(windows.PROCESS_TERMINATE, false, uint32(pid))
	if err != nil {
		return err
	}
	defer windows.CloseHandle(h)
	return windows.TerminateProcess(h, 1)
}
