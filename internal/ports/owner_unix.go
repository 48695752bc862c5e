//go:build !windows

package ports

import (
	"fmt"
	"os"
	"os/user"
	"strconv"
	"syscall"
)

// procOwner resolves the user owning a PID from the ownership of its /proc
// directory. Returns "unknown" whenever the entry is missing or the UID has
// no passwd mapping.
func procOwner(pid int) string {
	info, err := os.Stat(fmt.Sprintf("/proc/%d", pid))
	if err != nil {
		return UnknownUser
	}
	stat, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return UnknownUser
	}
	u, err := user.LookupId(strconv.FormatUint(uint64(stat.Uid), 10))
	if err != nil {
		return UnknownUser
	}
	return u.Username
}
