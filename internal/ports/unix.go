package ports

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/matt/killport-cli/internal/executor"
	"github.com/matt/killport-cli/internal/process"
)

// UnixInspector serves Linux and macOS. Discovery walks a strategy chain
// (lsof, then ss) where a missing tool falls through to the next and a
// failing tool yields an empty result; metadata comes from ps plus lsof for
// the working directory, with a /proc readlink fallback on Linux.
type UnixInspector struct {
	run      runner
	ownerOf  func(pid int) string
	readlink func(path string) (string, error)
	sendKill func(pid int, force bool) error
}

// NewUnixInspector returns the inspector wired to the real host.
func NewUnixInspector() *UnixInspector {
	return &UnixInspector{
		run:      execRun,
		ownerOf:  procOwner,
		readlink: os.Readlink,
		sendKill: process.Kill,
	}
}

// execRun adapts executor.Run to the internal runner type.
func execRun(name string, args ...string) (runResult, error) {
	res, err := executor.Run(name, args...)
	return runResult{ExitCode: res.ExitCode, Stdout: res.Stdout, Stderr: res.Stderr}, err
}

// List tries lsof first and falls back to ss only when lsof is not
// installed. A tool that is present but exits non-zero means "no listeners"
// (lsof exits 1 when nothing matches), never "try the next tool".
func (u *UnixInspector) List() ([]ListeningProcess, error) {
	res, err := u.run("lsof", lsofArgs...)
	switch {
	case err == nil:
		if res.ExitCode != 0 {
			return []ListeningProcess{}, nil
		}
		return parseLsof(res.Stdout), nil
	case !errors.Is(err, executor.ErrNotFound):
		return nil, err
	}

	res, err = u.run("ss", ssArgs...)
	switch {
	case err == nil:
		if res.ExitCode != 0 {
			return []ListeningProcess{}, nil
		}
		return parseSS(res.Stdout, u.ownerOf), nil
	case errors.Is(err, executor.ErrNotFound):
		return nil, ErrNoTool
	default:
		return nil, err
	}
}

// Metadata queries ps for CPU, memory, start time and command line, then
// resolves the working directory independently. Any failure, including the
// process having exited, degrades to the zero Metadata.
func (u *UnixInspector) Metadata(pid int) Metadata {
	var md Metadata

	res, err := u.run("ps", psArgs(pid)...)
	if err == nil && res.ExitCode == 0 {
		md = parsePS(res.Stdout)
	}
	md.Cwd = u.cwd(pid)

	return md
}

// MetadataBatch satisfies the batch contract with one sequential query per
// PID; every requested PID gets an entry even when its query fails.
func (u *UnixInspector) MetadataBatch(pids []int) map[int]Metadata {
	out := make(map[int]Metadata, len(pids))
	for _, pid := range pids {
		out[pid] = u.Metadata(pid)
	}
	return out
}

// Kill delivers the signal directly. Permission and existence errors reach
// the caller untouched.
func (u *UnixInspector) Kill(pid int, sig Signal) error {
	return u.sendKill(pid, sig == SignalKill)
}

// cwd resolves the working directory of a PID, preferring lsof's cwd
// descriptor and falling back to the /proc symlink where one exists
// (Linux). Returns "" when neither source answers.
func (u *UnixInspector) cwd(pid int) string {
	res, err := u.run("lsof", "-a", "-p", strconv.Itoa(pid), "-d", "cwd", "-Fn")
	if err == nil && res.ExitCode == 0 {
		// -F output: one field per line, "n" prefixes the name field.
		for _, line := range strings.Split(res.Stdout, "\n") {
			if strings.HasPrefix(line, "n") && len(line) > 1 {
				return line[1:]
			}
		}
	}

	if link, err := u.readlink(fmt.Sprintf("/proc/%d/cwd", pid)); err == nil {
		return link
	}
	return ""
}
