package ports

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
)

// ErrNoTool is returned by List when no supported discovery tool exists on
// the host. It is distinct from "no listeners": the host could not be
// queried at all.
var ErrNoTool = errors.New("no supported socket listing tool found (need lsof or ss)")

// Inspector is the uniform platform contract: discover TCP listeners, fetch
// metadata for one or many PIDs, and deliver a termination signal. All
// operations are synchronous and independent; nothing is cached between
// calls.
type Inspector interface {
	// List returns the deduplicated set of TCP listeners, or ErrNoTool when
	// the host has no usable discovery tool. A host with no listeners
	// returns an empty slice and nil error.
	List() ([]ListeningProcess, error)

	// Metadata returns enrichment for one PID. Failures of any kind degrade
	// to the zero Metadata; this never returns an error.
	Metadata(pid int) Metadata

	// MetadataBatch returns a map with exactly one entry per requested PID.
	// PIDs that vanished mid-query or failed to resolve map to the zero
	// Metadata rather than being dropped.
	MetadataBatch(pids []int) map[int]Metadata

	// Kill delivers sig to pid. Failures (permission denied, no such
	// process) are returned verbatim; there is no retry and no confirmation
	// that the process actually exited.
	Kill(pid int, sig Signal) error
}

// ForOS maps a GOOS value to the Inspector for that platform. Pass
// runtime.GOOS; the parameter exists so tests can exercise both branches
// anywhere.
func ForOS(goos string) Inspector {
	if goos == "windows" {
		return NewWindowsInspector()
	}
	return NewUnixInspector()
}

// runner abstracts command execution so adapters can be tested against
// canned output. The production implementation is executor.Run.
type runner func(name string, args ...string) (runResult, error)

// runResult mirrors executor.Result without importing it into every parser
// signature.
type runResult struct {
	ExitCode int
	Stdout   string
	Stderr   string
}

// trailingPort matches the ":digits" suffix of a local-address field, which
// is the only part of the address all tool formats agree on ("*:8080",
// "127.0.0.1:8080", "[::1]:8080").
var trailingPort = regexp.MustCompile(`:(\d+)$`)

// parsePort extracts the numeric port from a local-address field. Addresses
// without a numeric port (wildcard "*:*") yield ok=false and are skipped by
// callers, not treated as errors.
func parsePort(addr string) (int, bool) {
	m := trailingPort.FindStringSubmatch(addr)
	if m == nil {
		return 0, false
	}
	port, err := strconv.Atoi(m[1])
	if err != nil || port < 1 || port > 65535 {
		return 0, false
	}
	return port, true
}

// dedupe collapses listeners sharing a (pid, port) pair, keeping first-seen
// order. A process bound to a port through several descriptors shows up once
// per descriptor in lsof output but must appear exactly once to callers.
func dedupe(procs []ListeningProcess) []ListeningProcess {
	seen := make(map[string]bool, len(procs))
	out := procs[:0]
	for _, p := range procs {
		key := fmt.Sprintf("%d:%d", p.PID, p.Port)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, p)
	}
	return out
}
