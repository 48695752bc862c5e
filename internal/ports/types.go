// Package ports discovers processes listening on TCP ports, enriches them
// with runtime metadata, and terminates them. One Inspector implementation
// exists per platform family; ForOS picks the right one so callers never
// branch on the operating system themselves.
package ports

// UnknownUser is the placeholder when the owning user of a listener cannot
// be determined.
const UnknownUser = "unknown"

// ListeningProcess is one TCP listener as reported by a discovery tool.
// The command name may be truncated by the source tool (lsof caps it at
// 15 characters on some systems).
type ListeningProcess struct {
	Command  string `json:"command" yaml:"command"`
	PID      int    `json:"pid" yaml:"pid"`
	User     string `json:"user" yaml:"user"`
	Port     int    `json:"port" yaml:"port"`
	Protocol string `json:"protocol" yaml:"protocol"`
}

// Metadata is a point-in-time enrichment for a single PID. Every field is
// independently optional: a parse failure in one field never invalidates the
// others, and the zero value means "process not found or query failed".
type Metadata struct {
	// CPUPercent is nil when the source tool does not expose it or the
	// value failed to parse. nil is distinct from zero usage.
	CPUPercent *float64 `json:"cpu_percent,omitempty" yaml:"cpu_percent,omitempty"`

	// MemoryBytes is resident memory normalized to bytes, nil when absent.
	MemoryBytes *int64 `json:"memory_bytes,omitempty" yaml:"memory_bytes,omitempty"`

	// StartTime is RFC 3339 when the source timestamp parsed, otherwise the
	// raw source string verbatim (non-English locales render month names we
	// cannot parse; the raw text is still useful to a human). Empty means
	// absent.
	StartTime string `json:"start_time,omitempty" yaml:"start_time,omitempty"`

	// Path is the executable path plus arguments.
	Path string `json:"path,omitempty" yaml:"path,omitempty"`

	// Cwd is the working directory.
	Cwd string `json:"cwd,omitempty" yaml:"cwd,omitempty"`
}

// Signal selects the termination semantics for Kill. Exactly two values
// exist; there is deliberately no way to request arbitrary signals.
type Signal int

const (
	// SignalTerm asks the process to shut down cleanly (SIGTERM on Unix,
	// a plain taskkill on Windows).
	SignalTerm Signal = iota

	// SignalKill terminates without giving the process a chance to clean up.
	SignalKill
)

// String returns the conventional Unix name for the signal.
func (s Signal) String() string {
	switch s {
	case SignalKill:
		return "SIGKILL"
	default:
		return "SIGTERM"
	}
}

func floatPtr(v float64) *float64 { return &v }
func int64Ptr(v int64) *int64     { return &v }
