package ports

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/matt/killport-cli/internal/process"
)

// WindowsInspector queries the network-connection and process tables
// through PowerShell, which emits a single JSON document per call. There is
// no fallback tool on this platform: if PowerShell is missing or the query
// shell exits non-zero, discovery fails outright.
type WindowsInspector struct {
	run        runner
	nativeKill func(pid int, force bool) error
}

// NewWindowsInspector returns the inspector wired to the real host.
func NewWindowsInspector() *WindowsInspector {
	return &WindowsInspector{
		run:        execRun,
		nativeKill: process.Kill,
	}
}

// listScript joins each listening TCP connection to its owning process and
// user in one shell invocation.
const listScript = `$ErrorActionPreference='SilentlyContinue'
Get-NetTCPConnection -State Listen | ForEach-Object {
  $p = Get-Process -Id $_.OwningProcess
  $o = (Get-CimInstance Win32_Process -Filter "ProcessId=$($_.OwningProcess)").GetOwner()
  [PSCustomObject]@{ Port = [int]$_.LocalPort; PID = [int]$_.OwningProcess; Name = $p.ProcessName; User = $o.User }
} | ConvertTo-Json`

type winConnRow struct {
	Port int    `json:"Port"`
	PID  int    `json:"PID"`
	Name string `json:"Name"`
	User string `json:"User"`
}

// List runs the connection-table query and parses its JSON output.
func (w *WindowsInspector) List() ([]ListeningProcess, error) {
	res, err := w.run("powershell", "-NoProfile", "-Command", listScript)
	if err != nil {
		return nil, err
	}
	if res.ExitCode != 0 {
		return nil, fmt.Errorf("connection query failed (exit %d): %s", res.ExitCode, strings.TrimSpace(res.Stderr))
	}

	var rows []winConnRow
	if err := decodeJSONList(res.Stdout, &rows); err != nil {
		// The whole top-level structure is unparsable; nothing to salvage.
		return []ListeningProcess{}, nil
	}

	var procs []ListeningProcess
	for _, row := range rows {
		if row.PID <= 0 || row.Port < 1 || row.Port > 65535 {
			continue
		}
		user := row.User
		if user == "" {
			user = UnknownUser
		}
		procs = append(procs, ListeningProcess{
			Command:  row.Name,
			PID:      row.PID,
			User:     user,
			Port:     row.Port,
			Protocol: "TCP",
		})
	}
	return dedupe(procs), nil
}

// metaScript joins Get-Process and Win32_Process for one PID. Fields the
// host cannot answer come back null and degrade to absent.
const metaScript = `$ErrorActionPreference='SilentlyContinue'
$p = Get-Process -Id %d
$w = Get-CimInstance Win32_Process -Filter 'ProcessId=%d'
[PSCustomObject]@{
  CPU = $p.CPU
  WorkingSet = $p.WorkingSet64
  StartTime = if ($p.StartTime) { $p.StartTime.ToString('o') } else { $null }
  CommandLine = if ($w.CommandLine) { $w.CommandLine } else { $p.Path }
} | ConvertTo-Json`

type winMetaRow struct {
	CPU         *float64 `json:"CPU"`
	WorkingSet  *int64   `json:"WorkingSet"`
	StartTime   string   `json:"StartTime"`
	CommandLine string   `json:"CommandLine"`
}

// Metadata runs one joined query for the PID. Every failure degrades to the
// zero Metadata.
func (w *WindowsInspector) Metadata(pid int) Metadata {
	res, err := w.run("powershell", "-NoProfile", "-Command", fmt.Sprintf(metaScript, pid, pid))
	if err != nil || res.ExitCode != 0 {
		return Metadata{}
	}

	var rows []winMetaRow
	if err := decodeJSONList(res.Stdout, &rows); err != nil || len(rows) == 0 {
		return Metadata{}
	}
	row := rows[0]

	return Metadata{
		CPUPercent:  row.CPU,
		MemoryBytes: row.WorkingSet,
		StartTime:   normalizeWinTime(row.StartTime),
		Path:        row.CommandLine,
	}
}

type winProcRow struct {
	ProcessID      int    `json:"ProcessId"`
	CommandLine    string `json:"CommandLine"`
	ExecutablePath string `json:"ExecutablePath"`
	WorkingSetSize *int64 `json:"WorkingSetSize"`
	CreationDate   string `json:"CreationDate"`
}

// MetadataBatch fetches the process table for all requested PIDs in a
// single query instead of one shell per PID. The result map is
// pre-populated with zero records so PIDs that vanished mid-query, or for
// which the query fails entirely, still have well-defined entries.
func (w *WindowsInspector) MetadataBatch(pids []int) map[int]Metadata {
	out := make(map[int]Metadata, len(pids))
	for _, pid := range pids {
		out[pid] = Metadata{}
	}
	if len(pids) == 0 {
		return out
	}

	clauses := make([]string, len(pids))
	for i, pid := range pids {
		clauses[i] = "ProcessId=" + strconv.Itoa(pid)
	}
	script := fmt.Sprintf(
		`Get-CimInstance Win32_Process -Filter '%s' | Select-Object ProcessId,CommandLine,ExecutablePath,WorkingSetSize,CreationDate | ConvertTo-Json`,
		strings.Join(clauses, " OR "))

	res, err := w.run("powershell", "-NoProfile", "-Command", script)
	if err != nil || res.ExitCode != 0 {
		return out
	}

	var rows []winProcRow
	if err := decodeJSONList(res.Stdout, &rows); err != nil {
		return out
	}

	for _, row := range rows {
		if _, requested := out[row.ProcessID]; !requested {
			continue
		}
		path := row.CommandLine
		if path == "" {
			path = row.ExecutablePath
		}
		out[row.ProcessID] = Metadata{
			MemoryBytes: row.WorkingSetSize,
			StartTime:   normalizeWinTime(row.CreationDate),
			Path:        path,
		}
	}
	return out
}

// Kill attempts native termination first and falls back to taskkill, using
// /F only for forced kills. When both fail the native error wins: it names
// the real obstacle (access denied, no such process), while taskkill's
// output rarely does.
func (w *WindowsInspector) Kill(pid int, sig Signal) error {
	err := w.nativeKill(pid, sig == SignalKill)
	if err == nil {
		return nil
	}

	args := []string{"/PID", strconv.Itoa(pid)}
	if sig == SignalKill {
		args = append([]string{"/F"}, args...)
	}
	if res, tkErr := w.run("taskkill", args...); tkErr == nil && res.ExitCode == 0 {
		return nil
	}

	return err
}

// decodeJSONList unmarshals ConvertTo-Json output into a slice, tolerating
// the shapes PowerShell actually produces: an array for many results, a
// bare object for exactly one, and empty or "null" output for none.
func decodeJSONList(out string, v interface{}) error {
	trimmed := strings.TrimSpace(out)
	if trimmed == "" || trimmed == "null" {
		return nil
	}
	if strings.HasPrefix(trimmed, "{") {
		trimmed = "[" + trimmed + "]"
	}
	return json.Unmarshal([]byte(trimmed), v)
}

// cimDate matches the WMI date encoding older PowerShell emits through
// ConvertTo-Json: "/Date(1719255185000)/".
var cimDate = regexp.MustCompile(`/Date\((\d+)\)/`)

// normalizeWinTime converts a PowerShell timestamp to RFC 3339. Both the
// ISO round-trip format ("o") and the legacy /Date(ms)/ encoding are
// handled; anything else is preserved verbatim, matching the Unix policy
// for unparsable start times.
func normalizeWinTime(s string) string {
	if s == "" {
		return ""
	}
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t.Format(time.RFC3339)
	}
	if m := cimDate.FindStringSubmatch(s); m != nil {
		ms, err := strconv.ParseInt(m[1], 10, 64)
		if err == nil {
			return time.UnixMilli(ms).UTC().Format(time.RFC3339)
		}
	}
	return s
}
