package cmd

import (
	"fmt"
	"os"
	"strconv"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/matt/killport-cli/internal/output"
	"github.com/matt/killport-cli/internal/ports"
)

var inspectFormat string

// inspectResult is the full picture for one PID: its listening sockets and
// its runtime metadata.
type inspectResult struct {
	PID       int                      `json:"pid" yaml:"pid"`
	Listeners []ports.ListeningProcess `json:"listeners" yaml:"listeners"`
	Metadata  ports.Metadata           `json:"metadata" yaml:"metadata"`
}

var inspectCmd = &cobra.Command{
	Use:     "inspect <pid>",
	Aliases: []string{"view"},
	Short:   "Display detailed information about a process",
	Long: `Display runtime metadata for a process: CPU usage, resident memory,
start time, command line and working directory, plus any TCP ports it is
listening on.

Fields the host cannot answer are simply omitted; a PID that no longer
exists yields an empty record, not an error.`,
	Example: `  # Inspect by PID
  killport inspect 4321

  # Output as JSON
  killport inspect 4321 --format json`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		pid, err := strconv.Atoi(args[0])
		if err != nil || pid <= 0 {
			return fmt.Errorf("invalid pid %q", args[0])
		}

		md := inspector.Metadata(pid)

		var listeners []ports.ListeningProcess
		if procs, err := inspector.List(); err == nil {
			for _, p := range procs {
				if p.PID == pid {
					listeners = append(listeners, p)
				}
			}
		}

		format := inspectFormat
		if format == "" && appConfig != nil && output.Structured(appConfig.Format) {
			format = appConfig.Format
		}
		if output.Structured(format) {
			return output.Render(os.Stdout, format, inspectResult{PID: pid, Listeners: listeners, Metadata: md})
		}

		bold := color.New(color.Bold)
		bold.Println("Process Details")
		fmt.Println("─────────────────────────────────")
		fmt.Printf("PID:          %d\n", pid)
		if md.Path != "" {
			fmt.Printf("Command:      %s\n", md.Path)
		}
		if md.Cwd != "" {
			fmt.Printf("Working dir:  %s\n", md.Cwd)
		}
		if md.StartTime != "" {
			fmt.Printf("Started:      %s\n", md.StartTime)
		}
		if md.CPUPercent != nil {
			fmt.Printf("CPU:          %.1f%%\n", *md.CPUPercent)
		}
		if md.MemoryBytes != nil {
			fmt.Printf("Memory:       %s\n", formatBytes(*md.MemoryBytes))
		}

		if len(listeners) > 0 {
			fmt.Println()
			bold.Println("Listening Ports")
			for _, l := range listeners {
				fmt.Printf("  %s %d (%s, user %s)\n", l.Protocol, l.Port, l.Command, l.User)
			}
		}

		return nil
	},
}

// formatBytes renders a byte count with a binary unit suffix.
func formatBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}

func init() {
	inspectCmd.Flags().StringVar(&inspectFormat, "format", "", "Output format: json, yaml or text (default)")
}
