package cmd

import (
	"fmt"
	"os"
	"sort"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/matt/killport-cli/internal/output"
)

var (
	listQuiet  bool
	listFormat string
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls", "ps"},
	Short:   "List processes listening on TCP ports",
	Long: `List every process holding a TCP socket in the listening state,
with its command name, PID, owning user and port.

Results are deduplicated: a process bound to the same port through several
sockets appears once.`,
	Example: `  # List all TCP listeners
  killport list

  # Output only PIDs (useful for scripting)
  killport list -q

  # Output as JSON
  killport list --format json

  # Output as YAML
  killport list --format yaml`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		procs, err := inspector.List()
		if err != nil {
			return fmt.Errorf("failed to list listeners: %w", err)
		}

		sort.SliceStable(procs, func(i, j int) bool {
			return procs[i].Port < procs[j].Port
		})

		// Quiet mode: output only PIDs, one per line
		if listQuiet {
			for _, p := range procs {
				fmt.Println(p.PID)
			}
			return nil
		}

		format := listFormat
		if format == "" && appConfig != nil && output.Structured(appConfig.Format) {
			format = appConfig.Format
		}
		if output.Structured(format) {
			return output.Render(os.Stdout, format, procs)
		}

		if len(procs) == 0 {
			fmt.Println("No listening processes found.")
			return nil
		}

		// Column widths
		const (
			colCommand = 20
			colPID     = 8
			colUser    = 12
			colPort    = 7
		)

		header := color.New(color.Bold)
		header.Printf("%-*s  %-*s  %-*s  %-*s  %s\n",
			colCommand, "COMMAND", colPID, "PID", colUser, "USER", colPort, "PORT", "PROTO")

		for _, p := range procs {
			command := p.Command
			if len(command) > colCommand {
				command = command[:colCommand-3] + "..."
			}
			user := p.User
			if len(user) > colUser {
				user = user[:colUser-3] + "..."
			}

			fmt.Printf("%-*s  %-*d  %-*s  ", colCommand, command, colPID, p.PID, colUser, user)
			color.New(color.FgCyan).Printf("%-*d", colPort, p.Port)
			fmt.Printf("  %s\n", p.Protocol)
		}

		return nil
	},
}

func init() {
	listCmd.Flags().BoolVarP(&listQuiet, "quiet", "q", false, "Only display PIDs")
	listCmd.Flags().StringVar(&listFormat, "format", "", "Output format: json, yaml or table (default)")
}
