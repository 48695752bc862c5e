package cmd

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/matt/killport-cli/internal/config"
	"github.com/matt/killport-cli/internal/ports"
)

// appConfig holds the loaded configuration
var appConfig *config.Config

// inspector is the platform adapter, constructed once at startup. Commands
// never branch on the operating system themselves.
var inspector ports.Inspector

var rootCmd = &cobra.Command{
	Use:   "killport",
	Short: "killport - Find and kill processes listening on TCP ports",
	Long: `killport discovers processes listening on TCP ports and terminates
them on request.

It allows you to:
  - List every TCP listener with its PID, user and command
  - Inspect a listener's CPU, memory, start time and working directory
  - Kill whatever occupies a port, gently or forcefully
  - Pick victims interactively from a live list

Works on Linux and macOS (lsof with an ss fallback) and on Windows
(PowerShell).`,
	Example: `  # Show everything listening on TCP
  killport list

  # Free up port 3000
  killport kill 3000

  # Force-kill without confirmation
  killport kill 3000 -9 --force

  # Inspect the process behind a PID
  killport inspect 4321

  # Choose interactively
  killport pick`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		appConfig, err = config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		inspector = ports.ForOS(runtime.GOOS)
		return nil
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(killCmd)
	rootCmd.AddCommand(inspectCmd)
	rootCmd.AddCommand(pickCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(completionCmd)
}
