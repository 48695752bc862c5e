package cmd

import (
	"fmt"
	"strconv"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/matt/killport-cli/internal/ports"
)

var (
	killForce   bool
	killSigkill bool
)

var killCmd = &cobra.Command{
	Use:   "kill <port> [port...]",
	Short: "Kill the processes listening on the given ports",
	Long: `Terminate every process listening on the given TCP ports.

By default processes receive SIGTERM so they can shut down cleanly; use
--sigkill (-9) for an immediate, uncatchable kill.

A confirmation prompt is shown before anything is terminated. Use --force
to skip it. Ports listed under protected_ports in the config file are
refused entirely unless --force is given.`,
	Example: `  # Free up port 3000 (asks first)
  killport kill 3000

  # Several ports at once
  killport kill 3000 8080 5432

  # Force-kill without confirmation
  killport kill 3000 -9 --force`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		wanted := make(map[int]bool, len(args))
		for _, arg := range args {
			port, err := strconv.Atoi(arg)
			if err != nil || port < 1 || port > 65535 {
				return fmt.Errorf("invalid port %q", arg)
			}
			wanted[port] = true
		}

		procs, err := inspector.List()
		if err != nil {
			return fmt.Errorf("failed to list listeners: %w", err)
		}

		var targets []ports.ListeningProcess
		for _, p := range procs {
			if wanted[p.Port] {
				targets = append(targets, p)
			}
		}

		if len(targets) == 0 {
			fmt.Println("No listening processes found on the requested port(s).")
			return nil
		}

		if !killForce {
			for _, t := range targets {
				if appConfig.IsProtected(t.Port) {
					return fmt.Errorf("port %d is protected by config; use --force to kill anyway", t.Port)
				}
			}
		}

		sig := appConfig.Signal()
		if killSigkill {
			sig = ports.SignalKill
		}

		if !killForce && appConfig.Confirm {
			fmt.Printf("This will send %s to %d process(es):\n", sig, len(targets))
			for _, t := range targets {
				fmt.Printf("  - %s (pid %d, port %d, user %s)\n", t.Command, t.PID, t.Port, t.User)
			}

			ok, err := confirm("Are you sure? [y/N] ")
			if err != nil {
				return err
			}
			if !ok {
				fmt.Println("Aborted.")
				return nil
			}
		}

		failed := 0
		for _, t := range targets {
			if err := inspector.Kill(t.PID, sig); err != nil {
				failed++
				color.New(color.FgRed).Printf("Failed to kill %s (pid %d): %v\n", t.Command, t.PID, err)
				continue
			}
			fmt.Printf("Sent %s to %s (pid %d, port %d)\n", sig, t.Command, t.PID, t.Port)
		}

		if failed > 0 {
			return fmt.Errorf("failed to kill %d of %d process(es)", failed, len(targets))
		}
		return nil
	},
}

func init() {
	killCmd.Flags().BoolVarP(&killForce, "force", "f", false, "Skip confirmation and protected-port checks")
	killCmd.Flags().BoolVarP(&killSigkill, "sigkill", "9", false, "Send SIGKILL instead of SIGTERM")
}
