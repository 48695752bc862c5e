package cmd

import (
	"fmt"
	"sort"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matt/killport-cli/internal/ports"
)

var pickCmd = &cobra.Command{
	Use:   "pick",
	Short: "Interactively pick listeners to kill",
	Long: `Display the TCP listeners in an interactive list.

Use arrow keys or j/k to navigate. Press 't' to send SIGTERM to the
selected process, 'K' to send SIGKILL, 'i' to toggle the metadata pane,
'r' to refresh, and 'q' to quit.`,
	Example: `  # Pick a victim interactively
  killport pick`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		p := tea.NewProgram(initialPickModel(), tea.WithAltScreen())
		_, err := p.Run()
		return err
	},
}

// Styles for the picker
var (
	pickHeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("212"))

	pickSelectedStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("229"))

	pickDimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245"))

	pickErrStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	pickBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Padding(0, 1)
)

type listenersMsg struct {
	procs []ports.ListeningProcess
	err   error
}

type metadataMsg map[int]ports.Metadata

type killedMsg struct {
	proc ports.ListeningProcess
	sig  ports.Signal
	err  error
}

type pickModel struct {
	procs    []ports.ListeningProcess
	meta     map[int]ports.Metadata
	cursor   int
	showMeta bool
	status   string
	err      error
	width    int
	height   int
}

func initialPickModel() pickModel {
	return pickModel{}
}

func (m pickModel) Init() tea.Cmd {
	return refreshListenersCmd()
}

func refreshListenersCmd() tea.Cmd {
	return func() tea.Msg {
		procs, err := inspector.List()
		sort.SliceStable(procs, func(i, j int) bool {
			return procs[i].Port < procs[j].Port
		})
		return listenersMsg{procs: procs, err: err}
	}
}

func fetchMetadataCmd(procs []ports.ListeningProcess) tea.Cmd {
	return func() tea.Msg {
		pids := make([]int, 0, len(procs))
		for _, p := range procs {
			pids = append(pids, p.PID)
		}
		return metadataMsg(inspector.MetadataBatch(pids))
	}
}

func killCmdMsg(proc ports.ListeningProcess, sig ports.Signal) tea.Cmd {
	return func() tea.Msg {
		return killedMsg{proc: proc, sig: sig, err: inspector.Kill(proc.PID, sig)}
	}
}

func (m pickModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case listenersMsg:
		m.procs = msg.procs
		m.err = msg.err
		if m.cursor >= len(m.procs) {
			m.cursor = len(m.procs) - 1
		}
		if m.cursor < 0 {
			m.cursor = 0
		}
		if m.showMeta && len(m.procs) > 0 {
			return m, fetchMetadataCmd(m.procs)
		}
		return m, nil

	case metadataMsg:
		m.meta = msg
		return m, nil

	case killedMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("failed to kill %s (pid %d): %v", msg.proc.Command, msg.proc.PID, msg.err)
		} else {
			m.status = fmt.Sprintf("sent %s to %s (pid %d, port %d)", msg.sig, msg.proc.Command, msg.proc.PID, msg.proc.Port)
		}
		return m, refreshListenersCmd()

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.procs)-1 {
				m.cursor++
			}
		case "r":
			m.status = ""
			return m, refreshListenersCmd()
		case "i":
			m.showMeta = !m.showMeta
			if m.showMeta && len(m.procs) > 0 {
				return m, fetchMetadataCmd(m.procs)
			}
		case "t":
			if m.cursor < len(m.procs) {
				return m, killCmdMsg(m.procs[m.cursor], ports.SignalTerm)
			}
		case "K":
			if m.cursor < len(m.procs) {
				return m, killCmdMsg(m.procs[m.cursor], ports.SignalKill)
			}
		}
	}

	return m, nil
}

func (m pickModel) View() string {
	var b []byte

	b = append(b, pickHeaderStyle.Render("killport - TCP listeners")...)
	b = append(b, '\n', '\n')

	if m.err != nil {
		b = append(b, pickErrStyle.Render(fmt.Sprintf("error: %v", m.err))...)
		b = append(b, '\n')
		b = append(b, pickDimStyle.Render("r: retry  q: quit")...)
		return string(b)
	}

	if len(m.procs) == 0 {
		b = append(b, pickDimStyle.Render("No listening processes found.")...)
		b = append(b, '\n', '\n')
		b = append(b, pickDimStyle.Render("r: refresh  q: quit")...)
		return string(b)
	}

	for i, p := range m.procs {
		line := fmt.Sprintf("%-20s  %-8d  %-12s  %-7d  %s", truncate(p.Command, 20), p.PID, truncate(p.User, 12), p.Port, p.Protocol)
		if i == m.cursor {
			line = pickSelectedStyle.Render("> " + line)
		} else {
			line = "  " + line
		}
		b = append(b, line...)
		b = append(b, '\n')
	}

	if m.showMeta && m.cursor < len(m.procs) {
		b = append(b, '\n')
		b = append(b, pickBoxStyle.Render(m.metaPane(m.procs[m.cursor]))...)
		b = append(b, '\n')
	}

	if m.status != "" {
		b = append(b, '\n')
		b = append(b, pickDimStyle.Render(m.status)...)
		b = append(b, '\n')
	}

	b = append(b, '\n')
	b = append(b, pickDimStyle.Render("j/k: move  t: SIGTERM  K: SIGKILL  i: info  r: refresh  q: quit")...)
	return string(b)
}

func (m pickModel) metaPane(p ports.ListeningProcess) string {
	md, ok := m.meta[p.PID]
	if !ok {
		return "loading metadata..."
	}

	out := fmt.Sprintf("pid %d", p.PID)
	if md.Path != "" {
		out += "\ncmd:     " + md.Path
	}
	if md.Cwd != "" {
		out += "\ncwd:     " + md.Cwd
	}
	if md.StartTime != "" {
		out += "\nstarted: " + md.StartTime
	}
	if md.CPUPercent != nil {
		out += fmt.Sprintf("\ncpu:     %.1f%%", *md.CPUPercent)
	}
	if md.MemoryBytes != nil {
		out += "\nmem:     " + formatBytes(*md.MemoryBytes)
	}
	return out
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-3] + "..."
}
