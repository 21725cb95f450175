// Package tui renders node status output, including the live watch view.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// watchInterval is the refresh period of the live status view.
const watchInterval = 5 * time.Second

// StatusSnapshot is one observation of the node for rendering.
type StatusSnapshot struct {
	Workspace      string
	Installed      bool
	Offset         uint64
	RPCURL         string
	Cluster        string
	ContainerState string
	Active         bool
	ActiveKnown    bool // false when the on-chain probe failed or was skipped
	Err            error
}

// SnapshotFunc produces a fresh status snapshot.
type SnapshotFunc func(ctx context.Context) StatusSnapshot

// RenderStatus renders a snapshot once with styles.
func RenderStatus(s StatusSnapshot) string {
	var b strings.Builder

	title := "arcnode status"
	b.WriteString("  " + titleStyle.Render(title) + "\n")
	b.WriteString("  " + dimStyle.Render(s.Workspace) + "\n")

	b.WriteString(sectionStyle.Render("  Node") + "\n")
	writeRow(&b, "Installed", s.Installed, "")
	if s.Installed {
		writeRow(&b, "Container", s.ContainerState == "running", s.ContainerState)
		if s.ActiveKnown {
			writeRow(&b, "Active on-chain", s.Active, "")
		} else {
			b.WriteString(fmt.Sprintf("  %s  %s\n", pending, dimStyle.Render("Active on-chain (unknown)")))
		}
	}

	b.WriteString(sectionStyle.Render("  Environment") + "\n")
	b.WriteString(fmt.Sprintf("  %s %s\n", dimStyle.Render("Offset: "), formatOffset(s.Offset)))
	b.WriteString(fmt.Sprintf("  %s %s\n", dimStyle.Render("RPC:    "), s.RPCURL))
	b.WriteString(fmt.Sprintf("  %s %s\n", dimStyle.Render("Cluster:"), s.Cluster))

	if s.Err != nil {
		b.WriteString("\n  " + failedStyle.Render(fmt.Sprintf("error: %v", s.Err)) + "\n")
	}

	return b.String()
}

func writeRow(b *strings.Builder, name string, ok bool, extra string) {
	mark := readyStyle.Render(checkMark)
	if !ok {
		mark = failedStyle.Render(crossMark)
	}
	if extra != "" {
		fmt.Fprintf(b, "  %s  %-16s %s\n", mark, name, dimStyle.Render(extra))
		return
	}
	fmt.Fprintf(b, "  %s  %s\n", mark, name)
}

func formatOffset(offset uint64) string {
	if offset == 0 {
		return dimStyle.Render("not generated")
	}
	return fmt.Sprintf("%d", offset)
}

// snapshotMsg carries a fresh snapshot into the model.
type snapshotMsg StatusSnapshot

// tickMsg triggers the next refresh.
type tickMsg time.Time

// watchModel is the bubbletea model of the live status view.
type watchModel struct {
	ctx      context.Context
	fetch    SnapshotFunc
	snapshot StatusSnapshot
	loaded   bool
}

// RunStatusWatch runs the live status view until the operator quits.
func RunStatusWatch(ctx context.Context, fetch SnapshotFunc) error {
	model := watchModel{ctx: ctx, fetch: fetch}
	_, err := tea.NewProgram(model, tea.WithContext(ctx)).Run()
	return err
}

func (m watchModel) Init() tea.Cmd {
	return m.fetchCmd()
}

func (m watchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case snapshotMsg:
		m.snapshot = StatusSnapshot(msg)
		m.loaded = true
		return m, tea.Tick(watchInterval, func(t time.Time) tea.Msg { return tickMsg(t) })
	case tickMsg:
		return m, m.fetchCmd()
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m watchModel) View() string {
	if !m.loaded {
		return dimStyle.Render("  gathering node status...")
	}
	return RenderStatus(m.snapshot) + footerStyle.Render("  q to quit, refreshes every 5s") + "\n"
}

func (m watchModel) fetchCmd() tea.Cmd {
	return func() tea.Msg {
		return snapshotMsg(m.fetch(m.ctx))
	}
}
