// Package app holds the bubbletea model for the live recording screen.
package app

import (
	"strings"

	"github.com/wahlandcase/attuned.standup/internal/transcript"
	"github.com/wahlandcase/attuned.standup/internal/ui"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Message types for async operations

type segmentMsg transcript.Segment

type sessionClosedMsg struct{}

// listenForSegments creates a command that listens for recognized speech
func listenForSegments(session *transcript.StreamSession) tea.Cmd {
	return func() tea.Msg {
		segment, ok := <-session.Segments()
		if !ok {
			return sessionClosedMsg{}
		}
		return segmentMsg(segment)
	}
}

// RecordModel displays the live transcript while a streaming session
// is running and stops it on ctrl+d.
type RecordModel struct {
	session  *transcript.StreamSession
	lines    []string
	partial  string
	stopping bool
	width    int
	height   int
}

func NewRecordModel(session *transcript.StreamSession) RecordModel {
	return RecordModel{session: session, width: 80}
}

func (m RecordModel) Init() tea.Cmd {
	return listenForSegments(m.session)
}

func (m RecordModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+d", "ctrl+c", "esc":
			if !m.stopping {
				m.stopping = true
				m.session.Stop()
			}
			// Keep draining; the in-flight listen command delivers the
			// remaining segments and then sessionClosedMsg.
			return m, nil
		}
		return m, nil

	case segmentMsg:
		if msg.Partial {
			m.partial = msg.Text
		} else {
			m.lines = append(m.lines, msg.Text)
			m.partial = ""
		}
		return m, listenForSegments(m.session)

	case sessionClosedMsg:
		return m, tea.Quit
	}

	return m, nil
}

func (m RecordModel) View() string {
	header := lipgloss.NewStyle().
		Foreground(ui.ColorCyan).
		Bold(true).
		Render("🎤 録音中")
	if m.stopping {
		header = lipgloss.NewStyle().
			Foreground(ui.ColorYellow).
			Bold(true).
			Render("⏳ 文字起こしを終了しています...")
	}

	var body strings.Builder
	for _, line := range m.lines {
		body.WriteString(line + " ")
	}
	if m.partial != "" {
		body.WriteString(lipgloss.NewStyle().Foreground(ui.ColorDarkGray).Render(m.partial))
	}

	hint := lipgloss.NewStyle().
		Foreground(ui.ColorDarkGray).
		Render("ctrl+d で録音を終了")

	return strings.Join([]string{
		header,
		ui.Divider(m.width),
		lipgloss.NewStyle().Width(m.width).Render(body.String()),
		ui.Divider(m.width),
		hint,
	}, "\n")
}
