package ui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"meater/internal/display"
)

// StateSource is the recipient side of the display channel.
type StateSource interface {
	Latest() display.State
	Next(ctx context.Context) (display.State, error)
}

type stateMsg display.State

type sourceDoneMsg struct {
	err error
}

// BBQModel renders the latest probe state.
type BBQModel struct {
	ctx    context.Context
	source StateSource

	keys     bbqKeyMap
	help     help.Model
	spinner  spinner.Model
	progress progress.Model

	state   display.State
	celsius bool
	err     error
	width   int
	height  int
}

// NewBBQModel creates the dashboard model. It starts from whatever the source
// currently holds, which is the default state until the first publish.
func NewBBQModel(ctx context.Context, source StateSource) BBQModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(BandColor(display.BandOrange))

	p := progress.New(progress.WithSolidFill(string(BandColor(display.BandRed))))
	p.Width = 40

	return BBQModel{
		ctx:      ctx,
		source:   source,
		keys:     bbqKeys,
		help:     help.New(),
		spinner:  s,
		progress: p,
		state:    source.Latest(),
	}
}

// Init starts the spinner and waits for the first state.
func (m BBQModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, waitForState(m.ctx, m.source))
}

// waitForState blocks on the channel until a newer state arrives.
func waitForState(ctx context.Context, source StateSource) tea.Cmd {
	return func() tea.Msg {
		s, err := source.Next(ctx)
		if err != nil {
			return sourceDoneMsg{err: err}
		}
		return stateMsg(s)
	}
}

// Update handles all incoming messages.
func (m BBQModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.progress.Width = min(max(msg.Width-12, 10), 60)
		return m, nil

	case stateMsg:
		m.state = display.State(msg)
		m.progress.FullColor = string(BandColor(m.state.InternalTempBand))
		return m, waitForState(m.ctx, m.source)

	case sourceDoneMsg:
		if !errors.Is(msg.err, context.Canceled) && !errors.Is(msg.err, context.DeadlineExceeded) {
			m.err = msg.err
		}
		return m, tea.Quit

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
		case key.Matches(msg, m.keys.Units):
			m.celsius = !m.celsius
		}
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

// View renders the TUI.
func (m BBQModel) View() string {
	var b strings.Builder
	b.WriteString(GenerateLogo())
	b.WriteString("\n\n")

	if !m.state.Ready {
		b.WriteString(fmt.Sprintf("  %s Waiting for probe data...\n", m.spinner.View()))
	} else {
		b.WriteString(paneStyle.Render(m.readingsView()))
		b.WriteString("\n")
	}

	if m.err != nil {
		b.WriteString(errorStyle.Render("Error: "+m.err.Error()) + "\n")
	}

	b.WriteString(footerStyle.Render(m.help.View(m.keys)))
	return b.String()
}

func (m BBQModel) readingsView() string {
	s := m.state
	var rows []string

	if s.HasCook() {
		rows = append(rows, cookInfoStyle.Render(s.CookInfo))
	} else {
		rows = append(rows, mutedStyle.Render("No active cook"))
	}

	rows = append(rows,
		row("Internal", bandStyle(s.InternalTempBand).Render(m.temp(s.InternalTempF))),
		row("Ambient", valueStyle.Render(m.temp(s.AmbientTempF))),
	)

	if s.HasCook() {
		rows = append(rows,
			row("Target", valueStyle.Render(m.temp(s.TargetTempF))),
			row("Peak", valueStyle.Render(m.temp(s.PeakTempF))),
			row("Elapsed", valueStyle.Render(s.TimeElapsed)),
			row("Remaining", valueStyle.Render(s.TimeRemaining)),
			"",
			m.progress.ViewAs(s.Progress),
		)
	}

	if !s.UpdatedAt.IsZero() {
		rows = append(rows, "", mutedStyle.Render("Updated "+s.UpdatedAt.Local().Format(time.TimeOnly)))
	}

	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (m BBQModel) temp(f float64) string {
	if m.celsius {
		return fmt.Sprintf("%.1f°C", (f-32)*5/9)
	}
	return fmt.Sprintf("%.1f°F", f)
}

func row(label, value string) string {
	return lipgloss.JoinHorizontal(lipgloss.Top, labelStyle.Render(label), value)
}

// Err returns the error that ended the dashboard, if any.
func (m BBQModel) Err() error {
	return m.err
}

// StartBBQDashboard runs the full-screen dashboard until the user quits or
// ctx is cancelled.
func StartBBQDashboard(ctx context.Context, source StateSource) error {
	p := tea.NewProgram(NewBBQModel(ctx, source), tea.WithAltScreen(), tea.WithContext(ctx))
	final, err := p.Run()
	if err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return err
	}
	if m, ok := final.(BBQModel); ok {
		return m.Err()
	}
	return nil
}
