package ui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/cockroachdb/errors"
)

// ErrCanceled is returned when the user interrupts a spinner.
var ErrCanceled = errors.New("operation canceled")

// RunSpinner runs a minimal Bubble Tea spinner while executing the given action.
// The UI exits when the action completes and returns the action's error.
func RunSpinner(ctx context.Context, title string, action func() error) error {
	if ctx == nil {
		ctx = context.Background()
	}
	m := newSpinnerModel(ctx, title, action)
	p := tea.NewProgram(m)
	final, err := p.Run()
	if err != nil {
		return errors.Wrap(err, "run spinner")
	}
	return final.(*spinnerModel).err
}

type actionDoneMsg struct{ err error }

type spinnerModel struct {
	ctx      context.Context
	title    string
	spin     spinner.Model
	finished bool
	err      error
	result   chan error
	style    lipgloss.Style
}

func newSpinnerModel(ctx context.Context, title string, action func() error) *spinnerModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	m := &spinnerModel{
		ctx:    ctx,
		title:  title,
		spin:   s,
		result: make(chan error, 1),
		style:  lipgloss.NewStyle().Padding(0, 1),
	}

	go func() {
		// let the first frame paint before the action starts
		time.Sleep(50 * time.Millisecond)
		m.result <- action()
	}()

	return m
}

func (m *spinnerModel) Init() tea.Cmd {
	return tea.Batch(m.spin.Tick, m.waitForCompletion)
}

func (m *spinnerModel) waitForCompletion() tea.Msg {
	select {
	case <-m.ctx.Done():
		return actionDoneMsg{err: m.ctx.Err()}
	case err := <-m.result:
		return actionDoneMsg{err: err}
	}
}

func (m *spinnerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			m.finished = true
			m.err = ErrCanceled
			return m, tea.Quit
		}
	case actionDoneMsg:
		m.finished = true
		m.err = msg.err
		return m, tea.Quit
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *spinnerModel) View() string {
	if m.finished {
		if m.err != nil {
			return m.style.Render("✗ "+m.title+" ("+m.err.Error()+")") + "\n"
		}
		return m.style.Render("✓ "+m.title) + "\n"
	}
	return m.style.Render(m.spin.View() + " " + m.title)
}
