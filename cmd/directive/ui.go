package main

import (
	"context"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"

	"github.com/germanamz/directive/pkg/modelclient"
	"github.com/germanamz/directive/pkg/orchestrator"
)

const markdownWidth = 100

var (
	colorMuted   = lipgloss.Color("#656d76")
	colorAccent  = lipgloss.Color("#0969da")
	colorError   = lipgloss.Color("#cf222e")
	colorMagenta = lipgloss.Color("#8250df")

	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	progressStyle = lipgloss.NewStyle().Foreground(colorMuted)
	errorStyle    = lipgloss.NewStyle().Bold(true).Foreground(colorError)
	spinnerStyle  = lipgloss.NewStyle().Foreground(colorMagenta)
)

func isattyFd(fd uintptr) bool {
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// newStyle decorates output on a terminal. Off a terminal only the markdown
// rendering, when requested, changes the output.
func newStyle(tty, render bool) orchestrator.Style {
	var s orchestrator.Style

	if tty {
		s.Title = titleStyle.Render
		s.Progress = progressStyle.Render
		s.Error = errorStyle.Render
	}

	if render || tty {
		s.Response = newResponseRenderer(tty, render)
	}

	return s
}

// newResponseRenderer renders replies with glamour when render is set and
// colours model service errors on a terminal.
func newResponseRenderer(tty, render bool) func(modelclient.Result) string {
	var md *glamour.TermRenderer
	if render {
		opts := []glamour.TermRendererOption{glamour.WithWordWrap(markdownWidth)}
		if tty {
			opts = append(opts, glamour.WithAutoStyle())
		} else {
			opts = append(opts, glamour.WithStandardStyle("notty"))
		}
		if r, err := glamour.NewTermRenderer(opts...); err == nil {
			md = r
		}
	}

	return func(res modelclient.Result) string {
		if !res.OK() {
			if tty {
				return errorStyle.Render(res.String())
			}
			return res.String()
		}
		if md == nil {
			return res.Text
		}
		out, err := md.Render(res.Text)
		if err != nil {
			return res.Text
		}
		return strings.TrimRight(out, "\n")
	}
}

// newWaiter shows a spinner next to the progress label while the model call
// runs on a terminal. Off a terminal the orchestrator prints the label.
func newWaiter(tty bool, out io.Writer) orchestrator.Waiter {
	if !tty {
		return nil
	}

	return func(ctx context.Context, label string, fn func()) {
		p := tea.NewProgram(
			newSpinnerModel(label),
			tea.WithOutput(out),
			tea.WithInput(nil),
			tea.WithContext(ctx),
		)

		done := make(chan struct{})
		go func() {
			defer close(done)
			fn()
			p.Send(callDoneMsg{})
		}()

		_, _ = p.Run()
		<-done
	}
}

type callDoneMsg struct{}

type spinnerModel struct {
	spinner spinner.Model
	label   string
	done    bool
}

func newSpinnerModel(label string) spinnerModel {
	return spinnerModel{
		spinner: spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(spinnerStyle)),
		label:   label,
	}
}

func (m spinnerModel) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m spinnerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case callDoneMsg:
		m.done = true
		return m, tea.Quit
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m spinnerModel) View() string {
	if m.done {
		return progressStyle.Render(m.label) + "\n"
	}
	return m.spinner.View() + " " + progressStyle.Render(m.label)
}
