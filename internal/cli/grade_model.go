package cli

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/emmafields/rubriq/internal/cli/formatter"
	"github.com/emmafields/rubriq/internal/domain"
	"github.com/emmafields/rubriq/internal/workflow"
)

// gradeDoneMsg carries the outcome of a grading run back into the model.
type gradeDoneMsg struct {
	result *domain.GradingResult
	err    error
}

// gradeModel shows a spinner while a grading run is in flight.
// Ctrl+C cancels the run through the shared context.
type gradeModel struct {
	spinner  spinner.Model
	filename string
	cancel   context.CancelFunc
	start    tea.Cmd

	done   bool
	result *domain.GradingResult
	err    error
}

func newGradeModel(ctx context.Context, ctrl *workflow.Controller, filename string) gradeModel {
	ctx, cancel := context.WithCancel(ctx)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(formatter.ColorHeader)

	return gradeModel{
		spinner:  sp,
		filename: filename,
		cancel:   cancel,
		start: func() tea.Msg {
			result, err := ctrl.StartGrading(ctx)
			return gradeDoneMsg{result: result, err: err}
		},
	}
}

func (m gradeModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.start)
}

func (m gradeModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			m.cancel()
			return m, nil
		}
		return m, nil

	case gradeDoneMsg:
		m.done = true
		m.result = msg.result
		m.err = msg.err
		return m, tea.Quit

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m gradeModel) View() string {
	if m.done {
		return ""
	}
	return fmt.Sprintf("%s Grading %s... %s\n",
		m.spinner.View(),
		formatter.StyleFg.Render(m.filename),
		formatter.Dim("(ctrl+c to cancel)"),
	)
}

// runGradeProgram runs the grading spinner UI until the run finishes or is
// cancelled, then returns the run's outcome.
func runGradeProgram(ctx context.Context, ctrl *workflow.Controller, filename string) (*domain.GradingResult, error) {
	model := newGradeModel(ctx, ctrl, filename)
	defer model.cancel()

	final, err := tea.NewProgram(model).Run()
	if err != nil {
		return nil, fmt.Errorf("running grade view: %w", err)
	}

	m, ok := final.(gradeModel)
	if !ok {
		return nil, fmt.Errorf("unexpected final model type %T", final)
	}
	return m.result, m.err
}
