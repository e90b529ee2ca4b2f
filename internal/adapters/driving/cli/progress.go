package cli

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/custodia-labs/paperless-cli/internal/core/domain"
)

// progressReporter shows the status of ingestion tasks as they are polled.
type progressReporter interface {
	// Update records a polled task snapshot.
	Update(task domain.Task)
	// Finish stops any live display.
	Finish()
}

// newProgressReporter picks a spinner on terminals and plain lines otherwise.
func newProgressReporter(w io.Writer) progressReporter {
	if f, ok := w.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		return newSpinnerReporter(f)
	}
	return &lineReporter{w: w}
}

func statusLine(task domain.Task) string {
	return fmt.Sprintf("Filename: %s Status: %s", task.FileName, task.Status)
}

// lineReporter prints one line whenever a task changes status.
type lineReporter struct {
	w      io.Writer
	handle string
	status domain.TaskStatus
}

func (r *lineReporter) Update(task domain.Task) {
	if task.Handle == r.handle && task.Status == r.status {
		return
	}
	r.handle, r.status = task.Handle, task.Status
	fmt.Fprintln(r.w, statusLine(task))
}

func (r *lineReporter) Finish() {}

type taskMsg domain.Task

type finishMsg struct{}

// progressModel renders "[elapsed] spinner Filename: X Status: Y".
type progressModel struct {
	spinner spinner.Model
	task    domain.Task
	started time.Time
	styles  statusStyles
}

type statusStyles struct {
	elapsed lipgloss.Style
	pending lipgloss.Style
	success lipgloss.Style
	failure lipgloss.Style
}

func newStatusStyles(r *lipgloss.Renderer) statusStyles {
	return statusStyles{
		elapsed: r.NewStyle().Foreground(lipgloss.Color("#6C7086")),
		pending: r.NewStyle().Foreground(lipgloss.Color("#F9E2AF")),
		success: r.NewStyle().Foreground(lipgloss.Color("#A6E3A1")),
		failure: r.NewStyle().Foreground(lipgloss.Color("#F38BA8")),
	}
}

func (s statusStyles) status(st domain.TaskStatus) lipgloss.Style {
	switch st {
	case domain.TaskSuccess:
		return s.success
	case domain.TaskFailure:
		return s.failure
	default:
		return s.pending
	}
}

func (m progressModel) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case taskMsg:
		m.task = domain.Task(msg)
		return m, nil
	case finishMsg:
		return m, tea.Quit
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m progressModel) View() string {
	elapsed := time.Since(m.started).Truncate(time.Second)
	return fmt.Sprintf("%s %s Filename: %s Status: %s\n",
		m.styles.elapsed.Render("["+elapsed.String()+"]"),
		m.spinner.View(),
		m.task.FileName,
		m.styles.status(m.task.Status).Render(m.task.Status.String()),
	)
}

// spinnerReporter runs one bubbletea program per task.
type spinnerReporter struct {
	out    *os.File
	styles statusStyles

	handle  string
	program *tea.Program
	done    chan struct{}
}

func newSpinnerReporter(out *os.File) *spinnerReporter {
	return &spinnerReporter{
		out:    out,
		styles: newStatusStyles(lipgloss.NewRenderer(out)),
	}
}

func (r *spinnerReporter) Update(task domain.Task) {
	if task.Handle != r.handle {
		r.Finish()
		r.start(task)
		return
	}
	r.program.Send(taskMsg(task))
}

func (r *spinnerReporter) start(task domain.Task) {
	model := progressModel{
		spinner: spinner.New(spinner.WithSpinner(spinner.Dot)),
		task:    task,
		started: time.Now(),
		styles:  r.styles,
	}

	r.handle = task.Handle
	r.program = tea.NewProgram(model,
		tea.WithOutput(r.out),
		tea.WithInput(nil),
		tea.WithoutSignalHandler(),
	)
	r.done = make(chan struct{})

	go func(p *tea.Program, done chan struct{}) {
		_, _ = p.Run()
		close(done)
	}(r.program, r.done)
}

func (r *spinnerReporter) Finish() {
	if r.program == nil {
		return
	}
	r.program.Send(finishMsg{})
	<-r.done
	r.program, r.handle = nil, ""
}
