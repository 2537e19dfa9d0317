package tui

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/devbush/photoccrop/internal/domain"
)

// renderProgressBar creates a text progress bar like [=====>    ]
// current=0, total=10, width=10 → [          ]
// current=5, total=10, width=10 → [=====>    ]
// current=10, total=10, width=10 → [==========]
// current=3, total=10, width=10 → [==>       ]
func renderProgressBar(current, total, width int) string {
	if total <= 0 {
		return "[" + strings.Repeat(" ", width) + "]"
	}

	var bar strings.Builder
	bar.WriteString("[")

	switch {
	case current >= total:
		bar.WriteString(strings.Repeat("=", width))
	case current <= 0:
		bar.WriteString(strings.Repeat(" ", width))
	default:
		ratio := float64(current) / float64(total)
		arrowPos := int(ratio*float64(width) + 0.5)
		if arrowPos < 1 {
			arrowPos = 1
		}
		if arrowPos > width {
			arrowPos = width
		}

		// From halfway on the arrow sits after the filled cells
		equals := arrowPos - 1
		if ratio >= 0.5 {
			equals = arrowPos
		}
		equals = max(0, min(equals, width-1))

		bar.WriteString(strings.Repeat("=", equals))
		bar.WriteString(">")
		bar.WriteString(strings.Repeat(" ", max(0, width-equals-1)))
	}

	bar.WriteString("]")
	return bar.String()
}

// BatchProgress prints one plain line per processed file. Used when stdout
// is not a terminal.
type BatchProgress struct {
	out   io.Writer
	quiet bool
	width int
}

// NewBatchProgress creates a new batch progress printer
func NewBatchProgress(out io.Writer, quiet bool) *BatchProgress {
	return &BatchProgress{
		out:   out,
		quiet: quiet,
		width: 20,
	}
}

// Observe renders a progress event; it matches domain.ProgressObserver
func (bp *BatchProgress) Observe(ev domain.ProgressEvent) {
	if bp.quiet {
		return
	}
	fmt.Fprintf(bp.out, "[%d/%d] %s %3d%% %s\n",
		ev.CurrentIndex, ev.TotalFiles,
		renderProgressBar(ev.CurrentIndex, ev.TotalFiles, bp.width),
		ev.Percentage, ev.CurrentFileName)
}

// Complete prints the final summary and the failed files
func (bp *BatchProgress) Complete(outcome domain.BatchOutcome) {
	if bp.quiet {
		return
	}
	WriteBatchSummary(bp.out, outcome)
}

// WriteBatchSummary prints the summary of a finished or cancelled batch
func WriteBatchSummary(w io.Writer, outcome domain.BatchOutcome) {
	fmt.Fprintln(w)
	if outcome.Cancelled {
		fmt.Fprintf(w, "! Batch cancelled after %d of %d files: %s\n",
			len(outcome.Outcomes), outcome.TotalFiles, outcome.Summary())
	} else {
		fmt.Fprintf(w, "✓ Batch complete: %s (%s)\n", outcome.Summary(), FormatDuration(outcome.Duration))
	}
	fmt.Fprintf(w, "  Output: %s\n", outcome.OutputDir)

	failures := outcome.Failures()
	if len(failures) > 0 {
		fmt.Fprintln(w, "\nFailed files:")
		for _, f := range failures {
			fmt.Fprintf(w, "  %s\n", FormatOutcomeLine(f))
		}
	}
}

var (
	batchTitleStyle = lipgloss.NewStyle().Bold(true)
	batchDimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	batchFailStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
)

const recentLines = 5

type progressMsg domain.ProgressEvent

type batchDoneMsg struct{}

// BatchModel is the bubbletea model showing a running batch
type BatchModel struct {
	bar        progress.Model
	last       domain.ProgressEvent
	recent     []string
	cancel     context.CancelFunc
	cancelling bool
	done       bool
}

// NewBatchModel creates the model; cancel is invoked when the user presses ctrl+c
func NewBatchModel(cancel context.CancelFunc) BatchModel {
	return BatchModel{
		bar:    progress.New(progress.WithDefaultGradient(), progress.WithWidth(40)),
		cancel: cancel,
	}
}

func (m BatchModel) Init() tea.Cmd {
	return nil
}

func (m BatchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			if !m.cancelling && m.cancel != nil {
				m.cancel()
			}
			m.cancelling = true
		}
	case tea.WindowSizeMsg:
		m.bar.Width = max(10, min(msg.Width-20, 60))
	case progressMsg:
		ev := domain.ProgressEvent(msg)
		failed := ev.FailedSoFar > m.last.FailedSoFar
		m.last = ev
		line := fmt.Sprintf("%d/%d %s", ev.CurrentIndex, ev.TotalFiles, TruncateName(ev.CurrentFileName, 40))
		if failed {
			line = batchFailStyle.Render("✗ " + line)
		} else {
			line = "✓ " + line
		}
		m.recent = append(m.recent, line)
		if len(m.recent) > recentLines {
			m.recent = m.recent[len(m.recent)-recentLines:]
		}
	case batchDoneMsg:
		m.done = true
		return m, tea.Quit
	}
	return m, nil
}

func (m BatchModel) View() string {
	var b strings.Builder

	title := "Cropping photos"
	if m.cancelling && !m.done {
		title = "Cancelling, finishing current files"
	}
	b.WriteString(batchTitleStyle.Render(title))
	b.WriteString("\n\n")

	b.WriteString(m.bar.ViewAs(float64(m.last.Percentage) / 100))
	fmt.Fprintf(&b, "  %d/%d\n\n", m.last.CurrentIndex, m.last.TotalFiles)

	for _, line := range m.recent {
		b.WriteString(line)
		b.WriteString("\n")
	}

	if !m.done {
		b.WriteString(batchDimStyle.Render("\n(ctrl+c to cancel)"))
		b.WriteString("\n")
	}
	return b.String()
}

// Last returns the most recent progress event
func (m BatchModel) Last() domain.ProgressEvent {
	return m.last
}

// RunBatchTUI runs batch on a background goroutine while rendering its
// progress events, and returns the batch outcome once it has finished.
func RunBatchTUI(cancel context.CancelFunc, batch func(domain.ProgressObserver) domain.BatchOutcome) (domain.BatchOutcome, error) {
	p := tea.NewProgram(NewBatchModel(cancel))

	result := make(chan domain.BatchOutcome, 1)
	go func() {
		outcome := batch(func(ev domain.ProgressEvent) {
			p.Send(progressMsg(ev))
		})
		result <- outcome
		p.Send(batchDoneMsg{})
	}()

	if _, err := p.Run(); err != nil {
		// The display died; stop the batch and still report what it did
		cancel()
		return <-result, err
	}
	return <-result, nil
}
