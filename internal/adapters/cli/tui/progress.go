package tui

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
)

// StepStatus represents the state of a progress step
type StepStatus int

const (
	StepPending StepStatus = iota
	StepRunning
	StepComplete
	StepError
)

// ProgressStep represents a single step in the progress
type ProgressStep struct {
	Name   string
	Status StepStatus
	Detail string
	Error  string
}

// ProgressDisplay manages multi-step progress output for a single crop.
// With animate off (not a terminal) it prints each finished step once and
// never moves the cursor.
type ProgressDisplay struct {
	out        io.Writer
	steps      []ProgressStep
	spinnerIdx int
	quiet      bool
	animate    bool
	mu         sync.Mutex
	rendered   bool
}

var spinnerStyle = spinner.MiniDot

// NewProgressDisplay creates a new progress display
func NewProgressDisplay(out io.Writer, steps []string, quiet, animate bool) *ProgressDisplay {
	pd := &ProgressDisplay{
		out:     out,
		steps:   make([]ProgressStep, len(steps)),
		quiet:   quiet,
		animate: animate,
	}
	for i, name := range steps {
		pd.steps[i] = ProgressStep{Name: name, Status: StepPending}
	}
	return pd
}

// StartStep marks a step as running
func (p *ProgressDisplay) StartStep(index int) {
	p.setStatus(index, StepRunning, "", "")
}

// CompleteStep marks a step as complete, with an optional detail shown after it
func (p *ProgressDisplay) CompleteStep(index int, detail string) {
	p.setStatus(index, StepComplete, detail, "")
}

// FailStep marks a step as failed
func (p *ProgressDisplay) FailStep(index int, err string) {
	p.setStatus(index, StepError, "", err)
}

func (p *ProgressDisplay) setStatus(index int, status StepStatus, detail, errMsg string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if index < 0 || index >= len(p.steps) {
		return
	}
	p.steps[index].Status = status
	p.steps[index].Detail = detail
	p.steps[index].Error = errMsg

	if p.animate {
		p.render()
	} else if status == StepComplete || status == StepError {
		p.printStep(index)
	}
}

// Steps returns a copy of the current steps
func (p *ProgressDisplay) Steps() []ProgressStep {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]ProgressStep(nil), p.steps...)
}

// Tick advances the spinner animation
func (p *ProgressDisplay) Tick() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.spinnerIdx = (p.spinnerIdx + 1) % len(spinnerStyle.Frames)
	if p.animate {
		p.render()
	}
}

func (p *ProgressDisplay) render() {
	if p.quiet {
		return
	}

	// Redraw in place
	if p.rendered {
		fmt.Fprintf(p.out, "\033[%dA", len(p.steps))
		fmt.Fprint(p.out, "\033[J")
	}

	for i := range p.steps {
		p.printStep(i)
	}
	p.rendered = true
}

func (p *ProgressDisplay) printStep(i int) {
	if p.quiet {
		return
	}

	step := p.steps[i]
	var status string
	switch step.Status {
	case StepPending:
		status = " "
	case StepRunning:
		status = spinnerStyle.Frames[p.spinnerIdx]
	case StepComplete:
		status = "✓"
		if step.Detail != "" {
			status += " " + step.Detail
		}
	case StepError:
		status = "✗ " + step.Error
	}

	fmt.Fprintf(p.out, "[%d/%d] %s... %s\n", i+1, len(p.steps), step.Name, status)
}

// Complete prints the final success message
func (p *ProgressDisplay) Complete(outputs [][2]string) {
	if p.quiet {
		return
	}

	fmt.Fprintln(p.out)
	fmt.Fprintln(p.out, "✓ Complete!")
	for _, kv := range outputs {
		fmt.Fprintf(p.out, "  %s: %s\n", kv[0], kv[1])
	}
}

// StartSpinner starts a goroutine that ticks the spinner; close the
// returned channel to stop it.
func (p *ProgressDisplay) StartSpinner() chan struct{} {
	done := make(chan struct{})
	if !p.animate || p.quiet {
		return done
	}
	go func() {
		ticker := time.NewTicker(spinnerStyle.FPS)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				p.Tick()
			}
		}
	}()
	return done
}
