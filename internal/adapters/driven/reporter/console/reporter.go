// Package console provides a terminal implementation of driven.Reporter.
//
// On a terminal the reporter draws a progress bar that is redrawn in place.
// Otherwise it prints plain lines and a count when a block finishes.
package console

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/charmbracelet/bubbles/progress"
	"golang.org/x/term"

	"github.com/custodia-labs/conimex/internal/core/ports/driven"
)

// Ensure Reporter implements the interface.
var _ driven.Reporter = (*Reporter)(nil)

const barWidth = 40

// Reporter writes import progress and diagnostics to a terminal.
type Reporter struct {
	mu          sync.Mutex
	out         io.Writer
	styles      *Styles
	bar         progress.Model
	interactive bool

	total  int
	done   int
	active bool
}

// NewReporter creates a reporter writing to out.
// The progress bar is only drawn when out is a terminal.
func NewReporter(out io.Writer) *Reporter {
	return newReporter(out, isTerminal(out))
}

func newReporter(out io.Writer, interactive bool) *Reporter {
	styles := NewStyles(out, nil)
	theme := styles.Theme()

	return &Reporter{
		out:    out,
		styles: styles,
		bar: progress.New(
			progress.WithGradient(string(theme.Primary), string(theme.Secondary)),
			progress.WithWidth(barWidth),
			progress.WithoutPercentage(),
		),
		interactive: interactive,
	}
}

// Comment prints an informational line.
func (r *Reporter) Comment(msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.breakLine()
	fmt.Fprintln(r.out, r.styles.Comment.Render(msg))
}

// Error prints a failure line.
func (r *Reporter) Error(msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.breakLine()
	fmt.Fprintln(r.out, r.styles.Error.Render(msg))
}

// Start begins progress tracking for total items.
func (r *Reporter) Start(total int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.total = total
	r.done = 0
	r.active = true
	r.draw()
}

// Advance marks one item as done.
func (r *Reporter) Advance() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.active {
		return
	}
	r.done++
	r.draw()
}

// Finish ends progress tracking.
func (r *Reporter) Finish() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.active {
		return
	}
	r.active = false
	if r.interactive {
		fmt.Fprintln(r.out)
		return
	}
	fmt.Fprintln(r.out, r.styles.Done.Render(fmt.Sprintf("%d/%d", r.done, r.total)))
}

// draw redraws the bar in place (caller must hold lock).
func (r *Reporter) draw() {
	if !r.interactive {
		return
	}
	fmt.Fprintf(r.out, "\r%s %s", r.bar.ViewAs(r.percent()), r.styles.Count.Render(fmt.Sprintf("%d/%d", r.done, r.total)))
}

// breakLine moves past a partially drawn bar (caller must hold lock).
func (r *Reporter) breakLine() {
	if r.interactive && r.active {
		fmt.Fprintln(r.out)
	}
}

func (r *Reporter) percent() float64 {
	if r.total <= 0 {
		return 1
	}
	return float64(r.done) / float64(r.total)
}

func isTerminal(out io.Writer) bool {
	f, ok := out.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}
