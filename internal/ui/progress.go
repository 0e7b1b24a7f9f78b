// Package ui renders terminal feedback: a progress line while images are
// measured and a per-channel distribution summary when the run completes.
package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
)

// Progress draws a single, redrawn progress line. It is driven synchronously
// from the processing loop, no Bubbletea program is involved.
type Progress struct {
	w       io.Writer
	bar     progress.Model
	enabled bool
	drawn   bool
	nameMax int // Longest file name shown before truncation
}

// NewProgress creates a progress line writing to w. A disabled Progress
// swallows every update.
func NewProgress(w io.Writer, enabled bool) *Progress {
	bar := progress.New(
		progress.WithGradient("#3A3A5C", "#F8B31D"),
		progress.WithWidth(30),
		progress.WithoutPercentage(), // Count is rendered next to the bar
	)

	return &Progress{
		w:       w,
		bar:     bar,
		enabled: enabled,
		nameMax: 32,
	}
}

// Update redraws the line for done of total items
func (p *Progress) Update(done, total int, name string) {
	if !p.enabled || total <= 0 {
		return
	}

	percent := float64(done) / float64(total)
	countStyle := lipgloss.NewStyle().Faint(true)

	// Clear to end of line so shorter names don't leave residue
	fmt.Fprintf(p.w, "\r%s %s %s\x1b[K",
		p.bar.ViewAs(percent),
		countStyle.Render(fmt.Sprintf("%*d/%d", len(fmt.Sprint(total)), done, total)),
		truncate(name, p.nameMax),
	)
	p.drawn = true
}

// Finish terminates the progress line if one was drawn
func (p *Progress) Finish() {
	if p.drawn {
		fmt.Fprintln(p.w)
		p.drawn = false
	}
}

// truncate shortens s to at most n runes, marking the cut with an ellipsis
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	if n <= 1 {
		return string(runes[:n])
	}
	return string(runes[:n-1]) + "…"
}

// padRight pads s with spaces to width runes
func padRight(s string, width int) string {
	if n := len([]rune(s)); n < width {
		return s + strings.Repeat(" ", width-n)
	}
	return s
}
