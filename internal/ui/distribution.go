package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// ChannelCounts is one channel's bucket counts in canonical bin order
type ChannelCounts struct {
	Name   string
	Color  lipgloss.Color
	Counts []int
}

// RenderDistribution draws a horizontal bar per bucket for every channel.
// barWidth is the length of the longest bar in cells.
func RenderDistribution(bins []string, channels []ChannelCounts, barWidth int) string {
	if len(bins) == 0 || len(channels) == 0 {
		return ""
	}

	labelWidth := 0
	for _, b := range bins {
		labelWidth = max(labelWidth, len([]rune(b)))
	}

	maxCount := 0
	for _, ch := range channels {
		for _, n := range ch.Counts {
			maxCount = max(maxCount, n)
		}
	}

	labelStyle := lipgloss.NewStyle().Faint(true)

	var s strings.Builder
	for ci, ch := range channels {
		if ci > 0 {
			s.WriteString("\n")
		}
		s.WriteString(lipgloss.NewStyle().Bold(true).Foreground(ch.Color).Render(ch.Name))
		s.WriteString("\n")

		barStyle := lipgloss.NewStyle().Foreground(ch.Color)
		for i, label := range bins {
			n := 0
			if i < len(ch.Counts) {
				n = ch.Counts[i]
			}

			s.WriteString("  ")
			s.WriteString(labelStyle.Render(padRight(label, labelWidth)))
			s.WriteString(" ")
			s.WriteString(barStyle.Render(renderBar(n, maxCount, barWidth)))
			s.WriteString(fmt.Sprintf(" %d", n))
			s.WriteString("\n")
		}
	}

	return strings.TrimRight(s.String(), "\n")
}

// renderBar creates a block bar proportional to n/maxCount using eighth blocks
func renderBar(n, maxCount, width int) string {
	if n <= 0 || maxCount <= 0 || width <= 0 {
		return ""
	}

	partials := []rune{'▏', '▎', '▍', '▌', '▋', '▊', '▉'}

	eighths := n * width * 8 / maxCount
	if eighths == 0 {
		eighths = 1 // Non-zero counts always show something
	}

	full := eighths / 8
	rem := eighths % 8

	var b strings.Builder
	b.WriteString(strings.Repeat("█", full))
	if rem > 0 {
		b.WriteRune(partials[rem-1])
	}
	return b.String()
}
