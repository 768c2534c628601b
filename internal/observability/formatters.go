// Package observability provides formatted output utilities for the CLI
// maintenance commands.
package observability

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/idea-rater/internal/db"
	"github.com/jonathan/idea-rater/internal/rating"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 72
)

// Printer handles formatted output
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		line = ellipsize(line, boxWidth-4)
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintIdeas outputs a human-readable listing of recent ideas, newest first.
func (p *Printer) PrintIdeas(ideas []db.Idea) {
	if len(ideas) == 0 {
		p.printBox("RECENT IDEAS", "No ideas stored yet.")
		return
	}

	var sb strings.Builder
	for i, idea := range ideas {
		text := ellipsize(idea.IdeaText, 50)
		sb.WriteString(fmt.Sprintf("#%d  [%s] %s\n", idea.ID, idea.Rating, text))
		if idea.RatingNote != "" {
			sb.WriteString(fmt.Sprintf("     %s\n", ellipsize(idea.RatingNote, 60)))
		}
		sb.WriteString(fmt.Sprintf("     %s\n", idea.CreatedAt.Format("2006-01-02 15:04")))
		if i < len(ideas)-1 {
			sb.WriteString("\n")
		}
	}

	p.printBox(fmt.Sprintf("RECENT IDEAS (%d)", len(ideas)), strings.TrimSuffix(sb.String(), "\n"))
}

// ellipsize shortens text to at most width characters, rune-safe, marking
// the cut with "...".
func ellipsize(text string, width int) string {
	if utf8.RuneCountInString(text) <= width {
		return text
	}
	return rating.TruncateRunes(text, width-3) + "..."
}

// PrintRerateSummary outputs the result of a bulk re-rate run.
func (p *Printer) PrintRerateSummary(selected, updated int) {
	content := fmt.Sprintf("Selected: %d\nUpdated:  %d", selected, updated)
	if updated < selected {
		content += fmt.Sprintf("\nStopped early; %d records untouched.", selected-updated)
	}
	p.printBox("RE-RATE SUMMARY", content)
}
