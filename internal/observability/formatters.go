// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/resume-builder/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
	// scoreBarWidth is the number of cells in the score bar
	scoreBarWidth = 20
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n-3]) + "..."
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
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, truncate(line, boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

// PrintDocument outputs a human-readable summary of the resume document.
func (p *Printer) PrintDocument(doc types.ResumeDocument) {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Name:   %s\n", orDash(doc.PersonalInfo.Name)))
	sb.WriteString(fmt.Sprintf("Email:  %s\n", orDash(doc.PersonalInfo.Email)))
	sb.WriteString(fmt.Sprintf("Phone:  %s\n", orDash(doc.PersonalInfo.Phone)))

	listSection(&sb, types.SectionEducation, len(doc.Education), func(i int) string {
		e := doc.Education[i]
		return fmt.Sprintf("%s (%s, %s)", orDash(e.Institution), orDash(e.Degree), orDash(e.Year))
	})
	listSection(&sb, types.SectionWorkExperience, len(doc.WorkExperience), func(i int) string {
		w := doc.WorkExperience[i]
		return fmt.Sprintf("%s at %s (%s)", orDash(w.Position), orDash(w.Company), orDash(w.Duration))
	})
	listSection(&sb, types.SectionSkills, len(doc.Skills), func(i int) string {
		return orDash(doc.Skills[i].Name)
	})

	p.printBox("RESUME DOCUMENT", strings.TrimSuffix(sb.String(), "\n"))
}

func listSection(sb *strings.Builder, section types.Section, n int, line func(int) string) {
	sb.WriteString(fmt.Sprintf("\n%s (%d):\n", section.Title(), n))
	count := min(n, maxItemsToShow)
	for i := 0; i < count; i++ {
		sb.WriteString(fmt.Sprintf("  %d. %s\n", i, line(i)))
	}
	if n > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("  ... and %d more\n", n-maxItemsToShow))
	}
}

// ScoreBar draws score (0-100) as a fixed-width bar.
func ScoreBar(score int) string {
	score = max(0, min(score, 100))
	filled := score * scoreBarWidth / 100
	return "[" + strings.Repeat("█", filled) + strings.Repeat("░", scoreBarWidth-filled) + "]"
}

// PrintScore outputs the completeness score with a per-section breakdown.
func (p *Printer) PrintScore(doc types.ResumeDocument, score int) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Score: %3d/100 %s\n\n", score, ScoreBar(score)))
	for _, s := range types.Sections {
		if s.IsList() {
			sb.WriteString(fmt.Sprintf("  %-16s %d entries\n", s.Title(), doc.Len(s)))
			continue
		}
		filled := 0
		for _, v := range []string{doc.PersonalInfo.Name, doc.PersonalInfo.Email, doc.PersonalInfo.Phone} {
			if v != "" {
				filled++
			}
		}
		sb.WriteString(fmt.Sprintf("  %-16s %d/3 fields\n", s.Title(), filled))
	}
	p.printBox("COMPLETENESS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintExport outputs where an exported PDF was written.
func (p *Printer) PrintExport(tmpl types.Template, path string, size int) {
	content := fmt.Sprintf("Template: %s\nFile:     %s\nSize:     %d bytes", tmpl, path, size)
	p.printBox("EXPORTED PDF", content)
}
