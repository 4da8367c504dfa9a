package output

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/dshills/prcritic/internal/feedback"
	"github.com/dshills/prcritic/internal/report"
)

// TextWriter outputs a human-readable text report.
type TextWriter struct{}

func (t *TextWriter) Write(w io.Writer, rep *report.Report) error {
	ew := &errWriter{w: w}

	// Header
	ew.println("PR Critic Review")
	if rep.PRData != nil {
		ew.printf("PR #%d: %s\n", rep.PRData.ID, rep.PRData.Title)
		if rep.PRData.Author != "" {
			ew.printf("Author: %s\n", rep.PRData.Author)
		}
	}
	ew.println(strings.Repeat("─", 60))

	// Score
	ew.printf("Score: %.1f/100 (%s)\n", rep.Score.TotalScore, rep.Score.Grade)
	ew.println(rep.Score.Summary)
	ew.println(strings.Repeat("─", 60))

	// Breakdown in stable order
	keys := make([]string, 0, len(rep.Score.Breakdown))
	for k := range rep.Score.Breakdown {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		ew.printf("  %-16s %.1f\n", k, rep.Score.Breakdown[k])
	}

	if len(rep.Score.Recommendations) > 0 {
		ew.println("\nRecommendations:")
		for _, rec := range rep.Score.Recommendations {
			for i, line := range wrapText(rec, 70) {
				if i == 0 {
					ew.printf("  - %s\n", line)
				} else {
					ew.printf("    %s\n", line)
				}
			}
		}
	}

	if len(rep.Feedback) == 0 {
		ew.println("\nNo issues found. Looks good!")
		return ew.err
	}

	// Feedback items are already prioritized. Group by severity for display.
	grouped := groupBySeverity(rep.Feedback)
	for _, sev := range []string{"error", "high", "medium", "low", "info"} {
		items := grouped[sev]
		if len(items) == 0 {
			continue
		}

		ew.printf("\n%s %s (%d)\n", severityIcon(sev), strings.ToUpper(sev), len(items))
		ew.println(strings.Repeat("─", 40))

		for _, item := range items {
			ew.printf("\n  %s:%d  [%s]\n", item.File, item.Line, item.Category)
			for _, line := range wrapText(item.Message, 70) {
				ew.printf("    %s\n", line)
			}
			if len(item.Suggestions) > 0 {
				ew.println("  Suggestions:")
				for _, s := range item.Suggestions {
					for i, line := range wrapText(s, 66) {
						if i == 0 {
							ew.printf("    - %s\n", line)
						} else {
							ew.printf("      %s\n", line)
						}
					}
				}
			}
		}
	}

	ew.printf("\n%s\n", strings.Repeat("─", 60))
	ew.printf("Exported at %s (v%s)\n", rep.ExportedAt, rep.Version)

	return ew.err
}

// errWriter wraps an io.Writer and captures the first error.
type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) printf(format string, args ...interface{}) {
	if ew.err != nil {
		return
	}
	_, ew.err = fmt.Fprintf(ew.w, format, args...)
}

func (ew *errWriter) println(s string) {
	if ew.err != nil {
		return
	}
	_, ew.err = fmt.Fprintln(ew.w, s)
}

func groupBySeverity(items []feedback.Item) map[string][]feedback.Item {
	m := make(map[string][]feedback.Item)
	for _, item := range items {
		m[string(item.Severity)] = append(m[string(item.Severity)], item)
	}
	return m
}

func severityIcon(s string) string {
	switch s {
	case "error", "high":
		return "[!!]"
	case "medium":
		return "[!]"
	case "low", "info":
		return "[-]"
	default:
		return "[?]"
	}
}

func wrapText(text string, width int) []string {
	if len(text) <= width {
		return []string{text}
	}
	var lines []string
	words := strings.Fields(text)
	var current strings.Builder
	for _, word := range words {
		if current.Len()+len(word)+1 > width && current.Len() > 0 {
			lines = append(lines, current.String())
			current.Reset()
		}
		if current.Len() > 0 {
			current.WriteString(" ")
		}
		current.WriteString(word)
	}
	if current.Len() > 0 {
		lines = append(lines, current.String())
	}
	return lines
}
