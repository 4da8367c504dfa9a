package output

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/dshills/prcritic/internal/report"
)

// MarkdownWriter outputs a PR-comment-friendly markdown report.
type MarkdownWriter struct{}

func (m *MarkdownWriter) Write(w io.Writer, rep *report.Report) error {
	fmt.Fprintf(w, "## PR Critic Review\n\n")
	if rep.PRData != nil {
		fmt.Fprintf(w, "**PR #%d: %s**\n\n", rep.PRData.ID, rep.PRData.Title)
	}

	fmt.Fprintf(w, "### Score: %.1f/100 (%s)\n\n", rep.Score.TotalScore, rep.Score.Grade)
	fmt.Fprintf(w, "%s\n\n", rep.Score.Summary)

	// Breakdown table
	keys := make([]string, 0, len(rep.Score.Breakdown))
	for k := range rep.Score.Breakdown {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	fmt.Fprintf(w, "| Area | Score |\n")
	fmt.Fprintf(w, "|------|-------|\n")
	for _, k := range keys {
		fmt.Fprintf(w, "| %s | %.1f |\n", k, rep.Score.Breakdown[k])
	}
	fmt.Fprintln(w)

	if len(rep.Score.Recommendations) > 0 {
		fmt.Fprintf(w, "### Recommendations\n\n")
		for _, rec := range rep.Score.Recommendations {
			fmt.Fprintf(w, "- %s\n", rec)
		}
		fmt.Fprintln(w)
	}

	if len(rep.Feedback) == 0 {
		fmt.Fprintln(w, "No issues found. :white_check_mark:")
		return nil
	}

	// Collapsible sections by severity
	grouped := groupBySeverity(rep.Feedback)
	for _, sev := range []string{"error", "high", "medium", "low", "info"} {
		items := grouped[sev]
		if len(items) == 0 {
			continue
		}

		fmt.Fprintf(w, "<details>\n<summary>%s %s (%d)</summary>\n\n",
			mdSeverityIcon(sev), strings.ToUpper(sev), len(items))

		for _, item := range items {
			fmt.Fprintf(w, "**`%s:%d`** | %s | %s\n\n",
				item.File, item.Line, item.Category, item.Tool)
			fmt.Fprintf(w, "%s\n\n", item.Message)

			if len(item.Suggestions) > 0 {
				fmt.Fprintf(w, "**Suggestions:**\n\n")
				for _, s := range item.Suggestions {
					fmt.Fprintf(w, "- %s\n", s)
				}
				fmt.Fprintln(w)
			}

			fmt.Fprintf(w, "---\n\n")
		}

		fmt.Fprintf(w, "</details>\n\n")
	}

	fmt.Fprintf(w, "*Exported at %s (v%s)*\n", rep.ExportedAt, rep.Version)

	return nil
}

func mdSeverityIcon(s string) string {
	switch s {
	case "error":
		return ":no_entry:"
	case "high":
		return ":red_circle:"
	case "medium":
		return ":orange_circle:"
	case "low":
		return ":yellow_circle:"
	default:
		return ":white_circle:"
	}
}
