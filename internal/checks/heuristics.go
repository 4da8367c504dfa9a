package checks

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/dshills/prcritic/internal/analysis"
)

// ToolName identifies issues produced by the built-in checker.
const ToolName = "custom"

var todoPattern = regexp.MustCompile(`(?i)(TODO|FIXME|HACK|XXX):\s*(.+)`)

// secretPatterns match assignments of credential-looking values on added
// lines. They are deliberately coarse; the scorer treats the builtin checker
// with a reduced tool weight.
var secretPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)password\s*=\s*["'][^"']+["']`),
	regexp.MustCompile(`(?i)api_key\s*=\s*["'][^"']+["']`),
	regexp.MustCompile(`(?i)secret\s*=\s*["'][^"']+["']`),
	regexp.MustCompile(`(?i)token\s*=\s*["'][^"']+["']`),
}

// Analyze scans the added lines of one file's unified diff for maintenance
// markers and hardcoded secrets. Line numbers refer to positions within the
// patch. Pure function; never fails.
func Analyze(file, patch string) []analysis.Issue {
	var issues []analysis.Issue

	lines := strings.Split(patch, "\n")
	for i, line := range lines {
		if !strings.HasPrefix(line, "+") || strings.HasPrefix(line, "+++") {
			continue
		}
		lineNo := i + 1

		if m := todoPattern.FindStringSubmatch(line); m != nil {
			issues = append(issues, analysis.Issue{
				File:     file,
				Line:     lineNo,
				Severity: analysis.SeverityLow,
				Category: analysis.CategoryMaintenance,
				Message:  fmt.Sprintf("Found %s: %s", strings.ToUpper(m[1]), m[2]),
				Tool:     ToolName,
			})
		}

		for _, pat := range secretPatterns {
			if pat.MatchString(line) {
				issues = append(issues, analysis.Issue{
					File:     file,
					Line:     lineNo,
					Severity: analysis.SeverityHigh,
					Category: analysis.CategorySecurity,
					Message:  "Potential hardcoded secret detected",
					Tool:     ToolName,
				})
				break
			}
		}
	}

	return issues
}
