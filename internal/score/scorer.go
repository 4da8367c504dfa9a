package score

import (
	"fmt"
	"log/slog"
	"math"
	"strings"

	"github.com/dshills/prcritic/internal/analysis"
)

// Result is the aggregate verdict for one analysis run.
type Result struct {
	TotalScore      float64            `json:"total_score"`
	Grade           string             `json:"grade"`
	Breakdown       map[string]float64 `json:"breakdown"`
	Summary         string             `json:"summary"`
	Metrics         Metrics            `json:"metrics"`
	Recommendations []string           `json:"recommendations"`
}

// Metrics holds issue counts sliced by severity, category, and tool.
type Metrics struct {
	TotalIssues      int            `json:"total_issues"`
	IssuesBySeverity map[string]int `json:"issues_by_severity"`
	IssuesByCategory map[string]int `json:"issues_by_category"`
	IssuesByTool     map[string]int `json:"issues_by_tool"`
	FilesAffected    int            `json:"files_affected"`
	LinesAffected    int            `json:"lines_affected"`
}

// categoryWeights scale each category's penalty contribution to the aggregate
// score. The constants are part of the scoring contract; do not retune them.
var categoryWeights = map[analysis.Category]float64{
	analysis.CategorySecurity:        0.30,
	analysis.CategoryError:           0.25,
	analysis.CategoryComplexity:      0.20,
	analysis.CategoryStyle:           0.15,
	analysis.CategoryMaintainability: 0.10,
	analysis.CategoryMaintenance:     0.05,
	analysis.CategoryUnknown:         0.10,
}

const defaultCategoryWeight = 0.10

// severityPenalties are the base deduction per issue.
var severityPenalties = map[analysis.Severity]float64{
	analysis.SeverityError:  20,
	analysis.SeverityHigh:   15,
	analysis.SeverityMedium: 10,
	analysis.SeverityLow:    5,
	analysis.SeverityInfo:   2,
}

const defaultSeverityPenalty = 5

// toolWeight scales a penalty by how much we trust the reporting tool kind.
func toolWeight(tool string) float64 {
	switch analysis.ClassifyTool(tool) {
	case analysis.KindSecurityScanner, analysis.KindDependencyScanner:
		return 1.5
	case analysis.KindComplexityAnalyzer:
		return 1.2
	case analysis.KindStyleLint:
		return 1.0
	case analysis.KindBuiltinChecker:
		return 0.8
	case analysis.KindExternalAI:
		return 1.1
	default:
		return 1.0
	}
}

// categoryMultiplier amplifies penalties for the categories that hurt most.
func categoryMultiplier(category analysis.Category) float64 {
	switch category {
	case analysis.CategorySecurity:
		return 1.5
	case analysis.CategoryError:
		return 1.3
	case analysis.CategoryComplexity:
		return 1.2
	default:
		return 1.0
	}
}

// Score computes the weighted quality score, grade, metrics, and
// recommendations for a deduplicated issue set. It is a total function:
// malformed issues are normalized, never rejected.
func Score(issues []analysis.Issue) Result {
	if len(issues) == 0 {
		return Result{
			TotalScore: 100,
			Grade:      "A+",
			Breakdown: map[string]float64{
				"security":        100,
				"quality":         100,
				"maintainability": 100,
				"style":           100,
			},
			Summary: "No issues found - excellent code quality!",
		}
	}

	slog.Info("scoring issues", "count", len(issues))

	normalized := make([]analysis.Issue, len(issues))
	for i, issue := range issues {
		normalized[i] = issue.Normalize()
	}

	byCategory := groupByCategory(normalized)

	breakdown := make(map[string]float64, len(byCategory))
	var totalPenalty float64
	for category, group := range byCategory {
		penalty := categoryPenalty(category, group)
		breakdown[string(category)] = math.Max(0, 100-penalty)
		totalPenalty += penalty * weightFor(category)
	}

	finalScore := math.Max(0, 100-totalPenalty)

	return Result{
		TotalScore:      round1(finalScore),
		Grade:           gradeFor(finalScore),
		Breakdown:       breakdown,
		Summary:         buildSummary(normalized, finalScore),
		Metrics:         computeMetrics(normalized),
		Recommendations: buildRecommendations(normalized),
	}
}

func groupByCategory(issues []analysis.Issue) map[analysis.Category][]analysis.Issue {
	groups := make(map[analysis.Category][]analysis.Issue)
	for _, issue := range issues {
		groups[issue.Category] = append(groups[issue.Category], issue)
	}
	return groups
}

func weightFor(category analysis.Category) float64 {
	if w, ok := categoryWeights[category]; ok {
		return w
	}
	return defaultCategoryWeight
}

// categoryPenalty sums severityPenalty × toolWeight × categoryMultiplier
// over every issue in the group.
func categoryPenalty(category analysis.Category, issues []analysis.Issue) float64 {
	var penalty float64
	mult := categoryMultiplier(category)
	for _, issue := range issues {
		base, ok := severityPenalties[issue.Severity]
		if !ok {
			base = defaultSeverityPenalty
		}
		penalty += base * mult * toolWeight(issue.Tool)
	}
	return penalty
}

// gradeFor maps a score onto a letter grade. Thresholds are inclusive lower
// bounds, checked descending.
func gradeFor(score float64) string {
	switch {
	case score >= 95:
		return "A+"
	case score >= 90:
		return "A"
	case score >= 85:
		return "A-"
	case score >= 80:
		return "B+"
	case score >= 75:
		return "B"
	case score >= 70:
		return "B-"
	case score >= 65:
		return "C+"
	case score >= 60:
		return "C"
	case score >= 55:
		return "C-"
	case score >= 50:
		return "D"
	default:
		return "F"
	}
}

func buildSummary(issues []analysis.Issue, score float64) string {
	severityCounts := make(map[analysis.Severity]int)
	categoryCounts := make(map[analysis.Category]int)
	for _, issue := range issues {
		severityCounts[issue.Severity]++
		categoryCounts[issue.Category]++
	}

	var b strings.Builder
	switch {
	case score >= 90:
		fmt.Fprintf(&b, "Excellent code quality! Score: %.1f/100. ", score)
	case score >= 80:
		fmt.Fprintf(&b, "Good code quality with minor issues. Score: %.1f/100. ", score)
	case score >= 70:
		fmt.Fprintf(&b, "Code quality needs improvement. Score: %.1f/100. ", score)
	case score >= 60:
		fmt.Fprintf(&b, "Code quality is below standards. Score: %.1f/100. ", score)
	default:
		fmt.Fprintf(&b, "Code quality is poor and needs significant improvement. Score: %.1f/100. ", score)
	}

	if n := severityCounts[analysis.SeverityError]; n > 0 {
		fmt.Fprintf(&b, "Found %d errors. ", n)
	}
	if n := severityCounts[analysis.SeverityHigh]; n > 0 {
		fmt.Fprintf(&b, "Found %d high-severity issues. ", n)
	}
	if n := severityCounts[analysis.SeverityMedium]; n > 0 {
		fmt.Fprintf(&b, "Found %d medium-severity issues. ", n)
	}

	if n := categoryCounts[analysis.CategorySecurity]; n > 0 {
		fmt.Fprintf(&b, "Security issues detected (%d). ", n)
	}
	if n := categoryCounts[analysis.CategoryComplexity]; n > 0 {
		fmt.Fprintf(&b, "Complexity issues found (%d). ", n)
	}

	return strings.TrimSpace(b.String())
}

func computeMetrics(issues []analysis.Issue) Metrics {
	m := Metrics{
		TotalIssues:      len(issues),
		IssuesBySeverity: make(map[string]int),
		IssuesByCategory: make(map[string]int),
		IssuesByTool:     make(map[string]int),
	}
	files := make(map[string]bool)
	lines := make(map[int]bool)
	for _, issue := range issues {
		m.IssuesBySeverity[string(issue.Severity)]++
		m.IssuesByCategory[string(issue.Category)]++
		m.IssuesByTool[issue.Tool]++
		if issue.File != "" {
			files[issue.File] = true
		}
		if issue.Line != 0 {
			lines[issue.Line] = true
		}
	}
	m.FilesAffected = len(files)
	m.LinesAffected = len(lines)
	return m
}

// buildRecommendations emits actionable follow-ups. The checks are
// independent, not mutually exclusive, and the output order is fixed.
func buildRecommendations(issues []analysis.Issue) []string {
	var recs []string

	hasCategory := func(c analysis.Category) bool {
		for _, issue := range issues {
			if issue.Category == c {
				return true
			}
		}
		return false
	}
	hasSeverity := func(s analysis.Severity) bool {
		for _, issue := range issues {
			if issue.Severity == s {
				return true
			}
		}
		return false
	}
	hasToolKind := func(k analysis.ToolKind) bool {
		for _, issue := range issues {
			if analysis.ClassifyTool(issue.Tool) == k {
				return true
			}
		}
		return false
	}

	if hasCategory(analysis.CategorySecurity) {
		recs = append(recs, "Address security issues immediately - these are critical for production safety")
	}
	if hasSeverity(analysis.SeverityError) {
		recs = append(recs, "Fix all errors before merging - these will cause runtime failures")
	}
	if hasCategory(analysis.CategoryComplexity) {
		recs = append(recs, "Refactor complex functions to improve maintainability")
	}
	if hasCategory(analysis.CategoryStyle) {
		recs = append(recs, "Fix style issues to improve code readability")
	}

	if len(issues) > 20 {
		recs = append(recs, "Consider breaking this PR into smaller, more focused changes")
	} else if len(issues) > 10 {
		recs = append(recs, "Review the code more carefully before submitting")
	}

	if hasToolKind(analysis.KindSecurityScanner) {
		recs = append(recs, "Run security scans regularly in your development workflow")
	}
	if hasToolKind(analysis.KindComplexityAnalyzer) {
		recs = append(recs, "Consider adding complexity checks to your CI/CD pipeline")
	}

	return recs
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
