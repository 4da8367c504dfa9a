package score

import (
	"strings"
	"testing"

	"github.com/dshills/prcritic/internal/analysis"
	"github.com/go-test/deep"
)

func TestScore_NoIssues(t *testing.T) {
	got := Score(nil)

	if got.TotalScore != 100 {
		t.Errorf("TotalScore = %v, want 100", got.TotalScore)
	}
	if got.Grade != "A+" {
		t.Errorf("Grade = %q, want %q", got.Grade, "A+")
	}
	if got.Summary != "No issues found - excellent code quality!" {
		t.Errorf("Summary = %q", got.Summary)
	}

	wantBreakdown := map[string]float64{
		"security":        100,
		"quality":         100,
		"maintainability": 100,
		"style":           100,
	}
	if diff := deep.Equal(got.Breakdown, wantBreakdown); diff != nil {
		t.Errorf("Breakdown mismatch: %v", diff)
	}
}

func TestScore_SingleSecurityIssue(t *testing.T) {
	issues := []analysis.Issue{
		{
			File:     "app.py",
			Line:     10,
			Severity: analysis.SeverityHigh,
			Category: analysis.CategorySecurity,
			Tool:     "bandit",
			Message:  "hardcoded password",
		},
	}

	got := Score(issues)

	// penalty = 15 (high) * 1.5 (security multiplier) * 1.5 (scanner weight)
	// = 33.75, weighted by 0.30 => 10.125 off the top.
	if got.TotalScore != 89.9 {
		t.Errorf("TotalScore = %v, want 89.9", got.TotalScore)
	}
	if got.Grade != "A-" {
		t.Errorf("Grade = %q, want %q", got.Grade, "A-")
	}
	if got.Breakdown["security"] != 66.25 {
		t.Errorf("Breakdown[security] = %v, want 66.25", got.Breakdown["security"])
	}
	if !strings.Contains(got.Summary, "Security issues detected (1).") {
		t.Errorf("Summary missing security note: %q", got.Summary)
	}
	if !strings.Contains(got.Summary, "Found 1 high-severity issues.") {
		t.Errorf("Summary missing severity note: %q", got.Summary)
	}
}

func TestScore_GradeBoundary(t *testing.T) {
	// 10 medium maintainability issues from an unknown tool: each costs
	// 10 * 1.0 * 1.0 = 10, category total 100, weighted by 0.10 => exactly 90.
	issues := make([]analysis.Issue, 10)
	for i := range issues {
		issues[i] = analysis.Issue{
			File:     "a.py",
			Line:     i + 1,
			Severity: analysis.SeverityMedium,
			Category: analysis.CategoryMaintainability,
			Tool:     "sometool",
			Message:  "issue",
		}
	}

	got := Score(issues)
	if got.TotalScore != 90.0 {
		t.Fatalf("TotalScore = %v, want 90.0", got.TotalScore)
	}
	if got.Grade != "A" {
		t.Errorf("Grade = %q, want %q", got.Grade, "A")
	}

	// One more info-level maintenance issue pushes the score just under 90.
	issues = append(issues, analysis.Issue{
		File:     "a.py",
		Line:     99,
		Severity: analysis.SeverityInfo,
		Category: analysis.CategoryMaintenance,
		Tool:     "sometool",
		Message:  "note",
	})

	got = Score(issues)
	if got.TotalScore != 89.9 {
		t.Fatalf("TotalScore = %v, want 89.9", got.TotalScore)
	}
	if got.Grade != "A-" {
		t.Errorf("Grade = %q, want %q", got.Grade, "A-")
	}
}

func TestScore_MoreIssuesNeverRaiseScore(t *testing.T) {
	base := []analysis.Issue{
		{File: "a.py", Line: 1, Severity: analysis.SeverityLow, Category: analysis.CategoryStyle, Tool: "flake8", Message: "one"},
	}
	more := append([]analysis.Issue{}, base...)
	more = append(more, analysis.Issue{
		File: "a.py", Line: 2, Severity: analysis.SeverityLow, Category: analysis.CategoryStyle, Tool: "flake8", Message: "two",
	})

	if Score(more).TotalScore > Score(base).TotalScore {
		t.Error("adding an issue raised the score")
	}
}

func TestScore_FloorsAtZero(t *testing.T) {
	issues := make([]analysis.Issue, 100)
	for i := range issues {
		issues[i] = analysis.Issue{
			File:     "a.py",
			Line:     i + 1,
			Severity: analysis.SeverityError,
			Category: analysis.CategorySecurity,
			Tool:     "bandit",
			Message:  "bad",
		}
	}

	got := Score(issues)
	if got.TotalScore != 0 {
		t.Errorf("TotalScore = %v, want 0", got.TotalScore)
	}
	if got.Grade != "F" {
		t.Errorf("Grade = %q, want %q", got.Grade, "F")
	}
	if got.Breakdown["security"] != 0 {
		t.Errorf("Breakdown[security] = %v, want 0", got.Breakdown["security"])
	}
}

func TestScore_NormalizesMalformedIssues(t *testing.T) {
	issues := []analysis.Issue{
		{File: "a.py", Line: 1, Message: "no classification at all"},
	}

	got := Score(issues)

	// info (2) * 1.0 * 1.0 weighted by the unknown-category 0.10 => 99.8
	if got.TotalScore != 99.8 {
		t.Errorf("TotalScore = %v, want 99.8", got.TotalScore)
	}
	if got.Metrics.IssuesBySeverity["info"] != 1 {
		t.Errorf("IssuesBySeverity[info] = %d, want 1", got.Metrics.IssuesBySeverity["info"])
	}
	if got.Metrics.IssuesByCategory["unknown"] != 1 {
		t.Errorf("IssuesByCategory[unknown] = %d, want 1", got.Metrics.IssuesByCategory["unknown"])
	}
}

func TestComputeMetrics(t *testing.T) {
	issues := []analysis.Issue{
		{File: "a.py", Line: 10, Severity: analysis.SeverityHigh, Category: analysis.CategorySecurity, Tool: "bandit"},
		{File: "a.py", Line: 10, Severity: analysis.SeverityLow, Category: analysis.CategoryStyle, Tool: "flake8"},
		{File: "b.py", Line: 20, Severity: analysis.SeverityLow, Category: analysis.CategoryStyle, Tool: "flake8"},
		{File: "", Line: 0, Severity: analysis.SeverityInfo, Category: analysis.CategoryUnknown, Tool: "safety"},
	}

	m := computeMetrics(issues)

	if m.TotalIssues != 4 {
		t.Errorf("TotalIssues = %d, want 4", m.TotalIssues)
	}
	if m.FilesAffected != 2 {
		t.Errorf("FilesAffected = %d, want 2", m.FilesAffected)
	}
	if m.LinesAffected != 2 {
		t.Errorf("LinesAffected = %d, want 2", m.LinesAffected)
	}
	if m.IssuesByTool["flake8"] != 2 {
		t.Errorf("IssuesByTool[flake8] = %d, want 2", m.IssuesByTool["flake8"])
	}
	if m.IssuesBySeverity["low"] != 2 {
		t.Errorf("IssuesBySeverity[low] = %d, want 2", m.IssuesBySeverity["low"])
	}
}

func TestBuildRecommendations(t *testing.T) {
	issues := []analysis.Issue{
		{Severity: analysis.SeverityHigh, Category: analysis.CategorySecurity, Tool: "bandit"},
		{Severity: analysis.SeverityError, Category: analysis.CategoryError, Tool: "pylint"},
		{Severity: analysis.SeverityMedium, Category: analysis.CategoryComplexity, Tool: "radon"},
	}

	recs := buildRecommendations(issues)

	want := []string{
		"Address security issues immediately - these are critical for production safety",
		"Fix all errors before merging - these will cause runtime failures",
		"Refactor complex functions to improve maintainability",
		"Run security scans regularly in your development workflow",
		"Consider adding complexity checks to your CI/CD pipeline",
	}
	if diff := deep.Equal(recs, want); diff != nil {
		t.Errorf("recommendations mismatch: %v", diff)
	}
}

func TestBuildRecommendations_SizeThresholds(t *testing.T) {
	many := make([]analysis.Issue, 21)
	for i := range many {
		many[i] = analysis.Issue{Severity: analysis.SeverityInfo, Category: analysis.CategoryUnknown, Tool: "x"}
	}

	recs := buildRecommendations(many)
	found := false
	for _, r := range recs {
		if r == "Consider breaking this PR into smaller, more focused changes" {
			found = true
		}
		if r == "Review the code more carefully before submitting" {
			t.Error("got the >10 recommendation alongside the >20 one")
		}
	}
	if !found {
		t.Error("missing the >20 issues recommendation")
	}
}

func TestGradeFor(t *testing.T) {
	tests := []struct {
		score float64
		want  string
	}{
		{100, "A+"},
		{95, "A+"},
		{94.9, "A"},
		{90, "A"},
		{89.9, "A-"},
		{85, "A-"},
		{80, "B+"},
		{75, "B"},
		{70, "B-"},
		{65, "C+"},
		{60, "C"},
		{55, "C-"},
		{50, "D"},
		{49.9, "F"},
		{0, "F"},
	}
	for _, tt := range tests {
		if got := gradeFor(tt.score); got != tt.want {
			t.Errorf("gradeFor(%v) = %q, want %q", tt.score, got, tt.want)
		}
	}
}
