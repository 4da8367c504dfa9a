package analysis

import (
	"encoding/json"
	"testing"
)

func TestSeverityRank(t *testing.T) {
	tests := []struct {
		severity Severity
		want     int
	}{
		{SeverityError, 0},
		{SeverityHigh, 1},
		{SeverityMedium, 2},
		{SeverityLow, 3},
		{SeverityInfo, 4},
		{Severity("critical"), 5},
		{Severity(""), 5},
	}
	for _, tt := range tests {
		if got := SeverityRank(tt.severity); got != tt.want {
			t.Errorf("SeverityRank(%q) = %d, want %d", tt.severity, got, tt.want)
		}
	}
}

func TestClassifyTool(t *testing.T) {
	tests := []struct {
		tool string
		want ToolKind
	}{
		{"flake8", KindStyleLint},
		{"pylint", KindStyleLint},
		{"eslint", KindStyleLint},
		{"golangci-lint", KindStyleLint},
		{"bandit", KindSecurityScanner},
		{"gosec", KindSecurityScanner},
		{"semgrep", KindSecurityScanner},
		{"safety", KindDependencyScanner},
		{"osv-scanner", KindDependencyScanner},
		{"trivy", KindDependencyScanner},
		{"radon", KindComplexityAnalyzer},
		{"gocyclo", KindComplexityAnalyzer},
		{"custom", KindBuiltinChecker},
		{"builtin", KindBuiltinChecker},
		{"ai", KindExternalAI},
		{"llm", KindExternalAI},
		{"mystery-tool", KindUnknown},
		{"", KindUnknown},
	}
	for _, tt := range tests {
		if got := ClassifyTool(tt.tool); got != tt.want {
			t.Errorf("ClassifyTool(%q) = %v, want %v", tt.tool, got, tt.want)
		}
	}
}

func TestNormalize_Defaults(t *testing.T) {
	issue := Issue{File: "main.py", Line: 3, Message: "something"}
	n := issue.Normalize()

	if n.Severity != SeverityInfo {
		t.Errorf("Severity = %q, want %q", n.Severity, SeverityInfo)
	}
	if n.Category != CategoryUnknown {
		t.Errorf("Category = %q, want %q", n.Category, CategoryUnknown)
	}
	if n.Tool != "unknown" {
		t.Errorf("Tool = %q, want %q", n.Tool, "unknown")
	}
}

func TestNormalize_PreservesSetFields(t *testing.T) {
	issue := Issue{
		File:     "main.py",
		Severity: SeverityHigh,
		Category: CategorySecurity,
		Tool:     "bandit",
	}
	n := issue.Normalize()

	if n.Severity != SeverityHigh {
		t.Errorf("Severity = %q, want %q", n.Severity, SeverityHigh)
	}
	if n.Category != CategorySecurity {
		t.Errorf("Category = %q, want %q", n.Category, CategorySecurity)
	}
	if n.Tool != "bandit" {
		t.Errorf("Tool = %q, want %q", n.Tool, "bandit")
	}
}

func TestUnmarshalJSON_UnknownFields(t *testing.T) {
	data := `{
		"file": "app.py",
		"line": 12,
		"severity": "high",
		"category": "security",
		"tool": "bandit",
		"message": "hardcoded password",
		"test_id": "B105",
		"cwe": "CWE-259",
		"more_info": "https://example.com/b105"
	}`

	var issue Issue
	if err := json.Unmarshal([]byte(data), &issue); err != nil {
		t.Fatalf("unmarshal error: %v", err)
	}

	if issue.File != "app.py" || issue.Line != 12 {
		t.Errorf("location = %s:%d, want app.py:12", issue.File, issue.Line)
	}
	if issue.TestID != "B105" {
		t.Errorf("TestID = %q, want %q", issue.TestID, "B105")
	}
	if len(issue.Extra) != 2 {
		t.Fatalf("Extra has %d keys, want 2", len(issue.Extra))
	}
	if _, ok := issue.Extra["cwe"]; !ok {
		t.Error("Extra missing cwe")
	}
	if _, ok := issue.Extra["more_info"]; !ok {
		t.Error("Extra missing more_info")
	}
}

func TestMarshalJSON_CarriesExtra(t *testing.T) {
	in := `{"file":"a.py","line":1,"severity":"low","category":"style","tool":"flake8","message":"m","vendor_field":42}`

	var issue Issue
	if err := json.Unmarshal([]byte(in), &issue); err != nil {
		t.Fatalf("unmarshal error: %v", err)
	}

	out, err := json.Marshal(issue)
	if err != nil {
		t.Fatalf("marshal error: %v", err)
	}

	var m map[string]json.RawMessage
	if err := json.Unmarshal(out, &m); err != nil {
		t.Fatalf("re-unmarshal error: %v", err)
	}
	if string(m["vendor_field"]) != "42" {
		t.Errorf("vendor_field = %s, want 42", m["vendor_field"])
	}
	if string(m["file"]) != `"a.py"` {
		t.Errorf("file = %s, want %q", m["file"], "a.py")
	}
}

func TestUnmarshalJSON_NoExtra(t *testing.T) {
	var issue Issue
	if err := json.Unmarshal([]byte(`{"file":"a.py","message":"m"}`), &issue); err != nil {
		t.Fatalf("unmarshal error: %v", err)
	}
	if issue.Extra != nil {
		t.Errorf("Extra = %v, want nil", issue.Extra)
	}
}
