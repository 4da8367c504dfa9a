package feedback

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/dshills/prcritic/internal/analysis"
	"github.com/dshills/prcritic/internal/providers"
)

// fakeGenerator responds per file based on the prompt contents.
type fakeGenerator struct {
	responses map[string]string
	failFor   map[string]bool
	calls     int
}

func (f *fakeGenerator) Name() string { return "fake" }

func (f *fakeGenerator) Generate(ctx context.Context, req providers.FeedbackRequest) (providers.FeedbackResponse, error) {
	f.calls++
	for file, fail := range f.failFor {
		if fail && strings.Contains(req.UserPrompt, file) {
			return providers.FeedbackResponse{}, errors.New("provider unavailable")
		}
	}
	for file, resp := range f.responses {
		if strings.Contains(req.UserPrompt, file) {
			return providers.FeedbackResponse{Content: resp}, nil
		}
	}
	return providers.FeedbackResponse{}, errors.New("no canned response")
}

func TestTemplateFeedback_StyleLint(t *testing.T) {
	engine := NewEngine(nil, nil, 0)
	issue := analysis.Issue{
		File:    "a.py",
		Line:    3,
		Tool:    "flake8",
		Code:    "E501",
		Message: "line too long (120 > 79 characters)",
	}

	item := engine.templateFeedback(issue)

	if item.Category != analysis.CategoryStyle {
		t.Errorf("Category = %q, want style", item.Category)
	}
	if item.Severity != analysis.SeverityInfo {
		t.Errorf("Severity = %q, want info", item.Severity)
	}
	if !strings.Contains(item.Message, "Line too long") {
		t.Errorf("Message = %q, want canned E501 text", item.Message)
	}
	if len(item.Suggestions) == 0 {
		t.Error("expected E501 suggestions")
	}
	if item.Code != "E501" {
		t.Errorf("Code = %q, want E501", item.Code)
	}
}

func TestTemplateFeedback_StyleLint_UnknownCode(t *testing.T) {
	engine := NewEngine(nil, nil, 0)
	issue := analysis.Issue{
		File:    "a.py",
		Tool:    "pylint",
		Code:    "C9999",
		Message: "original message",
	}

	item := engine.templateFeedback(issue)
	if item.Message != "original message" {
		t.Errorf("Message = %q, want the issue's own message", item.Message)
	}
}

func TestTemplateFeedback_Security(t *testing.T) {
	engine := NewEngine(nil, nil, 0)
	issue := analysis.Issue{
		File:       "app.py",
		Line:       12,
		Tool:       "bandit",
		Message:    "Hardcoded password string detected",
		TestID:     "B105",
		Confidence: "HIGH",
	}

	item := engine.templateFeedback(issue)

	if !strings.HasPrefix(item.Message, "Security issue: ") {
		t.Errorf("Message = %q, want Security issue prefix", item.Message)
	}
	if item.Severity != analysis.SeverityHigh {
		t.Errorf("Severity = %q, want high", item.Severity)
	}
	if item.Category != analysis.CategorySecurity {
		t.Errorf("Category = %q, want security", item.Category)
	}
	if len(item.Suggestions) == 0 {
		t.Fatal("expected keyword suggestions for hardcoded")
	}
	if !strings.Contains(item.Suggestions[0], "environment variables") {
		t.Errorf("Suggestions[0] = %q", item.Suggestions[0])
	}
	if item.TestID != "B105" || item.Confidence != "HIGH" {
		t.Errorf("pass-through fields lost: TestID=%q Confidence=%q", item.TestID, item.Confidence)
	}
}

func TestTemplateFeedback_Complexity(t *testing.T) {
	engine := NewEngine(nil, nil, 0)
	issue := analysis.Issue{
		File:       "core.py",
		Line:       40,
		Tool:       "radon",
		Complexity: 17,
		Function:   "process_all",
	}

	item := engine.templateFeedback(issue)

	if item.Message != "High complexity in process_all (17)" {
		t.Errorf("Message = %q", item.Message)
	}
	if item.Severity != analysis.SeverityMedium {
		t.Errorf("Severity = %q, want medium", item.Severity)
	}
	if len(item.Suggestions) != 4 {
		t.Errorf("Suggestions = %d, want 4", len(item.Suggestions))
	}
}

func TestTemplateFeedback_Complexity_MissingFunction(t *testing.T) {
	engine := NewEngine(nil, nil, 0)
	item := engine.templateFeedback(analysis.Issue{Tool: "gocyclo", Complexity: 11})
	if item.Message != "High complexity in unknown (11)" {
		t.Errorf("Message = %q", item.Message)
	}
}

func TestTemplateFeedback_Builtin(t *testing.T) {
	engine := NewEngine(nil, nil, 0)
	issue := analysis.Issue{
		File:     "a.py",
		Line:     7,
		Tool:     "custom",
		Category: analysis.CategoryMaintenance,
		Message:  "Found TODO: fix later",
	}

	item := engine.templateFeedback(issue)

	if item.Severity != analysis.SeverityLow {
		t.Errorf("Severity = %q, want low", item.Severity)
	}
	if len(item.Suggestions) == 0 {
		t.Error("expected maintenance suggestions")
	}
}

func TestTemplateFeedback_Generic(t *testing.T) {
	engine := NewEngine(nil, nil, 0)

	item := engine.templateFeedback(analysis.Issue{File: "a.py", Tool: "safety"})

	if item.Message != "Unknown issue" {
		t.Errorf("Message = %q, want fallback", item.Message)
	}
	if item.Severity != analysis.SeverityInfo {
		t.Errorf("Severity = %q, want info", item.Severity)
	}
	if item.Category != analysis.CategoryUnknown {
		t.Errorf("Category = %q, want unknown", item.Category)
	}
	if len(item.Suggestions) == 0 {
		t.Error("expected generic suggestions")
	}
}

func TestGenerate_TemplateSource(t *testing.T) {
	engine := NewEngine(nil, nil, 0)
	issues := []analysis.Issue{
		{File: "b.py", Line: 2, Tool: "flake8", Code: "E501", Severity: analysis.SeverityLow, Message: "long"},
		{File: "a.py", Line: 9, Tool: "bandit", Severity: analysis.SeverityHigh, Message: "hardcoded secret"},
	}

	items := engine.Generate(context.Background(), issues, SourceTemplate)

	if len(items) != 2 {
		t.Fatalf("len = %d, want 2", len(items))
	}
	// Prioritized: high severity first.
	if items[0].Severity != analysis.SeverityHigh {
		t.Errorf("items[0].Severity = %q, want high", items[0].Severity)
	}
}

func TestGenerate_ExternalPerFileFallback(t *testing.T) {
	gen := &fakeGenerator{
		failFor: map[string]bool{"a.py": true},
		responses: map[string]string{
			"b.py": `{"summary":"One style nit","suggestions":[{"issue_id":1,"suggestion":"Shorten the line","priority":"low","reasoning":"readability"}],"overall_assessment":"Fine overall","priority_fixes":[]}`,
		},
	}
	engine := NewEngine(nil, gen, 0)

	issues := []analysis.Issue{
		{File: "a.py", Line: 1, Tool: "bandit", Severity: analysis.SeverityHigh, Message: "hardcoded password"},
		{File: "b.py", Line: 2, Tool: "flake8", Code: "E501", Severity: analysis.SeverityLow, Message: "long line"},
	}

	items := engine.Generate(context.Background(), issues, SourceExternal)

	if gen.calls != 2 {
		t.Errorf("generator calls = %d, want 2", gen.calls)
	}

	var aTemplated, bExternal bool
	for _, item := range items {
		if item.File == "a.py" && strings.HasPrefix(item.Message, "Security issue: ") {
			aTemplated = true
		}
		if item.File == "b.py" && item.Tool == "ai" {
			bExternal = true
		}
	}
	if !aTemplated {
		t.Error("a.py did not fall back to template feedback")
	}
	if !bExternal {
		t.Error("b.py did not get external feedback")
	}
}

func TestGenerate_ExternalWithNilGenerator(t *testing.T) {
	engine := NewEngine(nil, nil, 0)
	issues := []analysis.Issue{
		{File: "a.py", Line: 1, Tool: "flake8", Code: "E501", Severity: analysis.SeverityLow, Message: "long"},
	}

	items := engine.Generate(context.Background(), issues, SourceExternal)
	if len(items) != 1 {
		t.Fatalf("len = %d, want 1", len(items))
	}
	if items[0].Tool != "flake8" {
		t.Errorf("Tool = %q, want template feedback", items[0].Tool)
	}
}

func TestGenerate_Empty(t *testing.T) {
	engine := NewEngine(nil, nil, 0)
	items := engine.Generate(context.Background(), nil, SourceTemplate)
	if len(items) != 0 {
		t.Errorf("len = %d, want 0", len(items))
	}
}
