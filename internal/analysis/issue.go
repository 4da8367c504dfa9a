package analysis

import "encoding/json"

// Severity represents the urgency ranking of an issue.
type Severity string

const (
	SeverityError  Severity = "error"
	SeverityHigh   Severity = "high"
	SeverityMedium Severity = "medium"
	SeverityLow    Severity = "low"
	SeverityInfo   Severity = "info"
)

// SeverityRank returns a numeric rank for sorting (lower = more severe).
// Unknown severities sort after info.
func SeverityRank(s Severity) int {
	switch s {
	case SeverityError:
		return 0
	case SeverityHigh:
		return 1
	case SeverityMedium:
		return 2
	case SeverityLow:
		return 3
	case SeverityInfo:
		return 4
	default:
		return 5
	}
}

// Category is the functional classification of an issue. The set is open:
// categories outside the named constants are carried through untouched and
// scored with the default weight.
type Category string

const (
	CategorySecurity        Category = "security"
	CategoryStyle           Category = "style"
	CategoryError           Category = "error"
	CategoryComplexity      Category = "complexity"
	CategoryMaintainability Category = "maintainability"
	CategoryMaintenance     Category = "maintenance"
	CategoryUnknown         Category = "unknown"
)

// ToolKind classifies the source tool of an issue. Tool identifiers are
// free-form strings; ClassifyTool maps the ones we know about onto a kind and
// everything else onto KindUnknown.
type ToolKind int

const (
	KindUnknown ToolKind = iota
	KindStyleLint
	KindSecurityScanner
	KindDependencyScanner
	KindComplexityAnalyzer
	KindBuiltinChecker
	KindExternalAI
)

// ClassifyTool maps a tool identifier to its kind.
func ClassifyTool(tool string) ToolKind {
	switch tool {
	case "flake8", "pylint", "eslint", "golangci-lint":
		return KindStyleLint
	case "bandit", "gosec", "semgrep":
		return KindSecurityScanner
	case "safety", "osv-scanner", "trivy":
		return KindDependencyScanner
	case "radon", "gocyclo":
		return KindComplexityAnalyzer
	case "custom", "builtin":
		return KindBuiltinChecker
	case "ai", "llm":
		return KindExternalAI
	default:
		return KindUnknown
	}
}

// Issue is a single finding reported by an analysis tool against a file.
// A zero Line means the finding is file- or repo-level. Optional fields
// that the core does not interpret are preserved in Extra.
type Issue struct {
	File     string   `json:"file"`
	Line     int      `json:"line"`
	Severity Severity `json:"severity"`
	Category Category `json:"category"`
	Tool     string   `json:"tool"`
	Message  string   `json:"message"`

	// Optional, tool-specific fields.
	Code       string `json:"code,omitempty"`
	Complexity int    `json:"complexity,omitempty"`
	Function   string `json:"function,omitempty"`
	Confidence string `json:"confidence,omitempty"`
	TestID     string `json:"test_id,omitempty"`

	// Extra carries any unrecognized fields from the originating tool.
	Extra map[string]json.RawMessage `json:"-"`
}

// knownIssueFields are the keys the Issue struct itself decodes; everything
// else lands in Extra.
var knownIssueFields = map[string]bool{
	"file": true, "line": true, "severity": true, "category": true,
	"tool": true, "message": true, "code": true, "complexity": true,
	"function": true, "confidence": true, "test_id": true,
}

// UnmarshalJSON decodes an issue-shaped record, tolerating unknown fields by
// stashing them in Extra. Missing fields keep their zero values; Normalize
// fills the required defaults.
func (i *Issue) UnmarshalJSON(data []byte) error {
	type plain Issue
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	for k := range raw {
		if knownIssueFields[k] {
			delete(raw, k)
		}
	}
	if len(raw) == 0 {
		raw = nil
	}
	*i = Issue(p)
	i.Extra = raw
	return nil
}

// MarshalJSON encodes the issue including any pass-through Extra fields.
func (i Issue) MarshalJSON() ([]byte, error) {
	type plain Issue
	data, err := json.Marshal(plain(i))
	if err != nil {
		return nil, err
	}
	if len(i.Extra) == 0 {
		return data, nil
	}
	var merged map[string]json.RawMessage
	if err := json.Unmarshal(data, &merged); err != nil {
		return nil, err
	}
	for k, v := range i.Extra {
		if _, ok := merged[k]; !ok {
			merged[k] = v
		}
	}
	return json.Marshal(merged)
}

// Normalize fills defaults for missing classification fields. Malformed input
// is never fatal: an issue with no severity scores as info, no category as
// unknown, no tool as unknown.
func (i Issue) Normalize() Issue {
	if i.Severity == "" {
		i.Severity = SeverityInfo
	}
	if i.Category == "" {
		i.Category = CategoryUnknown
	}
	if i.Tool == "" {
		i.Tool = "unknown"
	}
	return i
}
