package feedback

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// KeywordSuggestions pairs a message keyword with the suggestions to emit
// when a security finding mentions it.
type KeywordSuggestions struct {
	Keyword     string   `toml:"keyword"`
	Suggestions []string `toml:"suggestions"`
}

// Templates holds the canned messages and suggestions used by the template
// feedback path. Construct once at startup; the engine never mutates it.
type Templates struct {
	// StyleMessages maps a lint rule code to a replacement message. Codes
	// not present fall back to the issue's own message.
	StyleMessages map[string]string `toml:"style_messages"`

	// StyleSuggestions maps a lint rule code to up to two suggestions.
	StyleSuggestions map[string][]string `toml:"style_suggestions"`

	// SecuritySuggestions are checked in order; the first entry whose
	// keyword appears in a security finding's lowercased message supplies
	// the suggestions.
	SecuritySuggestions []KeywordSuggestions `toml:"security_suggestions"`

	// ComplexitySuggestions is the fixed refactoring-strategy list attached
	// to every complexity finding.
	ComplexitySuggestions []string `toml:"complexity_suggestions"`

	// BuiltinSuggestions maps an issue category to the suggestions for
	// findings from the built-in heuristic checker.
	BuiltinSuggestions map[string][]string `toml:"builtin_suggestions"`

	// GenericSuggestions is attached to findings from unrecognized tools.
	GenericSuggestions []string `toml:"generic_suggestions"`
}

// DefaultTemplates returns the built-in template set.
func DefaultTemplates() *Templates {
	return &Templates{
		StyleMessages: map[string]string{
			"E501": "Line too long. Consider breaking it into multiple lines or using line continuation.",
			"E302": "Expected 2 blank lines before class definition.",
			"E305": "Expected 2 blank lines after class or function definition.",
			"W293": "Blank line contains whitespace. Remove trailing whitespace.",
			"E111": "Indentation is not a multiple of four spaces.",
			"E112": "Expected an indented block.",
			"F841": "Variable is assigned but never used. Consider removing it or using it.",
			"F401": "Module imported but unused. Remove the import if not needed.",
			"F821": "Undefined name. Check for typos or missing imports.",
			"F823": "Local variable referenced before assignment.",
		},
		StyleSuggestions: map[string][]string{
			"E501": {"Break long lines using parentheses, backslashes, or string concatenation"},
			"F841": {"Remove unused variable or use it in your code"},
			"F401": {"Remove unused import or use the imported module"},
		},
		SecuritySuggestions: []KeywordSuggestions{
			{
				Keyword: "hardcoded",
				Suggestions: []string{
					"Use environment variables or secure configuration management",
					"Consider using a secrets management service",
				},
			},
			{
				Keyword: "exec",
				Suggestions: []string{
					"Avoid using exec() with user input",
					"Consider using safer alternatives like ast.literal_eval()",
				},
			},
		},
		ComplexitySuggestions: []string{
			"Break the function into smaller, single-purpose functions",
			"Extract complex logic into separate methods",
			"Consider using design patterns like Strategy or Command",
			"Add early returns to reduce nesting",
		},
		BuiltinSuggestions: map[string][]string{
			"security": {
				"Review the code for potential security vulnerabilities",
				"Consider using secure coding practices",
			},
			"maintenance": {
				"Address TODO/FIXME comments before merging",
				"Consider creating issues for future improvements",
			},
		},
		GenericSuggestions: []string{
			"Review the code for potential improvements",
		},
	}
}

// LoadTemplates reads a TOML override file and merges it over the defaults.
// Only keys present in the file are replaced.
func LoadTemplates(path string) (*Templates, error) {
	tpl := DefaultTemplates()
	if path == "" {
		return tpl, nil
	}
	var override Templates
	if _, err := toml.DecodeFile(path, &override); err != nil {
		return nil, fmt.Errorf("parsing templates file: %w", err)
	}
	for code, msg := range override.StyleMessages {
		tpl.StyleMessages[code] = msg
	}
	for code, s := range override.StyleSuggestions {
		tpl.StyleSuggestions[code] = s
	}
	if len(override.SecuritySuggestions) > 0 {
		tpl.SecuritySuggestions = override.SecuritySuggestions
	}
	if len(override.ComplexitySuggestions) > 0 {
		tpl.ComplexitySuggestions = override.ComplexitySuggestions
	}
	for cat, s := range override.BuiltinSuggestions {
		tpl.BuiltinSuggestions[cat] = s
	}
	if len(override.GenericSuggestions) > 0 {
		tpl.GenericSuggestions = override.GenericSuggestions
	}
	return tpl, nil
}
