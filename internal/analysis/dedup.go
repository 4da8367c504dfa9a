package analysis

// dedupKey uniquely identifies a finding. Two issues with the same file,
// line, and message are the same finding regardless of which tool reported
// them.
type dedupKey struct {
	file    string
	line    int
	message string
}

// Deduplicate collapses raw issue records from multiple tools into a unique
// set, preserving the first occurrence order of each (file, line, message)
// key. It is a pure function and always succeeds; an empty or nil input
// yields an empty result.
func Deduplicate(issues []Issue) []Issue {
	seen := make(map[dedupKey]bool, len(issues))
	unique := make([]Issue, 0, len(issues))
	for _, issue := range issues {
		key := dedupKey{file: issue.File, line: issue.Line, message: issue.Message}
		if seen[key] {
			continue
		}
		seen[key] = true
		unique = append(unique, issue)
	}
	return unique
}
