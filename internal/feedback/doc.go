// Package feedback turns issues into prioritized, human-readable feedback
// items with concrete suggestions.
//
// The engine groups issues by file and renders each group either from the
// local template set (dispatching on the reporting tool's kind) or, when an
// external generator is configured, from a per-file model call. External
// failures of any kind degrade that single file to the template path; no
// error ever reaches the caller.
//
// Prioritize imposes the display order: severity rank, then category, then
// line, with a stable sort. Because ordering comes only from this pass, the
// final feedback list is independent of per-file call completion order.
package feedback
