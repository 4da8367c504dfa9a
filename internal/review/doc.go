// Package review orchestrates one analysis pass over a pull request: it runs
// the built-in heuristic checks, merges in pre-parsed issues from upstream
// tools, deduplicates, and feeds the canonical issue set independently to the
// scorer and the feedback engine before assembling the exportable report.
//
// The core stages are pure and total; the only fallible collaborators are the
// platform fetch (handled by the caller) and the external feedback provider,
// whose failures degrade to template feedback and are logged rather than
// surfaced.
package review
