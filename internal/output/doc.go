// Package output renders review reports in different formats.
//
// Three formats are supported:
//   - text: human-readable terminal output with the score, breakdown,
//     recommendations, and feedback grouped by severity
//   - json: the full export object (pr_data, analysis, feedback, score,
//     exported_at, version)
//   - markdown: PR-comment-friendly markdown with collapsible sections
//
// Use [GetWriter] to obtain a writer for a format, or [WriteReport] to
// render directly to a file or stdout.
package output
