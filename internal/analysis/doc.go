// Package analysis defines the Issue data model shared by the scoring and
// feedback pipelines, and the deduplication pass that collapses findings from
// multiple tools into a canonical set.
//
// Issues arrive pre-parsed from upstream collectors; this package never
// executes tools or parses their native output formats. Unknown severities,
// categories, and tools are tolerated everywhere: Normalize supplies the
// documented defaults and unrecognized JSON fields are carried opaquely in
// Issue.Extra.
//
// Deduplicate keys findings on (file, line, message) and keeps the first
// occurrence in input order. It is idempotent and total.
package analysis
