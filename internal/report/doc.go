// Package report defines the exported analysis artifact: PR metadata, the
// deduplicated issue list, the prioritized feedback list, and the score
// result, stamped with an export timestamp and schema version.
package report
