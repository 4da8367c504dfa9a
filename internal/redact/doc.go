// Package redact scrubs credential-looking strings from text before it is
// sent to an external feedback provider. Issue messages can quote the very
// secret a scanner flagged; everything leaving the process goes through
// [Secrets] first.
package redact
