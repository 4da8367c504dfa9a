// Package cache provides a file-based cache for external feedback responses.
//
// Entries are keyed by a SHA-256 hash of the provider name, model, and
// redacted prompt material. Each entry stores the raw response string along
// with a creation timestamp and a TTL (in seconds). Expired entries are
// skipped on read and removed during cache-clear operations.
//
// The default cache directory is $XDG_CACHE_HOME/prcritic (or the
// OS-appropriate equivalent).
package cache
