// Package cli wires together the Cobra command tree for the prcritic binary.
//
// It defines the root command and all subcommands (review, config, providers,
// cache, version), binds flags, reads configuration, invokes the review
// pipeline, and returns deterministic exit codes for CI gating.
package cli
