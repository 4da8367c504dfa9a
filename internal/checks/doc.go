// Package checks is the built-in heuristic analyzer. It runs entirely
// in-memory over diff text, reporting TODO/FIXME/HACK/XXX markers as
// maintenance issues and hardcoded-credential assignments as security
// issues, all attributed to the "custom" tool.
package checks
