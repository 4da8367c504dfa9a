// Package fetch retrieves pull/merge request metadata and diffs from hosting
// platforms. GitHub and Bitbucket use their REST APIs directly; GitLab uses
// the official client library. All three normalize into [PRData] so the rest
// of the pipeline never sees a platform-specific shape.
package fetch
