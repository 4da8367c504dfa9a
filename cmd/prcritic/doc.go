// Prcritic is a CLI for reviewing pull requests with aggregated static
// analysis and hand-tuned scoring.
//
// It fetches a pull request from GitHub, GitLab, or Bitbucket (or ingests a
// file of pre-parsed tool findings), deduplicates the issues, computes a
// weighted quality score with a letter grade, and generates per-issue
// feedback from local templates or an external model.
//
// Usage:
//
//	prcritic review github owner/repo 42      # review a GitHub PR
//	prcritic review gitlab group/project 7    # review a GitLab MR
//	prcritic review bitbucket ws/repo 3       # review a Bitbucket PR
//	prcritic review issues findings.json      # score a findings file
//	prcritic config show                      # show effective configuration
//
// See https://github.com/dshills/prcritic for full documentation.
package main
