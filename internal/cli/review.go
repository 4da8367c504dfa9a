package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/dshills/prcritic/internal/analysis"
	"github.com/dshills/prcritic/internal/config"
	"github.com/dshills/prcritic/internal/fetch"
	"github.com/dshills/prcritic/internal/output"
	"github.com/dshills/prcritic/internal/providers"
	"github.com/dshills/prcritic/internal/review"
	"github.com/spf13/cobra"
)

// Shared review flags
var (
	flagProvider       string
	flagModel          string
	flagFeedbackSource string
	flagFormat         string
	flagOut            string
	flagFailBelow      float64
	flagTemplates      string
	flagTimeout        int
	flagIssuesFile     string
)

func addReviewFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&flagProvider, "provider", "", "External feedback provider (openai, ollama, lmstudio)")
	cmd.Flags().StringVar(&flagModel, "model", "", "Model name")
	cmd.Flags().StringVar(&flagFeedbackSource, "feedback-source", "", "Feedback source (template, external)")
	cmd.Flags().StringVar(&flagFormat, "format", "", "Output format (text, json, markdown)")
	cmd.Flags().StringVar(&flagOut, "out", "", "Output file path (default: stdout)")
	cmd.Flags().Float64Var(&flagFailBelow, "fail-below", 0, "Exit non-zero when the score falls below this value")
	cmd.Flags().StringVar(&flagTemplates, "templates", "", "Feedback template overrides file (TOML)")
	cmd.Flags().IntVar(&flagTimeout, "timeout", 0, "External feedback timeout in seconds")
}

func buildOverrides() map[string]string {
	m := make(map[string]string)
	if flagProvider != "" {
		m["provider"] = flagProvider
	}
	if flagModel != "" {
		m["model"] = flagModel
	}
	if flagFeedbackSource != "" {
		m["feedbackSource"] = flagFeedbackSource
	}
	if flagFormat != "" {
		m["format"] = flagFormat
	}
	if flagFailBelow > 0 {
		m["failBelow"] = strconv.FormatFloat(flagFailBelow, 'f', -1, 64)
	}
	if flagTemplates != "" {
		m["templatesFile"] = flagTemplates
	}
	if flagTimeout > 0 {
		m["externalTimeoutSeconds"] = strconv.Itoa(flagTimeout)
	}
	return m
}

// loadIssuesFile reads pre-parsed tool findings from a JSON file. The file
// holds an array of issue records; unknown fields are carried through.
func loadIssuesFile(path string) ([]analysis.Issue, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading issues file: %w", err)
	}
	var issues []analysis.Issue
	if err := json.Unmarshal(data, &issues); err != nil {
		return nil, fmt.Errorf("parsing issues file: %w", err)
	}
	return issues, nil
}

func runReview(ctx context.Context, pr *fetch.PRData, ingested []analysis.Issue, cfg config.Config) {
	rep, err := review.Run(ctx, pr, ingested, cfg)
	if err != nil {
		if providers.IsAuthError(err) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			exitCode = ExitAuthError
			return
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		exitCode = ExitRuntimeError
		return
	}

	if err := output.WriteReport(rep, cfg.Format, flagOut); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing output: %v\n", err)
		exitCode = ExitRuntimeError
		return
	}

	if cfg.FailBelow > 0 && rep.Score.TotalScore < cfg.FailBelow {
		exitCode = ExitLowScore
	}
}

// fetchAndReview fetches a PR from the named platform and runs the pipeline.
func fetchAndReview(platform, repo string, id int) error {
	cfg, err := config.Load(buildOverrides())
	if err != nil {
		return err
	}

	var ingested []analysis.Issue
	if flagIssuesFile != "" {
		ingested, err = loadIssuesFile(flagIssuesFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			exitCode = ExitRuntimeError
			return nil
		}
	}

	fetcher, err := fetch.New(platform)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		exitCode = ExitUsageError
		return nil
	}

	ctx := context.Background()
	pr, err := fetcher.FetchPR(ctx, repo, id)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error fetching PR: %v\n", err)
		exitCode = ExitRuntimeError
		return nil
	}

	runReview(ctx, pr, ingested, cfg)
	return nil
}

func parsePRID(s string) (int, error) {
	id, err := strconv.Atoi(s)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid PR number: %s", s)
	}
	return id, nil
}

var reviewCmd = &cobra.Command{
	Use:   "review",
	Short: "Review a pull request",
	Long:  "Fetch a pull request, aggregate analysis findings, score the change, and generate feedback.",
}

func platformReviewCmd(platform, repoHelp string) *cobra.Command {
	return &cobra.Command{
		Use:   platform + " <repo> <number>",
		Short: "Review a " + platform + " pull request",
		Long:  fmt.Sprintf("Review a pull request on %s. Repo is given as %s.", platform, repoHelp),
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parsePRID(args[1])
			if err != nil {
				return err
			}
			return fetchAndReview(platform, args[0], id)
		},
	}
}

var reviewIssuesCmd = &cobra.Command{
	Use:   "issues <file.json>",
	Short: "Review a file of pre-parsed tool findings",
	Long:  "Run the scoring and feedback pipeline over a JSON file of findings without fetching a pull request.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(buildOverrides())
		if err != nil {
			return err
		}
		issues, err := loadIssuesFile(args[0])
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			exitCode = ExitRuntimeError
			return nil
		}
		runReview(context.Background(), nil, issues, cfg)
		return nil
	},
}

func init() {
	githubCmd := platformReviewCmd("github", "owner/repo")
	gitlabCmd := platformReviewCmd("gitlab", "group/project")
	bitbucketCmd := platformReviewCmd("bitbucket", "workspace/repo")

	reviewCmd.AddCommand(githubCmd)
	reviewCmd.AddCommand(gitlabCmd)
	reviewCmd.AddCommand(bitbucketCmd)
	reviewCmd.AddCommand(reviewIssuesCmd)

	for _, cmd := range []*cobra.Command{
		githubCmd,
		gitlabCmd,
		bitbucketCmd,
		reviewIssuesCmd,
	} {
		addReviewFlags(cmd)
	}

	// Platform commands can merge in a findings file alongside the fetched diff
	for _, cmd := range []*cobra.Command{githubCmd, gitlabCmd, bitbucketCmd} {
		cmd.Flags().StringVar(&flagIssuesFile, "issues", "", "JSON file of pre-parsed tool findings to merge in")
	}
}
