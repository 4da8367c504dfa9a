package review

import (
	"context"
	"log/slog"
	"time"

	"github.com/dshills/prcritic/internal/analysis"
	"github.com/dshills/prcritic/internal/cache"
	"github.com/dshills/prcritic/internal/checks"
	"github.com/dshills/prcritic/internal/config"
	"github.com/dshills/prcritic/internal/feedback"
	"github.com/dshills/prcritic/internal/fetch"
	"github.com/dshills/prcritic/internal/providers"
	"github.com/dshills/prcritic/internal/report"
	"github.com/dshills/prcritic/internal/score"
	"github.com/rs/xid"
)

// Run executes one analysis pass: built-in checks over the PR's diffs plus
// any pre-parsed issues from upstream tools, deduplication, scoring, and
// feedback generation. pr may be nil when reviewing an ingested issue file.
//
// Scoring and feedback are independent consumers of the deduplicated set;
// a feedback-provider failure can never affect the score.
func Run(ctx context.Context, pr *fetch.PRData, ingested []analysis.Issue, cfg config.Config) (*report.Report, error) {
	runID := xid.New().String()
	log := slog.With("run_id", runID)

	var issues []analysis.Issue
	if pr != nil {
		for _, d := range pr.Diffs {
			issues = append(issues, checks.Analyze(d.File, d.Patch)...)
		}
		log.Info("built-in checks complete", "pr", pr.ID, "issues", len(issues))
	}
	issues = append(issues, ingested...)
	for i := range issues {
		issues[i] = issues[i].Normalize()
	}

	deduped := analysis.Deduplicate(issues)
	log.Info("deduplicated issues", "raw", len(issues), "unique", len(deduped))

	result := score.Score(deduped)
	log.Info("scored", "total", result.TotalScore, "grade", result.Grade)

	source := feedback.SourceTemplate
	var gen providers.Generator
	if cfg.FeedbackSource == config.FeedbackExternal {
		g, err := buildGenerator(cfg)
		if err != nil {
			// External source unavailable: degrade to templates, spec'd
			// as non-fatal.
			log.Error("external feedback provider unavailable", "err", err)
		} else {
			gen = g
			source = feedback.SourceExternal
		}
	}

	templates, err := feedback.LoadTemplates(cfg.TemplatesFile)
	if err != nil {
		return nil, err
	}

	engine := feedback.NewEngine(templates, gen,
		time.Duration(cfg.ExternalTimeoutSeconds)*time.Second)
	items := engine.Generate(ctx, deduped, source)
	log.Info("feedback generated", "items", len(items))

	return report.New(pr, deduped, items, result), nil
}

// buildGenerator creates the configured provider, wrapped with the response
// cache when enabled.
func buildGenerator(cfg config.Config) (providers.Generator, error) {
	gen, err := providers.New(cfg.Provider, cfg.Model)
	if err != nil {
		return nil, err
	}
	if !cfg.Cache.Enabled {
		return gen, nil
	}
	c, err := cache.New(true, cfg.Cache.Dir, cfg.Cache.TTLSeconds)
	if err != nil {
		return nil, err
	}
	return &cachedGenerator{inner: gen, model: cfg.Model, cache: c}, nil
}

// cachedGenerator memoizes external feedback responses keyed on provider,
// model, and prompt material.
type cachedGenerator struct {
	inner providers.Generator
	model string
	cache *cache.Cache
}

func (c *cachedGenerator) Name() string { return c.inner.Name() }

func (c *cachedGenerator) Generate(ctx context.Context, req providers.FeedbackRequest) (providers.FeedbackResponse, error) {
	key := cache.BuildCacheKey(c.inner.Name(), c.model, req.SystemPrompt+"\n"+req.UserPrompt)
	if content, ok := c.cache.Get(key); ok {
		return providers.FeedbackResponse{Content: content}, nil
	}
	resp, err := c.inner.Generate(ctx, req)
	if err != nil {
		return resp, err
	}
	if err := c.cache.Put(key, resp.Content); err != nil {
		slog.Debug("caching feedback response failed", "err", err)
	}
	return resp, nil
}
