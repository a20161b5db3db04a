package pipeline

import (
	"context"
	"strings"

	"resumatch/internal/ai"
	"resumatch/internal/config"
	"resumatch/internal/errors"
	"resumatch/internal/fetch"
	"resumatch/internal/matcher"
	"resumatch/internal/render"
	"resumatch/internal/types"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
)

// Rewrite variants
const (
	VariantGenerative = "generative"
	VariantStatic     = "static"
)

// RewriteFunc performs a generative resume rewrite. Callers wire in the AI
// provider's RewriteResume; a nil RewriteFunc makes Rewrite fall back to the
// static variant.
type RewriteFunc func(ctx context.Context, input types.RewriteResumeInput) (types.RewriteResumeOutput, *ai.TokenUsage, error)

// Pipeline orchestrates fetching, condensing, matching, and rewriting.
type Pipeline struct {
	matcher *matcher.Matcher
	fetcher *fetch.Fetcher
	cfg     *config.Config
	logger  *errors.Logger
}

// New creates a pipeline over the given vocabulary. embed may be nil when
// only the lexical strategy is in use.
func New(cfg *config.Config, vocab *config.SkillVocabulary, embed matcher.EmbedFunc, logger *errors.Logger) *Pipeline {
	m := matcher.New(vocab.Skills, cfg.Matcher.Strategy, embed)
	f := fetch.New(fetch.Options{
		Timeout:     cfg.Fetch.Timeout,
		UserAgent:   cfg.Fetch.UserAgent,
		MaxBodySize: cfg.Fetch.MaxBodySize,
	})

	return &Pipeline{
		matcher: m,
		fetcher: f,
		cfg:     cfg,
		logger:  logger,
	}
}

// Analyze resolves the job text (fetching it when a URL is given), matches it
// against the resume, and builds the full report. A failed page fetch is not
// fatal: the report carries a warning and scores against empty job text.
func (p *Pipeline) Analyze(ctx context.Context, input types.AnalyzeInput) (types.MatchReport, error) {
	tracer := otel.Tracer("resumatch.pipeline")
	ctx, span := tracer.Start(ctx, "pipeline.analyze")
	defer span.End()

	if strings.TrimSpace(input.ResumeText) == "" {
		err := errors.NewValidationError(errors.ErrCodeInvalidRequest, "resume text is required", nil)
		span.RecordError(err)
		return types.MatchReport{}, err
	}

	jobText := input.JobText
	var warning string

	if jobText == "" && input.JobURL != "" {
		span.SetAttributes(attribute.String("job.url", input.JobURL))

		fetched, err := p.fetcher.PageText(ctx, input.JobURL)
		if err != nil {
			if !fetch.IsFetchError(err) {
				span.RecordError(err)
				return types.MatchReport{}, err
			}
			// Fetch failures degrade to an empty job description so the
			// caller still gets a report.
			warning = "failed to fetch job posting: " + err.Error()
			p.logger.Warn("Job posting fetch failed, scoring against empty job text",
				"url", input.JobURL,
				"error", err.Error())
		} else {
			jobText = matcher.CondenseText(fetched, p.cfg.Matcher.CondenseTopN)
		}
	}

	report, err := p.matcher.MatchWithStrategy(ctx, input.ResumeText, jobText, input.Strategy)
	if err != nil {
		span.RecordError(err)
		return types.MatchReport{}, err
	}

	report.Warning = warning
	if p.cfg.Matcher.SuggestCompanies {
		// Suggestions follow the skills the candidate actually has in
		// common with the job, not everything the job asks for.
		report.Companies = matcher.SuggestCompanies(report.Matched)
	}

	span.SetAttributes(
		attribute.String("match.strategy", report.Strategy),
		attribute.Float64("match.score", report.Score),
		attribute.Int("match.matched", len(report.Matched)),
		attribute.Int("match.missing", len(report.Missing)),
	)

	return report, nil
}

// Rewrite runs Analyze and then produces a revised resume. The generative
// variant calls the provided RewriteFunc; the static variant (also the
// fallback when no RewriteFunc is available) appends the missing skills to
// the original resume.
func (p *Pipeline) Rewrite(ctx context.Context, input types.AnalyzeInput, variant string, rewriteFn RewriteFunc) (types.RewriteReport, *ai.TokenUsage, error) {
	tracer := otel.Tracer("resumatch.pipeline")
	ctx, span := tracer.Start(ctx, "pipeline.rewrite")
	defer span.End()

	if variant == "" {
		variant = p.cfg.Rewrite.Variant
	}
	if variant != VariantGenerative && variant != VariantStatic {
		err := errors.NewValidationError(errors.ErrCodeInvalidRequest,
			"rewrite variant must be 'generative' or 'static'", nil).
			WithContext("variant", variant)
		span.RecordError(err)
		return types.RewriteReport{}, nil, err
	}

	match, err := p.Analyze(ctx, input)
	if err != nil {
		span.RecordError(err)
		return types.RewriteReport{}, nil, err
	}

	if variant == VariantGenerative && rewriteFn == nil {
		p.logger.Info("No rewrite provider available, falling back to static variant")
		variant = VariantStatic
	}

	report := types.RewriteReport{
		Match:   match,
		Variant: variant,
	}

	span.SetAttributes(
		attribute.String("rewrite.variant", variant),
		attribute.Int("rewrite.missing_skills", len(match.Missing)),
	)

	if variant == VariantStatic {
		report.RewrittenResume = render.StaticRevision(input.ResumeText, match.Missing)
		if len(match.Missing) == 0 {
			report.Notes = "No missing skills detected; resume returned unchanged."
		}
		return report, nil, nil
	}

	output, tokenUsage, err := rewriteFn(ctx, types.RewriteResumeInput{
		ResumeText:    input.ResumeText,
		JobText:       input.JobText,
		MissingSkills: match.Missing,
	})
	if err != nil {
		span.RecordError(err)
		return types.RewriteReport{}, nil, err
	}

	report.RewrittenResume = output.RewrittenResume
	report.Notes = output.Notes
	return report, tokenUsage, nil
}
