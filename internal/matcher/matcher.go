// Package matcher implements the core resume/job comparison logic: skill
// extraction against a keyword vocabulary, set diffing, and scoring via a
// lexical or semantic strategy.
package matcher

import (
	"context"
	"sort"
	"strings"

	"resumatch/internal/errors"
	"resumatch/internal/types"
)

// Scoring strategies selectable via configuration.
const (
	StrategyLexical  = "lexical"
	StrategySemantic = "semantic"
)

// EmbedFunc turns a text into an embedding vector. The semantic strategy
// receives one by injection; the lexical strategy never calls it.
type EmbedFunc func(ctx context.Context, text string) ([]float64, error)

// VocabFunc returns the current skill vocabulary. Indirection keeps the
// matcher current when the vocabulary file is hot-reloaded.
type VocabFunc func() []string

// Matcher compares resume text against job text using a fixed strategy.
type Matcher struct {
	vocab    VocabFunc
	strategy string
	embed    EmbedFunc
}

// New creates a Matcher. embed may be nil for the lexical strategy.
func New(vocab VocabFunc, strategy string, embed EmbedFunc) *Matcher {
	if strategy == "" {
		strategy = StrategyLexical
	}
	return &Matcher{vocab: vocab, strategy: strategy, embed: embed}
}

// Strategy returns the matcher's configured scoring strategy.
func (m *Matcher) Strategy() string {
	return m.strategy
}

// Match extracts skills from both texts, diffs them, and scores the pair
// with the configured strategy. The returned report carries the extracted
// skill lists so callers can render them without re-scanning the texts.
func (m *Matcher) Match(ctx context.Context, resumeText, jobText string) (types.MatchReport, error) {
	return m.MatchWithStrategy(ctx, resumeText, jobText, m.strategy)
}

// MatchWithStrategy is Match with a per-call strategy override. An empty
// override falls back to the configured strategy.
func (m *Matcher) MatchWithStrategy(ctx context.Context, resumeText, jobText, strategy string) (types.MatchReport, error) {
	if strategy == "" {
		strategy = m.strategy
	}

	vocab := m.vocab()
	resumeSkills := ExtractSkills(resumeText, vocab)
	jobSkills := ExtractSkills(jobText, vocab)
	matched, missing := DiffSkills(resumeSkills, jobSkills)

	report := types.MatchReport{
		MatchResult: types.MatchResult{
			Matched: matched,
			Missing: missing,
		},
		Strategy:     strategy,
		ResumeSkills: resumeSkills,
		JobSkills:    jobSkills,
	}

	switch strategy {
	case StrategyLexical:
		report.Score = LexicalScore(resumeSkills, jobSkills)
	case StrategySemantic:
		if m.embed == nil {
			return report, errors.NewConfigError(errors.ErrCodeInvalidConfig,
				"semantic strategy requires an embedding provider", nil)
		}
		score, err := SemanticScore(ctx, m.embed, resumeText, jobText)
		if err != nil {
			return report, err
		}
		report.Score = score
	default:
		return report, errors.NewConfigError(errors.ErrCodeInvalidConfig,
			"unknown scoring strategy: "+strategy, nil)
	}

	return report, nil
}

// ExtractSkills returns every vocabulary keyword contained in text, matched
// case-insensitively by substring, in vocabulary order without duplicates.
// Substring containment means "java" is found inside "javascript"; keeping
// the vocabulary precise is the caller's lever against false positives.
func ExtractSkills(text string, vocab []string) []string {
	lowered := strings.ToLower(text)
	found := make([]string, 0, len(vocab))
	seen := make(map[string]struct{}, len(vocab))
	for _, skill := range vocab {
		skill = strings.ToLower(strings.TrimSpace(skill))
		if skill == "" {
			continue
		}
		if _, dup := seen[skill]; dup {
			continue
		}
		if strings.Contains(lowered, skill) {
			found = append(found, skill)
			seen[skill] = struct{}{}
		}
	}
	return found
}

// DiffSkills splits the job's skills into those also present in the resume
// (matched) and those absent from it (missing). Together the two slices
// partition jobSkills. Both are sorted alphabetically.
func DiffSkills(resumeSkills, jobSkills []string) (matched, missing []string) {
	matched = make([]string, 0, len(jobSkills))
	missing = make([]string, 0, len(jobSkills))

	inResume := make(map[string]struct{}, len(resumeSkills))
	for _, s := range resumeSkills {
		inResume[s] = struct{}{}
	}

	seen := make(map[string]struct{}, len(jobSkills))
	for _, s := range jobSkills {
		if _, dup := seen[s]; dup {
			continue
		}
		seen[s] = struct{}{}
		if _, ok := inResume[s]; ok {
			matched = append(matched, s)
		} else {
			missing = append(missing, s)
		}
	}

	sort.Strings(matched)
	sort.Strings(missing)
	return matched, missing
}
