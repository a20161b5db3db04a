package matcher

import (
	"context"
	"math"
	"strings"

	"resumatch/internal/errors"
)

// LexicalScore computes 100 * |resume ∩ job| / |job|, rounded to two
// decimals. An empty job skill set scores 0, never a division by zero.
func LexicalScore(resumeSkills, jobSkills []string) float64 {
	matched, _ := DiffSkills(resumeSkills, jobSkills)
	total := len(dedupe(jobSkills))
	if total == 0 {
		return 0
	}
	return roundScore(100 * float64(len(matched)) / float64(total))
}

// SemanticScore embeds both texts and returns 100 * cosine similarity,
// clamped to [0, 100] and rounded to two decimals. Embedding failures
// propagate to the caller.
func SemanticScore(ctx context.Context, embed EmbedFunc, resumeText, jobText string) (float64, error) {
	if strings.TrimSpace(jobText) == "" {
		return 0, nil
	}

	resumeVec, err := embed(ctx, resumeText)
	if err != nil {
		return 0, errors.NewAIError(errors.ErrCodeEmbeddingFailed, "failed to embed resume text", err)
	}
	jobVec, err := embed(ctx, jobText)
	if err != nil {
		return 0, errors.NewAIError(errors.ErrCodeEmbeddingFailed, "failed to embed job text", err)
	}

	return roundScore(clampScore(100 * CosineSimilarity(resumeVec, jobVec))), nil
}

// CosineSimilarity returns the cosine of the angle between a and b.
// Mismatched lengths or a zero-magnitude vector yield 0.
func CosineSimilarity(a, b []float64) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

func roundScore(score float64) float64 {
	return math.Round(score*100) / 100
}

func clampScore(score float64) float64 {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

func dedupe(skills []string) []string {
	out := make([]string, 0, len(skills))
	seen := make(map[string]struct{}, len(skills))
	for _, s := range skills {
		if _, dup := seen[s]; dup {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}
