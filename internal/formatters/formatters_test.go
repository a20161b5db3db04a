package formatters

import (
	"encoding/json"
	"strings"
	"testing"

	"resumatch/internal/types"
)

func sampleMatchReport() types.MatchReport {
	return types.MatchReport{
		MatchResult: types.MatchResult{
			Matched: []string{"docker", "python"},
			Missing: []string{"aws"},
			Score:   66.67,
		},
		Strategy:     "lexical",
		ResumeSkills: []string{"python", "docker"},
		JobSkills:    []string{"python", "aws", "docker"},
	}
}

func TestFormatMatchReport(t *testing.T) {
	tests := []struct {
		name     string
		format   string
		contains []string
	}{
		{
			name:   "text format",
			format: "text",
			contains: []string{
				"=== MATCH REPORT ===",
				"Strategy: lexical",
				"Score: 66.67/100",
				"Matched Skills:",
				"- docker",
				"Missing Skills:",
				"- aws",
			},
		},
		{
			name:   "markdown format",
			format: "markdown",
			contains: []string{
				"# Match Report",
				"**Score:** 66.67/100",
				"## Missing Skills",
				"- aws",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			output, err := GlobalRegistry.Format(sampleMatchReport(), tt.format)
			if err != nil {
				t.Fatalf("Format() error = %v", err)
			}
			for _, want := range tt.contains {
				if !strings.Contains(output, want) {
					t.Errorf("output missing %q:\n%s", want, output)
				}
			}
		})
	}
}

func TestFormatMatchReportJSON(t *testing.T) {
	output, err := GlobalRegistry.Format(sampleMatchReport(), "json")
	if err != nil {
		t.Fatalf("Format() error = %v", err)
	}

	var decoded types.MatchReport
	if err := json.Unmarshal([]byte(output), &decoded); err != nil {
		t.Fatalf("JSON output should round-trip: %v", err)
	}
	if decoded.Score != 66.67 {
		t.Errorf("Score = %v, want 66.67", decoded.Score)
	}
	if decoded.Strategy != "lexical" {
		t.Errorf("Strategy = %q, want lexical", decoded.Strategy)
	}
}

func TestFormatMatchReportWithWarning(t *testing.T) {
	report := sampleMatchReport()
	report.Warning = "failed to fetch job posting"

	output, err := GlobalRegistry.Format(report, "text")
	if err != nil {
		t.Fatalf("Format() error = %v", err)
	}
	if !strings.Contains(output, "Warning: failed to fetch job posting") {
		t.Errorf("output missing warning:\n%s", output)
	}
}

func TestFormatRewriteReport(t *testing.T) {
	report := types.RewriteReport{
		Match:           sampleMatchReport(),
		RewrittenResume: "Revised resume body",
		Notes:           "aws left as a gap",
		Variant:         "generative",
	}

	t.Run("text", func(t *testing.T) {
		output, err := GlobalRegistry.Format(report, "text")
		if err != nil {
			t.Fatalf("Format() error = %v", err)
		}
		for _, want := range []string{"=== REWRITTEN RESUME ===", "Revised resume body", "=== NOTES ===", "Variant: generative"} {
			if !strings.Contains(output, want) {
				t.Errorf("output missing %q:\n%s", want, output)
			}
		}
	})

	t.Run("markdown", func(t *testing.T) {
		output, err := GlobalRegistry.Format(report, "markdown")
		if err != nil {
			t.Fatalf("Format() error = %v", err)
		}
		for _, want := range []string{"# Rewritten Resume", "## Notes", "**Variant:** generative"} {
			if !strings.Contains(output, want) {
				t.Errorf("output missing %q:\n%s", want, output)
			}
		}
	})
}

func TestFormatUnknownFormat(t *testing.T) {
	_, err := GlobalRegistry.Format(sampleMatchReport(), "xml")
	if err == nil {
		t.Fatal("expected error for unknown format")
	}
}

func TestGetSupportedFormats(t *testing.T) {
	formats := GlobalRegistry.GetSupportedFormats()
	if len(formats) != 3 {
		t.Errorf("expected 3 formats, got %v", formats)
	}
}
