package render

import (
	"bytes"
	"strings"
	"testing"

	"resumatch/internal/types"
)

func TestPDF(t *testing.T) {
	doc := types.RevisedResume{
		Original:    "Python developer.\n5 years of backend work.",
		AddedSkills: []string{"aws", "docker"},
	}

	out, err := PDF(doc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !bytes.HasPrefix(out, []byte("%PDF-")) {
		t.Errorf("output should start with a PDF header, got %q", out[:min(len(out), 8)])
	}
	if !bytes.Contains(out, []byte("%%EOF")) {
		t.Error("output should contain a PDF trailer")
	}
}

func TestPDFEmptyDocument(t *testing.T) {
	out, err := PDF(types.RevisedResume{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out) == 0 {
		t.Error("empty document should still render a valid PDF")
	}
}

func TestPDFCustomTitle(t *testing.T) {
	out, err := PDF(types.RevisedResume{Title: "Tailored CV", Original: "text"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// The document title is stored uncompressed in the PDF metadata.
	if !bytes.Contains(out, []byte("Tailored CV")) {
		t.Error("custom title should appear in PDF metadata")
	}
}

func TestStaticRevision(t *testing.T) {
	tests := []struct {
		name          string
		resumeText    string
		missingSkills []string
		contains      []string
		equals        string
	}{
		{
			name:          "appends missing skills section",
			resumeText:    "Python developer",
			missingSkills: []string{"aws", "docker"},
			contains:      []string{"Python developer", "Added Skills to Improve ATS Score:", "- aws", "- docker"},
		},
		{
			name:          "no missing skills returns original unchanged",
			resumeText:    "Complete resume",
			missingSkills: nil,
			equals:        "Complete resume",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := StaticRevision(tt.resumeText, tt.missingSkills)
			if tt.equals != "" && got != tt.equals {
				t.Fatalf("StaticRevision() = %q, expected %q", got, tt.equals)
			}
			for _, want := range tt.contains {
				if !strings.Contains(got, want) {
					t.Errorf("output missing %q:\n%s", want, got)
				}
			}
		})
	}
}
