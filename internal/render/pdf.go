// Package render produces the revised-resume PDF handed back to users after
// a rewrite.
package render

import (
	"bytes"
	"strings"

	"github.com/go-pdf/fpdf"

	"resumatch/internal/errors"
	"resumatch/internal/types"
)

const (
	defaultTitle      = "Revised Resume"
	originalHeading   = "Original Resume Content:"
	addedSkillsLabel  = "Added Skills to Improve ATS Score:"
	bodyLineHeight    = 6.0
	headingLineHeight = 8.0
)

// PDF renders the revised resume as an A4 document: a centered title, the
// original resume content, and the list of skills added to close the gap
// against the job description.
func PDF(doc types.RevisedResume) ([]byte, error) {
	title := doc.Title
	if title == "" {
		title = defaultTitle
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(title, true)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 12, title, "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, headingLineHeight, originalHeading, "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
	for _, line := range strings.Split(doc.Original, "\n") {
		pdf.MultiCell(0, bodyLineHeight, line, "", "L", false)
	}

	if len(doc.AddedSkills) > 0 {
		pdf.Ln(4)
		pdf.SetFont("Helvetica", "B", 12)
		pdf.CellFormat(0, headingLineHeight, addedSkillsLabel, "", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 11)
		for _, skill := range doc.AddedSkills {
			pdf.CellFormat(0, bodyLineHeight, "- "+skill, "", 1, "L", false, 0, "")
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, errors.NewInternalError("PDF_RENDER_FAILED", "failed to render revised resume PDF", err)
	}
	return buf.Bytes(), nil
}

// StaticRevision builds the non-generative rewrite: the original resume text
// followed by a section naming the skills the job asks for that the resume
// lacks. It mirrors the PDF layout so text and PDF outputs stay consistent.
func StaticRevision(resumeText string, missingSkills []string) string {
	if len(missingSkills) == 0 {
		return resumeText
	}

	var sb strings.Builder
	sb.WriteString(resumeText)
	sb.WriteString("\n\n")
	sb.WriteString(addedSkillsLabel)
	sb.WriteString("\n")
	for _, skill := range missingSkills {
		sb.WriteString("- ")
		sb.WriteString(skill)
		sb.WriteString("\n")
	}
	return strings.TrimRight(sb.String(), "\n")
}
