package formatters

import (
	"encoding/json"
	"fmt"
	"strings"

	"resumatch/internal/types"
)

// Formatter interface for different output formats
type Formatter interface {
	Format(data any) (string, error)
	SupportedType() string
}

// FormatterRegistry manages all available formatters
type FormatterRegistry struct {
	formatters map[string]map[string]Formatter // format -> type -> formatter
}

// NewFormatterRegistry creates a new formatter registry with default formatters
func NewFormatterRegistry() *FormatterRegistry {
	registry := &FormatterRegistry{
		formatters: make(map[string]map[string]Formatter),
	}

	// Register default formatters
	registry.RegisterFormatter("json", "any", &JSONFormatter{})
	registry.RegisterFormatter("text", "MatchReport", &MatchTextFormatter{})
	registry.RegisterFormatter("markdown", "MatchReport", &MatchMarkdownFormatter{})
	registry.RegisterFormatter("text", "RewriteReport", &RewriteTextFormatter{})
	registry.RegisterFormatter("markdown", "RewriteReport", &RewriteMarkdownFormatter{})

	return registry
}

// RegisterFormatter registers a new formatter for a specific format and data type
func (fr *FormatterRegistry) RegisterFormatter(format, dataType string, formatter Formatter) {
	if fr.formatters[format] == nil {
		fr.formatters[format] = make(map[string]Formatter)
	}
	fr.formatters[format][dataType] = formatter
}

// Format formats data using the appropriate formatter
func (fr *FormatterRegistry) Format(data any, format string) (string, error) {
	dataType := getDataType(data)

	// Try specific formatter first
	if formatters, exists := fr.formatters[format]; exists {
		if formatter, exists := formatters[dataType]; exists {
			return formatter.Format(data)
		}
		// Fall back to generic formatter
		if formatter, exists := formatters["any"]; exists {
			return formatter.Format(data)
		}
	}

	return "", fmt.Errorf("no formatter found for format '%s' and type '%s'", format, dataType)
}

// GetSupportedFormats returns all supported formats
func (fr *FormatterRegistry) GetSupportedFormats() []string {
	formats := make([]string, 0, len(fr.formatters))
	for format := range fr.formatters {
		formats = append(formats, format)
	}
	return formats
}

func getDataType(data any) string {
	switch data.(type) {
	case types.MatchReport:
		return "MatchReport"
	case types.RewriteReport:
		return "RewriteReport"
	default:
		return "any"
	}
}

// JSONFormatter handles JSON formatting for any data type
type JSONFormatter struct{}

func (jf *JSONFormatter) Format(data any) (string, error) {
	jsonData, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return "", err
	}
	return string(jsonData), nil
}

func (jf *JSONFormatter) SupportedType() string {
	return "any"
}

func writeSkillList(output *strings.Builder, label string, skills []string) {
	if len(skills) == 0 {
		return
	}
	output.WriteString(label)
	output.WriteString("\n")
	for _, skill := range skills {
		output.WriteString(fmt.Sprintf("- %s\n", skill))
	}
	output.WriteString("\n")
}

// MatchTextFormatter handles text formatting for match reports
type MatchTextFormatter struct{}

func (mtf *MatchTextFormatter) Format(data any) (string, error) {
	result, ok := data.(types.MatchReport)
	if !ok {
		return "", fmt.Errorf("expected MatchReport, got %T", data)
	}

	var output strings.Builder

	output.WriteString("=== MATCH REPORT ===\n\n")
	output.WriteString(fmt.Sprintf("Strategy: %s\n", result.Strategy))
	output.WriteString(fmt.Sprintf("Score: %.2f/100\n\n", result.Score))

	if result.Warning != "" {
		output.WriteString("Warning: ")
		output.WriteString(result.Warning)
		output.WriteString("\n\n")
	}

	writeSkillList(&output, "Matched Skills:", result.Matched)
	writeSkillList(&output, "Missing Skills:", result.Missing)
	writeSkillList(&output, "Resume Skills:", result.ResumeSkills)
	writeSkillList(&output, "Job Skills:", result.JobSkills)
	writeSkillList(&output, "Suggested Companies:", result.Companies)

	return output.String(), nil
}

func (mtf *MatchTextFormatter) SupportedType() string {
	return "MatchReport"
}

// MatchMarkdownFormatter handles markdown formatting for match reports
type MatchMarkdownFormatter struct{}

func (mmf *MatchMarkdownFormatter) Format(data any) (string, error) {
	result, ok := data.(types.MatchReport)
	if !ok {
		return "", fmt.Errorf("expected MatchReport, got %T", data)
	}

	var output strings.Builder

	output.WriteString("# Match Report\n\n")
	output.WriteString(fmt.Sprintf("**Strategy:** %s\n\n", result.Strategy))
	output.WriteString(fmt.Sprintf("**Score:** %.2f/100\n\n", result.Score))

	if result.Warning != "" {
		output.WriteString("> **Warning:** ")
		output.WriteString(result.Warning)
		output.WriteString("\n\n")
	}

	writeMarkdownSkillList(&output, "Matched Skills", result.Matched)
	writeMarkdownSkillList(&output, "Missing Skills", result.Missing)
	writeMarkdownSkillList(&output, "Resume Skills", result.ResumeSkills)
	writeMarkdownSkillList(&output, "Job Skills", result.JobSkills)
	writeMarkdownSkillList(&output, "Suggested Companies", result.Companies)

	return output.String(), nil
}

func writeMarkdownSkillList(output *strings.Builder, heading string, skills []string) {
	if len(skills) == 0 {
		return
	}
	output.WriteString("## ")
	output.WriteString(heading)
	output.WriteString("\n\n")
	for _, skill := range skills {
		output.WriteString(fmt.Sprintf("- %s\n", skill))
	}
	output.WriteString("\n")
}

func (mmf *MatchMarkdownFormatter) SupportedType() string {
	return "MatchReport"
}

// RewriteTextFormatter handles text formatting for rewrite reports
type RewriteTextFormatter struct{}

func (rtf *RewriteTextFormatter) Format(data any) (string, error) {
	result, ok := data.(types.RewriteReport)
	if !ok {
		return "", fmt.Errorf("expected RewriteReport, got %T", data)
	}

	var output strings.Builder

	output.WriteString("=== REWRITTEN RESUME ===\n\n")
	output.WriteString(result.RewrittenResume)
	output.WriteString("\n\n")

	if result.Notes != "" {
		output.WriteString("=== NOTES ===\n")
		output.WriteString(result.Notes)
		output.WriteString("\n\n")
	}

	output.WriteString("=== MATCH ANALYSIS ===\n")
	output.WriteString(fmt.Sprintf("Variant: %s\n", result.Variant))
	output.WriteString(fmt.Sprintf("Strategy: %s\n", result.Match.Strategy))
	output.WriteString(fmt.Sprintf("Score: %.2f/100\n\n", result.Match.Score))

	writeSkillList(&output, "Matched Skills:", result.Match.Matched)
	writeSkillList(&output, "Missing Skills:", result.Match.Missing)

	return output.String(), nil
}

func (rtf *RewriteTextFormatter) SupportedType() string {
	return "RewriteReport"
}

// RewriteMarkdownFormatter handles markdown formatting for rewrite reports
type RewriteMarkdownFormatter struct{}

func (rmf *RewriteMarkdownFormatter) Format(data any) (string, error) {
	result, ok := data.(types.RewriteReport)
	if !ok {
		return "", fmt.Errorf("expected RewriteReport, got %T", data)
	}

	var output strings.Builder

	output.WriteString("# Rewritten Resume\n\n")
	output.WriteString(result.RewrittenResume)
	output.WriteString("\n\n")

	if result.Notes != "" {
		output.WriteString("## Notes\n\n")
		output.WriteString(result.Notes)
		output.WriteString("\n\n")
	}

	output.WriteString("## Match Analysis\n\n")
	output.WriteString(fmt.Sprintf("**Variant:** %s\n\n", result.Variant))
	output.WriteString(fmt.Sprintf("**Strategy:** %s\n\n", result.Match.Strategy))
	output.WriteString(fmt.Sprintf("**Score:** %.2f/100\n\n", result.Match.Score))

	writeMarkdownSkillList(&output, "Matched Skills", result.Match.Matched)
	writeMarkdownSkillList(&output, "Missing Skills", result.Match.Missing)

	return output.String(), nil
}

func (rmf *RewriteMarkdownFormatter) SupportedType() string {
	return "RewriteReport"
}

// Global formatter registry
var GlobalRegistry = NewFormatterRegistry()
