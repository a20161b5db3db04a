package cli

import (
	"fmt"

	"resumatch/internal/config"

	"github.com/spf13/cobra"
)

var skillsCmd = &cobra.Command{
	Use:   "skills",
	Short: "List the skill vocabulary used for matching",
	Long: `List the skills the matcher looks for in resumes and job descriptions.
The vocabulary comes from the configuration (inline skills or a skills file);
without either, the built-in default vocabulary is shown.`,
	RunE: runSkills,
}

func runSkills(cmd *cobra.Command, args []string) error {
	cfg := getConfigFromContext(cmd.Context())

	vocab, err := config.NewVocabularyFromConfig(cfg.Matcher)
	if err != nil {
		return fmt.Errorf("failed to load skill vocabulary: %w", err)
	}

	skills := vocab.Skills()
	if path := vocab.Path(); path != "" {
		fmt.Printf("Skill vocabulary (%d skills from %s):\n", len(skills), path)
	} else {
		fmt.Printf("Skill vocabulary (%d skills):\n", len(skills))
	}
	for _, skill := range skills {
		fmt.Printf("  %s\n", skill)
	}
	return nil
}
