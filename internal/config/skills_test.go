package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSkillVocabulary(t *testing.T) {
	tests := []struct {
		name     string
		skills   []string
		expected []string
	}{
		{
			name:     "normalizes to lowercase",
			skills:   []string{"Python", "AWS", "Docker"},
			expected: []string{"python", "aws", "docker"},
		},
		{
			name:     "trims whitespace and drops empties",
			skills:   []string{" python ", "", "  ", "git"},
			expected: []string{"python", "git"},
		},
		{
			name:     "deduplicates preserving order",
			skills:   []string{"python", "Python", "aws", "python"},
			expected: []string{"python", "aws"},
		},
		{
			name:     "empty input",
			skills:   nil,
			expected: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := NewSkillVocabulary(tt.skills)
			assert.Equal(t, tt.expected, v.Skills())
		})
	}
}

func TestSkillsReturnsCopy(t *testing.T) {
	v := NewSkillVocabulary([]string{"python", "aws"})

	got := v.Skills()
	got[0] = "mutated"

	assert.Equal(t, []string{"python", "aws"}, v.Skills())
}

func TestLoadSkillVocabulary(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "skills.txt")
	content := "# core skills\npython\nAWS\n\n  docker  \n# comment\ndata analysis\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	v, err := LoadSkillVocabulary(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"python", "aws", "docker", "data analysis"}, v.Skills())
	assert.Equal(t, path, v.Path())
}

func TestLoadSkillVocabularyMissingFile(t *testing.T) {
	_, err := LoadSkillVocabulary(filepath.Join(t.TempDir(), "missing.txt"))
	assert.Error(t, err)
}

func TestReloadPicksUpChanges(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "skills.txt")
	require.NoError(t, os.WriteFile(path, []byte("python\n"), 0o600))

	v, err := LoadSkillVocabulary(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"python"}, v.Skills())

	require.NoError(t, os.WriteFile(path, []byte("python\nkubernetes\n"), 0o600))
	require.NoError(t, v.Reload())

	assert.Equal(t, []string{"python", "kubernetes"}, v.Skills())
}

func TestReloadInlineVocabularyIsNoop(t *testing.T) {
	v := NewSkillVocabulary([]string{"python"})
	require.NoError(t, v.Reload())
	assert.Equal(t, []string{"python"}, v.Skills())
}

func TestNewVocabularyFromConfig(t *testing.T) {
	t.Run("inline skills", func(t *testing.T) {
		v, err := NewVocabularyFromConfig(MatcherConfig{Skills: []string{"Go", "Rust"}})
		require.NoError(t, err)
		assert.Equal(t, []string{"go", "rust"}, v.Skills())
	})

	t.Run("skills file takes precedence", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "skills.txt")
		require.NoError(t, os.WriteFile(path, []byte("terraform\n"), 0o600))

		v, err := NewVocabularyFromConfig(MatcherConfig{
			Skills:     []string{"ignored"},
			SkillsFile: path,
		})
		require.NoError(t, err)
		assert.Equal(t, []string{"terraform"}, v.Skills())
	})
}

func TestDefaultSkillsIsCopy(t *testing.T) {
	first := DefaultSkills()
	first[0] = "mutated"
	assert.Equal(t, "python", DefaultSkills()[0])
	assert.Len(t, DefaultSkills(), 20)
}
