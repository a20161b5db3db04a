package config

import (
	"bufio"
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"

	"resumatch/internal/errors"
)

// defaultSkills is the built-in vocabulary used when no skills are configured.
var defaultSkills = []string{
	"python", "java", "sql", "aws", "docker", "react", "node", "flask",
	"django", "fastapi", "ml", "ai", "data analysis", "linux", "git",
	"tensorflow", "pytorch", "cloud", "api", "mongodb",
}

// DefaultSkills returns a copy of the built-in skill vocabulary.
func DefaultSkills() []string {
	out := make([]string, len(defaultSkills))
	copy(out, defaultSkills)
	return out
}

// SkillVocabulary holds the active skill keyword list. When backed by a file
// it can be reloaded at runtime, so reads go through a lock.
type SkillVocabulary struct {
	mu     sync.RWMutex
	skills []string
	path   string
}

// NewSkillVocabulary creates a vocabulary from an inline skill list.
func NewSkillVocabulary(skills []string) *SkillVocabulary {
	return &SkillVocabulary{skills: normalizeSkills(skills)}
}

// LoadSkillVocabulary creates a vocabulary backed by a file with one skill
// per line. Blank lines and lines starting with '#' are ignored.
func LoadSkillVocabulary(path string) (*SkillVocabulary, error) {
	v := &SkillVocabulary{path: path}
	if err := v.Reload(); err != nil {
		return nil, err
	}
	return v, nil
}

// NewVocabularyFromConfig builds the vocabulary the matcher configuration
// describes: the skills file when set, the inline list otherwise.
func NewVocabularyFromConfig(cfg MatcherConfig) (*SkillVocabulary, error) {
	if cfg.SkillsFile != "" {
		return LoadSkillVocabulary(cfg.SkillsFile)
	}
	return NewSkillVocabulary(cfg.Skills), nil
}

// Skills returns a copy of the current vocabulary.
func (v *SkillVocabulary) Skills() []string {
	v.mu.RLock()
	defer v.mu.RUnlock()
	out := make([]string, len(v.skills))
	copy(out, v.skills)
	return out
}

// Path returns the backing file path, empty for inline vocabularies.
func (v *SkillVocabulary) Path() string {
	return v.path
}

// Reload re-reads the backing file. It is a no-op for inline vocabularies.
func (v *SkillVocabulary) Reload() error {
	if v.path == "" {
		return nil
	}

	file, err := os.Open(v.path)
	if err != nil {
		return errors.NewIOError(errors.ErrCodeFileNotReadable, "failed to open skills file", err).
			WithContext("path", v.path)
	}
	defer file.Close()

	var skills []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		skills = append(skills, line)
	}
	if err := scanner.Err(); err != nil {
		return errors.NewIOError(errors.ErrCodeFileNotReadable, "failed to read skills file", err).
			WithContext("path", v.path)
	}

	v.mu.Lock()
	v.skills = normalizeSkills(skills)
	v.mu.Unlock()
	return nil
}

// Watch reloads the vocabulary whenever the backing file changes. The
// watcher runs until ctx is cancelled. Watching an inline vocabulary is a
// no-op.
func (v *SkillVocabulary) Watch(ctx context.Context, logger *errors.Logger) error {
	if v.path == "" {
		return nil
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.NewIOError("WATCHER_FAILED", "failed to create skills file watcher", err)
	}

	// Watch the directory: editors and config tools typically replace the
	// file on save, which drops a watch on the file itself.
	if err := watcher.Add(filepath.Dir(v.path)); err != nil {
		watcher.Close()
		return errors.NewIOError("WATCHER_FAILED", "failed to watch skills file directory", err).
			WithContext("path", v.path)
	}

	go func() {
		defer watcher.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != filepath.Clean(v.path) {
					continue
				}
				if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
					continue
				}
				if err := v.Reload(); err != nil {
					logger.LogError(err, "Failed to reload skill vocabulary", "path", v.path)
					continue
				}
				logger.Info("Skill vocabulary reloaded", "path", v.path, "skillCount", len(v.Skills()))
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				logger.Warn("Skill vocabulary watcher error", "error", err.Error())
			}
		}
	}()

	logger.Info("Watching skill vocabulary file", "path", v.path)
	return nil
}

// normalizeSkills lowercases, trims, and deduplicates while preserving order.
func normalizeSkills(skills []string) []string {
	out := make([]string, 0, len(skills))
	seen := make(map[string]struct{}, len(skills))
	for _, s := range skills {
		s = strings.ToLower(strings.TrimSpace(s))
		if s == "" {
			continue
		}
		if _, dup := seen[s]; dup {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}
