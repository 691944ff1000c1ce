package project

import (
	"bytes"
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"gopkg.in/yaml.v3"

	"github.com/moai-adk/alfred-hooks/cmd/alfred/cli/paths"
	"github.com/moai-adk/alfred-hooks/cmd/alfred/cli/validation"
)

const (
	frontMatterDelimiter = "---"
	completedMarker      = "status: completed"
)

// SpecProgress is the completion ratio of the SPEC documents in a project.
type SpecProgress struct {
	Completed  int `json:"completed"`
	Total      int `json:"total"`
	Percentage int `json:"percentage"`
}

// NewSpecProgress computes the floor percentage; it is 0 when total is 0.
func NewSpecProgress(completed, total int) SpecProgress {
	p := SpecProgress{Completed: completed, Total: total}
	if total > 0 {
		p.Percentage = completed * 100 / total
	}
	return p
}

// SpecSummary describes one SPEC folder for display.
type SpecSummary struct {
	ID        string `json:"id"`
	Title     string `json:"title,omitempty"`
	Status    string `json:"status,omitempty"`
	Version   string `json:"version,omitempty"`
	Completed bool   `json:"completed"`
}

type specFrontMatter struct {
	ID      string `yaml:"id"`
	Title   string `yaml:"title"`
	Status  string `yaml:"status"`
	Version string `yaml:"version"`
}

// CountSpecs counts the SPEC-* folders under .moai/specs that contain a
// spec.md, and how many of those are marked completed in their front matter.
// A missing specs directory yields the zero SpecProgress.
func CountSpecs(dir string) SpecProgress {
	completed, total := 0, 0
	for _, specDir := range specDirs(dir) {
		total++
		content, err := readSpec(dir, specDir)
		if err == nil && isCompleted(content) {
			completed++
		}
	}
	return NewSpecProgress(completed, total)
}

// ListSpecs returns one summary per counted SPEC folder, ordered by name.
// Front matter is decoded for display only; an id that is not path-safe is
// ignored. Completed follows the same rule as CountSpecs so the two always
// agree.
func ListSpecs(dir string) []SpecSummary {
	var specs []SpecSummary
	for _, specDir := range specDirs(dir) {
		summary := SpecSummary{ID: specDir}
		content, err := readSpec(dir, specDir)
		if err == nil {
			summary.Completed = isCompleted(content)
			if fm, ok := frontMatter(content); ok {
				var meta specFrontMatter
				if yaml.Unmarshal([]byte(fm), &meta) == nil {
					if validation.ValidateSpecID(meta.ID) == nil {
						summary.ID = meta.ID
					}
					summary.Title = meta.Title
					summary.Status = meta.Status
					summary.Version = meta.Version
				}
			}
		}
		specs = append(specs, summary)
	}
	return specs
}

// specDirs returns the names of SPEC-* directories under .moai/specs that
// contain a spec.md.
func specDirs(dir string) []string {
	entries, err := os.ReadDir(paths.Resolve(dir, paths.MoaiSpecsDir))
	if err != nil {
		return nil
	}

	var names []string
	for _, entry := range entries {
		name := entry.Name()
		if !strings.HasPrefix(name, paths.SpecDirPrefix) {
			continue
		}
		rel := paths.MoaiSpecsDir + "/" + name
		if !paths.IsDir(dir, rel) || !paths.Exists(dir, rel+"/"+paths.SpecFileName) {
			continue
		}
		names = append(names, name)
	}
	return names
}

func readSpec(dir, specDir string) (string, error) {
	data, err := os.ReadFile(paths.Resolve(dir, paths.MoaiSpecsDir+"/"+specDir+"/"+paths.SpecFileName))
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", specDir, err)
	}
	if !utf8.Valid(data) {
		return "", fmt.Errorf("reading %s: not valid UTF-8", specDir)
	}
	return string(bytes.ReplaceAll(data, []byte("\r\n"), []byte("\n"))), nil
}

// frontMatter returns the text between the opening "---" and the next "---".
func frontMatter(content string) (string, bool) {
	if !strings.HasPrefix(content, frontMatterDelimiter) {
		return "", false
	}
	rest := content[len(frontMatterDelimiter):]
	end := strings.Index(rest, frontMatterDelimiter)
	if end < 0 {
		return "", false
	}
	return rest[:end], true
}

// isCompleted applies the literal marker match inside the front matter.
// Text after the closing delimiter is never inspected.
func isCompleted(content string) bool {
	fm, ok := frontMatter(content)
	return ok && strings.Contains(fm, completedMarker)
}
