// Package jitcontext recommends project documents relevant to a prompt,
// so only what the current request needs is loaded into the session.
package jitcontext

import (
	"strings"

	"github.com/moai-adk/alfred-hooks/cmd/alfred/cli/paths"
)

// Rule maps a trigger substring to candidate paths relative to the project root.
type Rule struct {
	Trigger string
	Paths   []string
}

// DefaultRules is the built-in trigger table, evaluated in order.
var DefaultRules = []Rule{
	{Trigger: "/alfred:1-plan", Paths: []string{paths.MoaiMemoryDir + "/spec-metadata.md"}},
	{Trigger: "/alfred:2-run", Paths: []string{paths.MoaiMemoryDir + "/development-guide.md"}},
	{Trigger: "test", Paths: []string{"tests/"}},
}

// Recommend returns the candidate paths of every rule in DefaultRules
// whose trigger occurs in prompt.
func Recommend(prompt, dir string) []string {
	return RecommendWith(DefaultRules, prompt, dir)
}

// RecommendWith matches each rule's trigger case-insensitively against
// prompt and returns its candidate paths that exist under dir, in rule
// order. Results are not deduplicated; missing candidates are skipped.
func RecommendWith(rules []Rule, prompt, dir string) []string {
	lower := strings.ToLower(prompt)
	files := []string{}
	for _, rule := range rules {
		if !strings.Contains(lower, strings.ToLower(rule.Trigger)) {
			continue
		}
		for _, p := range rule.Paths {
			if paths.Exists(dir, p) {
				files = append(files, p)
			}
		}
	}
	return files
}
