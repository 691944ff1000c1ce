// Package project inspects a working directory: its primary language, its
// git state and the completion of the SPEC documents under .moai/specs.
//
// Every inspector is read-only and absorbs its own failures, returning an
// empty or zero value instead of an error.
package project

import (
	"os"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/moai-adk/alfred-hooks/cmd/alfred/cli/paths"
	"github.com/moai-adk/alfred-hooks/cmd/alfred/cli/settings"
)

// UnknownLanguage is returned when no marker matches.
const UnknownLanguage = "Unknown Language"

type languageMarker struct {
	name     string
	language string
}

// languageMarkers is checked in order; the first existing entry wins.
var languageMarkers = []languageMarker{
	{"pyproject.toml", "python"},
	{"tsconfig.json", "typescript"},
	{"package.json", "javascript"},
	{"pom.xml", "java"},
	{"go.mod", "go"},
	{"Cargo.toml", "rust"},
	{"pubspec.yaml", "dart"},
	{"Package.swift", "swift"},
	{"build.gradle.kts", "kotlin"},
	{"composer.json", "php"},
	{"Gemfile", "ruby"},
	{"mix.exs", "elixir"},
	{"build.sbt", "scala"},
	{"project.clj", "clojure"},
	{"CMakeLists.txt", "cpp"},
	{"Makefile", "c"},
}

// languageGlobs run after every marker has missed.
var languageGlobs = []languageMarker{
	{"*.csproj", "csharp"},
	{"*.cabal", "haskell"},
	{"*.sh", "shell"},
	{"*.lua", "lua"},
}

// DetectLanguage guesses the primary language of the project in dir from
// well-known marker files. A package.json next to a tsconfig.json is
// reported as typescript.
func DetectLanguage(dir string) string {
	for _, m := range languageMarkers {
		if !paths.Exists(dir, m.name) {
			continue
		}
		if m.name == "package.json" && paths.Exists(dir, "tsconfig.json") {
			return "typescript"
		}
		return m.language
	}

	fsys := os.DirFS(paths.Resolve(dir, ""))
	for _, g := range languageGlobs {
		matches, err := doublestar.Glob(fsys, g.name)
		if err == nil && len(matches) > 0 {
			return g.language
		}
	}

	return UnknownLanguage
}

// Language returns the language declared in .moai/config.json, falling back
// to DetectLanguage when none is declared or the file cannot be read.
func Language(dir string) string {
	if lang := settings.DeclaredLanguage(dir); lang != "" {
		return lang
	}
	return DetectLanguage(dir)
}
