// Package paths holds the project-relative locations the hooks read from.
// Every path here is relative to the working directory carried in the
// hook payload, never to the process working directory.
package paths

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
)

// Directory constants
const (
	MoaiDir        = ".moai"
	MoaiLogsDir    = ".moai/logs"
	MoaiSpecsDir   = ".moai/specs"
	MoaiMemoryDir  = ".moai/memory"
	ConfigFile     = ".moai/config.json"
	CheckpointsLog = ".moai/checkpoints.log"
)

// File names
const (
	LogFileName  = "hooks.log"
	SpecFileName = "spec.md"
)

// SpecDirPrefix is the name prefix of a SPEC folder under .moai/specs.
const SpecDirPrefix = "SPEC-"

// CheckpointBranchPrefix marks branches created as checkpoints before a risky operation.
const CheckpointBranchPrefix = "before-"

// DefaultDir is used when a payload carries no working directory.
const DefaultDir = "."

// Resolve joins relPath onto dir. Absolute paths are returned unchanged.
// An empty dir resolves against DefaultDir.
func Resolve(dir, relPath string) string {
	if filepath.IsAbs(relPath) {
		return relPath
	}
	if dir == "" {
		dir = DefaultDir
	}
	return filepath.Join(dir, relPath)
}

// Exists reports whether relPath exists under dir as either a file or a directory.
// Stat errors other than not-exist are treated as absence.
func Exists(dir, relPath string) bool {
	_, err := os.Stat(Resolve(dir, relPath))
	return err == nil
}

// IsDir reports whether relPath under dir is an existing directory.
func IsDir(dir, relPath string) bool {
	info, err := os.Stat(Resolve(dir, relPath))
	return err == nil && info.IsDir()
}

// IsNotExist reports whether err indicates a missing file or directory.
func IsNotExist(err error) bool {
	return errors.Is(err, fs.ErrNotExist)
}
