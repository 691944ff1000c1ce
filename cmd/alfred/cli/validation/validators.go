// Package validation checks identifiers that arrive in hook payloads or
// SPEC front matter before they are logged or displayed.
// It imports nothing from this module so every package can use it.
package validation

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode"
)

// MaxIDLength bounds session and SPEC identifiers.
const MaxIDLength = 128

var specIDPattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9_-]*$`)

// ValidateSessionID rejects session IDs that could be mistaken for a path
// or that would break a log line: separators, control characters, and
// overlong values.
func ValidateSessionID(id string) error {
	switch {
	case id == "":
		return errors.New("session ID is empty")
	case len(id) > MaxIDLength:
		return fmt.Errorf("session ID is %d bytes, limit is %d", len(id), MaxIDLength)
	case strings.ContainsAny(id, `/\`):
		return fmt.Errorf("session ID %q contains a path separator", id)
	case strings.ContainsFunc(id, unicode.IsControl):
		return fmt.Errorf("session ID %q contains a control character", id)
	}
	return nil
}

// ValidateSpecID checks a SPEC identifier such as "AUTH-001" or
// "SPEC-AUTH-001": letters, digits, underscores and hyphens, starting with
// a letter or digit.
func ValidateSpecID(id string) error {
	if id == "" {
		return errors.New("SPEC ID is empty")
	}
	if len(id) > MaxIDLength {
		return fmt.Errorf("SPEC ID is %d bytes, limit is %d", len(id), MaxIDLength)
	}
	if !specIDPattern.MatchString(id) {
		return fmt.Errorf("SPEC ID %q may only contain letters, digits, '_' and '-'", id)
	}
	return nil
}
