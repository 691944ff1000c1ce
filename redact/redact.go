// Package redact scrubs secrets from prompt text and tool arguments before
// they are written to the hook log.
package redact

import (
	"bytes"
	"encoding/json"
	"math"
	"regexp"
	"sort"
	"strings"
	"sync"

	"github.com/zricethezav/gitleaks/v8/detect"
)

// Placeholder replaces every detected secret.
const Placeholder = "REDACTED"

// secretPattern matches token-shaped runs that may be secrets.
var secretPattern = regexp.MustCompile(`[A-Za-z0-9/+_=-]{10,}`)

// entropyThreshold is the minimum Shannon entropy for a token-shaped run to
// be treated as a secret. API keys sit well above 5.0; words and
// identifiers sit below.
const entropyThreshold = 4.5

var (
	detector     *detect.Detector
	detectorOnce sync.Once
)

func getDetector() *detect.Detector {
	detectorOnce.Do(func() {
		d, err := detect.NewDetectorDefaultConfig()
		if err != nil {
			return
		}
		detector = d
	})
	return detector
}

type span struct{ start, end int }

// String replaces secrets in s with Placeholder. A run is a secret when
// either its entropy exceeds the threshold or a gitleaks rule matches it.
func String(s string) string {
	spans := entropySpans(s)
	spans = append(spans, gitleaksSpans(s)...)
	if len(spans) == 0 {
		return s
	}

	var b strings.Builder
	prev := 0
	for _, sp := range mergeSpans(spans) {
		b.WriteString(s[prev:sp.start])
		b.WriteString(Placeholder)
		prev = sp.end
	}
	b.WriteString(s[prev:])
	return b.String()
}

func entropySpans(s string) []span {
	var spans []span
	for _, loc := range secretPattern.FindAllStringIndex(s, -1) {
		if shannonEntropy(s[loc[0]:loc[1]]) > entropyThreshold {
			spans = append(spans, span{loc[0], loc[1]})
		}
	}
	return spans
}

func gitleaksSpans(s string) []span {
	d := getDetector()
	if d == nil {
		return nil
	}

	var spans []span
	for _, f := range d.DetectString(s) {
		if f.Secret == "" {
			continue
		}
		from := 0
		for {
			idx := strings.Index(s[from:], f.Secret)
			if idx < 0 {
				break
			}
			start := from + idx
			spans = append(spans, span{start, start + len(f.Secret)})
			from = start + len(f.Secret)
		}
	}
	return spans
}

// mergeSpans sorts spans and joins overlapping or touching ones.
func mergeSpans(spans []span) []span {
	sort.Slice(spans, func(i, j int) bool {
		return spans[i].start < spans[j].start
	})
	merged := []span{spans[0]}
	for _, sp := range spans[1:] {
		last := &merged[len(merged)-1]
		if sp.start > last.end {
			merged = append(merged, sp)
			continue
		}
		if sp.end > last.end {
			last.end = sp.end
		}
	}
	return merged
}

// JSON redacts every string value inside a JSON document, such as the
// arguments of a tool call. Keys naming identifiers are left untouched.
// Input that is not valid JSON is scrubbed as plain text.
func JSON(raw []byte) []byte {
	if len(bytes.TrimSpace(raw)) == 0 {
		return raw
	}

	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return []byte(String(string(raw)))
	}

	redacted, changed := redactValue(v)
	if !changed {
		return raw
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(redacted); err != nil {
		return []byte(Placeholder)
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n"))
}

func redactValue(v any) (any, bool) {
	switch val := v.(type) {
	case map[string]any:
		changed := false
		for k, child := range val {
			if isIdentifierKey(k) {
				continue
			}
			if r, c := redactValue(child); c {
				val[k] = r
				changed = true
			}
		}
		return val, changed
	case []any:
		changed := false
		for i, child := range val {
			if r, c := redactValue(child); c {
				val[i] = r
				changed = true
			}
		}
		return val, changed
	case string:
		r := String(val)
		return r, r != val
	default:
		return v, false
	}
}

// isIdentifierKey reports whether a key holds an identifier rather than
// free text: "id", "ids" or any key ending in either.
func isIdentifierKey(key string) bool {
	lower := strings.ToLower(key)
	return strings.HasSuffix(lower, "id") || strings.HasSuffix(lower, "ids")
}

func shannonEntropy(s string) float64 {
	if len(s) == 0 {
		return 0
	}
	freq := make(map[byte]int)
	for i := range len(s) {
		freq[s[i]]++
	}
	length := float64(len(s))
	var entropy float64
	for _, count := range freq {
		p := float64(count) / length
		entropy -= p * math.Log2(p)
	}
	return entropy
}
