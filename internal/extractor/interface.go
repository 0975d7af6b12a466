package extractor

import (
	"regexp"
	"strings"
)

// Defaults applied when an Options field is left zero.
const (
	DefaultMaxPages   = 3
	DefaultDateFormat = "20060102_150405"
)

// Options configures a single extraction call.
type Options struct {
	// Pattern, when set, is searched anywhere in the extracted text. The
	// first capture group is returned if the pattern has groups, the whole
	// match otherwise.
	Pattern *regexp.Regexp

	// MaxPages caps how many pages a paged-document extractor reads.
	MaxPages int

	// DateFormat is the Go reference layout used to render metadata
	// timestamps (image extractor only).
	DateFormat string
}

// Extractor is the interface for format-specific content extractors.
// Extract reports a soft miss as ("", false); I/O and decode errors are
// collapsed into soft misses, so callers never need to distinguish
// "could not read" from "nothing to extract".
type Extractor interface {
	// Name returns the unique identifier for this extractor
	Name() string

	// Available reports whether the backing decoding capability is present
	Available() bool

	// CanHandle reports whether this extractor applies to the given file,
	// based only on its extension and on Available()
	CanHandle(path string) bool

	// Extract derives a candidate name fragment from the file
	Extract(path string, opts Options) (string, bool)

	// Extensions returns the statically known extension set (with dots)
	Extensions() []string
}

// applyPattern implements the shared regex-or-first-line policy.
func applyPattern(text string, pattern *regexp.Regexp) (string, bool) {
	if pattern != nil {
		return firstMatch(text, pattern)
	}
	return firstNonEmptyLine(text)
}

func firstMatch(text string, pattern *regexp.Regexp) (string, bool) {
	m := pattern.FindStringSubmatch(text)
	if m == nil {
		return "", false
	}
	if len(m) > 1 {
		return m[1], true
	}
	return m[0], true
}

func firstNonEmptyLine(text string) (string, bool) {
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			return line, true
		}
	}
	return "", false
}

// hasExtension reports whether path carries one of the given dotted
// lowercase extensions, compared case-insensitively.
func hasExtension(path string, extensions []string) bool {
	ext := strings.ToLower(extOf(path))
	for _, e := range extensions {
		if ext == e {
			return true
		}
	}
	return false
}

func extOf(path string) string {
	idx := strings.LastIndexByte(path, '.')
	if idx < 0 || strings.ContainsAny(path[idx:], "/\\") {
		return ""
	}
	return path[idx:]
}
