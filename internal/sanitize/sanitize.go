// Package sanitize turns arbitrary candidate strings into filenames that
// are valid on the target filesystem and unique within a target directory.
package sanitize

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Fallback is substituted when sanitization empties a name.
const Fallback = "unnamed"

// DefaultMaxLength is the default filename length cap, in characters.
const DefaultMaxLength = 255

// invalidChars matches characters that are illegal in filenames on at
// least one mainstream filesystem, plus all control characters.
var invalidChars = regexp.MustCompile(`[<>:"|?*\\\x00-\x1f\x7f]`)

// reservedNames are the Windows device names that a stem may never equal,
// compared case-insensitively and ignoring the extension.
var reservedNames = func() map[string]struct{} {
	names := []string{"CON", "PRN", "AUX", "NUL"}
	for i := 1; i <= 9; i++ {
		names = append(names, fmt.Sprintf("COM%d", i), fmt.Sprintf("LPT%d", i))
	}
	m := make(map[string]struct{}, len(names))
	for _, name := range names {
		m[name] = struct{}{}
	}
	return m
}()

// CaseStyle selects a stem case normalization.
type CaseStyle string

const (
	CaseNone     CaseStyle = ""
	CaseLower    CaseStyle = "lower"
	CaseUpper    CaseStyle = "upper"
	CaseTitle    CaseStyle = "title"
	CaseSentence CaseStyle = "sentence"
)

// Filename sanitizes a candidate into a filesystem-legal name. The step
// order is significant: truncation measures the name after reserved-name
// prefixing, and the emptiness check runs after trimming.
func Filename(name string, normalizeUnicode, replaceSpaces bool, maxLength int) string {
	if name == "" {
		return Fallback
	}
	if normalizeUnicode {
		name = foldAccents(name)
	}
	name = invalidChars.ReplaceAllString(name, "_")
	if isReserved(stemOf(name)) {
		name = "_" + name
	}
	if replaceSpaces {
		name = strings.ReplaceAll(name, " ", "_")
	}
	name = strings.Trim(name, ". ")
	if name == "" {
		return Fallback
	}
	if maxLength > 0 {
		name = Truncate(name, maxLength, true)
	}
	return name
}

// Truncate caps a filename at maxLength characters. With preserveExt set,
// the stem is cut so the extension survives in full, unless the extension
// alone meets or exceeds the cap, in which case the whole string is cut.
// Truncate is idempotent for a fixed maxLength.
func Truncate(name string, maxLength int, preserveExt bool) string {
	if maxLength <= 0 {
		return name
	}
	nameRunes := []rune(name)
	if len(nameRunes) <= maxLength {
		return name
	}
	if !preserveExt {
		return string(nameRunes[:maxLength])
	}
	ext := filepath.Ext(name)
	extLen := utf8.RuneCountInString(ext)
	if extLen >= maxLength {
		return string(nameRunes[:maxLength])
	}
	stemRunes := []rune(strings.TrimSuffix(name, ext))
	available := maxLength - extLen
	if available > len(stemRunes) {
		available = len(stemRunes)
	}
	return string(stemRunes[:available]) + ext
}

// AddPrefixSuffix inserts prefix before and suffix after the stem, leaving
// the extension untouched. Empty input is returned unchanged.
func AddPrefixSuffix(name, prefix, suffix string) string {
	if name == "" {
		return name
	}
	ext := filepath.Ext(name)
	stem := strings.TrimSuffix(name, ext)
	return prefix + stem + suffix + ext
}

// NormalizeCase applies the given case style to the stem. The extension is
// always lower-cased regardless of style, since extensions are
// case-insensitive identifiers by convention.
func NormalizeCase(name string, style CaseStyle) string {
	if name == "" {
		return name
	}
	ext := filepath.Ext(name)
	stem := strings.TrimSuffix(name, ext)
	ext = strings.ToLower(ext)

	switch style {
	case CaseLower:
		stem = strings.ToLower(stem)
	case CaseUpper:
		stem = strings.ToUpper(stem)
	case CaseTitle:
		stem = titleCase(stem)
	case CaseSentence:
		stem = sentenceCase(stem)
	}
	return stem + ext
}

// foldAccents applies canonical decomposition and strips combining marks,
// so "café" becomes "cafe".
func foldAccents(s string) string {
	folder := transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)))
	out, _, err := transform.String(folder, s)
	if err != nil {
		return s
	}
	return out
}

func stemOf(name string) string {
	return strings.TrimSuffix(name, filepath.Ext(name))
}

func isReserved(stem string) bool {
	_, ok := reservedNames[strings.ToUpper(stem)]
	return ok
}

// titleCase upper-cases the first letter of each word and lower-cases the
// rest; any non-letter rune starts a new word.
func titleCase(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	inWord := false
	for _, r := range s {
		if unicode.IsLetter(r) {
			if inWord {
				b.WriteRune(unicode.ToLower(r))
			} else {
				b.WriteRune(unicode.ToUpper(r))
			}
			inWord = true
		} else {
			b.WriteRune(r)
			inWord = false
		}
	}
	return b.String()
}

// sentenceCase upper-cases only the first rune and lower-cases the rest.
func sentenceCase(s string) string {
	lower := strings.ToLower(s)
	r, size := utf8.DecodeRuneInString(lower)
	if size == 0 || r == utf8.RuneError {
		return lower
	}
	return string(unicode.ToUpper(r)) + lower[size:]
}
