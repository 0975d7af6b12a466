package sanitize

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Resolver defaults.
const (
	DefaultMaxAttempts  = 1000
	DefaultSuffixFormat = "(%d)"
)

// NameSet reports whether a filename is already claimed at a target
// location. Implementations are read-only from the resolver's point of
// view.
type NameSet interface {
	Contains(name string) bool
}

// Dir is a NameSet backed by a directory's live entries. Each Contains
// call stats the candidate path, so the answer reflects the directory at
// the moment of checking. A nonexistent directory contains nothing.
type Dir string

// Contains reports whether name exists inside the directory
func (d Dir) Contains(name string) bool {
	if d == "" {
		return false
	}
	_, err := os.Lstat(filepath.Join(string(d), name))
	return err == nil
}

// Set is an in-memory NameSet for names claimed but not yet on disk.
type Set map[string]struct{}

// NewSet creates a Set holding the given names.
func NewSet(names ...string) Set {
	s := make(Set, len(names))
	for _, name := range names {
		s.Add(name)
	}
	return s
}

// Add claims a name
func (s Set) Add(name string) {
	s[name] = struct{}{}
}

// Contains reports whether the name is claimed
func (s Set) Contains(name string) bool {
	_, ok := s[name]
	return ok
}

// Resolve returns candidate unchanged when it is free, otherwise the first
// "stem + suffixFormat(i) + ext" variant (i from 1 to maxAttempts) absent
// from existing. When every numbered variant collides, a seconds-resolution
// timestamp is appended to the stem as a last resort; that fallback is not
// re-verified against the set.
func Resolve(candidate string, existing NameSet, suffixFormat string, maxAttempts int) string {
	if existing == nil || !existing.Contains(candidate) {
		return candidate
	}
	if suffixFormat == "" {
		suffixFormat = DefaultSuffixFormat
	}
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxAttempts
	}

	ext := filepath.Ext(candidate)
	stem := strings.TrimSuffix(candidate, ext)

	for i := 1; i <= maxAttempts; i++ {
		name := stem + fmt.Sprintf(suffixFormat, i) + ext
		if !existing.Contains(name) {
			return name
		}
	}
	return stem + "_" + time.Now().Format("20060102_150405") + ext
}
