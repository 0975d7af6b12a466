package sanitize

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Config controls the full sanitization pipeline.
type Config struct {
	NormalizeUnicode     bool
	ReplaceSpaces        bool
	MaxLength            int
	CaseStyle            CaseStyle
	ResolveConflicts     bool
	ConflictSuffixFormat string
}

// DefaultConfig returns the standard pipeline configuration.
func DefaultConfig() Config {
	return Config{
		NormalizeUnicode:     true,
		MaxLength:            DefaultMaxLength,
		ResolveConflicts:     true,
		ConflictSuffixFormat: DefaultSuffixFormat,
	}
}

// Sanitizer composes the filename primitives and the conflict resolver
// into one configurable operation. A Sanitizer is stateless per call and
// safe for reuse across a rename session.
type Sanitizer struct {
	cfg Config
}

// New creates a Sanitizer, filling unset Config fields with defaults.
func New(cfg Config) *Sanitizer {
	if cfg.MaxLength <= 0 {
		cfg.MaxLength = DefaultMaxLength
	}
	if cfg.ConflictSuffixFormat == "" {
		cfg.ConflictSuffixFormat = DefaultSuffixFormat
	}
	return &Sanitizer{cfg: cfg}
}

// Sanitize runs character and length sanitization, prefix/suffix injection
// with a re-truncation pass, case normalization, and finally conflict
// resolution against target when enabled and a target is supplied. The
// returned name is never empty, never over MaxLength, and absent from
// target at the moment of checking.
func (s *Sanitizer) Sanitize(name string, target NameSet, prefix, suffix string) string {
	if name == "" {
		return Fallback
	}
	result := Filename(name, s.cfg.NormalizeUnicode, s.cfg.ReplaceSpaces, s.cfg.MaxLength)

	if prefix != "" || suffix != "" {
		result = AddPrefixSuffix(result, prefix, suffix)
		// Injection can push the name back over the cap.
		result = Truncate(result, s.cfg.MaxLength, true)
	}
	if s.cfg.CaseStyle != CaseNone {
		result = NormalizeCase(result, s.cfg.CaseStyle)
	}
	if s.cfg.ResolveConflicts && target != nil {
		result = Resolve(result, target, s.cfg.ConflictSuffixFormat, DefaultMaxAttempts)
	}
	return result
}

// Renamed pairs an input name with its final sanitized form.
type Renamed struct {
	Original  string
	Sanitized string
}

// BatchSanitize applies Sanitize to each name in order, then resolves
// collisions against the names already produced earlier in the same batch.
// The in-batch pass is purely in memory: two inputs that sanitize to the
// same string never both receive it, even before anything exists on disk.
func (s *Sanitizer) BatchSanitize(names []string, target NameSet, prefix, suffix string) []Renamed {
	results := make([]Renamed, 0, len(names))
	used := make(Set, len(names))

	for _, original := range names {
		sanitized := s.Sanitize(original, target, prefix, suffix)

		if used.Contains(sanitized) {
			ext := filepath.Ext(sanitized)
			stem := strings.TrimSuffix(sanitized, ext)
			for i := 1; used.Contains(sanitized) && i <= DefaultMaxAttempts; i++ {
				sanitized = stem + fmt.Sprintf(s.cfg.ConflictSuffixFormat, i) + ext
			}
		}

		used.Add(sanitized)
		results = append(results, Renamed{Original: original, Sanitized: sanitized})
	}
	return results
}
