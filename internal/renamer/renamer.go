// Package renamer plans and applies batch rename operations, composing
// the content extractors and the sanitization pipeline.
package renamer

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/dadebr/FastRenamer/internal/extractor"
	"github.com/dadebr/FastRenamer/internal/sanitize"
)

// Mode selects how target names are generated.
type Mode string

const (
	// ModeContent names each file after content extracted from it.
	ModeContent Mode = "content"
	// ModeSequential names files BaseName1, BaseName2, ...
	ModeSequential Mode = "sequential"
	// ModePrefixSuffix keeps the stem and injects a prefix and/or suffix.
	ModePrefixSuffix Mode = "prefix-suffix"
	// ModeReplace substitutes Find with ReplaceWith inside the stem.
	ModeReplace Mode = "replace"
	// ModeFolderSequential uses the parent directory name plus a counter.
	ModeFolderSequential Mode = "folder-sequential"
)

// Rule carries the per-mode parameters for one rename run.
type Rule struct {
	Mode        Mode
	BaseName    string
	Prefix      string
	Suffix      string
	Find        string
	ReplaceWith string
	Extraction  extractor.Options
}

// Rename is one planned source → target pair within a directory.
type Rename struct {
	Source string
	Target string
}

// Result records the outcome of one rename attempt.
type Result struct {
	Source string
	Target string
	Err    error
}

// Planner turns a file list and a rule into a conflict-free rename plan.
type Planner struct {
	registry  *extractor.Registry
	sanitizer *sanitize.Sanitizer
}

// NewPlanner creates a planner over the given registry and sanitizer.
func NewPlanner(registry *extractor.Registry, sanitizer *sanitize.Sanitizer) *Planner {
	return &Planner{registry: registry, sanitizer: sanitizer}
}

// ListFiles returns the sorted names of the regular files directly inside
// dir. Subdirectories are never walked.
func ListFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", dir, err)
	}
	var files []string
	for _, entry := range entries {
		if entry.Type().IsRegular() {
			files = append(files, entry.Name())
		}
	}
	sort.Strings(files)
	return files, nil
}

// Plan produces the ordered rename plan for files inside dir. Candidates
// are generated per the rule; files whose generated name equals their
// current one are dropped before sanitization, so a file never conflicts
// with itself in the directory set. The survivors go through the batch
// sanitization pipeline against the directory's current entries.
func (p *Planner) Plan(dir string, files []string, rule Rule) ([]Rename, error) {
	prefix, suffix := "", ""
	if rule.Mode == ModePrefixSuffix {
		prefix, suffix = rule.Prefix, rule.Suffix
	}

	var sources, candidates []string
	for i, name := range files {
		candidate, err := p.candidate(dir, name, i, rule)
		if err != nil {
			return nil, err
		}
		if sanitize.AddPrefixSuffix(candidate, prefix, suffix) == name {
			continue
		}
		sources = append(sources, name)
		candidates = append(candidates, candidate)
	}

	resolved := p.sanitizer.BatchSanitize(candidates, sanitize.Dir(dir), prefix, suffix)

	renames := make([]Rename, 0, len(sources))
	for i, r := range resolved {
		if r.Sanitized == sources[i] {
			continue
		}
		renames = append(renames, Rename{Source: sources[i], Target: r.Sanitized})
	}
	return renames, nil
}

// candidate generates the un-sanitized name proposal for one file.
func (p *Planner) candidate(dir, name string, index int, rule Rule) (string, error) {
	ext := filepath.Ext(name)
	stem := strings.TrimSuffix(name, ext)

	switch rule.Mode {
	case ModeSequential:
		base := rule.BaseName
		if base == "" {
			base = "file_"
		}
		return fmt.Sprintf("%s%03d%s", base, index+1, ext), nil

	case ModeFolderSequential:
		abs, err := filepath.Abs(dir)
		if err != nil {
			return "", fmt.Errorf("failed to resolve directory %s: %w", dir, err)
		}
		return fmt.Sprintf("%s_%03d%s", filepath.Base(abs), index+1, ext), nil

	case ModePrefixSuffix:
		// Injection happens inside the sanitization pipeline.
		return name, nil

	case ModeReplace:
		if rule.Find == "" {
			return name, nil
		}
		return strings.ReplaceAll(stem, rule.Find, rule.ReplaceWith) + ext, nil

	case ModeContent:
		// A soft miss keeps the current stem; that is a routine outcome
		// for unsupported formats or empty files.
		content, ok := p.registry.Extract(filepath.Join(dir, name), rule.Extraction)
		if !ok {
			return name, nil
		}
		return content + ext, nil

	default:
		return "", fmt.Errorf("unknown rename mode: %s", rule.Mode)
	}
}

// Apply performs the planned renames one by one inside dir. Failures are
// independent: a failed pair is recorded and the run continues, with no
// rollback of earlier renames. A target that appeared since planning is
// reported as an ordinary per-file error.
func Apply(dir string, renames []Rename) []Result {
	results := make([]Result, 0, len(renames))
	for _, r := range renames {
		source := filepath.Join(dir, r.Source)
		target := filepath.Join(dir, r.Target)

		var err error
		if _, statErr := os.Lstat(target); statErr == nil {
			err = fmt.Errorf("destination already exists: %s", r.Target)
		} else {
			err = os.Rename(source, target)
		}
		results = append(results, Result{Source: r.Source, Target: r.Target, Err: err})
	}
	return results
}
