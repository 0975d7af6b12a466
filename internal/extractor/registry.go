package extractor

import "sort"

// Registry holds an ordered list of extractors and dispatches each file to
// the first one whose CanHandle reports true. It is built once at startup
// and never mutated afterwards.
type Registry struct {
	extractors []Extractor
}

// NewRegistry creates a registry with the built-in extractors in their
// standard dispatch order: text, pdf, image.
func NewRegistry() *Registry {
	return NewRegistryWith(
		NewTextExtractor(),
		NewPDFExtractor(),
		NewImageExtractor(),
	)
}

// NewRegistryWith creates a registry over an explicit extractor list.
func NewRegistryWith(extractors ...Extractor) *Registry {
	return &Registry{extractors: extractors}
}

// ExtractorFor returns the first extractor able to handle the file.
// No match is a normal outcome, reported as (nil, false).
func (r *Registry) ExtractorFor(path string) (Extractor, bool) {
	for _, e := range r.extractors {
		if e.CanHandle(path) {
			return e, true
		}
	}
	return nil, false
}

// Extract delegates to the extractor resolved for the file, or reports a
// soft miss when no extractor matches.
func (r *Registry) Extract(path string, opts Options) (string, bool) {
	e, ok := r.ExtractorFor(path)
	if !ok {
		return "", false
	}
	return e.Extract(path, opts)
}

// SupportedExtensions returns the sorted union of the extension sets of all
// extractors whose backing capability is currently available. The result
// reflects what will actually work at runtime, not just which extractors
// are registered.
func (r *Registry) SupportedExtensions() []string {
	seen := make(map[string]struct{})
	for _, e := range r.extractors {
		if !e.Available() {
			continue
		}
		for _, ext := range e.Extensions() {
			seen[ext] = struct{}{}
		}
	}
	extensions := make([]string, 0, len(seen))
	for ext := range seen {
		extensions = append(extensions, ext)
	}
	sort.Strings(extensions)
	return extensions
}
