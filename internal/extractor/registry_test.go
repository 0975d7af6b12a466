package extractor

import (
	"reflect"
	"testing"
)

func TestRegistry_FirstMatchWins(t *testing.T) {
	first := &mockExtractor{name: "first", available: true, extensions: []string{".txt"}, result: "from first", ok: true}
	second := &mockExtractor{name: "second", available: true, extensions: []string{".txt"}, result: "from second", ok: true}
	r := NewRegistryWith(first, second)

	e, ok := r.ExtractorFor("note.txt")
	if !ok {
		t.Fatal("expected an extractor")
	}
	if e.Name() != "first" {
		t.Errorf("expected 'first', got %q", e.Name())
	}

	got, ok := r.Extract("note.txt", Options{})
	if !ok || got != "from first" {
		t.Errorf("expected ('from first', true), got (%q, %v)", got, ok)
	}
}

func TestRegistry_NoMatchIsRoutine(t *testing.T) {
	r := NewRegistryWith(&mockExtractor{name: "text", available: true, extensions: []string{".txt"}})

	if _, ok := r.ExtractorFor("movie.mkv"); ok {
		t.Error("expected no extractor for .mkv")
	}
	if got, ok := r.Extract("movie.mkv", Options{}); ok {
		t.Errorf("expected a miss, got %q", got)
	}
}

func TestRegistry_UnavailableExtractorNeverMatches(t *testing.T) {
	r := NewRegistryWith(&mockExtractor{name: "pdf", available: false, extensions: []string{".pdf"}, result: "x", ok: true})

	if _, ok := r.ExtractorFor("doc.pdf"); ok {
		t.Error("unavailable extractor must not match")
	}
}

func TestRegistry_SupportedExtensionsReflectAvailability(t *testing.T) {
	r := NewRegistryWith(
		&mockExtractor{name: "text", available: true, extensions: []string{".txt", ".md"}},
		&mockExtractor{name: "pdf", available: false, extensions: []string{".pdf"}},
		&mockExtractor{name: "image", available: true, extensions: []string{".jpg"}},
	)

	got := r.SupportedExtensions()
	want := []string{".jpg", ".md", ".txt"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestNewRegistry_DefaultOrder(t *testing.T) {
	r := NewRegistry()

	e, ok := r.ExtractorFor("notes.txt")
	if !ok || e.Name() != "text" {
		t.Errorf("expected text extractor for .txt, got %v", e)
	}
	e, ok = r.ExtractorFor("photo.JPG")
	if !ok || e.Name() != "image" {
		t.Errorf("expected image extractor for .JPG, got %v", e)
	}
	e, ok = r.ExtractorFor("paper.pdf")
	if !ok || e.Name() != "pdf" {
		t.Errorf("expected pdf extractor for .pdf, got %v", e)
	}
}
