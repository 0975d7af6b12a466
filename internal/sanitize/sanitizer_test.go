package sanitize

import (
	"strings"
	"testing"
)

func TestSanitizer_RoundTripValidNameUnchanged(t *testing.T) {
	s := New(DefaultConfig())
	if got := s.Sanitize("already-fine.txt", NewSet(), "", ""); got != "already-fine.txt" {
		t.Errorf("expected round-trip to be a no-op, got %q", got)
	}
}

func TestSanitizer_EmptyInput(t *testing.T) {
	s := New(DefaultConfig())
	if got := s.Sanitize("", nil, "", ""); got != Fallback {
		t.Errorf("expected %q, got %q", Fallback, got)
	}
}

func TestSanitizer_PrefixSuffixThenRetruncate(t *testing.T) {
	s := New(Config{MaxLength: 20})

	got := s.Sanitize(strings.Repeat("x", 18)+".txt", nil, "pre_", "_post")
	if len([]rune(got)) > 20 {
		t.Errorf("expected re-truncation to 20 characters, got %d (%q)", len([]rune(got)), got)
	}
	if !strings.HasSuffix(got, ".txt") {
		t.Errorf("expected extension preserved, got %q", got)
	}
	if !strings.HasPrefix(got, "pre_") {
		t.Errorf("expected prefix preserved, got %q", got)
	}
}

func TestSanitizer_CaseNormalization(t *testing.T) {
	s := New(Config{MaxLength: 255, CaseStyle: CaseLower})
	if got := s.Sanitize("REPORT.TXT", nil, "", ""); got != "report.txt" {
		t.Errorf("expected 'report.txt', got %q", got)
	}
}

func TestSanitizer_ConflictResolutionAgainstTarget(t *testing.T) {
	cfg := DefaultConfig()
	s := New(cfg)

	got := s.Sanitize("a.txt", NewSet("a.txt"), "", "")
	if got != "a(1).txt" {
		t.Errorf("expected 'a(1).txt', got %q", got)
	}
}

func TestSanitizer_ConflictResolutionDisabled(t *testing.T) {
	s := New(Config{MaxLength: 255, ResolveConflicts: false})
	if got := s.Sanitize("a.txt", NewSet("a.txt"), "", ""); got != "a.txt" {
		t.Errorf("expected conflicts to be ignored, got %q", got)
	}
}

func TestSanitizer_NoTargetSkipsConflicts(t *testing.T) {
	s := New(DefaultConfig())
	if got := s.Sanitize("a.txt", nil, "", ""); got != "a.txt" {
		t.Errorf("expected no conflict pass without a target, got %q", got)
	}
}

func TestBatchSanitize_InBatchDuplicates(t *testing.T) {
	s := New(DefaultConfig())

	results := s.BatchSanitize([]string{"report", "report"}, nil, "", "")
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if results[0].Sanitized != "report" {
		t.Errorf("expected first to keep 'report', got %q", results[0].Sanitized)
	}
	if results[1].Sanitized != "report(1)" {
		t.Errorf("expected second to become 'report(1)', got %q", results[1].Sanitized)
	}
	if results[0].Sanitized == results[1].Sanitized {
		t.Error("batch must never hand out the same name twice")
	}
}

func TestBatchSanitize_PreservesOrderAndOriginals(t *testing.T) {
	s := New(DefaultConfig())

	inputs := []string{"b.txt", "a.txt", "c.txt"}
	results := s.BatchSanitize(inputs, nil, "", "")
	for i, r := range results {
		if r.Original != inputs[i] {
			t.Errorf("result %d: expected original %q, got %q", i, inputs[i], r.Original)
		}
	}
}

func TestBatchSanitize_DuplicatesAfterSanitization(t *testing.T) {
	s := New(DefaultConfig())

	// Both inputs collapse to the same sanitized form.
	results := s.BatchSanitize([]string{"my?file.txt", "my*file.txt"}, nil, "", "")
	if results[0].Sanitized != "my_file.txt" {
		t.Errorf("expected 'my_file.txt', got %q", results[0].Sanitized)
	}
	if results[1].Sanitized != "my_file(1).txt" {
		t.Errorf("expected 'my_file(1).txt', got %q", results[1].Sanitized)
	}
}

func TestBatchSanitize_TargetAndBatchCombined(t *testing.T) {
	s := New(DefaultConfig())

	target := NewSet("a.txt")
	results := s.BatchSanitize([]string{"a.txt", "a.txt"}, target, "", "")
	if results[0].Sanitized != "a(1).txt" {
		t.Errorf("expected 'a(1).txt' against the target set, got %q", results[0].Sanitized)
	}
	if results[1].Sanitized == results[0].Sanitized {
		t.Errorf("expected distinct names, both got %q", results[0].Sanitized)
	}
}

func TestNew_FillsDefaults(t *testing.T) {
	s := New(Config{})
	if s.cfg.MaxLength != DefaultMaxLength {
		t.Errorf("expected default max length, got %d", s.cfg.MaxLength)
	}
	if s.cfg.ConflictSuffixFormat != DefaultSuffixFormat {
		t.Errorf("expected default suffix format, got %q", s.cfg.ConflictSuffixFormat)
	}
}
