package sanitize

import (
	"strings"
	"testing"
)

func TestFilename_RemovesForbiddenCharacters(t *testing.T) {
	inputs := []string{
		`report<final>.txt`,
		`a:b|c?d*e.md`,
		"tab\there.log",
		`back\slash.csv`,
		"ctrl\x01\x1f\x7fchars.txt",
		`"quoted".txt`,
	}
	for _, input := range inputs {
		got := Filename(input, true, false, 255)
		if strings.ContainsAny(got, `<>:"|?*\`) {
			t.Errorf("Filename(%q) = %q still contains forbidden characters", input, got)
		}
		for _, r := range got {
			if r < 0x20 || r == 0x7f {
				t.Errorf("Filename(%q) = %q still contains control character %q", input, got, r)
			}
		}
	}
}

func TestFilename_NeverExceedsMaxLength(t *testing.T) {
	long := strings.Repeat("x", 300) + ".txt"
	got := Filename(long, false, false, 255)
	if len([]rune(got)) > 255 {
		t.Errorf("expected at most 255 characters, got %d", len([]rune(got)))
	}
	if !strings.HasSuffix(got, ".txt") {
		t.Errorf("expected extension preserved, got %q", got)
	}
}

func TestFilename_ReservedDeviceNames(t *testing.T) {
	for _, name := range []string{"CON", "con.txt", "PRN.log", "aux", "NUL.dat", "COM1.txt", "lpt9.csv"} {
		got := Filename(name, true, false, 255)
		if !strings.HasPrefix(got, "_") {
			t.Errorf("Filename(%q) = %q, expected reserved-name underscore prefix", name, got)
		}
	}
	// Reserved only when the whole stem matches
	if got := Filename("CONFIG.txt", true, false, 255); strings.HasPrefix(got, "_") {
		t.Errorf("CONFIG is not reserved, got %q", got)
	}
}

func TestFilename_SpacesAndDots(t *testing.T) {
	if got := Filename("my file.txt", false, true, 255); got != "my_file.txt" {
		t.Errorf("expected 'my_file.txt', got %q", got)
	}
	if got := Filename("  my file  ", false, false, 255); got != "my file" {
		t.Errorf("expected 'my file', got %q", got)
	}
	if got := Filename("...name...", false, false, 255); got != "name" {
		t.Errorf("expected 'name', got %q", got)
	}
}

func TestFilename_EmptyAndDegenerateInputs(t *testing.T) {
	for _, input := range []string{"", "...", "   ", ". .", "???"} {
		got := Filename(input, true, false, 255)
		if got == "" || got == "." || strings.Trim(got, " ") == "" {
			t.Errorf("Filename(%q) = %q, expected a usable name", input, got)
		}
	}
	if got := Filename("...", true, false, 255); got != Fallback {
		t.Errorf("expected %q, got %q", Fallback, got)
	}
}

func TestFilename_AccentFolding(t *testing.T) {
	if got := Filename("café résumé.txt", true, false, 255); got != "cafe resume.txt" {
		t.Errorf("expected 'cafe resume.txt', got %q", got)
	}
	// Folding off keeps the accents
	if got := Filename("café.txt", false, false, 255); got != "café.txt" {
		t.Errorf("expected 'café.txt', got %q", got)
	}
}

func TestFilename_TruncationMeasuresPrefixedForm(t *testing.T) {
	// Reserved-name prefixing runs before truncation, so the cap applies
	// to the underscored form.
	got := Filename("CON.txt", true, false, 6)
	if len([]rune(got)) > 6 {
		t.Errorf("expected at most 6 characters, got %q", got)
	}
	if !strings.HasPrefix(got, "_") {
		t.Errorf("expected underscore prefix to survive, got %q", got)
	}
}

func TestTruncate_NoopWithinBound(t *testing.T) {
	if got := Truncate("short.txt", 255, true); got != "short.txt" {
		t.Errorf("expected no-op, got %q", got)
	}
}

func TestTruncate_PreservesExtension(t *testing.T) {
	got := Truncate(strings.Repeat("a", 20)+".txt", 10, true)
	if got != "aaaaaa.txt" {
		t.Errorf("expected 'aaaaaa.txt', got %q", got)
	}
}

func TestTruncate_FlatCutWithoutPreserve(t *testing.T) {
	if got := Truncate("abcdefgh.txt", 5, false); got != "abcde" {
		t.Errorf("expected 'abcde', got %q", got)
	}
}

func TestTruncate_OverlongExtension(t *testing.T) {
	// Extension alone exceeds the cap, so the whole string is cut flat.
	if got := Truncate("a.veryverylongextension", 8, true); got != "a.veryve" {
		t.Errorf("expected 'a.veryve', got %q", got)
	}
}

func TestTruncate_Idempotent(t *testing.T) {
	inputs := []string{
		strings.Repeat("a", 300) + ".txt",
		"short.md",
		strings.Repeat("é", 100) + ".html",
		"no_extension_" + strings.Repeat("z", 100),
	}
	for _, input := range inputs {
		once := Truncate(input, 50, true)
		twice := Truncate(once, 50, true)
		if once != twice {
			t.Errorf("Truncate not idempotent for %q: %q != %q", input, once, twice)
		}
	}
}

func TestAddPrefixSuffix(t *testing.T) {
	if got := AddPrefixSuffix("photo.jpg", "2024_", "_holiday"); got != "2024_photo_holiday.jpg" {
		t.Errorf("expected '2024_photo_holiday.jpg', got %q", got)
	}
	if got := AddPrefixSuffix("noext", "a_", "_b"); got != "a_noext_b" {
		t.Errorf("expected 'a_noext_b', got %q", got)
	}
	if got := AddPrefixSuffix("", "a_", "_b"); got != "" {
		t.Errorf("expected empty input to pass through, got %q", got)
	}
}

func TestNormalizeCase(t *testing.T) {
	tests := []struct {
		name  string
		style CaseStyle
		want  string
	}{
		{"My File.TXT", CaseLower, "my file.txt"},
		{"My File.TXT", CaseUpper, "MY FILE.txt"},
		{"my report file.TXT", CaseTitle, "My Report File.txt"},
		{"MY REPORT file.TXT", CaseSentence, "My report file.txt"},
		{"Keep Me.TXT", CaseNone, "Keep Me.txt"},
	}
	for _, tt := range tests {
		if got := NormalizeCase(tt.name, tt.style); got != tt.want {
			t.Errorf("NormalizeCase(%q, %q) = %q, want %q", tt.name, tt.style, got, tt.want)
		}
	}
}

func TestNormalizeCase_TitleWordBoundaries(t *testing.T) {
	if got := NormalizeCase("abc3de_fg", CaseTitle); got != "Abc3De_Fg" {
		t.Errorf("expected 'Abc3De_Fg', got %q", got)
	}
}
