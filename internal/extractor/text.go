package extractor

import (
	"os"
	"strings"
	"unicode/utf8"

	"github.com/gogs/chardet"
	"golang.org/x/text/encoding/htmlindex"
)

// detectSampleSize bounds how much of the file feeds encoding detection.
const detectSampleSize = 8192

// CharsetDetector guesses the text encoding of a byte sample. Detection is
// best-effort; a miss falls back to UTF-8.
type CharsetDetector interface {
	DetectCharset(sample []byte) (string, bool)
}

type chardetDetector struct {
	det *chardet.Detector
}

// NewCharsetDetector returns the chardet-backed detector.
func NewCharsetDetector() CharsetDetector {
	return &chardetDetector{det: chardet.NewTextDetector()}
}

func (d *chardetDetector) DetectCharset(sample []byte) (string, bool) {
	result, err := d.det.DetectBest(sample)
	if err != nil || result == nil || result.Charset == "" {
		return "", false
	}
	return result.Charset, true
}

// TextExtractor pulls a candidate name out of plain-text file families:
// the first non-empty line, or the first regex match when a pattern is
// supplied.
type TextExtractor struct {
	detector CharsetDetector
}

var textExtensions = []string{".txt", ".md", ".log", ".rst", ".csv"}

// NewTextExtractor creates a text extractor with encoding detection.
func NewTextExtractor() *TextExtractor {
	return NewTextExtractorWith(NewCharsetDetector())
}

// NewTextExtractorWith creates a text extractor over an explicit detector.
// A nil detector disables sniffing; decoding falls back to UTF-8.
func NewTextExtractorWith(detector CharsetDetector) *TextExtractor {
	return &TextExtractor{detector: detector}
}

// Name returns the extractor identifier
func (e *TextExtractor) Name() string {
	return "text"
}

// Available always returns true - encoding detection is optional
func (e *TextExtractor) Available() bool {
	return true
}

// Extensions returns the recognized text-family extensions
func (e *TextExtractor) Extensions() []string {
	return textExtensions
}

// CanHandle reports whether the file carries a text-family extension
func (e *TextExtractor) CanHandle(path string) bool {
	return hasExtension(path, textExtensions)
}

// Extract returns the first regex match or first non-empty line of the file
func (e *TextExtractor) Extract(path string, opts Options) (string, bool) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return "", false
	}
	return applyPattern(e.decode(raw), opts.Pattern)
}

// decode converts raw bytes to a string, sniffing the charset from a
// bounded prefix and dropping bytes that survive as invalid UTF-8.
func (e *TextExtractor) decode(raw []byte) string {
	if e.detector != nil {
		sample := raw
		if len(sample) > detectSampleSize {
			sample = sample[:detectSampleSize]
		}
		if name, ok := e.detector.DetectCharset(sample); ok {
			if enc, err := htmlindex.Get(strings.ToLower(name)); err == nil {
				if decoded, err := enc.NewDecoder().Bytes(raw); err == nil {
					return dropInvalidRunes(string(decoded))
				}
			}
		}
	}
	return dropInvalidRunes(string(raw))
}

// dropInvalidRunes removes undecodable bytes instead of keeping replacement
// characters, matching the best-effort decoding contract.
func dropInvalidRunes(s string) string {
	if utf8.ValidString(s) && !strings.ContainsRune(s, utf8.RuneError) {
		return s
	}
	return strings.Map(func(r rune) rune {
		if r == utf8.RuneError {
			return -1
		}
		return r
	}, s)
}
