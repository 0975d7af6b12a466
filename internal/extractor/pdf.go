package extractor

import (
	"strings"

	"github.com/ledongthuc/pdf"
)

// PageTextReader supplies the concatenated text of the first maxPages pages
// of a paged document, joined with newlines. A miss (unreadable file, no
// extractable text) is reported as ("", false).
type PageTextReader interface {
	ReadPages(path string, maxPages int) (string, bool)
}

type pdfPageReader struct{}

// NewPageTextReader returns the built-in PDF page-text reader.
func NewPageTextReader() PageTextReader {
	return pdfPageReader{}
}

// ReadPages extracts text from up to maxPages pages. The PDF library can
// panic on malformed input, so the whole read is guarded by recover.
func (pdfPageReader) ReadPages(path string, maxPages int) (text string, ok bool) {
	defer func() {
		if recover() != nil {
			text, ok = "", false
		}
	}()

	f, reader, err := pdf.Open(path)
	if err != nil {
		return "", false
	}
	defer f.Close()

	total := reader.NumPage()
	if total < maxPages {
		maxPages = total
	}

	var b strings.Builder
	for i := 1; i <= maxPages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		content, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		b.WriteString(content)
		b.WriteString("\n")
	}
	if b.Len() == 0 {
		return "", false
	}
	return b.String(), true
}

// PDFExtractor pulls a candidate name out of the leading pages of a PDF,
// applying the same regex-or-first-line policy as the text extractor.
type PDFExtractor struct {
	reader PageTextReader
}

var pdfExtensions = []string{".pdf"}

// NewPDFExtractor creates a PDF extractor with the built-in page reader.
func NewPDFExtractor() *PDFExtractor {
	return NewPDFExtractorWith(NewPageTextReader())
}

// NewPDFExtractorWith creates a PDF extractor over an explicit reader.
// A nil reader marks the paged-text capability as absent: the extractor
// never matches instead of failing later.
func NewPDFExtractorWith(reader PageTextReader) *PDFExtractor {
	return &PDFExtractor{reader: reader}
}

// Name returns the extractor identifier
func (e *PDFExtractor) Name() string {
	return "pdf"
}

// Available reports whether the page-text capability is present
func (e *PDFExtractor) Available() bool {
	return e.reader != nil
}

// Extensions returns the recognized document extension
func (e *PDFExtractor) Extensions() []string {
	return pdfExtensions
}

// CanHandle reports whether the file is a PDF and the capability is present
func (e *PDFExtractor) CanHandle(path string) bool {
	return e.Available() && hasExtension(path, pdfExtensions)
}

// Extract reads the leading pages and applies the shared text policy
func (e *PDFExtractor) Extract(path string, opts Options) (string, bool) {
	if !e.Available() {
		return "", false
	}
	maxPages := opts.MaxPages
	if maxPages <= 0 {
		maxPages = DefaultMaxPages
	}
	text, ok := e.reader.ReadPages(path, maxPages)
	if !ok {
		return "", false
	}
	return applyPattern(text, opts.Pattern)
}
