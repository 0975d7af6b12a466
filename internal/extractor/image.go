package extractor

import (
	"os"
	"strings"
	"time"

	"github.com/rwcarlsen/goexif/exif"
)

// exifTimeLayout is the fixed on-wire layout of EXIF datetime tags.
const exifTimeLayout = "2006:01:02 15:04:05"

// MetadataReader looks up the raw capture-time tag value of an image.
// Implementations must apply the fixed two-tag priority order:
// DateTimeOriginal first, then DateTime.
type MetadataReader interface {
	CaptureTime(path string) (string, bool)
}

type exifMetadataReader struct{}

// NewMetadataReader returns the goexif-backed metadata reader.
func NewMetadataReader() MetadataReader {
	return exifMetadataReader{}
}

func (exifMetadataReader) CaptureTime(path string) (string, bool) {
	f, err := os.Open(path)
	if err != nil {
		return "", false
	}
	defer f.Close()

	meta, err := exif.Decode(f)
	if err != nil {
		return "", false
	}
	for _, field := range []exif.FieldName{exif.DateTimeOriginal, exif.DateTime} {
		tag, err := meta.Get(field)
		if err != nil {
			continue
		}
		value, err := tag.StringVal()
		if err != nil || value == "" {
			continue
		}
		return value, true
	}
	return "", false
}

// ImageExtractor derives a candidate name from an image's capture
// timestamp, reformatted with the caller-supplied date layout.
type ImageExtractor struct {
	reader MetadataReader
}

var imageExtensions = []string{".jpg", ".jpeg", ".tiff", ".tif"}

// NewImageExtractor creates an image extractor with the EXIF reader.
func NewImageExtractor() *ImageExtractor {
	return NewImageExtractorWith(NewMetadataReader())
}

// NewImageExtractorWith creates an image extractor over an explicit reader.
// A nil reader marks the metadata capability as absent: the extractor never
// matches instead of failing later.
func NewImageExtractorWith(reader MetadataReader) *ImageExtractor {
	return &ImageExtractor{reader: reader}
}

// Name returns the extractor identifier
func (e *ImageExtractor) Name() string {
	return "image"
}

// Available reports whether the metadata capability is present
func (e *ImageExtractor) Available() bool {
	return e.reader != nil
}

// Extensions returns the recognized raster-image extensions
func (e *ImageExtractor) Extensions() []string {
	return imageExtensions
}

// CanHandle reports whether the file is an EXIF-bearing raster format and
// the capability is present
func (e *ImageExtractor) CanHandle(path string) bool {
	return e.Available() && hasExtension(path, imageExtensions)
}

// Extract formats the image's capture time with opts.DateFormat. Malformed
// metadata values are a soft miss, never a failure.
func (e *ImageExtractor) Extract(path string, opts Options) (string, bool) {
	if !e.Available() {
		return "", false
	}
	raw, ok := e.reader.CaptureTime(path)
	if !ok {
		return "", false
	}
	return formatCaptureTime(raw, opts.DateFormat)
}

func formatCaptureTime(raw, layout string) (string, bool) {
	ts, err := time.Parse(exifTimeLayout, strings.TrimSpace(raw))
	if err != nil {
		return "", false
	}
	if layout == "" {
		layout = DefaultDateFormat
	}
	return ts.Format(layout), true
}
