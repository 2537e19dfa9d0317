package domain

import (
	"path/filepath"
	"strings"
)

// DefaultDiameter is the circle diameter used when a caller gives none.
const DefaultDiameter = 300

// BatchOutputSuffix is appended to the input basename for batch outputs.
const BatchOutputSuffix = "_c"

// Formats is the set of input extensions the cropper accepts.
// The zero value accepts nothing; use DefaultFormats.
type Formats struct {
	exts map[string]struct{}
	list []string
}

// NewFormats builds a format set from extensions such as ".jpg" or "PNG".
func NewFormats(exts ...string) Formats {
	f := Formats{exts: make(map[string]struct{}, len(exts))}
	for _, ext := range exts {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		if _, ok := f.exts[ext]; ok {
			continue
		}
		f.exts[ext] = struct{}{}
		f.list = append(f.list, ext)
	}
	return f
}

// DefaultFormats returns the supported input formats.
func DefaultFormats() Formats {
	return NewFormats(".jpg", ".jpeg", ".png", ".bmp", ".tiff", ".webp")
}

// IsSupported reports whether path has a supported extension (case-insensitive)
func (f Formats) IsSupported(path string) bool {
	_, ok := f.exts[strings.ToLower(filepath.Ext(path))]
	return ok
}

// Extensions returns the extensions in declaration order
func (f Formats) Extensions() []string {
	out := make([]string, len(f.list))
	copy(out, f.list)
	return out
}

// BatchOutputName derives the output file name for a batch input:
// "photos/Ana.JPG" -> "Ana_c.png"
func BatchOutputName(inputPath string) string {
	base := filepath.Base(inputPath)
	name := strings.TrimSuffix(base, filepath.Ext(base))
	return name + BatchOutputSuffix + ".png"
}
