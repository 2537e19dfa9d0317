package tui

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/devbush/photoccrop/internal/domain"
)

// FormatBytes formats a file size with SI units
// Examples: 999 -> "999 B", 1500 -> "1.5 kB", 12345678 -> "12 MB"
func FormatBytes(n int64) string {
	if n < 0 {
		n = 0
	}
	return humanize.Bytes(uint64(n))
}

// FormatDuration formats a duration for status lines
// Examples: 850ms -> "850ms", 1.2s -> "1.2s", 125s -> "2m5s"
func FormatDuration(d time.Duration) string {
	switch {
	case d < time.Second:
		return fmt.Sprintf("%dms", d.Milliseconds())
	case d < time.Minute:
		return fmt.Sprintf("%.1fs", d.Seconds())
	default:
		return d.Round(time.Second).String()
	}
}

// FormatOutcomeLine formats one processed file as a single line
// Example: "✓ a.jpg -> a_c.png (120ms)" or "✗ bad.jpg: image codec failure: ..."
func FormatOutcomeLine(o domain.ProcessingOutcome) string {
	name := filepath.Base(o.InputPath)
	if !o.Success {
		return fmt.Sprintf("✗ %s: %s", name, o.ErrorMessage)
	}
	return fmt.Sprintf("✓ %s -> %s (%s)", name, filepath.Base(o.OutputPath), FormatDuration(o.Duration))
}

// TruncateName shortens a file name to max runes, keeping the extension visible
func TruncateName(name string, max int) string {
	r := []rune(name)
	if max < 4 || len(r) <= max {
		return name
	}
	ext := []rune(filepath.Ext(name))
	if len(ext) >= max-3 {
		return string(r[:max-3]) + "..."
	}
	keep := max - 3 - len(ext)
	return string(r[:keep]) + "..." + string(ext)
}
