package gallery

import (
	"html"
	"strings"

	"github.com/dustin/go-humanize"
)

// FormatFileSize renders a byte count with 1024-based units (KiB, MiB).
func FormatFileSize(size int64) string {
	if size < 0 {
		size = 0
	}
	return humanize.IBytes(uint64(size))
}

// TruncateString cuts s to at most max runes, appending an ellipsis when
// anything was removed. max includes the ellipsis character.
func TruncateString(s string, max int) string {
	if max <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-1]) + "…"
}

// EscapeHTML neutralizes markup in user-supplied text before it is
// interpolated into rendered output.
func EscapeHTML(s string) string {
	return html.EscapeString(s)
}

// IsUploadable reports whether a candidate file may enter the staging
// area: an image MIME type and a non-empty payload.
func IsUploadable(mimeType string, size int64) bool {
	return strings.HasPrefix(mimeType, "image/") && size > 0
}
