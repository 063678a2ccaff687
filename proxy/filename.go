package proxy

import (
	"strings"
)

const (
	DefaultFilename   = "video.mp4"
	maxFilenameLength = 200
)

// SanitizeFilename replaces every rune outside [A-Za-z0-9._-] with an
// underscore and truncates the result to 200 characters. The result is safe
// to place inside a quoted Content-Disposition filename.
func SanitizeFilename(name string) string {
	var b strings.Builder
	b.Grow(len(name))
	for _, r := range name {
		if isFilenameRune(r) {
			b.WriteRune(r)
		} else {
			b.WriteByte('_')
		}
		if b.Len() == maxFilenameLength {
			break
		}
	}
	return b.String()
}

func isFilenameRune(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		return true
	case r == '.', r == '_', r == '-':
		return true
	default:
		return false
	}
}

// ExtensionFor picks the extension appended to extensionless filenames.
func ExtensionFor(contentType string) string {
	contentType = strings.ToLower(contentType)
	switch {
	case strings.Contains(contentType, "image/"):
		return ".jpg"
	case strings.Contains(contentType, "video/"):
		return ".mp4"
	default:
		return ".bin"
	}
}

// FinalFilename sanitizes name and, only when it has no dot at all, appends
// an extension derived from contentType. An existing extension is kept even
// if it does not match the content.
func FinalFilename(name string, contentType string) string {
	sanitized := SanitizeFilename(name)
	if strings.Contains(sanitized, ".") {
		return sanitized
	}
	return sanitized + ExtensionFor(contentType)
}
