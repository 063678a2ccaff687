package proxy

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeFilename(t *testing.T) {
	testCases := []struct {
		description string
		input       string
		expected    string
	}{
		{"keeps safe characters", "xnsta-12345678.mp4", "xnsta-12345678.mp4"},
		{"replaces spaces and punctuation", "a b!.png", "a_b_.png"},
		{"neutralizes header injection", "x\"\r\nSet-Cookie: a=b", "x___Set-Cookie__a_b"},
		{"replaces path separators", "../../etc/passwd", ".._.._etc_passwd"},
		{"replaces each non-ascii rune once", "café☕", "caf__"},
		{"empty stays empty", "", ""},
	}
	for _, testCase := range testCases {
		t.Run(testCase.description, func(t *testing.T) {
			assert.Equal(t, testCase.expected, SanitizeFilename(testCase.input))
		})
	}

	t.Run("truncates to 200 characters", func(t *testing.T) {
		sanitized := SanitizeFilename(strings.Repeat("a", 150) + strings.Repeat("!", 100))
		assert.Len(t, sanitized, 200)
		assert.Equal(t, strings.Repeat("a", 150)+strings.Repeat("_", 50), sanitized)
	})

	t.Run("is idempotent", func(t *testing.T) {
		for _, input := range []string{"a b!.png", "plain", strings.Repeat("é", 300), "x\"\r\n", "..", ""} {
			once := SanitizeFilename(input)
			assert.Equal(t, once, SanitizeFilename(once))
		}
	})
}

func TestFinalFilename(t *testing.T) {
	testCases := []struct {
		description string
		name        string
		contentType string
		expected    string
	}{
		{"appends jpg for images", "photo", "image/png", "photo.jpg"},
		{"appends mp4 for videos", "clip", "video/mp4", "clip.mp4"},
		{"appends bin for anything else", "blob", "application/octet-stream", "blob.bin"},
		{"appends bin when sanitized name is empty", "", "text/plain", ".bin"},
		{"keeps an existing extension", "a b!.png", "image/png", "a_b_.png"},
		{"keeps a mismatching extension", "movie.jpg", "video/mp4", "movie.jpg"},
		{"matches content types case-insensitively", "photo", "Image/JPEG", "photo.jpg"},
	}
	for _, testCase := range testCases {
		t.Run(testCase.description, func(t *testing.T) {
			assert.Equal(t, testCase.expected, FinalFilename(testCase.name, testCase.contentType))
		})
	}

	t.Run("dotless names end up with exactly one known extension", func(t *testing.T) {
		for _, name := range []string{"a", "a b c", "日本語", strings.Repeat("x", 250)} {
			for _, contentType := range []string{"image/webp", "video/quicktime", "", "text/html"} {
				final := FinalFilename(name, contentType)
				assert.Equal(t, 1, strings.Count(final, "."))
				ext := final[strings.LastIndex(final, ".")+1:]
				assert.Contains(t, []string{"jpg", "mp4", "bin"}, ext)
			}
		}
	})
}
