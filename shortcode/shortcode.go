package shortcode

import (
	"regexp"
	"strings"

	"github.com/pkg/errors"
	"github.com/truemediaorg/igfetch/model"
)

var (
	shortcodeRegexp = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)
	postURLRegexp   = regexp.MustCompile(`^https?://(?:www\.)?instagram\.com/(?:[\w.]+/)?(?:p|reels?|tv)/(?P<Shortcode>[A-Za-z0-9_-]+)`)
)

// Validate checks that input is a bare post shortcode. Callers sometimes paste
// a whole post URL instead, which is rejected before any request goes out.
func Validate(input string) (string, error) {
	if input == "" {
		return "", model.NewError(model.ErrorKindMissingIdentifier, "Shortcode is required.")
	}
	if strings.ContainsAny(input, "/.") || !shortcodeRegexp.MatchString(input) {
		return "", model.NewError(model.ErrorKindInvalidFormat, "Invalid shortcode format. Please provide only the shortcode from the URL.")
	}
	return input, nil
}

// Takes in a post URL and extracts the shortcode if it's an Instagram post,
// reel or tv link.
func FromPostURL(postURL string) (string, error) {
	matches := postURLRegexp.FindStringSubmatch(strings.TrimSpace(postURL))
	if matches == nil {
		return "", errors.Errorf("not an instagram post URL: %s", postURL)
	}
	return matches[1], nil
}

// FromInput accepts either a shortcode or a post URL and returns a validated
// shortcode.
func FromInput(input string) (string, error) {
	input = strings.TrimSpace(input)
	if strings.Contains(input, "://") {
		code, err := FromPostURL(input)
		if err != nil {
			return "", model.WrapError(model.ErrorKindInvalidFormat, err, "parse post URL")
		}
		input = code
	}
	return Validate(input)
}
