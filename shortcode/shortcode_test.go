package shortcode

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/truemediaorg/igfetch/model"
)

func TestValidate(t *testing.T) {
	t.Run("accepts well-formed shortcodes", func(t *testing.T) {
		for _, input := range []string{"Cx1YzAbCdEf", "abc", "A_b-9", "-", "_"} {
			code, err := Validate(input)
			assert.NoErrorf(t, err, "expected %q to be accepted", input)
			assert.Equal(t, input, code)
		}
	})

	t.Run("rejects empty input as missing", func(t *testing.T) {
		_, err := Validate("")
		assert.Error(t, err)
		assert.Equal(t, model.ErrorKindMissingIdentifier, model.KindOf(err))
	})

	testCases := []struct {
		description string
		input       string
	}{
		{"slash", "has/slash"},
		{"dot", "has.dot"},
		{"full post URL", "https://www.instagram.com/p/Cx1YzAbCdEf/"},
		{"space", "abc def"},
		{"question mark", "abc?x=1"},
		{"non-ascii letter", "café"},
		{"percent encoding", "abc%2F"},
		{"trailing newline", "abc\n"},
	}
	for _, testCase := range testCases {
		t.Run("rejects "+testCase.description, func(t *testing.T) {
			code, err := Validate(testCase.input)
			assert.Error(t, err)
			assert.Equal(t, "", code)
			assert.Equal(t, model.ErrorKindInvalidFormat, model.KindOf(err))
		})
	}
}

func TestFromPostURL(t *testing.T) {
	t.Run("successfully parses post, reel and tv URLs", func(t *testing.T) {
		for _, postURL := range []string{
			"https://www.instagram.com/p/Cx1YzAbCdEf/",
			"https://instagram.com/p/Cx1YzAbCdEf",
			"http://www.instagram.com/reel/Cx1YzAbCdEf/?igsh=abc",
			"https://www.instagram.com/reels/Cx1YzAbCdEf/",
			"https://www.instagram.com/tv/Cx1YzAbCdEf",
			"https://www.instagram.com/some.user/p/Cx1YzAbCdEf/",
		} {
			code, err := FromPostURL(postURL)
			assert.NoErrorf(t, err, "expected %s to parse", postURL)
			assert.Equal(t, "Cx1YzAbCdEf", code)
		}
	})

	t.Run("rejects other URLs", func(t *testing.T) {
		code, err := FromPostURL("https://www.someotherwebsite.com/p/Cx1YzAbCdEf")
		assert.Error(t, err)
		assert.Equal(t, "", code)
	})
}

func TestFromInput(t *testing.T) {
	code, err := FromInput(" https://www.instagram.com/p/Cx1YzAbCdEf/ ")
	assert.NoError(t, err)
	assert.Equal(t, "Cx1YzAbCdEf", code)

	code, err = FromInput("Cx1YzAbCdEf")
	assert.NoError(t, err)
	assert.Equal(t, "Cx1YzAbCdEf", code)

	_, err = FromInput("ftp://www.instagram.com/p/Cx1YzAbCdEf/")
	assert.Equal(t, model.ErrorKindInvalidFormat, model.KindOf(err))
}
