package site

import (
	"errors"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/goliatone/go-slug"
)

var errSlugInvalid = errors.New("must be lowercase letters or digits separated by single hyphens")

// Slugify lowercases text, turns every run of non-alphanumeric characters into
// a single hyphen and trims hyphens at both ends.
func Slugify(text string) string {
	tokens := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !slugRune(r)
	})
	return strings.Join(tokens, "-")
}

func slugRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

// NormalizeSlug cleans a manually entered slug. Valid slugs are kept as is.
// ASCII input goes through go-slug; anything else, or input go-slug cannot
// turn into a valid slug, falls back to Slugify.
func NormalizeSlug(value string) string {
	value = strings.TrimSpace(value)
	if ValidSlug(value) {
		return value
	}
	if isASCII(value) {
		if normalized, err := slug.Normalize(value); err == nil && ValidSlug(normalized) {
			return normalized
		}
	}
	return Slugify(value)
}

func isASCII(value string) bool {
	for i := 0; i < len(value); i++ {
		if value[i] >= utf8.RuneSelf {
			return false
		}
	}
	return true
}

// ValidSlug reports whether value is a well-formed slug, that is a non-empty
// fixed point of Slugify. Anything Slugify produces from a title is valid.
func ValidSlug(value string) bool {
	return value != "" && Slugify(value) == value
}

func validateSlug(value any) error {
	s, _ := value.(string)
	if s == "" || ValidSlug(s) {
		return nil
	}
	return errSlugInvalid
}
