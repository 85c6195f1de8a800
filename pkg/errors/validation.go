package errors

import (
	"net/url"
	"strings"
	"unicode"
)

// ValidateCount validates a numeric search filter. Zero is the "no filter"
// sentinel and is accepted; negative values are rejected.
func ValidateCount(name string, n int) error {
	if n < 0 {
		return New(ErrCodeInvalidFilter, "%s must be >= 0, got %d", name, n)
	}
	return nil
}

// ValidateLanguage validates a language filter value.
// The empty string is the "no filter" sentinel and is accepted.
//
// Validation rules:
//   - Maximum length of 100 characters
//   - No control characters
//   - No '+' (it would start a new query clause)
func ValidateLanguage(lang string) error {
	if lang == "" {
		return nil
	}

	const maxLanguageLength = 100
	if len(lang) > maxLanguageLength {
		return New(ErrCodeInvalidFilter, "language too long (max %d characters)", maxLanguageLength)
	}

	for _, r := range lang {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidFilter, "language contains invalid control characters")
		}
	}

	if strings.Contains(lang, "+") {
		return New(ErrCodeInvalidFilter, "language cannot contain '+': %q", lang)
	}

	return nil
}

// ValidateURL validates an API base URL.
// It ensures the URL parses and has a safe scheme (http or https).
func ValidateURL(rawURL string) error {
	if rawURL == "" {
		return New(ErrCodeInvalidInput, "URL cannot be empty")
	}

	if !strings.HasPrefix(rawURL, "http://") && !strings.HasPrefix(rawURL, "https://") {
		return New(ErrCodeInvalidInput, "URL must use http or https scheme")
	}

	u, err := url.Parse(rawURL)
	if err != nil {
		return Wrap(ErrCodeInvalidInput, err, "invalid URL %q", rawURL)
	}
	if u.Host == "" {
		return New(ErrCodeInvalidInput, "URL has no host: %q", rawURL)
	}

	return nil
}
