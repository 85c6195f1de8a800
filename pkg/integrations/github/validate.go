package github

import (
	"fmt"
	"net/url"
	"strings"
)

// ValidateResourceURL checks that a provider-supplied resource URL (such as a
// search item's languages_url) is an absolute URL on the same scheme and host
// as base.
func ValidateResourceURL(base *url.URL, raw string) error {
	if raw == "" {
		return fmt.Errorf("resource URL is empty")
	}
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid resource URL %q: %w", raw, err)
	}
	if !u.IsAbs() {
		return fmt.Errorf("resource URL %q is not absolute", raw)
	}
	if base == nil {
		return nil
	}
	if !strings.EqualFold(u.Scheme, base.Scheme) || !strings.EqualFold(u.Host, base.Host) {
		return fmt.Errorf("resource URL %q is not on API host %s", raw, base.Host)
	}
	return nil
}
