package content

import (
	"net/url"
	"regexp"
	"strings"
)

var (
	gtagLoader = regexp.MustCompile(`(?s)^<script async src="https://www\.googletagmanager\.com/gtag/js\?id=[A-Za-z0-9\-]+"></script>\s*<script>\s*window\.dataLayer\s*=\s*window\.dataLayer\s*\|\|\s*\[\];.*gtag\('config',\s*'[A-Za-z0-9\-]+'\);?\s*</script>$`)

	inspectletWrapper = regexp.MustCompile(`(?s)^<script type="text/javascript" id="inspectletjs">(.*)</script>$`)

	emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
)

// ValidTrackingScript returns input when it matches one of the pre-approved
// analytics snippet shapes and the empty string otherwise. Tracking scripts
// are optional, so a mismatch is a silent rejection rather than an error.
func ValidTrackingScript(input string) string {
	s := strings.TrimSpace(input)
	if s == "" {
		return ""
	}
	if gtagLoader.MatchString(s) {
		return s
	}
	if m := inspectletWrapper.FindStringSubmatch(s); m != nil {
		// The wrapped payload must be a single inline script: no nested
		// script tags, and it must reference the inspectlet queue.
		body := m[1]
		if !strings.Contains(strings.ToLower(body), "<script") &&
			!strings.Contains(strings.ToLower(body), "</script") &&
			strings.Contains(body, "window.__insp") {
			return s
		}
	}
	return ""
}

// ValidURI reports whether input parses as an absolute http(s) URI.
// Relative or malformed strings are rejected so stored thumbnails can never
// resolve to unexpected site-relative paths.
func ValidURI(input string) bool {
	if strings.TrimSpace(input) == "" {
		return false
	}
	u, err := url.Parse(input)
	if err != nil {
		return false
	}
	return u.IsAbs() && (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// ValidEmail reports whether input looks like a well-formed email address.
func ValidEmail(input string) bool {
	return emailPattern.MatchString(input)
}

// ParseTags splits a comma-delimited tag string into trimmed, deduplicated
// tags, preserving first-seen order.
func ParseTags(input string) []string {
	parts := strings.Split(input, ",")
	tags := make([]string, 0, len(parts))
	seen := make(map[string]struct{}, len(parts))
	for _, p := range parts {
		tag := strings.TrimSpace(p)
		if tag == "" {
			continue
		}
		if _, dup := seen[tag]; dup {
			continue
		}
		seen[tag] = struct{}{}
		tags = append(tags, tag)
	}
	return tags
}
