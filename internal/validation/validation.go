package validation

import (
	"net/url"
	"regexp"
	"strings"
	"unicode"
)

var (
	// EmailRegex validates email format
	emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

	// slugRegex covers both agency subdomains and landing page slugs
	slugRegex = regexp.MustCompile(`^[a-z0-9-]+$`)

	hexColorRegex = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)
)

// IsValidEmail checks if the string is a valid email format
func IsValidEmail(email string) bool {
	if len(email) > 254 {
		return false
	}
	return emailRegex.MatchString(email)
}

// IsValidSlug checks for a non-empty run of lowercase letters, digits and hyphens
func IsValidSlug(s string) bool {
	return slugRegex.MatchString(s)
}

// IsValidHexColor checks for a #RRGGBB color
func IsValidHexColor(s string) bool {
	return hexColorRegex.MatchString(s)
}

// IsValidURL checks for an absolute URL with a scheme and host
func IsValidURL(s string) bool {
	if strings.ContainsAny(s, " \t\n") {
		return false
	}
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	return u.Scheme != "" && u.Host != ""
}

// IsValidPort checks the TCP port range
func IsValidPort(port int) bool {
	return port >= 1 && port <= 65535
}

// IsBlank reports whether s has no visible characters
func IsBlank(s string) bool {
	return strings.TrimFunc(s, unicode.IsSpace) == ""
}

// SanitizeString removes potentially dangerous characters for display
func SanitizeString(s string) string {
	// Remove null bytes
	s = strings.ReplaceAll(s, "\x00", "")

	// Remove control characters except newlines and tabs
	var result strings.Builder
	for _, r := range s {
		if r == '\n' || r == '\r' || r == '\t' || !unicode.IsControl(r) {
			result.WriteRune(r)
		}
	}

	return result.String()
}
