package validation

import (
	"net/url"
	"strings"
	"unicode/utf8"
)

// MaxQueryLength is the longest search text accepted, in runes.
const MaxQueryLength = 200

// MaxReasonLength caps reason text accepted by the copy endpoint, in runes.
const MaxReasonLength = 500

// NormalizeQuery trims surrounding whitespace from search text.
func NormalizeQuery(query string) string {
	return strings.TrimSpace(query)
}

// ValidateQuery rejects normalized search text longer than MaxQueryLength.
// Queries are never shortened, since a prefix can match reasons the full text does not.
func ValidateQuery(query string) (bool, string) {
	if utf8.RuneCountInString(query) > MaxQueryLength {
		return false, "query is too long"
	}
	return true, ""
}

// ValidateReason checks reason text submitted by a client before it is
// looked up in the catalog.
func ValidateReason(reason string) (bool, string) {
	if strings.TrimSpace(reason) == "" {
		return false, "reason is required"
	}
	if utf8.RuneCountInString(reason) > MaxReasonLength {
		return false, "reason is too long"
	}
	return true, ""
}

// ValidateURL checks if a URL is valid and uses an allowed scheme (http/https only).
// This prevents javascript:, data:, vbscript:, and other dangerous URL schemes.
func ValidateURL(urlStr string) (bool, string) {
	if urlStr == "" {
		return false, "URL is required"
	}

	u, err := url.Parse(urlStr)
	if err != nil {
		return false, "Invalid URL format"
	}

	scheme := strings.ToLower(u.Scheme)
	if scheme != "http" && scheme != "https" {
		return false, "URL must use http:// or https:// scheme"
	}

	if u.Host == "" {
		return false, "URL must have a valid host"
	}

	return true, ""
}
