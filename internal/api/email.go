package api

import "strings"

// Prefixes the server puts in front of an email when generation failed
// and it fell back to the built-in template.
var errorPrefixes = []string{
	"⚠️ Error:",
	"⚠️ Authentication Error:",
}

const fallbackMarker = "Here's a basic email template instead:"

// CleanEmail strips the server's error preamble from a fallback email,
// keeping only the template after the marker. Any other text is returned
// verbatim.
func CleanEmail(email string) string {
	if !hasErrorPrefix(email) {
		return email
	}
	_, template, found := strings.Cut(email, fallbackMarker)
	if !found {
		return email
	}
	return strings.TrimSpace(template)
}

func hasErrorPrefix(s string) bool {
	for _, p := range errorPrefixes {
		if strings.HasPrefix(s, p) {
			return true
		}
	}
	return false
}
