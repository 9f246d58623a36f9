package auth

import "regexp"

var disallowedRe = regexp.MustCompile(`[^A-Za-z0-9]`)

// HasDisallowedCharacters reports whether s contains anything besides
// ASCII letters and digits. Whitespace, punctuation and Cyrillic all count.
func HasDisallowedCharacters(s string) bool {
	return disallowedRe.MatchString(s)
}
