// Package slug derives URL-safe identifiers from display names. The same
// input always yields the same slug, so renaming an entity recomputes it.
package slug

import (
	"strings"
	"unicode"
)

// Make lowercases the name and collapses every run of non-alphanumeric
// characters into a single hyphen.
func Make(name string) string {
	var b strings.Builder
	b.Grow(len(name))

	pendingHyphen := false
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if pendingHyphen && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingHyphen = false
			b.WriteRune(r)
			continue
		}
		pendingHyphen = true
	}

	return b.String()
}
