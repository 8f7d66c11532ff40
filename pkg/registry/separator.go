package registry

import "strings"

// Separator is the punctuation required between sibling entries of a
// registry literal.
const Separator = ","

// NeedsSeparator reports whether a separator must be inserted before new
// content spliced at offset at. The text immediately preceding the offset is
// inspected with trailing whitespace stripped:
//
//   - registry's own opening delimiter: the registry is empty, no separator
//   - an existing separator: no separator
//   - anything else: one separator is required
//
// The inspection never looks past the last non-whitespace character, so
// earlier malformed content is neither detected nor repaired here.
func NeedsSeparator(text string, at int) bool {
	if at > len(text) {
		at = len(text)
	}
	before := strings.TrimRight(text[:at], " \t\r\n")
	if before == "" {
		return false
	}
	switch before[len(before)-1] {
	case '{':
		return false
	case ',':
		return false
	}
	return true
}
