package registry

import (
	"regexp"
	"strings"
)

// bareKeyPattern matches an entry line whose key is written without quotes:
// optional indentation, then a token of letters, digits, underscores or
// hyphens, then the ": {" that opens the entry. Already-quoted keys do not
// match, which is what makes normalization idempotent.
var bareKeyPattern = regexp.MustCompile(`^(\s*)([A-Za-z0-9_-]+)(\s*:\s*\{)`)

// entryKeyPattern matches any entry line, quoted or bare, and captures the
// key token with its quotes when present. Quotes must pair; lines like
// "'key: {" with a stray quote are not entries and do not match. Used to
// enumerate the keys already present in a document.
var entryKeyPattern = regexp.MustCompile(`^\s*('[A-Za-z0-9_-]+'|[A-Za-z0-9_-]+)\s*:\s*\{`)

// NormalizeKeys rewrites every entry line whose bare key contains a hyphen
// into its single-quoted form and returns the rewritten text with a count of
// changed lines. Lines that do not look like entry openings pass through
// verbatim, and the pass never fails. Running it twice changes nothing.
func NormalizeKeys(text string) (string, int) {
	lines := strings.Split(text, "\n")
	count := 0
	for i, line := range lines {
		m := bareKeyPattern.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		if !strings.Contains(m[2], "-") {
			continue
		}
		lines[i] = m[1] + "'" + m[2] + "'" + m[3] + line[len(m[0]):]
		count++
	}
	return strings.Join(lines, "\n"), count
}

// CountBareKeys reports how many entry lines NormalizeKeys would rewrite
// without modifying anything.
func CountBareKeys(text string) int {
	count := 0
	for _, line := range strings.Split(text, "\n") {
		m := bareKeyPattern.FindStringSubmatch(line)
		if m != nil && strings.Contains(m[2], "-") {
			count++
		}
	}
	return count
}

// Keys returns every entry key found in text, in document order, with
// surrounding quotes stripped.
func Keys(text string) []string {
	var keys []string
	for _, line := range strings.Split(text, "\n") {
		if m := entryKeyPattern.FindStringSubmatch(line); m != nil {
			keys = append(keys, strings.Trim(m[1], "'"))
		}
	}
	return keys
}
