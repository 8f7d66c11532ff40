// Package registry implements the incremental structured-literal patch
// engine used to grow large hand-edited preset registry files in place.
//
// A registry file holds one large object literal keyed by preset id. The
// engine appends serialized entries just before the literal's closing
// delimiter without parsing the file, reconciles the separator between the
// previous entry and the new content, and can normalize entry keys that are
// illegal as bare identifiers. All operations assemble the full new
// document in memory; nothing is written until the splice succeeded.
package registry

import (
	"strings"
)

// Field is one name/value pair of a Record. Exactly one of Str or List is
// rendered; a non-nil List takes precedence.
type Field struct {
	Name string
	Str  string
	List []string
}

// Record is one logical preset produced by a generator: an id plus an
// ordered list of fields. Field order is preserved verbatim when rendering.
type Record struct {
	ID     string
	Fields []Field
}

// Rendering indentation of the target registry files: entries sit at one
// level, their fields at two.
const (
	entryIndent = "  "
	fieldIndent = "    "
)

// QuoteKey returns the entry key as it must appear in the target file: the
// bare identifier when legal, the single-quoted form when the key contains a
// character outside [A-Za-z0-9_].
func QuoteKey(key string) string {
	if strings.ContainsRune(key, '-') {
		return "'" + key + "'"
	}
	return key
}

// quoteString renders s as a single-quoted string literal with backslashes,
// quotes and line breaks escaped.
func quoteString(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 2)
	b.WriteByte('\'')
	for _, r := range s {
		switch r {
		case '\\':
			b.WriteString(`\\`)
		case '\'':
			b.WriteString(`\'`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte('\'')
	return b.String()
}

// quoteList renders values as a literal array of single-quoted strings.
func quoteList(values []string) string {
	quoted := make([]string, 0, len(values))
	for _, v := range values {
		quoted = append(quoted, quoteString(v))
	}
	return "[" + strings.Join(quoted, ", ") + "]"
}

// Render serializes the record as one Entry Block terminated by a
// separator:
//
//	key: {
//	  id: 'key',
//	  tags: ['a', 'b'],
//	},
//
// Every field appears in declaration order; none are omitted or reordered.
// Field values are not validated beyond what rendering itself requires, so
// callers feeding malformed values get malformed but text-complete output.
func (r Record) Render() (string, error) {
	if strings.TrimSpace(r.ID) == "" {
		return "", NewMalformedRecordError("", "empty id")
	}

	var b strings.Builder
	b.WriteString(entryIndent)
	b.WriteString(QuoteKey(r.ID))
	b.WriteString(": {\n")
	for i, f := range r.Fields {
		if strings.TrimSpace(f.Name) == "" {
			return "", NewMalformedRecordError(r.ID, "field with empty name")
		}
		b.WriteString(fieldIndent)
		b.WriteString(f.Name)
		b.WriteString(": ")
		if f.List != nil {
			b.WriteString(quoteList(f.List))
		} else {
			b.WriteString(quoteString(f.Str))
		}
		if i < len(r.Fields)-1 {
			b.WriteByte(',')
		}
		b.WriteByte('\n')
	}
	b.WriteString(entryIndent)
	b.WriteString("},")
	return b.String(), nil
}

// RenderAll serializes records in order, one Entry Block per record joined
// with blank lines, each already carrying its trailing separator.
func RenderAll(records []Record) (string, error) {
	blocks := make([]string, 0, len(records))
	for _, r := range records {
		block, err := r.Render()
		if err != nil {
			return "", err
		}
		blocks = append(blocks, block)
	}
	return strings.Join(blocks, "\n\n"), nil
}
