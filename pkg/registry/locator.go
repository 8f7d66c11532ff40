package registry

import (
	"fmt"
	"strings"
)

// LocateOptions selects the registry block inside a document.
type LocateOptions struct {
	// Anchor is a literal string expected to occur exactly once, immediately
	// after the registry of interest (typically the declaration of the next
	// top-level construct).
	Anchor string

	// Open, when non-empty, is the declaration of the registry itself. It
	// enables the structural guard: delimiters between the registry's
	// opening brace and the computed insertion point must balance, so a
	// nested container can never fool the backward scan into splicing at
	// the wrong brace.
	Open string
}

// Location is a computed insertion target inside a document.
type Location struct {
	// Marker is the byte offset of the anchor marker.
	Marker int

	// Insert is the byte offset of the registry's closing delimiter, the
	// position immediately before which new Entry Blocks are spliced.
	Insert int
}

// Locate finds the insertion point for new entries: the last closing brace
// before the first occurrence of the anchor marker. The registry's contents
// are never parsed; correctness rests on the anchor being unique and the
// registry being a single-level object literal. Supplying LocateOptions.Open
// rejects documents that violate that assumption with ErrStructuralMismatch
// instead of returning a corrupting offset.
func Locate(text string, opts LocateOptions) (Location, error) {
	marker := strings.Index(text, opts.Anchor)
	if opts.Anchor == "" || marker == -1 {
		return Location{}, NewMarkerNotFoundError(opts.Anchor)
	}

	insert := strings.LastIndex(text[:marker], "}")
	if insert == -1 {
		return Location{}, NewContainerNotFoundError(opts.Anchor, marker)
	}

	loc := Location{Marker: marker, Insert: insert}
	if opts.Open != "" {
		if err := verifyBalance(text, opts.Open, insert); err != nil {
			return Location{}, err
		}
	}
	return loc, nil
}

// verifyBalance checks that between the registry's opening brace (the first
// "{" after the open marker) and the insertion point every nested structure
// has been closed and the registry itself has not: the running depth must
// stay positive and come back to exactly one at the insertion point.
func verifyBalance(text, open string, insert int) error {
	decl := strings.Index(text, open)
	if decl == -1 {
		return NewStructuralMismatchError(fmt.Sprintf("registry declaration %q not found", open))
	}
	rel := strings.Index(text[decl:], "{")
	if rel == -1 {
		return NewStructuralMismatchError(fmt.Sprintf("no opening delimiter after declaration %q", open))
	}
	opening := decl + rel
	if opening >= insert {
		return NewStructuralMismatchError("insertion point precedes the registry opening")
	}

	depth := 1
	for i := opening + 1; i < insert; i++ {
		switch text[i] {
		case '{':
			depth++
		case '}':
			depth--
		}
		if depth == 0 {
			return NewStructuralMismatchError("registry closes before the insertion point")
		}
	}
	if depth != 1 {
		return NewStructuralMismatchError(fmt.Sprintf("unbalanced delimiters before insertion point (depth %d)", depth))
	}
	return nil
}
