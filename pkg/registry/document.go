package registry

import (
	"fmt"
	"os"
	"path/filepath"
)

// Document is the full text of one registry file, loaded in one read and
// persisted in one overwrite. It is the only mutable state the engine
// touches and is always passed explicitly; callers own the single-writer
// discipline for the underlying file.
type Document struct {
	// Path is where the document was loaded from and will be saved to.
	Path string

	// Text is the current full content.
	Text string
}

// LoadDocument reads the registry file at path in full. A missing file
// surfaces as a wrapped os.ErrNotExist so callers can distinguish it from
// structural failures.
func LoadDocument(path string) (*Document, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load registry document %q: %w", path, err)
	}
	return &Document{Path: path, Text: string(b)}, nil
}

// Save overwrites the document's file with its current text. The content is
// written to a temporary file in the same directory and renamed into place,
// so a crashed run never leaves a truncated registry behind.
func (d *Document) Save() error {
	if d.Path == "" {
		return fmt.Errorf("document has no path")
	}
	dir := filepath.Dir(d.Path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating document dir %q: %w", dir, err)
	}
	tmp := d.Path + ".tmp"
	if err := os.WriteFile(tmp, []byte(d.Text), 0o644); err != nil {
		return fmt.Errorf("write temp document %q: %w", tmp, err)
	}
	if err := os.Rename(tmp, d.Path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("rename %q -> %q: %w", tmp, d.Path, err)
	}
	return nil
}
