package generator

import (
	"strings"

	"github.com/jlrickert/splice/pkg/registry"
)

// BatchHeader opens every generated batch file.
const BatchHeader = "// Generated trend presets"

// RenderBatch serializes records into splice-ready batch text: a header
// comment, then each entry block preceded by an id comment and separated by
// blank lines. Comments are legal inside the target object literal, so the
// batch can be appended verbatim.
func RenderBatch(records []registry.Record) (string, error) {
	var b strings.Builder
	b.WriteString(BatchHeader)
	for _, r := range records {
		block, err := r.Render()
		if err != nil {
			return "", err
		}
		b.WriteString("\n  // ")
		b.WriteString(r.ID)
		b.WriteString("\n")
		b.WriteString(block)
		b.WriteString("\n")
	}
	return b.String(), nil
}
