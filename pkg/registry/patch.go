package registry

import "strings"

// Append splices a pre-rendered batch of Entry Blocks into the registry
// selected by opts, immediately before the registry's closing delimiter.
// The document text is updated in memory only; callers persist with Save.
//
// The batch is trusted to be well-formed entry text ending in a separator
// (the contract the generator's output follows). A separator between the
// previous entry and the batch is added only when the reconciler decides
// one is missing, so the result never carries a doubled or absent comma at
// the seam. On any error the text is left untouched.
func (d *Document) Append(batch string, opts LocateOptions) error {
	loc, err := Locate(d.Text, opts)
	if err != nil {
		return err
	}
	d.Text = splice(d.Text, loc, batch)
	return nil
}

// AppendRecords renders records in order and splices them as one batch.
// Record ids must be unique within the batch and must not collide with an
// entry key already present in the document; a collision aborts with
// ErrDuplicateKey before anything is modified.
func (d *Document) AppendRecords(records []Record, opts LocateOptions) error {
	seen := make(map[string]struct{}, len(records))
	for _, k := range Keys(d.Text) {
		seen[k] = struct{}{}
	}
	for _, r := range records {
		if _, dup := seen[r.ID]; dup {
			return NewDuplicateKeyError(r.ID)
		}
		seen[r.ID] = struct{}{}
	}

	batch, err := RenderAll(records)
	if err != nil {
		return err
	}
	return d.Append(batch, opts)
}

// splice concatenates document[:insert] + separator? + batch +
// document[insert:]. The separator, when needed, is placed directly after
// the last non-whitespace character so the previous entry reads naturally;
// the whitespace that followed it is preserved byte for byte.
func splice(text string, loc Location, batch string) string {
	prefix := text[:loc.Insert]
	suffix := text[loc.Insert:]
	if NeedsSeparator(text, loc.Insert) {
		trimmed := strings.TrimRight(prefix, " \t\r\n")
		prefix = trimmed + Separator + prefix[len(trimmed):]
	}
	return prefix + "\n" + batch + "\n" + suffix
}
