package generator

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/jlrickert/splice/pkg/registry"
)

// extraTags are appended to every generated preset after the category's own
// tags.
var extraTags = []string{"Pattern", "2025Trend"}

// Options controls one generation run.
type Options struct {
	// Count is the total number of presets to generate, spread evenly
	// across categories with the remainder going to the first ones.
	Count int

	// Seed drives the pseudo-random element picks. Equal seeds produce
	// equal batches.
	Seed int64

	// Categories to draw from. Defaults to DefaultCategories when nil.
	Categories []Category
}

// Generate produces Count preset records. Ids are unique within the batch:
// the positional suffix keeps same-element picks apart, and a random salt
// is added on the rare leftover collision.
func Generate(opts Options) ([]registry.Record, error) {
	if opts.Count <= 0 {
		return nil, fmt.Errorf("generate: count must be positive, got %d", opts.Count)
	}
	cats := opts.Categories
	if cats == nil {
		cats = DefaultCategories()
	}
	if len(cats) == 0 {
		return nil, fmt.Errorf("generate: no categories")
	}
	// Caller-supplied categories have not been through LoadCategories; a
	// one-element or empty pool would hang or panic the pick loop below.
	for _, c := range cats {
		if err := c.validate(); err != nil {
			return nil, fmt.Errorf("generate: %w", err)
		}
	}

	rng := rand.New(rand.NewSource(opts.Seed))
	perCategory := opts.Count / len(cats)
	remainder := opts.Count % len(cats)

	records := make([]registry.Record, 0, opts.Count)
	seen := make(map[string]struct{}, opts.Count)

	for ci, cat := range cats {
		n := perCategory
		if ci < remainder {
			n++
		}
		for i := 0; i < n; i++ {
			records = append(records, generateOne(rng, cat, i+1, seen))
		}
	}
	return records, nil
}

func generateOne(rng *rand.Rand, cat Category, ordinal int, seen map[string]struct{}) registry.Record {
	element1 := cat.Elements[rng.Intn(len(cat.Elements))]
	element2 := cat.Elements[rng.Intn(len(cat.Elements))]
	for element2 == element1 {
		element2 = cat.Elements[rng.Intn(len(cat.Elements))]
	}
	color := cat.Colors[rng.Intn(len(cat.Colors))]
	layout := cat.Layouts[rng.Intn(len(cat.Layouts))]
	vibe := cat.Vibes[rng.Intn(len(cat.Vibes))]

	id := fmt.Sprintf("%s_%s_%d", cat.Key, strings.ReplaceAll(element1, " ", "_"), ordinal)
	for {
		if _, dup := seen[id]; !dup {
			break
		}
		id = fmt.Sprintf("%s_%d", id, 100+rng.Intn(900))
	}
	seen[id] = struct{}{}

	label := fmt.Sprintf("%s %s", cat.LabelBase, titleCase(element1))
	nameEn := fmt.Sprintf("%s %d", label, ordinal)
	description := fmt.Sprintf("%s/%s - %s", element1, element2, color)
	prompt := fmt.Sprintf(
		"Style: %s aesthetic (%s). Layout: %s. Colors: %s. Elements: %s, %s. Vibe: %s.",
		cat.LabelBase, vibe, layout, color, element1, element2, vibe,
	)

	tags := make([]string, 0, len(cat.Tags)+len(extraTags))
	tags = append(tags, cat.Tags...)
	tags = append(tags, extraTags...)

	return registry.Record{
		ID: id,
		Fields: []registry.Field{
			{Name: "id", Str: id},
			{Name: "label", Str: label},
			{Name: "nameEn", Str: nameEn},
			{Name: "description", Str: description},
			{Name: "prompt", Str: prompt},
			{Name: "tags", List: tags},
			{Name: "category", Str: cat.Kind},
		},
	}
}

// titleCase upper-cases the first letter of each space-separated word.
// The element pools are plain ASCII, so no locale handling is needed.
func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
