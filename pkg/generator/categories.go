// Package generator produces batches of preset records from category
// templates. Each category contributes randomized combinations of its
// elements, colors, layouts and vibes; the output is a slice of
// registry.Record values ready for rendering and splicing.
package generator

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// Category is one trend template. Generated presets draw their elements,
// palette, layout and vibe from its pools.
type Category struct {
	// Key prefixes generated preset ids.
	Key string `yaml:"-"`

	// LabelBase seeds labels and prompt style lines, e.g. "Coquette".
	LabelBase string `yaml:"labelBase"`

	// DescBase is a short slash-separated summary of the trend.
	DescBase string `yaml:"descBase"`

	Elements []string `yaml:"elements"`
	Colors   []string `yaml:"colors"`
	Layouts  []string `yaml:"layouts"`
	Vibes    []string `yaml:"vibes"`

	// Tags are carried onto every preset of the category.
	Tags []string `yaml:"tags"`

	// Kind becomes the preset's category field ("lifestyle" or "pattern").
	Kind string `yaml:"kind"`
}

// DefaultCategories returns the built-in 2025 trend set, ordered by key.
func DefaultCategories() []Category {
	return []Category{
		{
			Key:       "anime_manga",
			LabelBase: "Anime Manga",
			DescBase:  "Manga/Halftone/Speedlines",
			Elements: []string{
				"manga eyes", "speed lines", "speech bubbles",
				"magical girl wands", "sparkles",
				"school uniform elements", "chibi characters",
			},
			Colors:  []string{"black and white", "bw with neon pink", "pastel purple", "cyan"},
			Layouts: []string{"manga panel collage", "large character print", "scattered kawaii icons"},
			Vibes:   []string{"cool", "dramatic", "cute", "edgy"},
			Tags:    []string{"动漫", "漫画", "二次元", "流行"},
			Kind:    "pattern",
		},
		{
			Key:       "coquette",
			LabelBase: "Coquette",
			DescBase:  "Bows/Lace/Pearls",
			Elements: []string{
				"satin bows", "pearl strings", "lace trim", "roses",
				"hearts", "swans", "ballet shoes",
			},
			Colors:  []string{"baby pink", "cream", "white", "mocha", "powder blue", "lilac"},
			Layouts: []string{"tossed bows", "dense lace repeat", "scattered pearls"},
			Vibes:   []string{"hyper-feminine", "delicate", "romantic", "soft", "vintage"},
			Tags:    []string{"少女", "蝴蝶结", "芭蕾", "流行"},
			Kind:    "lifestyle",
		},
		{
			Key:       "dopamine_kidcore",
			LabelBase: "Dopamine",
			DescBase:  "Rainbow/Smiles/TieDye",
			Elements: []string{
				"smiley faces", "rainbows", "flowers", "clouds",
				"bears", "lollipops", "tie-dye swirls",
			},
			Colors:  []string{"rainbow", "neon brights", "tie-dye pastel", "sunflower yellow"},
			Layouts: []string{"tie-dye background", "dense sticker scatter", "checkerboard mix"},
			Vibes:   []string{"happy", "playful", "bright", "energetic"},
			Tags:    []string{"多巴胺", "彩虹", "快乐", "童趣"},
			Kind:    "pattern",
		},
		{
			Key:       "pop_culture_meme",
			LabelBase: "Pop Meme",
			DescBase:  "Funny/Irony/Text",
			Elements: []string{
				"funny chickens", "bananas", "sunglasses", "pixel art",
				"memetic text", "cats",
			},
			Colors:  []string{"primary red", "yellow", "white", "blue"},
			Layouts: []string{"central mascot", "text heavy repeat", "grid of memes"},
			Vibes:   []string{"humorous", "ironic", "viral", "fun"},
			Tags:    []string{"趣味", "梗", "流行", "搞笑"},
			Kind:    "pattern",
		},
		{
			Key:       "street_camo",
			LabelBase: "Street Camo",
			DescBase:  "Camo/Graffiti/Distressed",
			Elements: []string{
				"camouflage blobs", "graffiti tags", "spray paint drips",
				"barbed wire", "chains", "skulls",
			},
			Colors:  []string{"forest green", "pink camo", "purple camo", "grey scale", "orange safety"},
			Layouts: []string{"all-over camo", "patchwork camo", "stencil spray"},
			Vibes:   []string{"tough", "streetwear", "trendy", "bold"},
			Tags:    []string{"迷彩", "街头", "潮流", "工装"},
			Kind:    "lifestyle",
		},
		{
			Key:       "y2k_mcbling",
			LabelBase: "Y2K McBling",
			DescBase:  "Rhinestones/Velvet/Slogans",
			Elements: []string{
				"rhinestone hearts", "butterflies", "stars",
				"gothic lettering", "crowns", "flip phones", "cherries",
			},
			Colors:  []string{"hot pink", "silver", "black", "purple", "baby blue", "lime green"},
			Layouts: []string{"sticker bomb", "centered slogan with icons", "all-over monogram"},
			Vibes:   []string{"glamorous", "sassy", "retro-futuristic", "sparkly"},
			Tags:    []string{"Y2K", "千禧", "辣妹", "水钻", "流行"},
			Kind:    "lifestyle",
		},
	}
}

// LoadCategories reads a YAML mapping of category key to template and
// returns the categories sorted by key. Sorting keeps generation
// deterministic regardless of file order.
func LoadCategories(path string) ([]Category, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load categories %q: %w", path, err)
	}
	var raw map[string]Category
	if err := yaml.Unmarshal(b, &raw); err != nil {
		return nil, fmt.Errorf("parse categories %q: %w", path, err)
	}
	if len(raw) == 0 {
		return nil, fmt.Errorf("categories %q: no categories defined", path)
	}

	cats := make([]Category, 0, len(raw))
	for key, c := range raw {
		c.Key = key
		if err := c.validate(); err != nil {
			return nil, fmt.Errorf("categories %q: %w", path, err)
		}
		cats = append(cats, c)
	}
	sort.Slice(cats, func(i, j int) bool { return cats[i].Key < cats[j].Key })
	return cats, nil
}

func (c Category) validate() error {
	if c.Key == "" {
		return fmt.Errorf("category with empty key")
	}
	if len(c.Elements) < 2 {
		return fmt.Errorf("category %q: needs at least two elements", c.Key)
	}
	if len(c.Colors) == 0 || len(c.Layouts) == 0 || len(c.Vibes) == 0 {
		return fmt.Errorf("category %q: colors, layouts and vibes must be non-empty", c.Key)
	}
	return nil
}
