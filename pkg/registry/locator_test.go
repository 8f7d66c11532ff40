package registry_test

import (
	"testing"

	"github.com/jlrickert/splice/pkg/registry"
	"github.com/stretchr/testify/require"
)

const sampleDoc = "export const DEFS = {\n" +
	"  a: { id: 'a' },\n" +
	"  b: { id: 'b', tags: ['x'] }\n" +
	"};\n\n" +
	"export const PRESETS = {};\n"

func TestLocate_FindsClosingBraceBeforeAnchor(t *testing.T) {
	t.Parallel()

	loc, err := registry.Locate(sampleDoc, registry.LocateOptions{
		Anchor: "export const PRESETS",
	})
	require.NoError(t, err)
	require.Equal(t, byte('}'), sampleDoc[loc.Insert])
	// the located brace is the registry terminator in "};", not an entry's
	require.Equal(t, "};", sampleDoc[loc.Insert:loc.Insert+2])
	require.Less(t, loc.Insert, loc.Marker)
}

func TestLocate_MissingMarker(t *testing.T) {
	t.Parallel()

	_, err := registry.Locate(sampleDoc, registry.LocateOptions{
		Anchor: "export const GONE",
	})
	require.Error(t, err)
	require.True(t, registry.IsMarkerNotFound(err))

	var typed *registry.MarkerNotFoundError
	require.ErrorAs(t, err, &typed)
	require.Equal(t, "export const GONE", typed.Marker)
}

func TestLocate_EmptyAnchorIsMissingMarker(t *testing.T) {
	t.Parallel()

	_, err := registry.Locate(sampleDoc, registry.LocateOptions{})
	require.True(t, registry.IsMarkerNotFound(err))
}

func TestLocate_NoContainerBeforeMarker(t *testing.T) {
	t.Parallel()

	doc := "// header only\nexport const PRESETS = {};\n"
	_, err := registry.Locate(doc, registry.LocateOptions{
		Anchor: "export const PRESETS",
	})
	require.True(t, registry.IsContainerNotFound(err))
}

func TestLocate_GuardAcceptsBalancedRegistry(t *testing.T) {
	t.Parallel()

	loc, err := registry.Locate(sampleDoc, registry.LocateOptions{
		Anchor: "export const PRESETS",
		Open:   "export const DEFS",
	})
	require.NoError(t, err)
	require.Equal(t, "};", sampleDoc[loc.Insert:loc.Insert+2])
}

func TestLocate_GuardRejectsUnbalancedNesting(t *testing.T) {
	t.Parallel()

	// The last "}" before the anchor closes a nested object, not the
	// registry itself: a naive backward scan would splice inside an entry.
	doc := "export const DEFS = {\n" +
		"  a: { id: 'a', inner: { deep: 'x' }\n" + // entry never closed
		"export const PRESETS = {};\n"
	_, err := registry.Locate(doc, registry.LocateOptions{
		Anchor: "export const PRESETS",
		Open:   "export const DEFS",
	})
	require.Error(t, err)
	require.True(t, registry.IsStructuralMismatch(err))
}

func TestLocate_GuardRejectsRegistryClosedEarly(t *testing.T) {
	t.Parallel()

	doc := "export const DEFS = {\n" +
		"  a: { id: 'a' }\n" +
		"};\n" +
		"const stray = { x: { y: 1 } };\n" + // later braces trail the registry
		"export const PRESETS = {};\n"
	_, err := registry.Locate(doc, registry.LocateOptions{
		Anchor: "export const PRESETS",
		Open:   "export const DEFS",
	})
	require.True(t, registry.IsStructuralMismatch(err))
}

func TestLocate_GuardMissingDeclaration(t *testing.T) {
	t.Parallel()

	_, err := registry.Locate(sampleDoc, registry.LocateOptions{
		Anchor: "export const PRESETS",
		Open:   "export const NOPE",
	})
	require.True(t, registry.IsStructuralMismatch(err))
}
