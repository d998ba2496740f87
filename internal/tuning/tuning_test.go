package tuning

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeClassKey(t *testing.T) {
	cases := map[string]string{
		"J/70":          "j70",
		"j 70":          "j70",
		"ILCA 7":        "ilca7",
		"Etchells 22":   "etchells22",
		"  Dragon  ":    "dragon",
		"Laser":         "laser",
		"420er":         "420er",
		"":              "",
		"!!! ---":       "",
		"Flying-Dutchman": "flyingdutchman",
	}
	for in, want := range cases {
		assert.Equal(t, want, NormalizeClassKey(in), "input %q", in)
	}
}

func TestNormalizeClassKeyIdempotent(t *testing.T) {
	inputs := []string{"J/70", "Etchells 22", "ilca7", "Ö Jolle", "x y z 1 2 3", ""}
	for _, in := range inputs {
		once := NormalizeClassKey(in)
		assert.Equal(t, once, NormalizeClassKey(once), "input %q", in)
	}
}

func TestDefaultGuidesForClassEmptyInput(t *testing.T) {
	assert.Empty(t, DefaultGuidesForClass(""))
}

func TestDefaultGuidesForClassUnknown(t *testing.T) {
	assert.Empty(t, DefaultGuidesForClass("nonexistentclass"))
	assert.Empty(t, DefaultGuidesForClass("!!!"))
}

func TestDefaultGuidesForClassAliases(t *testing.T) {
	laser := DefaultGuidesForClass("Laser")
	ilca := DefaultGuidesForClass("ILCA 7")
	require.NotEmpty(t, laser)
	assert.Equal(t, ilca, laser)

	// "Etchells 22" normalizes to etchells22, then alias-resolves
	e22 := DefaultGuidesForClass("Etchells 22")
	require.Len(t, e22, 1)
	assert.Equal(t, e22, DefaultGuidesForClass("etchells"))
}

func TestDefaultGuidesForClassPassThrough(t *testing.T) {
	// canonical key with no alias entry resolves directly
	guides := DefaultGuidesForClass("dragon")
	require.NotEmpty(t, guides)
	assert.Equal(t, "North Sails", guides[0].Source)
}

func TestDragonKeepsBothGuides(t *testing.T) {
	guides := DefaultGuidesForClass("Dragon")
	require.Len(t, guides, 2)
	// detailed sailmaker guide stays first
	assert.Equal(t, "North Sails", guides[0].Source)
	assert.Equal(t, "class association", guides[1].Source)
}

func TestAllDefaultGuidesKeys(t *testing.T) {
	lib := AllDefaultGuides()
	for _, key := range []string{"dragon", "j70", "etchells", "ilca7", "optimist"} {
		require.Contains(t, lib, key)
		require.NotEmpty(t, lib[key], "class %s has no guides", key)
	}
}

func TestAliasTargetsExistInLibrary(t *testing.T) {
	lib := AllDefaultGuides()
	for alias, canonical := range classAliases {
		assert.Equal(t, alias, NormalizeClassKey(alias), "alias %q not normalized", alias)
		assert.Contains(t, lib, canonical, "alias %q points at missing class %q", alias, canonical)
	}
}

func TestGuideSectionsOrdered(t *testing.T) {
	// lookups return the same shared slice every time
	a := DefaultGuidesForClass("j70")
	b := DefaultGuidesForClass("J/70")
	require.NotEmpty(t, a)
	require.Len(t, a, len(b))
	for i := range a {
		assert.Equal(t, a[i].Title, b[i].Title)
	}
}
