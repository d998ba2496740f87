package tuning

import (
	"strings"

	"helmhub/pkg/models"
)

// NormalizeClassKey converts a free-form class name into a lookup key:
// lowercase, keeping only [a-z0-9]. Everything else is dropped outright
// rather than replaced with a separator, so "J/70", "j 70" and "J-70"
// all normalize to "j70". Idempotent and total.
func NormalizeClassKey(value string) string {
	value = strings.ToLower(value)
	var b strings.Builder
	b.Grow(len(value))
	for _, r := range value {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// classAliases maps normalized alternate spellings to the canonical
// class key used in defaultGuides. The mapping is consulted after
// normalization, so entries here must already be normalized.
var classAliases = map[string]string{
	"laser":               "ilca7",
	"laserstandard":       "ilca7",
	"ilca":                "ilca7",
	"etchells22":          "etchells",
	"e22":                 "etchells",
	"internationaldragon": "dragon",
	"dragonclass":         "dragon",
	"j70class":            "j70",
	"opti":                "optimist",
	"optimistdinghy":      "optimist",
	"ioddragon":           "dragon",
}

// ResolveClassKey normalizes a class name and maps known aliases to
// the canonical key. Unknown keys pass through unchanged.
func ResolveClassKey(className string) string {
	key := NormalizeClassKey(className)
	if canonical, ok := classAliases[key]; ok {
		return canonical
	}
	return key
}

// DefaultGuidesForClass returns the built-in tuning guides for the
// given class name. The name may be any spelling a user might type; it
// is normalized and alias-resolved before lookup. An empty input or an
// unknown class yields an empty result, never an error.
//
// The returned slice is shared static data; callers must not mutate it.
func DefaultGuidesForClass(className string) []models.TuningGuide {
	if className == "" {
		return nil
	}

	return defaultGuides[ResolveClassKey(className)]
}

// AllDefaultGuides exposes the full built-in library, keyed by
// canonical class key, for enumeration. Same sharing rule as
// DefaultGuidesForClass: treat the result as read-only.
func AllDefaultGuides() map[string][]models.TuningGuide {
	return defaultGuides
}
