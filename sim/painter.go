package sim

import (
	"cmp"
	"slices"
)

// Order returns entities sorted farthest to nearest by foot key for
// back-to-front drawing. Equal keys keep their input order. The input slice
// is left untouched.
func Order[E Entity](entities []E) []E {
	out := slices.Clone(entities)
	slices.SortStableFunc(out, func(a, b E) int {
		return cmp.Compare(a.Spatial().FootKey(), b.Spatial().FootKey())
	})
	return out
}
