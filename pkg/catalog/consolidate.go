package catalog

import (
	"errors"
	"strings"
)

// ErrInconsistentNames reports dataset roots whose record headers disagree
// on something other than the middle-cerebral-artery family.
var ErrInconsistentNames = errors.New("signal names are not consistent across dataset roots")

// ConsolidateNames returns one signal-name list covering every catalog.
// Roots with a complete circle of Willis record a merged MCA signal where
// the variant topologies record LMCA and RMCA separately; that is the only
// tolerated difference, and the L/R naming wins so alias fallback can map it
// back to MCA per root. Any other disagreement is an error.
func ConsolidateNames(catalogs []*Catalog) ([]string, error) {
	if len(catalogs) == 0 {
		return nil, nil
	}
	if len(catalogs) == 1 {
		return catalogs[0].SignalNames(), nil
	}

	nonCommon := nonCommonNames(catalogs)
	if len(nonCommon) == 0 {
		return catalogs[0].SignalNames(), nil
	}

	for name := range nonCommon {
		if !isMCAFamily(name) {
			return nil, ErrInconsistentNames
		}
	}

	// Prefer a catalog that names both sides explicitly
	for _, c := range catalogs {
		hasL, hasR := false, false
		for _, n := range c.SignalNames() {
			hasL = hasL || strings.HasPrefix(n, "LMCA_")
			hasR = hasR || strings.HasPrefix(n, "RMCA_")
		}
		if hasL && hasR {
			return c.SignalNames(), nil
		}
	}
	return nil, ErrInconsistentNames
}

// nonCommonNames finds names that do not appear in every catalog
func nonCommonNames(catalogs []*Catalog) map[string]struct{} {
	counts := make(map[string]int)
	for _, c := range catalogs {
		for _, n := range c.SignalNames() {
			counts[n]++
		}
	}
	out := make(map[string]struct{})
	for n, count := range counts {
		if count != len(catalogs) {
			out[n] = struct{}{}
		}
	}
	return out
}

func isMCAFamily(name string) bool {
	return strings.HasPrefix(name, "MCA") ||
		strings.HasPrefix(name, "LMCA") ||
		strings.HasPrefix(name, "RMCA")
}
