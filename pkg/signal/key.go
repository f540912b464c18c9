package signal

import (
	"fmt"
	"strings"
)

// Key identifies one time series within a subject: the site's signal prefix,
// the signal type, and an optional direction component distinguishing
// multiple recorded kinds at the same site (empty for the common case).
type Key struct {
	Prefix    string
	Type      Type
	Direction string
}

// Name renders the key as it appears in record headers, e.g. "Radial_U".
func (k Key) Name() string {
	if k.Direction != "" {
		return fmt.Sprintf("%s_%s_%s", k.Prefix, k.Type, k.Direction)
	}
	return fmt.Sprintf("%s_%s", k.Prefix, k.Type)
}

// Site returns the anatomical site name for the key's prefix, falling back
// to the prefix itself when no mapping exists.
func (k Key) Site() string {
	if site, ok := SiteForPrefix(k.Prefix); ok {
		return site
	}
	return k.Prefix
}

// ParseName splits a header-style signal name such as "Radial_U" into a Key.
// The prefix must map to a known site and the suffix must be a recognized
// type.
func ParseName(name string) (Key, error) {
	name = strings.TrimSpace(name)
	parts := strings.Split(name, "_")
	if len(parts) < 2 {
		return Key{}, fmt.Errorf("signal name %q: expected <Prefix>_<Type>", name)
	}

	prefix := parts[0]
	if _, ok := SiteForPrefix(prefix); !ok {
		return Key{}, fmt.Errorf("signal name %q: unrecognized site prefix %q", name, prefix)
	}

	t, err := ParseType(parts[1])
	if err != nil {
		return Key{}, fmt.Errorf("signal name %q: %w", name, err)
	}

	key := Key{Prefix: prefix, Type: t}
	if len(parts) > 2 {
		key.Direction = strings.Join(parts[2:], "_")
	}
	return key, nil
}

// ParseNameList parses a comma-separated signal-name allow-list, preserving
// first occurrence order and dropping duplicates.
func ParseNameList(s string) ([]Key, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}

	var out []Key
	seen := make(map[Key]struct{})
	for _, part := range strings.Split(s, ",") {
		key, err := ParseName(part)
		if err != nil {
			return nil, err
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, key)
	}
	return out, nil
}

// AliasNames returns the header names that may stand in for the given key.
// Topologies with a complete circle of Willis record the left and right
// middle cerebral arteries as a single MCA signal, so LMCA_* and RMCA_*
// requests fall back to MCA_*.
func AliasNames(k Key) []string {
	name := k.Name()
	if strings.HasPrefix(name, "LMCA_") || strings.HasPrefix(name, "RMCA_") {
		return []string{name, "MCA_" + name[5:]}
	}
	return []string{name}
}
