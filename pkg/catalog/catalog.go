// Package catalog enumerates which signals and subjects actually exist in a
// dataset root. The selection engine treats a Catalog as ground truth and
// never fabricates an entry.
package catalog

import (
	"sort"

	"github.com/rlaidlaw/pwdbview/pkg/signal"
)

// Catalog holds the signal names and subject indices present in one dataset
// root. Immutable after construction.
type Catalog struct {
	root     string
	names    []string
	nameSet  map[string]struct{}
	subjects []int
	subjSet  map[int]struct{}
}

// New builds a catalog from explicit contents. Subject indices are sorted
// ascending; name order is preserved as given.
func New(root string, subjects []int, names []string) *Catalog {
	c := &Catalog{
		root:    root,
		nameSet: make(map[string]struct{}, len(names)),
		subjSet: make(map[int]struct{}, len(subjects)),
	}
	for _, n := range names {
		if _, dup := c.nameSet[n]; dup {
			continue
		}
		c.nameSet[n] = struct{}{}
		c.names = append(c.names, n)
	}
	for _, s := range subjects {
		if _, dup := c.subjSet[s]; dup {
			continue
		}
		c.subjSet[s] = struct{}{}
		c.subjects = append(c.subjects, s)
	}
	sort.Ints(c.subjects)
	return c
}

// Root returns the dataset root this catalog describes.
func (c *Catalog) Root() string {
	return c.root
}

// SignalNames returns the signal names present, in header order.
func (c *Catalog) SignalNames() []string {
	return c.names
}

// Subjects returns the subject indices present, ascending.
func (c *Catalog) Subjects() []int {
	return c.subjects
}

// HasSubject reports whether the subject index exists in this root.
func (c *Catalog) HasSubject(idx int) bool {
	_, ok := c.subjSet[idx]
	return ok
}

// ResolveKey returns the header name recorded for the key, honoring the
// LMCA/RMCA → MCA alias used by complete circle-of-Willis topologies.
func (c *Catalog) ResolveKey(k signal.Key) (string, bool) {
	for _, name := range signal.AliasNames(k) {
		if _, ok := c.nameSet[name]; ok {
			return name, true
		}
	}
	return "", false
}

// Has reports whether the exact signal name is present.
func (c *Catalog) Has(name string) bool {
	_, ok := c.nameSet[name]
	return ok
}
