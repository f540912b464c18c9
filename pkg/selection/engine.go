// Package selection intersects user filters, the resolved model path and the
// per-root signal catalogs into one deterministic ordered selection.
package selection

import (
	"errors"
	"sort"

	"github.com/rlaidlaw/pwdbview/pkg/catalog"
	"github.com/rlaidlaw/pwdbview/pkg/logging"
	"github.com/rlaidlaw/pwdbview/pkg/model"
	"github.com/rlaidlaw/pwdbview/pkg/signal"
)

// ErrNoSelection means no item survived filtering across all dataset roots.
var ErrNoSelection = errors.New("selection is empty")

// Item is one entry of the final selection: a subject's signal within one
// dataset root. HeaderName is the name actually recorded in the root, which
// differs from Key.Name() when the MCA alias applies.
type Item struct {
	Root       string
	Subject    int
	Key        signal.Key
	HeaderName string
}

// Filters carries every user-supplied selection dimension, validated at the
// configuration boundary. Empty slices mean "unconstrained".
type Filters struct {
	// Signals is an exact-key allow-list
	Signals []signal.Key
	// Sites is a list of signal prefixes
	Sites []string
	// Types defaults to signal.DefaultTypes when empty
	Types []signal.Type
	// Subjects holds requested subject indices; empty selects every subject
	// present per root
	Subjects []int
	// Path, when non-nil, supersedes Sites with the root-to-target traversal
	Path []*model.Site
}

// Engine builds selections. Stateless apart from its logger.
type Engine struct {
	logger logging.Logger
}

// NewEngine creates a selection engine.
func NewEngine(logger logging.Logger) *Engine {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &Engine{logger: logger}
}

// Build produces the ordered selection for the given filters and catalogs.
// Ordering is canonical: root in input order, subject ascending, site in
// path/filter/catalog order, type in recognized order. Candidates missing
// from a root's catalog are dropped silently; a root yielding nothing is a
// warning; an overall empty result is ErrNoSelection.
func (e *Engine) Build(filters Filters, catalogs []*catalog.Catalog) ([]Item, error) {
	types, err := effectiveTypes(filters.Types)
	if err != nil {
		return nil, err
	}
	allow := allowSet(filters.Signals)

	var items []Item
	for _, cat := range catalogs {
		keys := e.rootKeys(filters, types, allow, cat)

		added := 0
		if len(keys) > 0 {
			for _, subject := range e.rootSubjects(filters.Subjects, cat) {
				for _, k := range keys {
					items = append(items, Item{
						Root:       cat.Root(),
						Subject:    subject,
						Key:        k.key,
						HeaderName: k.header,
					})
					added++
				}
			}
		}
		// No keys, or every requested subject absent from this root
		if added == 0 {
			e.logger.Warn("selection is empty for dataset root",
				logging.Dataset(cat.Root()))
		}
	}

	if len(items) == 0 {
		return nil, ErrNoSelection
	}
	return items, nil
}

type resolvedKey struct {
	key    signal.Key
	header string
}

// rootKeys builds the candidate keys present in one root, in site-major,
// type-minor order.
func (e *Engine) rootKeys(filters Filters, types []signal.Type, allow map[signal.Key]struct{}, cat *catalog.Catalog) []resolvedKey {
	var keys []resolvedKey
	for _, prefix := range e.effectiveSites(filters, cat) {
		for _, t := range types {
			key := signal.Key{Prefix: prefix, Type: t}
			if allow != nil {
				if _, ok := allow[key]; !ok {
					continue
				}
			}
			header, ok := cat.ResolveKey(key)
			if !ok {
				// Catalogs legitimately vary per root
				continue
			}
			keys = append(keys, resolvedKey{key: key, header: header})
		}
	}
	return keys
}

// effectiveSites decides the site dimension: path sites beat the explicit
// site list, which beats every site present in the catalog.
func (e *Engine) effectiveSites(filters Filters, cat *catalog.Catalog) []string {
	if filters.Path != nil {
		var prefixes []string
		for _, site := range filters.Path {
			if prefix, ok := signal.PrefixForSite(site.Name); ok {
				prefixes = append(prefixes, prefix)
			}
		}
		return prefixes
	}
	if len(filters.Sites) > 0 {
		return filters.Sites
	}
	return catalogPrefixes(cat)
}

// catalogPrefixes lists the site prefixes present in a catalog, first
// occurrence order, skipping names that don't parse as <Prefix>_<Type>.
func catalogPrefixes(cat *catalog.Catalog) []string {
	var prefixes []string
	seen := make(map[string]struct{})
	for _, name := range cat.SignalNames() {
		key, err := signal.ParseName(name)
		if err != nil {
			continue
		}
		if _, dup := seen[key.Prefix]; dup {
			continue
		}
		seen[key.Prefix] = struct{}{}
		prefixes = append(prefixes, key.Prefix)
	}
	return prefixes
}

// rootSubjects validates the requested subjects against one root, dropping
// unknown indices with a warning.
func (e *Engine) rootSubjects(requested []int, cat *catalog.Catalog) []int {
	if len(requested) == 0 {
		return cat.Subjects()
	}
	var subjects []int
	for _, s := range requested {
		if !cat.HasSubject(s) {
			e.logger.Warn("subject not present in dataset root, dropping",
				logging.Dataset(cat.Root()), logging.Subject(s))
			continue
		}
		subjects = append(subjects, s)
	}
	return subjects
}

// effectiveTypes validates the type filter and sorts it into canonical
// recognized order. Empty means the default set.
func effectiveTypes(requested []signal.Type) ([]signal.Type, error) {
	if len(requested) == 0 {
		requested = signal.DefaultTypes
	}
	types := make([]signal.Type, 0, len(requested))
	for _, t := range requested {
		if _, err := signal.ParseType(string(t)); err != nil {
			return nil, err
		}
		types = append(types, t)
	}
	sort.SliceStable(types, func(i, j int) bool {
		return signal.TypeOrder(types[i]) < signal.TypeOrder(types[j])
	})
	return types, nil
}

func allowSet(signals []signal.Key) map[signal.Key]struct{} {
	if len(signals) == 0 {
		return nil
	}
	set := make(map[signal.Key]struct{}, len(signals))
	for _, k := range signals {
		set[k] = struct{}{}
	}
	return set
}
