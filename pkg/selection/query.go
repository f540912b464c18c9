package selection

import (
	"fmt"
	"io"
	"strings"

	"github.com/rlaidlaw/pwdbview/pkg/catalog"
	"github.com/rlaidlaw/pwdbview/pkg/signal"
)

// QueryEntry maps one site to the signal types present for it in any of the
// dataset roots.
type QueryEntry struct {
	Prefix string
	Site   string
	Types  []signal.Type
}

// Query resolves the site → types-present mapping without building the full
// selection. Pure read: ordering follows the path (or filter) order exactly
// as Build would use it.
func (e *Engine) Query(filters Filters, catalogs []*catalog.Catalog) ([]QueryEntry, error) {
	types, err := effectiveTypes(filters.Types)
	if err != nil {
		return nil, err
	}
	allow := allowSet(filters.Signals)

	// Site order from the first root; sites only present in later roots are
	// appended in root order
	var prefixes []string
	seen := make(map[string]struct{})
	for _, cat := range catalogs {
		for _, prefix := range e.effectiveSites(filters, cat) {
			if _, dup := seen[prefix]; dup {
				continue
			}
			seen[prefix] = struct{}{}
			prefixes = append(prefixes, prefix)
		}
	}

	var entries []QueryEntry
	for _, prefix := range prefixes {
		entry := QueryEntry{Prefix: prefix}
		if site, ok := signal.SiteForPrefix(prefix); ok {
			entry.Site = site
		} else {
			entry.Site = prefix
		}
		for _, t := range types {
			key := signal.Key{Prefix: prefix, Type: t}
			if allow != nil {
				if _, ok := allow[key]; !ok {
					continue
				}
			}
			for _, cat := range catalogs {
				if _, ok := cat.ResolveKey(key); ok {
					entry.Types = append(entry.Types, t)
					break
				}
			}
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// WriteQuery prints query entries in the tool's query-mode format.
func WriteQuery(w io.Writer, entries []QueryEntry) error {
	for _, entry := range entries {
		names := make([]string, len(entry.Types))
		for i, t := range entry.Types {
			names[i] = string(t)
		}
		line := fmt.Sprintf("%s (%s): [%s]\n", entry.Prefix, entry.Site, strings.Join(names, " "))
		if _, err := io.WriteString(w, line); err != nil {
			return err
		}
	}
	return nil
}
