package model

import (
	"strings"

	"github.com/rlaidlaw/pwdbview/pkg/signal"
)

// Resolve matches a user-supplied target against the graph's sites.
// Match order:
//  1. signal prefix mapped to a model site name (e.g. "Digital" →
//     "Left Digital Artery 3")
//  2. exact site identifier
//  3. unique match on the bare name with any parenthetical qualifier
//     stripped (e.g. "MiddleCerebralArtery" matching
//     "MiddleCerebralArtery(M1)")
//
// Multiple bare-name matches fail with the full candidate list rather than
// silently picking one.
func (g *Graph) Resolve(target string) (*Site, error) {
	target = strings.TrimSpace(target)

	if siteName, ok := signal.SiteForPrefix(target); ok {
		if site, found := g.SiteByName(siteName); found {
			return site, nil
		}
	}

	if site, found := g.SiteByName(target); found {
		return site, nil
	}

	var candidates []string
	var match *Site
	for i := range g.sites {
		if bareName(g.sites[i].Name) == target {
			candidates = append(candidates, g.sites[i].Name)
			match = &g.sites[i]
		}
	}
	switch len(candidates) {
	case 0:
		return nil, notFoundError(target)
	case 1:
		return match, nil
	default:
		return nil, ambiguousError(target, candidates)
	}
}

// ResolvePath resolves the target and returns the ordered path from the
// root to it.
func (g *Graph) ResolvePath(target string) ([]*Site, error) {
	site, err := g.Resolve(target)
	if err != nil {
		return nil, err
	}
	return g.PathTo(site), nil
}

// bareName strips a trailing parenthetical qualifier
func bareName(name string) string {
	if i := strings.IndexByte(name, '('); i > 0 {
		return strings.TrimSpace(name[:i])
	}
	return name
}
