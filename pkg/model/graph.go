// Package model builds the rooted arterial tree from a topology description
// and resolves root-to-site paths over it.
package model

// Site is one named segment of the arterial tree. Sites are stored in an
// arena inside Graph and refer to their parent by index, so a Graph can be
// shared read-only across goroutines without ownership cycles.
type Site struct {
	// Name as written in the model file, possibly with a parenthetical
	// qualifier, e.g. "LeftMiddleCerebralArtery(M1)"
	Name string
	// Inlet and Outlet are the node numbers connecting this segment to its
	// neighbours in the topology description
	Inlet  int
	Outlet int

	parent int // arena index, -1 for the root
}

// Graph owns all Sites for one topology description. Immutable after Build.
type Graph struct {
	sites  []Site
	byName map[string]int
	root   int
}

// Root returns the single parentless site.
func (g *Graph) Root() *Site {
	return &g.sites[g.root]
}

// Len returns the number of sites in the graph.
func (g *Graph) Len() int {
	return len(g.sites)
}

// Sites returns every site in declaration order.
func (g *Graph) Sites() []*Site {
	out := make([]*Site, len(g.sites))
	for i := range g.sites {
		out[i] = &g.sites[i]
	}
	return out
}

// SiteByName returns the site with the exact given name.
func (g *Graph) SiteByName(name string) (*Site, bool) {
	idx, ok := g.byName[name]
	if !ok {
		return nil, false
	}
	return &g.sites[idx], true
}

// Parent returns the parent of a site, or nil for the root.
func (g *Graph) Parent(s *Site) *Site {
	idx := g.byName[s.Name]
	p := g.sites[idx].parent
	if p < 0 {
		return nil
	}
	return &g.sites[p]
}

// PathTo walks parent pointers from the given site back to the root and
// returns the ordered path root → … → site.
func (g *Graph) PathTo(s *Site) []*Site {
	var reversed []*Site
	idx := g.byName[s.Name]
	for idx >= 0 {
		reversed = append(reversed, &g.sites[idx])
		idx = g.sites[idx].parent
	}

	path := make([]*Site, len(reversed))
	for i, site := range reversed {
		path[len(path)-1-i] = site
	}
	return path
}
