package model

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/rlaidlaw/pwdbview/pkg/logging"
)

// Builder parses a topology description into a Graph. The expected format is
// the tab-separated artery model table shipped with the dataset: a header
// row naming at least the "Inlet node", "Outlet node" and "Name" columns,
// followed by one segment per row. Unknown columns and malformed rows are
// skipped with a warning.
type Builder struct {
	logger logging.Logger
}

// NewBuilder creates a Builder that reports skipped lines to the logger.
func NewBuilder(logger logging.Logger) *Builder {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &Builder{logger: logger}
}

// BuildFile opens and builds the model file at the given path.
func (b *Builder) BuildFile(path string) (*Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open model file: %w", err)
	}
	defer f.Close()
	return b.Build(f)
}

// Build parses a topology description and links it into a rooted tree.
func (b *Builder) Build(r io.Reader) (*Graph, error) {
	sites, err := b.parse(r)
	if err != nil {
		return nil, err
	}
	if len(sites) == 0 {
		return nil, ErrEmptyModel
	}
	return link(sites)
}

// columnIndexes locates the required columns in a header row, returning
// ok=false when the row is not a header.
func columnIndexes(fields []string) (name, inlet, outlet int, ok bool) {
	name, inlet, outlet = -1, -1, -1
	for i, f := range fields {
		switch strings.TrimSpace(f) {
		case "Name":
			name = i
		case "Inlet node":
			inlet = i
		case "Outlet node":
			outlet = i
		}
	}
	ok = name >= 0 && inlet >= 0 && outlet >= 0
	return
}

func (b *Builder) parse(r io.Reader) ([]Site, error) {
	scanner := bufio.NewScanner(r)

	var sites []Site
	seen := make(map[string]struct{})
	nameCol, inletCol, outletCol := -1, -1, -1
	headerFound := false
	lineNo := 0

	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		fields := strings.Split(line, "\t")

		if !headerFound {
			if n, in, out, ok := columnIndexes(fields); ok {
				nameCol, inletCol, outletCol = n, in, out
				headerFound = true
			} else {
				b.logger.Warn("skipping pre-header model line",
					logging.Int("line", lineNo))
			}
			continue
		}

		maxCol := max(nameCol, max(inletCol, outletCol))
		if len(fields) <= maxCol {
			b.logger.Warn("skipping short model line",
				logging.Int("line", lineNo), logging.Count(len(fields)))
			continue
		}

		name := strings.TrimSpace(fields[nameCol])
		inlet, errIn := strconv.Atoi(strings.TrimSpace(fields[inletCol]))
		outlet, errOut := strconv.Atoi(strings.TrimSpace(fields[outletCol]))
		if name == "" || errIn != nil || errOut != nil {
			b.logger.Warn("skipping malformed model line",
				logging.Int("line", lineNo), logging.Token(line))
			continue
		}

		if _, dup := seen[name]; dup {
			b.logger.Warn("skipping duplicate site declaration",
				logging.Int("line", lineNo), logging.Site(name))
			continue
		}
		seen[name] = struct{}{}

		sites = append(sites, Site{Name: name, Inlet: inlet, Outlet: outlet, parent: -1})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read model: %w", err)
	}
	return sites, nil
}

// link resolves parent indices by matching each site's inlet node against
// the outlet nodes of the others, then verifies the tree invariants.
func link(sites []Site) (*Graph, error) {
	byOutlet := make(map[int][]int)
	byName := make(map[string]int, len(sites))
	for i, s := range sites {
		byOutlet[s.Outlet] = append(byOutlet[s.Outlet], i)
		byName[s.Name] = i
	}

	var roots []int
	for i := range sites {
		producers := byOutlet[sites[i].Inlet]
		switch len(producers) {
		case 0:
			roots = append(roots, i)
		case 1:
			sites[i].parent = producers[0]
		default:
			parents := make([]string, len(producers))
			for j, p := range producers {
				parents[j] = sites[p].Name
			}
			return nil, &NotATreeError{Site: sites[i].Name, Parents: parents}
		}
	}

	if len(roots) > 1 {
		names := make([]string, len(roots))
		for i, r := range roots {
			names[i] = sites[r].Name
		}
		return nil, &MultipleRootsError{Roots: names}
	}
	if len(roots) == 0 {
		// Every site has a parent, so the parent chains must cycle
		return nil, &NotATreeError{Site: sites[0].Name, Cyclic: true}
	}

	// Every site must reach the root; a chain longer than the arena cycles
	for i := range sites {
		steps := 0
		for at := i; sites[at].parent >= 0; at = sites[at].parent {
			steps++
			if steps > len(sites) {
				return nil, &NotATreeError{Site: sites[i].Name, Cyclic: true}
			}
		}
	}

	return &Graph{sites: sites, byName: byName, root: roots[0]}, nil
}
