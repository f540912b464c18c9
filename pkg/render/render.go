// Package render defines the boundary to the external plotting backend.
// The navigation engine hands items across this interface and never learns
// how plots are drawn.
package render

import (
	"fmt"
	"path/filepath"

	"github.com/rlaidlaw/pwdbview/pkg/selection"
)

// Series is one resolved time series handed to a renderer.
type Series struct {
	Name       string
	Unit       string
	SampleRate float64
	Samples    []float64
}

// SeriesProvider loads the time-series data behind a selection item.
// Implemented by the dataset loader, outside this core.
type SeriesProvider interface {
	Load(item selection.Item) (*Series, error)
}

// Renderer draws or exports one selection item. Display opens the item in
// whatever viewport the backend provides; Export writes the plotted artifact
// to the given path. Both report per-call success or failure.
type Renderer interface {
	Display(item selection.Item) error
	Export(item selection.Item, path string) error
}

// ExportFilename derives the deterministic artifact name for an item from
// its dataset root, signal key and subject, e.g.
// "Complete_Radial_U_s0042.pdf". Including the root base keeps concurrent
// multi-root batch exports collision-free in one output directory.
func ExportFilename(item selection.Item) string {
	return fmt.Sprintf("%s_%s_s%04d.pdf",
		filepath.Base(item.Root), item.Key.Name(), item.Subject)
}

// ExportPath joins the output directory with the item's derived filename.
func ExportPath(outDir string, item selection.Item) string {
	return filepath.Join(outDir, ExportFilename(item))
}
