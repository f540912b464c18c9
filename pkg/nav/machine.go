// Package nav drives stepping through a selection, interactively or in
// unattended batch mode.
package nav

import (
	"fmt"

	"github.com/rlaidlaw/pwdbview/pkg/logging"
	"github.com/rlaidlaw/pwdbview/pkg/render"
	"github.com/rlaidlaw/pwdbview/pkg/selection"
)

// State of the navigation machine
type State int

const (
	// Ready means the machine is initialized but nothing is displayed yet
	Ready State = iota
	// Displaying means the item at the cursor is on screen
	Displaying
	// Exporting is the transient state while SaveCurrent writes an artifact
	Exporting
	// Done means navigation has finished and the cursor is released
	Done
)

func (s State) String() string {
	switch s {
	case Ready:
		return "ready"
	case Displaying:
		return "displaying"
	case Exporting:
		return "exporting"
	case Done:
		return "done"
	default:
		return "unknown"
	}
}

// Event is a discrete navigation event from the input source
type Event int

const (
	// Next advances the cursor, clamped at the last item
	Next Event = iota
	// Prev moves the cursor back, clamped at zero
	Prev
	// SaveCurrent exports the displayed item to the output directory
	SaveCurrent
	// Quit ends navigation
	Quit
)

// Machine steps through a selection in interactive mode. The cursor is the
// only mutable state; the selection itself is never modified. Not safe for
// concurrent use: one path of control owns the machine.
type Machine struct {
	items    []selection.Item
	renderer render.Renderer
	outDir   string
	logger   logging.Logger

	state State
	index int
}

// NewMachine creates a machine over a non-empty selection. An empty
// selection yields ErrNoSelection immediately.
func NewMachine(items []selection.Item, renderer render.Renderer, outDir string, logger logging.Logger) (*Machine, error) {
	if len(items) == 0 {
		return nil, selection.ErrNoSelection
	}
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &Machine{
		items:    items,
		renderer: renderer,
		outDir:   outDir,
		logger:   logger,
		state:    Ready,
	}, nil
}

// Start displays the first item and enters Displaying.
func (m *Machine) Start() error {
	if m.state != Ready {
		return fmt.Errorf("cannot start machine in state %s", m.state)
	}
	m.state = Displaying
	return m.display()
}

// Handle applies one navigation event. Export failures keep the current item
// displayed and are returned so the caller can notify the user; they never
// advance or terminate the machine.
func (m *Machine) Handle(ev Event) error {
	if m.state == Done {
		return nil
	}
	if m.state != Displaying {
		return fmt.Errorf("cannot handle event in state %s", m.state)
	}

	switch ev {
	case Next:
		if m.index < len(m.items)-1 {
			m.index++
			return m.display()
		}
		return nil
	case Prev:
		if m.index > 0 {
			m.index--
			return m.display()
		}
		return nil
	case SaveCurrent:
		return m.saveCurrent()
	case Quit:
		m.state = Done
		return nil
	default:
		return fmt.Errorf("unknown navigation event %d", ev)
	}
}

func (m *Machine) display() error {
	item := m.items[m.index]
	if err := m.renderer.Display(item); err != nil {
		return fmt.Errorf("display %s subject %d: %w", item.Key.Name(), item.Subject, err)
	}
	return nil
}

func (m *Machine) saveCurrent() error {
	if m.outDir == "" {
		return fmt.Errorf("no output directory configured")
	}
	item := m.items[m.index]
	path := render.ExportPath(m.outDir, item)

	m.state = Exporting
	err := m.renderer.Export(item, path)
	m.state = Displaying

	if err != nil {
		m.logger.Error("export failed",
			logging.SignalName(item.Key.Name()),
			logging.Subject(item.Subject),
			logging.Path(path),
			logging.Error(err))
		return fmt.Errorf("export %s: %w", path, err)
	}

	m.logger.Info("exported figure",
		logging.SignalName(item.Key.Name()),
		logging.Subject(item.Subject),
		logging.Path(path))
	return nil
}

// Current returns the item at the cursor.
func (m *Machine) Current() selection.Item {
	return m.items[m.index]
}

// Index returns the cursor position.
func (m *Machine) Index() int {
	return m.index
}

// Len returns the selection length.
func (m *Machine) Len() int {
	return len(m.items)
}

// State returns the current machine state.
func (m *Machine) State() State {
	return m.state
}
