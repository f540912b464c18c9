// Package tui is the interactive viewport: a terminal sequence browser over
// the selection, navigated with arrow keys.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rlaidlaw/pwdbview/pkg/nav"
	"github.com/rlaidlaw/pwdbview/pkg/render"
	"github.com/rlaidlaw/pwdbview/pkg/signal"
)

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#00FFFF")).
			MarginLeft(2).
			MarginTop(1)

	plotBoxStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#00FF00")).
			Padding(1, 2).
			MarginLeft(2)

	metaStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888")).
			MarginLeft(2)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF0000")).
			Bold(true).
			MarginLeft(2)

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#00FF00")).
			MarginLeft(2)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888")).
			MarginTop(1).
			MarginLeft(2)
)

type keyMap struct {
	Next key.Binding
	Prev key.Binding
	Save key.Binding
	Quit key.Binding
}

var keys = keyMap{
	Next: key.NewBinding(
		key.WithKeys("right", "down", "l", "j"),
		key.WithHelp("→", "next"),
	),
	Prev: key.NewBinding(
		key.WithKeys("left", "up", "h", "k"),
		key.WithHelp("←", "prev"),
	),
	Save: key.NewBinding(
		key.WithKeys("s"),
		key.WithHelp("s", "save figure"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c", "esc"),
		key.WithHelp("q", "quit"),
	),
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Prev, k.Next, k.Save, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Prev, k.Next},
		{k.Save, k.Quit},
	}
}

// Model is the bubbletea model wrapping the navigation machine. The machine
// owns cursor semantics; the model only translates key presses into events
// and renders the current item.
type Model struct {
	machine  *nav.Machine
	series   render.SeriesProvider
	keys     keyMap
	help     help.Model
	width    int
	message  string
	isError  bool
}

// New creates the browser model. series may be nil; the view then shows
// metadata only.
func New(machine *nav.Machine, series render.SeriesProvider) Model {
	return Model{
		machine: machine,
		series:  series,
		keys:    keys,
		help:    help.New(),
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width

	case tea.KeyMsg:
		m.message = ""
		m.isError = false

		switch {
		case key.Matches(msg, m.keys.Quit):
			m.machine.Handle(nav.Quit)
			return m, tea.Quit

		case key.Matches(msg, m.keys.Next):
			if err := m.machine.Handle(nav.Next); err != nil {
				m.message = fmt.Sprintf("Display failed: %v", err)
				m.isError = true
			}

		case key.Matches(msg, m.keys.Prev):
			if err := m.machine.Handle(nav.Prev); err != nil {
				m.message = fmt.Sprintf("Display failed: %v", err)
				m.isError = true
			}

		case key.Matches(msg, m.keys.Save):
			if err := m.machine.Handle(nav.SaveCurrent); err != nil {
				m.message = fmt.Sprintf("Save failed: %v", err)
				m.isError = true
			} else {
				item := m.machine.Current()
				m.message = "Saved " + render.ExportFilename(item)
			}
		}
	}

	return m, nil
}

func (m Model) View() string {
	item := m.machine.Current()

	title := fmt.Sprintf("%s: %s (%s)", item.Root, item.Key.Name(), item.Key.Site())
	var b strings.Builder
	b.WriteString(titleStyle.Render(title))
	b.WriteString("\n")

	meta := fmt.Sprintf("subject %d • unit %s", item.Subject, signal.Units[item.Key.Type])
	b.WriteString(metaStyle.Render(meta))
	b.WriteString("\n")

	if m.series != nil {
		if series, err := m.series.Load(item); err == nil {
			b.WriteString(plotBoxStyle.Render(sparkline(series.Samples, plotWidth(m.width))))
		} else {
			b.WriteString(errorStyle.Render(fmt.Sprintf("No data: %v", err)))
		}
		b.WriteString("\n")
	}

	if m.message != "" {
		if m.isError {
			b.WriteString(errorStyle.Render(m.message))
		} else {
			b.WriteString(successStyle.Render(m.message))
		}
		b.WriteString("\n")
	}

	position := fmt.Sprintf("(%d/%d)", m.machine.Index()+1, m.machine.Len())
	b.WriteString(helpStyle.Render(m.help.View(m.keys) + "  " + position))
	b.WriteString("\n")

	return b.String()
}

func plotWidth(width int) int {
	if width <= 0 {
		return 72
	}
	w := width - 10
	if w < 16 {
		w = 16
	}
	return w
}

var sparkLevels = []rune("▁▂▃▄▅▆▇█")

// sparkline downsamples a series into one row of block characters
func sparkline(samples []float64, width int) string {
	if len(samples) == 0 {
		return "(empty series)"
	}
	if width > len(samples) {
		width = len(samples)
	}

	lo, hi := samples[0], samples[0]
	for _, v := range samples {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	span := hi - lo
	if span == 0 {
		span = 1
	}

	out := make([]rune, width)
	for i := 0; i < width; i++ {
		// Average the bucket of samples behind this column
		start := i * len(samples) / width
		end := (i + 1) * len(samples) / width
		if end <= start {
			end = start + 1
		}
		sum := 0.0
		for _, v := range samples[start:end] {
			sum += v
		}
		mean := sum / float64(end-start)

		level := int((mean - lo) / span * float64(len(sparkLevels)-1))
		out[i] = sparkLevels[level]
	}
	return string(out)
}
