// pwdbview browses and exports pulse-wave database signals by signal name,
// site, type, subject range or along an arterial path.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	ossignal "os/signal"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/rlaidlaw/pwdbview/pkg/catalog"
	"github.com/rlaidlaw/pwdbview/pkg/config"
	"github.com/rlaidlaw/pwdbview/pkg/logging"
	"github.com/rlaidlaw/pwdbview/pkg/metrics"
	"github.com/rlaidlaw/pwdbview/pkg/model"
	"github.com/rlaidlaw/pwdbview/pkg/nav"
	"github.com/rlaidlaw/pwdbview/pkg/render"
	"github.com/rlaidlaw/pwdbview/pkg/selection"
	"github.com/rlaidlaw/pwdbview/pkg/tui"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "pwdbview: %v\n", err)
		os.Exit(1)
	}
}

func parseFlags() (*config.File, string, string) {
	flags := &config.File{}
	var configPath, plotter string

	flag.StringVar(&configPath, "config", "", "YAML config file")
	flag.StringVar(&flags.Signals, "signals", "", `signals to plot (e.g. "Radial_U,Brachial_U", default: all)`)
	flag.StringVar(&flags.Sites, "sites", "", `sites to plot (e.g. "LEIA,RICA")`)
	flag.StringVar(&flags.Types, "types", "", `signal types to plot (default: "P,U,A,PPG")`)
	flag.StringVar(&flags.Subjects, "subjects", "", `subjects to plot (e.g. "0,2-4,7,10-12")`)
	flag.StringVar(&flags.PathTarget, "path", "", `plot signals along the path to this site (e.g. "Digital", requires -model)`)
	flag.StringVar(&flags.Model, "model", "", "artery model file used to trace the path")
	flag.BoolVar(&flags.Query, "query", false, "print sites and signal types in the selection, then stop")
	flag.StringVar(&flags.OutputDir, "dir", "", "directory for saving figures")
	flag.BoolVar(&flags.Batch, "batch", false, "export every selected figure without the interactive viewer")
	flag.IntVar(&flags.Workers, "workers", 0, "parallel export workers in batch mode (default 1)")
	flag.StringVar(&flags.MetricsAddr, "metrics-addr", "", "serve prometheus metrics on this address during batch runs")
	flag.StringVar(&flags.LogLevel, "log-level", "", "log level (debug, info, warn, error)")
	flag.StringVar(&plotter, "plotter", "pwdb-plot", "external plotting command")
	flag.Parse()

	flags.Roots = flag.Args()
	return flags, configPath, plotter
}

func run() error {
	flags, configPath, plotter := parseFlags()

	cfg := &config.File{}
	if configPath != "" {
		loaded, err := config.LoadFile(configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}
	cfg.Merge(flags)

	opts, err := cfg.Resolve()
	if err != nil {
		return err
	}

	level := logging.InfoLevel
	if opts.LogLevel != "" {
		level = logging.ParseLevel(opts.LogLevel)
	} else if env := os.Getenv("LOG_LEVEL"); env != "" {
		level = logging.ParseLevel(env)
	}
	logger := logging.NewJSONLogger(os.Stderr, level).With(logging.RunID(uuid.NewString()))

	// Scan every dataset root up front; a root with no records is fatal
	// before any navigation starts. One root may hold several record sets,
	// each of which becomes its own catalog.
	scanner := catalog.NewScanner(logger)
	var catalogs []*catalog.Catalog
	for _, root := range opts.Roots {
		cats, err := scanner.Scan(root)
		if err != nil {
			return err
		}
		catalogs = append(catalogs, cats...)
	}

	filters := selection.Filters{
		Signals:  opts.Signals,
		Sites:    opts.Sites,
		Types:    opts.Types,
		Subjects: opts.Subjects,
	}

	if opts.PathTarget != "" {
		graph, err := model.NewBuilder(logger).BuildFile(opts.ModelPath)
		if err != nil {
			return err
		}
		path, err := graph.ResolvePath(opts.PathTarget)
		if err != nil {
			return err
		}
		names := make([]string, len(path))
		for i, site := range path {
			names[i] = site.Name
		}
		logger.Info("traced path", logging.Any("sites", names))
		filters.Path = path
	}

	engine := selection.NewEngine(logger)

	if opts.Query {
		entries, err := engine.Query(filters, catalogs)
		if err != nil {
			return err
		}
		return selection.WriteQuery(os.Stdout, entries)
	}

	items, err := engine.Build(filters, catalogs)
	if err != nil {
		return err
	}
	logger.Info("selection built", logging.Count(len(items)))

	registry := metrics.NewRegistry()
	registry.SetSelectionSize(len(items))
	renderer := render.NewCommandRenderer(plotter, 30*time.Second)

	if opts.OutputDir != "" {
		if err := os.MkdirAll(opts.OutputDir, 0o755); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
	}

	if opts.Batch {
		return runBatch(opts, items, renderer, logger, registry)
	}
	return runInteractive(opts, items, renderer, logger)
}

func runBatch(opts *config.Options, items []selection.Item, renderer render.Renderer, logger logging.Logger, registry *metrics.Registry) error {
	if opts.MetricsAddr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", registry.Handler())
		go func() {
			if err := http.ListenAndServe(opts.MetricsAddr, mux); err != nil {
				logger.Error("metrics server stopped", logging.Error(err))
			}
		}()
	}

	ctx, stop := ossignal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	runner := nav.NewBatchRunner(renderer, opts.OutputDir, opts.Workers, logger, registry)
	result, err := runner.Run(ctx, items)
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	if errors.Is(err, context.Canceled) {
		logger.Warn("batch run interrupted, already-written figures remain valid")
	}

	if result.Failed > 0 {
		return fmt.Errorf("%d of %d exports failed", result.Failed, result.Failed+result.Exported)
	}
	return nil
}

func runInteractive(opts *config.Options, items []selection.Item, renderer render.Renderer, logger logging.Logger) error {
	machine, err := nav.NewMachine(items, renderer, opts.OutputDir, logger)
	if err != nil {
		return err
	}
	if err := machine.Start(); err != nil {
		return err
	}

	program := tea.NewProgram(tui.New(machine, nil), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("interactive viewer: %w", err)
	}
	return nil
}
