// Package config turns the loosely-typed CLI/file values into one validated
// Options object. Filters are parsed exactly once here; the engine never
// re-parses strings.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/rlaidlaw/pwdbview/pkg/ranges"
	"github.com/rlaidlaw/pwdbview/pkg/signal"
)

// File holds the raw configuration values as they arrive from flags or a
// YAML config file. Flag values override file values field by field.
type File struct {
	Roots       []string `yaml:"roots"`
	Signals     string   `yaml:"signals"`
	Sites       string   `yaml:"sites"`
	Types       string   `yaml:"types"`
	Subjects    string   `yaml:"subjects"`
	PathTarget  string   `yaml:"path"`
	Model       string   `yaml:"model"`
	Query       bool     `yaml:"query"`
	OutputDir   string   `yaml:"dir"`
	Batch       bool     `yaml:"batch"`
	Workers     int      `yaml:"workers"`
	MetricsAddr string   `yaml:"metrics_addr"`
	LogLevel    string   `yaml:"log_level"`
}

// Options is the validated configuration consumed by the rest of the tool.
type Options struct {
	Roots       []string `validate:"min=1,dive,required"`
	Signals     []signal.Key
	Sites       []string
	Types       []signal.Type
	Subjects    []int
	PathTarget  string
	ModelPath   string
	Query       bool
	OutputDir   string
	Batch       bool
	Workers     int `validate:"gte=1,lte=128"`
	MetricsAddr string
	LogLevel    string
}

var validate = validator.New()

// LoadFile reads a YAML configuration file.
func LoadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse config file %s: %w", path, err)
	}
	return &f, nil
}

// Merge overlays non-zero values from other onto f.
func (f *File) Merge(other *File) {
	if len(other.Roots) > 0 {
		f.Roots = other.Roots
	}
	if other.Signals != "" {
		f.Signals = other.Signals
	}
	if other.Sites != "" {
		f.Sites = other.Sites
	}
	if other.Types != "" {
		f.Types = other.Types
	}
	if other.Subjects != "" {
		f.Subjects = other.Subjects
	}
	if other.PathTarget != "" {
		f.PathTarget = other.PathTarget
	}
	if other.Model != "" {
		f.Model = other.Model
	}
	if other.Query {
		f.Query = true
	}
	if other.OutputDir != "" {
		f.OutputDir = other.OutputDir
	}
	if other.Batch {
		f.Batch = true
	}
	if other.Workers != 0 {
		f.Workers = other.Workers
	}
	if other.MetricsAddr != "" {
		f.MetricsAddr = other.MetricsAddr
	}
	if other.LogLevel != "" {
		f.LogLevel = other.LogLevel
	}
}

// Resolve parses and validates the raw values into Options. All input
// errors are reported here, before any navigation starts.
func (f *File) Resolve() (*Options, error) {
	opts := &Options{
		Roots:       f.Roots,
		PathTarget:  f.PathTarget,
		ModelPath:   f.Model,
		Query:       f.Query,
		OutputDir:   f.OutputDir,
		Batch:       f.Batch,
		Workers:     f.Workers,
		MetricsAddr: f.MetricsAddr,
		LogLevel:    f.LogLevel,
	}

	var err error
	if opts.Signals, err = signal.ParseNameList(f.Signals); err != nil {
		return nil, err
	}
	if opts.Sites, err = signal.ParseSiteList(f.Sites); err != nil {
		return nil, err
	}
	if opts.Types, err = signal.ParseTypeList(f.Types); err != nil {
		return nil, err
	}
	if opts.Subjects, err = ranges.Parse(f.Subjects); err != nil {
		return nil, err
	}

	// Zero means "not set anywhere"; the flag and the YAML field both leave
	// it at zero so Merge can tell unset from an explicit value
	if opts.Workers == 0 {
		opts.Workers = 1
	}

	if err := validate.Struct(opts); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	if opts.PathTarget != "" && opts.ModelPath == "" {
		return nil, errors.New("a model file is required to determine the path to " + opts.PathTarget)
	}
	if opts.Batch && opts.OutputDir == "" {
		return nil, errors.New("batch mode requires an output directory")
	}

	return opts, nil
}
