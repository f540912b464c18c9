package catalog

import (
	"bufio"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/rlaidlaw/pwdbview/pkg/logging"
)

// Scanner walks dataset roots for wfdb record headers.
type Scanner struct {
	logger logging.Logger
}

// NewScanner creates a Scanner reporting progress to the logger.
func NewScanner(logger logging.Logger) *Scanner {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &Scanner{logger: logger}
}

// Scan enumerates the record sets under one dataset root. Records live
// under <root>/**/PWs/wfdb/pwdb*.hea; each wfdb directory is its own record
// set, so a root holding several topologies yields one catalog per
// topology. Subject indices are the 1-based ordinal of each record in
// sorted order, and signal names come from the first record's header
// (names are uniform across subjects within a record set).
func (s *Scanner) Scan(root string) ([]*Catalog, error) {
	recordDirs, err := findRecordDirs(root)
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", root, err)
	}
	if len(recordDirs) == 0 {
		return nil, fmt.Errorf("scan %s: no PWs/wfdb record directory found", root)
	}

	catalogs := make([]*Catalog, 0, len(recordDirs))
	for _, dir := range recordDirs {
		// The record set is named by the directory holding PWs
		setRoot := filepath.Dir(filepath.Dir(dir))

		headers, err := filepath.Glob(filepath.Join(dir, "pwdb*.hea"))
		if err != nil {
			return nil, fmt.Errorf("scan %s: %w", setRoot, err)
		}
		if len(headers) == 0 {
			s.logger.Warn("record directory holds no wfdb records, skipping",
				logging.Dataset(setRoot))
			continue
		}
		sort.Strings(headers)

		names, err := readHeaderSignalNames(headers[0])
		if err != nil {
			return nil, fmt.Errorf("scan %s: %w", setRoot, err)
		}

		subjects := make([]int, len(headers))
		for i := range headers {
			subjects[i] = i + 1
		}

		s.logger.Debug("scanned record set",
			logging.Dataset(setRoot),
			logging.Count(len(subjects)),
			logging.Int("signals", len(names)))

		catalogs = append(catalogs, New(setRoot, subjects, names))
	}

	if len(catalogs) == 0 {
		return nil, fmt.Errorf("scan %s: no wfdb records found", root)
	}
	return catalogs, nil
}

// findRecordDirs locates every wfdb directory nested under a PWs directory.
func findRecordDirs(root string) ([]string, error) {
	var dirs []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() && d.Name() == "wfdb" && filepath.Base(filepath.Dir(path)) == "PWs" {
			dirs = append(dirs, path)
			return filepath.SkipDir
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(dirs)
	return dirs, nil
}

// readHeaderSignalNames extracts signal names from a wfdb .hea file. The
// first line describes the record; each following non-comment line describes
// one signal, with the name in the final field. Exported names carry a
// trailing comma that is stripped.
func readHeaderSignalNames(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var names []string
	scanner := bufio.NewScanner(f)
	first := true
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if first {
			first = false
			continue
		}
		fields := strings.Fields(line)
		name := strings.TrimSuffix(fields[len(fields)-1], ",")
		if name != "" {
			names = append(names, name)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return names, nil
}
