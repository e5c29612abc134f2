// Package loader reads Google-Trends-style CSV exports into tables: an
// interest-over-time file, an optional interest-by-region file and an
// optional related-queries file. Files may be plain CSV or gzip-compressed.
package loader

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/wonny/trendlens/internal/table"
)

// ErrMissingDataset is returned when the required interest-over-time file is
// absent from a bundle directory.
var ErrMissingDataset = errors.New("required dataset missing")

// Filenames names the three files of a CSV bundle inside a directory.
type Filenames struct {
	Interest string
	Regions  string
	Related  string
}

// DefaultFilenames returns the conventional bundle filenames.
func DefaultFilenames() Filenames {
	return Filenames{
		Interest: "google_trends_interest.csv",
		Regions:  "google_trends_region.csv",
		Related:  "google_trends_ai_related.csv",
	}
}

// Bundle holds one loaded dataset. Observations is always present; Regions
// and Related are nil when their file was absent.
type Bundle struct {
	Observations *table.Table
	Regions      *table.RegionTable
	Related      *table.RankingTable

	// Sources lists the files actually read, for report manifests.
	Sources []string
}

// LoadBundle reads a bundle from a directory. The interest file is required;
// a missing one is reported as ErrMissingDataset. Region and related files
// are optional and simply leave their field nil. For every name a
// gzip-compressed sibling (name + ".gz") is accepted as fallback.
func LoadBundle(dir string, names Filenames) (*Bundle, error) {
	bundle := &Bundle{}

	path, ok := probe(dir, names.Interest)
	if !ok {
		return nil, fmt.Errorf("%w: %s not found in %s", ErrMissingDataset, names.Interest, dir)
	}
	f, err := Open(path)
	if err != nil {
		return nil, err
	}
	obs, err := ReadObservations(f)
	f.Close()
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", filepath.Base(path), err)
	}
	bundle.Observations = obs
	bundle.Sources = append(bundle.Sources, path)

	if path, ok := probe(dir, names.Regions); ok {
		f, err := Open(path)
		if err != nil {
			return nil, err
		}
		regions, err := ReadRegions(f)
		f.Close()
		if err != nil {
			return nil, fmt.Errorf("load %s: %w", filepath.Base(path), err)
		}
		bundle.Regions = regions
		bundle.Sources = append(bundle.Sources, path)
	}

	if path, ok := probe(dir, names.Related); ok {
		f, err := Open(path)
		if err != nil {
			return nil, err
		}
		related, err := ReadRelated(f)
		f.Close()
		if err != nil {
			return nil, fmt.Errorf("load %s: %w", filepath.Base(path), err)
		}
		bundle.Related = related
		bundle.Sources = append(bundle.Sources, path)
	}

	return bundle, nil
}

// probe returns the first existing path among name and name+".gz".
func probe(dir, name string) (string, bool) {
	for _, candidate := range []string{name, name + ".gz"} {
		path := filepath.Join(dir, candidate)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path, true
		}
	}
	return "", false
}
