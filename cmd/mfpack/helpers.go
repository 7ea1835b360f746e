// Shared helpers for mfpack CLI commands.
package main

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/hydroforge/mfpack/internal/store"
	"github.com/hydroforge/mfpack/pkg/modflow"
)

// catalogFileName is the catalog database filename inside the config dir.
const catalogFileName = "catalog.db"

// openCatalog opens the workspace catalog in the resolved config directory.
// The caller must close the returned store.
func openCatalog() (*store.Store, error) {
	configDir, err := resolveConfigDir()
	if err != nil {
		return nil, fmt.Errorf("resolve config dir: %w", err)
	}
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return nil, fmt.Errorf("ensure config dir: %w", err)
	}
	s, err := store.Open(filepath.Join(configDir, catalogFileName))
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}
	return s, nil
}

// buildModel turns a catalog row into a modflow.Model ready to attach
// packages.
func buildModel(rec *store.Model) (*modflow.Model, error) {
	return modflow.NewModel(rec.Name, rec.Workspace, rec.Nper, rec.Structured)
}

// readBoundaryCSV parses boundary records from a CSV file. Structured models
// use kper,layer,row,column,species,conc lines; unstructured models use
// kper,node,species,conc. All indices are 0-based; "#" starts a comment line.
func readBoundaryCSV(path string, structured bool) (map[int][]modflow.Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening records file: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.Comment = '#'
	r.TrimLeadingSpace = true

	wantFields := 4
	if structured {
		wantFields = 6
	}

	spd := make(map[int][]modflow.Record)
	lineNo := 0
	for {
		row, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading records file: %w", err)
		}
		lineNo++
		if len(row) != wantFields {
			return nil, fmt.Errorf("records line %d: got %d fields, want %d", lineNo, len(row), wantFields)
		}

		vals := make([]float64, wantFields)
		for i, cell := range row {
			v, err := strconv.ParseFloat(cell, 64)
			if err != nil {
				return nil, fmt.Errorf("records line %d field %d: %w", lineNo, i+1, err)
			}
			vals[i] = v
		}

		kper := int(vals[0])
		if kper < 0 {
			return nil, fmt.Errorf("records line %d: %w", lineNo, modflow.ErrNegativePeriod)
		}
		spd[kper] = append(spd[kper], modflow.Record(vals[1:]))
	}
	return spd, nil
}

// printJSON writes v to stdout as indented JSON.
func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
