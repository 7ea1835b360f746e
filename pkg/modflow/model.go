package modflow

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// Model errors.
var (
	ErrUnitInUse      = errors.New("file unit already in use")
	ErrInvalidUnit    = errors.New("file unit must be positive")
	ErrInvalidPeriods = errors.New("stress period count must be positive")
	ErrNoWorkspace    = errors.New("model workspace not set")
)

// Model describes the simulation a set of package files belongs to. It owns
// the file-unit registry shared by every attached package and resolves output
// paths inside its workspace directory.
//
// A Model is not safe for concurrent use; one goroutine builds a model and
// writes its files.
type Model struct {
	Name       string // base name for generated files
	Workspace  string // directory package files are written to
	Nper       int    // number of stress periods
	Structured bool   // layer/row/column grid when true, node-numbered otherwise

	units    map[int]string // unit -> package ftype
	attached []PackageContext
}

// NewModel creates a model with an empty unit registry. nper must be positive.
func NewModel(name, workspace string, nper int, structured bool) (*Model, error) {
	if nper <= 0 {
		return nil, fmt.Errorf("model %s: %w (got %d)", name, ErrInvalidPeriods, nper)
	}
	return &Model{
		Name:       name,
		Workspace:  workspace,
		Nper:       nper,
		Structured: structured,
		units:      make(map[int]string),
	}, nil
}

// PackageContext carries the per-package state the Model hands to each
// package component: output path, heading banner, booked file unit, and the
// package type code written to the name file.
type PackageContext struct {
	FType   string // package type code, e.g. "DDF", "PCB"
	Unit    int    // booked file unit
	Path    string // resolved output path
	Heading string // banner comment written as the first line of list packages
}

// Attach books a file unit for a package and returns its context. A unit of 0
// means "use the caller's default"; passing 0 here is an error, package
// constructors substitute their default constant before calling Attach.
// Booking a unit that is already taken fails with ErrUnitInUse.
func (m *Model) Attach(ftype, ext string, unit int) (PackageContext, error) {
	if unit <= 0 {
		return PackageContext{}, fmt.Errorf("attach %s: %w (got %d)", ftype, ErrInvalidUnit, unit)
	}
	if holder, taken := m.units[unit]; taken {
		return PackageContext{}, fmt.Errorf("attach %s: %w (unit %d held by %s)", ftype, ErrUnitInUse, unit, holder)
	}
	m.units[unit] = ftype

	ctx := PackageContext{
		FType:   ftype,
		Unit:    unit,
		Path:    filepath.Join(m.Workspace, m.Name+"."+ext),
		Heading: fmt.Sprintf("# %s package for MODFLOW-USG, generated by mfpack %s", ftype, Version),
	}
	m.attached = append(m.attached, ctx)
	return ctx, nil
}

// Detach releases a previously booked unit so the context can be rebuilt,
// e.g. when a load replaces an earlier attach.
func (m *Model) Detach(unit int) {
	delete(m.units, unit)
	for i, ctx := range m.attached {
		if ctx.Unit == unit {
			m.attached = append(m.attached[:i], m.attached[i+1:]...)
			return
		}
	}
}

// UnitHolder reports which package type holds a unit, if any.
func (m *Model) UnitHolder(unit int) (string, bool) {
	ftype, ok := m.units[unit]
	return ftype, ok
}

// NameFilePath returns the path of the model NAM file.
func (m *Model) NameFilePath() string {
	return filepath.Join(m.Workspace, m.Name+".nam")
}

// WriteNameFile writes the model name file: one "FTYPE UNIT FILENAME" line
// per attached package, ordered by unit. Filenames are written relative to
// the workspace, matching how the solver resolves them.
func (m *Model) WriteNameFile() error {
	if m.Workspace == "" {
		return fmt.Errorf("write name file: %w", ErrNoWorkspace)
	}

	ctxs := make([]PackageContext, len(m.attached))
	copy(ctxs, m.attached)
	sort.Slice(ctxs, func(i, j int) bool { return ctxs[i].Unit < ctxs[j].Unit })

	f, err := os.Create(m.NameFilePath())
	if err != nil {
		return fmt.Errorf("creating name file: %w", err)
	}

	w := bufio.NewWriter(f)
	fmt.Fprintf(w, "# %s name file, generated by mfpack %s\n", m.Name, Version)
	for _, ctx := range ctxs {
		fmt.Fprintf(w, "%s %9d  %s\n", ctx.FType, ctx.Unit, filepath.Base(ctx.Path))
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return fmt.Errorf("writing name file: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing name file: %w", err)
	}
	return nil
}
