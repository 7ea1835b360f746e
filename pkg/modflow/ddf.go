package modflow

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// DDF package constants.
const (
	DdfFType       = "DDF"
	DdfExtension   = "ddf"
	DdfDefaultUnit = 36
)

// DensityFlowParams holds the density-driven flow coefficients. Values are
// written to the package file exactly as given; the solver's input format
// performs no validation here and neither do we, matching the reference
// behavior.
type DensityFlowParams struct {
	Rhofresh float64 // fresh water density
	Rhostd   float64 // standard density
	Cstd     float64 // standard concentration
	Ithickav int     // thickness-averaging flag
	Imph     int     // miscibility flag
	Isharp   int     // sharp-interface flag
	Unit     int     // file unit; 0 means DdfDefaultUnit
}

// DefaultDensityFlowParams returns the conventional seawater-intrusion
// defaults: fresh water at 1000, standard density 1025, unit concentration.
func DefaultDensityFlowParams() DensityFlowParams {
	return DensityFlowParams{
		Rhofresh: 1000.0,
		Rhostd:   1025.0,
		Cstd:     1.0,
	}
}

// DensityFlow is the density-driven flow (DDF) package: six scalar
// coefficients written as a single line.
type DensityFlow struct {
	ctx    PackageContext
	params DensityFlowParams
}

// NewDensityFlow attaches a DDF package to the model. The zero Unit selects
// DdfDefaultUnit (36).
func NewDensityFlow(m *Model, params DensityFlowParams) (*DensityFlow, error) {
	unit := params.Unit
	if unit == 0 {
		unit = DdfDefaultUnit
	}
	ctx, err := m.Attach(DdfFType, DdfExtension, unit)
	if err != nil {
		return nil, fmt.Errorf("ddf: %w", err)
	}
	return &DensityFlow{ctx: ctx, params: params}, nil
}

// Context returns the package's booked context.
func (d *DensityFlow) Context() PackageContext {
	return d.ctx
}

// Params returns the coefficients as constructed.
func (d *DensityFlow) Params() DensityFlowParams {
	return d.params
}

// Line renders item 1 of the package file: RHOFRESH RHOSTD CSTD ITHICKAV
// IMPH ISHARP, space-separated.
func (d *DensityFlow) Line() string {
	fields := []string{
		strconv.FormatFloat(d.params.Rhofresh, 'g', -1, 64),
		strconv.FormatFloat(d.params.Rhostd, 'g', -1, 64),
		strconv.FormatFloat(d.params.Cstd, 'g', -1, 64),
		strconv.Itoa(d.params.Ithickav),
		strconv.Itoa(d.params.Imph),
		strconv.Itoa(d.params.Isharp),
	}
	return strings.Join(fields, " ")
}

// LoadDensityFlow reads an existing DDF file and attaches a populated
// package to the model using the default unit. Only the six leading values
// are read; trailing tokens are ignored like the solver does.
func LoadDensityFlow(m *Model, path string) (*DensityFlow, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("ddf: opening %s: %w", path, err)
	}

	toks := strings.Fields(string(data))
	if len(toks) < 6 {
		return nil, fmt.Errorf("ddf: %s: got %d values, want 6", path, len(toks))
	}

	var params DensityFlowParams
	floats := []*float64{&params.Rhofresh, &params.Rhostd, &params.Cstd}
	for i, dst := range floats {
		v, err := strconv.ParseFloat(toks[i], 64)
		if err != nil {
			return nil, fmt.Errorf("ddf: %s: parsing value %d %q: %w", path, i+1, toks[i], err)
		}
		*dst = v
	}
	ints := []*int{&params.Ithickav, &params.Imph, &params.Isharp}
	for i, dst := range ints {
		v, err := strconv.Atoi(toks[i+3])
		if err != nil {
			return nil, fmt.Errorf("ddf: %s: parsing value %d %q: %w", path, i+4, toks[i+3], err)
		}
		*dst = v
	}

	return NewDensityFlow(m, params)
}

// WriteFile writes the package file: exactly one newline-terminated line.
func (d *DensityFlow) WriteFile() error {
	f, err := os.Create(d.ctx.Path)
	if err != nil {
		return fmt.Errorf("ddf: creating %s: %w", d.ctx.Path, err)
	}
	if _, err := f.WriteString(d.Line() + "\n"); err != nil {
		f.Close()
		return fmt.Errorf("ddf: writing %s: %w", d.ctx.Path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("ddf: closing %s: %w", d.ctx.Path, err)
	}
	return nil
}
