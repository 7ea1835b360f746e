package modflow

import (
	"bufio"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
)

// PCB package constants. The default unit is distinct from the DDF default
// so both packages attach to one model without a collision.
const (
	PcbFType       = "PCB"
	PcbExtension   = "pcb"
	PcbDefaultUnit = 37
)

// PrescribedConcParams configures a prescribed concentration boundary
// package.
type PrescribedConcParams struct {
	// StressPeriodData maps stress period index to that period's boundary
	// records. Periods missing an entry reuse the nearest earlier one.
	StressPeriodData map[int][]Record

	// AuxNames adds float32 auxiliary columns to the record schema.
	AuxNames []string

	// Options are free-form tokens appended to the MXACT count line.
	Options []string

	// Unit is the file unit; 0 means PcbDefaultUnit.
	Unit int
}

// PrescribedConc is the prescribed concentration boundary (PCB) package:
// a transient list of (cell, species, concentration) records plus an option
// token list.
type PrescribedConc struct {
	ctx      PackageContext
	list     *TransientList
	options  []string
	auxNames []string
	nper     int
}

// NewPrescribedConc attaches a PCB package to the model. The record schema
// follows the model's grid: layer/row/column for structured grids, node
// number otherwise.
func NewPrescribedConc(m *Model, params PrescribedConcParams) (*PrescribedConc, error) {
	unit := params.Unit
	if unit == 0 {
		unit = PcbDefaultUnit
	}
	ctx, err := m.Attach(PcbFType, PcbExtension, unit)
	if err != nil {
		return nil, fmt.Errorf("pcb: %w", err)
	}

	fields := AppendAuxFields(PrescribedConcFields(m.Structured), params.AuxNames)
	list := NewTransientList(fields)
	for _, kper := range sortedKeys(params.StressPeriodData) {
		if err := list.SetPeriod(kper, params.StressPeriodData[kper]); err != nil {
			m.Detach(unit)
			return nil, fmt.Errorf("pcb: %w", err)
		}
	}

	return &PrescribedConc{
		ctx:      ctx,
		list:     list,
		options:  params.Options,
		auxNames: params.AuxNames,
		nper:     m.Nper,
	}, nil
}

func sortedKeys(spd map[int][]Record) []int {
	keys := make([]int, 0, len(spd))
	for k := range spd {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}

// EmptyPrescribedConcRecords returns n blank PCB records for the given grid
// shape, optionally widened with auxiliary columns. Every field is preset to
// EmptyValue.
func EmptyPrescribedConcRecords(n int, auxNames []string, structured bool) []Record {
	return EmptyRecords(n, AppendAuxFields(PrescribedConcFields(structured), auxNames))
}

// Context returns the package's booked context.
func (p *PrescribedConc) Context() PackageContext {
	return p.ctx
}

// List exposes the underlying transient list.
func (p *PrescribedConc) List() *TransientList {
	return p.list
}

// Options returns the option tokens in order, without the AUXILIARY pairs
// derived from AuxNames.
func (p *PrescribedConc) Options() []string {
	return p.options
}

// AuxNames returns the auxiliary column names in schema order.
func (p *PrescribedConc) AuxNames() []string {
	return p.auxNames
}

// MaxActive returns the maximum boundary count across stress periods.
func (p *PrescribedConc) MaxActive() int {
	return p.list.MaxActive()
}

// AddRecord appends one boundary to a stress period. Delegate failures are
// wrapped so the original message stays visible to callers.
func (p *PrescribedConc) AddRecord(kper int, index []int, values []float64) error {
	if err := p.list.AddRecord(kper, index, values); err != nil {
		return fmt.Errorf("pcb: adding record to transient list: %w", err)
	}
	return nil
}

// WriteFile writes the package file: heading line, MXACT/options count line,
// then the transient stress-period blocks.
func (p *PrescribedConc) WriteFile() error {
	f, err := os.Create(p.ctx.Path)
	if err != nil {
		return fmt.Errorf("pcb: creating %s: %w", p.ctx.Path, err)
	}

	w := bufio.NewWriter(f)
	fmt.Fprintf(w, "%s\n", p.ctx.Heading)
	fmt.Fprintf(w, " %9d", p.list.MaxActive())
	for _, option := range p.options {
		fmt.Fprintf(w, "  %s", option)
	}
	for _, name := range p.auxNames {
		fmt.Fprintf(w, "  AUXILIARY %s", name)
	}
	fmt.Fprintln(w)
	if err := p.list.WriteTransient(w, p.nper); err != nil {
		f.Close()
		return fmt.Errorf("pcb: writing %s: %w", p.ctx.Path, err)
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return fmt.Errorf("pcb: writing %s: %w", p.ctx.Path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("pcb: closing %s: %w", p.ctx.Path, err)
	}
	return nil
}

// LoadPrescribedConc reads an existing PCB file and attaches a populated
// package to the model using the default unit. nper of zero or below falls
// back to the model's stress period count. check enables record sanity checks
// during parsing.
func LoadPrescribedConc(m *Model, path string, nper int, check bool) (*PrescribedConc, error) {
	if nper <= 0 {
		nper = m.Nper
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("pcb: opening %s: %w", path, err)
	}
	defer f.Close()

	ctx, err := m.Attach(PcbFType, PcbExtension, PcbDefaultUnit)
	if err != nil {
		return nil, fmt.Errorf("pcb: %w", err)
	}

	sc := bufio.NewScanner(f)

	// Heading lines are full-line comments; the first data line carries
	// MXACT followed by the option tokens.
	countLine, err := nextDataLine(sc)
	if err != nil {
		m.Detach(ctx.Unit)
		return nil, fmt.Errorf("pcb: reading count line of %s: %w", path, err)
	}
	toks := strings.Fields(countLine)
	if _, err := strconv.Atoi(toks[0]); err != nil {
		m.Detach(ctx.Unit)
		return nil, fmt.Errorf("pcb: parsing MXACT %q in %s: %w", toks[0], path, err)
	}

	// AUXILIARY pairs declare extra record columns; everything else on the
	// count line is an opaque option token.
	var options, auxNames []string
	rest := toks[1:]
	for i := 0; i < len(rest); i++ {
		tok := rest[i]
		if strings.EqualFold(tok, "AUXILIARY") || strings.EqualFold(tok, "AUX") {
			if i+1 >= len(rest) {
				m.Detach(ctx.Unit)
				return nil, fmt.Errorf("pcb: %s: %s token missing a column name", path, tok)
			}
			i++
			auxNames = append(auxNames, rest[i])
			continue
		}
		options = append(options, tok)
	}

	list := NewTransientList(AppendAuxFields(PrescribedConcFields(m.Structured), auxNames))
	if err := list.ReadTransient(sc, nper, check); err != nil {
		m.Detach(ctx.Unit)
		return nil, fmt.Errorf("pcb: reading %s: %w", path, err)
	}

	return &PrescribedConc{
		ctx:      ctx,
		list:     list,
		options:  options,
		auxNames: auxNames,
		nper:     nper,
	}, nil
}
