package modflow

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
)

// Transient list errors.
var (
	ErrNegativePeriod = errors.New("stress period must be non-negative")
	ErrFieldCount     = errors.New("wrong number of record fields")
	ErrNoPeriodData   = errors.New("no stress period data")
)

// TransientList stores per-stress-period boundary records for a list-type
// package. Periods are sparse: a period without an explicit entry reuses the
// records of the nearest earlier period (carry-forward), both in lookups and
// in the ITMP convention of the written file.
type TransientList struct {
	fields  []Field
	periods map[int][]Record
}

// NewTransientList creates an empty list with the given record schema.
func NewTransientList(fields []Field) *TransientList {
	return &TransientList{
		fields:  fields,
		periods: make(map[int][]Record),
	}
}

// Fields returns the record schema.
func (l *TransientList) Fields() []Field {
	return l.fields
}

// SetPeriod replaces the record list for a stress period. Records must match
// the schema width.
func (l *TransientList) SetPeriod(kper int, recs []Record) error {
	if kper < 0 {
		return fmt.Errorf("period %d: %w", kper, ErrNegativePeriod)
	}
	for i, rec := range recs {
		if len(rec) != len(l.fields) {
			return fmt.Errorf("period %d record %d: %w (got %d, want %d)",
				kper, i, ErrFieldCount, len(rec), len(l.fields))
		}
	}
	l.periods[kper] = recs
	return nil
}

// PeriodKeys returns the explicitly populated period indices in ascending
// order.
func (l *TransientList) PeriodKeys() []int {
	keys := make([]int, 0, len(l.periods))
	for k := range l.periods {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}

// Explicit returns the record list stored directly under kper, without
// carry-forward.
func (l *TransientList) Explicit(kper int) ([]Record, bool) {
	recs, ok := l.periods[kper]
	return recs, ok
}

// Period resolves the record list in effect during kper: the entry at kper if
// present, otherwise the entry at the largest populated index below it.
// Returns ErrNoPeriodData when no period at or before kper is populated.
func (l *TransientList) Period(kper int) ([]Record, error) {
	if kper < 0 {
		return nil, fmt.Errorf("period %d: %w", kper, ErrNegativePeriod)
	}
	best := -1
	for k := range l.periods {
		if k <= kper && k > best {
			best = k
		}
	}
	if best < 0 {
		return nil, fmt.Errorf("period %d: %w", kper, ErrNoPeriodData)
	}
	return l.periods[best], nil
}

// cellIndexCount returns how many leading fields address the grid cell.
func (l *TransientList) cellIndexCount() int {
	n := 0
	for _, f := range l.fields {
		if f.CellIndex {
			n++
		}
	}
	return n
}

// AddRecord appends one record to a stress period, creating the period if it
// has no entry yet. index carries the cell-index fields (0-based), values the
// remaining fields in schema order.
func (l *TransientList) AddRecord(kper int, index []int, values []float64) error {
	if kper < 0 {
		return fmt.Errorf("period %d: %w", kper, ErrNegativePeriod)
	}
	if want := l.cellIndexCount(); len(index) != want {
		return fmt.Errorf("period %d: %w (got %d cell indices, want %d)",
			kper, ErrFieldCount, len(index), want)
	}
	if total := len(index) + len(values); total != len(l.fields) {
		return fmt.Errorf("period %d: %w (got %d, want %d)",
			kper, ErrFieldCount, len(index)+len(values), len(l.fields))
	}

	rec := make(Record, 0, len(l.fields))
	for _, v := range index {
		rec = append(rec, float64(v))
	}
	rec = append(rec, values...)
	l.periods[kper] = append(l.periods[kper], rec)
	return nil
}

// MaxActive returns the maximum record count across all populated periods,
// the MXACT value list packages write on their count line.
func (l *TransientList) MaxActive() int {
	max := 0
	for _, recs := range l.periods {
		if len(recs) > max {
			max = len(recs)
		}
	}
	return max
}

// WriteTransient emits one block per stress period 0..nper-1. Each block
// starts with an ITMP line: the record count for populated periods, -1 for
// periods reusing earlier records, 0 for periods before any data. Cell-index
// fields are written 1-based.
func (l *TransientList) WriteTransient(w io.Writer, nper int) error {
	for kper := 0; kper < nper; kper++ {
		recs, explicit := l.periods[kper]
		itmp := 0
		switch {
		case explicit:
			itmp = len(recs)
		case l.hasEarlier(kper):
			itmp = -1
		}
		if _, err := fmt.Fprintf(w, " %9d %9d  # stress period %d\n", itmp, 0, kper+1); err != nil {
			return fmt.Errorf("writing period %d header: %w", kper, err)
		}
		if !explicit {
			continue
		}
		for i, rec := range recs {
			if err := l.writeRecord(w, rec); err != nil {
				return fmt.Errorf("writing period %d record %d: %w", kper, i, err)
			}
		}
	}
	return nil
}

func (l *TransientList) hasEarlier(kper int) bool {
	for k := range l.periods {
		if k < kper {
			return true
		}
	}
	return false
}

func (l *TransientList) writeRecord(w io.Writer, rec Record) error {
	var sb strings.Builder
	for i, f := range l.fields {
		v := rec[i]
		switch f.Kind {
		case FieldInt:
			n := int(v)
			if f.CellIndex {
				n++
			}
			fmt.Fprintf(&sb, " %9d", n)
		default:
			fmt.Fprintf(&sb, " %15.7E", v)
		}
	}
	sb.WriteByte('\n')
	_, err := io.WriteString(w, sb.String())
	return err
}

// ReadTransient parses nper blocks written by WriteTransient, restoring the
// sparse period map: ITMP -1 blocks leave the period implicit so the
// carry-forward shape survives a round trip. When check is true, cell indices
// must be non-negative after conversion back to 0-based.
func (l *TransientList) ReadTransient(sc *bufio.Scanner, nper int, check bool) error {
	for kper := 0; kper < nper; kper++ {
		line, err := nextDataLine(sc)
		if err != nil {
			return fmt.Errorf("period %d header: %w", kper, err)
		}
		toks := strings.Fields(line)
		itmp, err := strconv.Atoi(toks[0])
		if err != nil {
			return fmt.Errorf("period %d header: parsing ITMP %q: %w", kper, toks[0], err)
		}
		if itmp < 0 {
			continue
		}
		// A leading ITMP 0 is the gap WriteTransient emits before any
		// data; keep it implicit so the sparse shape round-trips. Only
		// after data does ITMP 0 mean an explicit empty period.
		if itmp == 0 && len(l.periods) == 0 {
			continue
		}
		recs := make([]Record, 0, itmp)
		for i := 0; i < itmp; i++ {
			line, err := nextDataLine(sc)
			if err != nil {
				return fmt.Errorf("period %d record %d: %w", kper, i, err)
			}
			rec, err := l.parseRecord(line, check)
			if err != nil {
				return fmt.Errorf("period %d record %d: %w", kper, i, err)
			}
			recs = append(recs, rec)
		}
		if err := l.SetPeriod(kper, recs); err != nil {
			return err
		}
	}
	return nil
}

func (l *TransientList) parseRecord(line string, check bool) (Record, error) {
	toks := strings.Fields(line)
	if len(toks) < len(l.fields) {
		return nil, fmt.Errorf("%w (got %d, want %d)", ErrFieldCount, len(toks), len(l.fields))
	}
	rec := make(Record, len(l.fields))
	for i, f := range l.fields {
		switch f.Kind {
		case FieldInt:
			n, err := strconv.Atoi(toks[i])
			if err != nil {
				return nil, fmt.Errorf("parsing %s %q: %w", f.Name, toks[i], err)
			}
			if f.CellIndex {
				n--
				if check && n < 0 {
					return nil, fmt.Errorf("field %s: cell index %d out of range", f.Name, n+1)
				}
			}
			rec[i] = float64(n)
		default:
			v, err := strconv.ParseFloat(toks[i], 64)
			if err != nil {
				return nil, fmt.Errorf("parsing %s %q: %w", f.Name, toks[i], err)
			}
			rec[i] = v
		}
	}
	return rec, nil
}

// nextDataLine returns the next non-blank line with any trailing "#" comment
// stripped.
func nextDataLine(sc *bufio.Scanner) (string, error) {
	for sc.Scan() {
		line := sc.Text()
		if idx := strings.Index(line, "#"); idx >= 0 {
			line = line[:idx]
		}
		if strings.TrimSpace(line) == "" {
			continue
		}
		return line, nil
	}
	if err := sc.Err(); err != nil {
		return "", fmt.Errorf("scanning: %w", err)
	}
	return "", io.ErrUnexpectedEOF
}
