package modflow

import (
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPrescribedConcDefaults(t *testing.T) {
	m := newTestModel(t, true, 3)

	pcb, err := NewPrescribedConc(m, PrescribedConcParams{
		StressPeriodData: map[int][]Record{
			0: {{2, 3, 4, 1, 10.0}},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, PcbDefaultUnit, pcb.Context().Unit)
	assert.Equal(t, "PCB", pcb.Context().FType)
	assert.Equal(t, 1, pcb.MaxActive())
	assert.Equal(t, []string{"k", "i", "j", "ispecies_no", "conc"}, FieldNames(pcb.List().Fields()))
}

func TestNewPrescribedConcUnstructuredSchema(t *testing.T) {
	m := newTestModel(t, false, 1)

	pcb, err := NewPrescribedConc(m, PrescribedConcParams{
		StressPeriodData: map[int][]Record{
			0: {{12, 1, 3.5}},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"node", "ispecies_no", "conc"}, FieldNames(pcb.List().Fields()))
}

func TestNewPrescribedConcRejectsMalformedRecords(t *testing.T) {
	m := newTestModel(t, true, 1)

	_, err := NewPrescribedConc(m, PrescribedConcParams{
		StressPeriodData: map[int][]Record{
			0: {{1, 2, 3}},
		},
	})
	require.ErrorIs(t, err, ErrFieldCount)

	// The failed constructor must release the unit.
	_, ok := m.UnitHolder(PcbDefaultUnit)
	assert.False(t, ok)
}

func TestPrescribedConcAddRecordWrapsDelegateError(t *testing.T) {
	m := newTestModel(t, true, 1)
	pcb, err := NewPrescribedConc(m, PrescribedConcParams{})
	require.NoError(t, err)

	err = pcb.AddRecord(-1, []int{0, 0, 0}, []float64{1, 1.0})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNegativePeriod)
	assert.Contains(t, err.Error(), "adding record to transient list")
	assert.Contains(t, err.Error(), ErrNegativePeriod.Error(),
		"delegate message must remain a substring")
}

func TestPrescribedConcAddRecordMutates(t *testing.T) {
	m := newTestModel(t, true, 2)
	pcb, err := NewPrescribedConc(m, PrescribedConcParams{})
	require.NoError(t, err)

	require.NoError(t, pcb.AddRecord(0, []int{2, 3, 4}, []float64{1, 10.0}))
	require.NoError(t, pcb.AddRecord(1, []int{2, 3, 4}, []float64{2, 20.0}))

	assert.Equal(t, 1, pcb.MaxActive())
	assert.Equal(t, []int{0, 1}, pcb.List().PeriodKeys())
}

func TestPrescribedConcWriteFile(t *testing.T) {
	m := newTestModel(t, true, 3)

	pcb, err := NewPrescribedConc(m, PrescribedConcParams{
		StressPeriodData: map[int][]Record{
			0: {{2, 3, 4, 1, 10.0, 0.5}},
		},
		AuxNames: []string{"iface"},
		Options:  []string{"NOPRINT"},
	})
	require.NoError(t, err)
	require.NoError(t, pcb.WriteFile())

	data, err := os.ReadFile(pcb.Context().Path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSuffix(string(data), "\n"), "\n")

	// Heading, count line, and one block per stress period: itmp=1 plus a
	// record, then two reuse blocks.
	require.Len(t, lines, 6)
	assert.Equal(t, pcb.Context().Heading, lines[0])
	assert.Equal(t, "         1  NOPRINT  AUXILIARY iface", lines[1])
	assert.Equal(t, "1", strings.Fields(lines[2])[0])
	assert.Equal(t, []string{"3", "4", "5", "1", "1.0000000E+01", "5.0000000E-01"}, strings.Fields(lines[3]))
	assert.Equal(t, "-1", strings.Fields(lines[4])[0])
	assert.Equal(t, "-1", strings.Fields(lines[5])[0])
}

func TestPrescribedConcRoundTrip(t *testing.T) {
	tests := []struct {
		name       string
		structured bool
		spd        map[int][]Record
	}{
		{
			name:       "structured single period",
			structured: true,
			spd: map[int][]Record{
				0: {{2, 3, 4, 1, 10.0}},
			},
		},
		{
			name:       "structured sparse periods",
			structured: true,
			spd: map[int][]Record{
				0: {{0, 0, 0, 1, 1.5}},
				2: {{1, 2, 3, 2, 7.25}, {4, 5, 6, 1, 0.5}},
			},
		},
		{
			name:       "unstructured",
			structured: false,
			spd: map[int][]Record{
				1: {{99, 1, 3.125}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newTestModel(t, tt.structured, 4)
			pcb, err := NewPrescribedConc(m, PrescribedConcParams{
				StressPeriodData: tt.spd,
				Options:          []string{"NOPRINT"},
			})
			require.NoError(t, err)
			require.NoError(t, pcb.WriteFile())

			m2, err := NewModel(m.Name, m.Workspace, m.Nper, m.Structured)
			require.NoError(t, err)

			loaded, err := LoadPrescribedConc(m2, pcb.Context().Path, 0, true)
			require.NoError(t, err)

			assert.Equal(t, []string{"NOPRINT"}, loaded.Options())
			assert.Equal(t, pcb.MaxActive(), loaded.MaxActive())
			require.Equal(t, pcb.List().PeriodKeys(), loaded.List().PeriodKeys())
			for _, kper := range pcb.List().PeriodKeys() {
				want, _ := pcb.List().Explicit(kper)
				got, _ := loaded.List().Explicit(kper)
				assert.Equal(t, want, got, "period %d", kper)
			}
		})
	}
}

func TestPrescribedConcRoundTripLeadingGap(t *testing.T) {
	m := newTestModel(t, true, 4)

	// Data starting after period 0: the write emits a leading ITMP 0
	// block, which must reload as a gap, not as an explicit empty period.
	pcb, err := NewPrescribedConc(m, PrescribedConcParams{
		StressPeriodData: map[int][]Record{
			1: {{2, 3, 4, 1, 10.0}},
		},
	})
	require.NoError(t, err)
	require.NoError(t, pcb.WriteFile())

	m2, err := NewModel(m.Name, m.Workspace, m.Nper, m.Structured)
	require.NoError(t, err)
	loaded, err := LoadPrescribedConc(m2, pcb.Context().Path, 0, true)
	require.NoError(t, err)

	assert.Equal(t, []int{1}, loaded.List().PeriodKeys())
	_, err = loaded.List().Period(0)
	assert.ErrorIs(t, err, ErrNoPeriodData, "period 0 has no data to carry")
}

func TestPrescribedConcRoundTripAux(t *testing.T) {
	m := newTestModel(t, true, 2)

	pcb, err := NewPrescribedConc(m, PrescribedConcParams{
		StressPeriodData: map[int][]Record{
			0: {{2, 3, 4, 1, 10.0, 2.5}, {2, 3, 5, 1, 12.0, 0.0}},
		},
		AuxNames: []string{"iface"},
		Options:  []string{"NOPRINT"},
	})
	require.NoError(t, err)
	require.NoError(t, pcb.WriteFile())

	m2, err := NewModel(m.Name, m.Workspace, m.Nper, m.Structured)
	require.NoError(t, err)
	loaded, err := LoadPrescribedConc(m2, pcb.Context().Path, 0, true)
	require.NoError(t, err)

	// The AUXILIARY pair rebuilds the widened schema; plain options
	// round-trip one-to-one.
	assert.Equal(t, []string{"iface"}, loaded.AuxNames())
	assert.Equal(t, []string{"NOPRINT"}, loaded.Options())
	assert.Equal(t,
		[]string{"k", "i", "j", "ispecies_no", "conc", "iface"},
		FieldNames(loaded.List().Fields()))

	recs, ok := loaded.List().Explicit(0)
	require.True(t, ok)
	require.Len(t, recs, 2)
	assert.Equal(t, Record{2, 3, 4, 1, 10.0, 2.5}, recs[0])
	assert.Equal(t, Record{2, 3, 5, 1, 12.0, 0.0}, recs[1])
}

func TestLoadPrescribedConcMissingFile(t *testing.T) {
	m := newTestModel(t, true, 1)
	_, err := LoadPrescribedConc(m, "/does/not/exist.pcb", 0, true)
	require.Error(t, err)

	// A failed load must not leave the unit booked.
	_, ok := m.UnitHolder(PcbDefaultUnit)
	assert.False(t, ok)
}

func TestLoadPrescribedConcExplicitNper(t *testing.T) {
	m := newTestModel(t, true, 5)
	pcb, err := NewPrescribedConc(m, PrescribedConcParams{
		StressPeriodData: map[int][]Record{0: {{0, 0, 0, 1, 2.0}}},
	})
	require.NoError(t, err)
	require.NoError(t, pcb.WriteFile())

	m2 := newTestModel(t, true, 1)
	m2.Name = m.Name
	m2.Workspace = m.Workspace

	// nper passed explicitly overrides the model's count.
	loaded, err := LoadPrescribedConc(m2, pcb.Context().Path, 5, true)
	require.NoError(t, err)
	recs, ok := loaded.List().Explicit(0)
	require.True(t, ok)
	require.Len(t, recs, 1)
	assert.Equal(t, Record{0, 0, 0, 1, 2.0}, recs[0])
}
