package modflow

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestModel(t *testing.T, structured bool, nper int) *Model {
	t.Helper()
	m, err := NewModel("test", t.TempDir(), nper, structured)
	require.NoError(t, err)
	return m
}

func TestDensityFlowDefaults(t *testing.T) {
	m := newTestModel(t, true, 1)

	ddf, err := NewDensityFlow(m, DefaultDensityFlowParams())
	require.NoError(t, err)

	assert.Equal(t, DdfDefaultUnit, ddf.Context().Unit)
	assert.Equal(t, "DDF", ddf.Context().FType)
	assert.Equal(t, "1000 1025 1 0 0 0", ddf.Line())
}

func TestDensityFlowLine(t *testing.T) {
	tests := []struct {
		name   string
		params DensityFlowParams
		want   string
	}{
		{
			name:   "defaults",
			params: DefaultDensityFlowParams(),
			want:   "1000 1025 1 0 0 0",
		},
		{
			name: "all flags set",
			params: DensityFlowParams{
				Rhofresh: 998.2,
				Rhostd:   1025.0,
				Cstd:     35.0,
				Ithickav: 1,
				Imph:     1,
				Isharp:   1,
			},
			want: "998.2 1025 35 1 1 1",
		},
		{
			// Values are deliberately not validated; garbage passes
			// through verbatim.
			name: "unvalidated values",
			params: DensityFlowParams{
				Rhofresh: -1,
				Rhostd:   0,
				Cstd:     1e30,
				Ithickav: -7,
			},
			want: "-1 0 1e+30 -7 0 0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newTestModel(t, true, 1)
			ddf, err := NewDensityFlow(m, tt.params)
			require.NoError(t, err)
			assert.Equal(t, tt.want, ddf.Line())
		})
	}
}

func TestDensityFlowWriteFile(t *testing.T) {
	m := newTestModel(t, true, 1)
	ddf, err := NewDensityFlow(m, DefaultDensityFlowParams())
	require.NoError(t, err)

	require.NoError(t, ddf.WriteFile())

	data, err := os.ReadFile(ddf.Context().Path)
	require.NoError(t, err)

	content := string(data)
	assert.True(t, strings.HasSuffix(content, "\n"), "file must be newline-terminated")
	lines := strings.Split(strings.TrimSuffix(content, "\n"), "\n")
	require.Len(t, lines, 1, "ddf file is exactly one line")
	assert.Equal(t, "1000 1025 1 0 0 0", lines[0])
	assert.Equal(t, filepath.Join(m.Workspace, "test.ddf"), ddf.Context().Path)
}

func TestLoadDensityFlowRoundTrip(t *testing.T) {
	m := newTestModel(t, true, 1)
	params := DensityFlowParams{
		Rhofresh: 998.2,
		Rhostd:   1025.0,
		Cstd:     35.0,
		Isharp:   1,
	}
	ddf, err := NewDensityFlow(m, params)
	require.NoError(t, err)
	require.NoError(t, ddf.WriteFile())

	m2, err := NewModel(m.Name, m.Workspace, m.Nper, m.Structured)
	require.NoError(t, err)
	loaded, err := LoadDensityFlow(m2, ddf.Context().Path)
	require.NoError(t, err)

	assert.Equal(t, params, loaded.Params())
	assert.Equal(t, DdfDefaultUnit, loaded.Context().Unit)
}

func TestLoadDensityFlowMalformed(t *testing.T) {
	m := newTestModel(t, true, 1)
	path := filepath.Join(t.TempDir(), "bad.ddf")
	require.NoError(t, os.WriteFile(path, []byte("1000 1025\n"), 0o644))

	_, err := LoadDensityFlow(m, path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "want 6")
}

func TestDensityFlowExplicitUnit(t *testing.T) {
	m := newTestModel(t, true, 1)
	params := DefaultDensityFlowParams()
	params.Unit = 90

	ddf, err := NewDensityFlow(m, params)
	require.NoError(t, err)
	assert.Equal(t, 90, ddf.Context().Unit)

	holder, ok := m.UnitHolder(90)
	assert.True(t, ok)
	assert.Equal(t, "DDF", holder)
}
