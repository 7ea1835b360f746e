// Integration test covering the full model build workflow: register a model
// in the catalog, write its DDF and PCB files, reload the PCB file, and
// regenerate the name file.
package integration

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hydroforge/mfpack/internal/store"
	"github.com/hydroforge/mfpack/pkg/modflow"
)

func TestModelBuildWorkflow(t *testing.T) {
	workspace := t.TempDir()
	configDir := t.TempDir()

	s, err := store.Open(filepath.Join(configDir, "catalog.db"))
	require.NoError(t, err)
	defer s.Close()

	modelID, err := s.CreateModel(store.Model{
		Name:       "henry",
		Workspace:  workspace,
		Nper:       3,
		Structured: true,
	})
	require.NoError(t, err)

	rec, err := s.GetModel("henry")
	require.NoError(t, err)

	m, err := modflow.NewModel(rec.Name, rec.Workspace, rec.Nper, rec.Structured)
	require.NoError(t, err)

	// Density-driven flow with seawater defaults.
	ddf, err := modflow.NewDensityFlow(m, modflow.DefaultDensityFlowParams())
	require.NoError(t, err)
	require.NoError(t, ddf.WriteFile())
	_, err = s.RecordPackage(modelID, ddf.Context().FType, ddf.Context().Unit, ddf.Context().Path)
	require.NoError(t, err)

	// Prescribed concentration applied from period 0 and carried forward.
	pcb, err := modflow.NewPrescribedConc(m, modflow.PrescribedConcParams{
		StressPeriodData: map[int][]modflow.Record{
			0: {{2, 3, 4, 1, 10.0}},
		},
		Options: []string{"NOPRINT"},
	})
	require.NoError(t, err)
	require.NoError(t, pcb.WriteFile())
	_, err = s.RecordPackage(modelID, pcb.Context().FType, pcb.Context().Unit, pcb.Context().Path)
	require.NoError(t, err)

	// Both packages landed on their default, non-colliding units.
	pkgs, err := s.ListPackages(modelID)
	require.NoError(t, err)
	require.Len(t, pkgs, 2)
	assert.Equal(t, 36, pkgs[0].Unit)
	assert.Equal(t, 37, pkgs[1].Unit)

	// The generated files parse back to the same boundary data.
	m2, err := modflow.NewModel(rec.Name, rec.Workspace, rec.Nper, rec.Structured)
	require.NoError(t, err)
	loaded, err := modflow.LoadPrescribedConc(m2, pcb.Context().Path, 0, true)
	require.NoError(t, err)

	assert.Equal(t, 1, loaded.MaxActive())
	assert.Equal(t, []int{0}, loaded.List().PeriodKeys())
	recs, ok := loaded.List().Explicit(0)
	require.True(t, ok)
	assert.Equal(t, modflow.Record{2, 3, 4, 1, 10.0}, recs[0])

	// Every stress period resolves to the carried-forward list.
	for kper := 0; kper < rec.Nper; kper++ {
		effective, err := loaded.List().Period(kper)
		require.NoError(t, err)
		assert.Len(t, effective, 1, "period %d", kper)
	}

	// Name file lists both packages in unit order.
	require.NoError(t, m.WriteNameFile())
	data, err := os.ReadFile(m.NameFilePath())
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSuffix(string(data), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, []string{"DDF", "36", "henry.ddf"}, strings.Fields(lines[1]))
	assert.Equal(t, []string{"PCB", "37", "henry.pcb"}, strings.Fields(lines[2]))
}
