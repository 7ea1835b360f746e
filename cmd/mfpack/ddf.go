// Ddf command writes the density-driven flow package file.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hydroforge/mfpack/internal/log"
	"github.com/hydroforge/mfpack/pkg/modflow"
)

var flagDdf = struct {
	rhofresh float64
	rhostd   float64
	cstd     float64
	ithickav int
	imph     int
	isharp   int
	unit     int
}{}

var ddfCmd = &cobra.Command{
	Use:   "ddf <model>",
	Short: "Write the density-driven flow (DDF) package file",
	Long: `Ddf writes the DDF package file for a registered model: a single line
with RHOFRESH, RHOSTD, CSTD, ITHICKAV, IMPH and ISHARP. Values are written
as given, without validation.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openCatalog()
		if err != nil {
			return err
		}
		defer s.Close()

		rec, err := s.GetModel(args[0])
		if err != nil {
			return err
		}
		m, err := buildModel(rec)
		if err != nil {
			return err
		}

		ddf, err := modflow.NewDensityFlow(m, modflow.DensityFlowParams{
			Rhofresh: flagDdf.rhofresh,
			Rhostd:   flagDdf.rhostd,
			Cstd:     flagDdf.cstd,
			Ithickav: flagDdf.ithickav,
			Imph:     flagDdf.imph,
			Isharp:   flagDdf.isharp,
			Unit:     flagDdf.unit,
		})
		if err != nil {
			return err
		}
		if err := ddf.WriteFile(); err != nil {
			return err
		}

		ctx := ddf.Context()
		if _, err := s.RecordPackage(rec.ModelID, ctx.FType, ctx.Unit, ctx.Path); err != nil {
			return err
		}

		logger := log.WithComponent("ddf")
		logger.Debug().
			Str("model", rec.Name).
			Int("unit", ctx.Unit).
			Str("path", ctx.Path).
			Msg("package written")

		fmt.Printf("Wrote %s (unit %d)\n", ctx.Path, ctx.Unit)
		return nil
	},
}

func init() {
	defaults := modflow.DefaultDensityFlowParams()
	ddfCmd.Flags().Float64Var(&flagDdf.rhofresh, "rhofresh", defaults.Rhofresh, "fresh water density")
	ddfCmd.Flags().Float64Var(&flagDdf.rhostd, "rhostd", defaults.Rhostd, "standard density")
	ddfCmd.Flags().Float64Var(&flagDdf.cstd, "cstd", defaults.Cstd, "standard concentration")
	ddfCmd.Flags().IntVar(&flagDdf.ithickav, "ithickav", 0, "thickness-averaging flag")
	ddfCmd.Flags().IntVar(&flagDdf.imph, "imph", 0, "miscibility flag")
	ddfCmd.Flags().IntVar(&flagDdf.isharp, "isharp", 0, "sharp-interface flag")
	ddfCmd.Flags().IntVar(&flagDdf.unit, "unit", 0, "file unit (default 36)")
}
