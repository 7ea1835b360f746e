// Nam command regenerates a model's name file from the catalog.
package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
)

var namCmd = &cobra.Command{
	Use:   "nam <model>",
	Short: "Write the model name file from the cataloged packages",
	Args:  cobra.ExactArgs(1),
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

		pkgs, err := s.ListPackages(rec.ModelID)
		if err != nil {
			return err
		}
		for _, p := range pkgs {
			ext := strings.TrimPrefix(filepath.Ext(p.Path), ".")
			if _, err := m.Attach(p.FType, ext, p.Unit); err != nil {
				return err
			}
		}

		if err := m.WriteNameFile(); err != nil {
			return err
		}
		fmt.Printf("Wrote %s (%d package(s))\n", m.NameFilePath(), len(pkgs))
		return nil
	},
}
