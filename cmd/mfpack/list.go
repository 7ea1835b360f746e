// List and delete commands for the workspace catalog.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list [model]",
	Short: "List cataloged models, or one model's package files",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openCatalog()
		if err != nil {
			return err
		}
		defer s.Close()

		if len(args) == 0 {
			models, err := s.ListModels()
			if err != nil {
				return err
			}
			if flagJSON {
				return printJSON(models)
			}
			if len(models) == 0 {
				fmt.Println("No models in catalog")
				return nil
			}
			for _, m := range models {
				grid := "structured"
				if !m.Structured {
					grid = "unstructured"
				}
				fmt.Printf("%s  nper=%d  %s  %s\n", m.Name, m.Nper, grid, m.Workspace)
			}
			return nil
		}

		rec, err := s.GetModel(args[0])
		if err != nil {
			return err
		}
		pkgs, err := s.ListPackages(rec.ModelID)
		if err != nil {
			return err
		}
		if flagJSON {
			return printJSON(pkgs)
		}
		if len(pkgs) == 0 {
			fmt.Printf("No packages recorded for %s\n", rec.Name)
			return nil
		}
		for _, p := range pkgs {
			fmt.Printf("%s  unit=%d  %s\n", p.FType, p.Unit, p.Path)
		}
		return nil
	},
}

var deleteCmd = &cobra.Command{
	Use:   "delete <model>",
	Short: "Remove a model and its package records from the catalog",
	Long: `Delete removes the catalog rows for a model. Generated files in the
workspace are left untouched.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openCatalog()
		if err != nil {
			return err
		}
		defer s.Close()

		if err := s.DeleteModel(args[0]); err != nil {
			return err
		}
		fmt.Printf("Deleted %s from catalog\n", args[0])
		return nil
	},
}
