// Init command registers a model and creates its workspace.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/hydroforge/mfpack/internal/log"
	"github.com/hydroforge/mfpack/internal/store"
)

var (
	flagInitNper         int
	flagInitUnstructured bool
)

var initCmd = &cobra.Command{
	Use:   "init <model>",
	Short: "Register a model and create its workspace directory",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]

		workspace, err := resolveWorkspace()
		if err != nil {
			return fmt.Errorf("resolve workspace: %w", err)
		}
		if err := os.MkdirAll(workspace, 0o755); err != nil {
			return fmt.Errorf("create workspace: %w", err)
		}

		nper, structured := resolveGridDefaults(
			cmd.Flags().Changed("nper"),
			cmd.Flags().Changed("unstructured"),
			flagInitNper,
			flagInitUnstructured,
		)

		s, err := openCatalog()
		if err != nil {
			return err
		}
		defer s.Close()

		id, err := s.CreateModel(store.Model{
			Name:       name,
			Workspace:  workspace,
			Nper:       nper,
			Structured: structured,
		})
		if err != nil {
			return err
		}

		logger := log.WithComponent("init")
		logger.Debug().
			Str("model", name).
			Str("model_id", id).
			Str("workspace", workspace).
			Msg("model registered")

		fmt.Printf("Initialized model %s in %s (%d stress periods)\n", name, workspace, nper)
		return nil
	},
}

// resolveGridDefaults applies the flag > config.yaml precedence to the
// stress period count and grid shape: an explicitly set flag wins, an unset
// one falls back to the loaded config value.
func resolveGridDefaults(nperSet, gridSet bool, flagNper int, flagUnstructured bool) (int, bool) {
	nper := configNper
	if nperSet {
		nper = flagNper
	}
	structured := configStructured
	if gridSet {
		structured = !flagUnstructured
	}
	return nper, structured
}

func init() {
	initCmd.Flags().IntVar(&flagInitNper, "nper", defaultNper, "number of stress periods (default from config.yaml)")
	initCmd.Flags().BoolVar(&flagInitUnstructured, "unstructured", false, "model uses a node-numbered (unstructured) grid (default from config.yaml)")
}
