// Root command for the mfpack CLI.
package main

import (
	"github.com/spf13/cobra"

	"github.com/hydroforge/mfpack/internal/log"
	"github.com/hydroforge/mfpack/internal/paths"
	"github.com/hydroforge/mfpack/pkg/modflow"
)

// Global flag values.
var (
	flagConfigDir string
	flagWorkspace string
	flagVerbose   bool
	flagJSON      bool
)

// Values loaded from config.yaml. Set by PersistentPreRunE so all
// subcommands can use them.
var (
	configWorkspace  string
	configNper       int
	configStructured bool
)

var rootCmd = &cobra.Command{
	Use:     "mfpack",
	Short:   "mfpack generates MODFLOW-USG transport package input files",
	Version: modflow.Version,
	Long: `mfpack writes and reads input files for the MODFLOW-USG transport
packages it supports (density-driven flow, prescribed concentration
boundaries), and keeps a catalog of the models in a workspace so name
files can be regenerated at any time.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level := ""
		if flagVerbose {
			level = "debug"
		}
		log.Configure(log.Config{Level: level, Pretty: true})

		configDir, err := resolveConfigDir()
		if err != nil {
			return err
		}
		cfg, err := loadConfig(configDir)
		if err != nil {
			return err
		}
		configWorkspace = cfg.GetString(cfgKeyWorkspace)
		configNper = cfg.GetInt(cfgKeyNper)
		configStructured = cfg.GetBool(cfgKeyStructured)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfigDir, "config-dir", "", "configuration directory (default: platform config dir)")
	rootCmd.PersistentFlags().StringVar(&flagWorkspace, "workspace", "", "model workspace directory (default: current directory)")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "output as JSON")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(ddfCmd)
	rootCmd.AddCommand(pcbCmd)
	rootCmd.AddCommand(namCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(deleteCmd)
}

// resolveConfigDir follows the precedence flag > env > platform default.
func resolveConfigDir() (string, error) {
	return paths.ResolveConfigDir(flagConfigDir)
}

// resolveWorkspace follows the precedence flag > config.yaml > env > CWD.
func resolveWorkspace() (string, error) {
	return paths.ResolveWorkspace(flagWorkspace, configWorkspace)
}
