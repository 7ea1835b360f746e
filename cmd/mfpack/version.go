// Version command for the mfpack CLI.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hydroforge/mfpack/pkg/modflow"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the mfpack version",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("mfpack", modflow.Version)
	},
}
