// Package main provides the mfpack CLI, a generator for MODFLOW-USG
// transport package input files.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/hydroforge/mfpack/internal/store"
	"github.com/hydroforge/mfpack/pkg/modflow"
)

// Exit codes: 0 success, 1 user error, 2 system error.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(exitCode(err))
	}
	os.Exit(exitSuccess)
}

// exitCode classifies an error: mistakes in user input map to exitUserError,
// everything else (I/O, catalog corruption) to exitSysError.
func exitCode(err error) int {
	userErrors := []error{
		store.ErrNotFound,
		store.ErrDuplicateName,
		store.ErrUnitTaken,
		store.ErrInvalidModel,
		modflow.ErrUnitInUse,
		modflow.ErrInvalidUnit,
		modflow.ErrInvalidPeriods,
		modflow.ErrNegativePeriod,
		modflow.ErrFieldCount,
	}
	for _, target := range userErrors {
		if errors.Is(err, target) {
			return exitUserError
		}
	}
	return exitSysError
}
