// Package paths resolves the mfpack configuration directory and model
// workspace locations.
package paths

import (
	"os"
	"path/filepath"
	"runtime"
)

// Environment variable names for directory overrides.
const (
	EnvConfigDir = "MFPACK_CONFIG_DIR"
	EnvWorkspace = "MFPACK_WORKSPACE"
)

// platformDir holds platform-detection functions that can be overridden in
// tests.
var platformDir = struct {
	homeDir       func() (string, error)
	userConfigDir func() (string, error)
	getwd         func() (string, error)
}{
	homeDir:       os.UserHomeDir,
	userConfigDir: os.UserConfigDir,
	getwd:         os.Getwd,
}

// DefaultConfigDir returns the platform-specific default configuration
// directory.
//
// Linux:   $XDG_CONFIG_HOME/mfpack (fallback ~/.config/mfpack)
// macOS:   ~/Library/Application Support/mfpack
// Windows: %APPDATA%/mfpack
func DefaultConfigDir() (string, error) {
	switch runtime.GOOS {
	case "linux":
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, "mfpack"), nil
		}
		home, err := platformDir.homeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, ".config", "mfpack"), nil
	default:
		dir, err := platformDir.userConfigDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(dir, "mfpack"), nil
	}
}

// ResolveConfigDir applies the precedence: --config-dir flag > MFPACK_CONFIG_DIR
// env > platform default.
func ResolveConfigDir(flagValue string) (string, error) {
	if flagValue != "" {
		return flagValue, nil
	}
	if env := os.Getenv(EnvConfigDir); env != "" {
		return env, nil
	}
	return DefaultConfigDir()
}

// ResolveWorkspace applies the precedence: --workspace flag > config.yaml
// workspace > MFPACK_WORKSPACE env > current directory.
func ResolveWorkspace(flagValue, configValue string) (string, error) {
	if flagValue != "" {
		return flagValue, nil
	}
	if configValue != "" {
		return configValue, nil
	}
	if env := os.Getenv(EnvWorkspace); env != "" {
		return env, nil
	}
	return platformDir.getwd()
}
