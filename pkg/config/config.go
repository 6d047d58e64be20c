// Package config holds the command line configuration and the persisted
// user preferences.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
)

var (
	ErrMissingRoot  = errors.New("Missing parameter.")
	ErrRootNotFound = errors.New("Path does not exists.")
	ErrElevateKey   = errors.New("elevate key must be shift or ctrl")
)

const AppName = "shortcuttray"

type Config struct {
	// Root is the folder exposed as the menu.
	Root            string
	Dev             bool
	Watch           bool
	OpenFolderEntry bool
	ElevateKey      string
	PreferencesPath string
}

func Default() Config {
	return Config{
		OpenFolderEntry: true,
		ElevateKey:      "shift",
	}
}

// ValidateRoot checks that Root names an existing directory. The errors
// carry the exact text shown to the user.
func (c *Config) ValidateRoot(fs afero.Fs) error {
	if c.Root == "" {
		return ErrMissingRoot
	}
	ok, err := afero.DirExists(fs, c.Root)
	if err != nil || !ok {
		return ErrRootNotFound
	}
	if abs, err := filepath.Abs(c.Root); err == nil && fs.Name() == "OsFs" {
		c.Root = abs
	}
	return nil
}

// Validate checks the whole configuration and fills in defaults.
func (c *Config) Validate(fs afero.Fs) error {
	if err := c.ValidateRoot(fs); err != nil {
		return err
	}
	switch c.ElevateKey {
	case "":
		c.ElevateKey = "shift"
	case "shift", "ctrl", "control":
	default:
		return fmt.Errorf("%w: %q", ErrElevateKey, c.ElevateKey)
	}
	if c.PreferencesPath == "" {
		p, err := DefaultPreferencesPath()
		if err != nil {
			return err
		}
		c.PreferencesPath = p
	}
	return nil
}

// DefaultPreferencesPath is preferences.json under the user config dir.
func DefaultPreferencesPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, AppName, "preferences.json"), nil
}
