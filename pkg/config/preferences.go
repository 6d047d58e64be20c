package config

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/afero"
)

// Preferences are the settings the user can change from the tray.
type Preferences struct {
	// ShowMessage shows a notice when the tray starts.
	ShowMessage bool `json:"showMessage" mapstructure:"showMessage"`
}

func DefaultPreferences() Preferences {
	return Preferences{ShowMessage: true}
}

// LoadPreferences reads path from fs. A missing file yields the defaults;
// values are decoded weakly so "true" and 1 are accepted for booleans.
func LoadPreferences(fs afero.Fs, path string) (Preferences, error) {
	prefs := DefaultPreferences()
	ok, err := afero.Exists(fs, path)
	if err != nil || !ok {
		return prefs, err
	}
	buf, err := afero.ReadFile(fs, path)
	if err != nil {
		return prefs, err
	}
	var raw map[string]interface{}
	if err := json.Unmarshal(buf, &raw); err != nil {
		return prefs, fmt.Errorf("preferences %s: %w", path, err)
	}
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           &prefs,
	})
	if err != nil {
		return prefs, err
	}
	if err := dec.Decode(raw); err != nil {
		return DefaultPreferences(), fmt.Errorf("preferences %s: %w", path, err)
	}
	return prefs, nil
}

func (p Preferences) Save(fs afero.Fs, path string) error {
	if err := fs.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	buf, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return err
	}
	return afero.WriteFile(fs, path, buf, 0644)
}

// Store loads and saves preferences at a fixed path.
type Store struct {
	Fs   afero.Fs
	Path string
}

func (s Store) Load() (Preferences, error) {
	return LoadPreferences(s.Fs, s.Path)
}

func (s Store) Save(p Preferences) error {
	return p.Save(s.Fs, s.Path)
}
