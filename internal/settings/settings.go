// Package settings persists small user conveniences, such as the last used mods
// path, and copies user settings files to and from backups. These are
// configuration concerns kept separate from the bisection engine.
package settings

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/dchest/uniuri"
	"github.com/otiai10/copy"
	"gopkg.in/yaml.v3"
)

// Settings holds the persisted user preferences.
type Settings struct {
	LastPath string `yaml:"lastPath"` // The mods path used by the most recent run
}

// DefaultPath returns the settings file location under the user's config directory.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "modsect", "settings.yml"), nil
}

// Load reads the settings file. An absent file yields zero settings and no error.
func Load(path string) (Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Settings{}, nil
		}
		return Settings{}, err
	}
	var s Settings
	if err := yaml.Unmarshal(data, &s); err != nil {
		return Settings{}, err
	}
	return s, nil
}

// Save writes the settings file atomically, creating parent directories as needed.
func Save(path string, s Settings) error {
	data, err := yaml.Marshal(s)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	tmp := fmt.Sprintf("%s.%s.tmp", path, uniuri.New())
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return err
	}
	return nil
}

// Backup copies a settings file or folder to dst.
func Backup(src, dst string) error {
	return copy.Copy(src, dst)
}

// Restore copies a backup back over its original location.
func Restore(backup, dst string) error {
	return copy.Copy(backup, dst)
}
