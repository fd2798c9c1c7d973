package modsect

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// DefaultDisabledPrefix is the name prefix marking a folder as disabled.
const DefaultDisabledPrefix = "DISABLED "

// DefaultMarkerExtension is the file extension whose presence marks a folder as a mod.
const DefaultMarkerExtension = ".ini"

// A Unit is a single mod folder found during discovery.
type Unit struct {
	Name string // The current basename of the folder
	Path string // The absolute on-disk path of the folder
}

// Disabled reports whether the unit currently carries the disabled prefix.
func (u Unit) Disabled(prefix string) bool {
	return strings.HasPrefix(u.Name, prefix)
}

// FindUnits walks the tree below root and returns every folder that directly contains
// at least one file whose extension case-insensitively matches one of markerExts.
// Subtrees of matching folders are not descended into, since units are not nested.
//
// A missing root or a root that is not a directory yields an empty list and no error.
func FindUnits(root string, markerExts []string) ([]Unit, error) {
	if root == "" {
		return nil, nil
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}
	info, err := os.Stat(abs)
	if err != nil || !info.IsDir() {
		return nil, nil
	}

	var units []Unit
	err = filepath.WalkDir(abs, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		entries, err := os.ReadDir(path)
		if err != nil {
			return err
		}
		for _, entry := range entries {
			if entry.IsDir() {
				continue
			}
			if hasMarkerExt(entry.Name(), markerExts) {
				units = append(units, Unit{Name: filepath.Base(path), Path: path})
				return fs.SkipDir
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return units, nil
}

func hasMarkerExt(name string, exts []string) bool {
	ext := filepath.Ext(name)
	for _, e := range exts {
		if strings.EqualFold(ext, e) {
			return true
		}
	}
	return false
}

func isDisabledName(name, prefix string) bool {
	return strings.HasPrefix(name, prefix)
}

// disabledPath returns the name the folder gets when disabled, in the same parent directory.
func disabledPath(path, prefix string) string {
	return filepath.Join(filepath.Dir(path), prefix+filepath.Base(path))
}

// enabledPath strips the disabled prefix off the folder's basename.
// Paths not carrying the prefix are returned unchanged.
func enabledPath(path, prefix string) string {
	name := filepath.Base(path)
	if !isDisabledName(name, prefix) {
		return path
	}
	return filepath.Join(filepath.Dir(path), strings.TrimPrefix(name, prefix))
}
