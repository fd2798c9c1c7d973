package modsect

import (
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
)

func writeUnit(t *testing.T, root, name, marker string) string {
	t.Helper()
	dir := filepath.Join(root, name)
	assert.Nil(t, os.MkdirAll(dir, 0755), "couldn't create unit folder")
	assert.Nil(t, os.WriteFile(filepath.Join(dir, marker), []byte("hash = abc\n"), 0644), "couldn't create marker file")
	return dir
}

func unitNames(units []Unit) []string {
	names := make([]string, len(units))
	for i, u := range units {
		names[i] = u.Name
	}
	sort.Strings(names)
	return names
}

func TestFindUnits(t *testing.T) {
	t.Run("Marker files are found case-insensitively", func(t *testing.T) {
		root := t.TempDir()
		writeUnit(t, root, "modA", "mod.ini")
		writeUnit(t, root, "modB", "MOD.INI")

		units, err := FindUnits(root, []string{".ini"})
		assert.Nil(t, err, "FindUnits returned an error")
		assert.Equal(t, []string{"modA", "modB"}, unitNames(units), "Wrong units found")
	})

	t.Run("Subtrees of units are not descended into", func(t *testing.T) {
		root := t.TempDir()
		dir := writeUnit(t, root, "modA", "mod.ini")
		writeUnit(t, dir, "nested", "inner.ini")

		units, err := FindUnits(root, []string{".ini"})
		assert.Nil(t, err, "FindUnits returned an error")
		assert.Equal(t, []string{"modA"}, unitNames(units), "Nested folder reported as a unit")
	})

	t.Run("Folders without marker files are traversed, not reported", func(t *testing.T) {
		root := t.TempDir()
		assert.Nil(t, os.MkdirAll(filepath.Join(root, "pack"), 0755), "couldn't create folder")
		assert.Nil(t, os.WriteFile(filepath.Join(root, "pack", "readme.txt"), []byte("x"), 0644), "couldn't create file")
		writeUnit(t, filepath.Join(root, "pack"), "inner", "mod.ini")

		units, err := FindUnits(root, []string{".ini"})
		assert.Nil(t, err, "FindUnits returned an error")
		assert.Equal(t, []string{"inner"}, unitNames(units), "Wrong units found")
	})

	t.Run("Disabled folders are still discovered", func(t *testing.T) {
		root := t.TempDir()
		writeUnit(t, root, "DISABLED modA", "mod.ini")

		units, err := FindUnits(root, []string{".ini"})
		assert.Nil(t, err, "FindUnits returned an error")
		assert.Len(t, units, 1, "Disabled unit not discovered")
		assert.True(t, units[0].Disabled("DISABLED "), "Unit not reported as disabled")
	})

	t.Run("Missing root yields an empty list and no error", func(t *testing.T) {
		units, err := FindUnits(filepath.Join(t.TempDir(), "gone"), []string{".ini"})
		assert.Nil(t, err, "Missing root treated as an error")
		assert.Empty(t, units, "Missing root yielded units")
	})

	t.Run("Non-directory root yields an empty list and no error", func(t *testing.T) {
		root := t.TempDir()
		file := filepath.Join(root, "file.ini")
		assert.Nil(t, os.WriteFile(file, []byte("x"), 0644), "couldn't create file")

		units, err := FindUnits(file, []string{".ini"})
		assert.Nil(t, err, "File root treated as an error")
		assert.Empty(t, units, "File root yielded units")
	})

	t.Run("Empty root path yields an empty list", func(t *testing.T) {
		units, err := FindUnits("", []string{".ini"})
		assert.Nil(t, err, "Empty root treated as an error")
		assert.Empty(t, units, "Empty root yielded units")
	})
}

func TestPathHelpers(t *testing.T) {
	values := []struct {
		path     string
		disabled string
	}{
		{filepath.Join("parent", "mod"), filepath.Join("parent", "DISABLED mod")},
		{filepath.Join("a", "b", "mod x"), filepath.Join("a", "b", "DISABLED mod x")},
	}

	for _, v := range values {
		assert.Equal(t, v.disabled, disabledPath(v.path, "DISABLED "), "Wrong disabled path")
		assert.Equal(t, v.path, enabledPath(v.disabled, "DISABLED "), "Wrong enabled path")
	}

	// Paths without the prefix are returned unchanged
	assert.Equal(t, filepath.Join("parent", "mod"), enabledPath(filepath.Join("parent", "mod"), "DISABLED "), "Unprefixed path changed")
}
