package scan

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFindFilesWithHash(t *testing.T) {
	root := t.TempDir()
	a := writeIni(t, root, "a.ini", "hash = 0xAB12\n")
	b := writeIni(t, filepath.Join(root, "sub"), "b.ini", "hash = ab12\nhash = ab12\n")
	writeIni(t, root, "c.ini", "hash = ffff\n")

	t.Run("Matches regardless of case and 0x prefix", func(t *testing.T) {
		matches, err := FindFilesWithHash(context.Background(), root, "AB12", 4)
		assert.Nil(t, err, "FindFilesWithHash returned an error")
		assert.Equal(t, []string{a, b}, matches, "Wrong files matched")
	})

	t.Run("A file matches at most once", func(t *testing.T) {
		matches, err := FindFilesWithHash(context.Background(), root, "0xab12", 4)
		assert.Nil(t, err, "FindFilesWithHash returned an error")
		assert.Len(t, matches, 2, "File with repeated declarations matched more than once")
	})

	t.Run("No matches", func(t *testing.T) {
		matches, err := FindFilesWithHash(context.Background(), root, "dead", 4)
		assert.Nil(t, err, "FindFilesWithHash returned an error")
		assert.Empty(t, matches, "Unexpected matches")
	})

	t.Run("Missing root yields an empty result", func(t *testing.T) {
		matches, err := FindFilesWithHash(context.Background(), filepath.Join(t.TempDir(), "gone"), "ab12", 4)
		assert.Nil(t, err, "Missing root treated as an error")
		assert.Empty(t, matches, "Missing root yielded matches")
	})
}
