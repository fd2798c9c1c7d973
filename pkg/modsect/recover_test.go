package modsect

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

// crashState simulates a run that died mid-way: the given folders are renamed to
// their disabled names and a state file recording them is written.
func crashState(t *testing.T, stateFile string, origPaths ...string) []string {
	t.Helper()
	disabled := make([]string, len(origPaths))
	for i, orig := range origPaths {
		disabled[i] = disabledPath(orig, "DISABLED ")
		assert.Nil(t, os.Rename(orig, disabled[i]), "couldn't disable folder")
	}
	data, err := json.Marshal(disabled)
	assert.Nil(t, err, "couldn't marshal state")
	assert.Nil(t, os.WriteFile(stateFile, data, 0644), "couldn't write state file")
	return disabled
}

func TestRecovery(t *testing.T) {
	t.Run("Restores exactly the recorded folders and removes the file", func(t *testing.T) {
		root, paths := setupUnits(t, "modA", "modB", "modC")
		stateFile := filepath.Join(t.TempDir(), "state.json")
		crashState(t, stateFile, paths[0], paths[2])

		recovery := &Recovery{StateFile: stateFile}
		restored, err := recovery.Run(context.Background())
		assert.Nil(t, err, "Recovery returned an error")
		assert.Equal(t, 2, restored, "Wrong number of folders restored")

		assert.ElementsMatch(t, []string{"modA", "modB", "modC"}, activeEntries(t, root), "Folders not restored")
		assert.NoFileExists(t, stateFile, "State file left behind")
	})

	t.Run("Entries that no longer qualify are skipped without counting", func(t *testing.T) {
		root, paths := setupUnits(t, "modA", "modB")
		stateFile := filepath.Join(t.TempDir(), "state.json")
		disabled := crashState(t, stateFile, paths[0])

		// modA was already restored by other means, and the state file additionally
		// names a path that never existed and one without the prefix
		assert.Nil(t, os.Rename(disabled[0], paths[0]), "couldn't restore folder")
		entries := []string{disabled[0], filepath.Join(root, "DISABLED gone"), paths[1]}
		data, err := json.Marshal(entries)
		assert.Nil(t, err, "couldn't marshal state")
		assert.Nil(t, os.WriteFile(stateFile, data, 0644), "couldn't write state file")

		recovery := &Recovery{StateFile: stateFile}
		restored, err := recovery.Run(context.Background())
		assert.Nil(t, err, "Recovery returned an error")
		assert.Zero(t, restored, "Unqualified entries were counted")

		assert.ElementsMatch(t, []string{"modA", "modB"}, activeEntries(t, root), "Folders changed unexpectedly")
		assert.NoFileExists(t, stateFile, "State file left behind despite zero restores")
	})

	t.Run("Absent state file restores nothing and is not an error", func(t *testing.T) {
		recovery := &Recovery{StateFile: filepath.Join(t.TempDir(), "gone.json")}
		restored, err := recovery.Run(context.Background())
		assert.Nil(t, err, "absent state file treated as an error")
		assert.Zero(t, restored, "absent state file restored folders")
	})

	t.Run("A state file that is not a JSON list is an error", func(t *testing.T) {
		stateFile := filepath.Join(t.TempDir(), "state.json")
		assert.Nil(t, os.WriteFile(stateFile, []byte("not json"), 0644), "couldn't write state file")

		recovery := &Recovery{StateFile: stateFile}
		_, err := recovery.Run(context.Background())
		assert.NotNil(t, err, "invalid state file not reported")
	})
}
