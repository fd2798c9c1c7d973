package modsect

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGetRunFromConfig(t *testing.T) {
	yml := `
root: "mods"
stateFile: "state.json"
retry:
  attempts: 5
`

	run, err := GetRunFromConfig(strings.NewReader(yml))
	assert.Nil(t, err, "GetRunFromConfig returned an error")

	assert.Equal(t, "mods", run.Root, "Mismatch in run field")
	assert.Equal(t, "state.json", run.StateFile, "Mismatch in run field")
	assert.Equal(t, "DISABLED ", run.DisabledPrefix, "Default disabled prefix not applied")
	assert.Equal(t, []string{".ini"}, run.MarkerExtensions, "Default marker extensions not applied")
	assert.NotNil(t, run.Retry, "Retry policy missing despite retry section")
	assert.Equal(t, 5, run.Retry.Attempts, "Mismatch in retry field")
	assert.Equal(t, 500*time.Millisecond, run.Retry.Backoff, "Default backoff not applied")
}

func TestGetRunFromConfigOverrides(t *testing.T) {
	yml := `
root: "mods"
stateFile: "state.json"
disabledPrefix: "OFF "
markerExtensions: [".ini", ".cfg"]
`

	run, err := GetRunFromConfig(strings.NewReader(yml))
	assert.Nil(t, err, "GetRunFromConfig returned an error")

	assert.Equal(t, "OFF ", run.DisabledPrefix, "Configured prefix was overridden")
	assert.Equal(t, []string{".ini", ".cfg"}, run.MarkerExtensions, "Configured extensions were overridden")
	assert.Nil(t, run.Retry, "Retry policy set despite missing retry section")
}

func TestGetRunFromConfigInvalidYaml(t *testing.T) {
	_, err := GetRunFromConfig(strings.NewReader("{"))
	assert.NotNil(t, err, "Invalid yaml did not return an error")
}
