package modsect

import (
	"io"
	"time"

	"github.com/creasty/defaults"
	"gopkg.in/yaml.v3"
)

type runYaml struct {
	Root      string `yaml:"root"`
	StateFile string `yaml:"stateFile"`

	DisabledPrefix   string   `yaml:"disabledPrefix" default:"DISABLED "`
	MarkerExtensions []string `yaml:"markerExtensions" default:"[\".ini\"]"`

	Retry *retryYaml `yaml:"retry"`
}

type retryYaml struct {
	Attempts int           `yaml:"attempts" default:"3"`
	Backoff  time.Duration `yaml:"backoff" default:"500"`
}

// GetRunFromConfig reads in a run config in yaml format from a reader and initializes the corresponding run struct
func GetRunFromConfig(r io.Reader) (*Run, error) {
	var config runYaml

	// Read in yaml
	decoder := yaml.NewDecoder(r)
	if err := decoder.Decode(&config); err != nil {
		return nil, err
	}

	// Only a retry section present in the yaml enables the bounded policy
	hasRetry := config.Retry != nil

	if err := defaults.Set(&config); err != nil {
		return nil, err
	}

	// Convert to Run struct
	run := &Run{
		Root:      config.Root,
		StateFile: config.StateFile,

		DisabledPrefix:   config.DisabledPrefix,
		MarkerExtensions: config.MarkerExtensions,
	}

	if hasRetry {
		run.Retry = &RetryPolicy{
			Attempts: config.Retry.Attempts,

			Backoff: config.Retry.Backoff * time.Millisecond,
		}
	}

	return run, nil
}
