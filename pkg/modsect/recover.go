package modsect

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"
)

// A Recovery undoes what an interrupted run left behind: it re-enables every folder
// named in the run's state file and discards the file. It is the path used for
// cleaning up after a crash and is safe to invoke when there is nothing to recover.
type Recovery struct {
	StateFile string // The state file of the interrupted run

	DisabledPrefix string // The name prefix marking a folder as disabled. Defaults to [DefaultDisabledPrefix]

	Oracle Oracle       // Optional oracle for the rename protocol
	Retry  *RetryPolicy // Bounded rename policy, used when no oracle is set. Defaults to 3 attempts

	Log *logrus.Logger // The log to which information gets printed to
}

// Run restores every recorded folder that still exists on disk and still carries
// the disabled prefix, then removes the state file regardless of how many entries
// were restored. Entries that no longer qualify are skipped without counting, as
// they were already restored by other means. It returns the number of folders
// actually restored.
//
// An absent state file means there is nothing to recover and is not an error.
func (rc *Recovery) Run(ctx context.Context) (int, error) {
	if rc.Log == nil {
		// Mute logger
		rc.Log = logrus.New()
		rc.Log.SetOutput(io.Discard)
	}
	if rc.DisabledPrefix == "" {
		rc.DisabledPrefix = DefaultDisabledPrefix
	}
	if rc.Oracle == nil && rc.Retry == nil {
		rc.Retry = &RetryPolicy{Attempts: 3, Backoff: 500 * time.Millisecond}
	}

	paths, err := loadStatePaths(rc.StateFile)
	if err != nil {
		return 0, err
	}

	act := &activator{prefix: rc.DisabledPrefix, oracle: rc.Oracle, retry: rc.Retry, log: rc.Log}

	restored := 0
	for _, path := range paths {
		if !isDisabledName(filepath.Base(path), rc.DisabledPrefix) {
			continue
		}
		if _, err := os.Stat(path); err != nil {
			continue
		}
		_, renamed, err := act.enable(ctx, path)
		if err != nil {
			return restored, err
		}
		if renamed {
			rc.Log.Infof("Restored %s", path)
			restored++
		}
	}

	if err := os.Remove(rc.StateFile); err != nil && !os.IsNotExist(err) {
		return restored, err
	}
	return restored, nil
}
