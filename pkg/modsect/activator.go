package modsect

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// ErrAborted is returned when the operator chose to abort the run.
var ErrAborted = errors.New("aborted by operator")

// RetryPolicy bounds the rename protocol for non-interactive embeddings.
// Instead of asking the oracle about a failed rename, the rename is reattempted
// up to Attempts times with Backoff between attempts, then fails.
type RetryPolicy struct {
	Attempts int           // How many times a rename is attempted before it is considered to have failed
	Backoff  time.Duration // How long to wait between attempts
}

// The activator performs the rename-based enabling and disabling of single folders.
// Rename failures are handled here and never bubble up raw, unless the operator
// chooses to abort.
type activator struct {
	prefix string
	oracle Oracle
	retry  *RetryPolicy

	log *logrus.Logger
}

// disable renames path to its prefix-carrying form in the same parent directory.
// It returns the resulting path and whether a rename actually happened.
// Paths already carrying the prefix are returned unchanged.
func (a *activator) disable(ctx context.Context, path string) (string, bool, error) {
	if isDisabledName(filepath.Base(path), a.prefix) {
		return path, false, nil
	}
	dst := disabledPath(path, a.prefix)
	ok, err := a.renameWithRetry(ctx, path, dst)
	if err != nil || !ok {
		return path, false, err
	}
	return dst, true, nil
}

// enable renames a prefix-carrying path back to its original name.
// It returns the resulting path and whether a rename actually happened.
// Paths not carrying the prefix are returned unchanged.
func (a *activator) enable(ctx context.Context, path string) (string, bool, error) {
	if !isDisabledName(filepath.Base(path), a.prefix) {
		return path, false, nil
	}
	dst := enabledPath(path, a.prefix)
	ok, err := a.renameWithRetry(ctx, path, dst)
	if err != nil || !ok {
		return path, false, err
	}
	return dst, true, nil
}

// renameWithRetry attempts to rename src to dst, consulting the oracle on failure
// with the choices retry, skip and abort. Skipping returns false and no error,
// meaning the rename was not performed. With a retry policy set, the interactive
// protocol is replaced by bounded reattempts.
//
// The context is checked before every attempt, so a cancelled context makes the
// operation fail instead of retrying.
func (a *activator) renameWithRetry(ctx context.Context, src, dst string) (bool, error) {
	attempt := 0
	for {
		if err := ctx.Err(); err != nil {
			return false, err
		}

		err := os.Rename(src, dst)
		if err == nil {
			return true, nil
		}
		a.log.Warnf("Failed to rename %s to %s - %v", src, dst, err)

		if a.retry != nil {
			attempt++
			if attempt >= a.retry.Attempts {
				return false, fmt.Errorf("rename of %s failed after %d attempts: %w", src, attempt, err)
			}
			time.Sleep(a.retry.Backoff)
			continue
		}

		answer, askErr := a.oracle.Ask(fmt.Sprintf("Renaming %q failed (%v). [r]etry, [s]kip or [a]bort", src, err))
		if askErr != nil {
			return false, askErr
		}
		answer = strings.ToLower(strings.TrimSpace(answer))
		if answer == "" {
			continue
		}
		switch answer[0] {
		case 'r':
			// Loop back to the rename
		case 's':
			a.log.Infof("Skipping rename of %s, continuing.", src)
			return false, nil
		case 'a':
			return false, ErrAborted
		default:
			a.log.Info("Not a valid choice. Answer r, s or a.")
		}
	}
}
