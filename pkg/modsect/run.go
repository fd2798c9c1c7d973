package modsect

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
)

// OutcomeKind enumerates the ways a run can end.
type OutcomeKind int

const (
	// OutcomeFound means the search narrowed the candidates down to exactly one folder.
	OutcomeFound OutcomeKind = iota
	// OutcomeNoCandidates means there was nothing to search: no mod folders were
	// found, or all of them were already disabled at start.
	OutcomeNoCandidates
	// OutcomeAborted means the operator ended the run at a prompt.
	OutcomeAborted
	// OutcomeCancelled means the passed context was cancelled. The run performs no
	// cleanup in this case; restoring the disabled folders is the caller's job.
	OutcomeCancelled
	// OutcomeExhausted means the candidate set emptied without isolating a folder.
	OutcomeExhausted
)

// An Outcome is the result of a completed run.
type Outcome struct {
	Kind OutcomeKind

	// The current on-disk path of the isolated folder. Only set for OutcomeFound.
	// Depending on the final activation state this is either the folder's original
	// name or its disabled name.
	Path string
}

func (o Outcome) String() string {
	switch o.Kind {
	case OutcomeFound:
		return fmt.Sprintf("found %s", o.Path)
	case OutcomeNoCandidates:
		return "no candidates to search"
	case OutcomeAborted:
		return "aborted"
	case OutcomeCancelled:
		return "cancelled"
	default:
		return "search ended without isolating a folder"
	}
}

// A Run bisects the mod folders below Root to isolate the one causing a problem.
// Runs can be created manually or from a config via [GetRunFromConfig].
type Run struct {
	Root      string // The folder tree to search for mod folders
	StateFile string // Where the folders disabled by this run are recorded for crash recovery

	DisabledPrefix   string   // The name prefix marking a folder as disabled. Defaults to [DefaultDisabledPrefix]
	MarkerExtensions []string // The file extensions marking a folder as a mod. Defaults to [DefaultMarkerExtension]

	Oracle Oracle       // Answers the reproduce question and the rename protocol prompts
	Retry  *RetryPolicy // Optional bounded policy replacing the interactive rename protocol

	OnResult func(path string) // Optional callback receiving the isolated folder's on-disk path

	Log *logrus.Logger // The log to which information gets printed to

	state *runState
	act   *activator

	candidates  []string // Original absolute paths of the folders still under bisection
	preExcluded []string // Folders already disabled at start. Never touched, never searched
}

// Start discovers the mod folders below Root and drives the bisection until a
// terminal outcome is reached. It blocks on every oracle prompt.
//
// The context is checked before every bisection iteration and before every rename
// attempt. Cancelling it ends the run with [OutcomeCancelled] and skips the
// automatic restore, so the caller can decide whether to keep the disabled state;
// all other terminals, including operator abort and unexpected errors, restore
// every folder this run disabled before returning.
//
// When the returned error is non-nil, the outcome carries no meaning.
func (r *Run) Start(ctx context.Context) (Outcome, error) {
	if r.Log == nil {
		// Mute logger
		r.Log = logrus.New()
		r.Log.SetOutput(io.Discard)
	}
	if r.DisabledPrefix == "" {
		r.DisabledPrefix = DefaultDisabledPrefix
	}
	if len(r.MarkerExtensions) == 0 {
		r.MarkerExtensions = []string{DefaultMarkerExtension}
	}
	if r.Oracle == nil {
		return Outcome{}, errors.New("no oracle configured")
	}
	if r.StateFile == "" {
		return Outcome{}, errors.New("no state file configured")
	}

	r.Log.Infof("Searching for mod folders under %s...", r.Root)
	units, err := FindUnits(r.Root, r.MarkerExtensions)
	if err != nil {
		return Outcome{}, err
	}
	if len(units) == 0 {
		r.Log.Info("No mod folders found.")
		return Outcome{Kind: OutcomeNoCandidates}, nil
	}

	r.Log.Infof("Found %d mod folders", len(units))
	r.candidates, r.preExcluded = nil, nil
	for _, unit := range units {
		r.Log.Infof("- %s: %s", unit.Name, unit.Path)
		if unit.Disabled(r.DisabledPrefix) {
			r.preExcluded = append(r.preExcluded, unit.Path)
		} else {
			r.candidates = append(r.candidates, unit.Path)
		}
	}
	if len(r.preExcluded) > 0 {
		r.Log.Infof("%d folders are already disabled and stay excluded from the search", len(r.preExcluded))
	}
	if len(r.candidates) == 0 {
		r.Log.Info("No active mod folders to search.")
		return Outcome{Kind: OutcomeNoCandidates}, nil
	}

	r.state = newRunState(r.StateFile)
	r.act = &activator{prefix: r.DisabledPrefix, oracle: r.Oracle, retry: r.Retry, log: r.Log}

	outcome, err := r.bisect(ctx)

	// Restore everything this run disabled, unless the run was cancelled, in which
	// case the caller owns the cleanup. The restore runs on a fresh context since
	// the run's context may already be dead on error paths.
	if err != nil || outcome.Kind != OutcomeCancelled {
		if _, restoreErr := r.restoreAll(context.Background()); restoreErr != nil {
			if err == nil {
				err = restoreErr
			} else {
				r.Log.Errorf("Failed to restore disabled folders - %v", restoreErr)
			}
		}
	}

	if err == nil && outcome.Kind == OutcomeFound && r.OnResult != nil {
		r.OnResult(outcome.Path)
	}

	return outcome, err
}

// bisect narrows the candidates down by halving until one remains.
func (r *Run) bisect(ctx context.Context) (Outcome, error) {
	current := append([]string(nil), r.candidates...)

	for len(current) > 1 {
		if ctx.Err() != nil {
			r.Log.Warn("Run cancelled.")
			return Outcome{Kind: OutcomeCancelled}, nil
		}

		// Stable midpoint split on current order. An odd extra element goes to second.
		mid := len(current) / 2
		first, second := current[:mid], current[mid:]

		if err := r.setActiveGroup(ctx, first); err != nil {
			return r.terminalFor(err)
		}
		r.reportGroups(first)

		reproduces, err := r.askReproduces(len(first))
		if err != nil {
			return r.terminalFor(err)
		}

		if reproduces {
			// The problem occurs with only first active, so the culprit is in first
			current = first
		} else {
			// The culprit is in second. Activate it so the next iteration starts
			// from a consistent state
			if err := r.setActiveGroup(ctx, second); err != nil {
				return r.terminalFor(err)
			}
			current = second
		}
	}

	if len(current) == 1 {
		path := r.onDiskPath(current[0])
		r.Log.Infof("Isolated folder: %s", path)
		return Outcome{Kind: OutcomeFound, Path: path}, nil
	}
	return Outcome{Kind: OutcomeExhausted}, nil
}

// terminalFor maps the terminal abort and cancellation conditions raised below the
// controller to their outcomes. Anything else surfaces as a failed run.
func (r *Run) terminalFor(err error) (Outcome, error) {
	if errors.Is(err, ErrAborted) {
		r.Log.Warn("Run aborted by operator.")
		return Outcome{Kind: OutcomeAborted}, nil
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		r.Log.Warn("Run cancelled.")
		return Outcome{Kind: OutcomeCancelled}, nil
	}
	return Outcome{}, err
}

// setActiveGroup ensures that, among the candidates, exactly the members of group
// are active. Folders outside the group are disabled and recorded; folders in the
// group that this run disabled earlier are re-enabled. Folders this run never
// touched are left alone, as their state is not this engine's responsibility.
//
// A rename skipped by the operator leaves that one folder in its previous state
// and the group activation proceeds; the set of renames is not transactional.
func (r *Run) setActiveGroup(ctx context.Context, group []string) error {
	inGroup := make(map[string]bool, len(group))
	for _, path := range group {
		inGroup[path] = true
	}
	for _, orig := range r.candidates {
		if inGroup[orig] {
			if err := r.ensureEnabled(ctx, orig); err != nil {
				return err
			}
		} else {
			if err := r.ensureDisabled(ctx, orig); err != nil {
				return err
			}
		}
	}
	return nil
}

// ensureDisabled disables the folder at its original path, recording the new path
// only when a rename actually happened.
func (r *Run) ensureDisabled(ctx context.Context, orig string) error {
	if _, err := os.Stat(orig); err != nil {
		// Already renamed away, or gone
		return nil
	}
	newPath, renamed, err := r.act.disable(ctx, orig)
	if err != nil {
		return err
	}
	if renamed {
		return r.state.record(newPath)
	}
	return nil
}

// ensureEnabled re-enables the folder if this run disabled it earlier.
func (r *Run) ensureEnabled(ctx context.Context, orig string) error {
	disabled := disabledPath(orig, r.DisabledPrefix)
	if !r.state.contains(disabled) {
		return nil
	}
	if _, err := os.Stat(disabled); err != nil {
		return nil
	}
	_, renamed, err := r.act.enable(ctx, disabled)
	if err != nil {
		return err
	}
	if renamed {
		return r.state.unrecord(disabled)
	}
	return nil
}

// reportGroups logs which candidates are currently active and which are not.
func (r *Run) reportGroups(group []string) {
	inGroup := make(map[string]bool, len(group))
	for _, path := range group {
		inGroup[path] = true
	}

	r.Log.Info("Inactive folders:")
	inactive := 0
	for _, orig := range r.candidates {
		if !inGroup[orig] {
			r.Log.Infof("- %s: %s", filepath.Base(orig), orig)
			inactive++
		}
	}
	if inactive == 0 {
		r.Log.Info("(none)")
	}

	r.Log.Info("Active folders:")
	for _, orig := range group {
		r.Log.Infof("- %s: %s", filepath.Base(orig), orig)
	}
	if len(group) == 0 {
		r.Log.Info("(none)")
	}
}

// askReproduces asks the oracle whether the problem still occurs with the current
// group active, re-prompting on unrecognized answers.
func (r *Run) askReproduces(activeCount int) (bool, error) {
	prompt := fmt.Sprintf("Does the problem still occur with only these %d folders active? [y]es, [n]o or [a]bort", activeCount)
	for {
		answer, err := r.Oracle.Ask(prompt)
		if err != nil {
			return false, err
		}
		answer = strings.ToLower(strings.TrimSpace(answer))
		if answer == "" {
			continue
		}
		switch answer[0] {
		case 'y':
			return true, nil
		case 'n':
			return false, nil
		case 'a':
			return false, ErrAborted
		}
		r.Log.Info("Not a valid choice. Answer y, n or a.")
	}
}

// onDiskPath resolves where the folder currently lives: under its original name or
// under its disabled name, depending on the final activation state.
func (r *Run) onDiskPath(orig string) string {
	if _, err := os.Stat(orig); err == nil {
		return orig
	}
	disabled := disabledPath(orig, r.DisabledPrefix)
	if _, err := os.Stat(disabled); err == nil {
		return disabled
	}
	return orig
}

// restoreAll re-enables every folder this run disabled and removes the state file.
// The record shrinks and is re-persisted after every successful rename, so an
// interruption during the restore itself stays recoverable.
func (r *Run) restoreAll(ctx context.Context) (int, error) {
	restored := 0
	for _, path := range r.state.paths() {
		if !isDisabledName(filepath.Base(path), r.DisabledPrefix) {
			continue
		}
		if _, err := os.Stat(path); err != nil {
			continue
		}
		_, renamed, err := r.act.enable(ctx, path)
		if err != nil {
			return restored, err
		}
		if renamed {
			restored++
			if err := r.state.unrecord(path); err != nil {
				return restored, err
			}
		}
	}
	if err := r.state.delete(); err != nil {
		return restored, err
	}
	if restored > 0 {
		r.Log.Infof("Restored %d folders", restored)
	}
	return restored, nil
}
