package scan

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/opencontainers/go-digest"
	"golang.org/x/sync/semaphore"
)

// FindDuplicateHashes scans root recursively for ini files and returns the hash
// values declared in more than one file, mapped to the files declaring them.
// Disabled folders and files are skipped. A file declaring the same value twice
// counts once. File lists are sorted for determinism.
func FindDuplicateHashes(ctx context.Context, root string, workers int) (map[string][]string, error) {
	files, err := listScanFiles(root, true)
	if err != nil {
		return nil, err
	}

	byHash := make(map[string][]string)
	var mu sync.Mutex

	err = forEachFile(ctx, files, workers, func(path string) {
		seen := make(map[string]bool)
		for _, value := range ExtractHashes(path) {
			if seen[value] {
				continue
			}
			seen[value] = true
			mu.Lock()
			byHash[value] = append(byHash[value], path)
			mu.Unlock()
		}
	})
	if err != nil {
		return nil, err
	}

	return onlyDuplicates(byHash), nil
}

// FindDuplicateContent digests the contents of every ini file below root and
// returns the digests shared by more than one file, mapped to the files carrying
// them. Disabled folders and files are skipped.
func FindDuplicateContent(ctx context.Context, root string, workers int) (map[string][]string, error) {
	files, err := listScanFiles(root, true)
	if err != nil {
		return nil, err
	}

	byDigest := make(map[string][]string)
	var mu sync.Mutex

	err = forEachFile(ctx, files, workers, func(path string) {
		f, err := os.Open(path)
		if err != nil {
			return
		}
		defer f.Close()
		dgst, err := digest.FromReader(f)
		if err != nil {
			return
		}
		mu.Lock()
		byDigest[dgst.String()] = append(byDigest[dgst.String()], path)
		mu.Unlock()
	})
	if err != nil {
		return nil, err
	}

	return onlyDuplicates(byDigest), nil
}

func listScanFiles(root string, skipDisabled bool) ([]string, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}
	info, err := os.Stat(abs)
	if err != nil || !info.IsDir() {
		return nil, fmt.Errorf("not a directory: %s", root)
	}
	return markerFiles(abs, skipDisabled)
}

// forEachFile runs fn over the files on a worker pool bounded by the semaphore.
func forEachFile(ctx context.Context, files []string, workers int, fn func(path string)) error {
	if workers < 1 {
		workers = 1
	}
	sem := semaphore.NewWeighted(int64(workers))
	for _, path := range files {
		if err := sem.Acquire(ctx, 1); err != nil {
			return err
		}
		go func(path string) {
			defer sem.Release(1)
			fn(path)
		}(path)
	}
	// Wait for the remaining workers
	if err := sem.Acquire(ctx, int64(workers)); err != nil {
		return err
	}
	sem.Release(int64(workers))
	return nil
}

func onlyDuplicates(byKey map[string][]string) map[string][]string {
	duplicates := make(map[string][]string)
	for key, paths := range byKey {
		if len(paths) > 1 {
			sort.Strings(paths)
			duplicates[key] = paths
		}
	}
	return duplicates
}
