package scan

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"sync"
)

// FindFilesWithHash returns the ini files below root that declare the given hash
// value. Comparison lowercases both sides and ignores a 0x prefix; a file matches
// at most once no matter how often it declares the value. A missing root yields
// an empty result, not an error. Results are sorted.
func FindFilesWithHash(ctx context.Context, root, target string, workers int) ([]string, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}
	info, err := os.Stat(abs)
	if err != nil || !info.IsDir() {
		return nil, nil
	}

	files, err := markerFiles(abs, false)
	if err != nil {
		return nil, err
	}

	want := NormalizeHash(target)

	var matches []string
	var mu sync.Mutex

	err = forEachFile(ctx, files, workers, func(path string) {
		for _, value := range ExtractHashes(path) {
			if NormalizeHash(value) == want {
				mu.Lock()
				matches = append(matches, path)
				mu.Unlock()
				return
			}
		}
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(matches)
	return matches, nil
}
