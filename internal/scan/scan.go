// Package scan implements the read-only ini scanning utilities: duplicate hash
// detection and hash search. These share no state with the bisection engine and
// never mutate the scanned tree.
package scan

import (
	"bufio"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"unicode"
)

// MarkerExtension is the file extension the scanners consider.
const MarkerExtension = ".ini"

var (
	hashLine   = regexp.MustCompile(`(?i)^\s*hash\s*=\s*(.+)$`)
	inlineNote = regexp.MustCompile(`\s*(?:;|#|//)`)
)

// ExtractHashes returns all hash values declared in the given ini file, in the
// order they appear. Declarations look like "hash = value", case-insensitively.
// Inline comments and surrounding quotes are stripped; values without any
// alphanumeric character are ignored. Unreadable files yield no values.
func ExtractHashes(path string) []string {
	f, err := os.Open(path)
	if err != nil {
		return nil
	}
	defer f.Close()

	var values []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		match := hashLine.FindStringSubmatch(scanner.Text())
		if match == nil {
			continue
		}
		value := strings.TrimSpace(match[1])
		if loc := inlineNote.FindStringIndex(value); loc != nil {
			value = strings.TrimSpace(value[:loc[0]])
		}
		value = stripQuotes(value)
		if value == "" || !hasAlnum(value) {
			continue
		}
		values = append(values, value)
	}
	return values
}

// NormalizeHash lowercases a hash value and strips a leading 0x marker, so that
// declared values and search targets compare equal regardless of notation.
func NormalizeHash(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.TrimPrefix(s, "0x")
}

func stripQuotes(s string) string {
	if len(s) >= 2 {
		if (s[0] == '"' && s[len(s)-1] == '"') || (s[0] == '\'' && s[len(s)-1] == '\'') {
			return strings.TrimSpace(s[1 : len(s)-1])
		}
	}
	return s
}

func hasAlnum(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return true
		}
	}
	return false
}

// markerFiles collects the ini files below root. With skipDisabled set, folders
// and files whose names start with "DISABLED" (case-insensitive) are left out,
// matching the duplicate scanner's view of the tree.
func markerFiles(root string, skipDisabled bool) ([]string, error) {
	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if skipDisabled && path != root && strings.HasPrefix(strings.ToUpper(d.Name()), "DISABLED") {
			if d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		if strings.EqualFold(filepath.Ext(d.Name()), MarkerExtension) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}
