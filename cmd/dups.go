package cmd

import (
	"context"
	"fmt"
	"sort"

	"github.com/modsect/modsect/internal/scan"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var dupsWorkers int
var dupsContent bool

var dupsCmd = &cobra.Command{
	Use:     "dups path",
	Aliases: []string{"duplicates"},
	Short:   "Report hash values declared in more than one ini file",
	Long: `Report hash values declared in more than one ini file under the given path.
Folders and files whose names start with DISABLED are skipped.

With --content, files are compared by their content digest instead of the hash
values they declare, reporting files that are byte-for-byte identical.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		var duplicates map[string][]string
		var err error
		if dupsContent {
			duplicates, err = scan.FindDuplicateContent(context.Background(), args[0], dupsWorkers)
		} else {
			duplicates, err = scan.FindDuplicateHashes(context.Background(), args[0], dupsWorkers)
		}
		if err != nil {
			logrus.Fatalf("Duplicate scan failed - %v", err)
		}

		if len(duplicates) == 0 {
			fmt.Println("No duplicate hashes found.")
			return
		}

		keys := make([]string, 0, len(duplicates))
		for key := range duplicates {
			keys = append(keys, key)
		}
		sort.Strings(keys)

		for _, key := range keys {
			fmt.Printf("hash: %s\n", key)
			for _, path := range duplicates[key] {
				fmt.Printf("  - %s\n", path)
			}
			fmt.Println()
		}
	},
}

func init() {
	rootCmd.AddCommand(dupsCmd)

	dupsCmd.Flags().IntVarP(&dupsWorkers, "workers", "w", 4, "How many files to scan concurrently")
	dupsCmd.Flags().BoolVar(&dupsContent, "content", false, "Compare file contents instead of declared hash values")
}
