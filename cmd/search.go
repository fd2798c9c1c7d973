package cmd

import (
	"context"
	"fmt"

	"github.com/modsect/modsect/internal/scan"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var searchWorkers int

var searchCmd = &cobra.Command{
	Use:   "search path hash",
	Short: "Find the ini files declaring a given hash value",
	Long: `Find the ini files under the given path that declare the given hash value.
The comparison is case-insensitive and ignores a leading 0x.`,
	Args: cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		matches, err := scan.FindFilesWithHash(context.Background(), args[0], args[1], searchWorkers)
		if err != nil {
			logrus.Fatalf("Hash search failed - %v", err)
		}

		if len(matches) == 0 {
			fmt.Println("No matches found.")
			return
		}

		fmt.Printf("Found %d files\n", len(matches))
		for _, path := range matches {
			fmt.Printf("- %s\n", path)
		}
	},
}

func init() {
	rootCmd.AddCommand(searchCmd)

	searchCmd.Flags().IntVarP(&searchWorkers, "workers", "w", 4, "How many files to scan concurrently")
}
