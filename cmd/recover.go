package cmd

import (
	"context"
	"fmt"

	"github.com/modsect/modsect/pkg/modsect"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var recoverCmd = &cobra.Command{
	Use:     "recover state-file",
	Aliases: []string{"restore"},
	Short:   "Re-enable the folders recorded in the state file of an interrupted run",
	Long: `Re-enable the folders recorded in the state file of an interrupted run.
Every recorded folder that still exists and still carries the "DISABLED " prefix is
renamed back to its original name; entries already restored by other means are
skipped. The state file is removed afterward.

Running this against a state file that does not exist restores nothing and is not
an error.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		recovery := &modsect.Recovery{
			StateFile: args[0],
			Log:       newLogger(),
		}

		restored, err := recovery.Run(context.Background())
		if err != nil {
			logrus.Fatalf("Recovery failed - %v", err)
		}

		fmt.Printf("Restored %d folders\n", restored)
	},
}

func init() {
	rootCmd.AddCommand(recoverCmd)
}
