package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/modsect/modsect/internal/settings"
	"github.com/modsect/modsect/pkg/modsect"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var runStateFile string
var runConfigFile string

var runCmd = &cobra.Command{
	Use:   "run [path]",
	Short: "Bisect the mod folders under a path to isolate the one causing a problem",
	Long: `Bisect the mod folders under a path to isolate the one causing a problem.
Any folder directly containing an .ini file counts as a mod; folders already carrying
the "DISABLED " prefix are left alone and excluded from the search.

The command repeatedly disables half of the remaining candidates, asks whether the
problem still occurs, and narrows the candidates accordingly. Every folder it
disables is recorded in the state file first, so an interrupted run can be undone
with the recover command. On completion all folders disabled by the run are
re-enabled automatically.

When no path is given, the most recently used path is reused.`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		log := newLogger()

		run := &modsect.Run{}
		if runConfigFile != "" {
			configFile, err := os.Open(runConfigFile)
			if err != nil {
				logrus.Fatalf("Failed to open run config - %v", err)
			}
			run, err = modsect.GetRunFromConfig(configFile)
			configFile.Close()
			if err != nil {
				logrus.Fatalf("Failed to read run config from yaml - %v", err)
			}
		}
		if len(args) == 1 {
			run.Root = args[0]
		}
		if runStateFile != "" {
			run.StateFile = runStateFile
		}

		// Fall back to, or remember, the last used path
		if settingsPath, err := settings.DefaultPath(); err == nil {
			if run.Root == "" {
				if saved, err := settings.Load(settingsPath); err == nil && saved.LastPath != "" {
					run.Root = saved.LastPath
					log.Infof("Reusing last used path %s", run.Root)
				}
			} else if err := settings.Save(settingsPath, settings.Settings{LastPath: run.Root}); err != nil {
				log.Warnf("Couldn't save last used path - %v", err)
			}
		}

		if run.Root == "" {
			logrus.Fatal("No path given and no last used path saved")
		}
		if run.StateFile == "" {
			logrus.Fatal("A state file is required. Pass one with --state or set it in the config")
		}

		run.Log = log
		run.Oracle = modsect.ConsoleOracle{}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		outcome, err := run.Start(ctx)
		if err != nil {
			logrus.Fatalf("Run failed - %v", err)
		}

		if outcome.Kind == modsect.OutcomeCancelled {
			// A cancelled run skips its own cleanup, so it is ours to do
			recovery := &modsect.Recovery{
				StateFile:      run.StateFile,
				DisabledPrefix: run.DisabledPrefix,
				Log:            log,
			}
			if _, err := recovery.Run(context.Background()); err != nil {
				logrus.Fatalf("Recovery after cancellation failed - %v", err)
			}
		}

		if outcome.Kind == modsect.OutcomeFound {
			fmt.Println(outcome.Path)
		} else {
			fmt.Println(outcome.String())
		}
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVarP(&runStateFile, "state", "s", "", "File where the folders disabled by this run are recorded")
	runCmd.Flags().StringVarP(&runConfigFile, "config", "c", "", "Optional run config in yaml format")
}
