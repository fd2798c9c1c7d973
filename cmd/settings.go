package cmd

import (
	"os"

	"github.com/manifoldco/promptui"
	"github.com/modsect/modsect/internal/settings"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var settingsAgree bool

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Back up and restore user settings files",
	Long: `Back up and restore user settings files, such as a game's d3dx_user.ini.
These copies are a convenience on top of the bisection workflow and never touch
the mod folders themselves.`,
}

var settingsBackupCmd = &cobra.Command{
	Use:   "backup src dst",
	Short: "Copy a settings file or folder to a backup location",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		log := newLogger()

		if err := settings.Backup(args[0], args[1]); err != nil {
			logrus.Fatalf("Backup failed - %v", err)
		}
		log.Infof("Backed up %s to %s", args[0], args[1])
	},
}

var settingsRestoreCmd = &cobra.Command{
	Use:   "restore backup dst",
	Short: "Copy a backup back over its original location",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		log := newLogger()

		// Overwriting an existing destination loses its current content
		if _, err := os.Stat(args[1]); err == nil && !settingsAgree {
			prompt := promptui.Prompt{
				Label:     "Overwrite " + args[1],
				IsConfirm: true,
			}
			if _, err := prompt.Run(); err != nil {
				log.Info("Exiting...")
				os.Exit(0)
			}
		}

		if err := settings.Restore(args[0], args[1]); err != nil {
			logrus.Fatalf("Restore failed - %v", err)
		}
		log.Infof("Restored %s from %s", args[1], args[0])
	},
}

func init() {
	rootCmd.AddCommand(settingsCmd)
	settingsCmd.AddCommand(settingsBackupCmd)
	settingsCmd.AddCommand(settingsRestoreCmd)

	settingsRestoreCmd.Flags().BoolVarP(&settingsAgree, "assume-yes", "y", false, `Bypass "Are you sure?" message.`)
}
