package cmd

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	prefixed "github.com/x-cray/logrus-prefixed-formatter"
)

var verbosity int

var rootCmd = &cobra.Command{
	Use:   "modsect",
	Short: "Isolate a faulty mod folder by interactive binary search",
	Long:  ``,
}

func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().IntVarP(&verbosity, "verbosity", "v", 1, "Log verbosity from 0 (warnings only) to 3, or negative to disable logging")
}

// newLogger builds a logger honoring the global verbosity flag.
func newLogger() *logrus.Logger {
	log := logrus.New()

	formatter := prefixed.TextFormatter{
		DisableTimestamp: true,
	}
	formatter.SetColorScheme(&prefixed.ColorScheme{})
	log.SetFormatter(&formatter)

	// Set logger verbosity
	if verbosity < 0 {
		log.SetOutput(io.Discard)
	} else if verbosity == 0 {
		log.SetLevel(logrus.WarnLevel)
	} else if verbosity == 1 {
		log.SetLevel(logrus.InfoLevel)
	} else if verbosity == 2 {
		log.SetLevel(logrus.DebugLevel)
	} else {
		log.SetLevel(logrus.TraceLevel)
	}

	return log
}
