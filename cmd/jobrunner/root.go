package main

import (
	"github.com/jzelinskie/cobrautil/v2"
	"github.com/spf13/cobra"
)

const envPrefix = "JOBRUNNER"

func NewRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "jobrunner",
		Short:         "Job execution and worker pool engine",
		SilenceUsage:  true,
		SilenceErrors: true,
		// JOBRUNNER_<FLAG> environment variables fill flags not set on the command line.
		PersistentPreRunE: cobrautil.SyncViperPreRunE(envPrefix),
	}

	root.AddCommand(NewRunCommand())
	return root
}
