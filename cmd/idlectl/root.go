package main

import (
	"github.com/spf13/cobra"
)

// Version is set with -ldflags at build time
var Version = "dev"

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "idlectl",
		Short:         "IdleTracker command line",
		Long:          "idlectl reads and changes the IdleTracker save directly, using the same STORAGE_DRIVER, SQLITE_PATH and PROFILE_ID settings as the server.",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetVersionTemplate("{{.Name}} {{.Version}}\n")

	root.AddCommand(
		newStatusCmd(),
		newStartCmd(),
		newToggleCmd(),
		newStopCmd(),
		newManualCmd(),
		newTaskCmd(),
		newTitlesCmd(),
		newBuyCmd(),
		newEquipCmd(),
		newSkillsCmd(),
		newStatsCmd(),
		newUnlockCmd(),
		newLockCmd(),
		newSettingsCmd(),
		newGroupCmd(),
		newExportCmd(),
		newImportCmd(),
		newResetCmd(),
	)

	return root
}
