// Package rootcmd wires the root cobra.Command for the habit CLI binary.
package rootcmd

import (
	"github.com/spf13/cobra"

	addcmd "github.com/ionisingTuna/cli-habit-tracker/cmd/habit/add"
	configcmd "github.com/ionisingTuna/cli-habit-tracker/cmd/habit/config"
	donecmd "github.com/ionisingTuna/cli-habit-tracker/cmd/habit/done"
	historycmd "github.com/ionisingTuna/cli-habit-tracker/cmd/habit/history"
	listcmd "github.com/ionisingTuna/cli-habit-tracker/cmd/habit/list"
	mcpcmd "github.com/ionisingTuna/cli-habit-tracker/cmd/habit/mcp"
	remindcmd "github.com/ionisingTuna/cli-habit-tracker/cmd/habit/remind"
	removecmd "github.com/ionisingTuna/cli-habit-tracker/cmd/habit/remove"
	"github.com/ionisingTuna/cli-habit-tracker/cmd/habit/shared"
	statscmd "github.com/ionisingTuna/cli-habit-tracker/cmd/habit/stats"
	todaycmd "github.com/ionisingTuna/cli-habit-tracker/cmd/habit/today"
	undonecmd "github.com/ionisingTuna/cli-habit-tracker/cmd/habit/undone"
)

// New creates and returns the root cobra.Command for the habit CLI.
func New() *cobra.Command {
	ctx := &shared.Context{}

	root := &cobra.Command{
		Use:           "habit",
		Short:         "Track your daily habits and build streaks",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          func(cmd *cobra.Command, _ []string) error { return cmd.Help() },
	}

	root.PersistentFlags().StringVar(
		&ctx.DataFile, "data-file", "",
		"Override habit data file (default: $HABIT_DATA_FILE env → persisted config → ~/.habits.yaml)",
	)

	root.AddCommand(
		addcmd.New(ctx).Cmd(),
		removecmd.New(ctx).Cmd(),
		donecmd.New(ctx).Cmd(),
		undonecmd.New(ctx).Cmd(),
		listcmd.New(ctx).Cmd(),
		todaycmd.New(ctx).Cmd(),
		statscmd.New(ctx).Cmd(),
		historycmd.New(ctx).Cmd(),
		remindcmd.New(ctx).Cmd(),
		configcmd.New(ctx).Cmd(),
		mcpcmd.New(ctx).Cmd(),
	)

	return root
}
