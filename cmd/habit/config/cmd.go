// Package configcmd implements the `habit config` command group.
package configcmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/ionisingTuna/cli-habit-tracker/cmd/habit/shared"
	"github.com/ionisingTuna/cli-habit-tracker/internal/config"
)

// Command implements `habit config`.
type Command struct {
	ctx *shared.Context
	cmd *cobra.Command
}

// New creates the config command group.
func New(ctx *shared.Context) *Command {
	c := &Command{ctx: ctx}
	c.cmd = &cobra.Command{
		Use:   "config",
		Short: "Show or manage configuration",
		RunE:  c.runShow,
	}
	c.cmd.AddCommand(
		newSetPath(ctx),
		newClearPath(ctx),
	)
	return c
}

// Cmd returns the cobra command.
func (c *Command) Cmd() *cobra.Command { return c.cmd }

func (c *Command) runShow(cmd *cobra.Command, _ []string) error {
	path, source := config.ResolveDataFile()
	if c.ctx.DataFile != "" {
		path = c.ctx.DataFile
		source = "flag"
	}
	data := map[string]any{
		"data_file":        path,
		"data_file_source": source,
	}
	b, err := yaml.Marshal(data)
	if err != nil {
		return err
	}
	fmt.Fprint(cmd.OutOrStdout(), string(b))
	return nil
}

// ---------------------------------------------------------------------------
// config set-path
// ---------------------------------------------------------------------------

func newSetPath(_ *shared.Context) *cobra.Command {
	return &cobra.Command{
		Use:   "set-path <path>",
		Short: "Persist data file location (used when HABIT_DATA_FILE is unset)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			resolved, err := config.SetPersistedDataFile(args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Persisted data file: %s\n", resolved)
			fmt.Fprintln(out, "Override anytime with HABIT_DATA_FILE.")
			return nil
		},
	}
}

// ---------------------------------------------------------------------------
// config clear-path
// ---------------------------------------------------------------------------

func newClearPath(_ *shared.Context) *cobra.Command {
	return &cobra.Command{
		Use:   "clear-path",
		Short: "Remove persisted data file location from global config",
		RunE: func(cmd *cobra.Command, _ []string) error {
			changed, err := config.ClearPersistedDataFile()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if changed {
				fmt.Fprintln(out, "Cleared persisted data file setting.")
			} else {
				fmt.Fprintln(out, "No persisted data file setting was found.")
			}
			return nil
		},
	}
}
