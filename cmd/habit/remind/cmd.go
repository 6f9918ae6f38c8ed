// Package remindcmd implements the `habit remind` command.
package remindcmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ionisingTuna/cli-habit-tracker/cmd/habit/shared"
	"github.com/ionisingTuna/cli-habit-tracker/internal/store"
)

// Command implements `habit remind`.
type Command struct {
	ctx *shared.Context
	cmd *cobra.Command
}

// New creates the remind command.
func New(ctx *shared.Context) *Command {
	c := &Command{ctx: ctx}
	c.cmd = &cobra.Command{
		Use:   "remind <name> <HH:MM>",
		Short: "Set a reminder time for a habit (24-hour HH:MM, e.g. 09:00)",
		Args:  cobra.ExactArgs(2),
		RunE:  c.run,
	}
	return c
}

// Cmd returns the cobra command.
func (c *Command) Cmd() *cobra.Command { return c.cmd }

func (c *Command) run(cmd *cobra.Command, args []string) error {
	st, err := store.Open(c.ctx.DataFile)
	if err != nil {
		return err
	}

	if err := st.SetReminder(args[0], args[1]); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Reminder set for %q at %s\n", args[0], args[1])
	fmt.Fprintln(out, "Reminders are shown when you run 'habit list'.")
	return nil
}
