// Package undonecmd implements the `habit undone` command.
package undonecmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ionisingTuna/cli-habit-tracker/cmd/habit/shared"
	"github.com/ionisingTuna/cli-habit-tracker/internal/models"
	"github.com/ionisingTuna/cli-habit-tracker/internal/store"
)

// Command implements `habit undone`.
type Command struct {
	ctx *shared.Context
	cmd *cobra.Command

	date string
}

// New creates the undone command.
func New(ctx *shared.Context) *Command {
	c := &Command{ctx: ctx}
	c.cmd = &cobra.Command{
		Use:   "undone <name>",
		Short: "Unmark a habit for a day",
		Args:  cobra.ExactArgs(1),
		RunE:  c.run,
	}
	c.cmd.Flags().StringVarP(&c.date, "date", "d", "", "Date (YYYY-MM-DD), defaults to today")
	return c
}

// Cmd returns the cobra command.
func (c *Command) Cmd() *cobra.Command { return c.cmd }

func (c *Command) run(cmd *cobra.Command, args []string) error {
	st, err := store.Open(c.ctx.DataFile)
	if err != nil {
		return err
	}

	date := models.Today()
	if c.date != "" {
		if date, err = models.ParseDate(c.date); err != nil {
			return err
		}
	}

	if err := st.MarkUndone(args[0], date); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Unmarked %q for %s\n", args[0], date)
	return nil
}
