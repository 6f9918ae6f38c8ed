// Package donecmd implements the `habit done` command.
package donecmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ionisingTuna/cli-habit-tracker/cmd/habit/shared"
	"github.com/ionisingTuna/cli-habit-tracker/internal/models"
	"github.com/ionisingTuna/cli-habit-tracker/internal/store"
)

// Command implements `habit done`.
type Command struct {
	ctx *shared.Context
	cmd *cobra.Command

	date string
}

// New creates the done command.
func New(ctx *shared.Context) *Command {
	c := &Command{ctx: ctx}
	c.cmd = &cobra.Command{
		Use:   "done <name>",
		Short: "Mark a habit as done",
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

	today := models.Today()
	date := today
	if c.date != "" {
		if date, err = models.ParseDate(c.date); err != nil {
			return err
		}
	}

	name := args[0]
	if err := st.MarkDone(name, date, today); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Marked %q done for %s\n", name, date)

	streaks, err := st.Streaks(name, today)
	if err != nil {
		return err
	}
	if streaks.Current > 0 {
		fmt.Fprintf(out, "Current streak: %d days\n", streaks.Current)
	}
	return nil
}
