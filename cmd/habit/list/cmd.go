// Package listcmd implements the `habit list` command.
package listcmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ionisingTuna/cli-habit-tracker/cmd/habit/shared"
	"github.com/ionisingTuna/cli-habit-tracker/internal/models"
	"github.com/ionisingTuna/cli-habit-tracker/internal/store"
)

// Command implements `habit list`.
type Command struct {
	ctx *shared.Context
	cmd *cobra.Command
}

// New creates the list command.
func New(ctx *shared.Context) *Command {
	c := &Command{ctx: ctx}
	c.cmd = &cobra.Command{
		Use:   "list",
		Short: "List all habits with today's status",
		Args:  cobra.NoArgs,
		RunE:  c.run,
	}
	return c
}

// Cmd returns the cobra command.
func (c *Command) Cmd() *cobra.Command { return c.cmd }

func (c *Command) run(cmd *cobra.Command, _ []string) error {
	st, err := store.Open(c.ctx.DataFile)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	statuses := st.List(models.Today())
	if len(statuses) == 0 {
		fmt.Fprintln(out, "No habits tracked yet. Add one with 'habit add <name>'.")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "HABIT\tTODAY\tSTREAK\tBEST\tREMINDER\tDESCRIPTION")
	for _, hs := range statuses {
		mark := "-"
		if hs.DoneToday {
			mark = "done"
		}
		reminder := "-"
		if hs.Habit.Reminder != nil {
			reminder = hs.Habit.Reminder.String()
		}
		fmt.Fprintf(w, "%s\t%s\t%dd\t%dd\t%s\t%s\n",
			hs.Habit.Name, mark, hs.Streaks.Current, hs.Streaks.Longest,
			reminder, hs.Habit.Description)
	}
	return w.Flush()
}
