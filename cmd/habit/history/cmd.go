// Package historycmd implements the `habit history` command.
package historycmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/ionisingTuna/cli-habit-tracker/cmd/habit/shared"
	"github.com/ionisingTuna/cli-habit-tracker/internal/models"
	"github.com/ionisingTuna/cli-habit-tracker/internal/store"
)

// Command implements `habit history`.
type Command struct {
	ctx *shared.Context
	cmd *cobra.Command
}

// New creates the history command.
func New(ctx *shared.Context) *Command {
	c := &Command{ctx: ctx}
	c.cmd = &cobra.Command{
		Use:   "history <name> [days]",
		Short: "Show day-by-day completion history for a habit",
		Args:  cobra.RangeArgs(1, 2),
		RunE:  c.run,
	}
	return c
}

// Cmd returns the cobra command.
func (c *Command) Cmd() *cobra.Command { return c.cmd }

func (c *Command) run(cmd *cobra.Command, args []string) error {
	days := store.DefaultHistoryDays
	if len(args) == 2 {
		n, err := strconv.Atoi(args[1])
		if err != nil || n < 1 {
			return fmt.Errorf("invalid day count %q", args[1])
		}
		days = n
	}

	st, err := store.Open(c.ctx.DataFile)
	if err != nil {
		return err
	}

	entries, err := st.History(args[0], days, models.Today())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "History for %q (last %d days)\n", args[0], days)
	for _, e := range entries {
		mark := " "
		if e.Done {
			mark = "x"
		}
		fmt.Fprintf(out, "[%s] %s (%s)\n", mark, e.Date, e.Date.Weekday())
	}
	return nil
}
