// Package todaycmd implements the `habit today` command.
package todaycmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ionisingTuna/cli-habit-tracker/cmd/habit/shared"
	"github.com/ionisingTuna/cli-habit-tracker/internal/models"
	"github.com/ionisingTuna/cli-habit-tracker/internal/store"
)

// Command implements `habit today`.
type Command struct {
	ctx *shared.Context
	cmd *cobra.Command
}

// New creates the today command.
func New(ctx *shared.Context) *Command {
	c := &Command{ctx: ctx}
	c.cmd = &cobra.Command{
		Use:   "today",
		Short: "Show a quick summary for today",
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
		fmt.Fprintln(out, "No habits tracked yet.")
		return nil
	}

	completed := 0
	var remaining []string
	for _, hs := range statuses {
		if hs.DoneToday {
			completed++
		} else {
			remaining = append(remaining, hs.Habit.Name)
		}
	}

	pct := completed * 100 / len(statuses)
	fmt.Fprintf(out, "%d/%d habits completed (%d%%) — %s\n",
		completed, len(statuses), pct, encouragement(pct))

	if len(remaining) > 0 {
		fmt.Fprintln(out, "Still to do:")
		for _, name := range remaining {
			fmt.Fprintf(out, "  - %s\n", name)
		}
	}
	return nil
}

func encouragement(pct int) string {
	switch {
	case pct == 100:
		return "perfect day!"
	case pct >= 75:
		return "great job!"
	case pct >= 50:
		return "keep going!"
	default:
		return "you can do it!"
	}
}
