// Package statscmd implements the `habit stats` command.
package statscmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ionisingTuna/cli-habit-tracker/cmd/habit/shared"
	"github.com/ionisingTuna/cli-habit-tracker/internal/models"
	"github.com/ionisingTuna/cli-habit-tracker/internal/store"
)

// Command implements `habit stats`.
type Command struct {
	ctx *shared.Context
	cmd *cobra.Command

	since string
}

// New creates the stats command.
func New(ctx *shared.Context) *Command {
	c := &Command{ctx: ctx}
	c.cmd = &cobra.Command{
		Use:   "stats <name>",
		Short: "Show detailed statistics for a habit",
		Args:  cobra.ExactArgs(1),
		RunE:  c.run,
	}
	c.cmd.Flags().StringVar(&c.since, "since", "", "Measure the overall success rate from this date (YYYY-MM-DD) instead of creation")
	return c
}

// Cmd returns the cobra command.
func (c *Command) Cmd() *cobra.Command { return c.cmd }

func (c *Command) run(cmd *cobra.Command, args []string) error {
	st, err := store.Open(c.ctx.DataFile)
	if err != nil {
		return err
	}

	var since *models.Date
	if c.since != "" {
		d, err := models.ParseDate(c.since)
		if err != nil {
			return err
		}
		since = &d
	}

	stats, err := st.Stats(args[0], since, models.Today())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s\n", stats.Name)
	if stats.Description != "" {
		fmt.Fprintf(out, "%s\n", stats.Description)
	}
	fmt.Fprintln(out)
	fmt.Fprintf(out, "Total completions: %d\n", stats.TotalCompletions)
	fmt.Fprintf(out, "Current streak:    %d days\n", stats.Streaks.Current)
	fmt.Fprintf(out, "Longest streak:    %d days\n", stats.Streaks.Longest)
	fmt.Fprintf(out, "Success rate:      %.0f%%\n", stats.SuccessRate*100)
	fmt.Fprintf(out, "Last 7 days:       %.0f%%\n", stats.Rate7d*100)
	fmt.Fprintf(out, "Last 30 days:      %.0f%%\n", stats.Rate30d*100)
	last := "never"
	if stats.LastDone != nil {
		last = stats.LastDone.String()
	}
	fmt.Fprintf(out, "Last completed:    %s\n", last)
	return nil
}
