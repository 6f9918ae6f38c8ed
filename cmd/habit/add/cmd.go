// Package addcmd implements the `habit add` command.
package addcmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ionisingTuna/cli-habit-tracker/cmd/habit/shared"
	"github.com/ionisingTuna/cli-habit-tracker/internal/models"
	"github.com/ionisingTuna/cli-habit-tracker/internal/store"
)

// Command implements `habit add`.
type Command struct {
	ctx *shared.Context
	cmd *cobra.Command

	description string
}

// New creates the add command.
func New(ctx *shared.Context) *Command {
	c := &Command{ctx: ctx}
	c.cmd = &cobra.Command{
		Use:   "add <name>",
		Short: "Add a new habit to track",
		Args:  cobra.ExactArgs(1),
		RunE:  c.run,
	}
	c.cmd.Flags().StringVarP(&c.description, "description", "d", "", "Description of the habit")
	return c
}

// Cmd returns the cobra command.
func (c *Command) Cmd() *cobra.Command { return c.cmd }

func (c *Command) run(cmd *cobra.Command, args []string) error {
	st, err := store.Open(c.ctx.DataFile)
	if err != nil {
		return err
	}

	h, err := st.Add(args[0], c.description, models.Today())
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Added habit %q\n", h.Name)
	return nil
}
