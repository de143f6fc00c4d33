package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Makepad-fr/todos/internal/model"
	"github.com/Makepad-fr/todos/internal/ui"
)

func newLsCmd(app *App) *cobra.Command {
	var (
		filter string
		asJSON bool
		width  int
	)
	cmd := &cobra.Command{
		Use:   "ls",
		Short: "Load the todos once and print them",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := model.ParseFilter(filter)
			if err != nil {
				return usage(err)
			}
			logger, err := app.logger(cmd.ErrOrStderr())
			if err != nil {
				return usage(err)
			}

			vm := app.newList()
			if err := vm.Load(cmd.Context(), app.source(logger)); err != nil {
				return err
			}
			vm.SetFilter(f)
			visible := vm.VisibleTodos()

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(visible)
			}
			fmt.Fprintln(out, ui.Table(visible, width))
			fmt.Fprintln(out, ui.ItemsLeft(vm.RemainingCount()))
			return nil
		},
	}
	cmd.Flags().StringVar(&filter, "filter", string(model.FilterAll), "Which todos to show (all|active|completed)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the visible todos as JSON")
	cmd.Flags().IntVar(&width, "width", 60, "Wrap titles wider than this")
	return cmd
}
