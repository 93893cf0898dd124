package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/emmafields/rubriq/internal/cli/formatter"
)

func newRubricsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "rubrics",
		Short: "List the rubrics available for grading",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			list, err := app.Rubrics.List(cmd.Context())
			if err != nil {
				return err
			}
			if list.Warning != "" {
				fmt.Println(formatter.FormatWarning(list.Warning))
			}
			fmt.Print(formatter.FormatRubricList(list.Refs(), list.Rubrics))
			return nil
		},
	}
}
