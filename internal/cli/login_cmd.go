package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/emmafields/rubriq/internal/cli/formatter"
)

func newLoginCmd(app *App) *cobra.Command {
	var (
		token string
		name  string
	)

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Store a session token so grading is no longer rate limited",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Auth.Login(cmd.Context(), token, name); err != nil {
				return err
			}
			who := name
			if who == "" {
				who = "you"
			}
			fmt.Println(formatter.StyleGreen.Render("Signed in as ") + formatter.Bold(who))
			return nil
		},
	}

	cmd.Flags().StringVar(&token, "token", "", "Session token issued by the grading service")
	cmd.Flags().StringVar(&name, "name", "", "Display name for the session")
	cmd.MarkFlagRequired("token")

	return cmd
}
