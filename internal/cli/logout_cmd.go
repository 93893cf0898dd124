package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/emmafields/rubriq/internal/cli/formatter"
)

func newLogoutCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Discard the stored session token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if !app.Auth.IsAuthenticated(ctx) {
				fmt.Println(formatter.Dim("Not signed in."))
				return nil
			}

			if app.IsInteractive != nil && app.IsInteractive() {
				confirmed := false
				form := wizardConfirm("Sign out? Further grading counts against the free attempt budget.", &confirmed)
				if err := form.Run(); err != nil {
					return err
				}
				if !confirmed {
					return nil
				}
			}

			if err := app.Auth.Logout(ctx); err != nil {
				return err
			}
			fmt.Println(formatter.StyleGreen.Render("Signed out."))
			return nil
		},
	}
}
