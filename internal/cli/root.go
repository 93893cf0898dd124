package cli

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/emmafields/rubriq/internal/grader"
	"github.com/emmafields/rubriq/internal/service"
	"github.com/emmafields/rubriq/internal/workflow"
)

// App holds references to the services and collaborators used by CLI
// commands.
type App struct {
	Rubrics service.RubricService
	Auth    service.AuthService
	Client  grader.JobClient
	Gate    *workflow.UsageGate

	// IsInteractive reports whether stdin is an interactive terminal.
	IsInteractive func() bool
}

// NewRootCmd creates the top-level "rubriq" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "rubriq",
		Short: "Submit documents for rubric-based grading",
	}

	// Accept flags case-insensitively.
	root.PersistentFlags().SetNormalizeFunc(func(f *pflag.FlagSet, name string) pflag.NormalizedName {
		return pflag.NormalizedName(strings.ToLower(name))
	})

	root.AddCommand(
		newGradeCmd(app),
		newRubricsCmd(app),
		newLoginCmd(app),
		newLogoutCmd(app),
	)

	return root
}
