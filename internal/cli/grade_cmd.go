package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/emmafields/rubriq/internal/cli/formatter"
	"github.com/emmafields/rubriq/internal/domain"
	"github.com/emmafields/rubriq/internal/workflow"
)

func newGradeCmd(app *App) *cobra.Command {
	var rubricID string

	cmd := &cobra.Command{
		Use:   "grade <file>",
		Short: "Submit a document for grading and wait for the result",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGrade(cmd.Context(), app, args[0], rubricID)
		},
	}

	cmd.Flags().StringVar(&rubricID, "rubric", "", "Rubric ID to grade against (defaults to the standard rubric)")

	return cmd
}

func runGrade(ctx context.Context, app *App, path, rubricID string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}
	attachment, err := domain.NewAttachment(uuid.NewString(), filepath.Base(path), data)
	if err != nil {
		return err
	}

	machine := workflow.NewStateMachine()
	ctrl := workflow.NewController(machine, app.Gate, app.Client, app.Auth)

	if err := ctrl.SelectDocument(attachment); err != nil {
		return err
	}

	ref, err := resolveRubric(ctx, app, rubricID)
	if err != nil {
		return err
	}
	if err := ctrl.SelectRubric(ref); err != nil {
		return err
	}

	if !app.Auth.IsAuthenticated(ctx) {
		if usage, err := app.Gate.Usage(ctx); err == nil {
			fmt.Println(formatter.FormatUsage(usage))
		}
	}

	var result *domain.GradingResult
	if app.IsInteractive != nil && app.IsInteractive() {
		result, err = runGradeProgram(ctx, ctrl, attachment.Filename)
	} else {
		fmt.Printf("Grading %s against rubric %s...\n", attachment.Filename, ref.ID)
		result, err = ctrl.StartGrading(ctx)
	}

	if err != nil {
		if errors.Is(err, workflow.ErrGateDenied) {
			fmt.Println(formatter.FormatWarning("you have used all free grading attempts"))
			fmt.Println(formatter.Dim("Run 'rubriq login --token <token>' to keep grading."))
		}
		return err
	}
	if result == nil {
		// A grading run is already in flight for this workflow.
		return nil
	}

	fmt.Println()
	fmt.Print(formatter.FormatResult(result))
	return nil
}

// resolveRubric picks the rubric reference for this run: the --rubric flag
// when given, an interactive picker on a terminal, or the built-in default.
// Rubric list fetch failures degrade to the default with a warning; they
// never block grading.
func resolveRubric(ctx context.Context, app *App, rubricID string) (domain.RubricRef, error) {
	list, err := app.Rubrics.List(ctx)
	if err != nil {
		return domain.RubricRef{}, err
	}
	if list.Warning != "" {
		fmt.Println(formatter.FormatWarning(list.Warning))
	}
	refs := list.Refs()

	if rubricID != "" {
		for _, ref := range refs {
			if ref.ID == rubricID {
				return ref, nil
			}
		}
		if list.Degraded {
			// Can't verify against the service; trust the caller's id.
			return domain.RubricRef{ID: rubricID, Name: rubricID}, nil
		}
		return domain.RubricRef{}, fmt.Errorf("unknown rubric %q (run 'rubriq rubrics' to list them)", rubricID)
	}

	if app.IsInteractive != nil && app.IsInteractive() && len(refs) > 1 {
		var chosen string
		form := wizardSelectRubric(refs, &chosen)
		if err := form.Run(); err != nil {
			return domain.RubricRef{}, err
		}
		for _, ref := range refs {
			if ref.ID == chosen {
				return ref, nil
			}
		}
	}

	return domain.DefaultRubricRef(), nil
}
