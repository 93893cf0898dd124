package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/mattn/go-isatty"

	"github.com/emmafields/rubriq/internal/cli"
	"github.com/emmafields/rubriq/internal/db"
	"github.com/emmafields/rubriq/internal/grader"
	"github.com/emmafields/rubriq/internal/repository"
	"github.com/emmafields/rubriq/internal/service"
	"github.com/emmafields/rubriq/internal/workflow"
)

const defaultFreeAttempts = 3

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Determine DB path: env var or default ~/.rubriq/rubriq.db
	dbPath := os.Getenv("RUBRIQ_DB")
	if dbPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("finding home directory: %w", err)
		}
		dbPath = filepath.Join(home, ".rubriq", "rubriq.db")
	}

	// Open database
	database, err := db.OpenDB(dbPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	// Wire repositories
	rubricRepo := repository.NewSQLiteRubricRepo(database)
	trialRepo := repository.NewSQLiteTrialUsageRepo(database)
	sessionRepo := repository.NewSQLiteAuthSessionRepo(database)

	// Wire the grading service client
	cfg := grader.LoadConfig()
	var observer grader.Observer = grader.NoopObserver{}
	if cfg.LogCalls {
		observer = grader.NewLogObserver(os.Stderr)
	}
	client := grader.NewHTTPClient(cfg, observer)

	// The anonymous identity scopes the free-attempt counter. A single
	// machine-local identity is the default; override for shared installs.
	anonID := os.Getenv("RUBRIQ_ANON_ID")
	if anonID == "" {
		anonID = "local"
	}
	maxAttempts := defaultFreeAttempts
	if v := os.Getenv("RUBRIQ_FREE_ATTEMPTS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			maxAttempts = n
		}
	}

	app := &cli.App{
		Rubrics: service.NewRubricService(client, rubricRepo),
		Auth:    service.NewAuthService(sessionRepo),
		Client:  client,
		Gate:    workflow.NewUsageGate(trialRepo, anonID, maxAttempts),
	}

	// Detect interactive terminal for the picker and progress views.
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	rootCmd := cli.NewRootCmd(app)
	return rootCmd.Execute()
}
