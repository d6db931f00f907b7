package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/editflowhq/editflow/internal/billing"
	"github.com/editflowhq/editflow/internal/cli"
	"github.com/editflowhq/editflow/internal/db"
	"github.com/editflowhq/editflow/internal/repository"
	"github.com/editflowhq/editflow/internal/store"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Determine DB path: env var or default ~/.editflow/editflow.db
	dbPath := os.Getenv("EDITFLOW_DB")
	if dbPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("finding home directory: %w", err)
		}
		dbPath = filepath.Join(home, ".editflow", "editflow.db")
	}

	userID := os.Getenv("EDITFLOW_USER")
	if userID == "" {
		userID = "local"
	}

	database, err := db.OpenDB(dbPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel(),
	}))

	st := store.New(store.Config{
		UserID:   userID,
		Jobs:     repository.NewSQLiteJobRepo(database),
		Editors:  repository.NewSQLiteEditorRepo(database),
		Profiles: repository.NewSQLiteProfileRepo(database),
		UoW:      db.NewSQLiteUnitOfWork(database),
		Notifier: store.NewLogNotifier(os.Stderr),
		Logger:   logger,
	})
	if err := st.Load(context.Background()); err != nil {
		return fmt.Errorf("loading board state: %w", err)
	}
	// Let in-flight writes settle before the process exits.
	defer st.Wait()

	app := &cli.App{Store: st}
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	if endpoint := os.Getenv("EDITFLOW_CHECKOUT_URL"); endpoint != "" {
		app.Checkout = billing.NewCheckoutClient(endpoint)
	}

	return cli.NewRootCmd(app).Execute()
}

func logLevel() slog.Level {
	if os.Getenv("EDITFLOW_DEBUG") != "" {
		return slog.LevelDebug
	}
	return slog.LevelWarn
}
