// Package cli implements the editflow command tree and the interactive
// board TUI.
package cli

import (
	"github.com/editflowhq/editflow/internal/billing"
	"github.com/editflowhq/editflow/internal/store"
	"github.com/spf13/cobra"
)

// App holds everything CLI commands need: the board store and the
// billing client for plan upgrades.
type App struct {
	Store    *store.Store
	Checkout *billing.CheckoutClient

	// IsInteractive reports whether stdin is a terminal. Forms and the
	// board TUI are only offered when it returns true.
	IsInteractive func() bool
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

// NewRootCmd creates the top-level "editflow" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	board := newBoardCmd(app)

	root := &cobra.Command{
		Use:   "editflow",
		Short: "Weekly job board for video editing teams",
		// Bare "editflow" in a terminal opens the board.
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.interactive() {
				return board.RunE(cmd, args)
			}
			return cmd.Help()
		},
	}

	root.AddCommand(
		board,
		newEditorCmd(app),
		newJobCmd(app),
		newUpgradeCmd(app),
	)

	return root
}
