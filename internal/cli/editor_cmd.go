package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/editflowhq/editflow/internal/cli/formatter"
	"github.com/editflowhq/editflow/internal/domain"
	"github.com/editflowhq/editflow/internal/store"
	"github.com/spf13/cobra"
)

// resolveEditorID accepts an exact id, an id prefix, or a
// case-insensitive name and returns the editor's full id.
func resolveEditorID(app *App, input string) (string, error) {
	if input == "" {
		return "", fmt.Errorf("editor is required")
	}

	editors := app.Store.Editors()

	for _, e := range editors {
		if e.ID == input {
			return e.ID, nil
		}
	}
	for _, e := range editors {
		if strings.EqualFold(e.Name, input) {
			return e.ID, nil
		}
	}

	var matches []string
	for _, e := range editors {
		if strings.HasPrefix(e.ID, input) {
			matches = append(matches, e.ID)
		}
	}
	switch len(matches) {
	case 0:
		return "", fmt.Errorf("editor not found: %q", input)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("editor %q is ambiguous (%d matches)", input, len(matches))
	}
}

func newEditorCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "editor",
		Short: "Manage the editing team",
	}

	cmd.AddCommand(
		newEditorAddCmd(app),
		newEditorListCmd(app),
		newEditorUpdateCmd(app),
		newEditorRemoveCmd(app),
		newEditorReassignCmd(app),
	)

	return cmd
}

func newEditorAddCmd(app *App) *cobra.Command {
	var name string
	var capacity float64

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add an editor to the team",
		RunE: func(cmd *cobra.Command, args []string) error {
			if name == "" {
				return fmt.Errorf("--name is required")
			}

			e := &domain.Editor{Name: name, WeeklyCapacity: capacity}
			err := app.Store.AddEditor(context.Background(), e)
			if errors.Is(err, store.ErrPlanLimit) {
				fmt.Println(formatter.StyleYellow.Render(err.Error()))
				fmt.Println(formatter.Dim("Run `editflow upgrade` to move to the pro plan."))
				return nil
			}
			if err != nil {
				return err
			}
			app.Store.Wait()

			fmt.Printf("Added editor %s (%s)\n", e.Name, shortID(e.ID))
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Editor name")
	cmd.Flags().Float64Var(&capacity, "capacity", domain.DefaultWeeklyCapacity, "Weekly capacity in hours")

	return cmd
}

func newEditorListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List editors with their weekly load",
		RunE: func(cmd *cobra.Command, args []string) error {
			editors := app.Store.Editors()
			if len(editors) == 0 {
				fmt.Println(formatter.Dim("No editors yet. Add one with `editflow editor add --name <name>`."))
				return nil
			}

			rows := make([][]string, 0, len(editors))
			for _, e := range editors {
				rows = append(rows, []string{
					shortID(e.ID),
					e.Name,
					strconv.FormatFloat(e.Capacity(), 'f', -1, 64) + "h",
					formatter.RenderLoad(app.Store.EditorLoadPercent(e.ID), 10),
					strconv.Itoa(app.Store.JobCountByEditor(e.ID)),
				})
			}

			fmt.Print(formatter.RenderTable(
				[]string{"ID", "NAME", "CAPACITY", "THIS WEEK", "JOBS"},
				rows,
			))
			return nil
		},
	}
}

func newEditorUpdateCmd(app *App) *cobra.Command {
	var name string
	var capacity float64

	cmd := &cobra.Command{
		Use:   "update <editor>",
		Short: "Rename an editor or change their capacity",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := resolveEditorID(app, args[0])
			if err != nil {
				return err
			}

			var patch store.EditorPatch
			if cmd.Flags().Changed("name") {
				patch.Name = &name
			}
			if cmd.Flags().Changed("capacity") {
				patch.WeeklyCapacity = &capacity
			}
			if patch.Name == nil && patch.WeeklyCapacity == nil {
				return fmt.Errorf("nothing to update; pass --name or --capacity")
			}

			app.Store.UpdateEditor(id, patch)
			app.Store.Wait()

			fmt.Printf("Updated editor %s\n", shortID(id))
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "New name")
	cmd.Flags().Float64Var(&capacity, "capacity", 0, "New weekly capacity in hours")

	return cmd
}

func newEditorRemoveCmd(app *App) *cobra.Command {
	var reassignTo string

	cmd := &cobra.Command{
		Use:   "remove <editor>",
		Short: "Remove an editor from the team",
		Long: "Remove an editor. Their jobs keep the old assignment and stay on\n" +
			"the board; pass --reassign-to to hand them to another editor first.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := resolveEditorID(app, args[0])
			if err != nil {
				return err
			}

			if reassignTo != "" {
				toID, err := resolveEditorID(app, reassignTo)
				if err != nil {
					return err
				}
				if toID == id {
					return fmt.Errorf("cannot reassign an editor's jobs to themselves")
				}
				app.Store.ReassignEditorJobs(id, toID)
			}

			app.Store.DeleteEditor(id)
			app.Store.Wait()

			fmt.Printf("Removed editor %s\n", shortID(id))
			return nil
		},
	}

	cmd.Flags().StringVar(&reassignTo, "reassign-to", "", "Editor to inherit the removed editor's jobs")

	return cmd
}

func newEditorReassignCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "reassign <from> <to>",
		Short: "Move every job from one editor to another",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			fromID, err := resolveEditorID(app, args[0])
			if err != nil {
				return err
			}
			toID, err := resolveEditorID(app, args[1])
			if err != nil {
				return err
			}
			if fromID == toID {
				return fmt.Errorf("source and target editor are the same")
			}

			app.Store.ReassignEditorJobs(fromID, toID)
			app.Store.Wait()

			fmt.Printf("Reassigned jobs from %s to %s\n", shortID(fromID), shortID(toID))
			return nil
		},
	}
}

// shortID truncates a UUID for display.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
