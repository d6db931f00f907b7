package cli

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/editflowhq/editflow/internal/cli/formatter"
	"github.com/editflowhq/editflow/internal/domain"
	"github.com/editflowhq/editflow/internal/store"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// priorityFlag validates --priority at parse time.
type priorityFlag domain.Priority

var _ pflag.Value = (*priorityFlag)(nil)

func (p *priorityFlag) String() string { return string(*p) }
func (p *priorityFlag) Type() string   { return "priority" }

func (p *priorityFlag) Set(s string) error {
	if !domain.ValidPriorities[s] {
		return fmt.Errorf("invalid priority %q (low, medium, high)", s)
	}
	*p = priorityFlag(s)
	return nil
}

// orderEnd is passed as the destination order when the caller wants the
// job appended after everything already in the cell. The move planner
// clamps it down to the cell size.
const orderEnd = 1 << 30

var dayNames = [7]string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

// resolveJobID accepts an exact id, an id prefix, or a case-insensitive
// title and returns the job's full id.
func resolveJobID(app *App, input string) (string, error) {
	if input == "" {
		return "", fmt.Errorf("job is required")
	}

	var jobs []*domain.Job
	for _, e := range app.Store.Editors() {
		jobs = append(jobs, app.Store.JobsForEditor(e.ID)...)
	}

	for _, j := range jobs {
		if j.ID == input {
			return j.ID, nil
		}
	}
	for _, j := range jobs {
		if strings.EqualFold(j.Title, input) {
			return j.ID, nil
		}
	}

	var matches []string
	for _, j := range jobs {
		if strings.HasPrefix(j.ID, input) {
			matches = append(matches, j.ID)
		}
	}
	switch len(matches) {
	case 0:
		return "", fmt.Errorf("job not found this week: %q", input)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("job %q is ambiguous (%d matches)", input, len(matches))
	}
}

// setWeekFlag points the store at the week containing the given date.
// An empty value leaves the store on its current week.
func setWeekFlag(app *App, week string) error {
	if week == "" {
		return nil
	}
	day, err := time.Parse("2006-01-02", week)
	if err != nil {
		return fmt.Errorf("invalid week date %q: %w", week, err)
	}
	app.Store.SetWeek(day)
	return nil
}

func newJobCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "job",
		Short: "Manage scheduled jobs",
	}

	cmd.AddCommand(
		newJobAddCmd(app),
		newJobListCmd(app),
		newJobUpdateCmd(app),
		newJobRemoveCmd(app),
		newJobMoveCmd(app),
	)

	return cmd
}

func newJobAddCmd(app *App) *cobra.Command {
	var title, editor, client, week string
	var priority priorityFlag
	var day int
	var hours float64

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Schedule a new job",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := setWeekFlag(app, week); err != nil {
				return err
			}

			// Prompt for anything missing when running in a terminal.
			if title == "" && app.interactive() {
				if err := jobAddForm(app, &title, &editor); err != nil {
					return err
				}
			}
			if title == "" {
				return fmt.Errorf("--title is required")
			}
			if day < 0 || day > 6 {
				return fmt.Errorf("invalid day %d (0=Monday .. 6=Sunday)", day)
			}

			editorID, err := resolveEditorID(app, editor)
			if err != nil {
				return err
			}

			j := &domain.Job{
				EditorID:       editorID,
				Title:          title,
				Client:         client,
				DayIndex:       day,
				EstimatedHours: hours,
				Priority:       domain.Priority(priority),
			}
			app.Store.AddJob(j)
			app.Store.Wait()

			fmt.Printf("Scheduled %q on %s (%s)\n", j.Title, dayNames[j.DayIndex], shortID(j.ID))
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "Job title")
	cmd.Flags().StringVar(&editor, "editor", "", "Editor name or id")
	cmd.Flags().StringVar(&client, "client", "", "Client name")
	cmd.Flags().IntVar(&day, "day", 0, "Day of the week (0=Monday .. 6=Sunday)")
	cmd.Flags().Float64Var(&hours, "hours", 0, "Estimated hours")
	cmd.Flags().Var(&priority, "priority", "Priority (low, medium, high)")
	cmd.Flags().StringVar(&week, "week", "", "Any date in the target week (YYYY-MM-DD, default: current)")

	return cmd
}

// jobAddForm collects the title and editor interactively.
func jobAddForm(app *App, title, editor *string) error {
	editors := app.Store.Editors()
	opts := make([]huh.Option[string], 0, len(editors))
	for _, e := range editors {
		opts = append(opts, huh.NewOption(e.Name, e.Name))
	}

	group := []huh.Field{
		huh.NewInput().
			Title("Title").
			Placeholder("Podcast episode 12 rough cut").
			Value(title).
			Validate(func(s string) error {
				if strings.TrimSpace(s) == "" {
					return fmt.Errorf("title is required")
				}
				return nil
			}),
	}
	if len(opts) > 0 && *editor == "" {
		group = append(group, huh.NewSelect[string]().Title("Editor").Options(opts...).Value(editor))
	}

	return huh.NewForm(huh.NewGroup(group...)).Run()
}

func newJobListCmd(app *App) *cobra.Command {
	var editor, week, month string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List jobs for a week or a month",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := setWeekFlag(app, week); err != nil {
				return err
			}
			if month != "" {
				return listMonth(app, month)
			}

			editors := app.Store.Editors()
			if editor != "" {
				id, err := resolveEditorID(app, editor)
				if err != nil {
					return err
				}
				for _, e := range editors {
					if e.ID == id {
						editors = []*domain.Editor{e}
					}
				}
			}

			weekStart := app.Store.SelectedWeek()
			fmt.Println(formatter.Header("Week of " + weekStart.Format("Jan 2, 2006")))

			var rows [][]string
			for _, e := range editors {
				for _, j := range app.Store.JobsForEditor(e.ID) {
					rows = append(rows, jobRow(e, j))
				}
			}
			if len(rows) == 0 {
				fmt.Println(formatter.Dim("Nothing scheduled."))
				return nil
			}

			fmt.Print(formatter.RenderTable(
				[]string{"ID", "DAY", "TITLE", "EDITOR", "HOURS", "PRIORITY", "STATUS"},
				rows,
			))
			return nil
		},
	}

	cmd.Flags().StringVar(&editor, "editor", "", "Only show one editor's jobs")
	cmd.Flags().StringVar(&week, "week", "", "Any date in the week to show (YYYY-MM-DD)")
	cmd.Flags().StringVar(&month, "month", "", "Show a whole month instead (YYYY-MM)")

	return cmd
}

func jobRow(e *domain.Editor, j *domain.Job) []string {
	return []string{
		shortID(j.ID),
		dayNames[j.DayIndex],
		j.Title,
		e.Name,
		strconv.FormatFloat(j.EstimatedHours, 'f', -1, 64),
		formatter.PriorityBadge(j.Priority),
		formatter.StatusLabel(j.Status),
	}
}

func listMonth(app *App, month string) error {
	parsed, err := time.Parse("2006-01", month)
	if err != nil {
		return fmt.Errorf("invalid month %q (use YYYY-MM): %w", month, err)
	}

	jobs := app.Store.JobsInMonth(parsed.Year(), parsed.Month())
	fmt.Println(formatter.Header(parsed.Format("January 2006")))
	if len(jobs) == 0 {
		fmt.Println(formatter.Dim("Nothing scheduled."))
		return nil
	}

	rows := make([][]string, 0, len(jobs))
	for _, j := range jobs {
		rows = append(rows, []string{
			j.ScheduledDate().Format("Mon Jan 2"),
			j.Title,
			strconv.FormatFloat(j.EstimatedHours, 'f', -1, 64),
			formatter.StatusLabel(j.Status),
		})
	}
	fmt.Print(formatter.RenderTable([]string{"DATE", "TITLE", "HOURS", "STATUS"}, rows))
	return nil
}

func newJobUpdateCmd(app *App) *cobra.Command {
	var title, client, status, week string
	var priority priorityFlag
	var hours float64

	cmd := &cobra.Command{
		Use:   "update <job>",
		Short: "Change a job's details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := setWeekFlag(app, week); err != nil {
				return err
			}
			id, err := resolveJobID(app, args[0])
			if err != nil {
				return err
			}

			var patch store.JobPatch
			if cmd.Flags().Changed("title") {
				patch.Title = &title
			}
			if cmd.Flags().Changed("client") {
				patch.Client = &client
			}
			if cmd.Flags().Changed("hours") {
				patch.EstimatedHours = &hours
			}
			if cmd.Flags().Changed("priority") {
				p := domain.Priority(priority)
				patch.Priority = &p
			}
			if cmd.Flags().Changed("status") {
				if !domain.ValidJobStatuses[status] {
					return fmt.Errorf("invalid status %q (queued, in_progress, review)", status)
				}
				st := domain.JobStatus(status)
				patch.Status = &st
			}

			app.Store.UpdateJob(id, patch)
			app.Store.Wait()

			fmt.Printf("Updated job %s\n", shortID(id))
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "New title")
	cmd.Flags().StringVar(&client, "client", "", "New client name")
	cmd.Flags().Float64Var(&hours, "hours", 0, "New estimated hours")
	cmd.Flags().Var(&priority, "priority", "New priority (low, medium, high)")
	cmd.Flags().StringVar(&status, "status", "", "New status (queued, in_progress, review)")
	cmd.Flags().StringVar(&week, "week", "", "Any date in the job's week (YYYY-MM-DD)")

	return cmd
}

func newJobRemoveCmd(app *App) *cobra.Command {
	var week string

	cmd := &cobra.Command{
		Use:   "remove <job>",
		Short: "Take a job off the board",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := setWeekFlag(app, week); err != nil {
				return err
			}
			id, err := resolveJobID(app, args[0])
			if err != nil {
				return err
			}

			app.Store.DeleteJob(id)
			app.Store.Wait()

			fmt.Printf("Removed job %s\n", shortID(id))
			return nil
		},
	}

	cmd.Flags().StringVar(&week, "week", "", "Any date in the job's week (YYYY-MM-DD)")

	return cmd
}

func newJobMoveCmd(app *App) *cobra.Command {
	var editor, week string
	var day, order int

	cmd := &cobra.Command{
		Use:   "move <job>",
		Short: "Move a job to another editor, day, or position",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := setWeekFlag(app, week); err != nil {
				return err
			}
			id, err := resolveJobID(app, args[0])
			if err != nil {
				return err
			}
			job := app.Store.Job(id)
			if job == nil {
				return fmt.Errorf("job not found: %q", args[0])
			}

			destEditor := job.EditorID
			if cmd.Flags().Changed("editor") {
				destEditor, err = resolveEditorID(app, editor)
				if err != nil {
					return err
				}
			}
			destDay := job.DayIndex
			if cmd.Flags().Changed("day") {
				if day < 0 || day > 6 {
					return fmt.Errorf("invalid day %d (0=Monday .. 6=Sunday)", day)
				}
				destDay = day
			}
			destOrder := orderEnd
			if cmd.Flags().Changed("order") {
				destOrder = order
			}

			app.Store.MoveJob(id, destEditor, destDay, destOrder)
			app.Store.Wait()

			fmt.Printf("Moved %q to %s\n", job.Title, dayNames[destDay])
			return nil
		},
	}

	cmd.Flags().StringVar(&editor, "editor", "", "Destination editor (default: unchanged)")
	cmd.Flags().IntVar(&day, "day", 0, "Destination day (0=Monday .. 6=Sunday, default: unchanged)")
	cmd.Flags().IntVar(&order, "order", 0, "Position within the day (default: end)")
	cmd.Flags().StringVar(&week, "week", "", "Any date in the job's week (YYYY-MM-DD)")

	return cmd
}
