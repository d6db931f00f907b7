package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/editflowhq/editflow/internal/db"
	"github.com/editflowhq/editflow/internal/domain"
)

// jobColumns is the canonical SELECT column list for jobs.
const jobColumns = `id, user_id, editor_id, title, client_name,
		scheduled_date, week_start, estimated_hours, priority, status, "order",
		created_at, updated_at`

// SQLiteJobRepo implements JobRepo over SQLite. It accepts a db.DBTX so the
// same repository runs against the shared handle or a transaction.
type SQLiteJobRepo struct {
	db db.DBTX
}

// NewSQLiteJobRepo creates a new SQLiteJobRepo.
func NewSQLiteJobRepo(dbtx db.DBTX) *SQLiteJobRepo {
	return &SQLiteJobRepo{db: dbtx}
}

func (r *SQLiteJobRepo) Create(ctx context.Context, j *domain.Job) error {
	query := `INSERT INTO jobs (id, user_id, editor_id, title, client_name,
		scheduled_date, week_start, estimated_hours, priority, status, "order",
		created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		j.ID,
		j.UserID,
		j.EditorID,
		j.Title,
		j.Client,
		j.DayIndex,
		j.WeekStart.Format(dateLayout),
		j.EstimatedHours,
		string(j.Priority),
		string(j.Status),
		j.Order,
		j.CreatedAt.Format(time.RFC3339),
		j.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting job: %w", err)
	}
	return nil
}

func (r *SQLiteJobRepo) GetByID(ctx context.Context, id string) (*domain.Job, error) {
	query := `SELECT ` + jobColumns + ` FROM jobs WHERE id = ?`
	row := r.db.QueryRowContext(ctx, query, id)
	return r.scanJob(row)
}

func (r *SQLiteJobRepo) ListByUser(ctx context.Context, userID string) ([]*domain.Job, error) {
	query := `SELECT ` + jobColumns + ` FROM jobs WHERE user_id = ?
		ORDER BY week_start, editor_id, scheduled_date, "order"`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("listing jobs by user: %w", err)
	}
	defer rows.Close()
	return r.scanJobs(rows)
}

func (r *SQLiteJobRepo) ListByWeek(ctx context.Context, userID string, weekStart time.Time) ([]*domain.Job, error) {
	query := `SELECT ` + jobColumns + ` FROM jobs WHERE user_id = ? AND week_start = ?
		ORDER BY editor_id, scheduled_date, "order"`
	rows, err := r.db.QueryContext(ctx, query, userID, weekStart.Format(dateLayout))
	if err != nil {
		return nil, fmt.Errorf("listing jobs by week: %w", err)
	}
	defer rows.Close()
	return r.scanJobs(rows)
}

func (r *SQLiteJobRepo) Update(ctx context.Context, j *domain.Job) error {
	query := `UPDATE jobs SET editor_id = ?, title = ?, client_name = ?,
		scheduled_date = ?, week_start = ?, estimated_hours = ?, priority = ?,
		status = ?, "order" = ?, updated_at = ?
		WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query,
		j.EditorID,
		j.Title,
		j.Client,
		j.DayIndex,
		j.WeekStart.Format(dateLayout),
		j.EstimatedHours,
		string(j.Priority),
		string(j.Status),
		j.Order,
		j.UpdatedAt.Format(time.RFC3339),
		j.ID,
	)
	if err != nil {
		return fmt.Errorf("updating job: %w", err)
	}
	return nil
}

// UpdateOrdering rewrites the placement of every listed job. Run it inside a
// UnitOfWork so a board move's source- and destination-cell reindexes land
// together or not at all.
func (r *SQLiteJobRepo) UpdateOrdering(ctx context.Context, placements []JobPlacement) error {
	query := `UPDATE jobs SET editor_id = ?, scheduled_date = ?, week_start = ?, "order" = ?, updated_at = ?
		WHERE id = ?`
	now := nowUTC()
	for _, p := range placements {
		if _, err := r.db.ExecContext(ctx, query,
			p.EditorID,
			p.DayIndex,
			p.WeekStart.Format(dateLayout),
			p.Order,
			now,
			p.JobID,
		); err != nil {
			return fmt.Errorf("updating placement of job %s: %w", p.JobID, err)
		}
	}
	return nil
}

// BulkReassign moves every job of one editor to another in a single statement,
// mirroring the board's update-by-filter call.
func (r *SQLiteJobRepo) BulkReassign(ctx context.Context, userID, fromEditorID, toEditorID string) error {
	query := `UPDATE jobs SET editor_id = ?, updated_at = ? WHERE user_id = ? AND editor_id = ?`
	_, err := r.db.ExecContext(ctx, query, toEditorID, nowUTC(), userID, fromEditorID)
	if err != nil {
		return fmt.Errorf("reassigning jobs from editor %s: %w", fromEditorID, err)
	}
	return nil
}

func (r *SQLiteJobRepo) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM jobs WHERE id = ?`
	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("deleting job: %w", err)
	}
	return nil
}

func (r *SQLiteJobRepo) scanJob(row *sql.Row) (*domain.Job, error) {
	var j domain.Job
	var priorityStr, statusStr string
	var weekStartStr, createdAtStr, updatedAtStr string

	err := row.Scan(
		&j.ID, &j.UserID, &j.EditorID, &j.Title, &j.Client,
		&j.DayIndex, &weekStartStr, &j.EstimatedHours, &priorityStr, &statusStr, &j.Order,
		&createdAtStr, &updatedAtStr,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("job: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning job: %w", err)
	}
	return r.populateJob(&j, priorityStr, statusStr, weekStartStr, createdAtStr, updatedAtStr)
}

func (r *SQLiteJobRepo) scanJobs(rows *sql.Rows) ([]*domain.Job, error) {
	var jobs []*domain.Job
	for rows.Next() {
		var j domain.Job
		var priorityStr, statusStr string
		var weekStartStr, createdAtStr, updatedAtStr string

		err := rows.Scan(
			&j.ID, &j.UserID, &j.EditorID, &j.Title, &j.Client,
			&j.DayIndex, &weekStartStr, &j.EstimatedHours, &priorityStr, &statusStr, &j.Order,
			&createdAtStr, &updatedAtStr,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning job row: %w", err)
		}

		job, err := r.populateJob(&j, priorityStr, statusStr, weekStartStr, createdAtStr, updatedAtStr)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, job)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating jobs: %w", err)
	}
	return jobs, nil
}

func (r *SQLiteJobRepo) populateJob(j *domain.Job, priorityStr, statusStr, weekStartStr, createdAtStr, updatedAtStr string) (*domain.Job, error) {
	j.Priority = domain.Priority(priorityStr)
	j.Status = domain.JobStatus(statusStr)

	var parseErr error
	j.WeekStart, parseErr = parseDate(weekStartStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing week_start: %w", parseErr)
	}
	j.CreatedAt, parseErr = time.Parse(time.RFC3339, createdAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing created_at: %w", parseErr)
	}
	j.UpdatedAt, parseErr = time.Parse(time.RFC3339, updatedAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", parseErr)
	}
	return j, nil
}
