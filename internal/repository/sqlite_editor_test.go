package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/editflowhq/editflow/internal/domain"
	"github.com/editflowhq/editflow/internal/repository"
	"github.com/editflowhq/editflow/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupEditorRepos(t *testing.T) (context.Context, *repository.SQLiteEditorRepo, *repository.SQLiteJobRepo) {
	t.Helper()
	database := testutil.NewTestDB(t)
	return context.Background(), repository.NewSQLiteEditorRepo(database), repository.NewSQLiteJobRepo(database)
}

func TestEditorRepo_CreateAndGet(t *testing.T) {
	ctx, editors, _ := setupEditorRepos(t)

	ed := testutil.NewTestEditor("Riley", testutil.WithCapacity(32))
	require.NoError(t, editors.Create(ctx, ed))

	got, err := editors.GetByID(ctx, ed.ID)
	require.NoError(t, err)
	assert.Equal(t, "Riley", got.Name)
	assert.Equal(t, 32.0, got.WeeklyCapacity)
	assert.Equal(t, testutil.TestUserID, got.UserID)
}

func TestEditorRepo_GetByID_NotFound(t *testing.T) {
	ctx, editors, _ := setupEditorRepos(t)

	_, err := editors.GetByID(ctx, "nope")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestEditorRepo_CountByUser(t *testing.T) {
	ctx, editors, _ := setupEditorRepos(t)

	require.NoError(t, editors.Create(ctx, testutil.NewTestEditor("One")))
	require.NoError(t, editors.Create(ctx, testutil.NewTestEditor("Two")))
	require.NoError(t, editors.Create(ctx, testutil.NewTestEditor("Foreign", testutil.WithEditorUser("someone-else"))))

	n, err := editors.CountByUser(ctx, testutil.TestUserID)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestEditorRepo_Update(t *testing.T) {
	ctx, editors, _ := setupEditorRepos(t)

	ed := testutil.NewTestEditor("Old Name")
	require.NoError(t, editors.Create(ctx, ed))

	ed.Name = "New Name"
	ed.WeeklyCapacity = 20
	ed.UpdatedAt = time.Now().UTC()
	require.NoError(t, editors.Update(ctx, ed))

	got, err := editors.GetByID(ctx, ed.ID)
	require.NoError(t, err)
	assert.Equal(t, "New Name", got.Name)
	assert.Equal(t, 20.0, got.WeeklyCapacity)
}

func TestEditorRepo_Delete_LeavesJobsAssigned(t *testing.T) {
	ctx, editors, jobs := setupEditorRepos(t)

	ed := testutil.NewTestEditor("Leaving")
	require.NoError(t, editors.Create(ctx, ed))
	job := testutil.NewTestJob("Still here", ed.ID)
	require.NoError(t, jobs.Create(ctx, job))

	require.NoError(t, editors.Delete(ctx, ed.ID))
	_, err := editors.GetByID(ctx, ed.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	got, err := jobs.GetByID(ctx, job.ID)
	require.NoError(t, err)
	assert.Equal(t, ed.ID, got.EditorID, "deleting an editor must not touch its jobs")
}

func TestProfileRepo_GetAndUpsert(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()
	profiles := repository.NewSQLiteProfileRepo(database)

	_, err := profiles.GetByUser(ctx, "u1")
	assert.ErrorIs(t, err, repository.ErrNotFound)

	require.NoError(t, profiles.Upsert(ctx, testutil.NewTestProfile("u1", domain.TierFree)))
	got, err := profiles.GetByUser(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, domain.TierFree, got.PlanTier)

	// Upgrade path rewrites the tier in place.
	require.NoError(t, profiles.Upsert(ctx, testutil.NewTestProfile("u1", domain.TierPro)))
	got, err = profiles.GetByUser(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, domain.TierPro, got.PlanTier)
}
