package cli

import (
	"context"
	"testing"
	"time"

	"github.com/editflowhq/editflow/internal/domain"
	"github.com/editflowhq/editflow/internal/repository"
	"github.com/editflowhq/editflow/internal/store"
	"github.com/editflowhq/editflow/internal/teatest"
	"github.com/editflowhq/editflow/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type boardEnv struct {
	app     *App
	notices chan noticeMsg
}

// newBoardEnv builds an App over an in-memory database, seeds it, and
// reloads the store so the board sees the fixtures.
func newBoardEnv(t *testing.T, editors []*domain.Editor, jobs []*domain.Job) boardEnv {
	t.Helper()
	database := testutil.NewTestDB(t)
	ctx := context.Background()

	editorRepo := repository.NewSQLiteEditorRepo(database)
	jobRepo := repository.NewSQLiteJobRepo(database)
	for i, e := range editors {
		// Editor rows list in creation order; keep it deterministic.
		e.CreatedAt = testutil.TestWeek.Add(time.Duration(i) * time.Hour)
		e.UpdatedAt = e.CreatedAt
		require.NoError(t, editorRepo.Create(ctx, e))
	}
	for _, j := range jobs {
		require.NoError(t, jobRepo.Create(ctx, j))
	}

	st := store.New(store.Config{
		UserID:   testutil.TestUserID,
		Jobs:     jobRepo,
		Editors:  editorRepo,
		Profiles: repository.NewSQLiteProfileRepo(database),
		UoW:      testutil.NewTestUoW(database),
	})
	st.SetWeek(testutil.TestWeek)
	require.NoError(t, st.Load(ctx))

	notices := make(chan noticeMsg, 16)
	st.SetNotifier(boardNotifier{ch: notices})

	return boardEnv{
		app:     &App{Store: st, IsInteractive: func() bool { return true }},
		notices: notices,
	}
}

func (env boardEnv) driver(t *testing.T) *teatest.Driver {
	t.Helper()
	d := teatest.New(t, newBoardModel(env.app, env.notices), teatest.WithSize(100, 40))
	d.DrainInit()
	return d
}

func cellTitles(st *store.Store, editorID string, day int) []string {
	var titles []string
	for _, j := range st.JobsInCell(editorID, day) {
		titles = append(titles, j.Title)
	}
	return titles
}

func TestBoard_GrabAndDropReordersWithinCell(t *testing.T) {
	ed := testutil.NewTestEditor("Avery")
	ed.ID = "ed-1"
	env := newBoardEnv(t, []*domain.Editor{ed}, []*domain.Job{
		testutil.NewTestJob("First", "ed-1", testutil.WithOrder(0)),
		testutil.NewTestJob("Second", "ed-1", testutil.WithOrder(1)),
		testutil.NewTestJob("Third", "ed-1", testutil.WithOrder(2)),
	})
	d := env.driver(t)

	d.PressSpace() // grab "First"
	d.PressDown()
	d.PressEnter() // drop at slot 1
	env.app.Store.Wait()

	assert.Equal(t, []string{"Second", "First", "Third"}, cellTitles(env.app.Store, "ed-1", 0))
}

func TestBoard_DropOnAnotherDayMovesJob(t *testing.T) {
	ed := testutil.NewTestEditor("Avery")
	ed.ID = "ed-1"
	env := newBoardEnv(t, []*domain.Editor{ed}, []*domain.Job{
		testutil.NewTestJob("Rough cut", "ed-1"),
		testutil.NewTestJob("Color pass", "ed-1", testutil.WithDay(1)),
	})
	d := env.driver(t)

	d.PressSpace() // grab "Rough cut" on Monday
	d.PressRight() // Tuesday
	d.PressEnter()
	env.app.Store.Wait()

	assert.Empty(t, cellTitles(env.app.Store, "ed-1", 0))
	assert.Equal(t, []string{"Rough cut", "Color pass"}, cellTitles(env.app.Store, "ed-1", 1))
}

func TestBoard_DropOnAnotherEditor(t *testing.T) {
	ed1 := testutil.NewTestEditor("Avery")
	ed1.ID = "ed-1"
	ed2 := testutil.NewTestEditor("Blake")
	ed2.ID = "ed-2"
	env := newBoardEnv(t, []*domain.Editor{ed1, ed2}, []*domain.Job{
		testutil.NewTestJob("Trailer", "ed-1"),
	})
	d := env.driver(t)

	d.PressSpace()
	d.PressDown() // past the end of Avery's cell
	d.PressDown() // into Blake's empty Monday cell
	d.PressEnter()
	env.app.Store.Wait()

	assert.Empty(t, cellTitles(env.app.Store, "ed-1", 0))
	assert.Equal(t, []string{"Trailer"}, cellTitles(env.app.Store, "ed-2", 0))
}

func TestBoard_EscCancelsGrab(t *testing.T) {
	ed := testutil.NewTestEditor("Avery")
	ed.ID = "ed-1"
	env := newBoardEnv(t, []*domain.Editor{ed}, []*domain.Job{
		testutil.NewTestJob("First", "ed-1", testutil.WithOrder(0)),
		testutil.NewTestJob("Second", "ed-1", testutil.WithOrder(1)),
	})
	d := env.driver(t)

	d.PressSpace()
	d.PressDown()
	d.PressEsc()
	d.PressEnter() // nothing grabbed, must be a no-op
	env.app.Store.Wait()

	assert.Equal(t, []string{"First", "Second"}, cellTitles(env.app.Store, "ed-1", 0))
	m := d.Model.(boardModel)
	assert.Nil(t, m.grabbed)
}

func TestBoard_WeekNavigationKeys(t *testing.T) {
	ed := testutil.NewTestEditor("Avery")
	env := newBoardEnv(t, []*domain.Editor{ed}, nil)
	d := env.driver(t)

	assert.Contains(t, d.View(), "Mar 2, 2026")

	d.PressKey(']')
	assert.Contains(t, d.View(), "Mar 9, 2026")
	assert.True(t, env.app.Store.SelectedWeek().Equal(testutil.TestWeek.AddDate(0, 0, 7)))

	d.PressKey('[')
	assert.Contains(t, d.View(), "Mar 2, 2026")
}

func TestBoard_NoticeAppearsInView(t *testing.T) {
	ed := testutil.NewTestEditor("Avery")
	env := newBoardEnv(t, []*domain.Editor{ed}, nil)
	d := env.driver(t)

	d.Send(noticeMsg{text: "Could not save your change. Refreshing the board.", isErr: true})
	assert.Contains(t, d.View(), "Could not save your change")
}

func TestBoard_EmptyTeamHint(t *testing.T) {
	env := newBoardEnv(t, nil, nil)
	d := env.driver(t)

	assert.Contains(t, d.View(), "No editors yet")
}

func TestBoard_QuitKey(t *testing.T) {
	ed := testutil.NewTestEditor("Avery")
	env := newBoardEnv(t, []*domain.Editor{ed}, nil)
	d := env.driver(t)

	d.PressKey('q')
	assert.True(t, d.Quitting)
}

func TestBoard_ViewShowsJobsAndLoad(t *testing.T) {
	ed := testutil.NewTestEditor("Avery", testutil.WithCapacity(40))
	ed.ID = "ed-1"
	env := newBoardEnv(t, []*domain.Editor{ed}, []*domain.Job{
		testutil.NewTestJob("Podcast edit", "ed-1", testutil.WithHours(10)),
	})
	d := env.driver(t)

	view := d.View()
	assert.Contains(t, view, "Avery")
	assert.Contains(t, view, "Podcast edit")
	assert.Contains(t, view, "25%")
}
