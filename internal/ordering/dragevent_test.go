package ordering

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDroppableID(t *testing.T) {
	cases := []struct {
		id       string
		editorID string
		day      int
		wantErr  bool
	}{
		{"ed-1::0", "ed-1", 0, false},
		{"ed-abc::6", "ed-abc", 6, false},
		{"ed-1::7", "", 0, true},
		{"ed-1::-1", "", 0, true},
		{"ed-1::x", "", 0, true},
		{"ed-1", "", 0, true},
		{"::3", "", 0, true},
	}
	for _, tc := range cases {
		editorID, day, err := ParseDroppableID(tc.id)
		if tc.wantErr {
			assert.Error(t, err, "id=%q", tc.id)
			continue
		}
		require.NoError(t, err, "id=%q", tc.id)
		assert.Equal(t, tc.editorID, editorID)
		assert.Equal(t, tc.day, day)
	}
}

func TestDragEvent_Resolve(t *testing.T) {
	ev := DragEvent{
		DraggableID:     "job-42",
		SourceDroppable: "ed-1::0",
		SourceIndex:     2,
		DestDroppable:   "ed-2::4",
		DestIndex:       1,
	}
	req, err := ev.Resolve()
	require.NoError(t, err)
	assert.Equal(t, MoveRequest{JobID: "job-42", EditorID: "ed-2", DayIndex: 4, Order: 1}, req)
}

func TestDragEvent_Resolve_NoDestinationIsCancelled(t *testing.T) {
	ev := DragEvent{DraggableID: "job-42", SourceDroppable: "ed-1::0"}
	_, err := ev.Resolve()
	assert.Error(t, err)
}

func TestDroppableID_RoundTrips(t *testing.T) {
	id := DroppableID("ed-7", 3)
	editorID, day, err := ParseDroppableID(id)
	require.NoError(t, err)
	assert.Equal(t, "ed-7", editorID)
	assert.Equal(t, 3, day)
}
