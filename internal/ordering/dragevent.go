package ordering

import (
	"fmt"
	"strconv"
	"strings"
)

// DragEvent is the single "item moved" callback shape delivered by a board
// surface: droppable ids encode a cell as "editorID::dayIndex", indexes are
// zero-based positions within the droppable's list.
type DragEvent struct {
	DraggableID     string
	SourceDroppable string
	SourceIndex     int
	DestDroppable   string
	DestIndex       int
}

// MoveRequest is a drag event resolved into an ordering-engine instruction.
type MoveRequest struct {
	JobID    string
	EditorID string
	DayIndex int
	Order    int
}

// ParseDroppableID splits an "editorID::dayIndex" droppable id.
func ParseDroppableID(id string) (string, int, error) {
	editorID, dayStr, ok := strings.Cut(id, "::")
	if !ok || editorID == "" {
		return "", 0, fmt.Errorf("malformed droppable id %q", id)
	}
	day, err := strconv.Atoi(dayStr)
	if err != nil {
		return "", 0, fmt.Errorf("malformed droppable id %q: %w", id, err)
	}
	if day < 0 || day > 6 {
		return "", 0, fmt.Errorf("droppable id %q: day index %d out of range", id, day)
	}
	return editorID, day, nil
}

// Resolve turns a drag event into a MoveRequest. Drops outside any droppable
// surface have an empty destination id and resolve to an error; callers treat
// that as a cancelled drag.
func (e DragEvent) Resolve() (MoveRequest, error) {
	if e.DestDroppable == "" {
		return MoveRequest{}, fmt.Errorf("drag %q has no destination", e.DraggableID)
	}
	editorID, day, err := ParseDroppableID(e.DestDroppable)
	if err != nil {
		return MoveRequest{}, err
	}
	return MoveRequest{
		JobID:    e.DraggableID,
		EditorID: editorID,
		DayIndex: day,
		Order:    e.DestIndex,
	}, nil
}

// DroppableID builds the droppable id for an (editor, day) cell.
func DroppableID(editorID string, dayIndex int) string {
	return editorID + "::" + strconv.Itoa(dayIndex)
}
