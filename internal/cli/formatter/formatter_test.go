package formatter

import (
	"strings"
	"testing"

	"github.com/editflowhq/editflow/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestRenderLoad(t *testing.T) {
	tests := []struct {
		name  string
		pct   int
		width int
	}{
		{"empty", 0, 10},
		{"half", 50, 10},
		{"full", 100, 10},
		{"over 100 clamps", 140, 10},
		{"negative clamps", -5, 10},
		{"tiny width clamps to 2", 50, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RenderLoad(tt.pct, tt.width)
			assert.Contains(t, got, "[")
			assert.Contains(t, got, "%")
		})
	}
}

func TestRenderLoadBlocks(t *testing.T) {
	assert.NotContains(t, RenderLoad(0, 4), filledBlock)
	assert.NotContains(t, RenderLoad(100, 4), emptyBlock)

	half := RenderLoad(50, 4)
	assert.Equal(t, 2, strings.Count(half, filledBlock))
	assert.Equal(t, 2, strings.Count(half, emptyBlock))
}

func TestRenderTable(t *testing.T) {
	out := RenderTable(
		[]string{"NAME", "LOAD"},
		[][]string{{"Avery", "63%"}, {"Jo", "0%"}},
	)

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	assert.Len(t, lines, 4, "header, separator, two rows")
	assert.Contains(t, out, "Avery")
	assert.Contains(t, out, "─")
}

func TestRenderTable_NoHeaders(t *testing.T) {
	assert.Empty(t, RenderTable(nil, [][]string{{"x"}}))
}

func TestPriorityBadge(t *testing.T) {
	assert.Contains(t, PriorityBadge(domain.PriorityHigh), "HIGH")
	assert.Contains(t, PriorityBadge(domain.PriorityLow), "LOW")
}

func TestStatusLabel(t *testing.T) {
	assert.Contains(t, StatusLabel(domain.JobInProgress), "in progress")
	assert.Contains(t, StatusLabel(domain.JobQueued), "queued")
}
