package formatter

import (
	"fmt"
	"strings"
)

const (
	filledBlock = "█"
	emptyBlock  = "░"
)

// RenderLoad renders a weekly load bar like [████░░░░]  45%. Load is a
// whole percentage 0-100. Color flips as the editor fills up: green
// under 70%, yellow under 90%, red at or above.
func RenderLoad(pct, width int) string {
	if pct < 0 {
		pct = 0
	}
	if pct > 100 {
		pct = 100
	}
	if width < 2 {
		width = 2
	}

	filled := pct * width / 100
	bar := strings.Repeat(filledBlock, filled) + strings.Repeat(emptyBlock, width-filled)

	style := StyleGreen
	switch {
	case pct >= 90:
		style = StyleRed
	case pct >= 70:
		style = StyleYellow
	}

	return fmt.Sprintf("[%s] %3d%%", style.Render(bar), pct)
}
