package colour

import (
	"fmt"
	"math"
	"strings"
)

// ANSI escape codes for terminal colours.
const (
	ansiReset    = "\033[0m"
	ansiBgPrefix = "\033[48;2;"
	ansiSuffix   = "m"
	defaultWidth = 8
)

// ColourPreview returns an ANSI-coloured preview string for a colour:
// a solid block of background-coloured spaces.
func ColourPreview(c RGB, width int) string {
	if width <= 0 {
		width = defaultWidth
	}
	bg := fmt.Sprintf("%s%d;%d;%d%s", ansiBgPrefix, c.R, c.G, c.B, ansiSuffix)
	return bg + strings.Repeat(" ", width) + ansiReset
}

// BarPreview renders ranked records as a single-line ANSI strip, each record
// taking a share of the width proportional to its percentage. The terminal
// analogue of RenderBar.
func BarPreview(records []Record, width int) string {
	if width <= 0 {
		width = 64
	}

	var sb strings.Builder
	used := 0
	for _, record := range records {
		cells := int(math.Round(record.Percentage * float64(width)))
		if used+cells > width {
			cells = width - used
		}
		if cells <= 0 {
			continue
		}
		sb.WriteString(ColourPreview(record.Color, cells))
		used += cells
	}
	return sb.String()
}
