package components

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// chartBlocks are block characters from empty to full, used for rendering
// bar tops. Index 0 is empty (space), index 8 is full block.
var chartBlocks = []rune{' ', '▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// axisWidth reserves room for Y-axis value labels, e.g. " 1.2K ".
const axisWidth = 6

// RenderBarChart renders a labeled vertical bar chart using block characters.
// labels and data are parallel sequences; the last output line carries the
// X-axis labels. reveal in [0,1] scales every bar height, driving the
// period-switch animation; pass 1 for a fully drawn chart.
func RenderBarChart(labels []string, data []float64, width, height int, reveal float64, barStyle, axisStyle lipgloss.Style) string {
	if width < 12 {
		width = 12
	}
	if height < 4 {
		height = 4
	}
	if reveal < 0 {
		reveal = 0
	}
	if reveal > 1 {
		reveal = 1
	}

	chartWidth := width - axisWidth
	chartHeight := height - 1 // subtract label row

	if len(data) == 0 {
		var lines []string
		for i := 0; i < height; i++ {
			lines = append(lines, strings.Repeat(" ", width))
		}
		return strings.Join(lines, "\n")
	}

	// Each bar owns a fixed slot; bars wider than one cell leave a one-cell
	// gap on the right of the slot.
	slotWidth := chartWidth / len(data)
	if slotWidth < 1 {
		slotWidth = 1
	}
	barWidth := slotWidth - 1
	if barWidth < 1 {
		barWidth = 1
	}

	// Bars always scale from zero.
	maxVal := 0.0
	for _, v := range data {
		if v > maxVal {
			maxVal = v
		}
	}
	if maxVal == 0 {
		maxVal = 1
	}

	var lines []string

	for row := chartHeight - 1; row >= 0; row-- {
		cellBottom := maxVal * float64(row) / float64(chartHeight)
		cellTop := maxVal * float64(row+1) / float64(chartHeight)

		label := fmt.Sprintf("%5s ", FormatCount(cellTop))
		if len(label) > axisWidth {
			label = label[len(label)-axisWidth:]
		}

		var rowChars []rune
		for i, v := range data {
			if i*slotWidth >= chartWidth {
				break
			}
			v *= reveal

			var cell rune
			switch {
			case v <= cellBottom:
				cell = ' '
			case v >= cellTop:
				cell = chartBlocks[8]
			default:
				fraction := (v - cellBottom) / (cellTop - cellBottom)
				idx := int(math.Round(fraction * 8))
				if idx < 0 {
					idx = 0
				}
				if idx > 8 {
					idx = 8
				}
				cell = chartBlocks[idx]
			}

			for b := 0; b < barWidth; b++ {
				rowChars = append(rowChars, cell)
			}
			if barWidth < slotWidth {
				rowChars = append(rowChars, ' ')
			}
		}
		if len(rowChars) < chartWidth {
			rowChars = append(rowChars, []rune(strings.Repeat(" ", chartWidth-len(rowChars)))...)
		}
		if len(rowChars) > chartWidth {
			rowChars = rowChars[:chartWidth]
		}

		lines = append(lines, axisStyle.Render(label)+barStyle.Render(string(rowChars)))
	}

	lines = append(lines, strings.Repeat(" ", axisWidth)+axisStyle.Render(labelRow(labels, slotWidth, chartWidth)))

	return strings.Join(lines, "\n")
}

// labelRow lays X-axis labels under their bar slots, skipping labels that
// would overlap the previous one. Narrow slots thus show every Nth label.
func labelRow(labels []string, slotWidth, width int) string {
	row := []rune(strings.Repeat(" ", width))
	next := 0
	for i, lab := range labels {
		start := i * slotWidth
		if start < next || start >= width {
			continue
		}
		runes := []rune(lab)
		if start+len(runes) > width {
			runes = runes[:width-start]
		}
		copy(row[start:], runes)
		next = start + len(runes) + 1
	}
	return string(row)
}

// FormatCount renders a vehicle count compactly for chart axis labels.
func FormatCount(n float64) string {
	switch {
	case n >= 1_000_000:
		return fmt.Sprintf("%.1fM", n/1_000_000)
	case n >= 10_000:
		return fmt.Sprintf("%.1fK", n/1_000)
	default:
		return fmt.Sprintf("%.0f", n)
	}
}
