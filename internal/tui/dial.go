package tui

import (
	"math"
	"strings"

	"github.com/oshokin/daylight/internal/domain/timefmt"
)

// Glyphs of the analog dial. Later hands overwrite earlier ones.
const (
	glyphTick   = '·'
	glyphCenter = 'o'
	glyphSecond = '.'
	glyphMinute = '*'
	glyphHour   = '#'
)

// Hand lengths as a share of the radius.
const (
	hourHandLength   = 0.5
	minuteHandLength = 0.8
	secondHandLength = 0.9
)

// cellAspect compensates for terminal cells being about twice as tall as wide.
const cellAspect = 2

const ticksOnDial = 12

// renderDial draws an analog clock face of the given radius in rows.
func renderDial(angles timefmt.Angles, radius int) string {
	if radius < 2 {
		radius = 2
	}

	height := 2*radius + 1
	width := 2*radius*cellAspect + 1
	cx, cy := radius*cellAspect, radius

	grid := make([][]rune, height)
	for y := range grid {
		grid[y] = []rune(strings.Repeat(" ", width))
	}

	plot := func(x, y int, glyph rune) {
		if y >= 0 && y < height && x >= 0 && x < width {
			grid[y][x] = glyph
		}
	}

	point := func(degrees, distance float64) (int, int) {
		rad := degrees * math.Pi / 180

		return cx + int(math.Round(math.Sin(rad)*distance*cellAspect)),
			cy - int(math.Round(math.Cos(rad)*distance))
	}

	for i := range ticksOnDial {
		x, y := point(float64(i)*360/ticksOnDial, float64(radius))
		plot(x, y, glyphTick)
	}

	hand := func(degrees, length float64, glyph rune) {
		reach := length * float64(radius)
		steps := int(math.Ceil(reach * cellAspect * 2))

		for i := 1; i <= steps; i++ {
			x, y := point(degrees, reach*float64(i)/float64(steps))
			plot(x, y, glyph)
		}
	}

	hand(angles.Second, secondHandLength, glyphSecond)
	hand(angles.Minute, minuteHandLength, glyphMinute)
	hand(angles.Hour, hourHandLength, glyphHour)
	plot(cx, cy, glyphCenter)

	lines := make([]string, height)
	for y, row := range grid {
		lines[y] = strings.TrimRight(string(row), " ")
	}

	return strings.Join(lines, "\n")
}
