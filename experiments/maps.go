package experiments

import (
	"errors"
	"strings"

	"golang.org/x/exp/rand"
)

var ErrCrowdedMap = errors.New("not enough open tiles for the creatures")

// MapOptions shapes a generated battle map.
type MapOptions struct {
	WallDensity float64 // chance of an interior tile being a wall
	Elves       int
	Goblins     int
}

// GenerateMap builds a random walled map. The same seed always yields the
// same map.
func GenerateMap(seed uint64, width, height int, opts MapOptions) (string, error) {
	r := rand.New(rand.NewSource(seed))

	grid := make([][]byte, height)
	var open []int
	for y := range grid {
		grid[y] = make([]byte, width)
		for x := range grid[y] {
			border := x == 0 || y == 0 || x == width-1 || y == height-1
			if border || r.Float64() < opts.WallDensity {
				grid[y][x] = '#'
				continue
			}
			grid[y][x] = '.'
			open = append(open, y*width+x)
		}
	}

	if opts.Elves+opts.Goblins > len(open) {
		return "", ErrCrowdedMap
	}
	r.Shuffle(len(open), func(i, j int) { open[i], open[j] = open[j], open[i] })
	for i, cell := range open[:opts.Elves+opts.Goblins] {
		glyph := byte('E')
		if i >= opts.Elves {
			glyph = 'G'
		}
		grid[cell/width][cell%width] = glyph
	}

	lines := make([]string, height)
	for y, row := range grid {
		lines[y] = string(row)
	}
	return strings.Join(lines, "\n"), nil
}
