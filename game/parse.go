package game

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrEmptyMap    = errors.New("empty map")
	ErrUnknownTile = errors.New("unknown tile")
	ErrRaggedRow   = errors.New("row width differs from first row")
)

// Army holds the per-faction stats handed to every creature at parse time.
type Army struct {
	AttackPower int
	HitPoints   int
}

type Option func(armies *[len(Factions)]Army)

func WithAttackPower(f Faction, power int) Option {
	return func(armies *[len(Factions)]Army) {
		armies[f].AttackPower = power
	}
}

func WithHitPoints(f Faction, hp int) Option {
	return func(armies *[len(Factions)]Army) {
		armies[f].HitPoints = hp
	}
}

// Parse reads a rectangular map of '#', '.', 'E' and 'G'. The width is taken
// from the first line.
func Parse(input string, options ...Option) (*Board, error) {
	armies := [len(Factions)]Army{
		Elf:    {AttackPower: DefaultAttackPower, HitPoints: DefaultHitPoints},
		Goblin: {AttackPower: DefaultAttackPower, HitPoints: DefaultHitPoints},
	}
	for _, option := range options {
		option(&armies)
	}

	lines := strings.Split(strings.Trim(input, "\r\n"), "\n")
	for i := range lines {
		lines[i] = strings.TrimRight(lines[i], "\r")
	}
	if len(lines) == 0 || lines[0] == "" {
		return nil, ErrEmptyMap
	}

	width := len(lines[0])
	b := newBoard(width, len(lines))
	for y, line := range lines {
		if len(line) != width {
			return nil, fmt.Errorf("line %d has width %d, want %d: %w", y+1, len(line), width, ErrRaggedRow)
		}
		for x, ch := range []byte(line) {
			p := Point{X: x + 1, Y: y + 1}
			switch ch {
			case '#':
				b.tiles = append(b.tiles, Tile{Terrain: Wall})
			case '.':
				b.tiles = append(b.tiles, Tile{Terrain: Open})
			case 'E', 'G':
				f := Elf
				if ch == 'G' {
					f = Goblin
				}
				b.tiles = append(b.tiles, Tile{Terrain: Open})
				b.place(Creature{
					Faction:     f,
					AttackPower: armies[f].AttackPower,
					HitPoints:   armies[f].HitPoints,
					Pos:         p,
				})
			default:
				return nil, fmt.Errorf("%q at line %d column %d: %w", ch, y+1, x+1, ErrUnknownTile)
			}
		}
	}
	return b, nil
}
