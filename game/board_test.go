package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

const exampleMap = `#######
#.G.E.#
#E.G.E#
#.G.E.#
#######`

func mustParse(t *testing.T, input string, options ...Option) *Board {
	t.Helper()
	b, err := Parse(input, options...)
	require.NoError(t, err)
	return b
}

func setHitPoints(t *testing.T, b *Board, p Point, hp int) {
	t.Helper()
	tile, ok := b.Tile(p)
	require.True(t, ok && tile.Occupied(), "expected a creature at %s", p)
	b.creatures[tile.Occupant].HitPoints = hp
}

func TestParse(t *testing.T) {
	t.Run("reading tiles and creatures", func(t *testing.T) {
		b := mustParse(t, exampleMap)

		require.Equal(t, 4, b.Alive(Elf))
		require.Equal(t, 3, b.Alive(Goblin))
		require.Equal(t, 7, b.Width())
		require.Equal(t, 5, b.Height())

		tile, ok := b.Tile(Point{X: 1, Y: 1})
		require.True(t, ok)
		require.Equal(t, Wall, tile.Terrain)

		tile, _ = b.Tile(Point{X: 2, Y: 2})
		require.True(t, tile.Passable())

		g, ok := b.Occupant(Point{X: 3, Y: 2})
		require.True(t, ok)
		require.Equal(t, Goblin, g.Faction)
		require.Equal(t, DefaultHitPoints, g.HitPoints)
		require.Equal(t, DefaultAttackPower, g.AttackPower)
		require.Equal(t, Point{X: 3, Y: 2}, g.Pos)

		e, ok := b.Occupant(Point{X: 5, Y: 4})
		require.True(t, ok)
		require.Equal(t, Elf, e.Faction)

		tile, _ = b.Tile(Point{X: 7, Y: 5})
		require.Equal(t, Wall, tile.Terrain)
	})

	t.Run("applying faction options", func(t *testing.T) {
		b := mustParse(t, exampleMap, WithAttackPower(Elf, 15), WithHitPoints(Goblin, 50))

		e, _ := b.Occupant(Point{X: 5, Y: 2})
		require.Equal(t, 15, e.AttackPower)
		require.Equal(t, DefaultHitPoints, e.HitPoints)

		g, _ := b.Occupant(Point{X: 3, Y: 2})
		require.Equal(t, DefaultAttackPower, g.AttackPower)
		require.Equal(t, 50, g.HitPoints)
	})

	t.Run("tolerating surrounding newlines and carriage returns", func(t *testing.T) {
		b := mustParse(t, "\n###\r\n#E#\r\n#G#\r\n###\n")
		require.Equal(t, 3, b.Width())
		require.Equal(t, 4, b.Height())
		require.Equal(t, 1, b.Alive(Elf))
	})

	t.Run("rejecting an unknown tile", func(t *testing.T) {
		_, err := Parse("###\n#X#\n###")
		require.ErrorIs(t, err, ErrUnknownTile)
		require.Contains(t, err.Error(), "line 2 column 2")
	})

	t.Run("rejecting ragged rows", func(t *testing.T) {
		_, err := Parse("####\n#E#\n####")
		require.ErrorIs(t, err, ErrRaggedRow)
	})

	t.Run("rejecting an empty map", func(t *testing.T) {
		_, err := Parse("\n\n")
		require.ErrorIs(t, err, ErrEmptyMap)
	})

	t.Run("accepting a map without one faction", func(t *testing.T) {
		b := mustParse(t, "###\n#E#\n###")
		require.Equal(t, 0, b.Alive(Goblin))
		require.True(t, b.Over())
	})
}

func TestIndex(t *testing.T) {
	b := mustParse(t, exampleMap)

	mapping := map[int]Point{
		7:  {X: 1, Y: 2},
		17: {X: 4, Y: 3},
	}
	for i, p := range mapping {
		got, ok := b.Index(p)
		require.True(t, ok)
		require.Equal(t, i, got)
		require.Equal(t, p, b.Point(i))
	}

	_, ok := b.Index(Point{X: 0, Y: 1})
	require.False(t, ok, "Column 0 is outside the map")
	_, ok = b.Index(Point{X: 8, Y: 1})
	require.False(t, ok, "Column past the width is outside the map")
	_, ok = b.Tile(Point{X: 1, Y: 6})
	require.False(t, ok, "Row past the height is outside the map")
}

func TestPointCompare(t *testing.T) {
	require.True(t, Point{X: 5, Y: 1}.Less(Point{X: 1, Y: 2}), "Rows are compared first")
	require.True(t, Point{X: 1, Y: 2}.Less(Point{X: 2, Y: 2}), "Columns break ties within a row")
	require.Equal(t, 0, Point{X: 3, Y: 3}.Compare(Point{X: 3, Y: 3}))
	require.Equal(t, 1, Point{X: 1, Y: 4}.Compare(Point{X: 9, Y: 3}))
}

func TestNeighbors(t *testing.T) {
	b := mustParse(t, exampleMap)

	require.Equal(t, []Point{{X: 3, Y: 2}, {X: 2, Y: 3}, {X: 4, Y: 3}, {X: 3, Y: 4}},
		b.Neighbors(Point{X: 3, Y: 3}), "Neighbours come up, left, right, down")
	require.Equal(t, []Point{{X: 2, Y: 1}, {X: 1, Y: 2}},
		b.Neighbors(Point{X: 1, Y: 1}), "Out-of-bounds neighbours are absent")
}

func TestMove(t *testing.T) {
	t.Run("moving onto an open tile", func(t *testing.T) {
		b := mustParse(t, exampleMap)
		from, to := Point{X: 3, Y: 2}, Point{X: 4, Y: 2}

		b.Move(from, to)

		_, ok := b.Occupant(from)
		require.False(t, ok, "Source tile should be vacated")
		g, ok := b.Occupant(to)
		require.True(t, ok)
		require.Equal(t, to, g.Pos, "Creature position should follow its tile")
	})

	t.Run("panics moving into a wall", func(t *testing.T) {
		b := mustParse(t, exampleMap)
		require.Panics(t, func() { b.Move(Point{X: 2, Y: 3}, Point{X: 1, Y: 3}) })
	})

	t.Run("panics moving into a creature", func(t *testing.T) {
		b := mustParse(t, "####\n#EG#\n####")
		require.Panics(t, func() { b.Move(Point{X: 2, Y: 2}, Point{X: 3, Y: 2}) })
	})

	t.Run("panics moving more than one tile", func(t *testing.T) {
		b := mustParse(t, exampleMap)
		require.Panics(t, func() { b.Move(Point{X: 2, Y: 3}, Point{X: 4, Y: 2}) })
	})

	t.Run("panics moving from an empty tile", func(t *testing.T) {
		b := mustParse(t, exampleMap)
		require.Panics(t, func() { b.Move(Point{X: 2, Y: 2}, Point{X: 2, Y: 3}) })
	})
}

func TestStrike(t *testing.T) {
	t.Run("reducing hit points", func(t *testing.T) {
		b := mustParse(t, "####\n#EG#\n####")

		killed := b.Strike(Point{X: 2, Y: 2}, Point{X: 3, Y: 2})

		require.False(t, killed)
		g, _ := b.Occupant(Point{X: 3, Y: 2})
		require.Equal(t, DefaultHitPoints-DefaultAttackPower, g.HitPoints)
	})

	t.Run("removing a creature at zero hit points", func(t *testing.T) {
		b := mustParse(t, "####\n#EG#\n####", WithAttackPower(Elf, 500))

		killed := b.Strike(Point{X: 2, Y: 2}, Point{X: 3, Y: 2})

		require.True(t, killed)
		tile, _ := b.Tile(Point{X: 3, Y: 2})
		require.True(t, tile.Passable(), "Dead creature should not block its tile")
		require.Equal(t, 0, b.Alive(Goblin))
		require.Len(t, b.Creatures(), 1)
		require.True(t, b.Over())
	})

	t.Run("panics striking an empty tile", func(t *testing.T) {
		b := mustParse(t, "#####\n#E.G#\n#####")
		require.Panics(t, func() { b.Strike(Point{X: 2, Y: 2}, Point{X: 3, Y: 2}) })
	})

	t.Run("panics striking an ally", func(t *testing.T) {
		b := mustParse(t, "####\n#EE#\n####")
		require.Panics(t, func() { b.Strike(Point{X: 2, Y: 2}, Point{X: 3, Y: 2}) })
	})
}

func TestCopy(t *testing.T) {
	b := mustParse(t, exampleMap)
	cp := b.Copy()

	cp.Move(Point{X: 3, Y: 2}, Point{X: 4, Y: 2})
	cp.Strike(Point{X: 4, Y: 2}, Point{X: 5, Y: 2})

	_, ok := b.Occupant(Point{X: 3, Y: 2})
	require.True(t, ok, "Source board should not see moves on the copy")
	e, _ := b.Occupant(Point{X: 5, Y: 2})
	require.Equal(t, DefaultHitPoints, e.HitPoints, "Source board should not see strikes on the copy")
	require.Equal(t, b.HitPoints()-DefaultAttackPower, cp.HitPoints())
}

func TestCreatures(t *testing.T) {
	b := mustParse(t, exampleMap)

	creatures := b.Creatures()
	require.Len(t, creatures, 7)
	for i := 1; i < len(creatures); i++ {
		require.True(t, creatures[i-1].Pos.Less(creatures[i].Pos), "Creatures should be listed in reading order")
	}
	require.Equal(t, 7*DefaultHitPoints, b.HitPoints())
}

func TestString(t *testing.T) {
	b := mustParse(t, "#####\n#E.G#\n#####")
	setHitPoints(t, b, Point{X: 4, Y: 2}, 31)

	require.Equal(t, "#####\n#E.G#   E(200), G(31)\n#####\n", b.String())
}
