package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func positions(b *Board, f Faction) []Point {
	var out []Point
	for _, c := range b.Creatures() {
		if c.Faction == f {
			out = append(out, c.Pos)
		}
	}
	return out
}

func TestRoundMovement(t *testing.T) {
	b := mustParse(t, `#########
#G..G..G#
#.......#
#.......#
#G..E..G#
#.......#
#.......#
#G..G..G#
#########`)

	rounds := [][]Point{
		{{3, 2}, {7, 2}, {5, 3}, {8, 4}, {3, 5}, {2, 7}, {5, 7}, {8, 7}},
		{{4, 2}, {6, 2}, {5, 3}, {3, 4}, {7, 4}, {2, 6}, {5, 6}, {8, 6}},
		{{4, 3}, {5, 3}, {6, 3}, {4, 4}, {6, 4}, {2, 5}, {5, 5}, {8, 6}},
	}
	for i, want := range rounds {
		require.True(t, b.Round(), "Round %d should complete", i+1)
		require.ElementsMatch(t, want, positions(b, Goblin), "Goblins after round %d", i+1)
		require.Equal(t, []Point{{5, 4}}, positions(b, Elf), "Elf after round %d", i+1)
	}
}

func TestRound(t *testing.T) {
	t.Run("moving a creature at most once per round", func(t *testing.T) {
		b := mustParse(t, "#########\n#E.....G#\n#########")

		require.True(t, b.Round())

		require.Equal(t, []Point{{3, 2}}, positions(b, Elf), "Elf moved into a later slot and must not act again")
		require.Equal(t, []Point{{7, 2}}, positions(b, Goblin))
	})

	t.Run("skipping creatures killed before their turn", func(t *testing.T) {
		b := mustParse(t, "####\n#EG#\n####", WithAttackPower(Elf, 200))

		require.True(t, b.Round(), "Nobody was left to act after the kill")

		e, _ := b.Occupant(Point{X: 2, Y: 2})
		require.Equal(t, DefaultHitPoints, e.HitPoints, "Dead goblin must not strike back")
		require.Equal(t, 0, b.Alive(Goblin))
	})

	t.Run("ending early when a later creature finds no enemies", func(t *testing.T) {
		b := mustParse(t, "#####\n#EGE#\n#####", WithAttackPower(Elf, 200))

		require.False(t, b.Round(), "Second elf should find the goblins gone")
		require.Equal(t, 2, b.Alive(Elf))
		require.Equal(t, 0, b.Alive(Goblin))
		require.Equal(t, 2*DefaultHitPoints, b.HitPoints())
	})

	t.Run("completing when the last enemy falls to the last creature", func(t *testing.T) {
		b := mustParse(t, "#####\n#EEG#\n#####", WithAttackPower(Elf, 200))

		require.True(t, b.Round())
		require.True(t, b.Over())
	})

	t.Run("refusing to play a finished game", func(t *testing.T) {
		b := mustParse(t, "#####\n#E..#\n#####")

		require.False(t, b.Round())
	})

	t.Run("seeing earlier deaths within the same round", func(t *testing.T) {
		b := mustParse(t, "######\n#GE.G#\n######", WithAttackPower(Elf, 200))

		require.True(t, b.Round())

		// The first goblin dies to the elf, the second walks up and strikes.
		e, _ := b.Occupant(Point{X: 3, Y: 2})
		require.Equal(t, DefaultHitPoints-2*DefaultAttackPower, e.HitPoints)
		require.Equal(t, []Point{{4, 2}}, positions(b, Goblin))
	})
}
