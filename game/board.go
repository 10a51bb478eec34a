package game

import (
	"fmt"
	"strings"

	"golang.org/x/exp/slices"
)

type Terrain uint8

const (
	Open Terrain = iota
	Wall
)

// Tile is one map cell. Occupant is zero when no creature stands on it.
type Tile struct {
	Terrain  Terrain
	Occupant CreatureID
}

func (t Tile) Occupied() bool {
	return t.Occupant != 0
}

// Passable reports whether a creature may step onto the tile.
func (t Tile) Passable() bool {
	return t.Terrain == Open && t.Occupant == 0
}

// Board is the map arena plus the roster of living creatures. The occupied
// tiles are always exactly the positions of the roster's creatures.
type Board struct {
	tiles     []Tile
	width     int
	height    int
	creatures map[CreatureID]*Creature
	alive     [len(Factions)]int
}

func newBoard(width, height int) *Board {
	return &Board{
		tiles:     make([]Tile, 0, width*height),
		width:     width,
		height:    height,
		creatures: make(map[CreatureID]*Creature),
	}
}

func (b *Board) Width() int  { return b.width }
func (b *Board) Height() int { return b.height }

// Index converts a point to its arena index in reading order.
func (b *Board) Index(p Point) (int, bool) {
	if p.X < 1 || p.Y < 1 || p.X > b.width || p.Y > b.height {
		return 0, false
	}
	return (p.X - 1) + (p.Y-1)*b.width, true
}

// Point converts an arena index back to a coordinate.
func (b *Board) Point(i int) Point {
	return Point{X: i%b.width + 1, Y: i/b.width + 1}
}

// Tile returns the cell at p; the second result is false outside the map.
func (b *Board) Tile(p Point) (Tile, bool) {
	i, ok := b.Index(p)
	if !ok {
		return Tile{}, false
	}
	return b.tiles[i], true
}

// Occupant returns a copy of the creature standing at p.
func (b *Board) Occupant(p Point) (Creature, bool) {
	t, ok := b.Tile(p)
	if !ok || !t.Occupied() {
		return Creature{}, false
	}
	return *b.creatures[t.Occupant], true
}

// Neighbors returns the in-bounds orthogonal neighbours of p in reading order.
func (b *Board) Neighbors(p Point) []Point {
	out := make([]Point, 0, len(offsets))
	for _, d := range offsets {
		n := Point{X: p.X + d.X, Y: p.Y + d.Y}
		if _, ok := b.Index(n); ok {
			out = append(out, n)
		}
	}
	return out
}

func (b *Board) passable(p Point) bool {
	t, ok := b.Tile(p)
	return ok && t.Passable()
}

func (b *Board) mustOccupant(p Point) *Creature {
	t, ok := b.Tile(p)
	if !ok || !t.Occupied() {
		panic(fmt.Sprintf("no creature at %s", p))
	}
	return b.creatures[t.Occupant]
}

// Move steps the creature at from onto the adjacent open tile to.
// Any other request is a pathfinding defect and panics.
func (b *Board) Move(from, to Point) {
	c := b.mustOccupant(from)
	if !b.passable(to) {
		panic(fmt.Sprintf("cannot move %s to blocked tile %s", c, to))
	}
	if abs(from.X-to.X)+abs(from.Y-to.Y) != 1 {
		panic(fmt.Sprintf("cannot move %s to non-adjacent tile %s", c, to))
	}

	fi, _ := b.Index(from)
	ti, _ := b.Index(to)
	b.tiles[ti].Occupant = c.ID
	b.tiles[fi].Occupant = 0
	c.Pos = to
}

// Strike applies the attacker's power to the target, clamping hit points at
// zero. A creature reaching zero hit points is removed from the board at once.
func (b *Board) Strike(attacker, target Point) (killed bool) {
	a := b.mustOccupant(attacker)
	t := b.mustOccupant(target)
	if !a.Faction.IsEnemy(t.Faction) {
		panic(fmt.Sprintf("%s cannot strike ally %s", a, t))
	}

	t.HitPoints -= a.AttackPower
	if t.HitPoints > 0 {
		return false
	}
	t.HitPoints = 0
	b.remove(t)
	return true
}

func (b *Board) remove(c *Creature) {
	i, _ := b.Index(c.Pos)
	b.tiles[i].Occupant = 0
	delete(b.creatures, c.ID)
	b.alive[c.Faction]--
}

func (b *Board) place(c Creature) {
	c.ID = CreatureID(len(b.creatures) + 1)
	i, _ := b.Index(c.Pos)
	b.tiles[i].Occupant = c.ID
	b.creatures[c.ID] = &c
	b.alive[c.Faction]++
}

// Alive returns the number of living creatures of a faction.
func (b *Board) Alive(f Faction) int {
	return b.alive[f]
}

// Over reports whether some faction has been wiped out.
func (b *Board) Over() bool {
	for _, f := range Factions {
		if b.alive[f] == 0 {
			return true
		}
	}
	return false
}

// Creatures returns copies of all living creatures in reading order.
func (b *Board) Creatures() []Creature {
	out := make([]Creature, 0, len(b.creatures))
	for _, c := range b.creatures {
		out = append(out, *c)
	}
	slices.SortFunc(out, func(x, y Creature) int { return x.Pos.Compare(y.Pos) })
	return out
}

// HitPoints sums the hit points of every living creature.
func (b *Board) HitPoints() int {
	sum := 0
	for _, c := range b.creatures {
		sum += c.HitPoints
	}
	return sum
}

// Copy returns an independent deep copy of the board.
func (b *Board) Copy() *Board {
	cp := &Board{
		tiles:     slices.Clone(b.tiles),
		width:     b.width,
		height:    b.height,
		creatures: make(map[CreatureID]*Creature, len(b.creatures)),
		alive:     b.alive,
	}
	for id, c := range b.creatures {
		c := *c
		cp.creatures[id] = &c
	}
	return cp
}

// String renders the map with the hit points of each row's creatures.
func (b *Board) String() string {
	var sb strings.Builder
	for y := 1; y <= b.height; y++ {
		var notes []string
		for x := 1; x <= b.width; x++ {
			p := Point{X: x, Y: y}
			t, _ := b.Tile(p)
			switch {
			case t.Occupied():
				c := b.creatures[t.Occupant]
				sb.WriteRune(c.Faction.Glyph())
				notes = append(notes, fmt.Sprintf("%c(%d)", c.Faction.Glyph(), c.HitPoints))
			case t.Terrain == Wall:
				sb.WriteByte('#')
			default:
				sb.WriteByte('.')
			}
		}
		if len(notes) > 0 {
			sb.WriteString("   ")
			sb.WriteString(strings.Join(notes, ", "))
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
