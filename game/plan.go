package game

import "golang.org/x/exp/slices"

// Plan is one creature's decision for its turn. A creature moves at most one
// tile and then attacks if an enemy is adjacent to where it stands.
type Plan struct {
	Step      Point
	HasStep   bool
	Target    Point
	HasTarget bool
}

// Plan decides the move and attack of the creature at the given point.
func (b *Board) Plan(at Point) Plan {
	c := b.mustOccupant(at)
	if b.alive[c.Faction.Enemy()] == 0 {
		return Plan{}
	}

	if target, ok := b.weakestEnemy(at, c.Faction); ok {
		return Plan{Target: target, HasTarget: true}
	}

	step, ok := b.nextStep(at, c.Faction)
	if !ok {
		return Plan{}
	}
	plan := Plan{Step: step, HasStep: true}
	if target, ok := b.weakestEnemy(step, c.Faction); ok {
		plan.Target, plan.HasTarget = target, true
	}
	return plan
}

// weakestEnemy picks the adjacent enemy with the fewest hit points, breaking
// ties in reading order.
func (b *Board) weakestEnemy(p Point, f Faction) (Point, bool) {
	var (
		best  Point
		bestH int
		found bool
	)
	for _, n := range b.Neighbors(p) {
		e, ok := b.Occupant(n)
		if !ok || !f.IsEnemy(e.Faction) {
			continue
		}
		if !found || e.HitPoints < bestH || (e.HitPoints == bestH && n.Less(best)) {
			best, bestH, found = n, e.HitPoints, true
		}
	}
	return best, found
}

func (b *Board) besideEnemy(p Point, f Faction) bool {
	for _, n := range b.Neighbors(p) {
		if e, ok := b.Occupant(n); ok && f.IsEnemy(e.Faction) {
			return true
		}
	}
	return false
}

// nextStep runs a breadth-first search over passable tiles from the
// neighbours of from. The destination is the nearest tile beside an enemy,
// first in reading order among equals; the step is the first tile of the
// path to it. Among equally short paths the one starting at the
// reading-order-first neighbour wins.
func (b *Board) nextStep(from Point, f Faction) (Point, bool) {
	n := len(b.tiles)
	dist := make([]int, n)
	parent := make([]int, n)
	origin := make([]int, n) // first step of the chosen path
	for i := range dist {
		dist[i] = -1
	}
	start, _ := b.Index(from)
	dist[start] = 0

	var frontier []Point
	for _, p := range b.Neighbors(from) {
		if !b.passable(p) {
			continue
		}
		i, _ := b.Index(p)
		dist[i], parent[i], origin[i] = 1, start, i
		frontier = append(frontier, p)
	}

	for len(frontier) > 0 {
		slices.SortFunc(frontier, Point.Compare)

		for _, p := range frontier {
			if !b.besideEnemy(p, f) {
				continue
			}
			i, _ := b.Index(p)
			for parent[i] != start {
				i = parent[i]
			}
			return b.Point(i), true
		}

		var next []Point
		for _, p := range frontier {
			pi, _ := b.Index(p)
			for _, q := range b.Neighbors(p) {
				if !b.passable(q) {
					continue
				}
				qi, _ := b.Index(q)
				switch {
				case dist[qi] < 0:
					dist[qi], parent[qi], origin[qi] = dist[pi]+1, pi, origin[pi]
					next = append(next, q)
				case dist[qi] == dist[pi]+1 && b.Point(origin[pi]).Less(b.Point(origin[qi])):
					parent[qi], origin[qi] = pi, origin[pi]
				}
			}
		}
		frontier = next
	}
	return Point{}, false
}
