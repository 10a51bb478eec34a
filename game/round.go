package game

// Round lets every living creature take one turn in reading order. It
// returns true only when the whole scan completed; it returns false, without
// the round counting, as soon as a creature finds no faction left to fight.
func (b *Board) Round() bool {
	if b.Over() {
		return false
	}

	acted := make([]bool, len(b.tiles))
	for i := range b.tiles {
		if acted[i] || !b.tiles[i].Occupied() {
			continue
		}
		if b.Over() {
			return false
		}
		b.turn(b.Point(i), acted)
	}
	return true
}

// turn moves then attacks with the creature at p.
func (b *Board) turn(at Point, acted []bool) {
	plan := b.Plan(at)
	if plan.HasStep {
		b.Move(at, plan.Step)
		at = plan.Step
		i, _ := b.Index(at)
		acted[i] = true
	}
	if plan.HasTarget {
		b.Strike(at, plan.Target)
	}
}
