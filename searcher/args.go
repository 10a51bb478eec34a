package searcher

import "skirmish/game"

// Search bounds for the boosted attack power.

const DefaultFloor = game.DefaultAttackPower + 1
const DefaultCeiling = 1000
