package game

import (
	"fmt"
	"strings"
)

const (
	DefaultHitPoints   = 200
	DefaultAttackPower = 3
)

// Faction is one of the two opposing sides.
type Faction uint8

const (
	Elf Faction = iota
	Goblin
)

// Factions lists both sides in a fixed order.
var Factions = [...]Faction{Elf, Goblin}

func (f Faction) Enemy() Faction {
	if f == Elf {
		return Goblin
	}
	return Elf
}

func (f Faction) IsEnemy(o Faction) bool {
	return f != o
}

// Glyph is the map letter of the faction.
func (f Faction) Glyph() rune {
	if f == Elf {
		return 'E'
	}
	return 'G'
}

func (f Faction) String() string {
	if f == Elf {
		return "elf"
	}
	return "goblin"
}

// ParseFaction accepts a faction name or its map letter, case-insensitively.
func ParseFaction(s string) (Faction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "elf", "elves", "e":
		return Elf, nil
	case "goblin", "goblins", "g":
		return Goblin, nil
	}
	return 0, fmt.Errorf("unknown faction %q", s)
}

type CreatureID int

// Creature is a living unit. Its position always matches the tile it occupies.
type Creature struct {
	ID          CreatureID
	Faction     Faction
	AttackPower int
	HitPoints   int
	Pos         Point
}

func (c Creature) String() string {
	return fmt.Sprintf("%c(%d)@%s", c.Faction.Glyph(), c.HitPoints, c.Pos)
}
