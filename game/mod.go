// Package game models the battle map: tiles, creatures, the per-creature
// movement and attack decision, and the round scan that applies them.
//
// Every tie between positions is broken in reading order (see Point.Compare).
package game
