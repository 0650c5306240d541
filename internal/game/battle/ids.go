// Package battle implements the deterministic party-versus-waves battle
// engine. Every mutation of a State is an Effect; the Core drives ticks by
// emitting Effects, draining them through State.Accept, and projecting the
// visible ones onto an output stream.
package battle

import "fmt"

// CharID addresses a party member by slot.
type CharID struct {
	Idx int
}

// EnemyID addresses an enemy by wave and slot.
type EnemyID struct {
	Wave int
	Idx  int
}

// SkillID addresses a learned skill slot of a character.
type SkillID struct {
	Char CharID
	Slot int
}

// LtKind distinguishes the two kinds of living thing.
type LtKind int

const (
	LtChar LtKind = iota
	LtEnemy
)

// LtID addresses any combatant.
type LtID struct {
	Kind  LtKind
	Char  CharID
	Enemy EnemyID
}

// CharLt wraps a CharID.
func CharLt(id CharID) LtID { return LtID{Kind: LtChar, Char: id} }

// EnemyLt wraps an EnemyID.
func EnemyLt(id EnemyID) LtID { return LtID{Kind: LtEnemy, Enemy: id} }

// IsChar reports whether l addresses a party member.
func (l LtID) IsChar() bool { return l.Kind == LtChar }

// String returns "char[i]" or "enemy[w/i]".
func (l LtID) String() string {
	if l.Kind == LtChar {
		return fmt.Sprintf("char[%d]", l.Char.Idx)
	}
	return fmt.Sprintf("enemy[%d/%d]", l.Enemy.Wave, l.Enemy.Idx)
}

// Side is whose turn it is in turn-based mode.
type Side int

const (
	SidePlayer Side = iota
	SideEnemy
)

// String returns "player" or "enemy".
func (s Side) String() string {
	if s == SideEnemy {
		return "enemy"
	}
	return "player"
}

// Mode selects the execution model.
type Mode int

const (
	// ModeRealtime advances every entity on every tick.
	ModeRealtime Mode = iota
	// ModeTurnBased advances on GameStart and TurnEnd commands.
	ModeTurnBased
)

// String returns "realtime" or "turn_based".
func (m Mode) String() string {
	if m == ModeTurnBased {
		return "turn_based"
	}
	return "realtime"
}

// ParseMode maps a content-file name to a Mode.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "", "realtime":
		return ModeRealtime, nil
	case "turn_based":
		return ModeTurnBased, nil
	default:
		return 0, fmt.Errorf("unknown battle mode %q", s)
	}
}
