package passives

import (
	"fmt"

	"github.com/cory-johannsen/wavebattle/internal/game/attr"
	"github.com/cory-johannsen/wavebattle/internal/game/battle"
)

// decrement is the message every turn-limited passive sends itself.
var decrement = battle.PassiveMessage{Op: battle.PassiveDecrementTurns, N: 1}

// TicksPerTurn is how long one turn of a turn-limited passive lasts in a
// real-time battle.
const TicksPerTurn = 3 * attr.TicksPerSecond

// turns is the remaining-duration bookkeeping shared by turn-limited passives.
// Turn-based battles count turns down at turn start; real-time battles advance
// timer every tick and count a turn down each TicksPerTurn ticks.
type turns struct {
	left  int
	timer int
}

func (t *turns) ShouldTrash() bool { return t.left <= 0 }

func (t *turns) update(msg battle.PassiveMessage) {
	switch msg.Op {
	case battle.PassiveDecrementTurns:
		t.left -= int(msg.N)
	case battle.PassiveAdvanceTimer:
		t.timer += int(msg.N)
		for t.timer >= TicksPerTurn {
			t.timer -= TicksPerTurn
			t.left--
		}
	}
}

// turnEnds reports whether the next advance closes a real-time turn.
func (t *turns) turnEnds() bool { return t.timer+1 == TicksPerTurn }

// Merging refreshes to the longer duration.
func (t *turns) merge(other turns) {
	if other.left > t.left {
		t.left = other.left
	}
}

func selfDecrement(owner battle.LtID, kind battle.PassiveKind, out *battle.Queue) {
	out.Push(battle.UpdatePassiveState{Target: owner, Kind: kind, Msg: decrement})
}

func selfAdvance(owner battle.LtID, kind battle.PassiveKind, out *battle.Queue) {
	out.Push(battle.UpdatePassiveState{Target: owner, Kind: kind, Msg: advance})
}

// Burn deals BurnRate of max HP as fixed damage at each owner turn start,
// then counts one turn down. In real time it burns as each turn runs out.
type Burn struct {
	turns
}

const (
	KindBurn battle.PassiveKind = "burn"
	BurnRate                    = 0.03
)

// NewBurn returns a Burn lasting n turns.
//
// Precondition: n >= 1.
func NewBurn(n int) *Burn {
	if n < 1 {
		panic(fmt.Sprintf("passives: burn turns %d < 1", n))
	}
	return &Burn{turns{left: n}}
}

func (b *Burn) Kind() battle.PassiveKind { return KindBurn }
func (b *Burn) Name() string { return "Burn" }
func (b *Burn) Display() string { return fmt.Sprintf("Burn (%d)", b.left) }
func (b *Burn) Turns() int { return b.left }
func (b *Burn) Merge(other battle.Passive) { b.merge(other.(*Burn).turns) }
func (b *Burn) Update(msg battle.PassiveMessage) { b.update(msg) }
func (b *Burn) Status(*attr.StatusBuilder) {}
func (b *Burn) Clone() battle.Passive { c := *b; return &c }

func (b *Burn) TriggerTurnStart(owner battle.LtID, s *battle.State, out *battle.Queue) {
	out.Push(battle.NewFixedDamage(s, owner, BurnRate))
	selfDecrement(owner, KindBurn, out)
}

func (b *Burn) Tick(owner battle.LtID, s *battle.State, out *battle.Queue) {
	if b.turnEnds() {
		out.Push(battle.NewFixedDamage(s, owner, BurnRate))
	}
	selfAdvance(owner, KindBurn, out)
}

// AttackUp raises magic and physics attack by Mag for a number of turns.
type AttackUp struct {
	turns
	mag float64
}

const KindAttackUp battle.PassiveKind = "attack_up"

// NewAttackUp returns an AttackUp of mag lasting n turns.
func NewAttackUp(n int, mag float64) *AttackUp {
	if n < 1 || mag < 0 {
		panic(fmt.Sprintf("passives: attack_up turns=%d mag=%v", n, mag))
	}
	return &AttackUp{turns: turns{left: n}, mag: mag}
}

func (a *AttackUp) Kind() battle.PassiveKind { return KindAttackUp }
func (a *AttackUp) Name() string { return "Attack Up" }
func (a *AttackUp) Display() string { return fmt.Sprintf("ATK +%.0f%% (%d)", a.mag*100, a.left) }
func (a *AttackUp) Update(msg battle.PassiveMessage) { a.update(msg) }
func (a *AttackUp) Clone() battle.Passive { c := *a; return &c }

// Merge keeps the stronger magnitude and the longer duration.
func (a *AttackUp) Merge(other battle.Passive) {
	o := other.(*AttackUp)
	a.merge(o.turns)
	if o.mag > a.mag {
		a.mag = o.mag
	}
}

func (a *AttackUp) Status(b *attr.StatusBuilder) {
	b.MagicAtkBuff(a.mag)
	b.PhysicsAtkBuff(a.mag)
}

func (a *AttackUp) TriggerTurnStart(owner battle.LtID, _ *battle.State, out *battle.Queue) {
	selfDecrement(owner, KindAttackUp, out)
}

func (a *AttackUp) Tick(owner battle.LtID, _ *battle.State, out *battle.Queue) {
	selfAdvance(owner, KindAttackUp, out)
}

// Weaken cuts the owner's magic and physics attack.
type Weaken struct {
	turns
	cut float64
}

const KindWeaken battle.PassiveKind = "weaken"

func NewWeaken(n int, cut float64) *Weaken {
	if n < 1 || cut < 0 || cut > 1 {
		panic(fmt.Sprintf("passives: weaken turns=%d cut=%v", n, cut))
	}
	return &Weaken{turns: turns{left: n}, cut: cut}
}

func (w *Weaken) Kind() battle.PassiveKind { return KindWeaken }
func (w *Weaken) Name() string { return "Weaken" }
func (w *Weaken) Display() string { return fmt.Sprintf("ATK -%.0f%% (%d)", w.cut*100, w.left) }
func (w *Weaken) Update(msg battle.PassiveMessage) { w.update(msg) }
func (w *Weaken) Clone() battle.Passive { c := *w; return &c }

func (w *Weaken) Merge(other battle.Passive) {
	o := other.(*Weaken)
	w.merge(o.turns)
	if o.cut > w.cut {
		w.cut = o.cut
	}
}

func (w *Weaken) Status(b *attr.StatusBuilder) {
	b.MagicAtkDebuff(1 - w.cut)
	b.PhysicsAtkDebuff(1 - w.cut)
}

func (w *Weaken) TriggerTurnStart(owner battle.LtID, _ *battle.State, out *battle.Queue) {
	selfDecrement(owner, KindWeaken, out)
}

func (w *Weaken) Tick(owner battle.LtID, _ *battle.State, out *battle.Queue) {
	selfAdvance(owner, KindWeaken, out)
}

// Shield cuts the damage the owner receives of both magic and physics types.
type Shield struct {
	turns
	cut float64
}

const KindShield battle.PassiveKind = "shield"

func NewShield(n int, cut float64) *Shield {
	if n < 1 || cut < 0 || cut > 1 {
		panic(fmt.Sprintf("passives: shield turns=%d cut=%v", n, cut))
	}
	return &Shield{turns: turns{left: n}, cut: cut}
}

func (sh *Shield) Kind() battle.PassiveKind { return KindShield }
func (sh *Shield) Name() string { return "Shield" }
func (sh *Shield) Display() string { return fmt.Sprintf("Shield %.0f%% (%d)", sh.cut*100, sh.left) }
func (sh *Shield) Update(msg battle.PassiveMessage) { sh.update(msg) }
func (sh *Shield) Clone() battle.Passive { c := *sh; return &c }

func (sh *Shield) Merge(other battle.Passive) {
	o := other.(*Shield)
	sh.merge(o.turns)
	if o.cut > sh.cut {
		sh.cut = o.cut
	}
}

func (sh *Shield) Status(b *attr.StatusBuilder) {
	b.RecvMagicDebuff(1 - sh.cut)
	b.RecvPhysicsDebuff(1 - sh.cut)
}

func (sh *Shield) TriggerTurnStart(owner battle.LtID, _ *battle.State, out *battle.Queue) {
	selfDecrement(owner, KindShield, out)
}

func (sh *Shield) Tick(owner battle.LtID, _ *battle.State, out *battle.Queue) {
	selfAdvance(owner, KindShield, out)
}
