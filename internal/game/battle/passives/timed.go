package passives

import (
	"fmt"

	"github.com/cory-johannsen/wavebattle/internal/game/attr"
	"github.com/cory-johannsen/wavebattle/internal/game/battle"
)

var advance = battle.PassiveMessage{Op: battle.PassiveAdvanceTimer, N: 1}

// Poison is the real-time damage-over-time passive. Every interval ticks it
// deals rate of max HP as fixed damage; it expires after its remaining ticks
// run out.
type Poison struct {
	rate     float64
	interval int
	timer    int
	left     int
}

const KindPoison battle.PassiveKind = "poison"

// NewPoison returns a Poison.
//
// Precondition: rate >= 0, interval >= 1, ticks >= 1.
func NewPoison(rate float64, interval, ticks int) *Poison {
	if rate < 0 || interval < 1 || ticks < 1 {
		panic(fmt.Sprintf("passives: poison rate=%v interval=%d ticks=%d", rate, interval, ticks))
	}
	return &Poison{rate: rate, interval: interval, left: ticks}
}

func (p *Poison) Kind() battle.PassiveKind { return KindPoison }
func (p *Poison) Name() string { return "Poison" }
func (p *Poison) Display() string { return fmt.Sprintf("Poison (%.1fs)", float64(p.left)/attr.TicksPerSecond) }
func (p *Poison) ShouldTrash() bool { return p.left <= 0 }
func (p *Poison) Status(*attr.StatusBuilder) {}
func (p *Poison) Clone() battle.Passive { c := *p; return &c }

// Merge resets the duration to the longer one; the stronger rate wins.
func (p *Poison) Merge(other battle.Passive) {
	o := other.(*Poison)
	if o.left > p.left {
		p.left = o.left
	}
	if o.rate > p.rate {
		p.rate = o.rate
	}
}

func (p *Poison) Update(msg battle.PassiveMessage) {
	if msg.Op != battle.PassiveAdvanceTimer {
		return
	}
	n := int(msg.N)
	p.left -= n
	p.timer = (p.timer + n) % p.interval
}

func (p *Poison) Tick(owner battle.LtID, s *battle.State, out *battle.Queue) {
	if p.timer+1 == p.interval {
		out.Push(battle.NewFixedDamage(s, owner, p.rate))
	}
	out.Push(battle.UpdatePassiveState{Target: owner, Kind: KindPoison, Msg: advance})
}

// Regen heals rate of max HP at each owner turn start in turn-based battles,
// or rate per second spread over ticks in real-time ones. Its duration is in
// turns either way.
type Regen struct {
	turns
	rate float64
}

const KindRegen battle.PassiveKind = "regen"

func NewRegen(rate float64, duration int) *Regen {
	if rate < 0 || duration < 1 {
		panic(fmt.Sprintf("passives: regen rate=%v duration=%d", rate, duration))
	}
	return &Regen{turns: turns{left: duration}, rate: rate}
}

func (r *Regen) Kind() battle.PassiveKind { return KindRegen }
func (r *Regen) Name() string { return "Regen" }
func (r *Regen) Display() string { return fmt.Sprintf("Regen %.0f%% (%d)", r.rate*100, r.left) }
func (r *Regen) Turns() int { return r.left }
func (r *Regen) Status(*attr.StatusBuilder) {}
func (r *Regen) Clone() battle.Passive { c := *r; return &c }
func (r *Regen) Update(msg battle.PassiveMessage) { r.update(msg) }

func (r *Regen) Merge(other battle.Passive) {
	o := other.(*Regen)
	r.left += o.left
	if o.rate > r.rate {
		r.rate = o.rate
	}
}

func (r *Regen) heal(owner battle.LtID, s *battle.State, frac float64, out *battle.Queue) {
	out.Push(battle.HealHp{Target: owner, N: s.Lt(owner).MaxHP() * frac})
}

func (r *Regen) TriggerTurnStart(owner battle.LtID, s *battle.State, out *battle.Queue) {
	r.heal(owner, s, r.rate, out)
	selfDecrement(owner, KindRegen, out)
}

func (r *Regen) Tick(owner battle.LtID, s *battle.State, out *battle.Queue) {
	r.heal(owner, s, r.rate/attr.TicksPerSecond, out)
	selfAdvance(owner, KindRegen, out)
}
