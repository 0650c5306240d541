package passives

import (
	"fmt"

	"github.com/cory-johannsen/wavebattle/internal/game/attr"
	"github.com/cory-johannsen/wavebattle/internal/game/battle"
)

var consume = battle.PassiveMessage{Op: battle.PassiveConsumeCharge, N: 1}

// Counter strikes back at whoever damages the owner with physics damage of
// multiplier mag. Each strike spends a charge; charges refill at every owner
// turn start, or every interval ticks in real time. The charge budget is what
// keeps two Counters facing each other from trading blows forever.
type Counter struct {
	charges  int
	max      int
	mag      float64
	interval int
	timer    int
}

const KindCounter battle.PassiveKind = "counter"

// NewCounter returns a Counter.
//
// Precondition: charges >= 1, mag >= 0, interval >= 1.
func NewCounter(charges int, mag float64, interval int) *Counter {
	if charges < 1 || mag < 0 || interval < 1 {
		panic(fmt.Sprintf("passives: counter charges=%d mag=%v interval=%d", charges, mag, interval))
	}
	return &Counter{charges: charges, max: charges, mag: mag, interval: interval}
}

func (c *Counter) Kind() battle.PassiveKind { return KindCounter }
func (c *Counter) Name() string { return "Counter" }
func (c *Counter) Display() string { return fmt.Sprintf("Counter %d/%d", c.charges, c.max) }
func (c *Counter) Charges() int { return c.charges }
func (c *Counter) ShouldTrash() bool { return false }
func (c *Counter) Status(*attr.StatusBuilder) {}
func (c *Counter) Clone() battle.Passive { d := *c; return &d }

func (c *Counter) Merge(other battle.Passive) {
	o := other.(*Counter)
	if o.max > c.max {
		c.max = o.max
	}
	if o.mag > c.mag {
		c.mag = o.mag
	}
	c.charges = c.max
}

func (c *Counter) Update(msg battle.PassiveMessage) {
	switch msg.Op {
	case battle.PassiveConsumeCharge:
		c.charges -= int(msg.N)
		if c.charges < 0 {
			c.charges = 0
		}
	case battle.PassiveResetCharges:
		c.charges = c.max
	case battle.PassiveAdvanceTimer:
		c.timer += int(msg.N)
		if c.timer >= c.interval {
			c.timer = 0
			c.charges = c.max
		}
	}
}

func (c *Counter) TriggerRecvDamage(owner battle.LtID, dmg battle.Damage, s *battle.State, out *battle.Queue) {
	if c.charges <= 0 || !dmg.HasCauser || dmg.Causer == owner {
		return
	}
	if s.Lt(dmg.Causer).IsDead() {
		return
	}
	out.Push(battle.NewPhysicsDamage(s, owner, dmg.Causer, c.mag))
	out.Push(battle.UpdatePassiveState{Target: owner, Kind: KindCounter, Msg: consume})
}

func (c *Counter) TriggerTurnStart(owner battle.LtID, _ *battle.State, out *battle.Queue) {
	out.Push(battle.UpdatePassiveState{
		Target: owner,
		Kind:   KindCounter,
		Msg:    battle.PassiveMessage{Op: battle.PassiveResetCharges},
	})
}

func (c *Counter) Tick(owner battle.LtID, _ *battle.State, out *battle.Queue) {
	out.Push(battle.UpdatePassiveState{Target: owner, Kind: KindCounter, Msg: advance})
}

// ChantBreak sits on a character and resets its chant whenever a hit lands
// while the running skill is in a chanting unit. Each break spends a charge;
// the passive falls off when none remain. The MP already paid is not refunded.
type ChantBreak struct {
	charges int
}

const KindChantBreak battle.PassiveKind = "chant_break"

func NewChantBreak(charges int) *ChantBreak {
	if charges < 1 {
		panic(fmt.Sprintf("passives: chant_break charges %d < 1", charges))
	}
	return &ChantBreak{charges: charges}
}

func (c *ChantBreak) Kind() battle.PassiveKind { return KindChantBreak }
func (c *ChantBreak) Name() string { return "Chant Break" }
func (c *ChantBreak) Display() string { return fmt.Sprintf("Chant Break (%d)", c.charges) }
func (c *ChantBreak) ShouldTrash() bool { return c.charges <= 0 }
func (c *ChantBreak) Status(*attr.StatusBuilder) {}
func (c *ChantBreak) Clone() battle.Passive { d := *c; return &d }
func (c *ChantBreak) Merge(other battle.Passive) { c.charges += other.(*ChantBreak).charges }

func (c *ChantBreak) Update(msg battle.PassiveMessage) {
	if msg.Op == battle.PassiveConsumeCharge {
		c.charges -= int(msg.N)
	}
}

func (c *ChantBreak) TriggerRecvDamage(owner battle.LtID, _ battle.Damage, s *battle.State, out *battle.Queue) {
	if !owner.IsChar() {
		return
	}
	bs, ok := s.Char(owner.Char).Using()
	if !ok {
		return
	}
	p, running := bs.Skill().CurrentProgress()
	if !running || p.Phase != battle.Chanting {
		return
	}
	out.Push(battle.UpdateSkillState{Skill: bs.ID(), Msg: battle.SkillMessage{Reset: true}})
	out.Push(battle.UpdatePassiveState{Target: owner, Kind: KindChantBreak, Msg: consume})
}
