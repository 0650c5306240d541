package scripting

import (
	"fmt"

	"github.com/cory-johannsen/wavebattle/internal/game/attr"
	"github.com/cory-johannsen/wavebattle/internal/game/battle"
)

// KindPrefix marks script passives in content files and passive kinds.
const KindPrefix = "lua:"

// Passive is a battle passive whose hooks are Lua functions. Its own state is
// a turn count and a charge count, both changed only through
// UpdatePassiveState messages that hooks request with decrement and consume
// directives. A script reacting to damage with damage must spend charges to
// stay bounded.
type Passive struct {
	m          *Manager
	name       string
	turns      int
	permanent  bool
	charges    int
	maxCharges int
}

// NewPassive returns the script passive name. turns == 0 makes it permanent.
//
// Postcondition: Returns ErrUnknownScript when name defines no hook.
func (m *Manager) NewPassive(name string, turns, charges int) (*Passive, error) {
	if turns < 0 || charges < 0 {
		return nil, fmt.Errorf("scripting: passive %q: negative turns or charges", name)
	}
	if !m.HasHook(name+HookTurnStart) && !m.HasHook(name+HookTick) && !m.HasHook(name+HookRecvDamage) {
		return nil, fmt.Errorf("%q: %w", name, ErrUnknownScript)
	}
	return &Passive{m: m, name: name, turns: turns, permanent: turns == 0, charges: charges, maxCharges: charges}, nil
}

func (p *Passive) Kind() battle.PassiveKind { return battle.PassiveKind(KindPrefix + p.name) }
func (p *Passive) Name() string { return p.name }
func (p *Passive) Turns() int { return p.turns }
func (p *Passive) Charges() int { return p.charges }
func (p *Passive) ShouldTrash() bool { return !p.permanent && p.turns <= 0 }
func (p *Passive) Status(*attr.StatusBuilder) {}
func (p *Passive) Clone() battle.Passive { c := *p; return &c }

func (p *Passive) Display() string {
	if p.permanent {
		return p.name
	}
	return fmt.Sprintf("%s (%d)", p.name, p.turns)
}

// Merge refreshes the duration and charges.
func (p *Passive) Merge(other battle.Passive) {
	o := other.(*Passive)
	p.permanent = p.permanent || o.permanent
	if o.turns > p.turns {
		p.turns = o.turns
	}
	if o.maxCharges > p.maxCharges {
		p.maxCharges = o.maxCharges
	}
	p.charges = p.maxCharges
}

func (p *Passive) Update(msg battle.PassiveMessage) {
	switch msg.Op {
	case battle.PassiveDecrementTurns:
		p.turns -= int(msg.N)
	case battle.PassiveConsumeCharge:
		p.charges = max(p.charges-int(msg.N), 0)
	case battle.PassiveResetCharges:
		p.charges = p.maxCharges
	}
}

func (p *Passive) TriggerTurnStart(owner battle.LtID, s *battle.State, out *battle.Queue) {
	p.run(p.name+HookTurnStart, owner, battle.Damage{}, s, out)
}

func (p *Passive) Tick(owner battle.LtID, s *battle.State, out *battle.Queue) {
	p.run(p.name+HookTick, owner, battle.Damage{}, s, out)
}

func (p *Passive) TriggerRecvDamage(owner battle.LtID, dmg battle.Damage, s *battle.State, out *battle.Queue) {
	p.run(p.name+HookRecvDamage, owner, dmg, s, out)
}

func (p *Passive) run(hook string, owner battle.LtID, dmg battle.Damage, s *battle.State, out *battle.Queue) {
	lt := s.Lt(owner)
	ctx := HookContext{
		Owner:     owner.String(),
		HP:        lt.HP(),
		MaxHP:     lt.MaxHP(),
		Turns:     p.turns,
		Charges:   p.charges,
		Damage:    dmg.Dmg,
		HasCauser: dmg.HasCauser,
	}
	if dmg.Dmg > 0 || dmg.HasCauser {
		ctx.DamageType = dmg.Type.String()
	}
	for _, d := range p.m.Invoke(hook, ctx) {
		target := owner
		if d.ToCauser {
			if !dmg.HasCauser || s.Lt(dmg.Causer).IsDead() {
				continue
			}
			target = dmg.Causer
		}
		switch d.Kind {
		case DirectiveDamage:
			out.Push(battle.NewFixedDamage(s, target, d.Mag).WithCauser(owner))
		case DirectiveHeal:
			out.Push(battle.HealHp{Target: target, N: s.Lt(target).MaxHP() * d.Mag})
		case DirectiveDecrement:
			out.Push(battle.UpdatePassiveState{Target: owner, Kind: p.Kind(),
				Msg: battle.PassiveMessage{Op: battle.PassiveDecrementTurns, N: d.Mag}})
		case DirectiveConsume:
			out.Push(battle.UpdatePassiveState{Target: owner, Kind: p.Kind(),
				Msg: battle.PassiveMessage{Op: battle.PassiveConsumeCharge, N: d.Mag}})
		}
	}
}
