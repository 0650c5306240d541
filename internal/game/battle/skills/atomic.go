// Package skills implements atomic and phased player skills and the
// built-in skill set.
package skills

import (
	"github.com/cory-johannsen/wavebattle/internal/game/battle"
)

// Action emits the effects of a skill or of one unit of a phased skill. It
// reads s and pushes onto out; it never mutates either the State or the skill.
type Action func(id battle.SkillID, s *battle.State, out *battle.Queue)

// UseableFunc overrides the default useability gating.
type UseableFunc func(id battle.SkillID, s *battle.State) battle.Useable

// Atomic resolves completely within the drain of its UseSkill effect.
type Atomic struct {
	info    battle.SkillInfo
	action  Action
	useable UseableFunc
	running bool
}

// AtomicOption configures an Atomic.
type AtomicOption func(*Atomic)

// WithUseable overrides the default useability gating.
func WithUseable(f UseableFunc) AtomicOption { return func(a *Atomic) { a.useable = f } }

// NewAtomic returns an atomic skill that runs action when used and reports
// info's cost, hate and cooldown back to the core.
func NewAtomic(info battle.SkillInfo, action Action, opts ...AtomicOption) *Atomic {
	a := &Atomic{info: info, action: action}
	for _, o := range opts {
		o(a)
	}
	return a
}

func (a *Atomic) Info() battle.SkillInfo { return a.info }
func (a *Atomic) Start() { a.running = true }
func (a *Atomic) End() { a.running = false }
func (a *Atomic) Tick(battle.SkillID, *battle.State, *battle.Queue) {}
func (a *Atomic) Update(battle.SkillMessage) {}
func (a *Atomic) Cost(battle.SkillID, *battle.State) battle.Cost { return a.info.Cost }

// CurrentProgress always reports false: an atomic skill is never observed
// mid-flight between ticks.
func (a *Atomic) CurrentProgress() (battle.Progress, bool) { return battle.Progress{}, false }

func (a *Atomic) CustomUseable(id battle.SkillID, s *battle.State) battle.Useable {
	if a.useable == nil {
		return battle.Normal()
	}
	return a.useable(id, s)
}

// Call runs the action and reports the cost to settle.
func (a *Atomic) Call(id battle.SkillID, s *battle.State, out *battle.Queue) battle.SkillResult {
	if a.action != nil {
		a.action(id, s, out)
	}
	return battle.SkillResult{
		ConsumeMP: a.info.Cost.MP,
		ConsumeSP: a.info.Cost.SP,
		Hate:      a.info.Hate,
		Cooldown:  a.info.Cooldown,
	}
}
