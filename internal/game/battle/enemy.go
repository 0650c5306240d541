package battle

import (
	"fmt"
	"sort"

	"github.com/cory-johannsen/wavebattle/internal/game/attr"
	"github.com/cory-johannsen/wavebattle/internal/game/rng"
)

// TargetKind selects who an enemy action hits.
type TargetKind int

const (
	TargetSelf TargetKind = iota
	// TargetSingle hits the living character with the highest hate.
	TargetSingle
	// TargetMulti hits the N highest-hate living characters.
	TargetMulti
	TargetAll
)

// TargetSelector pairs a TargetKind with its count for TargetMulti.
type TargetSelector struct {
	Kind TargetKind
	N    int
}

// EnemyAction is the data of one enemy skill step, interpreted at execution.
// The set is closed: DamageAction and PassiveAction.
type EnemyAction interface {
	isEnemyAction()
}

// DamageAction deals Count hits of Type damage with multiplier Mag. For
// DamageFixed, Mag is the fraction of the target's max HP.
type DamageAction struct {
	Type  DamageType
	Mag   float64
	Count int
}

// PassiveAction adds a passive to each target.
type PassiveAction struct {
	Passive Passive
}

func (DamageAction) isEnemyAction() {}
func (PassiveAction) isEnemyAction() {}

// EnemyStep is one (target selector, action) pair.
type EnemyStep struct {
	Target TargetSelector
	Action EnemyAction
}

// EnemySkill is a data-driven enemy action with startup and recovery frames.
type EnemySkill struct {
	ID             int
	Name           string
	NeedMP         float64
	StartUpFrames  int
	RecoveryFrames int
	Actions        []EnemyStep
}

// TotalFrames returns StartUpFrames + RecoveryFrames.
func (e EnemySkill) TotalFrames() int { return e.StartUpFrames + e.RecoveryFrames }

// Condition is where the front skill of a runner is.
type Condition int

const (
	StartUp Condition = iota
	Recovery
)

// EnemySkillRunner schedules an enemy's skills.
//
// Invariant: len(queue) >= NumViewSkills after construction and after every
// accepted AdvanceEnemySkill.
type EnemySkillRunner struct {
	skills   []EnemySkill
	patterns [][]int
	queue    []int
	frame    int
}

func newEnemySkillRunner(skills []EnemySkill, patterns [][]int, src rng.Source) *EnemySkillRunner {
	r := &EnemySkillRunner{skills: skills, patterns: patterns}
	r.queue = append(r.queue, r.drawRefill(src, 0)...)
	return r
}

// drawRefill draws whole patterns until the queue, after dropping pops
// entries from its front, would hold at least NumViewSkills entries.
func (r *EnemySkillRunner) drawRefill(src rng.Source, pops int) []int {
	var refill []int
	n := len(r.queue) - pops
	for n < NumViewSkills {
		p := r.patterns[rng.Pick(src, len(r.patterns))]
		refill = append(refill, p...)
		n += len(p)
	}
	return refill
}

// advance steps the runner; it is only called from Accept.
func (r *EnemySkillRunner) advance(frames int, refill []int) {
	r.frame += frames
	if r.frame < r.Current().TotalFrames() {
		return
	}
	r.queue = append(r.queue[:0], r.queue[1:]...)
	r.queue = append(r.queue, refill...)
	r.frame = 0
	if len(r.queue) < NumViewSkills {
		panic(fmt.Sprintf("battle: enemy runner queue underfilled (%d)", len(r.queue)))
	}
}

// Current returns the front skill.
func (r *EnemySkillRunner) Current() EnemySkill { return r.skills[r.queue[0]] }

// CurrentIndex returns the front skill index.
func (r *EnemySkillRunner) CurrentIndex() int { return r.queue[0] }

// Frame returns the ticks elapsed since the front skill was promoted.
func (r *EnemySkillRunner) Frame() int { return r.frame }

// Condition reports StartUp before the front skill fires and Recovery after.
func (r *EnemySkillRunner) Condition() Condition {
	if r.frame < r.Current().StartUpFrames {
		return StartUp
	}
	return Recovery
}

// View returns the next NumViewSkills skill indices, front first.
func (r *EnemySkillRunner) View() []int {
	out := make([]int, NumViewSkills)
	copy(out, r.queue[:NumViewSkills])
	return out
}

// Skills returns the skill table. Callers must not mutate it.
func (r *EnemySkillRunner) Skills() []EnemySkill { return r.skills }

func (r *EnemySkillRunner) clone() *EnemySkillRunner {
	c := *r
	c.queue = append([]int(nil), r.queue...)
	return &c
}

// EnemyArgs describes one enemy at construction.
type EnemyArgs struct {
	StaticID  string
	Name      string
	Level     int
	Potential attr.Potential
	Skills    []EnemySkill
	// Patterns are drawn uniformly at random to refill the runner.
	Patterns [][]int
	Passives []Passive
}

func (a EnemyArgs) validate() error {
	if a.Level < 1 {
		return ErrInvalidLevel
	}
	if len(a.Skills) == 0 {
		return ErrNoEnemySkills
	}
	for i, sk := range a.Skills {
		if sk.StartUpFrames < 1 || sk.RecoveryFrames < 0 {
			return fmt.Errorf("skill %d %q: %w", i, sk.Name, ErrInvalidFrames)
		}
	}
	if len(a.Patterns) == 0 {
		return ErrEmptyPattern
	}
	for i, p := range a.Patterns {
		if len(p) == 0 {
			return fmt.Errorf("pattern %d: %w", i, ErrEmptyPattern)
		}
		for _, idx := range p {
			if idx < 0 || idx >= len(a.Skills) {
				return fmt.Errorf("pattern %d index %d: %w", i, idx, ErrUnknownEnemySkill)
			}
		}
	}
	return nil
}

// Enemy is a wave member. It is live only while its wave is current.
type Enemy struct {
	LtCommon
	id       EnemyID
	staticID string
	name     string
	runner   *EnemySkillRunner
}

func newEnemy(id EnemyID, a EnemyArgs, src rng.Source) *Enemy {
	e := &Enemy{
		LtCommon: newLtCommon(a.Potential, a.Level, nil),
		id:       id,
		staticID: a.StaticID,
		name:     a.Name,
	}
	skills := make([]EnemySkill, len(a.Skills))
	copy(skills, a.Skills)
	for i := range skills {
		skills[i].ID = i
	}
	e.runner = newEnemySkillRunner(skills, a.Patterns, src)
	for _, p := range a.Passives {
		e.passives.Add(p.Clone())
	}
	return e
}

func (e *Enemy) ID() EnemyID { return e.id }
func (e *Enemy) LtID() LtID { return EnemyLt(e.id) }
func (e *Enemy) StaticID() string { return e.staticID }
func (e *Enemy) Name() string { return e.name }

// Runner returns the skill runner. Callers must not mutate it.
func (e *Enemy) Runner() *EnemySkillRunner { return e.runner }

// tick emits the per-tick effects of a living enemy in real-time mode.
func (e *Enemy) tick(s *State, src rng.Source, out *Queue) {
	lt := e.LtID()
	out.Push(HealMp{Target: lt, N: e.MPHealPerTick()})
	e.passives.tick(lt, s, out)

	next := e.runner.frame + 1
	sk := e.runner.Current()
	if next == sk.StartUpFrames {
		e.fire(s, out)
	}
	var refill []int
	if next >= sk.TotalFrames() {
		refill = e.runner.drawRefill(src, 1)
	}
	out.Push(AdvanceEnemySkill{Enemy: e.id, Frames: 1, Refill: refill})
}

// turnStart emits the enemy-side turn start effects.
func (e *Enemy) turnStart(s *State, out *Queue) {
	lt := e.LtID()
	out.Push(HealMp{Target: lt, N: TurnStartHealMPNum})
	e.passives.triggerTurnStart(lt, s, out)
}

// act runs the front skill to completion in turn-based mode.
func (e *Enemy) act(s *State, src rng.Source, out *Queue) {
	e.fire(s, out)
	remaining := e.runner.Current().TotalFrames() - e.runner.frame
	out.Push(AdvanceEnemySkill{Enemy: e.id, Frames: remaining, Refill: e.runner.drawRefill(src, 1)})
}

// fire emits the front skill's actions. A skill the enemy cannot pay for fizzles.
func (e *Enemy) fire(s *State, out *Queue) {
	sk := e.runner.Current()
	if e.MP() < sk.NeedMP {
		return
	}
	out.Push(EnemyUseSkill{Enemy: e.id, Skill: sk.ID, NeedMP: sk.NeedMP})
	self := e.LtID()
	for _, step := range sk.Actions {
		targets := s.resolveTargets(self, step.Target)
		switch a := step.Action.(type) {
		case DamageAction:
			for _, t := range targets {
				for i := 0; i < a.Count; i++ {
					switch a.Type {
					case DamageMagic:
						out.Push(NewMagicDamage(s, self, t, a.Mag))
					case DamagePhysics:
						out.Push(NewPhysicsDamage(s, self, t, a.Mag))
					case DamageFixed:
						out.Push(NewFixedDamage(s, t, a.Mag).WithCauser(self))
					}
				}
			}
		case PassiveAction:
			for _, t := range targets {
				out.Push(AddPassive{Target: t, Passive: a.Passive})
			}
		}
	}
}

// resolveTargets maps a selector to living targets at emission time.
// Hate ties resolve to the lower slot.
func (s *State) resolveTargets(self LtID, sel TargetSelector) []LtID {
	switch sel.Kind {
	case TargetSelf:
		return []LtID{self}
	case TargetAll:
		var out []LtID
		for _, c := range s.LivingChars() {
			out = append(out, c.LtID())
		}
		return out
	}
	living := s.LivingChars()
	sort.SliceStable(living, func(i, j int) bool { return living[i].hate > living[j].hate })
	n := 1
	if sel.Kind == TargetMulti {
		n = sel.N
	}
	if n > len(living) {
		n = len(living)
	}
	out := make([]LtID, 0, n)
	for _, c := range living[:n] {
		out = append(out, c.LtID())
	}
	return out
}
