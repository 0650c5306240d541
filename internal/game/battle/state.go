package battle

import (
	"fmt"

	"github.com/cory-johannsen/wavebattle/internal/game/attr"
	"github.com/cory-johannsen/wavebattle/internal/game/rng"
)

// Args describes a battle at construction.
type Args struct {
	Mode  Mode
	Chars []CharArgs
	// Dungeon lists the waves in fighting order.
	Dungeon [][]EnemyArgs
}

// Validate checks every construction rule except the Potential invariant,
// which is a programming error and panics in NewState.
func (a Args) Validate() error {
	if len(a.Chars) == 0 {
		return ErrEmptyTeam
	}
	if len(a.Chars) > NumMaxCharInTeam {
		return fmt.Errorf("%d characters: %w", len(a.Chars), ErrTeamTooLarge)
	}
	seen := make(map[string]bool, len(a.Chars))
	for i, c := range a.Chars {
		if seen[c.StaticID] {
			return fmt.Errorf("char %d %q: %w", i, c.StaticID, ErrDuplicateChar)
		}
		seen[c.StaticID] = true
		if c.Level < 1 {
			return fmt.Errorf("char %d %q: %w", i, c.StaticID, ErrInvalidLevel)
		}
		if len(c.Skills) < 1 || len(c.Skills) > NumMaxLearnSkills {
			return fmt.Errorf("char %d %q has %d skills: %w", i, c.StaticID, len(c.Skills), ErrSkillCount)
		}
	}
	if len(a.Dungeon) == 0 {
		return ErrNoWaves
	}
	if len(a.Dungeon) > NumMaxWaves {
		return fmt.Errorf("%d waves: %w", len(a.Dungeon), ErrTooManyWaves)
	}
	for w, wave := range a.Dungeon {
		if len(wave) == 0 {
			return fmt.Errorf("wave %d: %w", w, ErrEmptyWave)
		}
		if len(wave) > NumMaxEnemiesInWave {
			return fmt.Errorf("wave %d has %d enemies: %w", w, len(wave), ErrWaveTooLarge)
		}
		for i, e := range wave {
			if err := e.validate(); err != nil {
				return fmt.Errorf("wave %d enemy %d %q: %w", w, i, e.StaticID, err)
			}
		}
	}
	return nil
}

// AcceptResult reports what Accept did with an effect.
type AcceptResult struct {
	// Accepted is false when the effect was skipped, e.g. because its
	// target was already dead.
	Accepted bool
	// Killed is true when a Damage moved its target from alive to dead.
	Killed bool
}

// State is the sole mutable authority of a battle. Getters return views that
// callers must not mutate; every mutation goes through Accept.
type State struct {
	mode    Mode
	chars   []*Char
	waves   [][]*Enemy
	wave    int
	side    Side
	started bool
	turn    int
	sp      attr.Percent
	ended   bool
	won     bool
}

// NewState validates args and builds the initial State. src draws the
// enemy runners' initial schedules.
func NewState(args Args, src rng.Source) (*State, error) {
	if err := args.Validate(); err != nil {
		return nil, err
	}
	s := &State{mode: args.Mode, sp: attr.NewPercent(0)}
	for i, a := range args.Chars {
		s.chars = append(s.chars, newChar(CharID{Idx: i}, a))
	}
	for w, wave := range args.Dungeon {
		var enemies []*Enemy
		for i, a := range wave {
			enemies = append(enemies, newEnemy(EnemyID{Wave: w, Idx: i}, a, src))
		}
		s.waves = append(s.waves, enemies)
	}
	return s, nil
}

func (s *State) Mode() Mode { return s.mode }
func (s *State) Chars() []*Char { return s.chars }
func (s *State) WaveCursor() int { return s.wave }
func (s *State) NumWaves() int { return len(s.waves) }
func (s *State) Side() Side { return s.side }
func (s *State) Started() bool { return s.started }
func (s *State) Turn() int { return s.turn }
func (s *State) SP() float64 { return s.sp.Of(MaxSP) }
func (s *State) Ended() bool { return s.ended }
func (s *State) Won() bool { return s.won }

// Char returns the character with id. An unknown id is a programming error.
func (s *State) Char(id CharID) *Char {
	if id.Idx < 0 || id.Idx >= len(s.chars) {
		panic(fmt.Sprintf("battle: no character %d", id.Idx))
	}
	return s.chars[id.Idx]
}

// Enemy returns the enemy with id. An unknown id is a programming error.
func (s *State) Enemy(id EnemyID) *Enemy {
	if id.Wave < 0 || id.Wave >= len(s.waves) || id.Idx < 0 || id.Idx >= len(s.waves[id.Wave]) {
		panic(fmt.Sprintf("battle: no enemy %d/%d", id.Wave, id.Idx))
	}
	return s.waves[id.Wave][id.Idx]
}

// Lt returns the common bundle of any combatant.
func (s *State) Lt(id LtID) *LtCommon {
	if id.Kind == LtChar {
		return &s.Char(id.Char).LtCommon
	}
	return &s.Enemy(id.Enemy).LtCommon
}

// Skill returns the skill with id, or false when it does not exist.
func (s *State) Skill(id SkillID) (*ButtleSkill, bool) {
	if id.Char.Idx < 0 || id.Char.Idx >= len(s.chars) {
		return nil, false
	}
	return s.chars[id.Char.Idx].Skill(id.Slot)
}

// CurrentWave returns every enemy of the active wave, dead ones included, so
// ids stay stable.
func (s *State) CurrentWave() []*Enemy { return s.waves[s.wave] }

// NextLivingChar returns the first living character at or after slot from.
func (s *State) NextLivingChar(from int) (*Char, bool) {
	for i := from; i < len(s.chars); i++ {
		if !s.chars[i].IsDead() {
			return s.chars[i], true
		}
	}
	return nil, false
}

// NextLivingEnemy returns the first living enemy of the active wave at or
// after slot from.
func (s *State) NextLivingEnemy(from int) (*Enemy, bool) {
	wave := s.waves[s.wave]
	for i := from; i < len(wave); i++ {
		if !wave[i].IsDead() {
			return wave[i], true
		}
	}
	return nil, false
}

// LivingChars returns a snapshot of the living characters in slot order.
func (s *State) LivingChars() []*Char {
	var out []*Char
	for c, ok := s.NextLivingChar(0); ok; c, ok = s.NextLivingChar(c.id.Idx + 1) {
		out = append(out, c)
	}
	return out
}

// LivingEnemies returns a snapshot of the active wave's living enemies in slot order.
func (s *State) LivingEnemies() []*Enemy {
	var out []*Enemy
	for e, ok := s.NextLivingEnemy(0); ok; e, ok = s.NextLivingEnemy(e.id.Idx + 1) {
		out = append(out, e)
	}
	return out
}

// Accept applies e. It is the only mutator of State.
func (s *State) Accept(e Effect) AcceptResult {
	if t, ok := e.target(); ok {
		if t.Kind == LtEnemy && t.Enemy.Wave != s.wave {
			_ = s.Enemy(t.Enemy) // panics on an unknown id
			return AcceptResult{}
		}
		if s.Lt(t).IsDead() {
			return AcceptResult{}
		}
	}

	switch e := e.(type) {
	case Damage:
		lt := s.Lt(e.Target)
		lt.hp.Sub(e.Dmg, lt.MaxHP())
		if lt.IsDead() {
			s.bury(e.Target)
			return AcceptResult{Accepted: true, Killed: true}
		}
	case HealHp:
		lt := s.Lt(e.Target)
		lt.hp.Add(e.N, lt.MaxHP())
	case ConsumeMp:
		lt := s.Lt(e.Target)
		lt.mp.SubFloor(e.N, lt.MaxMP())
	case HealMp:
		lt := s.Lt(e.Target)
		lt.mp.Add(e.N, lt.MaxMP())
	case ConsumeSp:
		s.sp.SubFloor(e.N, MaxSP)
	case HealSp:
		s.sp.Add(e.N, MaxSP)
	case AddHate:
		c := s.Char(e.Char)
		c.hate += e.N
		if c.hate < 0 {
			c.hate = 0
		}
	case AddSkillCooldown:
		bs := s.mustSkill(e.Skill)
		bs.cooldown += e.N
		if bs.cooldown < 0 {
			bs.cooldown = 0
		}
	case HealSkillCooldownAll:
		c := s.Char(e.Char)
		for slot, bs := range c.skills {
			if slot == c.using {
				continue
			}
			bs.cooldown -= e.N
			if bs.cooldown < 0 {
				bs.cooldown = 0
			}
		}
	case AddPassive:
		s.Lt(e.Target).passives.Add(e.Passive.Clone())
	case UpdatePassiveState:
		s.Lt(e.Target).passives.Update(e.Kind, e.Msg)
	case UpdateSkillState:
		c := s.Char(e.Skill.Char)
		bs := s.mustSkill(e.Skill)
		if c.using != e.Skill.Slot {
			return AcceptResult{}
		}
		bs.skill.Update(e.Msg)
	case UseSkill:
		c := s.Char(e.Skill.Char)
		bs := s.mustSkill(e.Skill)
		if c.using >= 0 {
			return AcceptResult{}
		}
		c.using = e.Skill.Slot
		bs.skill.Start()
	case EndSkill:
		c := s.Char(e.Skill.Char)
		bs := s.mustSkill(e.Skill)
		if c.using != e.Skill.Slot {
			return AcceptResult{}
		}
		bs.skill.End()
		c.using = -1
	case EnemyUseSkill:
		en := s.Enemy(e.Enemy)
		en.mp.SubFloor(e.NeedMP, en.MaxMP())
	case AdvanceEnemySkill:
		s.Enemy(e.Enemy).runner.advance(e.Frames, e.Refill)
	case ChangeTurn:
		s.side = e.Side
		s.started = true
		if e.Side == SidePlayer {
			s.turn++
		}
	case NextWave:
		if s.wave+1 >= len(s.waves) {
			panic("battle: NextWave past the last wave")
		}
		s.wave++
	case EndGame:
		s.ended = true
		s.won = e.Win
	default:
		panic(fmt.Sprintf("battle: unknown effect %T", e))
	}
	return AcceptResult{Accepted: true}
}

func (s *State) mustSkill(id SkillID) *ButtleSkill {
	bs, ok := s.Skill(id)
	if !ok {
		panic(fmt.Sprintf("battle: no skill %d/%d", id.Char.Idx, id.Slot))
	}
	return bs
}

// bury retires a newly dead combatant's passives and running skill.
func (s *State) bury(id LtID) {
	s.Lt(id).passives.clear()
	if id.Kind == LtChar {
		c := s.Char(id.Char)
		if bs, ok := c.Using(); ok {
			bs.skill.End()
			c.using = -1
		}
	}
}

// triggerSubEffects pushes the effects an accepted effect causes.
func (s *State) triggerSubEffects(e Effect, res AcceptResult, out *Queue) {
	switch e := e.(type) {
	case Damage:
		if res.Killed {
			return
		}
		s.Lt(e.Target).passives.triggerRecvDamage(e.Target, e, s, out)
	case UseSkill:
		bs := s.mustSkill(e.Skill)
		owner := CharLt(e.Skill.Char)
		if a, ok := bs.skill.(AtomicSkill); ok {
			r := a.Call(e.Skill, s, out)
			pushCost(owner, Cost{MP: r.ConsumeMP, SP: r.ConsumeSP}, out)
			if r.Hate != 0 {
				out.Push(AddHate{Char: e.Skill.Char, N: r.Hate})
			}
			if r.Cooldown > 0 {
				out.Push(AddSkillCooldown{Skill: e.Skill, N: r.Cooldown})
			}
			out.Push(EndSkill{Skill: e.Skill})
			return
		}
		pushCost(owner, bs.skill.Cost(e.Skill, s), out)
		if h := bs.skill.Info().Hate; h != 0 {
			out.Push(AddHate{Char: e.Skill.Char, N: h})
		}
	case EndSkill:
		bs := s.mustSkill(e.Skill)
		if _, ok := bs.skill.(AtomicSkill); ok {
			return
		}
		if cd := bs.skill.Info().Cooldown; cd > 0 {
			out.Push(AddSkillCooldown{Skill: e.Skill, N: cd})
		}
	}
}

func pushCost(owner LtID, c Cost, out *Queue) {
	if c.MP > 0 {
		out.Push(ConsumeMp{Target: owner, N: c.MP})
	}
	if c.SP > 0 {
		out.Push(ConsumeSp{N: c.SP})
	}
}

// settle decides the battle outcome after a drain. It pushes at most one of
// EndGame or NextWave and reports whether it pushed anything. A dead party
// member loses the battle even if the last enemy fell in the same drain.
func (s *State) settle(out *Queue) bool {
	if s.ended {
		return false
	}
	for _, c := range s.chars {
		if c.IsDead() {
			out.Push(EndGame{Win: false})
			return true
		}
	}
	if _, alive := s.NextLivingEnemy(0); alive {
		return false
	}
	if s.wave+1 >= len(s.waves) {
		out.Push(EndGame{Win: true})
	} else {
		out.Push(NextWave{})
	}
	return true
}
