package battle

// Cost is what starting a skill spends.
type Cost struct {
	MP float64
	SP float64
}

// SkillInfo is the static description of a skill.
type SkillInfo struct {
	ID          string
	Name        string
	Description string
	Cost        Cost
	Cooldown    float64
	Hate        float64
}

// UseableKind selects how CustomUseable overrides default gating.
type UseableKind int

const (
	// UseableNormal applies cooldown and cost gating.
	UseableNormal UseableKind = iota
	// UseableStrong overrides every other check with Useable.Strong.
	UseableStrong
	UseableIgnoreNeedMP
	UseableIgnoreCooldown
)

// Useable is the result of Skill.CustomUseable.
type Useable struct {
	Kind   UseableKind
	Strong bool
}

func Normal() Useable { return Useable{Kind: UseableNormal} }
func Strong(ok bool) Useable { return Useable{Kind: UseableStrong, Strong: ok} }
func IgnoreNeedMP() Useable { return Useable{Kind: UseableIgnoreNeedMP} }
func IgnoreCooldown() Useable { return Useable{Kind: UseableIgnoreCooldown} }

// Phase distinguishes the chanting and acting parts of a phased skill.
type Phase int

const (
	Chanting Phase = iota
	Acting
)

// String returns "chanting" or "acting".
func (p Phase) String() string {
	if p == Acting {
		return "acting"
	}
	return "chanting"
}

// Progress reports how far a running skill has got. Chunk is the progress
// within the contiguous run of same-phase units; Overall spans the whole skill.
type Progress struct {
	Phase   Phase
	Chunk   float64
	Overall float64
}

// SkillMessage is the state update carried by UpdateSkillState. Reset
// restarts the skill from zero progress.
type SkillMessage struct {
	Step        int
	AddProgress float64
	Reset       bool
}

// SkillResult is what an atomic skill call reports back to the core, which
// turns it into ConsumeMp, ConsumeSp, AddHate and AddSkillCooldown effects.
type SkillResult struct {
	ConsumeMP float64
	ConsumeSP float64
	Hate      float64
	Cooldown  float64
}

// Skill is an active ability. Skill code reads the State and pushes Effects;
// its own persistent state changes only through Start, End and Update, which
// Accept calls.
type Skill interface {
	Info() SkillInfo
	Start()
	End()
	// Tick advances a running skill by one real-time tick.
	Tick(id SkillID, s *State, out *Queue)
	Update(msg SkillMessage)
	Cost(id SkillID, s *State) Cost
	CustomUseable(id SkillID, s *State) Useable
	// CurrentProgress reports false when the skill is not running.
	CurrentProgress() (Progress, bool)
}

// AtomicSkill resolves entirely when used. The core calls Call while
// draining the UseSkill effect.
type AtomicSkill interface {
	Skill
	Call(id SkillID, s *State, out *Queue) SkillResult
}

// SkillFactory creates a fresh skill instance; every State gets its own.
type SkillFactory func() Skill

// ButtleSkill wraps a learned Skill with its runtime id and cooldown.
type ButtleSkill struct {
	id       SkillID
	skill    Skill
	cooldown float64
}

func (b *ButtleSkill) ID() SkillID { return b.id }
func (b *ButtleSkill) Skill() Skill { return b.skill }
func (b *ButtleSkill) Cooldown() float64 { return b.cooldown }

// Useable reports whether the skill may be started now. A dead or busy owner
// can never start a skill; past that, CustomUseable decides how cooldown and
// cost are gated.
func (b *ButtleSkill) Useable(s *State) bool {
	owner := s.Char(b.id.Char)
	if owner.IsDead() {
		return false
	}
	if _, busy := owner.Using(); busy {
		return false
	}
	u := b.skill.CustomUseable(b.id, s)
	if u.Kind == UseableStrong {
		return u.Strong
	}
	cost := b.skill.Cost(b.id, s)
	if u.Kind != UseableIgnoreCooldown && b.cooldown > 0 {
		return false
	}
	if u.Kind != UseableIgnoreNeedMP && owner.MP() < cost.MP {
		return false
	}
	return s.SP() >= cost.SP
}
