package battle

// Effect is the only legal shape of a State mutation. The set is closed: the
// concrete types below are the complete list, and State.Accept switches over
// them.
type Effect interface {
	// target returns the combatant the effect addresses, if any. Effects
	// addressed to a dead combatant are skipped by Accept.
	target() (LtID, bool)
}

// HealHp restores HP, saturating at max.
type HealHp struct {
	Target LtID
	N      float64
}

// ConsumeMp spends MP, saturating at zero.
type ConsumeMp struct {
	Target LtID
	N      float64
}

// HealMp restores MP, saturating at max.
type HealMp struct {
	Target LtID
	N      float64
}

// ConsumeSp spends party skill points, saturating at zero.
type ConsumeSp struct {
	N float64
}

// HealSp restores party skill points, saturating at MaxSP.
type HealSp struct {
	N float64
}

// AddHate raises a character's hate, saturating at zero when N is negative.
type AddHate struct {
	Char CharID
	N    float64
}

// AddSkillCooldown raises one skill's cooldown.
type AddSkillCooldown struct {
	Skill SkillID
	N     float64
}

// HealSkillCooldownAll lowers every idle skill's cooldown on a character.
// The skill currently in use is not affected.
type HealSkillCooldownAll struct {
	Char CharID
	N    float64
}

// AddPassive adds or merges a passive on Target. Accept stores a clone, so
// the carried value is never mutated.
type AddPassive struct {
	Target  LtID
	Passive Passive
}

// UpdatePassiveState forwards a message to the named passive. A passive
// retired earlier in the same drain silently ignores it.
type UpdatePassiveState struct {
	Target LtID
	Kind   PassiveKind
	Msg    PassiveMessage
}

// UpdateSkillState forwards a progress message to the named skill.
type UpdateSkillState struct {
	Skill SkillID
	Msg   SkillMessage
}

// UseSkill starts a skill.
type UseSkill struct {
	Skill SkillID
}

// EndSkill finishes the skill currently in use.
type EndSkill struct {
	Skill SkillID
}

// EnemyUseSkill marks an enemy skill firing and spends its MP.
type EnemyUseSkill struct {
	Enemy  EnemyID
	Skill  int
	NeedMP float64
}

// AdvanceEnemySkill steps an enemy's runner by Frames. When the front skill
// completes it is popped and Refill (drawn at emission time) is appended.
type AdvanceEnemySkill struct {
	Enemy  EnemyID
	Frames int
	Refill []int
}

// ChangeTurn switches the acting side.
type ChangeTurn struct {
	Side Side
}

// NextWave advances the wave cursor.
type NextWave struct{}

// EndGame latches the battle result.
type EndGame struct {
	Win bool
}

func (d Damage) target() (LtID, bool) { return d.Target, true }
func (e HealHp) target() (LtID, bool) { return e.Target, true }
func (e ConsumeMp) target() (LtID, bool) { return e.Target, true }
func (e HealMp) target() (LtID, bool) { return e.Target, true }
func (ConsumeSp) target() (LtID, bool) { return LtID{}, false }
func (HealSp) target() (LtID, bool) { return LtID{}, false }
func (e AddHate) target() (LtID, bool) { return CharLt(e.Char), true }
func (e AddSkillCooldown) target() (LtID, bool) { return CharLt(e.Skill.Char), true }
func (e HealSkillCooldownAll) target() (LtID, bool) { return CharLt(e.Char), true }
func (e AddPassive) target() (LtID, bool) { return e.Target, true }
func (e UpdatePassiveState) target() (LtID, bool) { return e.Target, true }
func (e UpdateSkillState) target() (LtID, bool) { return CharLt(e.Skill.Char), true }
func (e UseSkill) target() (LtID, bool) { return CharLt(e.Skill.Char), true }
func (e EndSkill) target() (LtID, bool) { return CharLt(e.Skill.Char), true }
func (e EnemyUseSkill) target() (LtID, bool) { return EnemyLt(e.Enemy), true }
func (e AdvanceEnemySkill) target() (LtID, bool) { return EnemyLt(e.Enemy), true }
func (ChangeTurn) target() (LtID, bool) { return LtID{}, false }
func (NextWave) target() (LtID, bool) { return LtID{}, false }
func (EndGame) target() (LtID, bool) { return LtID{}, false }

// Queue is the FIFO effect queue. Hooks receive it for the duration of one
// call and may only Push. The zero value is ready for use.
type Queue struct {
	items []Effect
	head  int
}

// Push appends e.
func (q *Queue) Push(e Effect) {
	q.items = append(q.items, e)
}

// Len returns the number of pending effects.
func (q *Queue) Len() int { return len(q.items) - q.head }

func (q *Queue) pop() (Effect, bool) {
	if q.head >= len(q.items) {
		return nil, false
	}
	e := q.items[q.head]
	q.items[q.head] = nil
	q.head++
	if q.head == len(q.items) {
		q.items = q.items[:0]
		q.head = 0
	}
	return e, true
}

func (q *Queue) reset() {
	clear(q.items)
	q.items = q.items[:0]
	q.head = 0
}
