package battle

import (
	"github.com/cory-johannsen/wavebattle/internal/game/attr"
)

// CharArgs describes one party member at construction.
type CharArgs struct {
	StaticID  string
	Name      string
	Level     int
	Potential attr.Potential
	Weapon    *attr.Weapon
	Skills    []SkillFactory
}

// Char is a party member. It lives for the whole battle.
type Char struct {
	LtCommon
	id       CharID
	staticID string
	name     string
	skills   []*ButtleSkill
	using    int
	hate     float64
}

func newChar(id CharID, a CharArgs) *Char {
	c := &Char{
		LtCommon: newLtCommon(a.Potential, a.Level, a.Weapon),
		id:       id,
		staticID: a.StaticID,
		name:     a.Name,
		using:    -1,
	}
	for slot, f := range a.Skills {
		c.skills = append(c.skills, &ButtleSkill{id: SkillID{Char: id, Slot: slot}, skill: f()})
	}
	return c
}

func (c *Char) ID() CharID { return c.id }
func (c *Char) LtID() LtID { return CharLt(c.id) }
func (c *Char) StaticID() string { return c.staticID }
func (c *Char) Name() string { return c.name }
func (c *Char) Hate() float64 { return c.hate }

// Skills returns the learned skills in slot order. Callers must not mutate them.
func (c *Char) Skills() []*ButtleSkill { return c.skills }

// Skill returns the skill in slot, or false when slot is out of range.
func (c *Char) Skill(slot int) (*ButtleSkill, bool) {
	if slot < 0 || slot >= len(c.skills) {
		return nil, false
	}
	return c.skills[slot], true
}

// Using returns the skill currently running, if any.
func (c *Char) Using() (*ButtleSkill, bool) {
	if c.using < 0 {
		return nil, false
	}
	return c.skills[c.using], true
}

// tick emits the per-tick effects of a living character in real-time mode.
func (c *Char) tick(s *State, out *Queue) {
	lt := c.LtID()
	out.Push(HealMp{Target: lt, N: c.MPHealPerTick()})
	for _, bs := range c.skills {
		if bs.cooldown > 0 {
			out.Push(HealSkillCooldownAll{Char: c.id, N: SkillCooldownHealBase / float64(attr.TicksPerSecond)})
			break
		}
	}
	c.passives.tick(lt, s, out)
	if bs, ok := c.Using(); ok {
		bs.skill.Tick(bs.id, s, out)
	}
}

// turnStart emits the player-side turn start effects.
func (c *Char) turnStart(s *State, out *Queue) {
	lt := c.LtID()
	out.Push(HealMp{Target: lt, N: TurnStartHealMPNum})
	out.Push(HealSkillCooldownAll{Char: c.id, N: SkillCooldownHealBase})
	c.passives.triggerTurnStart(lt, s, out)
}
