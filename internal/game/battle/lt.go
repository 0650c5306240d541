package battle

import "github.com/cory-johannsen/wavebattle/internal/game/attr"

// LtCommon is the stat, HP, MP and passive bundle every combatant owns.
// Derived values are recomputed from the owned data on each read.
type LtCommon struct {
	potential attr.Potential
	level     int
	weapon    *attr.Weapon
	hp        attr.Percent
	mp        attr.Percent
	passives  *PassiveList
}

func newLtCommon(p attr.Potential, level int, weapon *attr.Weapon) LtCommon {
	if err := p.Validate(); err != nil {
		panic("battle: " + err.Error())
	}
	var w *attr.Weapon
	if weapon != nil {
		cp := *weapon
		w = &cp
	}
	return LtCommon{
		potential: p,
		level:     level,
		weapon:    w,
		hp:        attr.NewPercent(1),
		mp:        attr.NewPercent(0),
		passives:  NewPassiveList(),
	}
}

// Sheet returns the inputs of the derived stat formulas.
func (l *LtCommon) Sheet() attr.Sheet {
	return attr.Sheet{
		Potential: l.potential,
		Level:     l.level,
		Weapon:    l.weapon,
		Status:    l.passives.Status(),
	}
}

func (l *LtCommon) Potential() attr.Potential { return l.potential }
func (l *LtCommon) Level() int { return l.level }

// Weapon returns the equipped weapon, or nil.
func (l *LtCommon) Weapon() *attr.Weapon { return l.weapon }

// Passives returns the owner's passive list. Callers must not mutate it.
func (l *LtCommon) Passives() *PassiveList { return l.passives }

func (l *LtCommon) MaxHP() float64 { return l.Sheet().MaxHP() }
func (l *LtCommon) HP() float64 { return l.hp.Of(l.MaxHP()) }
func (l *LtCommon) HPFraction() float64 { return l.hp.Fraction() }
func (l *LtCommon) MaxMP() float64 { return l.Sheet().MaxMP() }
func (l *LtCommon) MP() float64 { return l.mp.Of(l.MaxMP()) }
func (l *LtCommon) MPFraction() float64 { return l.mp.Fraction() }
func (l *LtCommon) MagicAttack() float64 { return l.Sheet().MagicAttack() }
func (l *LtCommon) PhysicsAttack() float64 { return l.Sheet().PhysicsAttack() }
func (l *LtCommon) MPHealPerTick() float64 { return l.Sheet().MPHealPerTick() }
func (l *LtCommon) Speed() float64 { return l.Sheet().Speed() }

// IsDead reports hp <= 0.
func (l *LtCommon) IsDead() bool { return l.hp.Fraction() <= 0 }

func (l *LtCommon) clone() LtCommon {
	c := *l
	c.passives = l.passives.clone()
	return c
}
