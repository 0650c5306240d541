package skills

import (
	"github.com/cory-johannsen/wavebattle/internal/game/battle"
	"github.com/cory-johannsen/wavebattle/internal/game/battle/passives"
)

// Built-in skill ids.
const (
	IDFireball    = "fireball"
	IDSlash       = "slash"
	IDHeal        = "heal"
	IDWarCry      = "war_cry"
	IDTaunt       = "taunt"
	IDGuard       = "guard"
	IDMeteor      = "meteor"
	IDQuickStrike = "quick_strike"
	IDDesperation = "desperation"
	IDOverdrive   = "overdrive"
)

// Fireball hits the front enemy once with magic damage of multiplier 1.0.
func Fireball() battle.Skill {
	return NewAtomic(battle.SkillInfo{
		ID:          IDFireball,
		Name:        "Fireball",
		Description: "Hurls a ball of fire at the front enemy.",
		Cost:        battle.Cost{MP: 50},
		Cooldown:    100,
		Hate:        20,
	}, magicHit(1.0, 1))
}

func Slash() battle.Skill {
	return NewAtomic(battle.SkillInfo{
		ID:          IDSlash,
		Name:        "Slash",
		Description: "A plain weapon strike.",
		Cooldown:    50,
		Hate:        10,
	}, physicsHit(1.2, 1))
}

// Heal restores 30% of max HP to the most wounded ally.
func Heal() battle.Skill {
	return NewAtomic(battle.SkillInfo{
		ID:          IDHeal,
		Name:        "Heal",
		Description: "Restores HP to the most wounded ally.",
		Cost:        battle.Cost{MP: 40},
		Cooldown:    150,
		Hate:        15,
	}, func(_ battle.SkillID, s *battle.State, out *battle.Queue) {
		t, ok := weakestChar(s)
		if !ok {
			return
		}
		out.Push(battle.HealHp{Target: t, N: s.Lt(t).MaxHP() * 0.3})
	})
}

// WarCry grants every living ally AttackUp for three turns, paid in SP.
func WarCry() battle.Skill {
	return NewAtomic(battle.SkillInfo{
		ID:          IDWarCry,
		Name:        "War Cry",
		Description: "Raises the attack of the whole party.",
		Cost:        battle.Cost{SP: 100},
		Cooldown:    300,
		Hate:        30,
	}, func(_ battle.SkillID, s *battle.State, out *battle.Queue) {
		for _, t := range allChars(s) {
			out.Push(battle.AddPassive{Target: t, Passive: passives.NewAttackUp(3, 0.3)})
		}
	})
}

// Taunt only draws hate; the core adds it from the skill info.
func Taunt() battle.Skill {
	return NewAtomic(battle.SkillInfo{
		ID:          IDTaunt,
		Name:        "Taunt",
		Description: "Draws enemy attention.",
		Cooldown:    200,
		Hate:        100,
	}, nil)
}

func Guard() battle.Skill {
	return NewAtomic(battle.SkillInfo{
		ID:          IDGuard,
		Name:        "Guard",
		Description: "Halves incoming damage for two turns.",
		Cost:        battle.Cost{MP: 20},
		Cooldown:    200,
		Hate:        20,
	}, func(id battle.SkillID, _ *battle.State, out *battle.Queue) {
		out.Push(battle.AddPassive{Target: battle.CharLt(id.Char), Passive: passives.NewShield(2, 0.5)})
	})
}

// Meteor chants for 3000 points, strikes every enemy when the hit unit
// begins, and recovers for 500 more.
func Meteor() battle.Skill {
	return NewPhased(battle.SkillInfo{
		ID:          IDMeteor,
		Name:        "Meteor",
		Description: "A long chant that ends in a strike on every enemy.",
		Cost:        battle.Cost{MP: 120},
		Cooldown:    500,
		Hate:        50,
	}, []Unit{
		{Duration: 3000, Phase: battle.Chanting},
		{Duration: 500, Phase: battle.Acting, Fire: magicSweep(3.0)},
		{Duration: 500, Phase: battle.Acting},
	})
}

func QuickStrike() battle.Skill {
	return NewPhased(battle.SkillInfo{
		ID:          IDQuickStrike,
		Name:        "Quick Strike",
		Description: "Two fast blows.",
		Cooldown:    100,
		Hate:        15,
	}, []Unit{
		{Duration: 20, Phase: battle.Acting, Fire: physicsHit(0.8, 1)},
		{Duration: 20, Phase: battle.Acting, Fire: physicsHit(0.8, 1)},
		{Duration: 30, Phase: battle.Acting},
	})
}

// Desperation is usable only below 30% HP and then ignores every other
// gate except its own cooldown.
func Desperation() battle.Skill {
	return NewAtomic(battle.SkillInfo{
		ID:          IDDesperation,
		Name:        "Desperation",
		Description: "A last-ditch blow, only possible when badly hurt.",
		Cost:        battle.Cost{MP: 30},
		Cooldown:    500,
		Hate:        40,
	}, physicsHit(2.5, 1), WithUseable(func(id battle.SkillID, s *battle.State) battle.Useable {
		bs, _ := s.Skill(id)
		hurt := s.Char(id.Char).HPFraction() <= 0.3
		return battle.Strong(hurt && bs.Cooldown() == 0)
	}))
}

// Overdrive may be cast without enough MP; whatever MP remains is drained.
func Overdrive() battle.Skill {
	return NewAtomic(battle.SkillInfo{
		ID:          IDOverdrive,
		Name:        "Overdrive",
		Description: "Burns every last drop of MP into one blast.",
		Cost:        battle.Cost{MP: 200},
		Cooldown:    400,
		Hate:        40,
	}, magicHit(2.0, 1), WithUseable(func(battle.SkillID, *battle.State) battle.Useable {
		return battle.IgnoreNeedMP()
	}))
}
