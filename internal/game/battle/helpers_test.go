package battle_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cory-johannsen/wavebattle/internal/game/attr"
	"github.com/cory-johannsen/wavebattle/internal/game/battle"
	"github.com/cory-johannsen/wavebattle/internal/game/battle/skills"
	"github.com/cory-johannsen/wavebattle/internal/game/rng"
)

func flat() attr.Potential { return attr.NewPotential(10, 10, 10, 10, 10) }

func char(id string, factories ...battle.SkillFactory) battle.CharArgs {
	if len(factories) == 0 {
		factories = []battle.SkillFactory{skills.Taunt}
	}
	return battle.CharArgs{StaticID: id, Name: id, Level: 1, Potential: flat(), Skills: factories}
}

// idleSkill fires nothing but the EnemyUseSkill event.
func idleSkill(startUp, recovery int) battle.EnemySkill {
	return battle.EnemySkill{Name: "idle", StartUpFrames: startUp, RecoveryFrames: recovery}
}

func enemy(id string, sks ...battle.EnemySkill) battle.EnemyArgs {
	if len(sks) == 0 {
		sks = []battle.EnemySkill{idleSkill(10, 10)}
	}
	var pattern []int
	for i := range sks {
		pattern = append(pattern, i)
	}
	return battle.EnemyArgs{
		StaticID:  id,
		Name:      id,
		Level:     1,
		Potential: flat(),
		Skills:    sks,
		Patterns:  [][]int{pattern},
	}
}

func hitSkill(sel battle.TargetSelector, ty battle.DamageType, mag float64) battle.EnemySkill {
	return battle.EnemySkill{
		Name:           "hit",
		StartUpFrames:  5,
		RecoveryFrames: 5,
		Actions: []battle.EnemyStep{{
			Target: sel,
			Action: battle.DamageAction{Type: ty, Mag: mag, Count: 1},
		}},
	}
}

// strike returns an atomic skill that deals each of dmgs as fixed damage to
// the front enemy, with no cost and no cooldown.
func strike(dmgs ...float64) battle.SkillFactory {
	return func() battle.Skill {
		return skills.NewAtomic(battle.SkillInfo{ID: "strike", Name: "Strike"},
			func(_ battle.SkillID, s *battle.State, out *battle.Queue) {
				e, ok := s.NextLivingEnemy(0)
				if !ok {
					return
				}
				for _, d := range dmgs {
					out.Push(battle.Damage{Target: e.LtID(), Type: battle.DamageFixed, Dmg: d})
				}
			})
	}
}

func newCore(t testing.TB, args battle.Args, opts ...battle.Option) *battle.Core {
	t.Helper()
	opts = append([]battle.Option{battle.WithSource(rng.NewSeeded(1))}, opts...)
	c, err := battle.New(args, opts...)
	require.NoError(t, err)
	return c
}

func tick(t testing.TB, c *battle.Core, in battle.Input) []battle.Output {
	t.Helper()
	out, err := c.Tick(in, nil)
	require.NoError(t, err)
	return out
}

func events(outs []battle.Output) []battle.EventKind {
	var kinds []battle.EventKind
	for _, o := range outs {
		if o.Kind == battle.OutputEvent {
			kinds = append(kinds, o.Event.Kind)
		}
	}
	return kinds
}

func damages(outs []battle.Output) []battle.Damage {
	var ds []battle.Damage
	for _, o := range outs {
		if d, ok := o.Effect.(battle.Damage); ok && o.Kind == battle.OutputEffect {
			ds = append(ds, d)
		}
	}
	return ds
}
