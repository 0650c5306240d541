package scripting_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cory-johannsen/wavebattle/internal/game/attr"
	"github.com/cory-johannsen/wavebattle/internal/game/battle"
	"github.com/cory-johannsen/wavebattle/internal/game/battle/skills"
	"github.com/cory-johannsen/wavebattle/internal/game/rng"
	"github.com/cory-johannsen/wavebattle/internal/scripting"
)

const passiveScripts = `
function thorns_on_recv_damage(ctx)
	if ctx.charges <= 0 or not ctx.has_causer then return {} end
	return {
		{kind = "damage", target = "causer", mag = 0.1},
		{kind = "consume"},
	}
end

function mend_on_turn_start(ctx)
	return {
		{kind = "heal", mag = 0.25},
		{kind = "decrement"},
	}
end

function mirror_on_recv_damage(ctx)
	return {{kind = "damage", target = "causer", mag = 0.01}}
end
`

func battleWith(t *testing.T, enemyPassives ...battle.Passive) *battle.Core {
	t.Helper()
	flat := attr.NewPotential(10, 10, 10, 10, 10)
	c, err := battle.New(battle.Args{
		Mode: battle.ModeTurnBased,
		Chars: []battle.CharArgs{{
			StaticID: "hero", Level: 1, Potential: flat,
			Skills: []battle.SkillFactory{skills.Slash},
		}},
		Dungeon: [][]battle.EnemyArgs{{{
			StaticID: "golem", Level: 5, Potential: flat,
			Skills:   []battle.EnemySkill{{Name: "idle", StartUpFrames: 1}},
			Patterns: [][]int{{0}},
			Passives: enemyPassives,
		}}},
	}, battle.WithSource(rng.NewSeeded(9)))
	require.NoError(t, err)
	_, err = c.Tick(battle.GameStart(), nil)
	require.NoError(t, err)
	return c
}

func TestPassive_ThornsSpendsCharges(t *testing.T) {
	m, _ := newTestManager(t, 0)
	require.NoError(t, m.LoadString(passiveScripts))
	thorns, err := m.NewPassive("thorns", 0, 1)
	require.NoError(t, err)
	assert.Equal(t, battle.PassiveKind("lua:thorns"), thorns.Kind())

	c := battleWith(t, thorns)
	hero := c.State().Chars()[0]

	_, err = c.Tick(battle.Use(0, 0), nil)
	require.NoError(t, err)
	assert.InDelta(t, 0.9, hero.HPFraction(), 1e-9)

	p, ok := c.State().CurrentWave()[0].Passives().Get(thorns.Kind())
	require.True(t, ok)
	assert.Zero(t, p.(*scripting.Passive).Charges())
	assert.Equal(t, 1, thorns.Charges(), "the template is never mutated")
}

func TestPassive_TurnStartHealAndExpiry(t *testing.T) {
	m, _ := newTestManager(t, 0)
	require.NoError(t, m.LoadString(passiveScripts))
	mend, err := m.NewPassive("mend", 1, 0)
	require.NoError(t, err)

	c := battleWith(t, mend)
	golem := c.State().CurrentWave()[0]
	c.State().Accept(battle.Damage{Target: golem.LtID(), Type: battle.DamageFixed, Dmg: golem.MaxHP() / 2})

	_, err = c.Tick(battle.TurnEnd(), nil)
	require.NoError(t, err)
	assert.InDelta(t, 0.75, golem.HPFraction(), 1e-9)
	assert.False(t, golem.Passives().Has(mend.Kind()))
}

func TestPassive_UnboundedScriptIsCutByDrainBound(t *testing.T) {
	m, _ := newTestManager(t, 0)
	require.NoError(t, m.LoadString(passiveScripts))
	mirror, err := m.NewPassive("mirror", 0, 0)
	require.NoError(t, err)

	flat := attr.NewPotential(10, 10, 10, 10, 10)
	c, err := battle.New(battle.Args{
		Mode: battle.ModeTurnBased,
		Chars: []battle.CharArgs{{StaticID: "hero", Level: 50, Potential: flat,
			Skills: []battle.SkillFactory{skills.Slash}}},
		Dungeon: [][]battle.EnemyArgs{{{
			StaticID: "golem", Level: 50, Potential: flat,
			Skills:   []battle.EnemySkill{{Name: "idle", StartUpFrames: 1}},
			Patterns: [][]int{{0}},
			Passives: []battle.Passive{mirror},
		}}},
	}, battle.WithSource(rng.NewSeeded(9)), battle.WithMaxDrain(50))
	require.NoError(t, err)
	c.State().Accept(battle.AddPassive{Target: c.State().Chars()[0].LtID(), Passive: mirror})
	_, err = c.Tick(battle.GameStart(), nil)
	require.NoError(t, err)

	_, err = c.Tick(battle.Use(0, 0), nil)
	assert.ErrorIs(t, err, battle.ErrEffectOverflow)
	assert.True(t, c.Terminated())
}

func TestNewPassive_Errors(t *testing.T) {
	m, _ := newTestManager(t, 0)
	require.NoError(t, m.LoadString(passiveScripts))
	_, err := m.NewPassive("ghost", 1, 0)
	assert.ErrorIs(t, err, scripting.ErrUnknownScript)
	_, err = m.NewPassive("thorns", -1, 0)
	assert.Error(t, err)
}

func TestPassive_MergeRefreshes(t *testing.T) {
	m, _ := newTestManager(t, 0)
	require.NoError(t, m.LoadString(passiveScripts))
	a, _ := m.NewPassive("mend", 1, 1)
	b, _ := m.NewPassive("mend", 3, 2)
	a.Update(battle.PassiveMessage{Op: battle.PassiveConsumeCharge, N: 1})
	a.Merge(b)
	assert.Equal(t, 3, a.Turns())
	assert.Equal(t, 2, a.Charges())
	assert.Equal(t, "mend (3)", a.Display())
}
