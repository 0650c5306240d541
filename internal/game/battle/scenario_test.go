package battle_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cory-johannsen/wavebattle/internal/game/attr"
	"github.com/cory-johannsen/wavebattle/internal/game/battle"
	"github.com/cory-johannsen/wavebattle/internal/game/battle/passives"
	"github.com/cory-johannsen/wavebattle/internal/game/battle/skills"
	"github.com/cory-johannsen/wavebattle/internal/game/rng"
)

func TestFireball_SingleHit(t *testing.T) {
	mage := battle.CharArgs{
		StaticID:  "mage",
		Level:     1,
		Potential: attr.NewPotential(13, 10, 9, 8, 10),
		Weapon:    &attr.Weapon{Type: attr.MagicBook, MAtk: 1},
		Skills:    []battle.SkillFactory{skills.Fireball},
	}
	c := newCore(t, battle.Args{
		Mode:    battle.ModeTurnBased,
		Chars:   []battle.CharArgs{mage},
		Dungeon: [][]battle.EnemyArgs{{enemy("slime")}},
	})
	tick(t, c, battle.GameStart())
	require.GreaterOrEqual(t, c.State().Chars()[0].MP(), 50.0)

	out := tick(t, c, battle.Use(0, 0))
	ds := damages(out)
	require.Len(t, ds, 1)
	want := ((13.0*3+8)/4*11 + 1) * 1.0 * 1.0
	assert.InDelta(t, want, ds[0].Dmg, 1e-9)
	assert.Equal(t, battle.DamageMagic, ds[0].Type)

	foe := c.State().CurrentWave()[0]
	assert.InDelta(t, foe.MaxHP()-want, foe.HP(), 1e-9)
	bs, _ := c.State().Char(battle.CharID{Idx: 0}).Skill(0)
	assert.Greater(t, bs.Cooldown(), 0.0)
	assert.Equal(t, battle.EventCharUseSkill, events(out)[0])
}

func TestBurn_TicksAtEnemyTurnStart(t *testing.T) {
	foe := enemy("slime")
	foe.Passives = []battle.Passive{passives.NewBurn(2)}
	c := newCore(t, battle.Args{
		Mode:    battle.ModeTurnBased,
		Chars:   []battle.CharArgs{char("hero")},
		Dungeon: [][]battle.EnemyArgs{{foe}},
	})
	tick(t, c, battle.GameStart())
	e := c.State().CurrentWave()[0]

	out := tick(t, c, battle.TurnEnd())
	ds := damages(out)
	require.Len(t, ds, 1)
	assert.Equal(t, battle.DamageFixed, ds[0].Type)
	assert.InDelta(t, 0.03*e.MaxHP(), ds[0].Dmg, 1e-9)
	assert.InDelta(t, 0.97, e.HPFraction(), 1e-9)
	p, ok := e.Passives().Get(passives.KindBurn)
	require.True(t, ok)
	assert.Equal(t, 1, p.(*passives.Burn).Turns())

	tick(t, c, battle.TurnEnd())
	assert.InDelta(t, 0.94, e.HPFraction(), 1e-9)
	assert.False(t, e.Passives().Has(passives.KindBurn))
}

func TestPostDeathDamage_IsSuppressed(t *testing.T) {
	args := battle.Args{
		Mode:    battle.ModeTurnBased,
		Chars:   []battle.CharArgs{char("hero")},
		Dungeon: [][]battle.EnemyArgs{{enemy("slime")}},
	}
	s, err := battle.NewState(args, rng.NewSeeded(1))
	require.NoError(t, err)
	target := s.CurrentWave()[0].LtID()
	hit := func(n float64) battle.Damage {
		return battle.Damage{Target: target, Type: battle.DamageFixed, Dmg: n}
	}

	require.True(t, s.Accept(hit(s.Lt(target).MaxHP()-1)).Accepted)
	assert.InDelta(t, 1, s.Lt(target).HP(), 1e-9)

	first := s.Accept(hit(100))
	assert.True(t, first.Accepted)
	assert.True(t, first.Killed)
	assert.InDelta(t, -99, s.Lt(target).HP(), 1e-9)

	second := s.Accept(hit(100))
	assert.False(t, second.Accepted)
	assert.InDelta(t, -99, s.Lt(target).HP(), 1e-9)
}

func TestPostDeathDamage_OnlyOneOutput(t *testing.T) {
	maxHP := 330.0 // flat potential at level 1
	c := newCore(t, battle.Args{
		Mode:    battle.ModeTurnBased,
		Chars:   []battle.CharArgs{char("hero", strike(maxHP-1, 100, 100))},
		Dungeon: [][]battle.EnemyArgs{{enemy("slime")}},
	})
	require.InDelta(t, maxHP, c.State().CurrentWave()[0].MaxHP(), 1e-9)
	tick(t, c, battle.GameStart())

	out := tick(t, c, battle.Use(0, 0))
	var hundreds int
	for _, d := range damages(out) {
		if d.Dmg == 100 {
			hundreds++
		}
	}
	assert.Equal(t, 1, hundreds)
	assert.Equal(t, []battle.EventKind{battle.EventCharUseSkill, battle.EventDeadEnemy, battle.EventWin}, events(out))
}

func TestWaveAdvance_ThenWin(t *testing.T) {
	c := newCore(t, battle.Args{
		Mode:    battle.ModeTurnBased,
		Chars:   []battle.CharArgs{char("hero", strike(10000))},
		Dungeon: [][]battle.EnemyArgs{{enemy("a")}, {enemy("b")}},
	})
	tick(t, c, battle.GameStart())

	out := tick(t, c, battle.Use(0, 0))
	assert.Contains(t, events(out), battle.EventGoNextWave)
	assert.NotContains(t, events(out), battle.EventWin)
	assert.Equal(t, 1, c.State().WaveCursor())
	front, ok := c.State().NextLivingEnemy(0)
	require.True(t, ok)
	assert.Equal(t, "b", front.StaticID())

	out = tick(t, c, battle.Use(0, 0))
	assert.Equal(t, battle.EventWin, events(out)[len(events(out))-1])
	assert.True(t, c.State().Ended())
	assert.True(t, c.State().Won())
	assert.True(t, c.Terminated())

	_, err := c.Tick(battle.None(), nil)
	assert.ErrorIs(t, err, battle.ErrAlreadyGameEnded)
}

func TestPhasedSkill_Timing(t *testing.T) {
	var chant battle.SkillFactory = func() battle.Skill {
		return skills.NewPhased(battle.SkillInfo{ID: "nova", Cooldown: 10}, []skills.Unit{
			{Duration: 3000, Phase: battle.Chanting},
			{Duration: 500, Phase: battle.Acting, Fire: func(id battle.SkillID, s *battle.State, out *battle.Queue) {
				e, _ := s.NextLivingEnemy(0)
				out.Push(battle.NewFixedDamage(s, e.LtID(), 0.01).WithCauser(battle.CharLt(id.Char)))
			}},
			{Duration: 500, Phase: battle.Acting},
		})
	}
	c := newCore(t, battle.Args{
		Mode:    battle.ModeRealtime,
		Chars:   []battle.CharArgs{char("mage", chant)},
		Dungeon: [][]battle.EnemyArgs{{enemy("dummy")}},
	})
	hero := c.State().Chars()[0]
	require.InDelta(t, 1.0, hero.Speed(), 1e-12)

	tick(t, c, battle.Use(0, 0))
	var hitTicks, endTicks []int
	for n := 1; n <= 4100; n++ {
		out := tick(t, c, battle.None())
		for _, o := range out {
			switch e := o.Effect.(type) {
			case battle.Damage:
				if e.HasCauser && e.Causer.IsChar() {
					hitTicks = append(hitTicks, n)
				}
			case battle.EndSkill:
				endTicks = append(endTicks, n)
			}
		}
		if n == 1500 {
			bs, ok := hero.Using()
			require.True(t, ok)
			p, running := bs.Skill().CurrentProgress()
			require.True(t, running)
			assert.Equal(t, battle.Chanting, p.Phase)
			assert.InDelta(t, 0.5, p.Chunk, 1e-9)
			assert.InDelta(t, 0.375, p.Overall, 1e-9)
		}
	}
	assert.Equal(t, []int{3000}, hitTicks)
	assert.Equal(t, []int{4000}, endTicks)
	_, busy := hero.Using()
	assert.False(t, busy)
}

func TestEnemyRunner_Refill(t *testing.T) {
	foe := enemy("twin", idleSkill(10, 10), idleSkill(10, 10))
	foe.Patterns = [][]int{{0, 1}}
	c := newCore(t, battle.Args{
		Mode:    battle.ModeRealtime,
		Chars:   []battle.CharArgs{char("hero")},
		Dungeon: [][]battle.EnemyArgs{{foe}},
	})
	r := c.State().CurrentWave()[0].Runner()
	assert.Equal(t, []int{0, 1, 0, 1, 0}, r.View())

	for i := 0; i < 20; i++ {
		tick(t, c, battle.None())
	}
	assert.Equal(t, 1, r.CurrentIndex())
	for i := 0; i < 20; i++ {
		tick(t, c, battle.None())
	}
	assert.Equal(t, 0, r.CurrentIndex())
	assert.Len(t, r.View(), battle.NumViewSkills)
	assert.Equal(t, 0, r.Frame())
}

func TestEnemyRunner_ConditionFollowsFireFrame(t *testing.T) {
	c := newCore(t, battle.Args{
		Mode:    battle.ModeRealtime,
		Chars:   []battle.CharArgs{char("hero")},
		Dungeon: [][]battle.EnemyArgs{{enemy("imp", hitSkill(battle.TargetSelector{Kind: battle.TargetSingle}, battle.DamagePhysics, 0.01))}},
	})
	r := c.State().CurrentWave()[0].Runner()
	require.Equal(t, 5, r.Current().StartUpFrames)
	assert.Equal(t, battle.StartUp, r.Condition())

	for n := 1; n < 5; n++ {
		out := tick(t, c, battle.None())
		assert.Empty(t, damages(out))
		assert.Equal(t, battle.StartUp, r.Condition(), "frame %d", r.Frame())
	}
	require.Equal(t, 4, r.Frame())

	out := tick(t, c, battle.None())
	require.Len(t, damages(out), 1)
	assert.Equal(t, battle.Recovery, r.Condition())
	for n := 6; n < 10; n++ {
		tick(t, c, battle.None())
		assert.Equal(t, battle.Recovery, r.Condition(), "frame %d", r.Frame())
	}

	tick(t, c, battle.None())
	assert.Equal(t, 0, r.Frame())
	assert.Equal(t, battle.StartUp, r.Condition())
}
