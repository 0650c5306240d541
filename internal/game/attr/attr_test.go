package attr_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/wavebattle/internal/game/attr"
)

func flat() attr.Potential { return attr.NewPotential(10, 10, 10, 10, 10) }

func TestPotential_Validate(t *testing.T) {
	assert.NoError(t, flat().Validate())
	assert.Error(t, attr.Potential{Int: 10, Vit: 10, Str: 10, Dex: 10, Agi: 11}.Validate())
	assert.Error(t, attr.Potential{Int: 0, Vit: 20, Str: 10, Dex: 10, Agi: 10}.Validate())
}

func TestNewPotential_PanicsOnBadSum(t *testing.T) {
	assert.Panics(t, func() { attr.NewPotential(10, 10, 10, 10, 9) })
}

func TestPotential_Property_ValidIffSumIs50(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		p := attr.Potential{
			Int: rapid.IntRange(1, 30).Draw(rt, "int"),
			Vit: rapid.IntRange(1, 30).Draw(rt, "vit"),
			Str: rapid.IntRange(1, 30).Draw(rt, "str"),
			Dex: rapid.IntRange(1, 30).Draw(rt, "dex"),
			Agi: rapid.IntRange(1, 30).Draw(rt, "agi"),
		}
		assert.Equal(rt, p.Sum() == attr.PotentialSum, p.Validate() == nil)
	})
}

func TestWeaponType_RoundTripNames(t *testing.T) {
	for _, wt := range []attr.WeaponType{attr.Sword, attr.MagicBook, attr.Cane, attr.Spear,
		attr.Hammer, attr.SwordAndShield, attr.SpearAndShield, attr.Bow} {
		got, err := attr.ParseWeaponType(wt.String())
		require.NoError(t, err)
		assert.Equal(t, wt, got)
	}
	_, err := attr.ParseWeaponType("laser")
	assert.Error(t, err)
}

func TestBuff_AddsAndPanicsOnNegative(t *testing.T) {
	var b attr.Buff
	assert.Equal(t, 1.0, b.Value())
	b.Add(0.5)
	b.Add(0.25)
	assert.Equal(t, 1.75, b.Value())
	assert.Panics(t, func() { b.Add(-0.1) })
}

func TestDebuff_MultipliesAndPanicsOutOfRange(t *testing.T) {
	var d attr.Debuff
	assert.Equal(t, 1.0, d.Value())
	d.Mul(0.5)
	d.Mul(0.5)
	assert.InDelta(t, 0.25, d.Value(), 1e-12)
	assert.Panics(t, func() { d.Mul(1.5) })
	assert.Panics(t, func() { d.Mul(-0.5) })
}

func TestDebuff_Property_NeverInverts(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		var d attr.Debuff
		for _, f := range rapid.SliceOf(rapid.Float64Range(0, 1)).Draw(rt, "factors") {
			d.Mul(f)
		}
		assert.GreaterOrEqual(rt, d.Value(), 0.0)
		assert.LessOrEqual(rt, d.Value(), 1.0)
	})
}

func TestPercent_SaturatesAboveAndGoesNegative(t *testing.T) {
	p := attr.NewPercent(1)
	p.Add(50, 100)
	assert.Equal(t, 1.0, p.Fraction())
	p.Sub(150, 100)
	assert.InDelta(t, -0.5, p.Fraction(), 1e-12)
	assert.InDelta(t, -50, p.Of(100), 1e-9)

	m := attr.NewPercent(0)
	m.SubFloor(10, 100)
	assert.Equal(t, 0.0, m.Fraction())
}

func TestNewPercent_PanicsOutOfRange(t *testing.T) {
	assert.Panics(t, func() { attr.NewPercent(1.01) })
	assert.Panics(t, func() { attr.NewPercent(-0.01) })
}

func TestSheet_Formulas(t *testing.T) {
	s := attr.Sheet{
		Potential: attr.NewPotential(13, 10, 9, 8, 10),
		Level:     1,
		Weapon:    &attr.Weapon{Type: attr.MagicBook, MAtk: 1, PAtk: 2},
	}
	assert.Equal(t, 11.0, s.LevelScale())
	assert.InDelta(t, (13.0*3+8)/4*11+1, s.MagicAttack(), 1e-9)
	assert.InDelta(t, (9.0*3+8)/4*11+2, s.PhysicsAttack(), 1e-9)
	assert.InDelta(t, (10.0*6+9+8)/8*3*11, s.MaxHP(), 1e-9)
	assert.InDelta(t, (10.0*2+8+13)/4*50, s.MaxMP(), 1e-9)
	assert.InDelta(t, 1.0, s.Speed(), 1e-12)
}

func TestSheet_MPHealPerTick_Endpoints(t *testing.T) {
	s := attr.Sheet{Potential: flat(), Level: 1}
	// potential (10*2+10+10)/4 = 10 -> 7 MP/s
	assert.InDelta(t, 0.07, s.MPHealPerTick(), 1e-12)

	s.Status.AddVit = -100
	s.Status.AddDex = -100
	s.Status.AddAgi = -100
	assert.InDelta(t, 0.01, s.MPHealPerTick(), 1e-12)
}

func TestSheet_NegativeContributionsClampToZero(t *testing.T) {
	s := attr.Sheet{Potential: flat(), Level: 1}
	s.Status.AddStr = -25
	assert.Equal(t, 0.0, s.StrEff())
	s.Status.AddStr = -4
	assert.Equal(t, 6.0, s.StrEff())
}

func TestStatusBuilder_CombinesBuffAndDebuff(t *testing.T) {
	var b attr.StatusBuilder
	b.MagicAtkBuff(0.5)
	b.MagicAtkDebuff(0.5)
	b.RecvPhysicsDebuff(0.8)
	st := b.Build()
	assert.InDelta(t, 0.75, st.MagicAtkMag(), 1e-12)
	assert.InDelta(t, 0.8, st.RecvPhysicsMag(), 1e-12)
	b.Reset()
	assert.Equal(t, attr.Status{}, b.Build())
}

func TestSheet_Property_MagicAttackMonotoneInBuff(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		x := rapid.Float64Range(0, 5).Draw(rt, "x")
		y := rapid.Float64Range(0, 5).Draw(rt, "y")
		if x > y {
			x, y = y, x
		}
		lo := attr.Sheet{Potential: flat(), Level: 3}
		hi := lo
		lo.Status.MagicAtkBuff.Add(x)
		hi.Status.MagicAtkBuff.Add(y)
		assert.LessOrEqual(rt, lo.MagicAttack(), hi.MagicAttack())
	})
}
