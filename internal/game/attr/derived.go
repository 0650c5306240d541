package attr

// TicksPerSecond is the real-time simulation rate.
const TicksPerSecond = 100

const (
	mpHealBase = 1.0 / TicksPerSecond // potential 0
	mpHealPeak = 7.0 / TicksPerSecond // potential 10
)

// Sheet bundles everything the derived stats depend on. It holds no state of
// its own; every method is a pure function of the fields.
type Sheet struct {
	Potential Potential
	Level     int
	Weapon    *Weapon
	Status    Status
}

func nonNegative(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}

// Effective attributes clamp negative passive contributions to zero.
func (s Sheet) IntEff() float64 { return nonNegative(float64(s.Potential.Int) + s.Status.AddInt) }
func (s Sheet) VitEff() float64 { return nonNegative(float64(s.Potential.Vit) + s.Status.AddVit) }
func (s Sheet) StrEff() float64 { return nonNegative(float64(s.Potential.Str) + s.Status.AddStr) }
func (s Sheet) DexEff() float64 { return nonNegative(float64(s.Potential.Dex) + s.Status.AddDex) }
func (s Sheet) AgiEff() float64 { return nonNegative(float64(s.Potential.Agi) + s.Status.AddAgi) }

// LevelScale returns level + 10.
func (s Sheet) LevelScale() float64 { return float64(s.Level + 10) }

// MagicAttack returns ((INT*3 + DEX)/4 * level_scale + weapon.m_atk) * magic multipliers.
func (s Sheet) MagicAttack() float64 {
	base := (s.IntEff()*3 + s.DexEff()) / 4 * s.LevelScale()
	if s.Weapon != nil {
		base += s.Weapon.MAtk
	}
	return base * s.Status.MagicAtkMag()
}

// PhysicsAttack returns ((STR*3 + DEX)/4 * level_scale + weapon.p_atk) * physics multipliers.
func (s Sheet) PhysicsAttack() float64 {
	base := (s.StrEff()*3 + s.DexEff()) / 4 * s.LevelScale()
	if s.Weapon != nil {
		base += s.Weapon.PAtk
	}
	return base * s.Status.PhysicsAtkMag()
}

// MaxHP returns ((VIT*6 + STR + DEX)/8) * 3 * level_scale * hp multipliers.
func (s Sheet) MaxHP() float64 {
	return (s.VitEff()*6 + s.StrEff() + s.DexEff()) / 8 * 3 * s.LevelScale() * s.Status.HpMag()
}

// MaxMP returns ((VIT*2 + DEX + INT)/4) * 50.
func (s Sheet) MaxMP() float64 {
	return (s.VitEff()*2 + s.DexEff() + s.IntEff()) / 4 * 50
}

// MPHealPerTick interpolates between 1 MP/s at potential 0 and 7 MP/s at
// potential 10, where potential = (VIT*2 + DEX + AGI)/4.
func (s Sheet) MPHealPerTick() float64 {
	potential := (s.VitEff()*2 + s.DexEff() + s.AgiEff()) / 4
	return mpHealBase + potential/10*(mpHealPeak-mpHealBase)
}

// Speed returns AGI/10 scaled by speed passives. It is the phased skill progress rate.
func (s Sheet) Speed() float64 {
	return s.AgiEff() / 10 * s.Status.SpeedMag()
}
