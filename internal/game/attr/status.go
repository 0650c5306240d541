package attr

// Status is the derived modifier set a passive list contributes to its owner.
// The zero value is neutral.
type Status struct {
	AddInt float64
	AddVit float64
	AddStr float64
	AddDex float64
	AddAgi float64

	MagicAtkBuff     Buff
	MagicAtkDebuff   Debuff
	PhysicsAtkBuff   Buff
	PhysicsAtkDebuff Debuff
	HpBuff           Buff
	HpDebuff         Debuff

	// Recv* scale incoming damage: the buff raises damage taken, the debuff lowers it.
	RecvMagicBuff     Buff
	RecvMagicDebuff   Debuff
	RecvPhysicsBuff   Buff
	RecvPhysicsDebuff Debuff

	SpeedBuff   Buff
	SpeedDebuff Debuff
}

// MagicAtkMag returns the combined magic attack multiplier.
func (s Status) MagicAtkMag() float64 { return s.MagicAtkBuff.Value() * s.MagicAtkDebuff.Value() }

// PhysicsAtkMag returns the combined physics attack multiplier.
func (s Status) PhysicsAtkMag() float64 {
	return s.PhysicsAtkBuff.Value() * s.PhysicsAtkDebuff.Value()
}

// HpMag returns the combined max HP multiplier.
func (s Status) HpMag() float64 { return s.HpBuff.Value() * s.HpDebuff.Value() }

// RecvMagicMag returns the multiplier applied to incoming magic damage.
func (s Status) RecvMagicMag() float64 {
	return s.RecvMagicBuff.Value() * s.RecvMagicDebuff.Value()
}

// RecvPhysicsMag returns the multiplier applied to incoming physics damage.
func (s Status) RecvPhysicsMag() float64 {
	return s.RecvPhysicsBuff.Value() * s.RecvPhysicsDebuff.Value()
}

// SpeedMag returns the combined speed multiplier.
func (s Status) SpeedMag() float64 { return s.SpeedBuff.Value() * s.SpeedDebuff.Value() }

// StatusBuilder accumulates passive contributions into a Status.
type StatusBuilder struct {
	s Status
}

// Reset returns the builder to the neutral Status.
func (b *StatusBuilder) Reset() { b.s = Status{} }

// Build returns the accumulated Status.
func (b *StatusBuilder) Build() Status { return b.s }

// AddAttributes adds flat (possibly negative) attribute offsets.
func (b *StatusBuilder) AddAttributes(int_, vit, str, dex, agi float64) {
	b.s.AddInt += int_
	b.s.AddVit += vit
	b.s.AddStr += str
	b.s.AddDex += dex
	b.s.AddAgi += agi
}

func (b *StatusBuilder) MagicAtkBuff(x float64) { b.s.MagicAtkBuff.Add(x) }
func (b *StatusBuilder) MagicAtkDebuff(f float64) { b.s.MagicAtkDebuff.Mul(f) }
func (b *StatusBuilder) PhysicsAtkBuff(x float64) { b.s.PhysicsAtkBuff.Add(x) }
func (b *StatusBuilder) PhysicsAtkDebuff(f float64) { b.s.PhysicsAtkDebuff.Mul(f) }
func (b *StatusBuilder) HpBuff(x float64) { b.s.HpBuff.Add(x) }
func (b *StatusBuilder) HpDebuff(f float64) { b.s.HpDebuff.Mul(f) }
func (b *StatusBuilder) RecvMagicBuff(x float64) { b.s.RecvMagicBuff.Add(x) }
func (b *StatusBuilder) RecvMagicDebuff(f float64) { b.s.RecvMagicDebuff.Mul(f) }
func (b *StatusBuilder) RecvPhysicsBuff(x float64) { b.s.RecvPhysicsBuff.Add(x) }
func (b *StatusBuilder) RecvPhysicsDebuff(f float64) {
	b.s.RecvPhysicsDebuff.Mul(f)
}
func (b *StatusBuilder) SpeedBuff(x float64) { b.s.SpeedBuff.Add(x) }
func (b *StatusBuilder) SpeedDebuff(f float64) { b.s.SpeedDebuff.Mul(f) }
