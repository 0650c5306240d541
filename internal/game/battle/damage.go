package battle

import "fmt"

// DamageType tags how a Damage was computed.
type DamageType int

const (
	DamageMagic DamageType = iota
	DamagePhysics
	DamageFixed
)

// String returns "magic", "physics", or "fixed".
func (t DamageType) String() string {
	switch t {
	case DamageMagic:
		return "magic"
	case DamagePhysics:
		return "physics"
	case DamageFixed:
		return "fixed"
	default:
		return "unknown"
	}
}

// ParseDamageType maps a content-file name to a DamageType.
func ParseDamageType(s string) (DamageType, error) {
	switch s {
	case "magic":
		return DamageMagic, nil
	case "physics":
		return DamagePhysics, nil
	case "fixed":
		return DamageFixed, nil
	default:
		return 0, fmt.Errorf("unknown damage type %q", s)
	}
}

// Damage is an immutable damage record and the Damage effect. The amount is
// computed at emission so later mutations in the same drain do not change it.
type Damage struct {
	Causer    LtID
	HasCauser bool
	Target    LtID
	Type      DamageType
	Dmg       float64
}

func newDamage(causer *LtID, target LtID, ty DamageType, dmg float64) Damage {
	if dmg < 0 {
		panic(fmt.Sprintf("battle: negative damage %v", dmg))
	}
	d := Damage{Target: target, Type: ty, Dmg: dmg}
	if causer != nil {
		d.Causer = *causer
		d.HasCauser = true
	}
	return d
}

// NewMagicDamage returns attacker.magic_attack * target.recv_magic_mag * mag.
//
// Precondition: mag >= 0.
func NewMagicDamage(s *State, attacker, target LtID, mag float64) Damage {
	a := s.Lt(attacker)
	t := s.Lt(target)
	return newDamage(&attacker, target, DamageMagic,
		a.MagicAttack()*t.Passives().Status().RecvMagicMag()*mag)
}

// NewPhysicsDamage returns attacker.physics_attack * target.recv_physics_mag * mag.
//
// Precondition: mag >= 0.
func NewPhysicsDamage(s *State, attacker, target LtID, mag float64) Damage {
	a := s.Lt(attacker)
	t := s.Lt(target)
	return newDamage(&attacker, target, DamagePhysics,
		a.PhysicsAttack()*t.Passives().Status().RecvPhysicsMag()*mag)
}

// NewFixedDamage returns hpPercent of the target's max HP, with no causer.
//
// Precondition: hpPercent >= 0.
func NewFixedDamage(s *State, target LtID, hpPercent float64) Damage {
	return newDamage(nil, target, DamageFixed, s.Lt(target).MaxHP()*hpPercent)
}

// WithCauser returns a copy of d attributed to causer.
func (d Damage) WithCauser(causer LtID) Damage {
	d.Causer = causer
	d.HasCauser = true
	return d
}
