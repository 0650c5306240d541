// Package attr implements the attribute model shared by every combatant:
// potentials, weapons, level scaling, bounded accumulators, and the derived
// stat formulas computed from them.
package attr

import "fmt"

// PotentialSum is the total every Potential must add up to.
const PotentialSum = 50

// Potential is the fixed attribute vector of a character class.
//
// Invariant: every field is positive and the fields sum to PotentialSum.
type Potential struct {
	Int int `yaml:"int"`
	Vit int `yaml:"vit"`
	Str int `yaml:"str"`
	Dex int `yaml:"dex"`
	Agi int `yaml:"agi"`
}

// Sum returns Int+Vit+Str+Dex+Agi.
func (p Potential) Sum() int {
	return p.Int + p.Vit + p.Str + p.Dex + p.Agi
}

// Validate reports whether p satisfies the Potential invariant.
//
// Postcondition: Returns nil iff all fields are > 0 and Sum() == PotentialSum.
func (p Potential) Validate() error {
	if p.Int <= 0 || p.Vit <= 0 || p.Str <= 0 || p.Dex <= 0 || p.Agi <= 0 {
		return fmt.Errorf("potential %+v: every attribute must be positive", p)
	}
	if p.Sum() != PotentialSum {
		return fmt.Errorf("potential %+v: attributes sum to %d, want %d", p, p.Sum(), PotentialSum)
	}
	return nil
}

// NewPotential builds a Potential and panics if the invariant does not hold.
// A bad potential is a programming error; content loaders call Validate instead.
func NewPotential(int_, vit, str, dex, agi int) Potential {
	p := Potential{Int: int_, Vit: vit, Str: str, Dex: dex, Agi: agi}
	if err := p.Validate(); err != nil {
		panic("attr: " + err.Error())
	}
	return p
}

// WeaponType enumerates the weapon families.
type WeaponType int

const (
	Sword WeaponType = iota
	MagicBook
	Cane
	Spear
	Hammer
	SwordAndShield
	SpearAndShield
	Bow
)

var weaponTypeNames = map[WeaponType]string{
	Sword:          "sword",
	MagicBook:      "magic_book",
	Cane:           "cane",
	Spear:          "spear",
	Hammer:         "hammer",
	SwordAndShield: "sword_and_shield",
	SpearAndShield: "spear_and_shield",
	Bow:            "bow",
}

// String returns the snake_case name used in content files.
func (t WeaponType) String() string {
	if n, ok := weaponTypeNames[t]; ok {
		return n
	}
	return "unknown"
}

// ParseWeaponType maps a content-file name back to its WeaponType.
func ParseWeaponType(s string) (WeaponType, error) {
	for t, n := range weaponTypeNames {
		if n == s {
			return t, nil
		}
	}
	return 0, fmt.Errorf("unknown weapon type %q", s)
}

// Weapon adds flat attack bonuses to its wielder.
type Weapon struct {
	Type WeaponType
	PAtk float64
	MAtk float64
}
