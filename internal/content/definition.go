// Package content loads characters, enemies, and encounters from YAML and
// builds battle arguments from them.
package content

import (
	"fmt"

	"github.com/cory-johannsen/wavebattle/internal/game/attr"
	"github.com/cory-johannsen/wavebattle/internal/game/battle"
)

// WeaponDef is a weapon as written in content files.
type WeaponDef struct {
	Type string  `yaml:"type"`
	PAtk float64 `yaml:"patk"`
	MAtk float64 `yaml:"matk"`
}

// CharacterDef is a playable character loaded from YAML.
type CharacterDef struct {
	ID        string         `yaml:"id"`
	Name      string         `yaml:"name"`
	Level     int            `yaml:"level"`
	Potential attr.Potential `yaml:"potential"`
	Weapon    *WeaponDef     `yaml:"weapon"`
	// Skills are built-in skill ids, one per slot.
	Skills []string `yaml:"skills"`
}

// Validate checks the invariants a character needs before a battle can use it.
//
// Postcondition: Returns nil iff ID and Name are set, Level >= 1, the
// potential is valid, the weapon type parses, and 1..NumMaxLearnSkills skills are listed.
func (c *CharacterDef) Validate() error {
	if c.ID == "" {
		return fmt.Errorf("character: id must not be empty")
	}
	if c.Name == "" {
		return fmt.Errorf("character %q: name must not be empty", c.ID)
	}
	if c.Level < 1 {
		return fmt.Errorf("character %q: level must be >= 1", c.ID)
	}
	if err := c.Potential.Validate(); err != nil {
		return fmt.Errorf("character %q: %w", c.ID, err)
	}
	if c.Weapon != nil {
		if _, err := attr.ParseWeaponType(c.Weapon.Type); err != nil {
			return fmt.Errorf("character %q: %w", c.ID, err)
		}
	}
	if len(c.Skills) < 1 || len(c.Skills) > battle.NumMaxLearnSkills {
		return fmt.Errorf("character %q: %d skills, want 1-%d", c.ID, len(c.Skills), battle.NumMaxLearnSkills)
	}
	return nil
}

// PassiveSpec names a passive and its numeric parameters. An id of the form
// "lua:<name>" selects a scripted passive.
type PassiveSpec struct {
	ID     string             `yaml:"id"`
	Params map[string]float64 `yaml:"params"`
}

// TargetDef is an enemy action's target selector.
type TargetDef struct {
	// Kind is one of self, single, multi, all.
	Kind string `yaml:"kind"`
	N    int    `yaml:"n"`
}

// DamageDef is a damage action.
type DamageDef struct {
	Type  string  `yaml:"type"`
	Mag   float64 `yaml:"mag"`
	Count int     `yaml:"count"`
}

// ActionDef is one enemy skill step. Exactly one of Damage and Passive is set.
type ActionDef struct {
	Target  TargetDef    `yaml:"target"`
	Damage  *DamageDef   `yaml:"damage"`
	Passive *PassiveSpec `yaml:"passive"`
}

// EnemySkillDef is an enemy skill as written in content files.
type EnemySkillDef struct {
	Name           string      `yaml:"name"`
	NeedMP         float64     `yaml:"need_mp"`
	StartUpFrames  int         `yaml:"startup_frames"`
	RecoveryFrames int         `yaml:"recovery_frames"`
	Actions        []ActionDef `yaml:"actions"`
}

// EnemyDef is an enemy loaded from YAML.
type EnemyDef struct {
	ID        string          `yaml:"id"`
	Name      string          `yaml:"name"`
	Level     int             `yaml:"level"`
	Potential attr.Potential  `yaml:"potential"`
	Skills    []EnemySkillDef `yaml:"skills"`
	Patterns  [][]int         `yaml:"patterns"`
	Passives  []PassiveSpec   `yaml:"passives"`
}

// Validate checks the shape of an enemy. Passive ids are checked when the
// enemy is built, since they depend on the resolver.
func (e *EnemyDef) Validate() error {
	if e.ID == "" {
		return fmt.Errorf("enemy: id must not be empty")
	}
	if e.Name == "" {
		return fmt.Errorf("enemy %q: name must not be empty", e.ID)
	}
	if e.Level < 1 {
		return fmt.Errorf("enemy %q: level must be >= 1", e.ID)
	}
	if err := e.Potential.Validate(); err != nil {
		return fmt.Errorf("enemy %q: %w", e.ID, err)
	}
	if len(e.Skills) == 0 {
		return fmt.Errorf("enemy %q: at least one skill is required", e.ID)
	}
	for i, sk := range e.Skills {
		if sk.StartUpFrames < 1 || sk.RecoveryFrames < 0 {
			return fmt.Errorf("enemy %q skill %d %q: startup_frames must be >= 1 and recovery_frames >= 0", e.ID, i, sk.Name)
		}
		if sk.NeedMP < 0 {
			return fmt.Errorf("enemy %q skill %d %q: need_mp must not be negative", e.ID, i, sk.Name)
		}
		for j, a := range sk.Actions {
			if err := a.validate(); err != nil {
				return fmt.Errorf("enemy %q skill %d action %d: %w", e.ID, i, j, err)
			}
		}
	}
	if len(e.Patterns) == 0 {
		return fmt.Errorf("enemy %q: at least one pattern is required", e.ID)
	}
	for i, p := range e.Patterns {
		if len(p) == 0 {
			return fmt.Errorf("enemy %q: pattern %d is empty", e.ID, i)
		}
		for _, idx := range p {
			if idx < 0 || idx >= len(e.Skills) {
				return fmt.Errorf("enemy %q: pattern %d references skill %d of %d", e.ID, i, idx, len(e.Skills))
			}
		}
	}
	return nil
}

func (a ActionDef) validate() error {
	if (a.Damage == nil) == (a.Passive == nil) {
		return fmt.Errorf("exactly one of damage or passive must be set")
	}
	if _, err := parseTarget(a.Target); err != nil {
		return err
	}
	if d := a.Damage; d != nil {
		if _, err := battle.ParseDamageType(d.Type); err != nil {
			return err
		}
		if d.Mag < 0 {
			return fmt.Errorf("damage mag must not be negative")
		}
		if d.Count < 0 {
			return fmt.Errorf("damage count must not be negative")
		}
	}
	if a.Passive != nil && a.Passive.ID == "" {
		return fmt.Errorf("passive id must not be empty")
	}
	return nil
}

func parseTarget(t TargetDef) (battle.TargetSelector, error) {
	switch t.Kind {
	case "self":
		return battle.TargetSelector{Kind: battle.TargetSelf}, nil
	case "", "single":
		return battle.TargetSelector{Kind: battle.TargetSingle}, nil
	case "multi":
		if t.N < 1 {
			return battle.TargetSelector{}, fmt.Errorf("multi target needs n >= 1, got %d", t.N)
		}
		return battle.TargetSelector{Kind: battle.TargetMulti, N: t.N}, nil
	case "all":
		return battle.TargetSelector{Kind: battle.TargetAll}, nil
	default:
		return battle.TargetSelector{}, fmt.Errorf("unknown target kind %q", t.Kind)
	}
}

// EncounterDef is a party and the waves it fights.
type EncounterDef struct {
	ID    string `yaml:"id"`
	Name  string `yaml:"name"`
	Mode  string `yaml:"mode"`
	// Party lists character ids in slot order.
	Party []string `yaml:"party"`
	// Waves lists enemy ids per wave in fighting order.
	Waves [][]string `yaml:"waves"`
}

// Validate checks the encounter's own fields. References are resolved by Library.Build.
func (e *EncounterDef) Validate() error {
	if e.ID == "" {
		return fmt.Errorf("encounter: id must not be empty")
	}
	if _, err := battle.ParseMode(e.Mode); err != nil {
		return fmt.Errorf("encounter %q: %w", e.ID, err)
	}
	if len(e.Party) == 0 {
		return fmt.Errorf("encounter %q: party must not be empty", e.ID)
	}
	if len(e.Waves) == 0 {
		return fmt.Errorf("encounter %q: at least one wave is required", e.ID)
	}
	for i, w := range e.Waves {
		if len(w) == 0 {
			return fmt.Errorf("encounter %q: wave %d is empty", e.ID, i)
		}
	}
	return nil
}
