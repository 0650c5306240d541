package content

import (
	"fmt"
	"math"
	"strings"

	"github.com/cory-johannsen/wavebattle/internal/game/attr"
	"github.com/cory-johannsen/wavebattle/internal/game/battle"
	"github.com/cory-johannsen/wavebattle/internal/game/battle/passives"
	"github.com/cory-johannsen/wavebattle/internal/game/battle/skills"
	"github.com/cory-johannsen/wavebattle/internal/scripting"
)

// Resolver turns content ids into battle values.
type Resolver struct {
	Skills   *skills.Registry
	Passives *passives.Registry
	// Scripts resolves "lua:<name>" passives. Nil rejects them.
	Scripts *scripting.Manager
}

// NewResolver returns a Resolver over the built-in registries and the
// optional script manager.
func NewResolver(scripts *scripting.Manager) *Resolver {
	return &Resolver{Skills: skills.Builtin(), Passives: passives.Builtin(), Scripts: scripts}
}

// Passive builds a fresh passive from spec.
//
// Postcondition: Returns a non-nil passive or an error; never panics on bad params.
func (r *Resolver) Passive(spec PassiveSpec) (battle.Passive, error) {
	name, scripted := strings.CutPrefix(spec.ID, scripting.KindPrefix)
	if !scripted {
		return r.Passives.New(spec.ID, passives.Params(spec.Params))
	}
	if r.Scripts == nil {
		return nil, fmt.Errorf("passive %q: scripting is not configured", spec.ID)
	}
	turns, err := wholeParam(spec.Params, "turns")
	if err != nil {
		return nil, fmt.Errorf("passive %q: %w", spec.ID, err)
	}
	charges, err := wholeParam(spec.Params, "charges")
	if err != nil {
		return nil, fmt.Errorf("passive %q: %w", spec.ID, err)
	}
	p, err := r.Scripts.NewPassive(name, turns, charges)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func wholeParam(params map[string]float64, key string) (int, error) {
	v := params[key]
	if v < 0 || v != math.Trunc(v) {
		return 0, fmt.Errorf("%s=%v must be a non-negative whole number", key, v)
	}
	return int(v), nil
}

// Character builds the construction args of one party member.
func (r *Resolver) Character(def *CharacterDef) (battle.CharArgs, error) {
	args := battle.CharArgs{
		StaticID:  def.ID,
		Name:      def.Name,
		Level:     def.Level,
		Potential: def.Potential,
	}
	if w := def.Weapon; w != nil {
		t, err := attr.ParseWeaponType(w.Type)
		if err != nil {
			return battle.CharArgs{}, fmt.Errorf("character %q: %w", def.ID, err)
		}
		args.Weapon = &attr.Weapon{Type: t, PAtk: w.PAtk, MAtk: w.MAtk}
	}
	for _, id := range def.Skills {
		f, err := r.Skills.Factory(id)
		if err != nil {
			return battle.CharArgs{}, fmt.Errorf("character %q: %w", def.ID, err)
		}
		args.Skills = append(args.Skills, f)
	}
	return args, nil
}

// Enemy builds the construction args of one enemy.
func (r *Resolver) Enemy(def *EnemyDef) (battle.EnemyArgs, error) {
	args := battle.EnemyArgs{
		StaticID:  def.ID,
		Name:      def.Name,
		Level:     def.Level,
		Potential: def.Potential,
		Patterns:  make([][]int, len(def.Patterns)),
	}
	for i, p := range def.Patterns {
		args.Patterns[i] = append([]int(nil), p...)
	}
	for i, sd := range def.Skills {
		sk := battle.EnemySkill{
			ID:             i,
			Name:           sd.Name,
			NeedMP:         sd.NeedMP,
			StartUpFrames:  sd.StartUpFrames,
			RecoveryFrames: sd.RecoveryFrames,
		}
		for j, ad := range sd.Actions {
			step, err := r.step(ad)
			if err != nil {
				return battle.EnemyArgs{}, fmt.Errorf("enemy %q skill %q action %d: %w", def.ID, sd.Name, j, err)
			}
			sk.Actions = append(sk.Actions, step)
		}
		args.Skills = append(args.Skills, sk)
	}
	for _, spec := range def.Passives {
		p, err := r.Passive(spec)
		if err != nil {
			return battle.EnemyArgs{}, fmt.Errorf("enemy %q: %w", def.ID, err)
		}
		args.Passives = append(args.Passives, p)
	}
	return args, nil
}

func (r *Resolver) step(ad ActionDef) (battle.EnemyStep, error) {
	sel, err := parseTarget(ad.Target)
	if err != nil {
		return battle.EnemyStep{}, err
	}
	if ad.Passive != nil {
		p, err := r.Passive(*ad.Passive)
		if err != nil {
			return battle.EnemyStep{}, err
		}
		return battle.EnemyStep{Target: sel, Action: battle.PassiveAction{Passive: p}}, nil
	}
	ty, err := battle.ParseDamageType(ad.Damage.Type)
	if err != nil {
		return battle.EnemyStep{}, err
	}
	count := ad.Damage.Count
	if count == 0 {
		count = 1
	}
	return battle.EnemyStep{Target: sel, Action: battle.DamageAction{Type: ty, Mag: ad.Damage.Mag, Count: count}}, nil
}

// Build resolves an encounter into battle construction args.
//
// Precondition: r must hold the registries referenced by the content.
// Postcondition: Returns args that pass battle.Args.Validate, or an error.
func (l *Library) Build(encounterID string, r *Resolver) (battle.Args, error) {
	enc, ok := l.Encounters[encounterID]
	if !ok {
		return battle.Args{}, fmt.Errorf("encounter %q: %w", encounterID, ErrNotFound)
	}
	mode, err := battle.ParseMode(enc.Mode)
	if err != nil {
		return battle.Args{}, fmt.Errorf("encounter %q: %w", enc.ID, err)
	}
	args := battle.Args{Mode: mode}
	for _, id := range enc.Party {
		def, ok := l.Characters[id]
		if !ok {
			return battle.Args{}, fmt.Errorf("encounter %q character %q: %w", enc.ID, id, ErrNotFound)
		}
		ca, err := r.Character(def)
		if err != nil {
			return battle.Args{}, fmt.Errorf("encounter %q: %w", enc.ID, err)
		}
		args.Chars = append(args.Chars, ca)
	}
	for w, wave := range enc.Waves {
		var enemies []battle.EnemyArgs
		for _, id := range wave {
			def, ok := l.Enemies[id]
			if !ok {
				return battle.Args{}, fmt.Errorf("encounter %q wave %d enemy %q: %w", enc.ID, w, id, ErrNotFound)
			}
			ea, err := r.Enemy(def)
			if err != nil {
				return battle.Args{}, fmt.Errorf("encounter %q wave %d: %w", enc.ID, w, err)
			}
			enemies = append(enemies, ea)
		}
		args.Dungeon = append(args.Dungeon, enemies)
	}
	if err := args.Validate(); err != nil {
		return battle.Args{}, fmt.Errorf("encounter %q: %w", enc.ID, err)
	}
	return args, nil
}
