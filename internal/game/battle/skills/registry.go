package skills

import (
	"errors"
	"fmt"
	"sort"

	"github.com/cory-johannsen/wavebattle/internal/game/battle"
)

// ErrUnknownSkill is returned for an id with no registered factory.
var ErrUnknownSkill = errors.New("unknown skill")

// Registry maps skill ids to factories.
type Registry struct {
	factories map[string]battle.SkillFactory
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{factories: make(map[string]battle.SkillFactory)}
}

// Register adds f under id, overwriting any existing entry.
func (r *Registry) Register(id string, f battle.SkillFactory) {
	r.factories[id] = f
}

// Factory returns the factory registered under id.
func (r *Registry) Factory(id string) (battle.SkillFactory, error) {
	f, ok := r.factories[id]
	if !ok {
		return nil, fmt.Errorf("%q: %w", id, ErrUnknownSkill)
	}
	return f, nil
}

// IDs returns the registered ids in sorted order.
func (r *Registry) IDs() []string {
	out := make([]string, 0, len(r.factories))
	for id := range r.factories {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// Builtin returns a Registry holding every built-in skill.
func Builtin() *Registry {
	r := NewRegistry()
	r.Register(IDFireball, Fireball)
	r.Register(IDSlash, Slash)
	r.Register(IDHeal, Heal)
	r.Register(IDWarCry, WarCry)
	r.Register(IDTaunt, Taunt)
	r.Register(IDGuard, Guard)
	r.Register(IDMeteor, Meteor)
	r.Register(IDQuickStrike, QuickStrike)
	r.Register(IDDesperation, Desperation)
	r.Register(IDOverdrive, Overdrive)
	return r
}
