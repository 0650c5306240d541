// Package passives holds the built-in passives and a registry that builds
// them from content parameters.
package passives

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/cory-johannsen/wavebattle/internal/game/attr"
	"github.com/cory-johannsen/wavebattle/internal/game/battle"
)

// ErrUnknownPassive is returned for an id with no registered constructor.
var ErrUnknownPassive = errors.New("unknown passive")

// ErrInvalidParams is returned when content parameters are out of range.
var ErrInvalidParams = errors.New("invalid passive params")

// Params are the numeric parameters of a passive spec. Missing keys fall
// back to the constructor's defaults.
type Params map[string]float64

func (p Params) get(key string, def float64) float64 {
	if v, ok := p[key]; ok {
		return v
	}
	return def
}

// intParam returns a whole-number parameter, rejecting fractions and values
// below min.
func (p Params) intParam(key string, def, min int) (int, error) {
	v := p.get(key, float64(def))
	if v != math.Trunc(v) || int(v) < min {
		return 0, fmt.Errorf("%s=%v: %w", key, v, ErrInvalidParams)
	}
	return int(v), nil
}

func (p Params) fraction(key string, def float64) (float64, error) {
	v := p.get(key, def)
	if v < 0 || v > 1 {
		return 0, fmt.Errorf("%s=%v: %w", key, v, ErrInvalidParams)
	}
	return v, nil
}

// Constructor builds a passive from params, returning an error instead of
// panicking on bad input.
type Constructor func(Params) (battle.Passive, error)

// Registry maps passive ids to constructors.
type Registry struct {
	ctors map[string]Constructor
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{ctors: make(map[string]Constructor)}
}

// Register adds ctor under id, overwriting any existing entry.
func (r *Registry) Register(id string, ctor Constructor) {
	r.ctors[id] = ctor
}

// New builds the passive registered under id.
func (r *Registry) New(id string, params Params) (battle.Passive, error) {
	ctor, ok := r.ctors[id]
	if !ok {
		return nil, fmt.Errorf("%q: %w", id, ErrUnknownPassive)
	}
	p, err := ctor(params)
	if err != nil {
		return nil, fmt.Errorf("passive %q: %w", id, err)
	}
	return p, nil
}

// IDs returns the registered ids in sorted order.
func (r *Registry) IDs() []string {
	out := make([]string, 0, len(r.ctors))
	for id := range r.ctors {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// Builtin returns a Registry holding every built-in passive.
func Builtin() *Registry {
	r := NewRegistry()
	r.Register(string(KindBurn), func(p Params) (battle.Passive, error) {
		n, err := p.intParam("turns", 3, 1)
		if err != nil {
			return nil, err
		}
		return NewBurn(n), nil
	})
	r.Register(string(KindAttackUp), func(p Params) (battle.Passive, error) {
		n, err := p.intParam("turns", 3, 1)
		if err != nil {
			return nil, err
		}
		mag := p.get("mag", 0.3)
		if mag < 0 {
			return nil, fmt.Errorf("mag=%v: %w", mag, ErrInvalidParams)
		}
		return NewAttackUp(n, mag), nil
	})
	r.Register(string(KindWeaken), func(p Params) (battle.Passive, error) {
		n, err := p.intParam("turns", 2, 1)
		if err != nil {
			return nil, err
		}
		cut, err := p.fraction("cut", 0.3)
		if err != nil {
			return nil, err
		}
		return NewWeaken(n, cut), nil
	})
	r.Register(string(KindShield), func(p Params) (battle.Passive, error) {
		n, err := p.intParam("turns", 2, 1)
		if err != nil {
			return nil, err
		}
		cut, err := p.fraction("cut", 0.5)
		if err != nil {
			return nil, err
		}
		return NewShield(n, cut), nil
	})
	r.Register(string(KindPoison), func(p Params) (battle.Passive, error) {
		rate, err := p.fraction("rate", 0.01)
		if err != nil {
			return nil, err
		}
		interval, err := p.intParam("interval", attr.TicksPerSecond, 1)
		if err != nil {
			return nil, err
		}
		ticks, err := p.intParam("ticks", 10*attr.TicksPerSecond, 1)
		if err != nil {
			return nil, err
		}
		return NewPoison(rate, interval, ticks), nil
	})
	r.Register(string(KindRegen), func(p Params) (battle.Passive, error) {
		rate, err := p.fraction("rate", 0.05)
		if err != nil {
			return nil, err
		}
		d, err := p.intParam("duration", 3, 1)
		if err != nil {
			return nil, err
		}
		return NewRegen(rate, d), nil
	})
	r.Register(string(KindCounter), func(p Params) (battle.Passive, error) {
		charges, err := p.intParam("charges", 1, 1)
		if err != nil {
			return nil, err
		}
		mag := p.get("mag", 0.5)
		if mag < 0 {
			return nil, fmt.Errorf("mag=%v: %w", mag, ErrInvalidParams)
		}
		interval, err := p.intParam("interval", TicksPerTurn, 1)
		if err != nil {
			return nil, err
		}
		return NewCounter(charges, mag, interval), nil
	})
	r.Register(string(KindChantBreak), func(p Params) (battle.Passive, error) {
		n, err := p.intParam("charges", 1, 1)
		if err != nil {
			return nil, err
		}
		return NewChantBreak(n), nil
	})
	return r
}
