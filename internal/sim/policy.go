// Package sim drives battle cores to completion with scripted or automatic
// input, alone or in parallel batches.
package sim

import (
	"bytes"
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/cory-johannsen/wavebattle/internal/game/battle"
)

// Policy chooses the input for each tick.
type Policy interface {
	// Next returns the input to feed on tick, given the state before it.
	Next(tick int, s *battle.State) battle.Input
}

// AutoPilot uses the first useable skill of each character.
//
// In real time it starts at most one skill per tick, scanning characters in
// slot order. Turn-based, it opens the game, gives every living character
// one chance per turn, then ends the turn.
type AutoPilot struct {
	turn   int
	cursor int
}

// NewAutoPilot returns a fresh AutoPilot. Instances keep per-battle state
// and must not be shared between runs.
func NewAutoPilot() *AutoPilot {
	return &AutoPilot{turn: -1}
}

func (a *AutoPilot) Next(_ int, s *battle.State) battle.Input {
	if s.Mode() == battle.ModeRealtime {
		for _, c := range s.LivingChars() {
			if in, ok := firstUseable(c, s, false); ok {
				return in
			}
		}
		return battle.None()
	}

	if !s.Started() {
		return battle.GameStart()
	}
	if s.Turn() != a.turn {
		a.turn = s.Turn()
		a.cursor = 0
	}
	chars := s.Chars()
	for a.cursor < len(chars) {
		c := chars[a.cursor]
		a.cursor++
		if c.IsDead() {
			continue
		}
		if in, ok := firstUseable(c, s, true); ok {
			return in
		}
	}
	return battle.TurnEnd()
}

// firstUseable picks the lowest useable slot. Turn-based play skips phased
// skills, which only progress in real time.
func firstUseable(c *battle.Char, s *battle.State, atomicOnly bool) (battle.Input, bool) {
	for _, bs := range c.Skills() {
		if atomicOnly {
			if _, ok := bs.Skill().(battle.AtomicSkill); !ok {
				continue
			}
		}
		if bs.Useable(s) {
			id := bs.ID()
			return battle.Use(id.Char.Idx, id.Slot), true
		}
	}
	return battle.Input{}, false
}

// Command names accepted in plan files.
const (
	CommandNone      = "none"
	CommandUse       = "use"
	CommandTurnEnd   = "turn_end"
	CommandGameStart = "game_start"
)

// Step is one scheduled input of a Plan.
type Step struct {
	Tick    int    `yaml:"tick"`
	Command string `yaml:"command"`
	Char    int    `yaml:"char"`
	Slot    int    `yaml:"slot"`
}

func (s Step) input() (battle.Input, error) {
	switch s.Command {
	case CommandNone:
		return battle.None(), nil
	case CommandUse:
		if s.Char < 0 || s.Slot < 0 {
			return battle.Input{}, fmt.Errorf("use needs non-negative char and slot")
		}
		return battle.Use(s.Char, s.Slot), nil
	case CommandTurnEnd:
		return battle.TurnEnd(), nil
	case CommandGameStart:
		return battle.GameStart(), nil
	default:
		return battle.Input{}, fmt.Errorf("unknown command %q", s.Command)
	}
}

// Plan replays a fixed schedule of inputs. Ticks without a step get None.
type Plan struct {
	inputs map[int]battle.Input
	last   int
}

// NewPlan validates steps and builds a Plan.
//
// Postcondition: Returns an error if any tick is negative or repeated, or a
// command is unknown.
func NewPlan(steps []Step) (*Plan, error) {
	p := &Plan{inputs: make(map[int]battle.Input, len(steps)), last: -1}
	for i, st := range steps {
		if st.Tick < 0 {
			return nil, fmt.Errorf("plan step %d: tick must be >= 0, got %d", i, st.Tick)
		}
		if _, dup := p.inputs[st.Tick]; dup {
			return nil, fmt.Errorf("plan step %d: tick %d is scheduled twice", i, st.Tick)
		}
		in, err := st.input()
		if err != nil {
			return nil, fmt.Errorf("plan step %d: %w", i, err)
		}
		p.inputs[st.Tick] = in
		p.last = max(p.last, st.Tick)
	}
	return p, nil
}

// ParsePlan decodes a YAML list of steps, rejecting unknown keys.
func ParsePlan(data []byte) (*Plan, error) {
	var steps []Step
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&steps); err != nil {
		return nil, fmt.Errorf("parsing plan: %w", err)
	}
	return NewPlan(steps)
}

// LoadPlan reads and parses a plan file.
func LoadPlan(path string) (*Plan, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading plan %q: %w", path, err)
	}
	return ParsePlan(data)
}

// Next returns the scheduled input for tick.
func (p *Plan) Next(tick int, _ *battle.State) battle.Input {
	if in, ok := p.inputs[tick]; ok {
		return in
	}
	return battle.None()
}

// Ticks returns the scheduled ticks in ascending order.
func (p *Plan) Ticks() []int {
	out := make([]int, 0, len(p.inputs))
	for t := range p.inputs {
		out = append(out, t)
	}
	sort.Ints(out)
	return out
}

// LastTick is the highest scheduled tick, or -1 for an empty plan.
func (p *Plan) LastTick() int { return p.last }
