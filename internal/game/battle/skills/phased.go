package skills

import (
	"fmt"

	"github.com/cory-johannsen/wavebattle/internal/game/battle"
)

// Unit is one timed segment of a phased skill. Duration is measured in
// progress points; a character of speed 1.0 gains one point per tick.
type Unit struct {
	Duration float64
	Phase    battle.Phase
	// Fire runs once, on the tick progress first reaches the unit's start.
	// It may be nil for pure wind-up or recovery units.
	Fire Action
}

// Phased advances through its units over real-time ticks, chanting then
// acting. The core settles the cost when it starts and the cooldown when it
// ends, so an interrupted chant keeps its MP spent.
type Phased struct {
	info   battle.SkillInfo
	units  []Unit
	starts []float64
	total  float64

	running  bool
	progress float64
	step     int
}

// NewPhased returns a phased skill.
//
// Precondition: units is non-empty and every Duration is > 0.
func NewPhased(info battle.SkillInfo, units []Unit) *Phased {
	if len(units) == 0 {
		panic(fmt.Sprintf("skills: phased skill %q has no units", info.ID))
	}
	p := &Phased{info: info, units: units}
	for i, u := range units {
		if u.Duration <= 0 {
			panic(fmt.Sprintf("skills: phased skill %q unit %d has duration %v", info.ID, i, u.Duration))
		}
		p.starts = append(p.starts, p.total)
		p.total += u.Duration
	}
	return p
}

func (p *Phased) Info() battle.SkillInfo { return p.info }
func (p *Phased) Cost(battle.SkillID, *battle.State) battle.Cost { return p.info.Cost }
func (p *Phased) TotalDuration() float64 { return p.total }

func (p *Phased) CustomUseable(battle.SkillID, *battle.State) battle.Useable { return battle.Normal() }

func (p *Phased) Start() {
	p.running = true
	p.progress = 0
	p.step = 0
}

func (p *Phased) End() {
	p.running = false
	p.progress = 0
	p.step = 0
}

// Update applies a progress message. Step counts units whose effect fired.
func (p *Phased) Update(msg battle.SkillMessage) {
	if msg.Reset {
		p.progress = 0
		p.step = 0
		return
	}
	p.progress += msg.AddProgress
	p.step += msg.Step
	if p.step > len(p.units) {
		p.step = len(p.units)
	}
}

// Tick emits the units reached this tick, the progress update and, once the
// total is reached, EndSkill.
func (p *Phased) Tick(id battle.SkillID, s *battle.State, out *battle.Queue) {
	if !p.running {
		return
	}
	speed := s.Char(id.Char).Speed()
	next := p.progress + speed
	fired := 0
	for i := p.step; i < len(p.units) && p.starts[i] <= next; i++ {
		if f := p.units[i].Fire; f != nil {
			f(id, s, out)
		}
		fired++
	}
	out.Push(battle.UpdateSkillState{Skill: id, Msg: battle.SkillMessage{Step: fired, AddProgress: speed}})
	if next >= p.total {
		out.Push(battle.EndSkill{Skill: id})
	}
}

// CurrentProgress reports the phase of the unit progress is in, the progress
// through the contiguous run of units sharing that phase, and the overall
// progress. Both ratios are capped at 1.
func (p *Phased) CurrentProgress() (battle.Progress, bool) {
	if !p.running {
		return battle.Progress{}, false
	}
	u := len(p.units) - 1
	for i := range p.units {
		if p.progress < p.starts[i]+p.units[i].Duration {
			u = i
			break
		}
	}
	phase := p.units[u].Phase
	first, last := u, u
	for first > 0 && p.units[first-1].Phase == phase {
		first--
	}
	for last < len(p.units)-1 && p.units[last+1].Phase == phase {
		last++
	}
	from := p.starts[first]
	to := p.starts[last] + p.units[last].Duration
	return battle.Progress{
		Phase:   phase,
		Chunk:   min((p.progress-from)/(to-from), 1),
		Overall: min(p.progress/p.total, 1),
	}, true
}
