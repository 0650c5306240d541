package battle

import (
	"fmt"

	"github.com/cory-johannsen/wavebattle/internal/game/rng"
)

// LtSnapshot is the comparable state of one combatant.
type LtSnapshot struct {
	HP       float64
	MP       float64
	Dead     bool
	Passives []PassiveKind
}

// CharSnapshot adds the character-only state.
type CharSnapshot struct {
	LtSnapshot
	Hate      float64
	Cooldowns []float64
	Using     int
	Progress  float64
}

// EnemySnapshot adds the runner state.
type EnemySnapshot struct {
	LtSnapshot
	Queue []int
	Frame int
}

// Snapshot is a value copy of everything Accept can change.
type Snapshot struct {
	Chars   []CharSnapshot
	Waves   [][]EnemySnapshot
	Wave    int
	Side    Side
	Started bool
	Turn    int
	SP      float64
	Ended   bool
	Won     bool
}

func ltSnapshot(l *LtCommon) LtSnapshot {
	return LtSnapshot{
		HP:       l.hp.Fraction(),
		MP:       l.mp.Fraction(),
		Dead:     l.IsDead(),
		Passives: l.passives.Kinds(),
	}
}

// Snapshot captures the current state.
func (s *State) Snapshot() Snapshot {
	snap := Snapshot{
		Wave:    s.wave,
		Side:    s.side,
		Started: s.started,
		Turn:    s.turn,
		SP:      s.sp.Fraction(),
		Ended:   s.ended,
		Won:     s.won,
	}
	for _, c := range s.chars {
		cs := CharSnapshot{LtSnapshot: ltSnapshot(&c.LtCommon), Hate: c.hate, Using: c.using}
		for _, bs := range c.skills {
			cs.Cooldowns = append(cs.Cooldowns, bs.cooldown)
		}
		if bs, ok := c.Using(); ok {
			if p, running := bs.skill.CurrentProgress(); running {
				cs.Progress = p.Overall
			}
		}
		snap.Chars = append(snap.Chars, cs)
	}
	for _, wave := range s.waves {
		var ws []EnemySnapshot
		for _, e := range wave {
			ws = append(ws, EnemySnapshot{
				LtSnapshot: ltSnapshot(&e.LtCommon),
				Queue:      append([]int(nil), e.runner.queue...),
				Frame:      e.runner.frame,
			})
		}
		snap.Waves = append(snap.Waves, ws)
	}
	return snap
}

// Replay rebuilds a State from the same construction inputs and a journal of
// accepted effects. src must be seeded like the one the original Core used,
// because initial enemy schedules are drawn at construction; later draws
// travel inside AdvanceEnemySkill effects.
func Replay(args Args, src rng.Source, journal []Effect) (*State, error) {
	s, err := NewState(args, src)
	if err != nil {
		return nil, err
	}
	for i, e := range journal {
		if !s.Accept(e).Accepted {
			return nil, fmt.Errorf("replay: effect %d (%T) was not accepted", i, e)
		}
	}
	return s, nil
}
