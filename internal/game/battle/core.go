package battle

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/cory-johannsen/wavebattle/internal/game/rng"
)

// Core owns a State and advances it one Tick at a time. It is a pure state
// machine: it spawns no goroutines and is not safe for concurrent use.
type Core struct {
	id         uuid.UUID
	state      *State
	queue      Queue
	src        rng.Source
	logger     *zap.Logger
	maxDrain   int
	journal    func(Effect)
	terminated bool
}

// Option configures a Core.
type Option func(*Core)

// WithSource injects the randomness used for enemy pattern draws. The default
// is a source seeded from the OS.
func WithSource(src rng.Source) Option { return func(c *Core) { c.src = src } }

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *zap.Logger) Option { return func(c *Core) { c.logger = l } }

// WithMaxDrain bounds the number of effects one drain may process; 0 means
// unbounded. Exceeding it fails the tick with ErrEffectOverflow.
func WithMaxDrain(n int) Option { return func(c *Core) { c.maxDrain = n } }

// WithJournal receives every accepted effect in order. Replaying the journal
// with Replay rebuilds an identical State.
func WithJournal(fn func(Effect)) Option { return func(c *Core) { c.journal = fn } }

// New validates args and builds a Core.
//
// Postcondition: Returns a Core ready for Tick, or a construction error
// wrapping one of the Err* sentinels.
func New(args Args, opts ...Option) (*Core, error) {
	c := &Core{id: uuid.New(), logger: zap.NewNop()}
	for _, o := range opts {
		o(c)
	}
	if c.src == nil {
		c.src = rng.NewSeeded(rng.OSSeed())
	}
	st, err := NewState(args, c.src)
	if err != nil {
		return nil, fmt.Errorf("constructing battle: %w", err)
	}
	c.state = st
	c.logger = c.logger.With(zap.String("battle_id", c.id.String()))
	c.logger.Info("battle constructed",
		zap.Stringer("mode", args.Mode),
		zap.Int("chars", len(args.Chars)),
		zap.Int("waves", len(args.Dungeon)),
	)
	return c, nil
}

// ID returns the battle id used in logs.
func (c *Core) ID() uuid.UUID { return c.id }

// State returns the live state. Callers must not mutate it and should only
// read it between ticks.
func (c *Core) State() *State { return c.state }

// Terminated reports whether the core refuses further ticks.
func (c *Core) Terminated() bool { return c.terminated }

// Tick advances the battle by one frame (real-time) or one command
// (turn-based) and appends the observable outputs to buf.
//
// On error buf is returned at its original length: a tick either produces its
// full output or none.
func (c *Core) Tick(in Input, buf []Output) ([]Output, error) {
	if c.terminated {
		return buf, ErrAlreadyGameEnded
	}
	start := len(buf)
	var err error
	if c.state.mode == ModeTurnBased {
		buf, err = c.tickTurnBased(in, buf)
	} else {
		buf, err = c.tickRealtime(in, buf)
	}
	if err != nil {
		c.queue.reset()
		if errors.Is(err, ErrEffectOverflow) {
			c.terminated = true
			c.logger.Warn("effect drain bound exceeded", zap.Int("max_drain", c.maxDrain))
		}
		return buf[:start], err
	}
	if c.state.ended {
		c.terminated = true
	}
	return buf, nil
}

func (c *Core) tickRealtime(in Input, buf []Output) ([]Output, error) {
	switch in.Kind {
	case InputNone:
	case InputUseSkill:
		if err := c.checkUse(in.Skill); err != nil {
			return buf, err
		}
		c.queue.Push(UseSkill{Skill: in.Skill})
	default:
		return buf, fmt.Errorf("%w: command %d is turn-based only", ErrInvalidArgument, in.Kind)
	}
	for _, ch := range c.state.LivingChars() {
		ch.tick(c.state, &c.queue)
	}
	for _, en := range c.state.LivingEnemies() {
		en.tick(c.state, c.src, &c.queue)
	}
	return c.drainAndSettle(buf)
}

func (c *Core) tickTurnBased(in Input, buf []Output) ([]Output, error) {
	playerTurn := c.state.started && c.state.side == SidePlayer
	switch in.Kind {
	case InputNone:
		return buf, nil
	case InputGameStart:
		if c.state.started {
			return buf, fmt.Errorf("%w: game already started", ErrInvalidArgument)
		}
		c.queue.Push(ChangeTurn{Side: SidePlayer})
		c.playerTurnStart()
		return c.drainAndSettle(buf)
	case InputUseSkill:
		if !playerTurn {
			return buf, fmt.Errorf("%w: not the player turn", ErrInvalidArgument)
		}
		if err := c.checkUse(in.Skill); err != nil {
			return buf, err
		}
		c.queue.Push(UseSkill{Skill: in.Skill})
		return c.drainAndSettle(buf)
	case InputTurnEnd:
		if !playerTurn {
			return buf, fmt.Errorf("%w: not the player turn", ErrInvalidArgument)
		}
		return c.enemyTurn(buf)
	default:
		return buf, fmt.Errorf("%w: unknown command %d", ErrInvalidArgument, in.Kind)
	}
}

func (c *Core) checkUse(id SkillID) error {
	bs, ok := c.state.Skill(id)
	if !ok {
		return fmt.Errorf("%w: no skill %d/%d", ErrInvalidArgument, id.Char.Idx, id.Slot)
	}
	if _, atomic := bs.skill.(AtomicSkill); !atomic && c.state.mode == ModeTurnBased {
		return fmt.Errorf("%w: skill %q needs real-time ticks", ErrInvalidArgument, bs.skill.Info().ID)
	}
	if !bs.Useable(c.state) {
		return fmt.Errorf("skill %d/%d: %w", id.Char.Idx, id.Slot, ErrUnusableSkill)
	}
	return nil
}

func (c *Core) playerTurnStart() {
	c.queue.Push(HealSp{N: TurnStartHealSPNum})
	for _, ch := range c.state.LivingChars() {
		ch.turnStart(c.state, &c.queue)
	}
}

// enemyTurn runs the whole enemy side and opens the next player turn. Enemies
// of a wave that arrives mid-turn first act on the following enemy turn.
func (c *Core) enemyTurn(buf []Output) ([]Output, error) {
	wave := c.state.wave
	c.queue.Push(ChangeTurn{Side: SideEnemy})
	for _, en := range c.state.LivingEnemies() {
		en.turnStart(c.state, &c.queue)
	}
	buf, err := c.drainAndSettle(buf)
	if err != nil || c.state.ended {
		return buf, err
	}
	for next := 0; c.state.wave == wave; {
		en, ok := c.state.NextLivingEnemy(next)
		if !ok {
			break
		}
		next = en.id.Idx + 1
		en.act(c.state, c.src, &c.queue)
		if buf, err = c.drainAndSettle(buf); err != nil || c.state.ended {
			return buf, err
		}
	}
	c.queue.Push(ChangeTurn{Side: SidePlayer})
	c.playerTurnStart()
	return c.drainAndSettle(buf)
}

// drainAndSettle drains the queue, then lets the state decide wave advance
// or game end, draining again whenever that pushes an effect.
func (c *Core) drainAndSettle(buf []Output) ([]Output, error) {
	for {
		var err error
		if buf, err = c.drain(buf); err != nil {
			return buf, err
		}
		if !c.state.settle(&c.queue) {
			return buf, nil
		}
	}
}

func (c *Core) drain(buf []Output) ([]Output, error) {
	for n := 0; ; n++ {
		e, ok := c.queue.pop()
		if !ok {
			return buf, nil
		}
		if c.maxDrain > 0 && n >= c.maxDrain {
			return buf, fmt.Errorf("%w: more than %d effects", ErrEffectOverflow, c.maxDrain)
		}
		res := c.state.Accept(e)
		if !res.Accepted {
			continue
		}
		if c.journal != nil {
			c.journal(e)
		}
		c.state.triggerSubEffects(e, res, &c.queue)
		buf = c.state.project(buf, e, res)
		c.logAccepted(e, res)
	}
}

func (c *Core) logAccepted(e Effect, res AcceptResult) {
	switch e := e.(type) {
	case UseSkill:
		bs := c.state.mustSkill(e.Skill)
		c.logger.Debug("char used skill",
			zap.Int("char", e.Skill.Char.Idx),
			zap.String("skill", bs.skill.Info().ID),
		)
	case EnemyUseSkill:
		en := c.state.Enemy(e.Enemy)
		c.logger.Debug("enemy used skill",
			zap.String("enemy", en.name),
			zap.String("skill", en.runner.skills[e.Skill].Name),
		)
	case Damage:
		if res.Killed {
			c.logger.Debug("combatant died", zap.Stringer("target", e.Target))
		}
	case NextWave:
		c.logger.Info("wave cleared", zap.Int("wave", c.state.wave))
	case EndGame:
		if e.Win {
			c.logger.Info("battle won", zap.Int("turn", c.state.turn))
		} else {
			c.logger.Info("battle lost", zap.Int("wave", c.state.wave))
		}
	}
}
