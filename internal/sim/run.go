package sim

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/cory-johannsen/wavebattle/internal/game/battle"
)

// Outcome is how a run ended.
type Outcome int

const (
	Capped Outcome = iota
	Won
	Lost
)

// String returns "capped", "won", or "lost".
func (o Outcome) String() string {
	switch o {
	case Won:
		return "won"
	case Lost:
		return "lost"
	default:
		return "capped"
	}
}

// Result summarizes one run.
type Result struct {
	BattleID uuid.UUID
	Outcome  Outcome
	// Ticks is the number of battle frames played. A rejected input and the
	// idle frame played in its place count once.
	Ticks int
	// Outputs counts every effect and event observed.
	Outputs int
	// Rejected counts inputs the core refused with ErrInvalidArgument.
	Rejected int
	// Wave is the wave cursor when the run stopped.
	Wave int
}

type runOptions struct {
	pace    time.Duration
	logger  *zap.Logger
	sink    func(tick int, out []battle.Output)
	cleanup []func()
}

// RunOption configures Run.
type RunOption func(*runOptions)

// WithPace spaces ticks d apart in wall-clock time. Zero runs flat out.
func WithPace(d time.Duration) RunOption { return func(o *runOptions) { o.pace = d } }

// WithRunLogger logs rejected inputs and the final outcome to l.
func WithRunLogger(l *zap.Logger) RunOption { return func(o *runOptions) { o.logger = l } }

// WithSink receives each tick's outputs. The slice is reused after the call returns.
func WithSink(fn func(tick int, out []battle.Output)) RunOption {
	return func(o *runOptions) { o.sink = fn }
}

// WithCleanup runs fn once Run returns, whatever the outcome. Per-run
// resources handed out by a BuildFunc are released this way.
func WithCleanup(fn func()) RunOption {
	return func(o *runOptions) { o.cleanup = append(o.cleanup, fn) }
}

// Run ticks core with inputs from policy until the battle ends, maxTicks
// frames have been played, or ctx is cancelled.
//
// Precondition: maxTicks must be > 0.
// Postcondition: On a nil error, Outcome is Won or Lost iff the core emitted
// the matching event. Inputs rejected with battle.ErrInvalidArgument are
// counted and their frame is played with battle.None(); any other core error
// is returned with the partial result.
func Run(ctx context.Context, core *battle.Core, policy Policy, maxTicks int, opts ...RunOption) (Result, error) {
	if maxTicks <= 0 {
		panic("sim.Run: maxTicks must be > 0")
	}
	o := runOptions{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(&o)
	}
	for _, fn := range o.cleanup {
		defer fn()
	}
	logger := o.logger.With(zap.String("battle_id", core.ID().String()))

	var pace <-chan time.Time
	if o.pace > 0 {
		ticker := time.NewTicker(o.pace)
		defer ticker.Stop()
		pace = ticker.C
	}

	res := Result{BattleID: core.ID()}
	buf := make([]battle.Output, 0, 64)
	for res.Ticks < maxTicks {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		if pace != nil {
			select {
			case <-ctx.Done():
				return res, ctx.Err()
			case <-pace:
			}
		}

		tick := res.Ticks
		in := policy.Next(tick, core.State())
		out, err := core.Tick(in, buf[:0])
		if errors.Is(err, battle.ErrInvalidArgument) {
			res.Rejected++
			logger.Debug("input rejected", zap.Int("tick", tick), zap.Error(err))
			// A rejected input leaves the frame unplayed; play it idle so
			// later plan steps land on the frame they name.
			out, err = core.Tick(battle.None(), buf[:0])
		}
		res.Ticks++
		res.Wave = core.State().WaveCursor()
		if err != nil {
			return res, fmt.Errorf("tick %d: %w", tick, err)
		}
		res.Outputs += len(out)
		if o.sink != nil {
			o.sink(tick, out)
		}
		for _, ev := range out {
			if ev.Kind != battle.OutputEvent {
				continue
			}
			switch ev.Event.Kind {
			case battle.EventWin:
				res.Outcome = Won
			case battle.EventLose:
				res.Outcome = Lost
			}
		}
		if res.Outcome != Capped {
			break
		}
		buf = out
	}
	logger.Info("run finished",
		zap.Stringer("outcome", res.Outcome),
		zap.Int("ticks", res.Ticks),
		zap.Int("outputs", res.Outputs),
		zap.Int("rejected", res.Rejected),
	)
	return res, nil
}
