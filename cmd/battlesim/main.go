// Package main provides the battle simulator binary, which loads an
// encounter from YAML content and runs it to completion in seeded batches.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/cory-johannsen/wavebattle/internal/config"
	"github.com/cory-johannsen/wavebattle/internal/content"
	"github.com/cory-johannsen/wavebattle/internal/game/battle"
	"github.com/cory-johannsen/wavebattle/internal/game/rng"
	"github.com/cory-johannsen/wavebattle/internal/observability"
	"github.com/cory-johannsen/wavebattle/internal/scripting"
	"github.com/cory-johannsen/wavebattle/internal/sim"
)

func main() {
	start := time.Now()

	configPath := flag.String("config", "configs/battlesim.yaml", "path to configuration file")
	encounter := flag.String("encounter", "", "encounter id; overrides content.encounter")
	runs := flag.Int("runs", 0, "number of runs; overrides sim.runs when > 0")
	pace := flag.Duration("pace", 0, "wall-clock delay between ticks; 0 runs flat out")
	flag.Parse()

	v := config.NewViper(*configPath)
	if err := v.ReadInConfig(); err != nil {
		log.Fatalf("reading config: %v", err)
	}
	if *encounter != "" {
		v.Set("content.encounter", *encounter)
	}
	if *runs > 0 {
		v.Set("sim.runs", *runs)
	}
	cfg, err := config.LoadFromViper(v)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logging)
	if err != nil {
		log.Fatalf("initializing logger: %v", err)
	}
	defer logger.Sync()

	lib, err := content.LoadDir(cfg.Content.Dir)
	if err != nil {
		logger.Fatal("loading content", zap.Error(err))
	}
	logger.Info("content loaded",
		zap.Int("characters", len(lib.Characters)),
		zap.Int("enemies", len(lib.Enemies)),
		zap.Strings("encounters", lib.EncounterIDs()),
	)

	// Lua globals persist inside a Manager, so each run loads its own and no
	// script state crosses runs or seeds.
	loadScripts := func(l *zap.Logger) (*scripting.Manager, error) {
		if cfg.Scripting.Dir == "" {
			return nil, nil
		}
		return scripting.LoadManager(l.Named("lua"), cfg.Scripting.InstructionLimit, cfg.Scripting.Dir)
	}

	// Fail fast on broken scripts or a broken encounter before spinning up workers.
	scripts, err := loadScripts(logger)
	if err != nil {
		logger.Fatal("loading scripts", zap.String("dir", cfg.Scripting.Dir), zap.Error(err))
	}
	_, err = lib.Build(cfg.Content.Encounter, content.NewResolver(scripts))
	if scripts != nil {
		scripts.Close()
	}
	if err != nil {
		logger.Fatal("building encounter", zap.Error(err))
	}

	var plan *sim.Plan
	if cfg.Content.Plan != "" {
		if plan, err = sim.LoadPlan(cfg.Content.Plan); err != nil {
			logger.Fatal("loading plan", zap.Error(err))
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	debug := cfg.Logging.Level == "debug"
	build := func(_ context.Context, i int) (*battle.Core, sim.Policy, []sim.RunOption, error) {
		seed := runSeed(cfg.Engine.Seed, i)
		runLogger := observability.ForRun(logger, i, int64(seed))
		scripts, err := loadScripts(runLogger)
		if err != nil {
			return nil, nil, nil, err
		}
		release := func() {
			if scripts != nil {
				scripts.Close()
			}
		}
		args, err := lib.Build(cfg.Content.Encounter, content.NewResolver(scripts))
		if err != nil {
			release()
			return nil, nil, nil, err
		}
		var src rng.Source = rng.NewSeeded(seed)
		if debug {
			src = rng.NewLogged(src, runLogger)
		}
		core, err := battle.New(args,
			battle.WithSource(src),
			battle.WithLogger(runLogger),
			battle.WithMaxDrain(cfg.Engine.MaxDrainEffects),
		)
		if err != nil {
			release()
			return nil, nil, nil, err
		}
		var policy sim.Policy = sim.NewAutoPilot()
		if plan != nil {
			policy = plan
		}
		return core, policy, []sim.RunOption{
			sim.WithRunLogger(runLogger),
			sim.WithPace(*pace),
			sim.WithCleanup(release),
		}, nil
	}

	results, err := sim.RunBatch(ctx, cfg.Sim.Runs, cfg.Sim.Parallelism, cfg.Engine.MaxTicks, build)
	if err != nil {
		logger.Fatal("simulation failed", zap.Error(err))
	}

	sum := sim.Summarize(results)
	logger.Info("simulation complete",
		zap.String("encounter", cfg.Content.Encounter),
		zap.Int("runs", sum.Runs),
		zap.Int("won", sum.Won),
		zap.Int("lost", sum.Lost),
		zap.Int("capped", sum.Capped),
		zap.Float64("win_rate", sum.WinRate()),
		zap.Float64("mean_ticks", sum.MeanTicks),
		zap.Int("rejected_inputs", sum.Rejected),
		zap.Duration("elapsed", time.Since(start)),
	)
}

// runSeed derives run i's seed. A zero base draws every run's seed from the OS.
func runSeed(base int64, i int) uint64 {
	if base == 0 {
		return rng.OSSeed()
	}
	return uint64(base) + uint64(i)
}
