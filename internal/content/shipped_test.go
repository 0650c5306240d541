package content_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/cory-johannsen/wavebattle/internal/content"
	"github.com/cory-johannsen/wavebattle/internal/game/battle"
	"github.com/cory-johannsen/wavebattle/internal/game/rng"
	"github.com/cory-johannsen/wavebattle/internal/scripting"
	"github.com/cory-johannsen/wavebattle/internal/sim"
)

const shippedDir = "../../content"

func TestShippedContent_BuildsAndRuns(t *testing.T) {
	lib, err := content.LoadDir(shippedDir)
	require.NoError(t, err)

	m := scripting.NewManager(zap.NewNop(), 0)
	t.Cleanup(m.Close)
	require.NoError(t, m.LoadDir(shippedDir+"/scripts"))
	r := content.NewResolver(m)

	plan, err := sim.LoadPlan(shippedDir + "/plans/opening.yaml")
	require.NoError(t, err)

	for _, id := range lib.EncounterIDs() {
		t.Run(id, func(t *testing.T) {
			args, err := lib.Build(id, r)
			require.NoError(t, err)
			core, err := battle.New(args, battle.WithSource(rng.NewSeeded(7)), battle.WithMaxDrain(100000))
			require.NoError(t, err)

			var policy sim.Policy = sim.NewAutoPilot()
			if args.Mode == battle.ModeRealtime {
				policy = plan
			}
			res, err := sim.Run(context.Background(), core, policy, 2000)
			require.NoError(t, err)
			assert.Positive(t, res.Ticks)
			assert.LessOrEqual(t, res.Ticks, 2000)
			assert.Equal(t, core.State().Ended(), res.Outcome != sim.Capped)
		})
	}
}
