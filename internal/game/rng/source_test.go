package rng_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/wavebattle/internal/game/rng"
)

func TestSeeded_SameSeedSameSequence(t *testing.T) {
	a := rng.NewSeeded(42)
	b := rng.NewSeeded(42)
	for i := 0; i < 100; i++ {
		assert.Equal(t, a.Intn(1000), b.Intn(1000))
	}
}

func TestSeeded_Property_InRange(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		seed := rapid.Uint64().Draw(rt, "seed")
		n := rapid.IntRange(1, 500).Draw(rt, "n")
		v := rng.NewSeeded(seed).Intn(n)
		assert.GreaterOrEqual(rt, v, 0)
		assert.Less(rt, v, n)
	})
}

func TestSeeded_PanicsOnZero(t *testing.T) {
	assert.Panics(t, func() { rng.NewSeeded(1).Intn(0) })
}

func TestNewFromConfig_ZeroUsesOSSeed(t *testing.T) {
	src := rng.NewFromConfig(0)
	require.NotNil(t, src)
	v := src.Intn(6)
	assert.GreaterOrEqual(t, v, 0)
	assert.Less(t, v, 6)
}

func TestNewFromConfig_NonZeroIsDeterministic(t *testing.T) {
	a := rng.NewFromConfig(7)
	b := rng.NewSeeded(7)
	assert.Equal(t, a.Intn(100), b.Intn(100))
}

func TestLoggedSource_LogsEachDraw(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	src := rng.NewLogged(rng.NewSeeded(3), zap.New(core))
	want := rng.NewSeeded(3).Intn(10)
	got := src.Intn(10)
	assert.Equal(t, want, got)
	entries := logs.FilterMessage("rng draw").All()
	require.Len(t, entries, 1)
	assert.Equal(t, int64(10), entries[0].ContextMap()["n"])
}
