package emrtd

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWithDefaultsFillsZeroFields(t *testing.T) {
	cfg := ReaderConfig{}
	out := cfg.withDefaults()

	require.Equal(t, 160, out.ChunkSize)
	require.Equal(t, 2, out.MaxDGAttempts)
	require.NotNil(t, out.Rand)
	require.NotNil(t, out.Logger)
}

func TestWithDefaultsPreservesOverrides(t *testing.T) {
	rnd := bytes.NewReader([]byte{1, 2, 3})
	cfg := ReaderConfig{ChunkSize: 32, MaxDGAttempts: 5, Rand: rnd}
	out := cfg.withDefaults()

	require.Equal(t, 32, out.ChunkSize)
	require.Equal(t, 5, out.MaxDGAttempts)
	require.Same(t, rnd, out.Rand)
	require.NotNil(t, out.Logger)
}

func TestWithDefaultsTreatsNegativeAsUnset(t *testing.T) {
	cfg := ReaderConfig{ChunkSize: -1, MaxDGAttempts: -1}
	out := cfg.withDefaults()

	require.Equal(t, 160, out.ChunkSize)
	require.Equal(t, 2, out.MaxDGAttempts)
}

func TestDefaultConfigIsUsable(t *testing.T) {
	cfg := DefaultConfig()
	require.Equal(t, 160, cfg.ChunkSize)
	require.Equal(t, 2, cfg.MaxDGAttempts)
	require.NotNil(t, cfg.Rand)
	require.NotNil(t, cfg.Logger)
}
