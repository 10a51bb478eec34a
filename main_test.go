package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"skirmish/config"

	"github.com/stretchr/testify/require"
)

func TestRun(t *testing.T) {
	input, err := os.ReadFile(filepath.Join("assets", "sample.txt"))
	require.NoError(t, err)

	t.Run("printing both answers", func(t *testing.T) {
		var out bytes.Buffer

		err := run(&out, config.Default(), string(input))

		require.NoError(t, err)
		require.Equal(t,
			"Part 1. 47 rounds * 590 remaining hit points = 27730.\n"+
				"Part 2. Attack power: 15. 29 rounds * 172 remaining hit points = 4988.\n",
			out.String())
	})

	t.Run("storing probe records", func(t *testing.T) {
		var out bytes.Buffer
		cfg := config.Default()
		cfg.Records = t.TempDir()
		cfg.Search.Goroutines = 4

		err := run(&out, cfg, string(input))

		require.NoError(t, err)
		require.Contains(t, out.String(), "Attack power: 15.")
		matches, err := filepath.Glob(filepath.Join(cfg.Records, "strength_search", "*", "*.csv"))
		require.NoError(t, err)
		require.Len(t, matches, 2)
	})

	t.Run("reporting a malformed map", func(t *testing.T) {
		var out bytes.Buffer

		err := run(&out, config.Default(), "#x#")

		require.Error(t, err)
		require.Empty(t, out.String())
	})
}
