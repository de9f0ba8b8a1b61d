package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/Carmen-Shannon/oxy-galaxy/galaxy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummarize(t *testing.T) {
	cloud := &galaxy.PointCloud{
		Positions: []float32{3, 0, 4, -1, 2, 0},
	}
	s := summarize(cloud)

	assert.Equal(t, 2, s.Count)
	assert.False(t, s.HasColors)
	assert.Equal(t, [3]float32{-1, 0, 0}, s.Min)
	assert.Equal(t, [3]float32{3, 2, 4}, s.Max)
	assert.InDelta(t, 5, s.MaxRadius, 1e-9)
	assert.InDelta(t, 3, s.MeanRadius, 1e-9)
}

func TestSummarizeEmpty(t *testing.T) {
	s := summarize(&galaxy.PointCloud{Positions: []float32{}})
	assert.Zero(t, s.Count)
	var buf bytes.Buffer
	s.write(&buf)
	assert.NotContains(t, buf.String(), "bounds")
}

func execute(t *testing.T, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCommand()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	require.NoError(t, cmd.Execute())
	return out.String()
}

func TestGenerateCommandIsReproducibleWithSeed(t *testing.T) {
	args := []string{"generate", "--count=50", "--seed=7", "--points"}
	first := execute(t, args...)
	second := execute(t, args...)

	assert.Contains(t, first, "classic galaxy")
	assert.Contains(t, first, "stars: 50 (colors: false)")

	pointLines := func(s string) []string {
		lines := strings.Split(strings.TrimSpace(s), "\n")
		return lines[len(lines)-50:]
	}
	assert.Equal(t, pointLines(first), pointLines(second))
	assert.Len(t, strings.Fields(pointLines(first)[0]), 3)
}

func TestGenerateCommandColoredVariant(t *testing.T) {
	out := execute(t, "generate", "--variant=colored", "--count=10", "--seed=1", "--points")
	assert.Contains(t, out, "stars: 10 (colors: true)")
	lines := strings.Split(strings.TrimSpace(out), "\n")
	assert.Len(t, strings.Fields(lines[len(lines)-1]), 6)
}

func TestGenerateCommandRejectsInvalidParameters(t *testing.T) {
	cmd := newRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{"generate", "--branches=0"})
	assert.ErrorIs(t, cmd.Execute(), galaxy.ErrInvalidParameter)
}

func TestPresetsCommand(t *testing.T) {
	out := execute(t, "presets")
	assert.Contains(t, out, "classic (jitter")
	assert.Contains(t, out, "colored (jitter")
	assert.Contains(t, out, "count=100000")
	assert.Contains(t, out, "inside=#ff6030")
}
