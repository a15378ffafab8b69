package config_test

import (
	"testing"
	"time"

	"github.com/chazu/geop/pkg/config"
	"github.com/stretchr/testify/assert"
)

func TestDefaultConfig(t *testing.T) {
	c := config.DefaultConfig()
	assert.Equal(t, config.DefaultEqThreshold, c.EqThreshold)
	assert.Equal(t, config.DefaultHorizonDist, c.HorizonDist)
	assert.Equal(t, config.DefaultMaxBisectionDepth, c.MaxBisectionDepth)
}

func TestOptionsOverride(t *testing.T) {
	c := config.New(
		config.WithEqThreshold(1e-6),
		config.WithMaxBisectionDepth(10),
		config.WithBisectionDeadline(50*time.Millisecond),
	)
	assert.Equal(t, 1e-6, c.EqThreshold)
	assert.Equal(t, 10, c.MaxBisectionDepth)
	assert.Equal(t, 50*time.Millisecond, c.BisectionDeadline)
}

func TestDerivedThresholds(t *testing.T) {
	c := config.New(config.WithEqThreshold(1e-9))
	assert.InDelta(t, 1e-11, c.BisectionEpsilon(), 1e-20)
	assert.InDelta(t, 1e-7, c.DedupDistance(), 1e-15)
}
