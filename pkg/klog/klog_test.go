package klog_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/chazu/geop/pkg/klog"
	"github.com/stretchr/testify/assert"
)

func TestWriterLoggerFiltersBelowMin(t *testing.T) {
	var buf bytes.Buffer
	l := klog.New(&buf, klog.LevelInfo)

	l.Log(klog.LevelTrace, "should be dropped")
	l.Log(klog.LevelInfo, "bisection depth", "depth", 3)

	out := buf.String()
	assert.False(t, strings.Contains(out, "dropped"))
	assert.True(t, strings.Contains(out, "bisection depth"))
	assert.True(t, strings.Contains(out, "depth=3"))
}

func TestDiscardLoggerWritesNothing(t *testing.T) {
	l := klog.Discard()
	// Should not panic and produces no observable output by construction.
	l.Log(klog.LevelWarn, "anything")
}

func TestOrFallsBackToDiscard(t *testing.T) {
	l := klog.Or(nil)
	assert.NotNil(t, l)
	l.Log(klog.LevelWarn, "no panic")
}
