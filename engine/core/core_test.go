package core

import (
	"bytes"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvents(t *testing.T) {
	const code SystemEventCode = MAX_EVENT_CODE + 1

	assert.Zero(t, EventRegister(code, nil))
	assert.Zero(t, EventRegister(-1, func(EventContext) bool { return true }))

	var got []string
	first := EventRegister(code, func(ctx EventContext) bool {
		got = append(got, "first:"+ctx.Data.(string))
		return ctx.Data.(string) == "stop"
	})
	second := EventRegister(code, func(ctx EventContext) bool {
		got = append(got, "second:"+ctx.Data.(string))
		return true
	})

	assert.True(t, EventFire(EventContext{Type: code, Data: "go"}))
	assert.Equal(t, []string{"first:go", "second:go"}, got)

	got = nil
	assert.True(t, EventFire(EventContext{Type: code, Data: "stop"}))
	assert.Equal(t, []string{"first:stop"}, got)

	assert.True(t, EventUnregister(code, first))
	assert.False(t, EventUnregister(code, first))
	assert.True(t, EventUnregister(code, second))
	assert.False(t, EventFire(EventContext{Type: code, Data: "none"}))
}

func TestIdentifierPool(t *testing.T) {
	p := NewIdentifierPool(2)
	a := p.Acquire("a")
	b := p.Acquire("b")
	assert.Equal(t, uint32(0), a)
	assert.Equal(t, uint32(1), b)
	assert.Equal(t, 2, p.InUse())

	require.NoError(t, p.Release(a))
	assert.Error(t, p.Release(a))
	assert.Error(t, p.Release(42))
	_, ok := p.Owner(a)
	assert.False(t, ok)

	// released slots are reused first
	assert.Equal(t, a, p.Acquire("c"))
	owner, ok := p.Owner(a)
	assert.True(t, ok)
	assert.Equal(t, "c", owner)
}

func TestMetrics(t *testing.T) {
	MetricsReset()
	MetricsUpdate(2*time.Millisecond, 3, 10)
	MetricsUpdate(4*time.Millisecond, 4, 12)

	assert.InDelta(t, 3.0, MetricsBuildTime(), 1e-9)
	assert.Equal(t, int64(2), MetricsFrames())
	m := MetricsSnapshot()
	assert.Equal(t, 4, m.LastPasses)
	assert.Equal(t, 12, m.LastCommands)
	assert.Equal(t, int64(22), m.TotalCommands)

	// a full window averages the last AVG_COUNT samples
	MetricsReset()
	for i := 0; i < int(AVG_COUNT); i++ {
		MetricsUpdate(time.Millisecond, 1, 1)
	}
	assert.InDelta(t, 1.0, MetricsBuildTime(), 1e-9)
}

func TestLogging(t *testing.T) {
	level, err := ParseLogLevel(" Debug ")
	require.NoError(t, err)
	assert.Equal(t, DebugLevel, level)
	assert.Equal(t, "debug", level.String())
	_, err = ParseLogLevel("loud")
	assert.Error(t, err)

	previous := GetLogLevel()
	defer SetLogLevel(previous)

	var buf bytes.Buffer
	SetLogOutput(&buf)
	defer SetLogOutput(os.Stderr)

	SetLogLevel(WarnLevel)
	LogInfo("hidden %d", 1)
	LogWarn("shown %d", 2)
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown 2")
}

func TestClock(t *testing.T) {
	c := NewClock()
	c.Update()
	assert.Zero(t, c.Elapsed())

	c.Start()
	time.Sleep(time.Millisecond)
	c.Update()
	assert.Positive(t, c.Elapsed())

	c.Stop()
	stopped := c.Elapsed()
	c.Update()
	assert.Equal(t, stopped, c.Elapsed())
}
