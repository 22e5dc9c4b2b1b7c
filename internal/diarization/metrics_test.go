package diarization

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"call-insights-go/internal/types"
)

func seg(speaker string, start, end float64, text string) types.Segment {
	return types.Segment{Speaker: speaker, Start: start, End: end, Text: text}
}

// The reference timeline: one B→A transition with a 0.1s gap.
func sampleTimeline() types.Timeline {
	return types.Timeline{
		seg("A", 0, 5, "hello"),
		seg("B", 5.2, 8, "hi"),
		seg("A", 8.1, 10, "ok"),
	}
}

func TestComputeInterruptions(t *testing.T) {
	m, ok := ComputeInterruptions(sampleTimeline())
	require.True(t, ok)
	assert.Equal(t, 1, m.InterruptionsCount)
	assert.Equal(t, 1, m.TotalTransitions)
	assert.Equal(t, 100.0, m.InterruptionRate)
	assert.Equal(t, 0.1, m.AvgPause)
}

func TestComputeInterruptionsNotComputable(t *testing.T) {
	cases := map[string]types.Timeline{
		"empty":          {},
		"single segment": {seg("A", 0, 5, "hello")},
		"single speaker": {
			seg("A", 0, 5, "hello"),
			seg("A", 5.5, 8, "still me"),
		},
		// A→B only: a manager→client transition is not an interruption site
		"no client to manager transition": {
			seg("A", 0, 5, "hello"),
			seg("B", 5.5, 8, "hi"),
		},
	}
	for name, tl := range cases {
		t.Run(name, func(t *testing.T) {
			_, ok := ComputeInterruptions(tl)
			assert.False(t, ok)
		})
	}
}

func TestComputeInterruptionsOverlapIsInterruption(t *testing.T) {
	tl := types.Timeline{
		seg("A", 0, 3, ""),
		seg("B", 3.5, 7, ""),
		seg("A", 6.5, 9, ""), // starts before B finished
	}
	m, ok := ComputeInterruptions(tl)
	require.True(t, ok)
	assert.Equal(t, 1, m.InterruptionsCount)
	assert.InDelta(t, -0.5, m.AvgPause, 1e-9)
}

func TestComputeInterruptionsPoliteGap(t *testing.T) {
	tl := types.Timeline{
		seg("A", 0, 3, ""),
		seg("B", 3.2, 7, ""),
		seg("A", 8, 9, ""), // 1s gap, no interruption
	}
	m, ok := ComputeInterruptions(tl)
	require.True(t, ok)
	assert.Equal(t, 0, m.InterruptionsCount)
	assert.Equal(t, 1, m.TotalTransitions)
	assert.Equal(t, 0.0, m.InterruptionRate)
}

func TestComputeInterruptionsRateBounds(t *testing.T) {
	// mixed polite and interrupting transitions
	tl := types.Timeline{
		seg("A", 0, 2, ""),
		seg("B", 2.1, 4, ""),
		seg("A", 4.05, 6, ""), // interruption
		seg("B", 6.2, 8, ""),
		seg("A", 9, 10, ""), // polite
	}
	m, ok := ComputeInterruptions(tl)
	require.True(t, ok)
	assert.GreaterOrEqual(t, m.InterruptionRate, 0.0)
	assert.LessOrEqual(t, m.InterruptionRate, 100.0)
	assert.Equal(t, 50.0, m.InterruptionRate)
}

func TestComputeInterruptionsIgnoresThirdSpeaker(t *testing.T) {
	tl := types.Timeline{
		seg("A", 0, 2, ""),
		seg("B", 2.1, 4, ""),
		seg("C", 4.1, 5, ""), // not the designated client
		seg("B", 5.1, 6, ""),
		seg("A", 6.2, 8, ""),
	}
	m, ok := ComputeInterruptions(tl)
	require.True(t, ok)
	assert.Equal(t, 1, m.TotalTransitions)
	assert.Equal(t, 1, m.InterruptionsCount)
}

func TestComputeTalkListenRatio(t *testing.T) {
	m, ok := ComputeTalkListenRatio(sampleTimeline())
	require.True(t, ok)
	assert.InDelta(t, 6.9, m.ManagerDuration, 1e-9)
	assert.InDelta(t, 2.8, m.ClientDuration, 1e-9)
	assert.Equal(t, 2.46, m.TalkToListen)
	assert.Equal(t, 71.13, m.ManagerDominance)
}

func TestComputeTalkListenRatioNotComputable(t *testing.T) {
	t.Run("single speaker", func(t *testing.T) {
		tl := types.Timeline{seg("A", 0, 5, ""), seg("A", 5, 8, "")}
		_, ok := ComputeTalkListenRatio(tl)
		assert.False(t, ok)
	})
	t.Run("zero client duration", func(t *testing.T) {
		tl := types.Timeline{seg("A", 0, 5, ""), seg("B", 5, 5, "")}
		_, ok := ComputeTalkListenRatio(tl)
		assert.False(t, ok)
	})
}

func TestComputeTalkListenRatioDominanceBounds(t *testing.T) {
	tl := types.Timeline{
		seg("A", 0, 30, ""),
		seg("B", 30.5, 31, ""),
	}
	m, ok := ComputeTalkListenRatio(tl)
	require.True(t, ok)
	assert.GreaterOrEqual(t, m.ManagerDominance, 0.0)
	assert.LessOrEqual(t, m.ManagerDominance, 100.0)
}

func TestManagerHintOverridesHeuristic(t *testing.T) {
	// client opens the call; the hint flips the roles
	tl := types.Timeline{
		seg("client", 0, 4, ""),
		seg("mgr", 4.1, 9, ""),
		seg("client", 9.2, 11, ""),
		seg("mgr", 11.3, 14, ""),
	}
	withHint, ok := ComputeTalkListenRatioFor(tl, "mgr")
	require.True(t, ok)
	heuristic, ok := ComputeTalkListenRatio(tl)
	require.True(t, ok)
	assert.InDelta(t, 7.6, withHint.ManagerDuration, 1e-9)
	assert.InDelta(t, 7.6, heuristic.ClientDuration, 1e-9)
}

func TestMetricsAreIdempotent(t *testing.T) {
	tl := sampleTimeline()
	i1, ok1 := ComputeInterruptions(tl)
	i2, ok2 := ComputeInterruptions(tl)
	require.True(t, ok1)
	require.True(t, ok2)
	assert.Equal(t, i1, i2)

	t1, ok1 := ComputeTalkListenRatio(tl)
	t2, ok2 := ComputeTalkListenRatio(tl)
	require.True(t, ok1)
	require.True(t, ok2)
	assert.Equal(t, t1, t2)
}
