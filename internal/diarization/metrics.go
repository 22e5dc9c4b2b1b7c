// Package diarization derives communication-quality metrics from
// speaker-attributed call timelines.
package diarization

import (
	"math"

	"call-insights-go/internal/types"
)

// InterruptionThreshold is the pause (seconds) below which a client→manager
// turn transition counts as an interruption.
const InterruptionThreshold = 0.5

// speakerRoles designates the manager and client speakers for a timeline.
// The manager is the hinted speaker when given, otherwise the speaker of
// segment 0; the client is the first speaker that differs from the manager.
// Any further distinct speakers are ignored (two-party analysis only).
// ok is false when the timeline is too short or has no second speaker.
func speakerRoles(tl types.Timeline, managerHint string) (manager, client string, ok bool) {
	if len(tl) < 2 {
		return "", "", false
	}
	manager = managerHint
	if manager == "" {
		manager = tl[0].Speaker
	}
	for _, seg := range tl {
		if seg.Speaker != manager {
			return manager, seg.Speaker, true
		}
	}
	return "", "", false
}

// ComputeInterruptions analyzes client→manager turn transitions using the
// first-segment-wins manager heuristic. ok is false when the metric is not
// computable (short timeline, single speaker, or no transitions) — a
// legitimate outcome, not an error; such calls are excluded from aggregation.
func ComputeInterruptions(tl types.Timeline) (types.InterruptionMetrics, bool) {
	return ComputeInterruptionsFor(tl, "")
}

// ComputeInterruptionsFor is ComputeInterruptions with an explicit manager
// speaker hint. An empty hint falls back to the first-segment heuristic.
func ComputeInterruptionsFor(tl types.Timeline, managerSpeaker string) (types.InterruptionMetrics, bool) {
	manager, client, ok := speakerRoles(tl, managerSpeaker)
	if !ok {
		return types.InterruptionMetrics{}, false
	}

	var m types.InterruptionMetrics
	var pauseSum float64
	for i := 1; i < len(tl); i++ {
		if tl[i-1].Speaker != client || tl[i].Speaker != manager {
			continue
		}
		// pause may be negative when segments overlap
		pause := tl[i].Start - tl[i-1].End
		pauseSum += pause
		m.TotalTransitions++
		if pause < InterruptionThreshold {
			m.InterruptionsCount++
		}
	}
	if m.TotalTransitions == 0 {
		return types.InterruptionMetrics{}, false
	}
	m.InterruptionRate = round2(float64(m.InterruptionsCount) / float64(m.TotalTransitions) * 100)
	m.AvgPause = round3(pauseSum / float64(m.TotalTransitions))
	return m, true
}

// ComputeTalkListenRatio sums speaking durations for the manager and client
// speakers. ok is false for short/single-speaker timelines and when the
// client duration is zero.
func ComputeTalkListenRatio(tl types.Timeline) (types.TalkListenMetrics, bool) {
	return ComputeTalkListenRatioFor(tl, "")
}

// ComputeTalkListenRatioFor is ComputeTalkListenRatio with an explicit
// manager speaker hint. An empty hint falls back to the first-segment
// heuristic.
func ComputeTalkListenRatioFor(tl types.Timeline, managerSpeaker string) (types.TalkListenMetrics, bool) {
	manager, client, ok := speakerRoles(tl, managerSpeaker)
	if !ok {
		return types.TalkListenMetrics{}, false
	}

	var m types.TalkListenMetrics
	for _, seg := range tl {
		switch seg.Speaker {
		case manager:
			m.ManagerDuration += seg.Duration()
		case client:
			m.ClientDuration += seg.Duration()
		}
	}
	if m.ClientDuration == 0 {
		return types.TalkListenMetrics{}, false
	}
	m.TalkToListen = round2(m.ManagerDuration / m.ClientDuration)
	if total := m.ManagerDuration + m.ClientDuration; total != 0 {
		m.ManagerDominance = round2(m.ManagerDuration / total * 100)
	}
	return m, true
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
