package types

import "time"

// Segment is one unit of diarized speech inside a call.
type Segment struct {
	Speaker string  `json:"speaker"`
	Start   float64 `json:"start"`
	End     float64 `json:"end"`
	Text    string  `json:"text"`
}

// Duration returns the signed segment length in seconds. Spans with
// end <= start contribute their signed value; callers decide what to do
// with invalid spans.
func (s Segment) Duration() float64 {
	return s.End - s.Start
}

// Timeline is the ordered segment sequence for one call, ordered by
// start ascending. The metrics engine does not re-sort it.
type Timeline []Segment

// CallInfo carries the call metadata stored alongside the diarization.
type CallInfo struct {
	CallID     string    `json:"call_id"`
	Manager    string    `json:"manager"`
	Department string    `json:"department,omitempty"`
	Duration   float64   `json:"duration"`
	CallDate   time.Time `json:"call_date"`
	Speakers   int       `json:"speakers_count,omitempty"`
}

type InterruptionMetrics struct {
	InterruptionsCount int     `json:"interruptions_count"`
	TotalTransitions   int     `json:"total_transitions"`
	InterruptionRate   float64 `json:"interruption_rate"`
	AvgPause           float64 `json:"avg_pause"`
}

type TalkListenMetrics struct {
	ManagerDuration  float64 `json:"manager_duration"`
	ClientDuration   float64 `json:"client_duration"`
	TalkToListen     float64 `json:"talk_to_listen_ratio"`
	ManagerDominance float64 `json:"manager_dominance"`
}

// Severity classifies a manager's aggregate communication metrics.
type Severity string

const (
	SeverityGood     Severity = "good"
	SeverityWarning  Severity = "warning"
	SeverityCritical Severity = "critical"
)

// Rank orders severities for sorting and tie-breaks: critical > warning > good.
func (s Severity) Rank() int {
	switch s {
	case SeverityCritical:
		return 2
	case SeverityWarning:
		return 1
	default:
		return 0
	}
}

type ManagerAggregate struct {
	Manager             string   `json:"manager"`
	Department          string   `json:"department,omitempty"`
	CallsCount          int      `json:"calls_count"`
	AvgInterruptionRate float64  `json:"avg_interruption_rate"`
	AvgTalkListenRatio  float64  `json:"avg_talk_listen_ratio"`
	Severity            Severity `json:"severity"`
}
