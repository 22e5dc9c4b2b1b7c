// Package report assembles the communication-quality report and per-call
// summaries served by the API.
package report

import (
	"context"

	"github.com/sirupsen/logrus"

	"call-insights-go/internal/checklist"
	"call-insights-go/internal/diarization"
	"call-insights-go/internal/store"
	"call-insights-go/internal/types"
)

// CallSource is what the report layer needs from the data-access layer.
type CallSource interface {
	GetCall(ctx context.Context, callID string) (types.CallInfo, types.Timeline, error)
	ListReportCalls(ctx context.Context, f store.Filter) ([]diarization.CallSample, error)
}

type Service struct {
	src CallSource
	log *logrus.Entry
}

func NewService(src CallSource, log *logrus.Entry) *Service {
	return &Service{src: src, log: log.WithField("component", "report")}
}

// CommunicationReport ranks managers by communication severity over the
// filtered call window. limit <= 0 returns the full ranked list.
func (s *Service) CommunicationReport(ctx context.Context, f store.Filter, limit int) ([]types.ManagerAggregate, error) {
	calls, err := s.src.ListReportCalls(ctx, f)
	if err != nil {
		return nil, err
	}
	aggs := diarization.AggregatePerManager(calls)
	s.log.WithFields(logrus.Fields{
		"calls":    len(calls),
		"managers": len(aggs),
	}).Info("communication report built")
	if limit > 0 && len(aggs) > limit {
		aggs = aggs[:limit]
	}
	return aggs, nil
}

// CallMetrics is the per-call summary. A nil metrics pointer means the
// metric was not computable for this call, which the UI renders as a dash.
type CallMetrics struct {
	Call          types.CallInfo             `json:"call"`
	Interruptions *types.InterruptionMetrics `json:"interruptions,omitempty"`
	TalkListen    *types.TalkListenMetrics   `json:"talk_listen,omitempty"`
}

func (s *Service) CallMetrics(ctx context.Context, callID string) (CallMetrics, error) {
	info, tl, err := s.src.GetCall(ctx, callID)
	if err != nil {
		return CallMetrics{}, err
	}
	res := CallMetrics{Call: info}
	if m, ok := diarization.ComputeInterruptions(tl); ok {
		res.Interruptions = &m
	}
	if m, ok := diarization.ComputeTalkListenRatio(tl); ok {
		res.TalkListen = &m
	}
	return res, nil
}

// ChecklistMatch locates transcript segments relevant to a checklist
// criterion. The UI scrolls to the first index and shows the count.
type ChecklistMatch struct {
	CallID      string `json:"call_id"`
	CriterionID string `json:"criterion_id"`
	Indices     []int  `json:"indices"`
	Count       int    `json:"count"`
}

func (s *Service) ChecklistMatch(ctx context.Context, callID, criterionID string) (ChecklistMatch, error) {
	_, tl, err := s.src.GetCall(ctx, callID)
	if err != nil {
		return ChecklistMatch{}, err
	}
	if _, known := checklist.Criteria[criterionID]; !known {
		s.log.WithField("criterion_id", criterionID).Warn("unknown checklist criterion")
	}
	indices := checklist.FindRelevantSegments(criterionID, tl)
	return ChecklistMatch{
		CallID:      callID,
		CriterionID: criterionID,
		Indices:     indices,
		Count:       len(indices),
	}, nil
}
