package diarization

import (
	"sort"

	"call-insights-go/internal/types"
)

// CallSample is one call handed to the aggregator. The caller has already
// applied its filtering policy (declared speaker count >= 2, audio duration
// over 30s) before building samples.
type CallSample struct {
	Manager    string
	Department string
	Timeline   types.Timeline
}

// Severity thresholds, inclusive lower bounds.
const (
	interruptionCritical = 50
	interruptionWarning  = 30
	talkListenCritical   = 2.5
	talkListenWarning    = 1.5
)

func classifyInterruption(avgRate float64) types.Severity {
	switch {
	case avgRate >= interruptionCritical:
		return types.SeverityCritical
	case avgRate >= interruptionWarning:
		return types.SeverityWarning
	default:
		return types.SeverityGood
	}
}

func classifyTalkListen(avgRatio float64) types.Severity {
	switch {
	case avgRatio >= talkListenCritical:
		return types.SeverityCritical
	case avgRatio >= talkListenWarning:
		return types.SeverityWarning
	default:
		return types.SeverityGood
	}
}

// combineSeverity picks the worse of the two classifications. On equal rank
// the interruption severity wins; this tie-break is deliberate and kept
// stable so callers can rely on which metric the badge reflects.
func combineSeverity(interruption, talkListen types.Severity) types.Severity {
	if interruption.Rank() >= talkListen.Rank() {
		return interruption
	}
	return talkListen
}

type managerGroup struct {
	manager    string
	department string
	calls      int
	rates      []float64
	ratios     []float64
}

// AggregatePerManager runs both metric computations on every sample, drops
// calls where either is not computable, groups the survivors by manager and
// returns per-manager averages ranked worst severity first. Order within a
// severity follows first appearance in the input. The full list is returned;
// top-N truncation belongs to the caller.
func AggregatePerManager(calls []CallSample) []types.ManagerAggregate {
	groups := map[string]*managerGroup{}
	var order []string

	for _, c := range calls {
		im, ok := ComputeInterruptions(c.Timeline)
		if !ok {
			continue
		}
		tm, ok := ComputeTalkListenRatio(c.Timeline)
		if !ok {
			continue
		}
		g := groups[c.Manager]
		if g == nil {
			g = &managerGroup{manager: c.Manager, department: c.Department}
			groups[c.Manager] = g
			order = append(order, c.Manager)
		}
		g.calls++
		g.rates = append(g.rates, im.InterruptionRate)
		g.ratios = append(g.ratios, tm.TalkToListen)
	}

	out := make([]types.ManagerAggregate, 0, len(order))
	for _, name := range order {
		g := groups[name]
		avgRate := round2(mean(g.rates))
		avgRatio := round2(mean(g.ratios))
		out = append(out, types.ManagerAggregate{
			Manager:             g.manager,
			Department:          g.department,
			CallsCount:          g.calls,
			AvgInterruptionRate: avgRate,
			AvgTalkListenRatio:  avgRatio,
			Severity:            combineSeverity(classifyInterruption(avgRate), classifyTalkListen(avgRatio)),
		})
	}

	// critical first, stable within equal severity
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Severity.Rank() > out[j].Severity.Rank()
	})
	return out
}

func mean(vals []float64) float64 {
	if len(vals) == 0 {
		return 0
	}
	var sum float64
	for _, v := range vals {
		sum += v
	}
	return sum / float64(len(vals))
}
