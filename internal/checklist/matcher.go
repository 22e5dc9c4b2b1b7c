package checklist

import (
	"strings"

	"call-insights-go/internal/types"
)

// FindRelevantSegments returns the indices of timeline segments whose text
// contains any keyword of the criterion, in ascending timeline order.
// Matching is plain substring containment over lowercased text — no word
// boundaries — which trades false positives for recall and is what the
// criteria lists were tuned against. An unknown criterion ID yields an empty
// list; callers treat that as "no matches", not a fault.
func FindRelevantSegments(criterionID string, tl types.Timeline) []int {
	keywords, ok := Criteria[criterionID]
	if !ok {
		return nil
	}
	var indices []int
	for i, seg := range tl {
		text := strings.ToLower(seg.Text)
		for _, kw := range keywords {
			if strings.Contains(text, strings.ToLower(kw)) {
				indices = append(indices, i)
				break
			}
		}
	}
	return indices
}

// MatchCount reports how many segments match the criterion. Used for the
// hover badge next to each checklist item.
func MatchCount(criterionID string, tl types.Timeline) int {
	return len(FindRelevantSegments(criterionID, tl))
}
