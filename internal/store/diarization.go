package store

import (
	"encoding/json"
	"fmt"

	"call-insights-go/internal/types"
)

// DiarizationPayload is the serialized result of the diarization process,
// stored alongside call metadata. speakers_count is what the diarizer
// declared; when it is missing the distinct speakers in the segments are
// counted instead.
type DiarizationPayload struct {
	SpeakersCount int             `json:"speakers_count"`
	Segments      []types.Segment `json:"segments"`
}

// ParseDiarization decodes and validates a stored diarization payload.
// The metrics engine assumes well-formed segments, so validation happens
// here: a segment without a speaker is a hard error, not a skipped row.
func ParseDiarization(raw []byte) (DiarizationPayload, error) {
	var p DiarizationPayload
	if err := json.Unmarshal(raw, &p); err != nil {
		return DiarizationPayload{}, fmt.Errorf("decode diarization: %w", err)
	}
	for i, seg := range p.Segments {
		if seg.Speaker == "" {
			return DiarizationPayload{}, fmt.Errorf("diarization segment %d: missing speaker", i)
		}
	}
	if p.SpeakersCount == 0 {
		p.SpeakersCount = countSpeakers(p.Segments)
	}
	return p, nil
}

func countSpeakers(segs []types.Segment) int {
	seen := map[string]struct{}{}
	for _, s := range segs {
		seen[s.Speaker] = struct{}{}
	}
	return len(seen)
}
