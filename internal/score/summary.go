package score

import "target-scorer/internal/calib"

// Summary aggregates a frame's scored holes.
type Summary struct {
	Total   float64        `json:"total"`
	Shots   int            `json:"shots"`
	Mean    float64        `json:"mean"`
	PerRing map[string]int `json:"per_ring"`

	// Group is nil when fewer than two holes were scored.
	Group *Group `json:"group,omitempty"`
}

// Summarize computes the aggregate summary. It is a pure function of its
// inputs.
func Summarize(scored []ScoredHole, c calib.Calibration) Summary {
	s := Summary{PerRing: make(map[string]int)}
	for _, h := range scored {
		s.Total += h.Score
		s.Shots++
		s.PerRing[h.Ring]++
	}
	if s.Shots > 0 {
		s.Mean = s.Total / float64(s.Shots)
	}
	s.Group = AnalyzeGroup(scored, c)
	return s
}
