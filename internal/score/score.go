// Package score converts calibrated hole positions into ring scores under
// ISSF edge-scoring rules and aggregates them into a summary.
package score

import (
	"target-scorer/internal/calib"
	"target-scorer/internal/detect"
	"target-scorer/internal/profile"
	"target-scorer/pkg/geometry"
)

// MissRing is the ring label for a hole outside all rings.
const MissRing = "Miss"

// ScoredHole is a detected hole with its calculated score.
type ScoredHole struct {
	Hole detect.Hole `json:"hole"`

	// DistanceMM is the hole center's distance from the target center.
	DistanceMM float64 `json:"distance_mm"`

	// ScoringDistanceMM is DistanceMM less the bullet radius, floored at
	// zero: the bullet only needs to touch a ring to score it.
	ScoringDistanceMM float64 `json:"scoring_distance_mm"`

	Ring  string  `json:"ring"`
	Score float64 `json:"score"` // 0 for a miss
}

// Evaluate scores a single hole against the calibration and profile.
func Evaluate(h detect.Hole, c calib.Calibration, prof *profile.TargetProfile) ScoredHole {
	distanceMM := c.PxToMM(h.Center.Distance(c.Center))

	scoringDistance := distanceMM - prof.BulletRadiusMM()
	if scoringDistance < 0 {
		scoringDistance = 0
	}

	scored := ScoredHole{
		Hole:              h,
		DistanceMM:        distanceMM,
		ScoringDistanceMM: scoringDistance,
		Ring:              MissRing,
		Score:             0,
	}

	// Rings are ordered innermost first; the first ring whose radius
	// reaches the scoring distance wins. The comparison is inclusive: a
	// hole exactly on a ring boundary scores that ring.
	for i, ring := range prof.Rings {
		radius := ring.RadiusMM()
		if scoringDistance > radius {
			continue
		}
		scored.Ring = ring.Label
		scored.Score = ring.Score + decimal(scoringDistance, i, prof)
		return scored
	}
	return scored
}

// decimal computes the decimal subdivision within ring i. The innermost ring
// grades down from its center; outer rings pro-rate across their own width.
func decimal(scoringDistance float64, i int, prof *profile.TargetProfile) float64 {
	radius := prof.Rings[i].RadiusMM()
	if i == 0 {
		return geometry.Clamp(1-scoringDistance/radius, 0, 1) * 0.9
	}
	width := radius - prof.Rings[i-1].RadiusMM()
	return geometry.Clamp((radius-scoringDistance)/width, 0, 0.9)
}

// EvaluateAll scores every hole, preserving input order.
func EvaluateAll(holes []detect.Hole, c calib.Calibration, prof *profile.TargetProfile) []ScoredHole {
	scored := make([]ScoredHole, len(holes))
	for i, h := range holes {
		scored[i] = Evaluate(h, c, prof)
	}
	return scored
}
