package score

import (
	"gonum.org/v1/gonum/stat"

	"target-scorer/internal/calib"
	"target-scorer/pkg/geometry"
)

// Group describes the shot group's geometry in millimeters.
type Group struct {
	// CenterOffsetMM is the mean point of impact relative to the target
	// center.
	CenterOffsetMM geometry.Point2D `json:"center_offset_mm"`

	// MeanRadiusMM is the average distance of shots from the mean point of
	// impact.
	MeanRadiusMM float64 `json:"mean_radius_mm"`

	// RadiusStdDevMM is the standard deviation of those distances.
	RadiusStdDevMM float64 `json:"radius_stddev_mm"`

	// ExtremeSpreadMM is the largest center-to-center distance between any
	// two shots.
	ExtremeSpreadMM float64 `json:"extreme_spread_mm"`
}

// AnalyzeGroup computes group statistics for the scored holes. Returns nil
// when fewer than two holes are available, since spread is meaningless for a
// single shot.
func AnalyzeGroup(scored []ScoredHole, c calib.Calibration) *Group {
	if len(scored) < 2 || !c.Valid() {
		return nil
	}

	// Shot positions as millimeter offsets from the target center.
	offsets := make([]geometry.Point2D, len(scored))
	for i, h := range scored {
		d := h.Hole.Center.Sub(c.Center)
		offsets[i] = geometry.Point2D{X: c.PxToMM(d.X), Y: c.PxToMM(d.Y)}
	}

	mpi := geometry.Centroid(offsets)

	radii := make([]float64, len(offsets))
	for i, o := range offsets {
		radii[i] = o.Distance(mpi)
	}

	var spread float64
	for i := 0; i < len(offsets); i++ {
		for j := i + 1; j < len(offsets); j++ {
			if d := offsets[i].Distance(offsets[j]); d > spread {
				spread = d
			}
		}
	}

	return &Group{
		CenterOffsetMM:  mpi,
		MeanRadiusMM:    stat.Mean(radii, nil),
		RadiusStdDevMM:  stat.StdDev(radii, nil),
		ExtremeSpreadMM: spread,
	}
}
