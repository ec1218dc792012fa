package calib

import (
	"image"
	"math"

	"target-scorer/internal/profile"
	"target-scorer/internal/vision"
	"target-scorer/pkg/geometry"
)

// Search parameters for the target circle, scaled to image size. Hole and
// ring edges are weak, so the accumulator threshold is deliberately loose;
// the cost function below picks the plausible candidate.
const (
	houghDP           = 1.2
	cannyThreshold    = 80
	accumThreshold    = 40
	minDistDivisor    = 4  // minimum center separation = minDim/4
	minRadiusDivisor  = 10 // candidate radius lower bound = minDim/10
	maxRadiusDivisor  = 2  // candidate radius upper bound = minDim/2
	coverageRatio     = 0.3 // plausible target radius ≈ 30% of minDim (60% coverage)
	radiusCostWeight  = 0.5
)

// AutoCalibrator locates the target's black area with a circle search and
// derives a calibration from the best candidate.
type AutoCalibrator struct {
	circles vision.CircleFinder
}

// NewAutoCalibrator creates an automatic calibrator using the given finder.
func NewAutoCalibrator(f vision.CircleFinder) *AutoCalibrator {
	return &AutoCalibrator{circles: f}
}

// Calibrate searches gray for the target circle. When no usable circle is
// found it falls back to an estimated calibration centered on the image;
// absence of a detectable circle is an expected, non-fatal outcome, so this
// only fails on invalid input.
func (a *AutoCalibrator) Calibrate(gray *image.Gray, prof *profile.TargetProfile) (Calibration, error) {
	if gray == nil || gray.Bounds().Dx() <= 0 || gray.Bounds().Dy() <= 0 {
		return Calibration{}, vision.ErrInvalidImage
	}

	w := float64(gray.Bounds().Dx())
	h := float64(gray.Bounds().Dy())
	minDim := math.Min(w, h)

	params := vision.CircleParams{
		DP:                   houghDP,
		MinDist:              minDim / minDistDivisor,
		CannyThreshold:       cannyThreshold,
		AccumulatorThreshold: accumThreshold,
		MinRadius:            int(minDim) / minRadiusDivisor,
		MaxRadius:            int(minDim) / maxRadiusDivisor,
	}

	found, err := a.circles.FindCircles(gray, params)
	if err != nil || len(found) == 0 {
		return estimated(w, h, minDim, prof), nil
	}

	imgCenter := geometry.Point2D{X: w / 2, Y: h / 2}
	best := found[0]
	bestCost := math.Inf(1)
	for _, c := range found {
		// Prefer circles near the image center with a plausible
		// target-coverage ratio.
		cost := c.Center.Distance(imgCenter) +
			math.Abs(c.Radius-minDim*coverageRatio)*radiusCostWeight
		if cost < bestCost {
			bestCost = cost
			best = c
		}
	}

	// The detected circle is taken as the black area boundary.
	return Calibration{
		Center:      best.Center,
		RadiusPX:    best.Radius,
		PixelsPerMM: (best.Radius * 2) / prof.BlackAreaDiameterMM,
		Confidence:  ConfidenceAuto,
	}, nil
}

// estimated builds the low-confidence fallback calibration.
func estimated(w, h, minDim float64, prof *profile.TargetProfile) Calibration {
	radius := minDim * coverageRatio
	return Calibration{
		Center:      geometry.Point2D{X: w / 2, Y: h / 2},
		RadiusPX:    radius,
		PixelsPerMM: (radius * 2) / prof.BlackAreaDiameterMM,
		Confidence:  ConfidenceEstimated,
	}
}
