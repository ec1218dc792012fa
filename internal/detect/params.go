package detect

import (
	"math"

	"target-scorer/internal/calib"
	"target-scorer/internal/profile"
	"target-scorer/internal/vision"
)

// Params holds hole-detection parameters. Pixel sizes are derived from the
// calibration via WithCalibration before use.
type Params struct {
	// Size tolerance as multiples of the expected bullet radius
	MinRadiusScale float64
	MaxRadiusScale float64

	// Shape constraints
	MinCircularity  float64
	MinConvexity    float64
	MinInertiaRatio float64

	// Two detections closer than DedupeScale × bullet radius are the same
	// physical hole
	DedupeScale float64

	// Derived (pixels)
	BulletRadiusPixels float64
	MinRadiusPixels    int
	MaxRadiusPixels    int
}

// DefaultParams returns hole-detection parameters with generous size
// tolerance. The shape thresholds reject scratches, overlapping clusters and
// printed ring lines.
func DefaultParams() Params {
	return Params{
		MinRadiusScale:  0.5,
		MaxRadiusScale:  2.5,
		MinCircularity:  0.55,
		MinConvexity:    0.7,
		MinInertiaRatio: 0.4,
		DedupeScale:     1.5,
	}
}

// WithCalibration returns a copy of params with pixel sizes computed from the
// calibrated scale and the profile's bullet diameter.
func (p Params) WithCalibration(c calib.Calibration, prof *profile.TargetProfile) Params {
	p.BulletRadiusPixels = c.MMToPx(prof.BulletRadiusMM())

	p.MinRadiusPixels = int(p.BulletRadiusPixels * p.MinRadiusScale)
	if p.MinRadiusPixels < 3 {
		p.MinRadiusPixels = 3
	}
	p.MaxRadiusPixels = int(p.BulletRadiusPixels * p.MaxRadiusScale)
	if p.MaxRadiusPixels < p.MinRadiusPixels+5 {
		p.MaxRadiusPixels = p.MinRadiusPixels + 5
	}
	return p
}

// dedupeDistance returns the center distance below which two candidates
// collapse into one hole.
func (p Params) dedupeDistance() float64 {
	return math.Max(8, p.BulletRadiusPixels*p.DedupeScale)
}

// blobParams converts the pixel radius range into blob search parameters.
func (p Params) blobParams() vision.BlobParams {
	minR := float64(p.MinRadiusPixels)
	maxR := float64(p.MaxRadiusPixels)
	return vision.BlobParams{
		MinArea:         math.Pi * minR * minR,
		MaxArea:         math.Pi * maxR * maxR,
		MinCircularity:  p.MinCircularity,
		MinConvexity:    p.MinConvexity,
		MinInertiaRatio: p.MinInertiaRatio,
	}
}
