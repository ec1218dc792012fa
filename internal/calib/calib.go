// Package calib establishes the pixel-to-millimeter mapping for one target
// instance, either automatically from a circle search or from two
// user-supplied points.
package calib

import (
	"errors"

	"target-scorer/pkg/geometry"
)

var (
	// ErrInvalidCalibration indicates degenerate manual calibration input.
	// Any previously established calibration is left untouched.
	ErrInvalidCalibration = errors.New("invalid calibration input")

	// ErrNotCalibrated indicates detection or scoring was attempted before
	// a calibration exists.
	ErrNotCalibrated = errors.New("not calibrated")
)

// Confidence indicates how a calibration was obtained.
type Confidence int

const (
	// ConfidenceAuto means the target circle was detected in the image.
	ConfidenceAuto Confidence = iota
	// ConfidenceManual means the user supplied center and edge points.
	ConfidenceManual
	// ConfidenceEstimated means no circle was found and the calibration is
	// a center-of-image guess.
	ConfidenceEstimated
)

func (c Confidence) String() string {
	switch c {
	case ConfidenceAuto:
		return "auto"
	case ConfidenceManual:
		return "manual"
	case ConfidenceEstimated:
		return "estimated"
	default:
		return "unknown"
	}
}

// Calibration is an immutable pixel-to-millimeter mapping anchored at the
// target center. It is replaced wholesale on recalibration, never mutated.
type Calibration struct {
	Center      geometry.Point2D `json:"center"`
	RadiusPX    float64          `json:"radius_px"`
	PixelsPerMM float64          `json:"pixels_per_mm"`
	Confidence  Confidence       `json:"confidence"`
}

// Valid reports whether the calibration satisfies its invariants.
func (c Calibration) Valid() bool {
	return c.RadiusPX > 0 && c.PixelsPerMM > 0
}

// MMToPx converts a millimeter length to pixels.
func (c Calibration) MMToPx(mm float64) float64 {
	return mm * c.PixelsPerMM
}

// PxToMM converts a pixel length to millimeters.
func (c Calibration) PxToMM(px float64) float64 {
	return px / c.PixelsPerMM
}
