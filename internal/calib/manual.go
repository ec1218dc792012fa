package calib

import (
	"fmt"

	"target-scorer/pkg/geometry"
)

// Manual derives a calibration from two user-supplied pixel points: the
// target center and a point on the edge of the black area. The radius is the
// Euclidean distance between them.
func Manual(center, edge geometry.Point2D, blackAreaDiameterMM float64) (Calibration, error) {
	if blackAreaDiameterMM <= 0 {
		return Calibration{}, fmt.Errorf("%w: black area diameter %.2f mm",
			ErrInvalidCalibration, blackAreaDiameterMM)
	}

	radius := center.Distance(edge)
	if radius <= 0 {
		return Calibration{}, fmt.Errorf("%w: center and edge points coincide",
			ErrInvalidCalibration)
	}

	return Calibration{
		Center:      center,
		RadiusPX:    radius,
		PixelsPerMM: (radius * 2) / blackAreaDiameterMM,
		Confidence:  ConfidenceManual,
	}, nil
}
