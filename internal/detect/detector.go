// Package detect finds candidate bullet holes inside the calibrated target
// area using shape-filtered blob search.
package detect

import (
	"fmt"
	"image"

	"target-scorer/internal/calib"
	"target-scorer/internal/profile"
	"target-scorer/internal/vision"
	"target-scorer/pkg/geometry"
)

// Pass indicates which detection pass produced a hole.
type Pass int

const (
	// PassNormal is detection on the masked intensity image.
	PassNormal Pass = iota
	// PassInverted is detection on the tonal inverse.
	PassInverted
)

func (p Pass) String() string {
	switch p {
	case PassNormal:
		return "normal"
	case PassInverted:
		return "inverted"
	default:
		return "unknown"
	}
}

// Hole is a candidate bullet hole in pixel coordinates.
type Hole struct {
	Center geometry.Point2D `json:"center"`
	Radius float64          `json:"radius"`
	Pass   Pass             `json:"-"`
}

// Detector runs shape-filtered blob search over the masked target area.
type Detector struct {
	blobs  vision.BlobFinder
	params Params
}

// NewDetector creates a detector with default parameters.
func NewDetector(f vision.BlobFinder) *Detector {
	return NewDetectorWithParams(f, DefaultParams())
}

// NewDetectorWithParams creates a detector with explicit parameters.
func NewDetectorWithParams(f vision.BlobFinder, p Params) *Detector {
	return &Detector{blobs: f, params: p}
}

// Detect finds holes in the preprocessed image. The search runs twice, once
// on the masked image and once on its inverse; results are merged in that
// order and deduplicated, with the earlier candidate winning. The merge
// order is the output order.
func (d *Detector) Detect(gray *image.Gray, c calib.Calibration, prof *profile.TargetProfile) ([]Hole, error) {
	if !c.Valid() {
		return nil, calib.ErrNotCalibrated
	}

	params := d.params.WithCalibration(c, prof)
	disk := geometry.Circle{Center: c.Center, Radius: c.RadiusPX}
	masked := ApplyDiskMask(gray, c.Center, c.RadiusPX)

	normal, err := d.blobs.FindBlobs(masked, params.blobParams())
	if err != nil {
		return nil, fmt.Errorf("normal pass failed: %w", err)
	}
	inverted, err := d.blobs.FindBlobs(invert(masked), params.blobParams())
	if err != nil {
		return nil, fmt.Errorf("inverted pass failed: %w", err)
	}

	var holes []Hole
	holes = appendPass(holes, normal, PassNormal, disk, params)
	holes = appendPass(holes, inverted, PassInverted, disk, params)
	return holes, nil
}

// appendPass filters one pass's blobs against the calibrated disk and merges
// them into holes, dropping duplicates of already-accepted candidates.
func appendPass(holes []Hole, blobs []vision.Blob, pass Pass, disk geometry.Circle, params Params) []Hole {
	minDist := params.dedupeDistance()
	for _, b := range blobs {
		if !disk.Contains(b.Center) {
			continue
		}

		duplicate := false
		for _, h := range holes {
			if h.Center.Distance(b.Center) < minDist {
				duplicate = true
				break
			}
		}
		if duplicate {
			continue
		}

		radius := b.Radius
		if radius < float64(params.MinRadiusPixels) {
			radius = float64(params.MinRadiusPixels)
		}
		holes = append(holes, Hole{Center: b.Center, Radius: radius, Pass: pass})
	}
	return holes
}
