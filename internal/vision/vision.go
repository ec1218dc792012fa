// Package vision defines the image-search contracts the calibrator and hole
// detector are built on, together with their OpenCV-backed implementations.
// The contracts exist so the rest of the pipeline can be exercised with
// synthetic finders and never hard-wires a specific vision library.
package vision

import (
	"errors"
	"image"

	"target-scorer/pkg/geometry"
)

// ErrInvalidImage indicates an empty or zero-dimension input image.
var ErrInvalidImage = errors.New("invalid image")

// CircleParams controls a circle search pass.
type CircleParams struct {
	DP                   float64 // Inverse ratio of accumulator resolution
	MinDist              float64 // Minimum distance between circle centers (pixels)
	CannyThreshold       float64 // Upper edge-detection threshold
	AccumulatorThreshold float64 // Accumulator votes required per circle
	MinRadius            int     // Candidate radius lower bound (pixels)
	MaxRadius            int     // Candidate radius upper bound (pixels)
}

// CircleFinder locates circular features in a grayscale image.
type CircleFinder interface {
	FindCircles(gray *image.Gray, p CircleParams) ([]geometry.Circle, error)
}

// BlobParams controls a shape-filtered blob search pass.
type BlobParams struct {
	MinArea         float64 // Minimum blob area (square pixels)
	MaxArea         float64 // Maximum blob area (square pixels)
	MinCircularity  float64 // Rejects elongated scratches and ring lines
	MinConvexity    float64 // Rejects overlapping clusters
	MinInertiaRatio float64 // Rejects stretched shapes
}

// Blob is a roughly circular region of uniform intensity.
type Blob struct {
	Center geometry.Point2D
	Radius float64
}

// BlobFinder locates blobs in a grayscale image.
type BlobFinder interface {
	FindBlobs(gray *image.Gray, p BlobParams) ([]Blob, error)
}

// Preprocessor converts a raw frame into the single-channel intensity image
// the rest of the pipeline operates on.
type Preprocessor interface {
	Prepare(src image.Image) (*image.Gray, error)
}
