package detect

import (
	"image"
	"image/color"

	"target-scorer/pkg/geometry"
)

// ApplyDiskMask returns a copy of gray with every pixel outside the filled
// disk set to zero. Restricting detection to the calibrated target area
// suppresses false positives on background clutter and framing.
func ApplyDiskMask(gray *image.Gray, center geometry.Point2D, radius float64) *image.Gray {
	b := gray.Bounds()
	out := image.NewGray(b)

	r2 := radius * radius
	for y := b.Min.Y; y < b.Max.Y; y++ {
		dy := float64(y) - center.Y
		for x := b.Min.X; x < b.Max.X; x++ {
			dx := float64(x) - center.X
			if dx*dx+dy*dy <= r2 {
				out.SetGray(x, y, gray.GrayAt(x, y))
			}
		}
	}
	return out
}

// invert returns the tonal inverse of gray. Running blob detection on both
// polarities catches dark holes on light paper as well as light holes on
// dark backgrounds or monitor photographs.
func invert(gray *image.Gray) *image.Gray {
	b := gray.Bounds()
	out := image.NewGray(b)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			out.SetGray(x, y, color.Gray{Y: 255 - gray.GrayAt(x, y).Y})
		}
	}
	return out
}
