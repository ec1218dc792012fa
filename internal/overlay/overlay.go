// Package overlay renders calibration and scoring results onto the source
// frame for display or export.
package overlay

import (
	"fmt"
	"image"
	"image/color"

	"gocv.io/x/gocv"

	"target-scorer/internal/calib"
	"target-scorer/internal/score"
)

// Options configures how results are rendered.
type Options struct {
	CalibrationColor color.RGBA // Target center dot and boundary circle
	HoleColor        color.RGBA // Per-hole circle
	LabelColor       color.RGBA // Score label text
	LineWidth        int
	FontScale        float64
}

// DefaultOptions returns the stock rendering options.
func DefaultOptions() Options {
	return Options{
		CalibrationColor: color.RGBA{G: 255, A: 255},
		HoleColor:        color.RGBA{R: 255, A: 255},
		LabelColor:       color.RGBA{R: 255, G: 255, A: 255},
		LineWidth:        2,
		FontScale:        0.6,
	}
}

// Draw renders the calibration circle and each scored hole onto a copy of
// src. Misses are labelled "M", scored holes with their decimal score.
func Draw(src image.Image, c calib.Calibration, scored []score.ScoredHole, opts Options) (image.Image, error) {
	mat, err := gocv.ImageToMatRGBA(src)
	if err != nil {
		return nil, fmt.Errorf("failed to convert image: %w", err)
	}
	defer mat.Close()

	if c.Valid() {
		center := image.Pt(int(c.Center.X+0.5), int(c.Center.Y+0.5))
		gocv.Circle(&mat, center, 8, opts.CalibrationColor, -1)
		gocv.Circle(&mat, center, int(c.RadiusPX+0.5), opts.CalibrationColor, opts.LineWidth)
	}

	for _, s := range scored {
		center := image.Pt(int(s.Hole.Center.X+0.5), int(s.Hole.Center.Y+0.5))
		radius := int(s.Hole.Radius + 0.5)
		if radius < 5 {
			radius = 5
		}
		gocv.Circle(&mat, center, radius, opts.HoleColor, opts.LineWidth)

		label := "M"
		if s.Ring != score.MissRing {
			label = fmt.Sprintf("%.1f", s.Score)
		}
		gocv.PutText(&mat, label, image.Pt(center.X+radius+5, center.Y),
			gocv.FontHersheySimplex, opts.FontScale, opts.LabelColor, opts.LineWidth)
	}

	out, err := mat.ToImage()
	if err != nil {
		return nil, fmt.Errorf("failed to read back overlay: %w", err)
	}
	return out, nil
}
