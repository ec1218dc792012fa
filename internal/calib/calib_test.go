package calib

import (
	"errors"
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"target-scorer/internal/profile"
	"target-scorer/internal/vision"
	"target-scorer/pkg/geometry"
)

// stubCircleFinder returns a canned circle list and records the search
// parameters it was called with.
type stubCircleFinder struct {
	circles []geometry.Circle
	err     error
	calls   int
	params  vision.CircleParams
}

func (s *stubCircleFinder) FindCircles(gray *image.Gray, p vision.CircleParams) ([]geometry.Circle, error) {
	s.calls++
	s.params = p
	return s.circles, s.err
}

func TestManual(t *testing.T) {
	c, err := Manual(geometry.Point2D{X: 100, Y: 100}, geometry.Point2D{X: 150, Y: 100}, 112.4)
	require.NoError(t, err)

	assert.Equal(t, 50.0, c.RadiusPX)
	assert.InDelta(t, 0.8897, c.PixelsPerMM, 1e-4)
	assert.Equal(t, ConfidenceManual, c.Confidence)
	assert.True(t, c.Valid())
}

func TestManualRoundTrip(t *testing.T) {
	center := geometry.Point2D{X: 321.5, Y: 240.25}
	edge := geometry.Point2D{X: 400.75, Y: 198.5}

	a, err := Manual(center, edge, 59.5)
	require.NoError(t, err)
	b, err := Manual(center, edge, 59.5)
	require.NoError(t, err)

	// Same click points must reproduce the mapping bit for bit.
	assert.Equal(t, a.PixelsPerMM, b.PixelsPerMM)
	assert.Equal(t, a.RadiusPX, b.RadiusPX)
}

func TestManualDegenerate(t *testing.T) {
	p := geometry.Point2D{X: 100, Y: 100}

	_, err := Manual(p, p, 112.4)
	assert.ErrorIs(t, err, ErrInvalidCalibration)

	_, err = Manual(p, geometry.Point2D{X: 150, Y: 100}, 0)
	assert.ErrorIs(t, err, ErrInvalidCalibration)

	_, err = Manual(p, geometry.Point2D{X: 150, Y: 100}, -5)
	assert.ErrorIs(t, err, ErrInvalidCalibration)
}

func TestAutoSelectsPlausibleCircle(t *testing.T) {
	// 400x300: minDim 300, plausible radius 90, image center (200, 150).
	gray := image.NewGray(image.Rect(0, 0, 400, 300))
	prof := profile.ISSF10mAirRifle()

	centered := geometry.Circle{Center: geometry.Point2D{X: 198, Y: 151}, Radius: 92}
	offCenter := geometry.Circle{Center: geometry.Point2D{X: 30, Y: 20}, Radius: 90}
	finder := &stubCircleFinder{circles: []geometry.Circle{offCenter, centered}}

	c, err := NewAutoCalibrator(finder).Calibrate(gray, prof)
	require.NoError(t, err)

	assert.Equal(t, ConfidenceAuto, c.Confidence)
	assert.Equal(t, centered.Center, c.Center)
	assert.Equal(t, centered.Radius, c.RadiusPX)
	assert.InDelta(t, (92*2)/prof.BlackAreaDiameterMM, c.PixelsPerMM, 1e-12)

	// Search parameters scale with image size.
	assert.InDelta(t, 75.0, finder.params.MinDist, 1e-9)
	assert.Equal(t, 30, finder.params.MinRadius)
	assert.Equal(t, 150, finder.params.MaxRadius)
}

func TestAutoFallsBackToEstimate(t *testing.T) {
	gray := image.NewGray(image.Rect(0, 0, 400, 300))
	prof := profile.ISSF10mAirRifle()

	for name, finder := range map[string]*stubCircleFinder{
		"no circles":   {},
		"finder error": {err: errors.New("search failed")},
	} {
		c, err := NewAutoCalibrator(finder).Calibrate(gray, prof)
		require.NoError(t, err, name)

		assert.Equal(t, ConfidenceEstimated, c.Confidence, name)
		assert.Equal(t, geometry.Point2D{X: 200, Y: 150}, c.Center, name)
		assert.InDelta(t, 90.0, c.RadiusPX, 1e-9, name)
		assert.True(t, c.Valid(), name)
	}
}

func TestAutoRejectsInvalidImage(t *testing.T) {
	prof := profile.ISSF10mAirRifle()
	cal := NewAutoCalibrator(&stubCircleFinder{})

	_, err := cal.Calibrate(nil, prof)
	assert.ErrorIs(t, err, vision.ErrInvalidImage)

	_, err = cal.Calibrate(image.NewGray(image.Rect(0, 0, 0, 0)), prof)
	assert.ErrorIs(t, err, vision.ErrInvalidImage)
}

func TestConfidenceString(t *testing.T) {
	assert.Equal(t, "auto", ConfidenceAuto.String())
	assert.Equal(t, "manual", ConfidenceManual.String())
	assert.Equal(t, "estimated", ConfidenceEstimated.String())
}
