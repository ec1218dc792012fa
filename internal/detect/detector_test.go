package detect

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"target-scorer/internal/calib"
	"target-scorer/internal/profile"
	"target-scorer/internal/vision"
	"target-scorer/pkg/geometry"
)

// stubBlobFinder hands out one canned result per call, in order. The
// detector calls it twice per Detect: normal pass, then inverted pass.
type stubBlobFinder struct {
	passes [][]vision.Blob
	call   int
	params []vision.BlobParams
}

func (s *stubBlobFinder) FindBlobs(gray *image.Gray, p vision.BlobParams) ([]vision.Blob, error) {
	s.params = append(s.params, p)
	var blobs []vision.Blob
	if s.call < len(s.passes) {
		blobs = s.passes[s.call]
	}
	s.call++
	return blobs, nil
}

func testCalibration() calib.Calibration {
	// bullet radius 2.25 mm × 4 px/mm = 9 px; dedupe distance 13.5 px.
	return calib.Calibration{
		Center:      geometry.Point2D{X: 100, Y: 100},
		RadiusPX:    80,
		PixelsPerMM: 4,
		Confidence:  calib.ConfidenceManual,
	}
}

func testFrame() *image.Gray {
	return image.NewGray(image.Rect(0, 0, 200, 200))
}

func blobAt(x, y, r float64) vision.Blob {
	return vision.Blob{Center: geometry.Point2D{X: x, Y: y}, Radius: r}
}

func TestDetectRequiresCalibration(t *testing.T) {
	d := NewDetector(&stubBlobFinder{})
	_, err := d.Detect(testFrame(), calib.Calibration{}, profile.ISSF10mAirRifle())
	assert.ErrorIs(t, err, calib.ErrNotCalibrated)
}

func TestDetectMergeOrder(t *testing.T) {
	finder := &stubBlobFinder{passes: [][]vision.Blob{
		{blobAt(100, 100, 6), blobAt(60, 60, 6)},
		{blobAt(140, 140, 6)},
	}}
	d := NewDetector(finder)

	holes, err := d.Detect(testFrame(), testCalibration(), profile.ISSF10mAirRifle())
	require.NoError(t, err)
	require.Len(t, holes, 3)

	// Normal-pass results first, inverted-pass results after, both in
	// finder order.
	assert.Equal(t, geometry.Point2D{X: 100, Y: 100}, holes[0].Center)
	assert.Equal(t, PassNormal, holes[0].Pass)
	assert.Equal(t, geometry.Point2D{X: 60, Y: 60}, holes[1].Center)
	assert.Equal(t, PassNormal, holes[1].Pass)
	assert.Equal(t, geometry.Point2D{X: 140, Y: 140}, holes[2].Center)
	assert.Equal(t, PassInverted, holes[2].Pass)
}

func TestDetectDeduplicates(t *testing.T) {
	// Inverted-pass candidate 5 px from a normal-pass one: closer than
	// 1.5 × bullet radius (13.5 px), so it is the same physical hole and
	// the normal-pass detection wins.
	finder := &stubBlobFinder{passes: [][]vision.Blob{
		{blobAt(100, 100, 6)},
		{blobAt(105, 100, 6), blobAt(130, 100, 6)},
	}}
	d := NewDetector(finder)

	holes, err := d.Detect(testFrame(), testCalibration(), profile.ISSF10mAirRifle())
	require.NoError(t, err)
	require.Len(t, holes, 2)
	assert.Equal(t, PassNormal, holes[0].Pass)
	assert.Equal(t, geometry.Point2D{X: 100, Y: 100}, holes[0].Center)
	assert.Equal(t, geometry.Point2D{X: 130, Y: 100}, holes[1].Center)
}

func TestDetectDiscardsOutsideMask(t *testing.T) {
	// (195, 100) is 95 px from the calibrated center, beyond the 80 px
	// target radius.
	finder := &stubBlobFinder{passes: [][]vision.Blob{
		{blobAt(195, 100, 6)},
		nil,
	}}
	d := NewDetector(finder)

	holes, err := d.Detect(testFrame(), testCalibration(), profile.ISSF10mAirRifle())
	require.NoError(t, err)
	assert.Empty(t, holes)
}

func TestDetectFloorsRadius(t *testing.T) {
	finder := &stubBlobFinder{passes: [][]vision.Blob{
		{blobAt(100, 100, 1)},
		nil,
	}}
	d := NewDetector(finder)

	holes, err := d.Detect(testFrame(), testCalibration(), profile.ISSF10mAirRifle())
	require.NoError(t, err)
	require.Len(t, holes, 1)
	// 0.5 × 9 px bullet radius = 4 px minimum.
	assert.Equal(t, 4.0, holes[0].Radius)
}

func TestDetectBlobParams(t *testing.T) {
	finder := &stubBlobFinder{}
	d := NewDetector(finder)

	_, err := d.Detect(testFrame(), testCalibration(), profile.ISSF10mAirRifle())
	require.NoError(t, err)
	require.Len(t, finder.params, 2)

	p := finder.params[0]
	assert.InDelta(t, 3.14159*4*4, p.MinArea, 0.1)
	assert.InDelta(t, 3.14159*22*22, p.MaxArea, 1.0)
	assert.Equal(t, 0.55, p.MinCircularity)
	assert.Equal(t, 0.7, p.MinConvexity)
	assert.Equal(t, 0.4, p.MinInertiaRatio)
	assert.Equal(t, p, finder.params[1])
}

func TestParamsWithCalibration(t *testing.T) {
	p := DefaultParams().WithCalibration(testCalibration(), profile.ISSF10mAirRifle())
	assert.InDelta(t, 9.0, p.BulletRadiusPixels, 1e-9)
	assert.Equal(t, 4, p.MinRadiusPixels)
	assert.Equal(t, 22, p.MaxRadiusPixels)
	assert.InDelta(t, 13.5, p.dedupeDistance(), 1e-9)
}

func TestParamsDedupeFloor(t *testing.T) {
	// Tiny scale: 1.5 × bullet radius would be under 8 px, the floor wins.
	c := testCalibration()
	c.PixelsPerMM = 1
	p := DefaultParams().WithCalibration(c, profile.ISSF10mAirRifle())
	assert.InDelta(t, 8.0, p.dedupeDistance(), 1e-9)
	assert.Equal(t, 3, p.MinRadiusPixels)
}
