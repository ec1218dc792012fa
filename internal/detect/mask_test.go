package detect

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"

	"target-scorer/pkg/geometry"
)

func TestApplyDiskMask(t *testing.T) {
	gray := image.NewGray(image.Rect(0, 0, 20, 20))
	for y := 0; y < 20; y++ {
		for x := 0; x < 20; x++ {
			gray.SetGray(x, y, color.Gray{Y: 200})
		}
	}

	masked := ApplyDiskMask(gray, geometry.Point2D{X: 10, Y: 10}, 5)

	assert.Equal(t, uint8(200), masked.GrayAt(10, 10).Y)
	assert.Equal(t, uint8(200), masked.GrayAt(10, 14).Y) // 4 px from center
	assert.Equal(t, uint8(200), masked.GrayAt(10, 15).Y) // exactly on the boundary
	assert.Equal(t, uint8(0), masked.GrayAt(10, 16).Y)
	assert.Equal(t, uint8(0), masked.GrayAt(0, 0).Y)
	assert.Equal(t, uint8(0), masked.GrayAt(19, 19).Y)

	// Source untouched.
	assert.Equal(t, uint8(200), gray.GrayAt(0, 0).Y)
}

func TestInvert(t *testing.T) {
	gray := image.NewGray(image.Rect(0, 0, 4, 4))
	gray.SetGray(1, 1, color.Gray{Y: 200})
	gray.SetGray(2, 2, color.Gray{Y: 255})

	inv := invert(gray)

	assert.Equal(t, uint8(55), inv.GrayAt(1, 1).Y)
	assert.Equal(t, uint8(0), inv.GrayAt(2, 2).Y)
	assert.Equal(t, uint8(255), inv.GrayAt(0, 0).Y)
}
