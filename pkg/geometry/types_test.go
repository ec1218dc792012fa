package geometry

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDistance(t *testing.T) {
	a := Point2D{X: 1, Y: 2}
	b := Point2D{X: 4, Y: 6}
	assert.InDelta(t, 5.0, a.Distance(b), 1e-12)
	assert.InDelta(t, 5.0, b.Distance(a), 1e-12)
	assert.Equal(t, 0.0, a.Distance(a))
}

func TestCircleContains(t *testing.T) {
	c := Circle{Center: Point2D{X: 10, Y: 10}, Radius: 5}
	assert.True(t, c.Contains(Point2D{X: 10, Y: 10}))
	assert.True(t, c.Contains(Point2D{X: 10, Y: 15})) // boundary inclusive
	assert.False(t, c.Contains(Point2D{X: 10, Y: 15.01}))
}

func TestCentroid(t *testing.T) {
	pts := []Point2D{{X: 0, Y: 0}, {X: 4, Y: 0}, {X: 2, Y: 6}}
	c := Centroid(pts)
	assert.InDelta(t, 2.0, c.X, 1e-12)
	assert.InDelta(t, 2.0, c.Y, 1e-12)

	assert.Equal(t, Point2D{}, Centroid(nil))
}

func TestClamp(t *testing.T) {
	assert.Equal(t, 0.0, Clamp(-1, 0, 1))
	assert.Equal(t, 1.0, Clamp(2, 0, 1))
	assert.Equal(t, 0.5, Clamp(0.5, 0, 1))
}
