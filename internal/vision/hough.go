package vision

import (
	"fmt"
	"image"

	"gocv.io/x/gocv"

	"target-scorer/pkg/geometry"
)

// HoughCircleFinder implements CircleFinder with the OpenCV Hough gradient
// circle transform.
type HoughCircleFinder struct{}

// FindCircles runs the Hough transform and returns all detected circles.
// Finding nothing is not an error; the result is simply empty.
func (HoughCircleFinder) FindCircles(gray *image.Gray, p CircleParams) ([]geometry.Circle, error) {
	if gray == nil || gray.Bounds().Dx() <= 0 || gray.Bounds().Dy() <= 0 {
		return nil, ErrInvalidImage
	}

	mat, err := gocv.ImageGrayToMatGray(gray)
	if err != nil {
		return nil, fmt.Errorf("failed to convert image: %w", err)
	}
	defer mat.Close()

	circles := gocv.NewMat()
	defer circles.Close()

	gocv.HoughCirclesWithParams(mat, &circles, gocv.HoughGradient,
		p.DP, p.MinDist, p.CannyThreshold, p.AccumulatorThreshold,
		p.MinRadius, p.MaxRadius)

	if circles.Empty() || circles.Cols() == 0 {
		return nil, nil
	}

	// Output layout is a single row of (x, y, r) float triples.
	found := make([]geometry.Circle, circles.Cols())
	for i := 0; i < circles.Cols(); i++ {
		found[i] = geometry.Circle{
			Center: geometry.Point2D{
				X: float64(circles.GetFloatAt(0, i*3)),
				Y: float64(circles.GetFloatAt(0, i*3+1)),
			},
			Radius: float64(circles.GetFloatAt(0, i*3+2)),
		}
	}
	return found, nil
}
