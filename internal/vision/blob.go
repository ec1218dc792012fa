package vision

import (
	"fmt"
	"image"

	"gocv.io/x/gocv"

	"target-scorer/pkg/geometry"
)

// SimpleBlobFinder implements BlobFinder with the OpenCV simple blob
// detector, filtering candidates by area, circularity, convexity and inertia.
type SimpleBlobFinder struct{}

// FindBlobs runs a single blob detection pass over gray.
func (SimpleBlobFinder) FindBlobs(gray *image.Gray, p BlobParams) ([]Blob, error) {
	if gray == nil || gray.Bounds().Dx() <= 0 || gray.Bounds().Dy() <= 0 {
		return nil, ErrInvalidImage
	}

	mat, err := gocv.ImageGrayToMatGray(gray)
	if err != nil {
		return nil, fmt.Errorf("failed to convert image: %w", err)
	}
	defer mat.Close()

	params := gocv.NewSimpleBlobDetectorParams()
	params.SetFilterByArea(true)
	params.SetMinArea(p.MinArea)
	params.SetMaxArea(p.MaxArea)
	params.SetFilterByCircularity(true)
	params.SetMinCircularity(p.MinCircularity)
	params.SetFilterByConvexity(true)
	params.SetMinConvexity(p.MinConvexity)
	params.SetFilterByInertia(true)
	params.SetMinInertiaRatio(p.MinInertiaRatio)
	// Both tonal polarities are handled by running the detector twice,
	// once on the image and once on its inverse.
	params.SetFilterByColor(false)

	detector := gocv.NewSimpleBlobDetectorWithParams(params)
	defer detector.Close()

	keypoints := detector.Detect(mat)
	blobs := make([]Blob, len(keypoints))
	for i, kp := range keypoints {
		blobs[i] = Blob{
			Center: geometry.Point2D{X: kp.X, Y: kp.Y},
			Radius: kp.Size / 2,
		}
	}
	return blobs, nil
}
