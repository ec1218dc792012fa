package vision

import (
	"fmt"
	"image"

	"gocv.io/x/gocv"
)

// StandardPreprocessor implements Preprocessor with OpenCV: grayscale
// conversion, Gaussian blur, then CLAHE contrast normalization.
type StandardPreprocessor struct {
	BlurKernel int     // Gaussian kernel size, must be odd
	ClipLimit  float64 // CLAHE clip limit
	TileGrid   int     // CLAHE tile grid size (per axis)
}

// NewStandardPreprocessor returns a preprocessor with the stock parameters.
func NewStandardPreprocessor() *StandardPreprocessor {
	return &StandardPreprocessor{
		BlurKernel: 5,
		ClipLimit:  2.0,
		TileGrid:   8,
	}
}

// Prepare converts src to a blurred, contrast-normalized grayscale image.
func (p *StandardPreprocessor) Prepare(src image.Image) (*image.Gray, error) {
	if src == nil {
		return nil, fmt.Errorf("%w: nil source", ErrInvalidImage)
	}
	b := src.Bounds()
	if b.Dx() <= 0 || b.Dy() <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidImage, b.Dx(), b.Dy())
	}

	mat, err := gocv.ImageToMatRGBA(src)
	if err != nil {
		return nil, fmt.Errorf("failed to convert image: %w", err)
	}
	defer mat.Close()

	gray := gocv.NewMat()
	defer gray.Close()
	gocv.CvtColor(mat, &gray, gocv.ColorRGBAToGray)

	k := p.BlurKernel
	if k < 3 {
		k = 3
	}
	if k%2 == 0 {
		k++
	}
	blurred := gocv.NewMat()
	defer blurred.Close()
	gocv.GaussianBlur(gray, &blurred, image.Point{X: k, Y: k}, 0, 0, gocv.BorderDefault)

	clahe := gocv.NewCLAHEWithParams(p.ClipLimit, image.Point{X: p.TileGrid, Y: p.TileGrid})
	defer clahe.Close()
	enhanced := gocv.NewMat()
	defer enhanced.Close()
	clahe.Apply(blurred, &enhanced)

	out, err := enhanced.ToImage()
	if err != nil {
		return nil, fmt.Errorf("failed to read back preprocessed image: %w", err)
	}
	grayImg, ok := out.(*image.Gray)
	if !ok {
		return nil, fmt.Errorf("unexpected preprocessed image type %T", out)
	}
	return grayImg, nil
}
