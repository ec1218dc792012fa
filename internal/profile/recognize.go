package profile

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"strings"

	"github.com/otiai10/gosseract/v2"
)

// Recognizer identifies the target type from the caption printed on the
// card using Tesseract OCR.
type Recognizer struct {
	client *gosseract.Client
}

// NewRecognizer creates an OCR-based profile recognizer.
func NewRecognizer() (*Recognizer, error) {
	client := gosseract.NewClient()
	if err := client.SetLanguage("eng"); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to set OCR language: %w", err)
	}
	// Target captions are printed uppercase; restricting the character set
	// avoids mis-reads on ring digits elsewhere in the frame.
	_ = client.SetWhitelist("0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ. ")
	return &Recognizer{client: client}, nil
}

// Close releases OCR resources.
func (r *Recognizer) Close() error {
	if r.client != nil {
		err := r.client.Close()
		r.client = nil
		return err
	}
	return nil
}

// Recognize OCRs the frame and matches the text against the built-in
// profiles. Returns the matched profile, or an error when no caption is
// legible.
func (r *Recognizer) Recognize(src image.Image) (*TargetProfile, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, src); err != nil {
		return nil, fmt.Errorf("failed to encode frame for OCR: %w", err)
	}
	if err := r.client.SetImageFromBytes(buf.Bytes()); err != nil {
		return nil, fmt.Errorf("failed to load frame into OCR engine: %w", err)
	}
	text, err := r.client.Text()
	if err != nil {
		return nil, fmt.Errorf("OCR failed: %w", err)
	}
	return matchCaption(text)
}

// matchCaption maps OCR output to a built-in profile.
func matchCaption(text string) (*TargetProfile, error) {
	upper := strings.ToUpper(text)
	switch {
	case strings.Contains(upper, "AIR PISTOL"):
		return ISSF10mAirPistol(), nil
	case strings.Contains(upper, "AIR RIFLE"):
		return ISSF10mAirRifle(), nil
	case strings.Contains(upper, "50") && strings.Contains(upper, "RIFLE"):
		return ISSF50mRifle(), nil
	}
	return nil, fmt.Errorf("no known target caption in OCR text %q", strings.TrimSpace(text))
}
