// Command scorecard scores a photographed or scanned target image and
// prints the per-shot results.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"log"
	"os"
	"sort"
	"strconv"
	"strings"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"

	"target-scorer/internal/overlay"
	"target-scorer/internal/pipeline"
	"target-scorer/internal/profile"
	"target-scorer/internal/score"
	"target-scorer/pkg/geometry"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	var (
		imagePath     = flag.String("image", "", "Target image to score (png/jpeg/gif/tiff/bmp)")
		profileArg    = flag.String("profile", "10m-air-rifle", "Built-in profile name or path to a profile JSON file")
		centerArg     = flag.String("center", "", "Manual calibration: target center as x,y pixels")
		edgeArg       = flag.String("edge", "", "Manual calibration: black-area edge as x,y pixels")
		overlayPath   = flag.String("overlay", "", "Write an annotated copy of the image to this path")
		jsonOutput    = flag.Bool("json", false, "Print the full result as JSON")
		detectProfile = flag.Bool("detect-profile", false, "Read the printed target caption with OCR to pick the profile")
	)
	flag.Parse()

	if *imagePath == "" {
		flag.Usage()
		os.Exit(2)
	}

	img, err := loadImage(*imagePath)
	if err != nil {
		log.Fatalf("Failed to load image: %v", err)
	}

	prof, err := resolveProfile(*profileArg, *detectProfile, img)
	if err != nil {
		log.Fatalf("Failed to resolve target profile: %v", err)
	}
	log.Printf("Scoring against %s", prof.Name)

	pipe, err := pipeline.New(prof)
	if err != nil {
		log.Fatalf("Failed to build pipeline: %v", err)
	}

	if (*centerArg == "") != (*edgeArg == "") {
		log.Fatal("Manual calibration needs both -center and -edge")
	}
	if *centerArg != "" {
		center, err := parsePoint(*centerArg)
		if err != nil {
			log.Fatalf("Bad -center: %v", err)
		}
		edge, err := parsePoint(*edgeArg)
		if err != nil {
			log.Fatalf("Bad -edge: %v", err)
		}
		c, err := pipe.CalibrateManual(center, edge)
		if err != nil {
			log.Fatalf("Manual calibration rejected: %v", err)
		}
		log.Printf("Manual calibration: center (%.0f, %.0f), radius %.1f px, %.4f px/mm",
			c.Center.X, c.Center.Y, c.RadiusPX, c.PixelsPerMM)
	}

	result, err := pipe.ProcessFrame(context.Background(), img)
	if err != nil {
		log.Fatalf("Processing failed: %v", err)
	}

	if *jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(result); err != nil {
			log.Fatalf("Failed to encode result: %v", err)
		}
	} else {
		printReport(result)
	}

	if *overlayPath != "" {
		annotated, err := overlay.Draw(img, result.Calibration, result.Scored, overlay.DefaultOptions())
		if err != nil {
			log.Fatalf("Failed to render overlay: %v", err)
		}
		if err := writePNG(*overlayPath, annotated); err != nil {
			log.Fatalf("Failed to write overlay: %v", err)
		}
		log.Printf("Annotated image written to %s", *overlayPath)
	}
}

// resolveProfile picks the target profile from OCR, a built-in name, or a
// JSON file path, in that priority order.
func resolveProfile(arg string, ocr bool, img image.Image) (*profile.TargetProfile, error) {
	if ocr {
		rec, err := profile.NewRecognizer()
		if err != nil {
			return nil, err
		}
		defer rec.Close()
		return rec.Recognize(img)
	}
	if prof, err := profile.ByName(arg); err == nil {
		return prof, nil
	}
	return profile.Load(arg)
}

func loadImage(path string) (image.Image, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}
	return img, nil
}

func writePNG(path string, img image.Image) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return png.Encode(file, img)
}

// parsePoint parses "x,y" into a pixel point.
func parsePoint(s string) (geometry.Point2D, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return geometry.Point2D{}, fmt.Errorf("expected x,y, got %q", s)
	}
	x, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return geometry.Point2D{}, err
	}
	y, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return geometry.Point2D{}, err
	}
	return geometry.Point2D{X: x, Y: y}, nil
}

func printReport(r *pipeline.Result) {
	fmt.Printf("Calibration: %s, center (%.0f, %.0f), radius %.1f px\n",
		r.Calibration.Confidence, r.Calibration.Center.X, r.Calibration.Center.Y, r.Calibration.RadiusPX)

	if len(r.Scored) == 0 {
		fmt.Println("No holes detected.")
		return
	}

	for i, s := range r.Scored {
		label := s.Ring
		if s.Ring != score.MissRing {
			label = fmt.Sprintf("ring %s, %.1f", s.Ring, s.Score)
		}
		fmt.Printf("Shot %2d: %s (%.1f mm from center)\n", i+1, label, s.DistanceMM)
	}

	fmt.Printf("\nTotal %.1f over %d shots (mean %.2f)\n", r.Summary.Total, r.Summary.Shots, r.Summary.Mean)

	rings := make([]string, 0, len(r.Summary.PerRing))
	for ring := range r.Summary.PerRing {
		rings = append(rings, ring)
	}
	sort.Strings(rings)
	for _, ring := range rings {
		fmt.Printf("  %s: %d\n", ring, r.Summary.PerRing[ring])
	}

	if g := r.Summary.Group; g != nil {
		fmt.Printf("Group: mean radius %.1f mm, extreme spread %.1f mm, MPI offset (%.1f, %.1f) mm\n",
			g.MeanRadiusMM, g.ExtremeSpreadMM, g.CenterOffsetMM.X, g.CenterOffsetMM.Y)
	}
}
