// Command livescore scores shots live from a webcam pointed at a target.
// Each captured frame is compared against the previous one so that only
// freshly appeared holes are scored, which makes reused targets workable.
package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"os"
	"os/signal"
	"time"

	"gocv.io/x/gocv"

	"target-scorer/internal/pipeline"
	"target-scorer/internal/profile"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	var (
		camera     = flag.Int("camera", 0, "Camera device index")
		profileArg = flag.String("profile", "10m-air-rifle", "Built-in profile name or path to a profile JSON file")
		width      = flag.Int("width", 1280, "Capture frame width")
		height     = flag.Int("height", 720, "Capture frame height")
		interval   = flag.Duration("interval", 500*time.Millisecond, "Delay between frames")
	)
	flag.Parse()

	prof, err := profile.ByName(*profileArg)
	if err != nil {
		prof, err = profile.Load(*profileArg)
		if err != nil {
			log.Fatalf("Failed to resolve target profile: %v", err)
		}
	}
	log.Printf("Scoring against %s", prof.Name)

	pipe, err := pipeline.New(prof)
	if err != nil {
		log.Fatalf("Failed to build pipeline: %v", err)
	}

	webcam, err := gocv.OpenVideoCapture(*camera)
	if err != nil {
		log.Fatalf("Failed to open camera %d: %v", *camera, err)
	}
	defer webcam.Close()
	webcam.Set(gocv.VideoCaptureFrameWidth, float64(*width))
	webcam.Set(gocv.VideoCaptureFrameHeight, float64(*height))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	sid := pipe.StartSession()
	defer pipe.EndSession(sid)
	log.Printf("Session %s started; press Ctrl-C to stop", sid)

	frame := gocv.NewMat()
	defer frame.Close()

	var total float64
	var shots int

	for ctx.Err() == nil {
		if !webcam.Read(&frame) || frame.Empty() {
			sleep(ctx, *interval)
			continue
		}

		img, err := frame.ToImage()
		if err != nil {
			log.Printf("Frame conversion failed: %v", err)
			sleep(ctx, *interval)
			continue
		}

		result, err := pipe.ProcessSessionFrame(ctx, sid, img)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				break
			}
			log.Printf("Frame processing failed: %v", err)
			sleep(ctx, *interval)
			continue
		}

		for _, s := range result.Scored {
			shots++
			total += s.Score
			if s.Score > 0 {
				log.Printf("Shot %d: ring %s, %.1f (%.1f mm from center), total %.1f",
					shots, s.Ring, s.Score, s.DistanceMM, total)
			} else {
				log.Printf("Shot %d: miss (%.1f mm from center), total %.1f",
					shots, s.DistanceMM, total)
			}
		}

		sleep(ctx, *interval)
	}

	log.Printf("Session over: %d shots, total %.1f", shots, total)
}

// sleep waits for d or until the context is cancelled.
func sleep(ctx context.Context, d time.Duration) {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}
