package session

import (
	"context"
	"image"
	"image/draw"

	"github.com/google/uuid"

	"target-scorer/internal/detect"
	"target-scorer/pkg/geometry"
)

// ChangeDetector classifies which detected holes newly appeared relative to
// the session's previous frame, supporting practice on reused targets where
// only fresh holes should be scored.
type ChangeDetector struct {
	store *Store

	// DiffThreshold is the per-pixel absolute difference above which a
	// pixel counts as changed.
	DiffThreshold uint8

	// MatchRadius is the pixel distance within which a detection matches a
	// previously accepted hole.
	MatchRadius float64
}

// NewChangeDetector creates a change detector over the given store.
func NewChangeDetector(store *Store) *ChangeDetector {
	return &ChangeDetector{
		store:         store,
		DiffThreshold: 40,
		MatchRadius:   10,
	}
}

// Classify returns the subset of holes that newly appeared since the
// session's previous frame, then commits the current frame and hole set as
// the new baseline. The first frame of a session only establishes the
// baseline and never reports new holes. A cancelled context discards the
// classification without mutating session state.
func (d *ChangeDetector) Classify(ctx context.Context, id uuid.UUID, frame *image.Gray, holes []detect.Hole) ([]detect.Hole, error) {
	st, ok := d.store.get(id)
	if !ok {
		return nil, ErrUnknownSession
	}

	st.mu.Lock()
	defer st.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// First frame, or the frame geometry changed (new capture source):
	// store the baseline and report nothing new.
	if st.prevFrame == nil || !st.prevFrame.Bounds().Eq(frame.Bounds()) {
		d.commit(st, frame, holes)
		return nil, nil
	}

	changed := diffMask(st.prevFrame, frame, d.DiffThreshold)

	var fresh []detect.Hole
	for _, h := range holes {
		if !changedAt(changed, h.Center) {
			continue
		}
		if d.matchesPrevious(st, h.Center) {
			continue
		}
		fresh = append(fresh, h)
	}

	// Cancelled mid-classification: discard the result rather than commit
	// a half-processed frame (last-submitted-frame-wins for the caller).
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	d.commit(st, frame, holes)
	return fresh, nil
}

// commit atomically replaces the stored baseline. A copy of the frame is
// kept so callers may reuse their buffer.
func (d *ChangeDetector) commit(st *state, frame *image.Gray, holes []detect.Hole) {
	st.prevFrame = cloneGray(frame)
	st.prevHoles = make([]geometry.Point2D, len(holes))
	for i, h := range holes {
		st.prevHoles[i] = h.Center
	}
}

// matchesPrevious reports whether a previously accepted hole lies within the
// matching radius of p.
func (d *ChangeDetector) matchesPrevious(st *state, p geometry.Point2D) bool {
	for _, prev := range st.prevHoles {
		if prev.Distance(p) < d.MatchRadius {
			return true
		}
	}
	return false
}

// diffMask thresholds the absolute per-pixel difference of two same-size
// frames into a binary changed-region mask.
func diffMask(prev, cur *image.Gray, threshold uint8) *image.Gray {
	b := cur.Bounds()
	mask := image.NewGray(b)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			a := prev.GrayAt(x, y).Y
			c := cur.GrayAt(x, y).Y
			diff := a - c
			if c > a {
				diff = c - a
			}
			if diff >= threshold {
				mask.Pix[mask.PixOffset(x, y)] = 255
			}
		}
	}
	return mask
}

// changedAt reports whether the mask is set at a hole's pixel location.
func changedAt(mask *image.Gray, p geometry.Point2D) bool {
	x := int(p.X + 0.5)
	y := int(p.Y + 0.5)
	if !image.Pt(x, y).In(mask.Bounds()) {
		return false
	}
	return mask.GrayAt(x, y).Y != 0
}

// cloneGray returns an independent copy of g.
func cloneGray(g *image.Gray) *image.Gray {
	out := image.NewGray(g.Bounds())
	draw.Draw(out, out.Bounds(), g, g.Bounds().Min, draw.Src)
	return out
}
