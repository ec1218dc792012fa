// Package pipeline wires preprocessing, calibration, hole detection, change
// detection and scoring into a synchronous process-one-frame entry point.
// The pipeline has no event loop and no timers; an external driver calls it
// once per frame.
package pipeline

import (
	"context"
	"fmt"
	"image"
	"sync"

	"github.com/google/uuid"

	"target-scorer/internal/calib"
	"target-scorer/internal/detect"
	"target-scorer/internal/profile"
	"target-scorer/internal/score"
	"target-scorer/internal/session"
	"target-scorer/internal/vision"
	"target-scorer/pkg/geometry"
)

// Result is the output of processing one frame.
type Result struct {
	Calibration calib.Calibration  `json:"calibration"`
	Holes       []detect.Hole      `json:"holes"`
	Scored      []score.ScoredHole `json:"scored"`
	Summary     score.Summary      `json:"summary"`
}

// Pipeline processes frames of one target. The current calibration is the
// only cached value; it is replaced atomically and reused across frames
// until invalidated. Everything else is computed per frame from immutable
// snapshots, so independent frames may be processed concurrently.
type Pipeline struct {
	pre      vision.Preprocessor
	auto     *calib.AutoCalibrator
	detector *detect.Detector
	sessions *session.Store
	change   *session.ChangeDetector
	profile  *profile.TargetProfile

	mu      sync.RWMutex
	current *calib.Calibration
}

// New creates a pipeline with the OpenCV-backed preprocessor and finders.
func New(prof *profile.TargetProfile) (*Pipeline, error) {
	return NewWithComponents(prof,
		vision.NewStandardPreprocessor(),
		vision.HoughCircleFinder{},
		vision.SimpleBlobFinder{})
}

// NewWithComponents creates a pipeline with explicit preprocessor and
// finders. Used to substitute synthetic implementations in tests.
func NewWithComponents(prof *profile.TargetProfile, pre vision.Preprocessor, circles vision.CircleFinder, blobs vision.BlobFinder) (*Pipeline, error) {
	if prof == nil {
		return nil, fmt.Errorf("%w: nil profile", profile.ErrInvalidProfile)
	}
	if err := prof.Validate(); err != nil {
		return nil, err
	}

	store := session.NewStore()
	return &Pipeline{
		pre:      pre,
		auto:     calib.NewAutoCalibrator(circles),
		detector: detect.NewDetector(blobs),
		sessions: store,
		change:   session.NewChangeDetector(store),
		profile:  prof,
	}, nil
}

// Profile returns the target profile the pipeline scores against.
func (p *Pipeline) Profile() *profile.TargetProfile {
	return p.profile
}

// Calibration returns a snapshot of the current calibration, if any.
func (p *Pipeline) Calibration() (calib.Calibration, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.current == nil {
		return calib.Calibration{}, false
	}
	return *p.current, true
}

// Invalidate discards the current calibration. The next frame recalibrates.
func (p *Pipeline) Invalidate() {
	p.mu.Lock()
	p.current = nil
	p.mu.Unlock()
}

// CalibrateManual replaces the current calibration from two user-supplied
// points. On invalid input the previous calibration is retained.
func (p *Pipeline) CalibrateManual(center, edge geometry.Point2D) (calib.Calibration, error) {
	c, err := calib.Manual(center, edge, p.profile.BlackAreaDiameterMM)
	if err != nil {
		return calib.Calibration{}, err
	}
	p.setCalibration(c)
	return c, nil
}

// CalibrateAuto preprocesses src, runs the circle search and replaces the
// current calibration with the result (possibly an estimated fallback).
func (p *Pipeline) CalibrateAuto(src image.Image) (calib.Calibration, error) {
	gray, err := p.pre.Prepare(src)
	if err != nil {
		return calib.Calibration{}, err
	}
	return p.calibrateFromGray(gray)
}

func (p *Pipeline) calibrateFromGray(gray *image.Gray) (calib.Calibration, error) {
	c, err := p.auto.Calibrate(gray, p.profile)
	if err != nil {
		return calib.Calibration{}, err
	}
	p.setCalibration(c)
	return c, nil
}

// setCalibration atomically replaces the cached calibration. Any cached
// downstream results belong to callers and are invalidated by contract.
func (p *Pipeline) setCalibration(c calib.Calibration) {
	p.mu.Lock()
	p.current = &c
	p.mu.Unlock()
}

// ensureCalibrated returns the current calibration, establishing one
// automatically from the frame when none exists.
func (p *Pipeline) ensureCalibrated(gray *image.Gray) (calib.Calibration, error) {
	if c, ok := p.Calibration(); ok {
		return c, nil
	}
	return p.calibrateFromGray(gray)
}

// ProcessFrame runs the full pipeline on one frame: preprocess, calibrate
// (cached), detect, score.
func (p *Pipeline) ProcessFrame(ctx context.Context, src image.Image) (*Result, error) {
	gray, c, err := p.prepareFrame(ctx, src)
	if err != nil {
		return nil, err
	}

	holes, err := p.detector.Detect(gray, c, p.profile)
	if err != nil {
		return nil, err
	}
	return p.scoreResult(c, holes), nil
}

// ProcessSessionFrame is ProcessFrame with change detection: only holes that
// newly appeared since the session's previous frame are scored. The first
// frame of a session establishes the baseline and scores nothing.
func (p *Pipeline) ProcessSessionFrame(ctx context.Context, id uuid.UUID, src image.Image) (*Result, error) {
	gray, c, err := p.prepareFrame(ctx, src)
	if err != nil {
		return nil, err
	}

	holes, err := p.detector.Detect(gray, c, p.profile)
	if err != nil {
		return nil, err
	}

	fresh, err := p.change.Classify(ctx, id, gray, holes)
	if err != nil {
		return nil, err
	}
	return p.scoreResult(c, fresh), nil
}

func (p *Pipeline) prepareFrame(ctx context.Context, src image.Image) (*image.Gray, calib.Calibration, error) {
	if err := ctx.Err(); err != nil {
		return nil, calib.Calibration{}, err
	}

	gray, err := p.pre.Prepare(src)
	if err != nil {
		return nil, calib.Calibration{}, err
	}

	c, err := p.ensureCalibrated(gray)
	if err != nil {
		return nil, calib.Calibration{}, err
	}
	return gray, c, nil
}

func (p *Pipeline) scoreResult(c calib.Calibration, holes []detect.Hole) *Result {
	scored := score.EvaluateAll(holes, c, p.profile)
	return &Result{
		Calibration: c,
		Holes:       holes,
		Scored:      scored,
		Summary:     score.Summarize(scored, c),
	}
}

// StartSession begins a change-detection session and returns its handle.
func (p *Pipeline) StartSession() uuid.UUID {
	return p.sessions.Begin()
}

// EndSession destroys a session's stored state.
func (p *Pipeline) EndSession(id uuid.UUID) {
	p.sessions.End(id)
}

// ResetSession clears a session's baseline without destroying the session.
func (p *Pipeline) ResetSession(id uuid.UUID) error {
	return p.sessions.Reset(id)
}
