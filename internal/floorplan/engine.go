package floorplan

import (
	"errors"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
)

// ErrTooManySegments is returned when an input exceeds Params.MaxSegments.
var ErrTooManySegments = errors.New("too many segments")

// Report summarizes what happened to the primitives during a reconstruction.
type Report struct {
	SegmentsIn          int         `json:"segments_in"`
	SegmentsAccepted    int         `json:"segments_accepted"`
	WallsResolved       int         `json:"walls_resolved"`
	RectanglesIn        int         `json:"rectangles_in"`
	RectanglesAccepted  int         `json:"rectangles_accepted"`
	Windows             int         `json:"windows"`
	Doors               int         `json:"doors"`
	RectanglesDiscarded int         `json:"rectangles_discarded"`
	Rejections          []Rejection `json:"rejections,omitempty"`
}

// Result is a reconstructed plan with its report.
type Result struct {
	Plan   FloorPlan `json:"plan"`
	Report Report    `json:"report"`
}

// Engine runs the full reconstruction pipeline with fixed parameters.
type Engine struct {
	params Params
	log    logrus.FieldLogger
}

// NewEngine validates params and returns an engine. A nil logger discards
// all output.
func NewEngine(params Params, logger logrus.FieldLogger) (*Engine, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = discardLogger()
	}
	return &Engine{params: params, log: logger}, nil
}

// Params returns the engine's tuning.
func (e *Engine) Params() Params { return e.params }

// Reconstruct turns raw primitives into a normalized floor plan.
//
// Malformed primitives are dropped and listed in the report. Invalid
// rectangle shapes fail the call with a *ValidationError, and more than
// Params.MaxSegments accepted segments fail it with ErrTooManySegments.
func (e *Engine) Reconstruct(in Primitives) (*Result, error) {
	accepted, err := Intake(in)
	if err != nil {
		return nil, err
	}
	if n := len(accepted.Segments); n > e.params.MaxSegments {
		return nil, fmt.Errorf("%w: %d accepted, limit %d", ErrTooManySegments, n, e.params.MaxSegments)
	}
	if len(accepted.Rejections) > 0 {
		e.log.WithField("rejected", len(accepted.Rejections)).Warn("dropped malformed primitives")
	}

	walls := ResolveWalls(accepted.Segments, e.params)
	openings := ClassifyOpenings(accepted.Rectangles, e.params)
	plan := Normalize(walls, openings.Doors, openings.Windows, e.params.Scale)

	report := Report{
		SegmentsIn:          len(in.Segments),
		SegmentsAccepted:    len(accepted.Segments),
		WallsResolved:       len(walls),
		RectanglesIn:        len(in.Rectangles),
		RectanglesAccepted:  len(accepted.Rectangles),
		Windows:             len(openings.Windows),
		Doors:               len(openings.Doors),
		RectanglesDiscarded: openings.Discarded,
		Rejections:          accepted.Rejections,
	}

	e.log.WithFields(logrus.Fields{
		"segments": report.SegmentsAccepted,
		"walls":    report.WallsResolved,
		"windows":  report.Windows,
		"doors":    report.Doors,
		"width":    plan.Dimensions.Width,
		"height":   plan.Dimensions.Height,
	}).Debug("reconstructed floor plan")

	if plan.IsEmpty() {
		e.log.Warn("reconstruction produced an empty plan")
	}

	return &Result{Plan: plan, Report: report}, nil
}

// ResolveWalls runs Intake on segments and resolves the survivors to walls.
// It enforces the same segment budget as Reconstruct.
func (e *Engine) ResolveWalls(segments []Segment) ([]Segment, []Rejection, error) {
	accepted, err := Intake(Primitives{Segments: segments})
	if err != nil {
		return nil, nil, err
	}
	if n := len(accepted.Segments); n > e.params.MaxSegments {
		return nil, nil, fmt.Errorf("%w: %d accepted, limit %d", ErrTooManySegments, n, e.params.MaxSegments)
	}
	return ResolveWalls(accepted.Segments, e.params), accepted.Rejections, nil
}

// ClassifyOpenings runs Intake on rects and classifies the survivors.
func (e *Engine) ClassifyOpenings(rects []Rect) (Classification, []Rejection, error) {
	accepted, err := Intake(Primitives{Rectangles: rects})
	if err != nil {
		return Classification{}, nil, err
	}
	return ClassifyOpenings(accepted.Rectangles, e.params), accepted.Rejections, nil
}

// Normalize normalizes already resolved walls and classified openings with
// the engine's scale. Opening kinds are reset to match the slice they came in.
//
// Nothing is dropped here: a wall or opening with a non-finite or
// out-of-range coordinate, a zero-length wall, or an opening without a
// positive size fails the call with a *ValidationError.
func (e *Engine) Normalize(walls []Segment, doors, windows []Opening) (FloorPlan, error) {
	if err := checkPlanInput(walls, doors, windows); err != nil {
		return FloorPlan{}, err
	}
	return Normalize(walls, withKind(doors, Door), withKind(windows, Window), e.params.Scale), nil
}

func withKind(in []Opening, kind OpeningKind) []Opening {
	out := make([]Opening, len(in))
	for i, o := range in {
		o.Kind = kind
		out[i] = o
	}
	return out
}

var defaultEngine = &Engine{params: DefaultParams(), log: discardLogger()}

// Reconstruct runs the pipeline with DefaultParams.
func Reconstruct(in Primitives) (*Result, error) {
	return defaultEngine.Reconstruct(in)
}

func discardLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}
