package floorplan

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// ErrInvalidPrimitive is wrapped by every *ValidationError.
var ErrInvalidPrimitive = errors.New("invalid primitive")

// PrimitiveKind names the kind of primitive a Rejection or Problem refers to.
type PrimitiveKind string

const (
	KindSegment   PrimitiveKind = "segment"
	KindRectangle PrimitiveKind = "rectangle"
	KindWall      PrimitiveKind = "wall"
	KindDoor      PrimitiveKind = "door"
	KindWindow    PrimitiveKind = "window"
)

// Rejection records a primitive that Intake dropped without failing.
type Rejection struct {
	Kind   PrimitiveKind `json:"kind"`
	Index  int           `json:"index"`
	Reason string        `json:"reason"`
}

// Problem describes one invalid primitive inside a ValidationError.
// Value is zero when the offending value is not finite.
type Problem struct {
	Kind   PrimitiveKind `json:"kind"`
	Index  int           `json:"index"`
	Field  string        `json:"field"`
	Value  float64       `json:"value"`
	Reason string        `json:"reason"`
}

// ValidationError is returned by Intake when one or more rectangles have a
// non-positive width or height, and by Engine.Normalize for any invalid
// wall or opening.
type ValidationError struct {
	Problems []Problem
}

const reasonNotFinite = "is not finite"

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Problems))
	for _, p := range e.Problems {
		if p.Reason == reasonNotFinite {
			parts = append(parts, fmt.Sprintf("%s %d: %s %s", p.Kind, p.Index, p.Field, p.Reason))
			continue
		}
		parts = append(parts, fmt.Sprintf("%s %d: %s %v %s", p.Kind, p.Index, p.Field, p.Value, p.Reason))
	}
	return fmt.Sprintf("%d invalid primitive(s): %s", len(e.Problems), strings.Join(parts, "; "))
}

func (e *ValidationError) Unwrap() error { return ErrInvalidPrimitive }

// Accepted is the sanitized output of Intake.
type Accepted struct {
	Segments   []Segment
	Rectangles []Rect
	Rejections []Rejection
}

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func primitiveValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New()
		// Registration only fails for an empty tag or nil func.
		_ = validate.RegisterValidation("finite", func(fl validator.FieldLevel) bool {
			v, ok := floatField(fl)
			return ok && !math.IsNaN(v) && !math.IsInf(v, 0)
		})
		_ = validate.RegisterValidation("coord", func(fl validator.FieldLevel) bool {
			v, ok := floatField(fl)
			return ok && math.Abs(v) <= MaxCoordinate
		})
	})
	return validate
}

func floatField(fl validator.FieldLevel) (float64, bool) {
	if k := fl.Field().Kind(); k != reflect.Float64 && k != reflect.Float32 {
		return 0, false
	}
	return fl.Field().Float(), true
}

// Intake validates raw primitives at the engine boundary.
//
// Malformed detections are dropped and reported as Rejections rather than
// failing the whole reconstruction:
//   - segments with a non-finite coordinate
//   - segments with a coordinate beyond ±MaxCoordinate
//   - segments of zero length
//   - rectangles with a non-finite field or one beyond ±MaxCoordinate
//
// A finite rectangle with non-positive width or height is an invalid input
// shape: Intake collects every such rectangle and returns a *ValidationError.
//
// The input slices are not modified. Accepted segments are rebuilt with
// NewSegment so Length is always derived from the endpoints.
func Intake(in Primitives) (Accepted, error) {
	v := primitiveValidator()
	out := Accepted{
		Segments:   make([]Segment, 0, len(in.Segments)),
		Rectangles: make([]Rect, 0, len(in.Rectangles)),
	}

	for i, s := range in.Segments {
		if err := v.Struct(s); err != nil {
			out.Rejections = append(out.Rejections, Rejection{Kind: KindSegment, Index: i, Reason: describe(err)})
			continue
		}
		seg := NewSegment(s.X1, s.Y1, s.X2, s.Y2)
		if seg.Length == 0 {
			out.Rejections = append(out.Rejections, Rejection{Kind: KindSegment, Index: i, Reason: "zero length"})
			continue
		}
		out.Segments = append(out.Segments, seg)
	}

	var problems []Problem
	for i, r := range in.Rectangles {
		err := v.Struct(r)
		if err == nil {
			out.Rectangles = append(out.Rectangles, r)
			continue
		}
		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) {
			return Accepted{}, fmt.Errorf("validate rectangle %d: %w", i, err)
		}
		if hasTag(fieldErrs, "finite") || hasTag(fieldErrs, "coord") {
			out.Rejections = append(out.Rejections, Rejection{Kind: KindRectangle, Index: i, Reason: describe(err)})
			continue
		}
		problems = append(problems, fieldProblems(KindRectangle, i, fieldErrs)...)
	}

	if len(problems) > 0 {
		return Accepted{}, &ValidationError{Problems: problems}
	}
	return out, nil
}

// checkPlanInput validates walls and openings that skip Intake on their
// way to the normalizer. Nothing is dropped: every defect is a Problem.
func checkPlanInput(walls []Segment, doors, windows []Opening) error {
	v := primitiveValidator()
	var problems []Problem

	for i, w := range walls {
		if err := v.Struct(w); err != nil {
			var fieldErrs validator.ValidationErrors
			if !errors.As(err, &fieldErrs) {
				return fmt.Errorf("validate wall %d: %w", i, err)
			}
			problems = append(problems, fieldProblems(KindWall, i, fieldErrs)...)
			continue
		}
		if w.X1 == w.X2 && w.Y1 == w.Y2 {
			problems = append(problems, Problem{Kind: KindWall, Index: i, Field: "length", Reason: "must be positive"})
		}
	}

	groups := []struct {
		kind     PrimitiveKind
		openings []Opening
	}{{KindDoor, doors}, {KindWindow, windows}}
	for _, g := range groups {
		for i, o := range g.openings {
			err := v.Struct(o)
			if err == nil {
				continue
			}
			var fieldErrs validator.ValidationErrors
			if !errors.As(err, &fieldErrs) {
				return fmt.Errorf("validate %s %d: %w", g.kind, i, err)
			}
			problems = append(problems, fieldProblems(g.kind, i, fieldErrs)...)
		}
	}

	if len(problems) > 0 {
		return &ValidationError{Problems: problems}
	}
	return nil
}

func fieldProblems(kind PrimitiveKind, index int, errs validator.ValidationErrors) []Problem {
	out := make([]Problem, 0, len(errs))
	for _, fe := range errs {
		p := Problem{
			Kind:   kind,
			Index:  index,
			Field:  strings.ToLower(fe.Field()),
			Reason: reason(fe.Tag()),
		}
		if v, ok := fe.Value().(float64); ok && !math.IsNaN(v) && !math.IsInf(v, 0) {
			p.Value = v
		}
		out = append(out, p)
	}
	return out
}

func reason(tag string) string {
	switch tag {
	case "finite":
		return reasonNotFinite
	case "gt":
		return "must be positive"
	case "coord":
		return "exceeds coordinate limit"
	default:
		return "fails " + tag
	}
}

func hasTag(errs validator.ValidationErrors, tag string) bool {
	for _, fe := range errs {
		if fe.Tag() == tag {
			return true
		}
	}
	return false
}

// describe flattens validator errors into a short reason string.
func describe(err error) string {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err.Error()
	}
	parts := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		parts = append(parts, strings.ToLower(fe.Field())+" "+reason(fe.Tag()))
	}
	return strings.Join(parts, ", ")
}
