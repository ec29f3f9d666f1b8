package floorplan

import (
	"errors"
	"fmt"
	"math"
)

// Default tuning values.
const (
	// DefaultGroupThreshold is the maximum coordinate difference (source
	// units, exclusive) between two same-orientation segments for them to be
	// treated as detections of the same wall.
	DefaultGroupThreshold = 20.0

	// DefaultOrientationTolerance is the maximum endpoint drift (exclusive)
	// across the minor axis for a segment to count as horizontal or vertical.
	DefaultOrientationTolerance = 5.0

	// DefaultScale multiplies centered coordinates into scene units.
	DefaultScale = 4.0

	// DefaultMaxSegments bounds the accepted segment count per reconstruction.
	DefaultMaxSegments = 5000

	// DefaultIndexThreshold is the segment count at which wall resolution
	// switches from the pairwise scan to the R-tree candidate search.
	DefaultIndexThreshold = 64
)

// Hard limits on input magnitude. Together they keep every normalized
// coordinate and dimension finite.
const (
	// MaxCoordinate bounds the absolute value of any source coordinate or
	// opening size.
	MaxCoordinate = 1e9

	// MaxScale bounds Params.Scale.
	MaxScale = 1e6
)

// ErrInvalidParams is returned by Params.Validate.
var ErrInvalidParams = errors.New("invalid floorplan parameters")

// Band is an open size range: both dimensions must lie strictly between
// their bounds.
type Band struct {
	MinWidth  float64 `json:"min_width"`
	MaxWidth  float64 `json:"max_width"`
	MinHeight float64 `json:"min_height"`
	MaxHeight float64 `json:"max_height"`
}

// Contains reports whether a width×height rectangle falls inside the band.
func (b Band) Contains(width, height float64) bool {
	return width > b.MinWidth && width < b.MaxWidth &&
		height > b.MinHeight && height < b.MaxHeight
}

// DefaultWindowBand is the size band for windows.
var DefaultWindowBand = Band{MinWidth: 30, MaxWidth: 100, MinHeight: 10, MaxHeight: 50}

// DefaultDoorBand is the size band for doors. It overlaps DefaultWindowBand
// on (50,100)×(10,50); the classifier gives windows precedence there.
var DefaultDoorBand = Band{MinWidth: 50, MaxWidth: 200, MinHeight: 10, MaxHeight: 80}

// Params holds the engine's tuning knobs.
type Params struct {
	GroupThreshold       float64 `json:"group_threshold"`
	OrientationTolerance float64 `json:"orientation_tolerance"`
	WindowBand           Band    `json:"window_band"`
	DoorBand             Band    `json:"door_band"`
	Scale                float64 `json:"scale"`
	MaxSegments          int     `json:"max_segments"`
	IndexThreshold       int     `json:"index_threshold"`
}

// DefaultParams returns the stock tuning.
func DefaultParams() Params {
	return Params{
		GroupThreshold:       DefaultGroupThreshold,
		OrientationTolerance: DefaultOrientationTolerance,
		WindowBand:           DefaultWindowBand,
		DoorBand:             DefaultDoorBand,
		Scale:                DefaultScale,
		MaxSegments:          DefaultMaxSegments,
		IndexThreshold:       DefaultIndexThreshold,
	}
}

// Validate checks that every knob is usable.
func (p Params) Validate() error {
	if !positive(p.GroupThreshold) {
		return fmt.Errorf("%w: group threshold %v must be positive", ErrInvalidParams, p.GroupThreshold)
	}
	if !positive(p.OrientationTolerance) {
		return fmt.Errorf("%w: orientation tolerance %v must be positive", ErrInvalidParams, p.OrientationTolerance)
	}
	if !positive(p.Scale) {
		return fmt.Errorf("%w: scale %v must be positive", ErrInvalidParams, p.Scale)
	}
	if p.Scale > MaxScale {
		return fmt.Errorf("%w: scale %v exceeds %v", ErrInvalidParams, p.Scale, float64(MaxScale))
	}
	if p.MaxSegments <= 0 {
		return fmt.Errorf("%w: max segments %d must be positive", ErrInvalidParams, p.MaxSegments)
	}
	if p.IndexThreshold <= 0 {
		return fmt.Errorf("%w: index threshold %d must be positive", ErrInvalidParams, p.IndexThreshold)
	}
	if err := p.WindowBand.validate("window"); err != nil {
		return err
	}
	return p.DoorBand.validate("door")
}

func (b Band) validate(name string) error {
	for _, v := range []float64{b.MinWidth, b.MaxWidth, b.MinHeight, b.MaxHeight} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: %s band has non-finite bound", ErrInvalidParams, name)
		}
	}
	if b.MinWidth >= b.MaxWidth || b.MinHeight >= b.MaxHeight {
		return fmt.Errorf("%w: %s band %+v is empty", ErrInvalidParams, name, b)
	}
	return nil
}

func positive(v float64) bool {
	return v > 0 && !math.IsInf(v, 0)
}

// horizontal reports whether s runs along the X axis within tolerance.
func (p Params) horizontal(s Segment) bool {
	return math.Abs(s.Y1-s.Y2) < p.OrientationTolerance
}

// vertical reports whether s runs along the Y axis within tolerance.
func (p Params) vertical(s Segment) bool {
	return math.Abs(s.X1-s.X2) < p.OrientationTolerance
}
