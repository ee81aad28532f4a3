package pview

import (
	"errors"
	"fmt"

	"github.com/cpmech/gomg/face"
)

// ErrOutOfBounds is the sentinel wrapped by OutOfBounds.
var ErrOutOfBounds = errors.New("pview: out of bounds")

// OutOfBounds reports an axis coordinate outside [-numGhost, length+numGhost)
// (spec §4.5: "Out-of-range coordinates in debug builds fail with
// OutOfBounds"). This package always bounds-checks; there is no separate
// release-mode fast path.
type OutOfBounds struct {
	Axis  int
	Coord int
	Min   int
	Max   int
}

func (e OutOfBounds) Error() string {
	return fmt.Sprintf("pview: axis %d coord %d out of range [%d, %d]", e.Axis, e.Coord, e.Min, e.Max)
}

func (e OutOfBounds) Unwrap() error { return ErrOutOfBounds }

// ErrFaceDimensionMismatch is the sentinel wrapped by FaceDimensionMismatch.
var ErrFaceDimensionMismatch = errors.New("pview: face does not apply to this view's dimension")

// FaceDimensionMismatch is returned by SliceOn when f's concrete type
// doesn't belong to a view of this dimension (e.g. a Corner3 against a
// 2-D view).
type FaceDimensionMismatch struct {
	Face face.Face
	Dim  int
}

func (e FaceDimensionMismatch) Error() string {
	return fmt.Sprintf("pview: face %v (%v) does not apply to a %d-D view", e.Face, e.Face.Kind(), e.Dim)
}

func (e FaceDimensionMismatch) Unwrap() error { return ErrFaceDimensionMismatch }

// ErrCoordLenMismatch is returned when a coordinate tuple's length
// doesn't match the view's dimension.
var ErrCoordLenMismatch = errors.New("pview: coordinate length does not match view dimension")
