package patch

import (
	"errors"
	"fmt"

	"github.com/cpmech/gomg/face"
)

// Sentinel errors, grounded on the lvlath errors.go convention: callers
// that only need the error class use errors.Is; callers that need the
// offending face/variant use errors.As against the concrete types below.
var (
	ErrNbrTypeMismatch = errors.New("patch: neighbor variant mismatch")
	ErrFaceOutOfRange  = errors.New("patch: face out of range for this patch's dimension")
	ErrDeserialize     = errors.New("patch: malformed serialized PatchInfo")
)

// NbrTypeMismatch is returned by the typed neighbor accessors
// (NormalNbr/CoarseNbr/FineNbr) when the stored NbrInfo is a different
// variant than requested.
type NbrTypeMismatch struct {
	Face face.Face
	Want NbrKind
	Got  NbrKind
}

func (e NbrTypeMismatch) Error() string {
	return fmt.Sprintf("patch: face %v: requested %v neighbor but stored variant is %v", e.Face, e.Want, e.Got)
}

func (e NbrTypeMismatch) Unwrap() error { return ErrNbrTypeMismatch }

// FaceOutOfRange is returned when a face does not belong to the
// patch's dimensionality (e.g. an Edge3 passed to a 2-D patch).
type FaceOutOfRange struct {
	Face face.Face
	Dim  int
}

func (e FaceOutOfRange) Error() string {
	return fmt.Sprintf("patch: face %v is not valid for a %d-D patch", e.Face, e.Dim)
}

func (e FaceOutOfRange) Unwrap() error { return ErrFaceOutOfRange }
