// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gmg

import (
	"errors"
	"fmt"
)

// ErrBuilderMisuse is the sentinel wrapped by BuilderMisuse, named the
// way lvlath/builder names its validation sentinels.
var ErrBuilderMisuse = errors.New("gmg: builder misuse")

// BuilderMisuse reports an illegal Builder call: either the wrong state
// for the requested operation, or a nil collaborator that operation
// requires. Grounded on lvlath/builder's errors.go convention (a
// package-level sentinel plus a field-carrying struct, never a bare
// panic — spec §9's "exceptions/panics: ... the builder's illegal-
// transition contract in particular must not throw").
type BuilderMisuse struct {
	FromState string
	Operation string
	Detail    string
}

func (e BuilderMisuse) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("gmg: %s: %s (from state %s)", e.Operation, e.Detail, e.FromState)
	}
	return fmt.Sprintf("gmg: %s is not legal from state %s", e.Operation, e.FromState)
}

func (e BuilderMisuse) Unwrap() error { return ErrBuilderMisuse }
