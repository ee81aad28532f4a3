// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package op

import (
	"errors"
	"fmt"
)

// ErrNilArgument is the sentinel wrapped by NilArgument.
var ErrNilArgument = errors.New("op: nil argument")

// NilArgument is returned by the DomainOperator/IterativeSolver/
// TolerantSolver constructors when a required collaborator is nil.
type NilArgument struct {
	Who string
}

func (e NilArgument) Error() string {
	return fmt.Sprintf("op: %s must not be nil", e.Who)
}

func (e NilArgument) Unwrap() error { return ErrNilArgument }
