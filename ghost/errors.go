// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ghost

import (
	"errors"
	"fmt"
)

// ErrUnsupportedFeature is the sentinel wrapped by UnsupportedFeature.
var ErrUnsupportedFeature = errors.New("ghost: unsupported feature")

// UnsupportedFeature is returned by NewFiller when a patch's cell count
// cannot be halved cleanly along some axis. Bilinear/trilinear
// interpolation needs an even split at every coarse/fine interface; an
// odd Ns has no well-defined orthant mapping (spec §4.7).
type UnsupportedFeature struct {
	What string
}

func (e UnsupportedFeature) Error() string {
	return fmt.Sprintf("ghost: unsupported: %s", e.What)
}

func (e UnsupportedFeature) Unwrap() error { return ErrUnsupportedFeature }

// ErrCommunicationFailure is the sentinel wrapped by CommunicationFailure.
var ErrCommunicationFailure = errors.New("ghost: communication failure")

// CommunicationFailure reports a failed send/receive during FillGhost's
// cross-rank exchange (spec §4.7.2).
type CommunicationFailure struct {
	Rank  int
	Stage string
}

func (e CommunicationFailure) Error() string {
	return fmt.Sprintf("ghost: rank %d: communication failed while %s", e.Rank, e.Stage)
}

func (e CommunicationFailure) Unwrap() error { return ErrCommunicationFailure }
