// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package face implements the compile-time-sized face taxonomy a patch
// uses to describe its neighbors: Sides (codimension 1), Edges
// (codimension 2, 3-D only) and Corners (dimension 0). It also defines
// Orthant, the sub-quadrant/octant index used to locate a finer patch on
// a coarser neighbor's face.
//
// The spec's Face<d,m> template is realized here as a handful of
// concrete enumerations (Side2/Side3/Corner2/Corner3/Edge3) rather than a
// generic type, since Go generics cannot parameterize over a compile-time
// integer the way the reference design does; every table lookup stays
// O(1) as required.
package face
