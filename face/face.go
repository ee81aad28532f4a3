package face

import "fmt"

// Face is the common interface implemented by every concrete face type
// (Side2, Side3, Corner2, Corner3, Edge3). It lets the ghost-filling
// engine dispatch on a single variant tag instead of a virtual call per
// face, per the "monomorphic inner loop" design note.
type Face interface {
	fmt.Stringer

	// Index returns the face's position in its canonical enumeration
	// (see the order tables in this file).
	Index() int

	// Kind reports which concrete enumeration this value belongs to.
	Kind() Kind

	// Opposite returns the face on the far side of the same patch.
	Opposite() Face
}

// Kind tags which concrete Face enumeration a value belongs to.
type Kind int

const (
	KindSide2 Kind = iota
	KindSide3
	KindCorner2
	KindCorner3
	KindEdge3
)

func (k Kind) String() string {
	switch k {
	case KindSide2:
		return "Side2"
	case KindSide3:
		return "Side3"
	case KindCorner2:
		return "Corner2"
	case KindCorner3:
		return "Corner3"
	case KindEdge3:
		return "Edge3"
	default:
		return "Unknown"
	}
}

// Side2 enumerates the four sides of a 2-D patch, in the canonical order
// required by the serialized-compatibility contract: west, east, south,
// north.
type Side2 int

const (
	West2 Side2 = iota
	East2
	South2
	North2
)

var side2Names = [...]string{"west", "east", "south", "north"}
var side2Opposite = [...]Side2{East2, West2, North2, South2}
var side2Axis = [...]int{0, 0, 1, 1}
var side2Upper = [...]bool{false, true, false, true}

// AllSide2 yields every Side2 variant exactly once, in canonical order.
func AllSide2() []Side2 { return []Side2{West2, East2, South2, North2} }

// FromIndexSide2 recovers a Side2 from Index(), the inverse of Index().
func FromIndexSide2(i int) (Side2, error) {
	if i < 0 || i >= len(side2Names) {
		return 0, FaceOutOfRange{Requested: i, Max: len(side2Names) - 1}
	}
	return Side2(i), nil
}

func (s Side2) Index() int    { return int(s) }
func (s Side2) Kind() Kind    { return KindSide2 }
func (s Side2) String() string {
	if int(s) < 0 || int(s) >= len(side2Names) {
		return "Side2(?)"
	}
	return side2Names[s]
}
func (s Side2) Opposite() Face { return side2Opposite[s] }

// Axis returns the coordinate axis this side is normal to (0=x, 1=y).
func (s Side2) Axis() int { return side2Axis[s] }

// UpperSide reports whether this side sits at the higher-coordinate end
// of its axis (east/north) rather than the lower end (west/south).
func (s Side2) UpperSide() bool { return side2Upper[s] }

// Side3 enumerates the six sides of a 3-D patch: west, east, south,
// north, bottom, top (0..5), the canonical serialized order.
type Side3 int

const (
	West3 Side3 = iota
	East3
	South3
	North3
	Bottom3
	Top3
)

var side3Names = [...]string{"west", "east", "south", "north", "bottom", "top"}
var side3Opposite = [...]Side3{East3, West3, North3, South3, Top3, Bottom3}
var side3Axis = [...]int{0, 0, 1, 1, 2, 2}
var side3Upper = [...]bool{false, true, false, true, false, true}

func AllSide3() []Side3 {
	return []Side3{West3, East3, South3, North3, Bottom3, Top3}
}

func FromIndexSide3(i int) (Side3, error) {
	if i < 0 || i >= len(side3Names) {
		return 0, FaceOutOfRange{Requested: i, Max: len(side3Names) - 1}
	}
	return Side3(i), nil
}

func (s Side3) Index() int     { return int(s) }
func (s Side3) Kind() Kind     { return KindSide3 }
func (s Side3) String() string {
	if int(s) < 0 || int(s) >= len(side3Names) {
		return "Side3(?)"
	}
	return side3Names[s]
}
func (s Side3) Opposite() Face  { return side3Opposite[s] }
func (s Side3) Axis() int       { return side3Axis[s] }
func (s Side3) UpperSide() bool { return side3Upper[s] }

// Corner2 enumerates the four corners of a 2-D patch: sw, se, nw, ne.
type Corner2 int

const (
	SW2 Corner2 = iota
	SE2
	NW2
	NE2
)

var corner2Names = [...]string{"sw", "se", "nw", "ne"}
var corner2Opposite = [...]Corner2{NE2, NW2, SE2, SW2}
var corner2Sides = [...][2]Side2{
	{West2, South2}, // sw
	{East2, South2}, // se
	{West2, North2}, // nw
	{East2, North2}, // ne
}

func AllCorner2() []Corner2 { return []Corner2{SW2, SE2, NW2, NE2} }

func FromIndexCorner2(i int) (Corner2, error) {
	if i < 0 || i >= len(corner2Names) {
		return 0, FaceOutOfRange{Requested: i, Max: len(corner2Names) - 1}
	}
	return Corner2(i), nil
}

func (c Corner2) Index() int { return int(c) }
func (c Corner2) Kind() Kind { return KindCorner2 }
func (c Corner2) String() string {
	if int(c) < 0 || int(c) >= len(corner2Names) {
		return "Corner2(?)"
	}
	return corner2Names[c]
}
func (c Corner2) Opposite() Face { return corner2Opposite[c] }

// Sides returns the two Side2 values whose intersection is this corner.
func (c Corner2) Sides() []Side2 {
	pair := corner2Sides[c]
	return []Side2{pair[0], pair[1]}
}

// Corner3 enumerates the eight corners of a 3-D patch in the canonical
// order: bsw, bse, bnw, bne, tsw, tse, tnw, tne.
type Corner3 int

const (
	BSW3 Corner3 = iota
	BSE3
	BNW3
	BNE3
	TSW3
	TSE3
	TNW3
	TNE3
)

var corner3Names = [...]string{"bsw", "bse", "bnw", "bne", "tsw", "tse", "tnw", "tne"}
var corner3Opposite = [...]Corner3{TNE3, TNW3, TSE3, TSW3, BNE3, BNW3, BSE3, BSW3}
var corner3Sides = [...][3]Side3{
	{West3, South3, Bottom3}, // bsw
	{East3, South3, Bottom3}, // bse
	{West3, North3, Bottom3}, // bnw
	{East3, North3, Bottom3}, // bne
	{West3, South3, Top3},    // tsw
	{East3, South3, Top3},    // tse
	{West3, North3, Top3},    // tnw
	{East3, North3, Top3},    // tne
}

func AllCorner3() []Corner3 {
	return []Corner3{BSW3, BSE3, BNW3, BNE3, TSW3, TSE3, TNW3, TNE3}
}

func FromIndexCorner3(i int) (Corner3, error) {
	if i < 0 || i >= len(corner3Names) {
		return 0, FaceOutOfRange{Requested: i, Max: len(corner3Names) - 1}
	}
	return Corner3(i), nil
}

func (c Corner3) Index() int { return int(c) }
func (c Corner3) Kind() Kind { return KindCorner3 }
func (c Corner3) String() string {
	if int(c) < 0 || int(c) >= len(corner3Names) {
		return "Corner3(?)"
	}
	return corner3Names[c]
}
func (c Corner3) Opposite() Face { return corner3Opposite[c] }

func (c Corner3) Sides() []Side3 {
	t := corner3Sides[c]
	return []Side3{t[0], t[1], t[2]}
}

// Edge3 enumerates the twelve edges of a 3-D patch in the canonical
// order: bs, tn, bn, ts, bw, te, be, tw, sw, ne, se, nw.
type Edge3 int

const (
	BS3 Edge3 = iota
	TN3
	BN3
	TS3
	BW3
	TE3
	BE3
	TW3
	SW3
	NE3
	SE3
	NW3
)

var edge3Names = [...]string{"bs", "tn", "bn", "ts", "bw", "te", "be", "tw", "sw", "ne", "se", "nw"}
var edge3Opposite = [...]Edge3{TN3, BS3, TS3, BN3, TE3, BW3, TW3, BE3, NE3, SW3, NW3, SE3}

// edge3Sides gives, for each edge, the two sides whose intersection it is.
var edge3Sides = [...][2]Side3{
	{Bottom3, South3}, // bs
	{Top3, North3},    // tn
	{Bottom3, North3}, // bn
	{Top3, South3},    // ts
	{Bottom3, West3},  // bw
	{Top3, East3},     // te
	{Bottom3, East3},  // be
	{Top3, West3},      // tw
	{South3, West3},    // sw
	{North3, East3},    // ne
	{South3, East3},    // se
	{North3, West3},    // nw
}

func AllEdge3() []Edge3 {
	return []Edge3{BS3, TN3, BN3, TS3, BW3, TE3, BE3, TW3, SW3, NE3, SE3, NW3}
}

func FromIndexEdge3(i int) (Edge3, error) {
	if i < 0 || i >= len(edge3Names) {
		return 0, FaceOutOfRange{Requested: i, Max: len(edge3Names) - 1}
	}
	return Edge3(i), nil
}

func (e Edge3) Index() int { return int(e) }
func (e Edge3) Kind() Kind { return KindEdge3 }
func (e Edge3) String() string {
	if int(e) < 0 || int(e) >= len(edge3Names) {
		return "Edge3(?)"
	}
	return edge3Names[e]
}
func (e Edge3) Opposite() Face { return edge3Opposite[e] }

func (e Edge3) Sides() []Side3 {
	p := edge3Sides[e]
	return []Side3{p[0], p[1]}
}
