package face

// Scope is GhostFillingType from spec §4.7: which face dimensionalities
// participate in a fill. The cumulative "Corners implies Edges implies
// Faces" semantics from spec §9's open question is realized by
// AllFaces, which expands a Scope into the full face set up front rather
// than falling through at fill time.
type Scope int

const (
	ScopeFaces Scope = iota
	ScopeEdges
	ScopeCorners
)

func (s Scope) String() string {
	switch s {
	case ScopeFaces:
		return "faces"
	case ScopeEdges:
		return "edges"
	case ScopeCorners:
		return "corners"
	default:
		return "unknown"
	}
}

// Normalize maps Edges to Faces in 2-D, where edges (codimension 2)
// don't exist, per spec §4.7's "In 2D, Edges is meaningless and mapped
// to Sides."
func (s Scope) Normalize(dim int) Scope {
	if dim == 2 && s == ScopeEdges {
		return ScopeFaces
	}
	return s
}

// AllFaces returns every Face participating in a fill of the given
// scope, for a patch of the given dimension (2 or 3). Sides are always
// included; Edges are included for ScopeEdges/ScopeCorners in 3-D;
// Corners are included for ScopeCorners.
func AllFaces(dim int, scope Scope) []Face {
	scope = scope.Normalize(dim)
	var out []Face
	switch dim {
	case 2:
		for _, s := range AllSide2() {
			out = append(out, s)
		}
		if scope == ScopeCorners {
			for _, c := range AllCorner2() {
				out = append(out, c)
			}
		}
	case 3:
		for _, s := range AllSide3() {
			out = append(out, s)
		}
		if scope == ScopeEdges || scope == ScopeCorners {
			for _, e := range AllEdge3() {
				out = append(out, e)
			}
		}
		if scope == ScopeCorners {
			for _, c := range AllCorner3() {
				out = append(out, c)
			}
		}
	}
	return out
}

// Codim returns the face's codimension (1 for a side, 2 for an edge,
// d for a corner) given the patch dimension d.
func Codim(f Face, dim int) int {
	switch f.Kind() {
	case KindSide2, KindSide3:
		return 1
	case KindEdge3:
		return 2
	case KindCorner2, KindCorner3:
		return dim
	}
	return 0
}

// FreeAxes returns, in ascending order, the coordinate axes that are NOT
// fixed by the face f (the axes an orthant subdivides).
func FreeAxes(f Face, dim int) []int {
	fixed := map[int]bool{}
	switch v := f.(type) {
	case Side2:
		fixed[v.Axis()] = true
	case Side3:
		fixed[v.Axis()] = true
	case Corner2:
		for _, s := range v.Sides() {
			fixed[s.Axis()] = true
		}
	case Corner3:
		for _, s := range v.Sides() {
			fixed[s.Axis()] = true
		}
	case Edge3:
		for _, s := range v.Sides() {
			fixed[s.Axis()] = true
		}
	}
	var free []int
	for a := 0; a < dim; a++ {
		if !fixed[a] {
			free = append(free, a)
		}
	}
	return free
}
