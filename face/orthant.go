package face

// Orthant identifies a sub-quadrant (m=2), sub-segment (m=1) or the
// trivial single orthant (m=0) of an m-dimensional face, used to locate
// a finer patch on a coarser neighbor's face. It is a bitmask: bit i
// (0-indexed over the face's free axes, in FreeAxes order) is 1 if the
// orthant occupies the upper half of that axis.
type Orthant int

// NumOrthants returns 2^m, the number of orthants of an m-dimensional
// face.
func NumOrthants(m int) int { return 1 << uint(m) }

// AllOrthants enumerates every Orthant of an m-dimensional face, in
// ascending bitmask order.
func AllOrthants(m int) []Orthant {
	n := NumOrthants(m)
	out := make([]Orthant, n)
	for i := range out {
		out[i] = Orthant(i)
	}
	return out
}

// Bit reports whether the orthant occupies the upper half along the
// i-th free axis (0-indexed in FreeAxes order).
func (o Orthant) Bit(i int) int {
	return int(o>>uint(i)) & 1
}

// Offset returns, for each of the m free axes (in FreeAxes order), the
// additive shift applied when mapping a fine face-index to the slot it
// occupies within the coarse face: coarseIndex = fineIndex/2 + offset[i],
// where halfN is the coarse-side extent along that axis (cells per
// orthant segment along the free axis).
func (o Orthant) Offset(m int, halfN int) []int {
	off := make([]int, m)
	for i := 0; i < m; i++ {
		off[i] = o.Bit(i) * halfN
	}
	return off
}
