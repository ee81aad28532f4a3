package domain

import (
	"encoding/binary"
	"errors"
	"fmt"
	"sort"

	"github.com/cpmech/gomg/comm"
	"github.com/cpmech/gomg/face"
	"github.com/cpmech/gomg/patch"
)

// ErrGeneratorMisuse is returned when Finest is called more than once, or
// Coarser is called with no coarser level remaining.
var ErrGeneratorMisuse = errors.New("domain: generator misuse")

// Options bounds how many levels a Generator yields.
type Options struct {
	// MaxLevels caps the number of Domains yielded; 0 means uncapped.
	MaxLevels int
	// PatchesPerProc: coarsening stops (HasCoarser becomes false) once a
	// level's local patch count would drop below this.
	PatchesPerProc int
}

// Generator produces Domains from finest to coarsest, per spec §4.4. It
// consumes a pre-built forest of patch.Info spanning every refinement
// level (sourced externally, e.g. by a forest-of-octrees library per
// spec §1's Non-goal — "we consume the finished patch graph, not the
// tree refinement algorithm") and simply partitions it level by level,
// reconciling the parent/child links between adjacent levels.
//
// Grounded on gofem/inp/msh.go's JSON-driven topology ingestion, adapted
// here to walk an already-resolved patch graph instead of parsing mesh
// files.
type Generator struct {
	c    comm.Communicator
	dim  int
	opts Options

	levels      [][]*patch.Info // index 0 = finest
	pos         int
	finestTaken bool
}

// NewGenerator groups localPatches (every rank's view of the whole forest
// is not required — only patches this rank owns, plus enough of their
// neighbors' metadata to resolve cross-rank links, which patch.Info
// already carries) by RefineLevel, finest first, applies the
// PatchesPerProc/MaxLevels stopping rules, and assigns dense
// LocalIndex/GlobalIndex numbering within each level.
func NewGenerator(c comm.Communicator, dim int, localPatches []*patch.Info, opts Options) (*Generator, error) {
	byLevel := map[int][]*patch.Info{}
	for _, p := range localPatches {
		byLevel[p.RefineLevel] = append(byLevel[p.RefineLevel], p)
	}
	var levelNums []int
	for lv := range byLevel {
		levelNums = append(levelNums, lv)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(levelNums)))

	g := &Generator{c: c, dim: dim, opts: opts}
	for _, lv := range levelNums {
		ps := byLevel[lv]
		// The finest level is always admitted; a coarser candidate level
		// is admitted only while it still meets the per-proc floor, so
		// that once a level would drop below it, coarsening stops one
		// level earlier rather than yielding the offending level too.
		if len(g.levels) > 0 && opts.PatchesPerProc > 0 && len(ps) < opts.PatchesPerProc {
			break
		}
		sort.Slice(ps, func(i, j int) bool { return ps[i].ID < ps[j].ID })
		if err := assignIndices(c, ps); err != nil {
			return nil, err
		}
		g.levels = append(g.levels, ps)
		if opts.MaxLevels > 0 && len(g.levels) >= opts.MaxLevels {
			break
		}
	}
	reconcileLinks(g.levels)
	return g, nil
}

// assignIndices sets LocalIndex (position on this rank) and GlobalIndex
// (dense, rank-agnostic) via a collective exchange of each rank's local
// count.
func assignIndices(c comm.Communicator, ps []*patch.Info) error {
	for i, p := range ps {
		p.LocalIndex = i
	}
	counts := make([]byte, 8)
	binary.LittleEndian.PutUint64(counts, uint64(len(ps)))
	gathered, err := c.AllGatherBytes(counts)
	if err != nil {
		return fmt.Errorf("domain: generator: %w", err)
	}
	offset := 0
	for r := 0; r < c.Rank(); r++ {
		offset += int(binary.LittleEndian.Uint64(gathered[r]))
	}
	for i, p := range ps {
		p.GlobalIndex = offset + i
	}
	return nil
}

// reconcileLinks fills in whichever of ParentID/ChildIDs is missing on
// one side of an adjacent finer/coarser pair, using the side that is
// present, so the pair satisfies "populate parent_*/child_* fields on
// both levels consistently" even if the upstream forest only recorded
// one direction.
func reconcileLinks(levels [][]*patch.Info) {
	for l := 0; l+1 < len(levels); l++ {
		fine, coarse := levels[l], levels[l+1]
		coarseByID := map[patch.ID]*patch.Info{}
		for _, c := range coarse {
			coarseByID[c.ID] = c
		}
		fineByID := map[patch.ID]*patch.Info{}
		for _, f := range fine {
			fineByID[f.ID] = f
			if !f.HasParent {
				continue
			}
			p, ok := coarseByID[f.ParentID]
			if !ok {
				continue
			}
			slot := int(f.OrthOnParent)
			if slot >= 0 && slot < len(p.ChildIDs) && p.ChildIDs[slot] < 0 {
				p.ChildIDs[slot] = f.ID
				p.ChildRanks[slot] = f.Rank
			}
		}
		for _, c := range coarse {
			for slot, id := range c.ChildIDs {
				f, ok := fineByID[id]
				if !ok || f.HasParent {
					continue
				}
				f.HasParent, f.ParentID, f.ParentRank = true, c.ID, c.Rank
				f.OrthOnParent = face.Orthant(slot)
			}
		}
	}
}

// Finest returns the finest Domain; it may be called exactly once.
func (g *Generator) Finest() (*Domain, error) {
	if g.finestTaken {
		return nil, fmt.Errorf("%w: Finest already consumed", ErrGeneratorMisuse)
	}
	if len(g.levels) == 0 {
		return nil, fmt.Errorf("%w: generator has no levels", ErrGeneratorMisuse)
	}
	g.finestTaken = true
	g.pos = 0
	return New(g.c, g.dim, g.levels[0])
}

// HasCoarser reports whether a level coarser than the last one returned
// remains.
func (g *Generator) HasCoarser() bool {
	return g.finestTaken && g.pos+1 < len(g.levels)
}

// Coarser returns the next-coarser Domain; refine_level is monotonically
// non-increasing across calls.
func (g *Generator) Coarser() (*Domain, error) {
	if !g.HasCoarser() {
		return nil, fmt.Errorf("%w: no coarser level remains", ErrGeneratorMisuse)
	}
	g.pos++
	return New(g.c, g.dim, g.levels[g.pos])
}
