package domain

import (
	"fmt"

	"github.com/cpmech/gomg/comm"
	"github.com/cpmech/gomg/face"
	"github.com/cpmech/gomg/patch"
)

// validateGlobal checks invariants 1, 2, 5 and 6 of spec §3 across every
// rank in the communicator. It gathers a serialized copy of every local
// patch (an infrequent, small metadata exchange — not on the ghost-fill
// hot path) and cross-checks every declared neighbor's reciprocal link.
func validateGlobal(c comm.Communicator, dim int, localPatches []*patch.Info) error {
	var payload []byte
	for _, p := range localPatches {
		data, err := p.Serialize()
		if err != nil {
			return DomainInvariantViolation{PatchID: p.ID, Detail: "failed to serialize for collective validation: " + err.Error()}
		}
		payload = appendFramed(payload, data)
	}

	gathered, err := c.AllGatherBytes(payload)
	if err != nil {
		return fmt.Errorf("domain: collective validation failed: %w", err)
	}

	global := map[patch.ID]*patch.Info{}
	for _, rankPayload := range gathered {
		frames, err := unframe(rankPayload)
		if err != nil {
			return fmt.Errorf("domain: collective validation failed: %w", err)
		}
		for _, frame := range frames {
			p, err := patch.Deserialize(frame)
			if err != nil {
				return fmt.Errorf("domain: collective validation failed: %w", err)
			}
			if _, dup := global[p.ID]; dup {
				return DomainInvariantViolation{PatchID: p.ID, Detail: "duplicate patch id across the Domain"}
			}
			global[p.ID] = p
		}
	}

	allFaces := face.AllFaces(dim, face.ScopeCorners)
	for _, p := range global {
		for _, f := range allFaces {
			ok, err := p.HasNbr(f)
			if err != nil || !ok {
				continue
			}
			kind, _, _ := p.NbrType(f)
			switch kind {
			case patch.KindNormal:
				n, _ := p.NormalNbrAt(f)
				other, found := global[n.NbrID]
				if !found {
					return DomainInvariantViolation{PatchID: p.ID, Detail: fmt.Sprintf("normal neighbor %d on face %v is not present in the Domain", n.NbrID, f)}
				}
				back, err := other.NormalNbrAt(f.Opposite())
				if err != nil || back.NbrID != p.ID || back.NbrRank != p.Rank {
					return DomainInvariantViolation{PatchID: p.ID, Detail: fmt.Sprintf("normal neighbor %d does not reciprocate on face %v", n.NbrID, f.Opposite())}
				}
				if other.RefineLevel != p.RefineLevel {
					return DomainInvariantViolation{PatchID: p.ID, Detail: "normal neighbor differs in refine_level"}
				}

			case patch.KindCoarse:
				n, _ := p.CoarseNbrAt(f)
				other, found := global[n.NbrID]
				if !found {
					return DomainInvariantViolation{PatchID: p.ID, Detail: fmt.Sprintf("coarse neighbor %d on face %v is not present in the Domain", n.NbrID, f)}
				}
				if other.RefineLevel != p.RefineLevel-1 {
					return DomainInvariantViolation{PatchID: p.ID, Detail: "refinement jump exceeds 1 across a Coarse neighbor"}
				}
				back, err := other.FineNbrAt(f.Opposite())
				if err != nil {
					return DomainInvariantViolation{PatchID: p.ID, Detail: fmt.Sprintf("coarse neighbor %d does not declare a Fine neighbor back on face %v", n.NbrID, f.Opposite())}
				}
				slot := int(n.OrthOnCoarse)
				if slot < 0 || slot >= len(back.NbrIDs) || back.NbrIDs[slot] != p.ID || back.NbrRanks[slot] != p.Rank {
					return DomainInvariantViolation{PatchID: p.ID, Detail: fmt.Sprintf("coarse neighbor %d's Fine slot %d does not point back to this patch", n.NbrID, slot)}
				}

			case patch.KindFine:
				fn, _ := p.FineNbrAt(f)
				for slot, id := range fn.NbrIDs {
					other, found := global[id]
					if !found {
						return DomainInvariantViolation{PatchID: p.ID, Detail: fmt.Sprintf("fine neighbor %d on face %v is not present in the Domain", id, f)}
					}
					if other.RefineLevel != p.RefineLevel+1 {
						return DomainInvariantViolation{PatchID: p.ID, Detail: "refinement jump exceeds 1 across a Fine neighbor"}
					}
					back, err := other.CoarseNbrAt(f.Opposite())
					if err != nil || back.NbrID != p.ID || back.NbrRank != p.Rank || int(back.OrthOnCoarse) != slot {
						return DomainInvariantViolation{PatchID: p.ID, Detail: fmt.Sprintf("fine neighbor %d does not reciprocate at orthant slot %d", id, slot)}
					}
				}
			}
		}
	}
	return nil
}

// appendFramed appends a frame prefixed by its length as a fixed 8-byte
// little-endian integer; used to pack
// several serialized PatchInfo byte streams into one AllGatherBytes
// payload.
func appendFramed(dst []byte, frame []byte) []byte {
	var lenBuf [8]byte
	n := len(frame)
	for i := 0; i < 8; i++ {
		lenBuf[i] = byte(n >> (8 * i))
	}
	dst = append(dst, lenBuf[:]...)
	dst = append(dst, frame...)
	return dst
}

func unframe(data []byte) ([][]byte, error) {
	var out [][]byte
	for len(data) > 0 {
		if len(data) < 8 {
			return nil, fmt.Errorf("truncated frame header")
		}
		n := 0
		for i := 0; i < 8; i++ {
			n |= int(data[i]) << (8 * i)
		}
		data = data[8:]
		if len(data) < n {
			return nil, fmt.Errorf("truncated frame body")
		}
		out = append(out, data[:n])
		data = data[n:]
	}
	return out, nil
}
