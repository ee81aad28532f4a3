// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package patch

import (
	"bytes"
	"encoding/gob"
	"encoding/json"
	"fmt"

	"github.com/cpmech/gomg/face"
)

// wireFormatVersion is the version byte written at the head of every
// serialized stream, per spec §6's "versioned header" contract.
const wireFormatVersion byte = 1

// wireNbr is the flat, gob/json-friendly projection of one NbrInfo.
type wireNbr struct {
	FaceKind  int
	FaceIndex int
	Variant   NbrKind
	IDs       []int64
	Ranks     []int
	Orthant   int
}

// wireInfo is the flat projection of Info used for both the binary gob
// stream and the JSON form; Nbrs becomes a slice so gob never has to
// encode an interface-valued map.
type wireInfo struct {
	Version int

	ID          int64
	Rank        int
	LocalIndex  int
	GlobalIndex int
	RefineLevel int

	HasParent    bool
	ParentID     int64
	ParentRank   int
	OrthOnParent int

	ChildIDs   []int64
	ChildRanks []int

	Dim           int
	Ns            []int
	NumGhostCells int
	Starts        []float64
	Spacings      []float64

	Nbrs []wireNbr
}

func faceFromWire(dim, kind, index int) (face.Face, error) {
	switch face.Kind(kind) {
	case face.KindSide2:
		return face.FromIndexSide2(index)
	case face.KindSide3:
		return face.FromIndexSide3(index)
	case face.KindCorner2:
		return face.FromIndexCorner2(index)
	case face.KindCorner3:
		return face.FromIndexCorner3(index)
	case face.KindEdge3:
		return face.FromIndexEdge3(index)
	}
	return nil, fmt.Errorf("%w: unknown face kind %d", ErrDeserialize, kind)
}

func (p *Info) toWire() wireInfo {
	w := wireInfo{
		Version:       int(wireFormatVersion),
		ID:            int64(p.ID),
		Rank:          int(p.Rank),
		LocalIndex:    p.LocalIndex,
		GlobalIndex:   p.GlobalIndex,
		RefineLevel:   p.RefineLevel,
		HasParent:     p.HasParent,
		ParentID:      int64(p.ParentID),
		ParentRank:    int(p.ParentRank),
		OrthOnParent:  int(p.OrthOnParent),
		Dim:           p.Dim,
		Ns:            append([]int(nil), p.Ns...),
		NumGhostCells: p.NumGhostCells,
		Starts:        append([]float64(nil), p.Starts...),
		Spacings:      append([]float64(nil), p.Spacings...),
	}
	for _, id := range p.ChildIDs {
		w.ChildIDs = append(w.ChildIDs, int64(id))
	}
	for _, r := range p.ChildRanks {
		w.ChildRanks = append(w.ChildRanks, int(r))
	}
	for f, n := range p.Nbrs {
		wn := wireNbr{FaceKind: int(f.Kind()), FaceIndex: f.Index(), Variant: n.Kind()}
		switch v := n.(type) {
		case NormalNbr:
			wn.IDs = []int64{int64(v.NbrID)}
			wn.Ranks = []int{int(v.NbrRank)}
		case CoarseNbr:
			wn.IDs = []int64{int64(v.NbrID)}
			wn.Ranks = []int{int(v.NbrRank)}
			wn.Orthant = int(v.OrthOnCoarse)
		case FineNbr:
			for _, id := range v.NbrIDs {
				wn.IDs = append(wn.IDs, int64(id))
			}
			for _, r := range v.NbrRanks {
				wn.Ranks = append(wn.Ranks, int(r))
			}
		}
		w.Nbrs = append(w.Nbrs, wn)
	}
	return w
}

func fromWire(w wireInfo) (*Info, error) {
	p := &Info{
		ID:            ID(w.ID),
		Rank:          Rank(w.Rank),
		LocalIndex:    w.LocalIndex,
		GlobalIndex:   w.GlobalIndex,
		RefineLevel:   w.RefineLevel,
		HasParent:     w.HasParent,
		ParentID:      ID(w.ParentID),
		ParentRank:    Rank(w.ParentRank),
		OrthOnParent:  face.Orthant(w.OrthOnParent),
		Dim:           w.Dim,
		Ns:            append([]int(nil), w.Ns...),
		NumGhostCells: w.NumGhostCells,
		Starts:        append([]float64(nil), w.Starts...),
		Spacings:      append([]float64(nil), w.Spacings...),
		Nbrs:          map[face.Face]NbrInfo{},
	}
	for _, id := range w.ChildIDs {
		p.ChildIDs = append(p.ChildIDs, ID(id))
	}
	for _, r := range w.ChildRanks {
		p.ChildRanks = append(p.ChildRanks, Rank(r))
	}
	for _, wn := range w.Nbrs {
		f, err := faceFromWire(w.Dim, wn.FaceKind, wn.FaceIndex)
		if err != nil {
			return nil, err
		}
		switch wn.Variant {
		case KindNormal:
			p.Nbrs[f] = NormalNbr{NbrID: ID(wn.IDs[0]), NbrRank: Rank(wn.Ranks[0])}
		case KindCoarse:
			p.Nbrs[f] = CoarseNbr{NbrID: ID(wn.IDs[0]), NbrRank: Rank(wn.Ranks[0]), OrthOnCoarse: face.Orthant(wn.Orthant)}
		case KindFine:
			fn := FineNbr{}
			for _, id := range wn.IDs {
				fn.NbrIDs = append(fn.NbrIDs, ID(id))
			}
			for _, r := range wn.Ranks {
				fn.NbrRanks = append(fn.NbrRanks, Rank(r))
			}
			p.Nbrs[f] = fn
		default:
			return nil, fmt.Errorf("%w: unknown neighbor variant %d", ErrDeserialize, wn.Variant)
		}
	}
	return p, nil
}

// Serialize produces the opaque, versioned byte stream referenced by
// spec §4.2/§6; Deserialize is its exact inverse (property 4 of §8).
func (p *Info) Serialize() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte(wireFormatVersion)
	enc := gob.NewEncoder(&buf)
	if err := enc.Encode(p.toWire()); err != nil {
		return nil, fmt.Errorf("patch: serialize: %w", err)
	}
	return buf.Bytes(), nil
}

// Deserialize reconstructs an Info from bytes produced by Serialize.
func Deserialize(data []byte) (*Info, error) {
	if len(data) < 1 {
		return nil, fmt.Errorf("%w: empty stream", ErrDeserialize)
	}
	if data[0] != wireFormatVersion {
		return nil, fmt.Errorf("%w: unsupported version %d", ErrDeserialize, data[0])
	}
	dec := gob.NewDecoder(bytes.NewReader(data[1:]))
	var w wireInfo
	if err := dec.Decode(&w); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDeserialize, err)
	}
	return fromWire(w)
}

// jsonNbr is the textual form of one face's neighbor record, matching
// the shape in spec §6.
type jsonNbr struct {
	Face    string `json:"side,omitempty"`
	Edge    string `json:"edge,omitempty"`
	Corner  string `json:"corner,omitempty"`
	Type    string `json:"type"`
	IDs     []int64 `json:"ids,omitempty"`
	Ranks   []int   `json:"ranks,omitempty"`
	Orthant *string `json:"orth_on_coarse,omitempty"`
}

type jsonInfo struct {
	ID           int64   `json:"id"`
	Rank         int     `json:"rank"`
	RefineLevel  int     `json:"refine_level"`
	ParentID     *int64  `json:"parent_id"`
	ParentRank   *int    `json:"parent_rank"`
	OrthOnParent *string `json:"orth_on_parent"`
	ChildIDs     []int64 `json:"child_ids"`
	ChildRanks   []int   `json:"child_ranks"`
	Starts       []float64 `json:"starts"`
	Lengths      []float64 `json:"lengths"`
	Nbrs         []jsonNbr `json:"nbrs"`
	EdgeNbrs     []jsonNbr `json:"edge_nbrs"`
	CornerNbrs   []jsonNbr `json:"corner_nbrs"`
}

func orthantName(dim int, o face.Orthant) string {
	return fmt.Sprintf("o%d", o) // symbolic orthant names (e.g. "BSW") require a face-local axis labeling; spec leaves the exact scheme open, so this uses a stable numeric-suffixed name.
}

// MarshalJSON implements the textual form defined in spec §6.
func (p *Info) MarshalJSON() ([]byte, error) {
	j := jsonInfo{
		ID:          int64(p.ID),
		Rank:        int(p.Rank),
		RefineLevel: p.RefineLevel,
		Starts:      p.Starts,
	}
	lengths := make([]float64, len(p.Ns))
	for i := range lengths {
		lengths[i] = float64(p.Ns[i]) * p.Spacings[i]
	}
	j.Lengths = lengths

	if p.HasParent {
		pid := int64(p.ParentID)
		prk := int(p.ParentRank)
		on := orthantName(p.Dim, p.OrthOnParent)
		j.ParentID, j.ParentRank, j.OrthOnParent = &pid, &prk, &on
	}
	hasChild := false
	for _, c := range p.ChildIDs {
		if c >= 0 {
			hasChild = true
			break
		}
	}
	if hasChild {
		for _, id := range p.ChildIDs {
			j.ChildIDs = append(j.ChildIDs, int64(id))
		}
		for _, r := range p.ChildRanks {
			j.ChildRanks = append(j.ChildRanks, int(r))
		}
	}

	for f, n := range p.Nbrs {
		rec := jsonNbr{Type: n.Kind().String()}
		switch v := n.(type) {
		case NormalNbr:
			rec.IDs = []int64{int64(v.NbrID)}
			rec.Ranks = []int{int(v.NbrRank)}
		case CoarseNbr:
			rec.IDs = []int64{int64(v.NbrID)}
			rec.Ranks = []int{int(v.NbrRank)}
			on := orthantName(p.Dim, v.OrthOnCoarse)
			rec.Orthant = &on
		case FineNbr:
			for _, id := range v.NbrIDs {
				rec.IDs = append(rec.IDs, int64(id))
			}
			for _, r := range v.NbrRanks {
				rec.Ranks = append(rec.Ranks, int(r))
			}
		}
		switch f.Kind() {
		case face.KindSide2, face.KindSide3:
			rec.Face = f.String()
			j.Nbrs = append(j.Nbrs, rec)
		case face.KindEdge3:
			rec.Edge = f.String()
			j.EdgeNbrs = append(j.EdgeNbrs, rec)
		case face.KindCorner2, face.KindCorner3:
			rec.Corner = f.String()
			j.CornerNbrs = append(j.CornerNbrs, rec)
		}
	}
	return json.Marshal(j)
}
