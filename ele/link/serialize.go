// Copyright 2016 The Linkfem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package link

import (
	"github.com/erikemondt/linkfem/inp"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/utl"
)

// recordVersion identifies the serialized state layout
const recordVersion = 1

// record is the fixed, versioned serialized state of a link element. Node ids
// are references to be re-resolved by the receiving side, never transferable
// ownership.
type record struct {
	Version     int
	Tag         int
	Ndim        int
	Nods        []int
	Dirs        []int
	Kb          []float64 // flattened row-major [ndir*ndir]
	Cb          []float64 // flattened row-major; empty if absent
	Xdir        []float64
	Ydir        []float64
	Mratio      []float64
	PDelta      bool
	OnP0        bool
	AddRayleigh bool
	Ub          []float64 // committed basic displacements
	Qb          []float64 // committed basic forces
}

// Encode writes the full element state
func (o *TwoNodeLink) Encode(enc utl.Encoder) (err error) {
	ndir := o.Ndirs()
	r := record{
		Version:     recordVersion,
		Tag:         o.Tag,
		Ndim:        o.Ndim,
		Nods:        o.Nods,
		Dirs:        o.Dirs,
		Kb:          flatten(o.Kb),
		Xdir:        o.Xdir,
		Ydir:        o.Ydir,
		Mratio:      o.Mratio,
		PDelta:      o.PDelta,
		OnP0:        o.OnP0,
		AddRayleigh: o.AddRayleigh,
		Ub:          make([]float64, ndir),
		Qb:          make([]float64, ndir),
	}
	if o.Cb != nil {
		r.Cb = flatten(o.Cb)
	}
	copy(r.Ub, o.ubc)
	copy(r.Qb, o.qbc)
	err = enc.Encode(&r)
	if err != nil {
		return chk.Err("cannot encode link element %d:\n%v", o.Tag, err)
	}
	return
}

// Decode restores the full element state. The node coordinates of the current
// element are kept; geometry and transform caches are re-derived. A size
// mismatch in the incoming record is always surfaced.
func (o *TwoNodeLink) Decode(dec utl.Decoder) (err error) {
	var r record
	err = dec.Decode(&r)
	if err != nil {
		return chk.Err("cannot decode link element:\n%v", err)
	}
	dat, err := r.check()
	if err != nil {
		return err
	}
	if r.Ndim != o.Ndim {
		return chk.Err("corrupt data: record dimension %d does not match element dimension %d", r.Ndim, o.Ndim)
	}
	n, err := New(r.Tag, r.Ndim, r.Nods, o.X, dat)
	if err != nil {
		return err
	}
	// local wiring survives the state swap: assembly map, conditions and loads
	// belong to the stage setup, not to the record
	umap, verbose := o.Umap, o.Verbose
	conds, loads, pa := o.conds, o.loads, o.pa
	*o = *n
	o.Umap = umap
	o.Verbose = verbose
	o.conds = conds
	o.loads = loads
	o.pa = pa
	o.restoreCommitted(&r)
	return
}

// DecodeNew restores a link element from dec on a receiving partition. The
// coordinates of the recorded node ids are resolved locally by the caller.
func DecodeNew(dec utl.Decoder, resolve func(nods []int) (x [][]float64, err error)) (o *TwoNodeLink, err error) {
	var r record
	err = dec.Decode(&r)
	if err != nil {
		return nil, chk.Err("cannot decode link element:\n%v", err)
	}
	dat, err := r.check()
	if err != nil {
		return nil, err
	}
	x, err := resolve(r.Nods)
	if err != nil {
		return nil, chk.Err("cannot resolve nodes %v of link element %d:\n%v", r.Nods, r.Tag, err)
	}
	o, err = New(r.Tag, r.Ndim, r.Nods, x, dat)
	if err != nil {
		return nil, err
	}
	o.restoreCommitted(&r)
	return
}

// restoreCommitted loads the committed snapshot from a record and resets the
// trial state to it
func (o *TwoNodeLink) restoreCommitted(r *record) {
	copy(o.ubc, r.Ub)
	copy(o.qbc, r.Qb)
	copy(o.ub, r.Ub)
	copy(o.qb, r.Qb)
}

// check validates all sizes against the direction-count-derived dimensions
// and converts the record into link parameters
func (r *record) check() (dat *inp.LinkData, err error) {
	if r.Version != recordVersion {
		return nil, chk.Err("corrupt data: record version %d is not supported", r.Version)
	}
	ndir := len(r.Dirs)
	if ndir < 1 || ndir > 6 {
		return nil, chk.Err("corrupt data: record has %d directions", ndir)
	}
	if len(r.Nods) != 2 {
		return nil, chk.Err("corrupt data: record has %d node ids", len(r.Nods))
	}
	if len(r.Kb) != ndir*ndir {
		return nil, chk.Err("corrupt data: kb has %d entries. %d are required", len(r.Kb), ndir*ndir)
	}
	if len(r.Cb) != 0 && len(r.Cb) != ndir*ndir {
		return nil, chk.Err("corrupt data: cb has %d entries. 0 or %d are required", len(r.Cb), ndir*ndir)
	}
	if len(r.Xdir) != 0 && len(r.Xdir) != 3 {
		return nil, chk.Err("corrupt data: x vector has %d entries", len(r.Xdir))
	}
	if len(r.Ydir) != 0 && len(r.Ydir) != 3 {
		return nil, chk.Err("corrupt data: y vector has %d entries", len(r.Ydir))
	}
	if len(r.Mratio) != 0 && len(r.Mratio) != 4 {
		return nil, chk.Err("corrupt data: mratio has %d entries", len(r.Mratio))
	}
	if len(r.Ub) != ndir || len(r.Qb) != ndir {
		return nil, chk.Err("corrupt data: committed state has %d/%d entries. %d are required", len(r.Ub), len(r.Qb), ndir)
	}
	dat = &inp.LinkData{
		Dirs:        r.Dirs,
		Kb:          unflatten(r.Kb, ndir),
		Xdir:        r.Xdir,
		Ydir:        r.Ydir,
		PDelta:      r.PDelta,
		OnP0:        r.OnP0,
		AddRayleigh: r.AddRayleigh,
	}
	if len(r.Cb) > 0 {
		dat.Cb = unflatten(r.Cb, ndir)
	}
	if len(r.Mratio) == 4 {
		if r.Ndim == 2 {
			dat.Mratio = r.Mratio[2:4]
		} else {
			dat.Mratio = r.Mratio
		}
	}
	return
}

// flatten returns the row-major flattening of a square matrix
func flatten(m [][]float64) (v []float64) {
	n := len(m)
	v = make([]float64, 0, n*n)
	for i := 0; i < n; i++ {
		v = append(v, m[i]...)
	}
	return
}

// unflatten rebuilds a square matrix from its row-major flattening
func unflatten(v []float64, n int) (m [][]float64) {
	m = make([][]float64, n)
	for i := 0; i < n; i++ {
		m[i] = v[i*n : (i+1)*n]
	}
	return
}
