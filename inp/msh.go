// Copyright 2016 The Linkfem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package inp

import (
	"encoding/json"
	"path/filepath"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

// Vert holds vertex data
type Vert struct {
	Id  int       `json:"id"`  // id
	Tag int       `json:"tag"` // tag
	C   []float64 `json:"c"`   // coordinates [ndim]
}

// Cell holds cell data; a cell of a link mesh connects exactly two vertices
type Cell struct {
	Id    int   `json:"id"`    // id
	Tag   int   `json:"tag"`   // tag of cell
	Verts []int `json:"verts"` // vertex ids [2]
}

// Mesh holds a link mesh: vertices and two-vertex cells
type Mesh struct {

	// input data
	Verts []*Vert `json:"verts"` // vertices
	Cells []*Cell `json:"cells"` // cells

	// derived
	Ndim     int           // space dimension
	Vid2vert map[int]*Vert // vertex id => vertex
}

// ReadMsh reads a mesh from a JSON file
func ReadMsh(dir, fn string) (o *Mesh, err error) {

	// read file
	b, err := io.ReadFile(filepath.Join(dir, fn))
	if err != nil {
		return nil, chk.Err("ReadMsh: cannot read mesh file %q", fn)
	}

	// decode
	o = new(Mesh)
	err = json.Unmarshal(b, o)
	if err != nil {
		return nil, chk.Err("ReadMsh: cannot unmarshal mesh file %q\n%v", fn, err)
	}

	// derived
	err = o.CalcDerived()
	if err != nil {
		return nil, err
	}
	return
}

// CalcDerived computes derived quantities and checks consistency
func (o *Mesh) CalcDerived() (err error) {
	if len(o.Verts) < 2 {
		return chk.Err("mesh must have at least 2 vertices. %d is invalid", len(o.Verts))
	}
	o.Ndim = len(o.Verts[0].C)
	if o.Ndim < 1 || o.Ndim > 3 {
		return chk.Err("space dimension must be 1, 2 or 3. %d is invalid", o.Ndim)
	}
	o.Vid2vert = make(map[int]*Vert)
	for _, v := range o.Verts {
		if len(v.C) != o.Ndim {
			return chk.Err("vertex %d has %d coordinates. %d is incorrect", v.Id, len(v.C), o.Ndim)
		}
		o.Vid2vert[v.Id] = v
	}
	for _, c := range o.Cells {
		if len(c.Verts) != 2 {
			return chk.Err("cell %d must connect exactly 2 vertices. %d is invalid", c.Id, len(c.Verts))
		}
		for _, v := range c.Verts {
			if _, ok := o.Vid2vert[v]; !ok {
				return chk.Err("cell %d references inexistent vertex %d", c.Id, v)
			}
		}
	}
	return
}
