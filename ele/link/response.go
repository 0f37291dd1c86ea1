// Copyright 2016 The Linkfem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package link

import (
	"github.com/erikemondt/linkfem/ele"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/la"
)

// Response returns a named response for external recording.
// Recognized names: "localForce", "basicForce", "basicDeformation".
func (o *TwoNodeLink) Response(name string) (vals []float64, err error) {
	switch name {
	case "localForce":
		vals = make([]float64, o.Nu)
		la.MatTrVecMulAdd(vals, 1, o.Tlb, o.qb) // ql = trans(Tlb) * qb
		if o.PDelta {
			o.addPDeltaForces(vals)
		}
		return
	case "basicForce":
		vals = make([]float64, len(o.Dirs))
		copy(vals, o.qb)
		return
	case "basicDeformation":
		vals = make([]float64, len(o.Dirs))
		copy(vals, o.ub)
		return
	}
	return nil, chk.Err("unknown response named %q for link element %d", name, o.Tag)
}

// OutIpCoords returns the coordinates of the output station (centroid only)
func (o *TwoNodeLink) OutIpCoords() (C [][]float64) {
	C = make([][]float64, 1)
	C[0] = make([]float64, o.Ndim)
	for i := 0; i < o.Ndim; i++ {
		C[0][i] = (o.X[i][0] + o.X[i][1]) / 2.0
	}
	return
}

// OutIpKeys returns the output keys: one basic force per active direction
func (o *TwoNodeLink) OutIpKeys() (keys []string) {
	keys = make([]string, len(o.Dirs))
	for i, d := range o.Dirs {
		keys[i] = io.Sf("q%d", d)
	}
	return
}

// OutIpVals returns the basic forces at the output station
func (o *TwoNodeLink) OutIpVals(M *ele.IpsMap, sol *ele.Solution) {
	for i, d := range o.Dirs {
		M.Set(io.Sf("q%d", d), 0, 1, o.qb[i])
	}
}
