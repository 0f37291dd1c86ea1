// Copyright 2016 The Linkfem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package link

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/utl"
)

// tolZeroL is the tolerance below which the element is considered zero-length
const tolZeroL = 1e-12

// setUp computes the element length and the local axes from the node
// coordinates and the orientation hints; computed once and cached
func (o *TwoNodeLink) setUp() (err error) {

	// element vector from node 0 to node 1
	xp := make([]float64, 3)
	o.L = 0
	for i := 0; i < o.Ndim; i++ {
		xp[i] = o.X[i][1] - o.X[i][0]
		o.L += xp[i] * xp[i]
	}
	o.L = math.Sqrt(o.L)

	// 1D: the rotation degenerates to a sign
	if o.Ndim == 1 {
		c := 1.0
		if o.L > tolZeroL && xp[0] < 0 {
			c = -1.0
		}
		if o.L <= tolZeroL && len(o.Xdir) > 0 && o.Xdir[0] < 0 {
			c = -1.0
		}
		o.rot = [][]float64{{c, 0, 0}, {0, c, 0}, {0, 0, 1}}
		o.setTranGlobalLocal()
		o.setTranLocalBasic()
		return
	}

	// local x axis
	x := make([]float64, 3)
	if o.L > tolZeroL {
		copy(x, xp)
		if len(o.Xdir) > 0 && o.OnP0 {
			io.Pf("link %d: ignoring x orientation hint and using node geometry\n", o.Tag)
		}
	} else {
		if len(o.Xdir) != 3 || len(o.Ydir) != 3 {
			return chk.Err("geometry: zero-length element %d requires x and y orientation hints", o.Tag)
		}
		copy(x, o.Xdir)
	}

	// local y hint
	y := make([]float64, 3)
	switch {
	case len(o.Ydir) == 3:
		copy(y, o.Ydir)
	case o.Ndim == 2:
		y[0], y[1] = -x[1], x[0]
	default:
		y[1] = 1.0
		if math.Abs(x[1]) > math.Abs(x[0])+math.Abs(x[2]) {
			y[1], y[2] = 0.0, 1.0
		}
	}

	// 2D: orientation lives in the xy plane; an out-of-plane hint component
	// would tilt the triad and break the orthonormality of the truncated Tgl
	if o.Ndim == 2 {
		x[2], y[2] = 0, 0
	}

	// orthonormal triad: ez = x cross y, ey = ez cross ex
	z := make([]float64, 3)
	utl.Cross3d(z, x, y)
	xn, yn, zn := norm3(x), norm3(y), norm3(z)
	if xn <= tolZeroL || yn <= tolZeroL || zn <= tolZeroL {
		return chk.Err("geometry: element %d has degenerate orientation vectors", o.Tag)
	}
	ex := []float64{x[0] / xn, x[1] / xn, x[2] / xn}
	ez := []float64{z[0] / zn, z[1] / zn, z[2] / zn}
	ey := make([]float64, 3)
	utl.Cross3d(ey, ez, ex)

	// cache direction cosines and transformation matrices
	o.rot = [][]float64{ex, ey, ez}
	o.setTranGlobalLocal()
	o.setTranLocalBasic()
	return
}

// setTranGlobalLocal assembles Tgl: the direction-cosine block replicated
// across both nodes' translational and rotational DOF triples
func (o *TwoNodeLink) setTranGlobalLocal() {
	nt := o.Ndim // number of translational DOFs per node
	if o.Etyp == D1N2 {
		nt = 1
	}
	half := o.Nu / 2
	for m := 0; m < 2; m++ {
		// translations
		for i := 0; i < nt; i++ {
			for j := 0; j < nt; j++ {
				o.Tgl[m*half+i][m*half+j] = o.rot[i][j]
			}
		}
		// rotations
		switch o.Etyp {
		case D2N6:
			o.Tgl[m*half+2][m*half+2] = 1.0
		case D3N12:
			for i := 0; i < 3; i++ {
				for j := 0; j < 3; j++ {
					o.Tgl[m*half+3+i][m*half+3+j] = o.rot[i][j]
				}
			}
		}
	}
}

// setTranLocalBasic assembles Tlb: one signed difference row per active
// direction expressing the relative deformation along that direction
func (o *TwoNodeLink) setTranLocalBasic() {
	half := o.Nu / 2
	for i, d := range o.Dirs {
		o.Tlb[i][d] = -1.0
		o.Tlb[i][d+half] = 1.0
	}
}

// norm3 returns the Euclidean norm of a 3-vector
func norm3(v []float64) float64 {
	return math.Sqrt(v[0]*v[0] + v[1]*v[1] + v[2]*v[2])
}
