// Copyright 2016 The Linkfem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package link

import (
	"github.com/cpmech/gosl/chk"
)

// Etype is the element DOF category: NxDy has dimension x and y DOFs
type Etype int

const (
	D1N2  Etype = iota // 1D, 2 DOFs
	D2N4               // 2D, 4 DOFs (translations only)
	D2N6               // 2D, 6 DOFs (translations and rotation)
	D3N6               // 3D, 6 DOFs (translations only)
	D3N12              // 3D, 12 DOFs (translations and rotations)
)

// String returns the category name
func (o Etype) String() string {
	switch o {
	case D1N2:
		return "D1N2"
	case D2N4:
		return "D2N4"
	case D2N6:
		return "D2N6"
	case D3N6:
		return "D3N6"
	case D3N12:
		return "D3N12"
	}
	return "unknown"
}

// resolveEtype maps dimension and the active directions to the element DOF
// category and total DOF count. Directions at or above ndim are rotational;
// activating any of them (or requesting P-Delta moment distribution) switches
// the nodes to the rotational DOF set.
func resolveEtype(ndim int, dirs []int, withRot bool) (etyp Etype, ndof int, err error) {

	// check directions
	if len(dirs) < 1 || len(dirs) > 6 {
		err = chk.Err("configuration: number of directions must be in [1,6]. %d is invalid", len(dirs))
		return
	}
	for _, d := range dirs {
		if d < 0 || d > 5 {
			err = chk.Err("configuration: direction must be in [0,5]. %d is invalid", d)
			return
		}
		if d >= ndim {
			withRot = true
		}
	}

	// fixed table
	switch ndim {
	case 1:
		for _, d := range dirs {
			if d != 0 {
				err = chk.Err("configuration: only direction 0 is available in 1D. %d is invalid", d)
				return
			}
		}
		return D1N2, 2, nil
	case 2:
		for _, d := range dirs {
			if d > 2 {
				err = chk.Err("configuration: direction must be in [0,2] in 2D. %d is invalid", d)
				return
			}
		}
		if withRot {
			return D2N6, 6, nil
		}
		return D2N4, 4, nil
	case 3:
		if withRot {
			return D3N12, 12, nil
		}
		return D3N6, 6, nil
	}
	err = chk.Err("configuration: dimension must be 1, 2 or 3. %d is invalid", ndim)
	return
}

// dofKeys returns the nodal DOF keys of one node for the given category
func dofKeys(etyp Etype) []string {
	switch etyp {
	case D1N2:
		return []string{"ux"}
	case D2N4:
		return []string{"ux", "uy"}
	case D2N6:
		return []string{"ux", "uy", "rz"}
	case D3N6:
		return []string{"ux", "uy", "uz"}
	}
	return []string{"ux", "uy", "uz", "rx", "ry", "rz"}
}
