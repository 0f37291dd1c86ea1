// Copyright 2016 The Linkfem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package link

// The P-Delta corrector approximates second-order amplification from the
// committed axial force acting through the trial transverse displacement,
// without recomputing the element kinematics. Both corrections are skipped
// for zero-length elements: the division by L is undefined there and the
// configuration is treated as a boundary condition.

// axialForce returns the committed force along direction 0, or 0 if the
// axial direction is not active
func (o *TwoNodeLink) axialForce() float64 {
	for i, d := range o.Dirs {
		if d == 0 {
			return o.qbc[i]
		}
	}
	return 0
}

// mratio returns the moment distribution ratio at slot i (0 if absent)
func (o *TwoNodeLink) mratio(i int) float64 {
	if len(o.Mratio) != 4 {
		return 0
	}
	return o.Mratio[i]
}

// addPDeltaForces adds the amplification terms to the local force vector,
// split between the two ends per the moment distribution ratios
func (o *TwoNodeLink) addPDeltaForces(pl []float64) {

	// committed axial force and local displacement differences
	if o.L <= tolZeroL {
		return
	}
	N := o.axialForce()
	if N == 0 {
		return
	}
	half := o.Nu / 2
	var dl1, dl2 float64
	for _, d := range o.Dirs {
		switch {
		case d == 1 && o.Ndim > 1:
			dl1 = o.ul[1+half] - o.ul[1]
		case d == 2 && o.Ndim > 2:
			dl2 = o.ul[2+half] - o.ul[2]
		}
	}
	if dl1 == 0 && dl2 == 0 {
		return
	}

	// shear shares; applied only when the element carries the P0 forces
	if o.OnP0 {
		for _, d := range o.Dirs {
			switch {
			case d == 1:
				V := N * dl1 / o.L * (1.0 - o.mratio(2) - o.mratio(3))
				pl[1] -= V
				pl[1+half] += V
			case d == 2 && o.Ndim > 2:
				V := N * dl2 / o.L * (1.0 - o.mratio(0) - o.mratio(1))
				pl[2] -= V
				pl[2+half] += V
			}
		}
	}

	// end moments per distribution ratios
	for _, d := range o.Dirs {
		switch o.Etyp {
		case D2N6:
			if d == 2 {
				M := N * dl1
				pl[2] += o.mratio(2) * M
				pl[5] += o.mratio(3) * M
			}
		case D3N12:
			if d == 4 {
				M := N * dl2
				pl[4] += o.mratio(0) * M
				pl[10] += o.mratio(1) * M
			}
			if d == 5 {
				M := N * dl1
				pl[5] += o.mratio(2) * M
				pl[11] += o.mratio(3) * M
			}
		}
	}
}

// addPDeltaStiff adds the symmetric geometric-stiffness increment, a function
// of the committed axial force and the element length
func (o *TwoNodeLink) addPDeltaStiff(kl [][]float64) {
	if o.L <= tolZeroL {
		return
	}
	N := o.axialForce()
	if N == 0 {
		return
	}
	half := o.Nu / 2
	for _, d := range o.Dirs {
		switch {
		case d == 1 && o.Ndim > 1:
			NoverL := N / o.L * (1.0 - o.mratio(2) - o.mratio(3))
			kl[1][1] += NoverL
			kl[1][1+half] -= NoverL
			kl[1+half][1] -= NoverL
			kl[1+half][1+half] += NoverL
		case d == 2 && o.Ndim > 2:
			NoverL := N / o.L * (1.0 - o.mratio(0) - o.mratio(1))
			kl[2][2] += NoverL
			kl[2][2+half] -= NoverL
			kl[2+half][2] -= NoverL
			kl[2+half][2+half] += NoverL
		}
	}
}
