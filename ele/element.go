// Copyright 2016 The Linkfem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package ele implements the contracts between link elements and the framework
package ele

import (
	"github.com/cpmech/gosl/fun/dbf"
	"github.com/cpmech/gosl/la"
	"github.com/cpmech/gosl/utl"
)

// Element defines what all elements must implement
type Element interface {

	// information and initialisation
	Id() int                       // returns the cell Id
	SetEqs(eqs [][]int) (err error) // set equations

	// conditions (element loads and similar)
	SetEleConds(key string, f dbf.T, extra string) (err error) // set element conditions

	// called for each iteration
	AddToRhs(fb []float64, sol *Solution) (err error)                // adds -R to global residual vector fb
	AddToKb(Kb *la.Triplet, sol *Solution, firstIt bool) (err error) // adds element K to global Jacobian matrix Kb

	// reading and writing of element data
	Encode(enc utl.Encoder) (err error) // encodes internal variables
	Decode(dec utl.Decoder) (err error) // decodes internal variables
}

// WithStates defines elements with a trial/committed state pair driven by a
// nonlinear solver: one Update then exactly one CommitState or
// RevertToLastCommit per analysis step
type WithStates interface {
	Update(sol *Solution) (err error) // refresh trial state from nodal values
	CommitState() (err error)         // promote trial state to committed
	RevertToLastCommit() (err error)  // discard trial state, restore committed
	RevertToStart() (err error)       // zero both trial and committed states
}

// Loadable defines elements that accept generalized element loads
type Loadable interface {
	AddLoad(load Load, factor float64) (err error) // add a scaled load contribution
	AddInertiaLoad(accel []float64) (err error)    // add inertial load contribution; massless elements reject this
	ZeroLoad()                                     // zero the applied load vector
}

// CanOutputIps defines elements that can output integration points' values
type CanOutputIps interface {
	Id() int                            // returns the cell Id
	OutIpCoords() [][]float64           // coordinates of integration points
	OutIpKeys() []string                // integration points' keys; e.g. "q0"
	OutIpVals(M *IpsMap, sol *Solution) // integration points' values corresponding to keys
}

// HasResponse defines elements with named response queries for recorders
type HasResponse interface {
	Response(name string) (vals []float64, err error) // e.g. "localForce", "basicForce"
}
