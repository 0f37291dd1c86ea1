// Copyright 2016 The Linkfem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ele

// Solution holds the trial solution data @ nodes
type Solution struct {

	// current state
	T    float64   // current time
	Y    []float64 // DOFs (solution variables); trial displacements/rotations
	Dydt []float64 // dy/dt; trial velocities (empty if steady)

	// auxiliary
	Dt float64   // current time increment
	ΔY []float64 // total increment (for nonlinear solver)

	// problem definition and constants
	Steady bool      // steady simulation
	DynCfs *DynCoefs // coefficients for dynamics/transient simulations
}

// DynCoefs holds coefficients for transient analyses; a massless link uses
// only the stiffness-proportional Rayleigh term
type DynCoefs struct {
	RayM float64 // Rayleigh damping mass coefficient
	RayK float64 // Rayleigh damping stiffness coefficient
}
