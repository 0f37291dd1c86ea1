// Copyright 2016 The Linkfem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package link

import (
	"testing"

	"github.com/erikemondt/linkfem/ele"
	"github.com/erikemondt/linkfem/inp"

	"github.com/cpmech/gosl/chk"
)

// newPdelta2d builds a 2D element of length 2 with axial, transverse and
// rotational directions active, kb = diag(1000, 10, 5)
func newPdelta2d(tst *testing.T, dat inp.LinkData) *TwoNodeLink {
	x := [][]float64{{0, 2}, {0, 0}}
	dat.Dirs = []int{0, 1, 2}
	dat.Kb = [][]float64{{1000, 0, 0}, {0, 10, 0}, {0, 0, 5}}
	o, err := New(2, 2, []int{0, 1}, x, &dat)
	if err != nil {
		tst.Errorf("New failed:\n%v", err)
		return nil
	}
	err = o.SetEqs([][]int{{0, 1, 2}, {3, 4, 5}})
	if err != nil {
		tst.Errorf("SetEqs failed:\n%v", err)
		return nil
	}
	return o
}

// driveAxialThenTransverse commits an axial displacement of 0.1 and then sets
// a trial state with an extra transverse displacement of 0.01
func driveAxialThenTransverse(tst *testing.T, o *TwoNodeLink) bool {
	sol := &ele.Solution{Steady: true, Y: []float64{0, 0, 0, 0.1, 0, 0}}
	if err := o.Update(sol); err != nil {
		tst.Errorf("Update failed:\n%v", err)
		return false
	}
	if err := o.CommitState(); err != nil {
		tst.Errorf("CommitState failed:\n%v", err)
		return false
	}
	sol.Y[4] = 0.01
	if err := o.Update(sol); err != nil {
		tst.Errorf("Update failed:\n%v", err)
		return false
	}
	return true
}

func Test_pdelta01(tst *testing.T) {

	//chk.Verbose = true
	chk.PrintTitle("pdelta01. moment correction from committed axial force")

	// committed axial force N = 100, trial transverse difference 0.01
	// => moment correction N*dl = 1.0, split half and half between the ends
	o := newPdelta2d(tst, inp.LinkData{PDelta: true, Mratio: []float64{0.5, 0.5}})
	if o == nil || !driveAxialThenTransverse(tst, o) {
		return
	}
	fi := o.ResistingForce()
	chk.Vector(tst, "fi with correction", 1e-12, fi, []float64{-100, -0.1, 0.5, 100, 0.1, 0.5})

	// full distribution to the ends leaves no shear share in the stiffness
	K := o.TangentStiff()
	chk.Scalar(tst, "K[1][1]", 1e-12, K[1][1], 10)

	// same history without the geometric correction
	o = newPdelta2d(tst, inp.LinkData{Mratio: []float64{0.5, 0.5}})
	if o == nil || !driveAxialThenTransverse(tst, o) {
		return
	}
	fi = o.ResistingForce()
	chk.Vector(tst, "fi without correction", 1e-12, fi, []float64{-100, -0.1, 0, 100, 0.1, 0})
}

func Test_pdelta02(tst *testing.T) {

	//chk.Verbose = true
	chk.PrintTitle("pdelta02. shear share and geometric stiffness")

	// half of the correction stays as a shear couple: V = N*dl/L * 0.5 = 0.25
	o := newPdelta2d(tst, inp.LinkData{PDelta: true, OnP0: true, Mratio: []float64{0.25, 0.25}})
	if o == nil || !driveAxialThenTransverse(tst, o) {
		return
	}
	fi := o.ResistingForce()
	chk.Vector(tst, "fi", 1e-12, fi, []float64{-100, -0.35, 0.25, 100, 0.35, 0.25})

	// geometric stiffness: N/L * 0.5 = 25 on the transverse pair
	K := o.TangentStiff()
	chk.Matrix(tst, "K", 1e-12, K, [][]float64{
		{+1000, 0, 0, -1000, 0, 0},
		{0, +35, 0, 0, -35, 0},
		{0, 0, +5, 0, 0, -5},
		{-1000, 0, 0, +1000, 0, 0},
		{0, -35, 0, 0, +35, 0},
		{0, 0, -5, 0, 0, +5},
	})
}

func Test_pdelta03(tst *testing.T) {

	//chk.Verbose = true
	chk.PrintTitle("pdelta03. zero-length element skips the correction")

	x := [][]float64{{1, 1}, {1, 1}}
	dat := inp.LinkData{
		Dirs:   []int{0, 1, 2},
		Kb:     [][]float64{{1000, 0, 0}, {0, 10, 0}, {0, 0, 5}},
		Xdir:   []float64{1, 0, 0},
		Ydir:   []float64{0, 1, 0},
		PDelta: true,
		OnP0:   true,
		Mratio: []float64{0.25, 0.25},
	}
	o, err := New(3, 2, []int{0, 1}, x, &dat)
	if err != nil {
		tst.Errorf("New failed:\n%v", err)
		return
	}
	o.SetEqs([][]int{{0, 1, 2}, {3, 4, 5}})
	if !driveAxialThenTransverse(tst, o) {
		return
	}

	// no amplification terms for coincident nodes
	fi := o.ResistingForce()
	chk.Vector(tst, "fi", 1e-12, fi, []float64{-100, -0.1, 0, 100, 0.1, 0})
	K := o.TangentStiff()
	chk.Scalar(tst, "K[1][1]", 1e-12, K[1][1], 10)
}
