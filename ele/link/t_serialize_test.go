// Copyright 2016 The Linkfem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package link

import (
	"bytes"
	"encoding/gob"
	"testing"

	"github.com/erikemondt/linkfem/ele"
	"github.com/erikemondt/linkfem/inp"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

func Test_serialize01(tst *testing.T) {

	//chk.Verbose = true
	chk.PrintTitle("serialize01. round trip on a fresh partition")

	// element with a committed state
	x := [][]float64{{0, 3}, {0, 4}}
	dat := &inp.LinkData{Dirs: []int{0, 1}, Kb: [][]float64{{1000, 0}, {0, 10}}, PDelta: true}
	a, err := New(7, 2, []int{4, 9}, x, dat)
	if err != nil {
		tst.Errorf("New failed:\n%v", err)
		return
	}
	a.SetEqs([][]int{{0, 1}, {2, 3}})
	sol := &ele.Solution{Steady: true, Y: []float64{0, 0, 0.6, 0.8}}
	a.Update(sol)
	a.CommitState()

	// encode
	var buf bytes.Buffer
	err = a.Encode(gob.NewEncoder(&buf))
	if err != nil {
		tst.Errorf("Encode failed:\n%v", err)
		return
	}

	// decode on a partition that resolves node coordinates locally
	b, err := DecodeNew(gob.NewDecoder(&buf), func(nods []int) ([][]float64, error) {
		chk.Ints(tst, "record nods", nods, []int{4, 9})
		return x, nil
	})
	if err != nil {
		tst.Errorf("DecodeNew failed:\n%v", err)
		return
	}

	// identity and state must carry over
	chk.IntAssert(b.Id(), 7)
	chk.IntAssert(b.Nu, a.Nu)
	chk.Scalar(tst, "L", 1e-15, b.L, a.L)
	qa, _ := a.Response("basicForce")
	qbv, _ := b.Response("basicForce")
	chk.Vector(tst, "qb", 1e-14, qbv, qa)
	chk.Matrix(tst, "rot", 1e-15, b.rot, a.rot)
	chk.Matrix(tst, "K", 1e-12, b.TangentStiff(), a.TangentStiff())
}

func Test_serialize02(tst *testing.T) {

	//chk.Verbose = true
	chk.PrintTitle("serialize02. decode into an existing element")

	x := [][]float64{{0, 2}, {0, 0}}
	dat := &inp.LinkData{Dirs: []int{0}, Kb: [][]float64{{500}}}
	a, err := New(3, 2, []int{0, 1}, x, dat)
	if err != nil {
		tst.Errorf("New failed:\n%v", err)
		return
	}
	a.SetEqs([][]int{{0, 1}, {2, 3}})
	sol := &ele.Solution{Steady: true, Y: []float64{0, 0, 0.2, 0}}
	a.Update(sol)
	a.CommitState()

	var buf bytes.Buffer
	err = a.Encode(gob.NewEncoder(&buf))
	if err != nil {
		tst.Errorf("Encode failed:\n%v", err)
		return
	}

	// receiving element: same mesh position, blank state
	b, err := New(3, 2, []int{0, 1}, x, dat)
	if err != nil {
		tst.Errorf("New failed:\n%v", err)
		return
	}
	b.SetEqs([][]int{{4, 5}, {6, 7}})
	err = b.Decode(gob.NewDecoder(&buf))
	if err != nil {
		tst.Errorf("Decode failed:\n%v", err)
		return
	}

	// committed state restored; the local assembly map is untouched
	qbv, _ := b.Response("basicForce")
	chk.Vector(tst, "qb", 1e-14, qbv, []float64{100})
	chk.Ints(tst, "umap", b.Umap, []int{4, 5, 6, 7})
}

func Test_serialize03(tst *testing.T) {

	//chk.Verbose = true
	chk.PrintTitle("serialize03. corrupt records")

	decode := func(r *record) error {
		var buf bytes.Buffer
		if err := gob.NewEncoder(&buf).Encode(r); err != nil {
			tst.Fatalf("cannot prepare record: %v", err)
		}
		_, err := DecodeNew(gob.NewDecoder(&buf), func(nods []int) ([][]float64, error) {
			return [][]float64{{0, 1}, {0, 0}}, nil
		})
		return err
	}

	// wrong version
	err := decode(&record{Version: 99, Ndim: 2, Nods: []int{0, 1}, Dirs: []int{0}, Kb: []float64{1}, Ub: []float64{0}, Qb: []float64{0}})
	if err == nil {
		tst.Errorf("test failed: unknown record version must be rejected")
		return
	}
	io.Pforan("err = %v\n", err)

	// stiffness size inconsistent with the direction count
	err = decode(&record{Version: recordVersion, Ndim: 2, Nods: []int{0, 1}, Dirs: []int{0, 1}, Kb: []float64{1, 2, 3}, Ub: []float64{0, 0}, Qb: []float64{0, 0}})
	if err == nil {
		tst.Errorf("test failed: truncated stiffness must be rejected")
		return
	}
	io.Pforan("err = %v\n", err)

	// state vector size mismatch
	err = decode(&record{Version: recordVersion, Ndim: 2, Nods: []int{0, 1}, Dirs: []int{0}, Kb: []float64{1}, Ub: []float64{0, 0}, Qb: []float64{0}})
	if err == nil {
		tst.Errorf("test failed: oversized state vector must be rejected")
		return
	}
	io.Pforan("err = %v\n", err)
}
