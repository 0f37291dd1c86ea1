// Copyright 2016 The Linkfem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"bytes"
	"testing"

	"github.com/erikemondt/linkfem/ele"
	_ "github.com/erikemondt/linkfem/ele/link"
	"github.com/erikemondt/linkfem/inp"

	"github.com/cpmech/gosl/chk"
)

func readDomain(tst *testing.T) *Domain {
	sim, err := inp.ReadSim("data/link01.sim", false)
	if err != nil {
		tst.Errorf("ReadSim failed:\n%v", err)
		return nil
	}
	dom := NewDomain(sim)
	err = dom.SetStage(0)
	if err != nil {
		tst.Errorf("SetStage failed:\n%v", err)
		return nil
	}
	return dom
}

func Test_fem01(tst *testing.T) {

	//chk.Verbose = true
	chk.PrintTitle("fem01. domain setup")

	dom := readDomain(tst)
	if dom == nil {
		return
	}

	// 3 nodes with ux and uy each
	chk.IntAssert(len(dom.Nodes), 3)
	chk.IntAssert(len(dom.Elems), 2)
	chk.IntAssert(len(dom.ElemWithStates), 2)
	chk.IntAssert(dom.Ny, 6)
	chk.IntAssert(dom.Vid2node[0].GetEq("ux"), 0)
	chk.IntAssert(dom.Vid2node[1].GetEq("uy"), 3)
	chk.IntAssert(dom.Vid2node[2].GetEq("ux"), 4)

	// prescribed dofs: fixed end (2) plus pulled end (1)
	chk.IntAssert(len(dom.EssenBcs), 3)
}

func Test_fem02(tst *testing.T) {

	//chk.Verbose = true
	chk.PrintTitle("fem02. driver: prescribed pull on a chain")

	dom := readDomain(tst)
	if dom == nil {
		return
	}
	drv := NewDriver(dom)
	err := drv.Run(0)
	if err != nil {
		tst.Errorf("Run failed:\n%v", err)
		return
	}

	// end displacement ramped to 0.5 at tf=1
	chk.Scalar(tst, "Y[4]", 1e-15, dom.Sol.Y[4], 0.5)

	// the second link carries the full relative displacement
	e := dom.Cid2elem[1].(ele.HasResponse)
	qb, err := e.Response("basicForce")
	if err != nil {
		tst.Errorf("Response failed:\n%v", err)
		return
	}
	chk.Vector(tst, "qb of link 1", 1e-12, qb, []float64{500, 0})

	// residual from the last assembled step: reactions at the chain ends plus
	// the applied basic load of 50 on each link
	chk.Vector(tst, "Fb", 1e-12, dom.Fb, []float64{-50, 0, 500, 0, -450, 0})

	// each element contributes a full 4x4 block to the Jacobian
	chk.IntAssert(dom.Kb.Len(), 32)
}

func Test_fem03(tst *testing.T) {

	//chk.Verbose = true
	chk.PrintTitle("fem03. save and read state")

	dom := readDomain(tst)
	if dom == nil {
		return
	}
	drv := NewDriver(dom)
	err := drv.Run(0)
	if err != nil {
		tst.Errorf("Run failed:\n%v", err)
		return
	}

	// save
	var buf bytes.Buffer
	err = dom.SaveState(&buf)
	if err != nil {
		tst.Errorf("SaveState failed:\n%v", err)
		return
	}

	// wipe all element states
	for _, e := range dom.ElemWithStates {
		err = e.RevertToStart()
		if err != nil {
			tst.Errorf("RevertToStart failed:\n%v", err)
			return
		}
	}
	e := dom.Cid2elem[1].(ele.HasResponse)
	qb, _ := e.Response("basicForce")
	chk.Vector(tst, "qb wiped", 1e-15, qb, []float64{0, 0})

	// restore
	err = dom.ReadState(&buf)
	if err != nil {
		tst.Errorf("ReadState failed:\n%v", err)
		return
	}
	qb, _ = e.Response("basicForce")
	chk.Vector(tst, "qb restored", 1e-12, qb, []float64{500, 0})
}

func Test_fem04(tst *testing.T) {

	//chk.Verbose = true
	chk.PrintTitle("fem04. element load through the domain")

	dom := readDomain(tst)
	if dom == nil {
		return
	}

	// axial load of 30 on the first link
	err := dom.AddLoad(0, &ele.BasicLoad{Vals: []float64{30, 0}}, 1)
	if err != nil {
		tst.Errorf("AddLoad failed:\n%v", err)
		return
	}
	err = dom.AssembleKbFb(true)
	if err != nil {
		tst.Errorf("AssembleKbFb failed:\n%v", err)
		return
	}
	chk.Vector(tst, "Fb", 1e-12, dom.Fb, []float64{-30, 0, 30, 0, 0, 0})

	// unknown cell id
	err = dom.AddLoad(99, &ele.BasicLoad{Vals: []float64{1, 0}}, 1)
	if err == nil {
		tst.Errorf("test failed: unknown cell id must be rejected")
		return
	}
}
