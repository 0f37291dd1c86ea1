// Copyright 2016 The Linkfem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"github.com/erikemondt/linkfem/ele"
	"github.com/erikemondt/linkfem/inp"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
	"github.com/cpmech/gosl/la"
)

// EssenBc holds one essential (prescribed dof) boundary condition
type EssenBc struct {
	Key string // dof key; e.g. "ux"
	Eq  int    // equation number
	Fcn dbf.T  // prescribed value as function of time
}

// Domain holds all Nodes and Elements active during a stage in addition to
// the Solution at nodes
type Domain struct {

	// init: auxiliary variables
	Sim *inp.Simulation // input data
	Reg *inp.Region     // region data
	Msh *inp.Mesh       // mesh data

	// stage: nodes and elements
	Nodes    []*Node         // active nodes
	Vid2node map[int]*Node   // vertex id => node; lookup for borrowed references
	Elems    []ele.Element   // all elements
	Cid2elem map[int]ele.Element // cell id => element

	// stage: subsets of elements
	ElemWithStates []ele.WithStates // elements with trial/committed states

	// stage: essential boundary conditions
	EssenBcs []*EssenBc

	// stage: dimensions, solution and assembly arrays
	Ny  int           // total number of dofs
	Sol *ele.Solution // solution state
	Kb  *la.Triplet   // Jacobian
	Fb  []float64     // residual
}

// NewDomain returns a new domain for the first region of sim
func NewDomain(sim *inp.Simulation) *Domain {
	var o Domain
	o.Sim = sim
	o.Reg = sim.Regions[0]
	o.Msh = o.Reg.Msh
	return &o
}

// SetStage activates a stage: builds nodes with their dofs and equations,
// allocates elements from the factory, and prepares solution arrays
func (o *Domain) SetStage(idxstg int) (err error) {

	// check
	if idxstg < 0 || idxstg >= len(o.Sim.Stages) {
		return chk.Err("stage index %d is out of range", idxstg)
	}
	stg := o.Sim.Stages[idxstg]

	// reset stage data
	o.Nodes = make([]*Node, 0)
	o.Vid2node = make(map[int]*Node)
	o.Elems = make([]ele.Element, 0)
	o.Cid2elem = make(map[int]ele.Element)
	o.ElemWithStates = nil
	o.EssenBcs = nil
	o.Ny = 0

	// nodes and equations
	nnzKb := 0
	for _, c := range o.Msh.Cells {
		info, inactive, err := ele.GetInfo(c, o.Reg, o.Sim)
		if err != nil {
			return err
		}
		if inactive {
			continue
		}
		ndofs := 0
		for m, v := range c.Verts {
			nod, ok := o.Vid2node[v]
			if !ok {
				nod = NewNode(o.Msh.Vid2vert[v])
				o.Vid2node[v] = nod
				o.Nodes = append(o.Nodes, nod)
			}
			for _, key := range info.Dofs[m] {
				if nod.AddDofAndEq(key, o.Ny) {
					o.Ny++
				}
			}
			ndofs += len(info.Dofs[m])
		}
		nnzKb += ndofs * ndofs
	}

	// elements
	for _, c := range o.Msh.Cells {
		edat := o.Reg.Etag2data(c.Tag)
		if edat == nil {
			return chk.Err("cannot get data for element {tag=%d, id=%d}", c.Tag, c.Id)
		}
		if edat.Inact {
			continue
		}
		e, err := ele.New(c, o.Reg, o.Sim)
		if err != nil {
			return err
		}
		info, _, _ := ele.GetInfo(c, o.Reg, o.Sim)
		eqs := make([][]int, 2)
		for m, v := range c.Verts {
			eqs[m] = make([]int, len(info.Dofs[m]))
			for i, key := range info.Dofs[m] {
				eqs[m][i] = o.Vid2node[v].GetEq(key)
			}
		}
		err = e.SetEqs(eqs)
		if err != nil {
			return err
		}
		o.Elems = append(o.Elems, e)
		o.Cid2elem[c.Id] = e
		if ews, ok := e.(ele.WithStates); ok {
			o.ElemWithStates = append(o.ElemWithStates, ews)
		}
	}

	// essential boundary conditions
	for _, nbc := range stg.NodeBcs {
		for _, v := range o.Msh.Verts {
			if v.Tag != nbc.Tag {
				continue
			}
			nod, ok := o.Vid2node[v.Id]
			if !ok {
				continue
			}
			for i, key := range nbc.Keys {
				eq := nod.GetEq(key)
				if eq < 0 {
					return chk.Err("node %d has no dof %q for boundary condition", v.Id, key)
				}
				fcn, err := o.Sim.Functions.Get(nbc.Funcs[i])
				if err != nil {
					return err
				}
				o.EssenBcs = append(o.EssenBcs, &EssenBc{Key: key, Eq: eq, Fcn: fcn})
			}
		}
	}

	// element conditions
	for _, ec := range stg.EleConds {
		for _, c := range o.Msh.Cells {
			if c.Tag != ec.Tag {
				continue
			}
			e, ok := o.Cid2elem[c.Id]
			if !ok {
				continue
			}
			for i, key := range ec.Keys {
				fcn, err := o.Sim.Functions.Get(ec.Funcs[i])
				if err != nil {
					return err
				}
				err = e.SetEleConds(key, fcn, ec.Extra)
				if err != nil {
					return err
				}
			}
		}
	}

	// solution and assembly arrays
	o.Sol = new(ele.Solution)
	o.Sol.Steady = o.Sim.Data.Steady
	o.Sol.DynCfs = new(ele.DynCoefs)
	o.Sol.Y = make([]float64, o.Ny)
	o.Sol.ΔY = make([]float64, o.Ny)
	if !o.Sol.Steady {
		o.Sol.Dydt = make([]float64, o.Ny)
	}
	o.Kb = new(la.Triplet)
	o.Kb.Init(o.Ny, o.Ny, nnzKb)
	o.Fb = make([]float64, o.Ny)
	return
}

// AddLoad applies a scaled element load to the element with cell id cid
func (o *Domain) AddLoad(cid int, load ele.Load, factor float64) (err error) {
	e, ok := o.Cid2elem[cid]
	if !ok {
		return chk.Err("cannot find element with cid=%d", cid)
	}
	lo, ok := e.(ele.Loadable)
	if !ok {
		return chk.Err("element %d cannot take loads", cid)
	}
	return lo.AddLoad(load, factor)
}

// AssembleKbFb assembles the global Jacobian matrix and residual vector
func (o *Domain) AssembleKbFb(firstIt bool) (err error) {
	la.VecFill(o.Fb, 0)
	o.Kb.Start()
	for _, e := range o.Elems {
		err = e.AddToRhs(o.Fb, o.Sol)
		if err != nil {
			return
		}
		err = e.AddToKb(o.Kb, o.Sol, firstIt)
		if err != nil {
			return
		}
	}
	return
}
