// Copyright 2016 The Linkfem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

// Driver runs prescribed-displacement steps on a domain, cycling the elements
// through the update => commit-or-revert lifecycle expected by their state
// managers. Assembly of the global system is exercised at each step; solving
// it belongs to the host analysis code.
type Driver struct {
	Dom     *Domain // the domain
	Verbose bool    // show step messages
}

// NewDriver returns a new driver operating on dom
func NewDriver(dom *Domain) *Driver {
	return &Driver{Dom: dom}
}

// Run executes all time steps of one stage. On an element update failure the
// trial state of all elements is reverted to the last committed one before
// returning the error.
func (o *Driver) Run(idxstg int) (err error) {

	// check
	d := o.Dom
	if d.Sol == nil {
		return chk.Err("domain must have SetStage called before running")
	}
	stg := d.Sim.Stages[idxstg]
	dt := stg.Dt
	if dt <= 0 {
		return chk.Err("stage %d has invalid time step %g", idxstg, dt)
	}

	// time loop
	t := d.Sol.T
	for t < stg.Tf {
		t += dt
		d.Sol.T = t
		d.Sol.Dt = dt

		// prescribed values
		for _, bc := range d.EssenBcs {
			d.Sol.Y[bc.Eq] = bc.Fcn.F(t, nil)
		}

		// update elements
		for _, e := range d.ElemWithStates {
			err = e.Update(d.Sol)
			if err != nil {
				o.revert()
				return chk.Err("update failed @ t=%g:\n%v", t, err)
			}
		}

		// assemble global system
		err = d.AssembleKbFb(true)
		if err != nil {
			o.revert()
			return chk.Err("assembly failed @ t=%g:\n%v", t, err)
		}

		// commit
		for _, e := range d.ElemWithStates {
			err = e.CommitState()
			if err != nil {
				o.revert()
				return chk.Err("commit failed @ t=%g:\n%v", t, err)
			}
		}
		if o.Verbose {
			io.Pf("t=%g done\n", t)
		}
	}
	return
}

// revert restores all elements to their last committed state
func (o *Driver) revert() {
	for _, e := range o.Dom.ElemWithStates {
		e.RevertToLastCommit()
	}
}
