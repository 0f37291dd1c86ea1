// Copyright 2016 The Linkfem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ele

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
)

// Load defines a generalized load applied directly to one element. The
// components are expressed in the element's basic system.
type Load interface {
	BasicComponents(ndir int) (vals []float64, err error) // load components in the basic system [ndir]
	CommitState() (failCode int)                          // called when the hosting element commits; nonzero means failure
}

// BasicLoad implements Load with constant basic components optionally scaled
// by a time function
type BasicLoad struct {
	Vals []float64 // load components in the basic system
	Mult dbf.T     // multiplier function; optional
	Time float64   // current time; set by the driver before commit/apply
}

// BasicComponents returns the load components in the basic system
func (o *BasicLoad) BasicComponents(ndir int) (vals []float64, err error) {
	if len(o.Vals) != ndir {
		return nil, chk.Err("load has %d components. %d is incorrect", len(o.Vals), ndir)
	}
	vals = make([]float64, ndir)
	m := 1.0
	if o.Mult != nil {
		m = o.Mult.F(o.Time, nil)
	}
	for i, v := range o.Vals {
		vals[i] = m * v
	}
	return
}

// CommitState always succeeds for constant basic loads
func (o *BasicLoad) CommitState() (failCode int) { return 0 }
