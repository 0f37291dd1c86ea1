// Copyright 2016 The Linkfem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package inp implements the input data read from a "sim" (simulation) file
package inp

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

// Data holds global simulation data
type Data struct {
	Desc    string `json:"desc"`    // description of simulation
	Matfile string `json:"matfile"` // file path of material database; optional
	DirOut  string `json:"dirout"`  // directory for output; e.g. /tmp/linkfem
	Encoder string `json:"encoder"` // encoder name; e.g. "gob" "json"
	Steady  bool   `json:"steady"`  // steady simulation
}

// LinkData holds the parameters of one two-node link element
type LinkData struct {
	Dirs        []int       `json:"dirs"`        // active directions; subset of {0..5}
	Kb          [][]float64 `json:"kb"`          // basic stiffness matrix [ndir][ndir]
	Cb          [][]float64 `json:"cb"`          // basic damping matrix [ndir][ndir]; optional
	Xdir        []float64   `json:"xdir"`        // local x direction hint; optional
	Ydir        []float64   `json:"ydir"`        // local y direction hint; optional
	Mratio      []float64   `json:"mratio"`      // P-Delta moment distribution ratios; 2 values (2D) or 4 values (3D)
	PDelta      bool        `json:"pdelta"`      // enable geometric (P-Delta) correction
	OnP0        bool        `json:"onp0"`        // P-Delta force accounting on P0
	AddRayleigh bool        `json:"addrayleigh"` // add Rayleigh (stiffness-proportional) damping
}

// ElemData holds element data
type ElemData struct {

	// input data
	Tag   int       `json:"tag"`   // tag of element
	Type  string    `json:"type"`  // type of element; e.g. "link"
	Link  *LinkData `json:"link"`  // link element parameters
	Extra string    `json:"extra"` // extra flags (in keycode format); e.g. "!verbose:1"
	Inact bool      `json:"inact"` // whether element starts inactive or not
}

// Region holds region data
type Region struct {

	// input data
	Desc      string      `json:"desc"`      // description of region
	Mshfile   string      `json:"mshfile"`   // file path of file with mesh data
	ElemsData []*ElemData `json:"elemsdata"` // list of elements data

	// derived
	Msh *Mesh // the mesh
}

// Etag2data returns the ElemData corresponding to element tag
//  Note: returns nil if not found
func (o *Region) Etag2data(etag int) *ElemData {
	for _, edat := range o.ElemsData {
		if edat.Tag == etag {
			return edat
		}
	}
	return nil
}

// NodeBc holds node boundary condition
type NodeBc struct {
	Tag   int      `json:"tag"`   // tag of node
	Keys  []string `json:"keys"`  // key indicating type of bcs. ex: ux, uy, uz, rx, ry, rz
	Funcs []string `json:"funcs"` // name of function. ex: zero, ramp, myfunction1, etc.
	Extra string   `json:"extra"` // extra information
}

// EleCond holds element condition
type EleCond struct {
	Tag   int      `json:"tag"`   // tag of cell/element
	Keys  []string `json:"keys"`  // key indicating type of condition. ex: "qb" (basic load)
	Funcs []string `json:"funcs"` // name of function. ex: load, none
	Extra string   `json:"extra"` // extra information. ex: '!dir:0'
}

// Stage holds stage data
type Stage struct {
	Desc    string     `json:"desc"`    // description of stage
	Tf      float64    `json:"tf"`      // final time
	Dt      float64    `json:"dt"`      // time step size
	NodeBcs []*NodeBc  `json:"nodebcs"` // node boundary conditions
	EleConds []*EleCond `json:"eleconds"` // element conditions
}

// Simulation holds all simulation data
type Simulation struct {

	// input
	Data      Data      `json:"data"`      // global simulation data
	Functions FuncsData `json:"functions"` // time functions
	Regions   []*Region `json:"regions"`   // regions
	Stages    []*Stage  `json:"stages"`    // stages

	// derived
	Key     string // simulation key; e.g. mysim01.sim => mysim01
	EncType string // encoder type: "gob" or "json"
	Ndim    int    // space dimension
}

// ReadSim reads all simulation data from a .sim JSON file
func ReadSim(simfilepath string, erasePrev bool) (o *Simulation, err error) {

	// read file
	b, err := io.ReadFile(simfilepath)
	if err != nil {
		return nil, chk.Err("ReadSim: cannot read simulation file %q", simfilepath)
	}

	// decode
	o = new(Simulation)
	err = json.Unmarshal(b, o)
	if err != nil {
		return nil, chk.Err("ReadSim: cannot unmarshal simulation file %q\n%v", simfilepath, err)
	}

	// input directory and filename key
	dir := filepath.Dir(simfilepath)
	fn := filepath.Base(simfilepath)
	o.Key = io.FnKey(fn)

	// output directory
	if o.Data.DirOut == "" {
		o.Data.DirOut = "/tmp/linkfem/" + o.Key
	}

	// encoder type
	o.EncType = o.Data.Encoder
	if o.EncType != "gob" && o.EncType != "json" {
		o.EncType = "gob"
	}

	// erase previous simulation results
	if erasePrev {
		io.RemoveAll(io.Sf("%s/%s*", o.Data.DirOut, o.Key))
	}

	// read meshes
	if len(o.Regions) < 1 {
		return nil, chk.Err("ReadSim: at least one region must be defined")
	}
	for i, reg := range o.Regions {
		reg.Msh, err = ReadMsh(os.ExpandEnv(dir), reg.Mshfile)
		if err != nil {
			return nil, chk.Err("ReadSim: cannot read mesh of region %d\n%v", i, err)
		}
		if i == 0 {
			o.Ndim = reg.Msh.Ndim
		} else if reg.Msh.Ndim != o.Ndim {
			return nil, chk.Err("ReadSim: all regions must have the same space dimension")
		}
	}

	// check stages
	if len(o.Stages) < 1 {
		return nil, chk.Err("ReadSim: at least one stage must be defined")
	}
	return
}
