// Copyright 2016 The Linkfem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package link implements a generic two-node link element with an arbitrary
// subset of active deformation directions, a caller-supplied basic stiffness
// (and optional damping) matrix, and a geometric (P-Delta) correction
package link

import (
	"github.com/erikemondt/linkfem/ele"
	"github.com/erikemondt/linkfem/inp"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/la"
)

// TwoNodeLink is a two-node element whose response is defined directly in the
// basic system: a constant stiffness matrix relating relative deformations
// along the active directions to basic forces. The element composes three
// nested coordinate systems:
//
//   global --Tgl--> local --Tlb--> basic
//
// Tgl is derived from node geometry and orientation hints; Tlb selects the
// active directions as signed differences between the two nodes' local DOFs.
// Both are computed once at setup and cached.
type TwoNodeLink struct {

	// basic data
	Tag  int         // unique tag (cell id)
	Nods []int       // [2] ids of connected nodes; borrowed references, resolved by the framework
	X    [][]float64 // [ndim][2] matrix of nodal coordinates
	Ndim int         // space dimension
	Nu   int         // total number of DOFs
	Etyp Etype       // element DOF category

	// parameters
	Dirs        []int       // active directions; each in [0,5]
	Kb          [][]float64 // [ndir][ndir] basic stiffness matrix; used as supplied
	Cb          [][]float64 // [ndir][ndir] basic damping matrix; optional
	Xdir        []float64   // [3] local x direction hint; optional
	Ydir        []float64   // [3] local y direction hint; optional
	Mratio      []float64   // [4] P-Delta moment distribution ratios; empty if absent
	PDelta      bool        // geometric correction enabled
	OnP0        bool        // include the shear share of the P-Delta force correction
	AddRayleigh bool        // add stiffness-proportional Rayleigh damping

	// derived geometry; written once at setup, never mutated
	L   float64     // element length
	rot [][]float64 // [3][3] direction cosines of the local axes
	Tgl [][]float64 // [nu][nu] transformation matrix from global to local system
	Tlb [][]float64 // [ndir][nu] transformation matrix from local to basic system

	// trial state
	ub    []float64 // [ndir] trial displacements in basic system
	ubdot []float64 // [ndir] trial velocities in basic system
	qb    []float64 // [ndir] trial forces in basic system
	ul    []float64 // [nu] trial displacements in local system

	// committed state
	ubc []float64 // [ndir] committed basic displacements
	qbc []float64 // [ndir] committed basic forces
	ulc []float64 // [nu] committed local displacements

	// element conditions and loads
	conds []eleCond  // basic-system load conditions from input
	loads []loadRef  // attached load objects
	pa    []float64  // [nu] applied load from attached objects (global system)
	pc    []float64  // [nu] applied load from conditions (global system)

	// results (element-owned)
	K  [][]float64 // [nu][nu] stiffness output
	C  [][]float64 // [nu][nu] damping output
	fi []float64   // [nu] resisting force output

	// problem variables
	Umap    []int // assembly map (location array/element equations)
	Verbose bool  // verbose output
}

// eleCond is one basic-direction load condition with a time multiplier
type eleCond struct {
	pos int   // position of the loaded direction within Dirs
	fcn dbf.T // multiplier function of time
}

// loadRef is one attached load object with its scale factor
type loadRef struct {
	load   ele.Load
	factor float64
}

// register element
func init() {

	// information allocator
	ele.SetInfoFunc("link", func(sim *inp.Simulation, cell *inp.Cell, edat *inp.ElemData) *ele.Info {
		if edat.Link == nil {
			return nil
		}
		withRot := len(edat.Link.Mratio) > 0
		etyp, _, err := resolveEtype(sim.Ndim, edat.Link.Dirs, withRot)
		if err != nil {
			return nil
		}
		var info ele.Info
		ykeys := dofKeys(etyp)
		info.Dofs = make([][]string, 2)
		for m := 0; m < 2; m++ {
			info.Dofs[m] = ykeys
		}
		info.Y2F = map[string]string{"ux": "fx", "uy": "fy", "uz": "fz", "rx": "mx", "ry": "my", "rz": "mz"}
		info.T2vars = ykeys
		return &info
	})

	// element allocator
	ele.SetAllocator("link", func(sim *inp.Simulation, cell *inp.Cell, edat *inp.ElemData, x [][]float64) ele.Element {
		if edat.Link == nil {
			chk.Panic("link element {tag=%d, id=%d} has no link parameters", cell.Tag, cell.Id)
		}
		o, err := New(cell.Id, sim.Ndim, cell.Verts, x, edat.Link)
		if err != nil {
			chk.Panic("cannot allocate link element {tag=%d, id=%d}:\n%v", cell.Tag, cell.Id, err)
		}
		if s, found := io.Keycode(edat.Extra, "verbose"); found {
			o.Verbose = io.Atob(s)
		}
		return o
	})
}

// New creates a two-node link element
//  Input:
//   tag  -- unique element tag
//   ndim -- space dimension: 1, 2 or 3
//   nods -- [2] ids of the two connected nodes
//   x    -- [ndim][2] matrix of nodal coordinates
//   dat  -- link parameters: directions, basic stiffness and options
func New(tag, ndim int, nods []int, x [][]float64, dat *inp.LinkData) (o *TwoNodeLink, err error) {

	// check topology
	if len(nods) != 2 {
		return nil, chk.Err("configuration: link element must connect exactly 2 nodes. %d is invalid", len(nods))
	}
	if len(x) != ndim {
		return nil, chk.Err("configuration: coordinates matrix must have %d rows. %d is invalid", ndim, len(x))
	}

	// resolve DOF category; moment distribution needs rotational DOFs
	withRot := len(dat.Mratio) > 0
	etyp, ndof, err := resolveEtype(ndim, dat.Dirs, withRot)
	if err != nil {
		return nil, err
	}
	ndir := len(dat.Dirs)
	for i := 0; i < ndir; i++ {
		for j := i + 1; j < ndir; j++ {
			if dat.Dirs[i] == dat.Dirs[j] {
				return nil, chk.Err("configuration: direction %d is repeated", dat.Dirs[i])
			}
		}
	}

	// check matrices
	if len(dat.Kb) != ndir {
		return nil, chk.Err("configuration: kb must be %d x %d. %d rows is invalid", ndir, ndir, len(dat.Kb))
	}
	for i, row := range dat.Kb {
		if len(row) != ndir {
			return nil, chk.Err("configuration: kb must be %d x %d. row %d has %d columns", ndir, ndir, i, len(row))
		}
	}
	if dat.Cb != nil {
		if len(dat.Cb) != ndir {
			return nil, chk.Err("configuration: cb must be %d x %d. %d rows is invalid", ndir, ndir, len(dat.Cb))
		}
		for i, row := range dat.Cb {
			if len(row) != ndir {
				return nil, chk.Err("configuration: cb must be %d x %d. row %d has %d columns", ndir, ndir, i, len(row))
			}
		}
	}

	// moment distribution ratios: 2 values (2D) or 4 values (3D); stored as 4
	var mratio []float64
	if len(dat.Mratio) > 0 {
		mratio = make([]float64, 4)
		switch {
		case ndim == 2 && len(dat.Mratio) == 2:
			mratio[2], mratio[3] = dat.Mratio[0], dat.Mratio[1]
		case ndim == 3 && len(dat.Mratio) == 4:
			copy(mratio, dat.Mratio)
		default:
			return nil, chk.Err("configuration: mratio must have 2 (2D) or 4 (3D) values. %d is invalid", len(dat.Mratio))
		}
		for _, m := range mratio {
			if m < 0 {
				return nil, chk.Err("configuration: mratio values must be non-negative. %g is invalid", m)
			}
		}
		if mratio[0]+mratio[1] > 1 || mratio[2]+mratio[3] > 1 {
			return nil, chk.Err("configuration: mratio end pairs must not sum to more than 1")
		}
	}

	// basic data
	o = new(TwoNodeLink)
	o.Tag = tag
	o.Nods = []int{nods[0], nods[1]}
	o.X = x
	o.Ndim = ndim
	o.Nu = ndof
	o.Etyp = etyp

	// parameters
	o.Dirs = make([]int, ndir)
	copy(o.Dirs, dat.Dirs)
	o.Kb = la.MatAlloc(ndir, ndir)
	la.MatCopy(o.Kb, 1, dat.Kb)
	if dat.Cb != nil {
		o.Cb = la.MatAlloc(ndir, ndir)
		la.MatCopy(o.Cb, 1, dat.Cb)
	}
	if len(dat.Xdir) > 0 {
		o.Xdir = pad3(dat.Xdir)
	}
	if len(dat.Ydir) > 0 {
		o.Ydir = pad3(dat.Ydir)
	}
	o.Mratio = mratio
	o.PDelta = dat.PDelta
	o.OnP0 = dat.OnP0
	o.AddRayleigh = dat.AddRayleigh

	// vectors and matrices
	o.Tgl = la.MatAlloc(o.Nu, o.Nu)
	o.Tlb = la.MatAlloc(ndir, o.Nu)
	o.ub = make([]float64, ndir)
	o.ubdot = make([]float64, ndir)
	o.qb = make([]float64, ndir)
	o.ul = make([]float64, o.Nu)
	o.ubc = make([]float64, ndir)
	o.qbc = make([]float64, ndir)
	o.ulc = make([]float64, o.Nu)
	o.pa = make([]float64, o.Nu)
	o.pc = make([]float64, o.Nu)
	o.K = la.MatAlloc(o.Nu, o.Nu)
	o.C = la.MatAlloc(o.Nu, o.Nu)
	o.fi = make([]float64, o.Nu)

	// geometry; resolved once
	err = o.setUp()
	if err != nil {
		return nil, err
	}
	return
}

// Id returns the cell Id
func (o *TwoNodeLink) Id() int { return o.Tag }

// Ndirs returns the number of active directions
func (o *TwoNodeLink) Ndirs() int { return len(o.Dirs) }

// SetEqs set equations
func (o *TwoNodeLink) SetEqs(eqs [][]int) (err error) {
	half := o.Nu / 2
	if len(eqs) != 2 || len(eqs[0]) != half || len(eqs[1]) != half {
		return chk.Err("link element %d needs 2 x %d equation numbers", o.Tag, half)
	}
	o.Umap = make([]int, o.Nu)
	for m := 0; m < 2; m++ {
		for i := 0; i < half; i++ {
			o.Umap[i+m*half] = eqs[m][i]
		}
	}
	return
}

// SetEleConds set element conditions. Key "qb" applies a load along one
// active direction of the basic system; the direction id comes in extra,
// e.g. "!dir:0"
func (o *TwoNodeLink) SetEleConds(key string, f dbf.T, extra string) (err error) {
	if key != "qb" {
		return chk.Err("cannot handle condition named %q", key)
	}
	d := 0
	if s, found := io.Keycode(extra, "dir"); found {
		d = io.Atoi(s)
	}
	pos := -1
	for i, dd := range o.Dirs {
		if dd == d {
			pos = i
		}
	}
	if pos < 0 {
		return chk.Err("direction %d is not active in link element %d", d, o.Tag)
	}
	o.conds = append(o.conds, eleCond{pos: pos, fcn: f})
	return
}

// Update refreshes the trial state from the nodal values in sol: maps global
// trial displacements (and velocities, if damping is active) through the
// cached global-to-basic transform and computes the basic force.
// Idempotent given unchanged nodal values.
func (o *TwoNodeLink) Update(sol *ele.Solution) (err error) {

	// displacements: global => local => basic
	ug := borrowVec(o.Nu)
	defer returnVec(o.Nu, ug)
	for i, I := range o.Umap {
		ug[i] = sol.Y[I]
	}
	la.MatVecMul(o.ul, 1, o.Tgl, ug)
	la.MatVecMul(o.ub, 1, o.Tlb, o.ul)

	// basic force
	la.MatVecMul(o.qb, 1, o.Kb, o.ub)

	// velocities and damping force
	if o.Cb != nil && !sol.Steady && len(sol.Dydt) > 0 {
		uldot := borrowVec(o.Nu)
		defer returnVec(o.Nu, uldot)
		for i, I := range o.Umap {
			ug[i] = sol.Dydt[I]
		}
		la.MatVecMul(uldot, 1, o.Tgl, ug)
		la.MatVecMul(o.ubdot, 1, o.Tlb, uldot)
		la.MatVecMulAdd(o.qb, 1, o.Cb, o.ubdot)
	}

	// applied load from conditions
	o.applyConds(sol.T)
	return
}

// applyConds recomputes the condition-driven applied load at time t
func (o *TwoNodeLink) applyConds(t float64) {
	la.VecFill(o.pc, 0)
	if len(o.conds) == 0 {
		return
	}
	qv := borrowVec(len(o.Dirs))
	pl := borrowVec(o.Nu)
	defer returnVec(len(o.Dirs), qv)
	defer returnVec(o.Nu, pl)
	for _, c := range o.conds {
		qv[c.pos] += c.fcn.F(t, nil)
	}
	la.MatTrVecMulAdd(pl, 1, o.Tlb, qv) // pl += trans(Tlb) * qv
	la.MatTrVecMulAdd(o.pc, 1, o.Tgl, pl)
}

// CommitState promotes the trial state to the committed snapshot consumed by
// the next P-Delta evaluation. The first nonzero failure code reported by an
// attached load is propagated.
func (o *TwoNodeLink) CommitState() (err error) {
	copy(o.ubc, o.ub)
	copy(o.qbc, o.qb)
	copy(o.ulc, o.ul)
	for _, lr := range o.loads {
		if code := lr.load.CommitState(); code != 0 {
			return chk.Err("load attached to link element %d failed to commit with code %d", o.Tag, code)
		}
	}
	return
}

// RevertToLastCommit discards trial values and restores the last committed
// state; geometry is untouched
func (o *TwoNodeLink) RevertToLastCommit() (err error) {
	copy(o.ub, o.ubc)
	copy(o.qb, o.qbc)
	copy(o.ul, o.ulc)
	la.VecFill(o.ubdot, 0)
	return
}

// RevertToStart resets both committed and trial states and the applied load
// to zero; cached transforms are untouched
func (o *TwoNodeLink) RevertToStart() (err error) {
	la.VecFill(o.ub, 0)
	la.VecFill(o.ubdot, 0)
	la.VecFill(o.qb, 0)
	la.VecFill(o.ul, 0)
	la.VecFill(o.ubc, 0)
	la.VecFill(o.qbc, 0)
	la.VecFill(o.ulc, 0)
	o.ZeroLoad()
	la.VecFill(o.pc, 0)
	return
}

// TangentStiff returns the tangent stiffness in the global system:
// trans(Tgl) * (trans(Tlb)*kb*Tlb + kgeo) * Tgl, with the geometric term
// built from the committed axial force
func (o *TwoNodeLink) TangentStiff() [][]float64 {
	kl := borrowMat(o.Nu)
	defer returnMat(o.Nu, kl)
	la.MatTrMul3(kl, 1, o.Tlb, o.Kb, o.Tlb) // kl := trans(Tlb) * kb * Tlb
	if o.PDelta {
		o.addPDeltaStiff(kl)
	}
	la.MatTrMul3(o.K, 1, o.Tgl, kl, o.Tgl) // K := trans(Tgl) * kl * Tgl
	return o.K
}

// InitialStiff returns the initial stiffness. For this linear element tangent
// and initial stiffness differ only through the committed axial-force
// snapshot, hence the same pipeline is reused.
func (o *TwoNodeLink) InitialStiff() [][]float64 {
	return o.TangentStiff()
}

// Damp returns the damping matrix in the global system: the transformed cb if
// supplied; else the stiffness-proportional Rayleigh term if enabled; else a
// zero matrix
func (o *TwoNodeLink) Damp(sol *ele.Solution) [][]float64 {
	if o.Cb != nil {
		cl := borrowMat(o.Nu)
		defer returnMat(o.Nu, cl)
		la.MatTrMul3(cl, 1, o.Tlb, o.Cb, o.Tlb)
		la.MatTrMul3(o.C, 1, o.Tgl, cl, o.Tgl)
		return o.C
	}
	la.MatFill(o.C, 0)
	if o.AddRayleigh && sol != nil && sol.DynCfs != nil && sol.DynCfs.RayK != 0 {
		K := o.TangentStiff()
		for i := 0; i < o.Nu; i++ {
			for j := 0; j < o.Nu; j++ {
				o.C[i][j] = sol.DynCfs.RayK * K[i][j]
			}
		}
	}
	return o.C
}

// ResistingForce returns the resisting force in the global system: the basic
// force transformed basic => local => global, plus the P-Delta local force
// term, minus the applied element load
func (o *TwoNodeLink) ResistingForce() []float64 {
	pl := borrowVec(o.Nu)
	defer returnVec(o.Nu, pl)
	la.MatTrVecMulAdd(pl, 1, o.Tlb, o.qb) // pl += trans(Tlb) * qb
	if o.PDelta {
		o.addPDeltaForces(pl)
	}
	la.VecFill(o.fi, 0)
	la.MatTrVecMulAdd(o.fi, 1, o.Tgl, pl) // fi += trans(Tgl) * pl
	for i := 0; i < o.Nu; i++ {
		o.fi[i] -= o.pa[i] + o.pc[i]
	}
	return o.fi
}

// ResistingForceIncInertia returns the resisting force including the Rayleigh
// damping force. The element is massless, so no inertial term is added; the
// damper force from cb is already part of the basic force.
func (o *TwoNodeLink) ResistingForceIncInertia(sol *ele.Solution) []float64 {
	o.ResistingForce()
	if o.AddRayleigh && o.Cb == nil && !sol.Steady && len(sol.Dydt) > 0 {
		C := o.Damp(sol)
		vg := borrowVec(o.Nu)
		defer returnVec(o.Nu, vg)
		for i, I := range o.Umap {
			vg[i] = sol.Dydt[I]
		}
		la.MatVecMulAdd(o.fi, 1, C, vg)
	}
	return o.fi
}

// AddLoad adds a scaled load contribution to the element
func (o *TwoNodeLink) AddLoad(load ele.Load, factor float64) (err error) {
	vals, err := load.BasicComponents(len(o.Dirs))
	if err != nil {
		return chk.Err("cannot apply load to link element %d:\n%v", o.Tag, err)
	}
	pl := borrowVec(o.Nu)
	defer returnVec(o.Nu, pl)
	for i := range vals {
		vals[i] *= factor
	}
	la.MatTrVecMulAdd(pl, 1, o.Tlb, vals)
	la.MatTrVecMulAdd(o.pa, 1, o.Tgl, pl)
	o.loads = append(o.loads, loadRef{load: load, factor: factor})
	return
}

// AddInertiaLoad reports that inertial loads are unsupported: the element
// carries no mass
func (o *TwoNodeLink) AddInertiaLoad(accel []float64) (err error) {
	return chk.Err("unsupported operation: link element %d is massless and cannot take inertial loads", o.Tag)
}

// ZeroLoad zeroes the applied load vector and detaches load objects
func (o *TwoNodeLink) ZeroLoad() {
	la.VecFill(o.pa, 0)
	o.loads = o.loads[:0]
}

// AddToRhs adds -R to global residual vector fb
func (o *TwoNodeLink) AddToRhs(fb []float64, sol *ele.Solution) (err error) {
	fi := o.ResistingForce()
	for i, I := range o.Umap {
		fb[I] -= fi[i]
	}
	return
}

// AddToKb adds the element tangent stiffness to the global Jacobian matrix Kb
func (o *TwoNodeLink) AddToKb(Kb *la.Triplet, sol *ele.Solution, firstIt bool) (err error) {
	K := o.TangentStiff()
	for i, I := range o.Umap {
		for j, J := range o.Umap {
			Kb.Put(I, J, K[i][j])
		}
	}
	return
}

// pad3 returns a copy of v zero-padded to 3 components
func pad3(v []float64) []float64 {
	r := make([]float64, 3)
	copy(r, v)
	return r
}
