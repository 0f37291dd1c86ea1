// Copyright 2016 The Linkfem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package fem implements the framework side: nodes, domain and the solver
// driver that cycles elements through update and commit
package fem

import (
	"github.com/erikemondt/linkfem/inp"
)

// Dof holds information about one degree-of-freedom of one node
type Dof struct {
	Key string // name of solution variable; e.g. "ux", "rz"
	Eq  int    // equation number
}

// Node holds one vertex and its degrees-of-freedom. The vertex is borrowed
// from the mesh, never owned.
type Node struct {
	Vert *inp.Vert // pointer to vertex
	Dofs []*Dof    // degrees-of-freedom
}

// NewNode returns a new node
func NewNode(v *inp.Vert) *Node {
	return &Node{Vert: v}
}

// AddDofAndEq adds a new dof and equation number to the node, unless the dof
// key exists already
func (o *Node) AddDofAndEq(key string, eq int) (added bool) {
	for _, dof := range o.Dofs {
		if dof.Key == key {
			return false
		}
	}
	o.Dofs = append(o.Dofs, &Dof{Key: key, Eq: eq})
	return true
}

// GetEq returns the equation number corresponding to a dof key; -1 if not found
func (o *Node) GetEq(key string) int {
	for _, dof := range o.Dofs {
		if dof.Key == key {
			return dof.Eq
		}
	}
	return -1
}
