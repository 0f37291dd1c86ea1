// Copyright 2016 The Linkfem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package link

import (
	"sync"

	"github.com/cpmech/gosl/la"
)

// Scratch matrices and vectors shared across instances, one pool per fixed
// size (2, 4, 6 and 12), mirroring strict per-element sequential use.

var matPools = map[int]*sync.Pool{
	2:  newMatPool(2),
	4:  newMatPool(4),
	6:  newMatPool(6),
	12: newMatPool(12),
}

var vecPools = map[int]*sync.Pool{
	2:  newVecPool(2),
	4:  newVecPool(4),
	6:  newVecPool(6),
	12: newVecPool(12),
}

func newMatPool(n int) *sync.Pool {
	return &sync.Pool{New: func() interface{} { return la.MatAlloc(n, n) }}
}

func newVecPool(n int) *sync.Pool {
	return &sync.Pool{New: func() interface{} { return make([]float64, n) }}
}

// borrowMat returns a zeroed n×n scratch matrix
func borrowMat(n int) [][]float64 {
	p, ok := matPools[n]
	if !ok {
		return la.MatAlloc(n, n)
	}
	m := p.Get().([][]float64)
	la.MatFill(m, 0)
	return m
}

// returnMat gives a scratch matrix back to its pool
func returnMat(n int, m [][]float64) {
	if p, ok := matPools[n]; ok {
		p.Put(m)
	}
}

// borrowVec returns a zeroed scratch vector of size n
func borrowVec(n int) []float64 {
	p, ok := vecPools[n]
	if !ok {
		return make([]float64, n)
	}
	v := p.Get().([]float64)
	la.VecFill(v, 0)
	return v
}

// returnVec gives a scratch vector back to its pool
func returnVec(n int, v []float64) {
	if p, ok := vecPools[n]; ok {
		p.Put(v)
	}
}
