// Copyright 2016 The Linkfem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"encoding/gob"
	"encoding/json"
	goio "io"
	"sort"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/utl"
)

// GetEncoder returns a new encoder over a byte-oriented channel
func GetEncoder(w goio.Writer, enctype string) utl.Encoder {
	if enctype == "json" {
		return json.NewEncoder(w)
	}
	return gob.NewEncoder(w)
}

// GetDecoder returns a new decoder over a byte-oriented channel
func GetDecoder(r goio.Reader, enctype string) utl.Decoder {
	if enctype == "json" {
		return json.NewDecoder(r)
	}
	return gob.NewDecoder(r)
}

// SaveState encodes the state of all elements into w, preceded by the list of
// cell ids. Node ids inside the records are references only; the receiving
// side must re-resolve them locally.
func (o *Domain) SaveState(w goio.Writer) (err error) {
	enc := GetEncoder(w, o.Sim.EncType)
	cids := make([]int, 0, len(o.Elems))
	for cid := range o.Cid2elem {
		cids = append(cids, cid)
	}
	sort.Ints(cids)
	err = enc.Encode(cids)
	if err != nil {
		return chk.Err("cannot encode element ids:\n%v", err)
	}
	for _, cid := range cids {
		err = o.Cid2elem[cid].Encode(enc)
		if err != nil {
			return
		}
	}
	return
}

// ReadState decodes element states from r into the existing elements of this
// domain. Geometry caches are re-derived from the locally resolved nodes.
func (o *Domain) ReadState(r goio.Reader) (err error) {
	dec := GetDecoder(r, o.Sim.EncType)
	var cids []int
	err = dec.Decode(&cids)
	if err != nil {
		return chk.Err("cannot decode element ids:\n%v", err)
	}
	for _, cid := range cids {
		e, ok := o.Cid2elem[cid]
		if !ok {
			return chk.Err("cannot find element with cid=%d", cid)
		}
		err = e.Decode(dec)
		if err != nil {
			return chk.Err("cannot decode element %d:\n%v", cid, err)
		}
	}
	return
}
