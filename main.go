// Copyright 2016 The Linkfem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"os"

	"github.com/erikemondt/linkfem/fem"
	"github.com/erikemondt/linkfem/inp"

	_ "github.com/erikemondt/linkfem/ele/link"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

func main() {

	// catch errors
	defer func() {
		if err := recover(); err != nil {
			io.PfRed("\nERROR: %v\n", err)
		}
	}()

	// read input parameters
	fnamepath, _ := io.ArgToFilename(0, "", ".sim", true)
	verbose := io.ArgToBool(1, true)
	erasePrev := io.ArgToBool(2, true)
	saveState := io.ArgToBool(3, true)

	// message
	if verbose {
		io.PfWhite("\nLinkfem -- two-node link elements\n")
		io.Pf("\n%v\n", io.ArgsTable("INPUT ARGUMENTS",
			"filename path", "fnamepath", fnamepath,
			"show messages", "verbose", verbose,
			"erase previous results", "erasePrev", erasePrev,
			"save final state", "saveState", saveState,
		))
	}

	// input data
	sim, err := inp.ReadSim(fnamepath, erasePrev)
	if err != nil {
		chk.Panic("cannot read simulation file:\n%v", err)
	}

	// domain and driver
	dom := fem.NewDomain(sim)
	drv := fem.NewDriver(dom)
	drv.Verbose = verbose

	// run all stages
	for i := range sim.Stages {
		err = dom.SetStage(i)
		if err != nil {
			chk.Panic("cannot set stage %d:\n%v", i, err)
		}
		err = drv.Run(i)
		if err != nil {
			chk.Panic("stage %d failed:\n%v", i, err)
		}
	}

	// save final state
	if saveState {
		err = os.MkdirAll(sim.Data.DirOut, 0777)
		if err != nil {
			chk.Panic("cannot create output directory:\n%v", err)
		}
		fn := io.Sf("%s/%s.state", sim.Data.DirOut, sim.Key)
		f, err := os.Create(fn)
		if err != nil {
			chk.Panic("cannot create state file:\n%v", err)
		}
		defer f.Close()
		err = dom.SaveState(f)
		if err != nil {
			chk.Panic("cannot save state:\n%v", err)
		}
		if verbose {
			io.Pf("state saved to %s\n", fn)
		}
	}
}
