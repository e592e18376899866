// Copyright 2019 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package seqlib

import "github.com/db47h/seqsim"

// JKLatch returns a clocked J-K style latch built as a two state Moore
// machine.
//
//	Inputs: areset, j, k
//	Outputs: out
//	Function: areset ? OFF : OFF && j ? ON : ON && k ? OFF : hold
//
// The power-on state is unknown; the state stays x until areset is
// asserted. out follows the post-edge state.
//
func JKLatch() *seqsim.Model {
	m := seqsim.New("jklatch")
	must(m.Input("areset", 1))
	must(m.Input("j", 1))
	must(m.Input("k", 1))
	must(m.Declare("state", 1, seqsim.KindRegister))
	must(m.Output("out", 1))
	must(m.Rule("state", "areset", 0,
		func(f *seqsim.Frame) seqsim.Bit { return f.Bit("areset") },
		func(f *seqsim.Frame) seqsim.Value { return seqsim.MustValue("0") }))
	must(m.Rule("state", "set", 1,
		func(f *seqsim.Frame) seqsim.Bit { return f.Bit("state").Not().And(f.Bit("j")) },
		func(f *seqsim.Frame) seqsim.Value { return seqsim.MustValue("1") }))
	must(m.Rule("state", "clear", 1,
		func(f *seqsim.Frame) seqsim.Bit { return f.Bit("state").And(f.Bit("k")) },
		func(f *seqsim.Frame) seqsim.Value { return seqsim.MustValue("0") }))
	must(m.Drive("out", func(f *seqsim.Frame) seqsim.Value { return f.Get("state").Copy() }))
	must(m.Seal())
	return m
}
